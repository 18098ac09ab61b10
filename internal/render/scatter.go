package render

import (
	"github.com/KaramelBytes/vaxviz-cli/internal/aggregate"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ScatterTitle is the heading of the GDP scatter chart.
const ScatterTitle = "GDP per Capita vs. Vaccination Coverage"

// Scatter writes the GDP per capita against coverage chart. When the fit is
// defined its line is overlaid across the observed x range.
func Scatter(s aggregate.ScatterSummary, o Options) (string, error) {
	points := make([]opts.ScatterData, len(s.Points))
	for i, p := range s.Points {
		points[i] = opts.ScatterData{
			Name:  p.CountryCode,
			Value: []interface{}{p.X, p.Y},
		}
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(o.init(ScatterTitle, scatterID)),
		charts.WithTitleOpts(opts.Title{Title: ScatterTitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "30"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "GDP per Capita"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Coverage"}),
	)
	sc.AddSeries("Countries", points)

	if f := s.Fit; f != nil {
		trend := charts.NewLine()
		trend.AddSeries("OLS trend", []opts.LineData{
			{Value: []interface{}{f.MinX, f.At(f.MinX)}},
			{Value: []interface{}{f.MaxX, f.At(f.MaxX)}},
		})
		sc.Overlap(trend)
	}

	path := o.Path(ScatterFile)
	return path, write(path, sc)
}
