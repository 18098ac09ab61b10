package render

import (
	"fmt"

	"github.com/KaramelBytes/vaxviz-cli/internal/aggregate"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// BarTitle returns the growth chart heading for a ranking of size n.
func BarTitle(n int) string {
	return fmt.Sprintf("Top %d Countries by Vaccination Coverage Growth", n)
}

// Bar writes the growth ranking as a bar chart, in the given order.
func Bar(top []aggregate.GrowthRecord, n int, o Options) (string, error) {
	codes := make([]string, len(top))
	values := make([]opts.BarData, len(top))
	for i, g := range top {
		codes[i] = g.CountryCode
		values[i] = opts.BarData{Name: g.CountryCode, Value: g.Growth}
	}

	title := BarTitle(n)
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(o.init(title, barID)),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Country"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "% Growth"}),
	)
	bar.SetXAxis(codes).AddSeries("% Growth", values)

	path := o.Path(BarFile)
	return path, write(path, bar)
}
