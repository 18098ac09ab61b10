package render

import (
	"strconv"

	"github.com/KaramelBytes/vaxviz-cli/internal/aggregate"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// TimeSeriesTitle is the heading of the time-series chart.
const TimeSeriesTitle = "Vaccination Coverage vs. Life Expectancy"

// gap is how ECharts marks a missing point in a line.
const gap = "-"

// TimeSeries writes the per-year mean line chart and returns its path.
func TimeSeries(points []aggregate.TimeSeriesPoint, o Options) (string, error) {
	years := make([]string, len(points))
	coverage := make([]opts.LineData, len(points))
	life := make([]opts.LineData, len(points))
	for i, p := range points {
		years[i] = strconv.Itoa(p.TimePeriod)
		coverage[i] = lineValue(p.Coverage)
		life[i] = lineValue(p.LifeExpectancy)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(o.init(TimeSeriesTitle, timeSeriesID)),
		charts.WithTitleOpts(opts.Title{Title: TimeSeriesTitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "30"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Year"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Value"}),
	)
	line.SetXAxis(years).
		AddSeries("Coverage", coverage).
		AddSeries("LifeExpectancy", life)

	path := o.Path(TimeSeriesFile)
	return path, write(path, line)
}

func lineValue(v *float64) opts.LineData {
	if v == nil {
		return opts.LineData{Value: gap}
	}
	return opts.LineData{Value: *v}
}
