package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"github.com/KaramelBytes/vaxviz-cli/internal/aggregate"
	"github.com/KaramelBytes/vaxviz-cli/internal/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// PNG snapshot file names. The map has no static counterpart.
const (
	TimeSeriesPNG = "time_series.png"
	ScatterPNG    = "scatter.png"
	BarPNG        = "bar.png"
)

// Snapshots writes static PNG versions of the time-series, scatter and
// growth charts and returns their paths.
func Snapshots(points []aggregate.TimeSeriesPoint, sc aggregate.ScatterSummary, top []aggregate.GrowthRecord, n int, o Options) ([]string, error) {
	steps := []struct {
		name  string
		build func() (*plot.Plot, error)
	}{
		{TimeSeriesPNG, func() (*plot.Plot, error) { return timeSeriesPlot(points) }},
		{ScatterPNG, func() (*plot.Plot, error) { return scatterPlot(sc) }},
		{BarPNG, func() (*plot.Plot, error) { return barPlot(top, n) }},
	}
	var paths []string
	for _, s := range steps {
		p, err := s.build()
		if err != nil {
			return paths, fmt.Errorf("plot %s: %w", s.name, err)
		}
		path := o.Path(s.name)
		if err := savePNG(p, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func savePNG(p *plot.Plot, path string) error {
	wt, err := p.WriterTo(12*vg.Inch, 7*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("png canvas: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.Add(plotter.NewGrid())
	return p
}

func timeSeriesPlot(points []aggregate.TimeSeriesPoint) (*plot.Plot, error) {
	p := newPlot(TimeSeriesTitle, "Year", "Value")
	p.Legend.Top = true
	series := []struct {
		name  string
		value func(aggregate.TimeSeriesPoint) *float64
	}{
		{"Coverage", func(tp aggregate.TimeSeriesPoint) *float64 { return tp.Coverage }},
		{"LifeExpectancy", func(tp aggregate.TimeSeriesPoint) *float64 { return tp.LifeExpectancy }},
	}
	for i, s := range series {
		c := plotutil.Color(i)
		legend := false
		for _, run := range segments(points, s.value) {
			var thumb plot.Thumbnailer
			if len(run) == 1 {
				dot, err := plotter.NewScatter(run)
				if err != nil {
					return nil, err
				}
				dot.GlyphStyle.Color = c
				dot.GlyphStyle.Shape = draw.CircleGlyph{}
				p.Add(dot)
				thumb = dot
			} else {
				line, err := plotter.NewLine(run)
				if err != nil {
					return nil, err
				}
				line.Color = c
				line.Width = vg.Points(2)
				p.Add(line)
				thumb = line
			}
			if !legend {
				p.Legend.Add(s.name, thumb)
				legend = true
			}
		}
	}
	return p, nil
}

// segments splits a series at missing values so gaps stay visible.
func segments(points []aggregate.TimeSeriesPoint, value func(aggregate.TimeSeriesPoint) *float64) []plotter.XYs {
	var (
		out []plotter.XYs
		cur plotter.XYs
	)
	for _, tp := range points {
		v := value(tp)
		if v == nil {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: float64(tp.TimePeriod), Y: *v})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func scatterPlot(s aggregate.ScatterSummary) (*plot.Plot, error) {
	p := newPlot(ScatterTitle, "GDP per Capita", "Coverage")
	if len(s.Points) == 0 {
		return p, nil
	}
	xys := make(plotter.XYs, len(s.Points))
	for i, pt := range s.Points {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	dots, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	dots.GlyphStyle.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	dots.GlyphStyle.Radius = vg.Points(3)
	dots.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(dots)
	p.Legend.Add("Countries", dots)

	if f := s.Fit; f != nil {
		trend, err := plotter.NewLine(plotter.XYs{
			{X: f.MinX, Y: f.At(f.MinX)},
			{X: f.MaxX, Y: f.At(f.MaxX)},
		})
		if err != nil {
			return nil, err
		}
		trend.Color = color.RGBA{R: 220, G: 20, B: 60, A: 255}
		trend.Width = vg.Points(2)
		trend.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		p.Add(trend)
		p.Legend.Add(fmt.Sprintf("OLS trend (R² %.2f)", f.RSquared), trend)
	}
	return p, nil
}

func barPlot(top []aggregate.GrowthRecord, n int) (*plot.Plot, error) {
	p := newPlot(BarTitle(n), "Country", "% Growth")
	if len(top) == 0 {
		return p, nil
	}
	values := make(plotter.Values, len(top))
	labels := make([]string, len(top))
	lo, hi := 0.0, 0.0
	for i, g := range top {
		values[i] = g.Growth
		labels[i] = g.CountryCode
		lo = math.Min(lo, g.Growth)
		hi = math.Max(hi, g.Growth)
	}
	bars, err := plotter.NewBarChart(values, vg.Points(28))
	if err != nil {
		return nil, err
	}
	bars.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)
	p.Y.Min = lo - math.Abs(lo)*0.1
	p.Y.Max = hi + math.Abs(hi)*0.1
	if p.Y.Min == p.Y.Max {
		p.Y.Max = p.Y.Min + 1
	}
	return p, nil
}
