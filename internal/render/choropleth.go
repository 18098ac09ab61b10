package render

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/vaxviz-cli/internal/aggregate"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// viridis is the continuous palette of the coverage map, low to high.
var viridis = []string{
	"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// MapTitle returns the map heading; the year is omitted when there is no data.
func MapTitle(s aggregate.Snapshot) string {
	if s.Empty() {
		return "Global RCV1 Coverage"
	}
	return fmt.Sprintf("Global RCV1 Coverage (%d)", s.Year)
}

// Choropleth writes the world map of the latest snapshot. It returns the
// path and the country codes that have no region on the map; those are kept
// in the series under their code. Rows without a country code are not drawn.
func Choropleth(s aggregate.Snapshot, o Options) (string, []string, error) {
	var (
		data     []opts.MapData
		unmapped []string
		lo, hi   float64
		seen     bool
	)
	for _, r := range s.Rows {
		if r.ObsValue == nil || r.CountryCode == "" {
			continue
		}
		v := *r.ObsValue
		name, ok := RegionName(r.CountryCode)
		if !ok {
			unmapped = append(unmapped, r.CountryCode)
		}
		data = append(data, opts.MapData{Name: name, Value: v})
		if !seen || v < lo {
			lo = v
		}
		if !seen || v > hi {
			hi = v
		}
		seen = true
	}
	if !seen {
		lo, hi = 0, 100
	}
	sort.Strings(unmapped)

	title := MapTitle(s)
	mc := charts.NewMap()
	mc.RegisterMapType("world")
	mc.SetGlobalOptions(
		charts.WithInitializationOpts(o.init(title, mapID)),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)
	mc.AddSeries("obs_value", data)

	path := o.Path(MapFile)
	return path, unmapped, write(path, mc)
}
