package aggregate

import (
	"sort"

	"github.com/KaramelBytes/vaxviz-cli/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// TimeSeriesPoint holds per-year means across all countries. A mean over no
// values is nil and renders as a gap.
type TimeSeriesPoint struct {
	TimePeriod     int
	Coverage       *float64
	LifeExpectancy *float64
	CoverageN      int
	LifeN          int
}

// TimeSeries groups rows by time period and averages the observation value
// and life expectancy, ignoring nulls. Points are ordered by period.
func TimeSeries(rows []dataset.MergedRecord) []TimeSeriesPoint {
	type acc struct{ obs, life []float64 }
	groups := make(map[int]*acc)
	for _, r := range rows {
		g := groups[r.TimePeriod]
		if g == nil {
			g = &acc{}
			groups[r.TimePeriod] = g
		}
		if r.ObsValue != nil {
			g.obs = append(g.obs, *r.ObsValue)
		}
		if r.LifeExpectancy != nil {
			g.life = append(g.life, *r.LifeExpectancy)
		}
	}
	periods := make([]int, 0, len(groups))
	for p := range groups {
		periods = append(periods, p)
	}
	sort.Ints(periods)

	out := make([]TimeSeriesPoint, 0, len(periods))
	for _, p := range periods {
		g := groups[p]
		out = append(out, TimeSeriesPoint{
			TimePeriod:     p,
			Coverage:       mean(g.obs),
			LifeExpectancy: mean(g.life),
			CoverageN:      len(g.obs),
			LifeN:          len(g.life),
		})
	}
	return out
}

func mean(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	m := stat.Mean(xs, nil)
	return &m
}
