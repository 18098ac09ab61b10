package aggregate

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/vaxviz-cli/internal/dataset"
)

// ZeroBasePolicy decides what happens to a country whose first observation is 0.
type ZeroBasePolicy string

const (
	// ZeroBaseSkip leaves the country out of the ranking.
	ZeroBaseSkip ZeroBasePolicy = "skip"
	// ZeroBaseFail aborts the aggregation with a *ZeroBaseError.
	ZeroBaseFail ZeroBasePolicy = "error"
)

// DefaultTopN is the size of the growth ranking.
const DefaultTopN = 10

// ZeroBaseError reports a growth rate that would divide by a zero first observation.
type ZeroBaseError struct {
	CountryCode string
	TimePeriod  int
}

func (e *ZeroBaseError) Error() string {
	return fmt.Sprintf("growth rate undefined for %s: first observation in %d is 0", e.CountryCode, e.TimePeriod)
}

// GrowthOptions controls the growth ranking.
type GrowthOptions struct {
	TopN     int
	ZeroBase ZeroBasePolicy
}

// GrowthRecord is the first-to-last change of one country's observation value.
type GrowthRecord struct {
	CountryCode string
	FirstPeriod int
	LastPeriod  int
	FirstObs    float64
	LastObs     float64
	Growth      float64 // percent
}

// GrowthSummary ranks countries by growth.
type GrowthSummary struct {
	Top      []GrowthRecord
	All      []GrowthRecord // every country with a defined growth, by code
	ZeroBase []string       // countries left out because their first observation is 0
	NoData   []string       // countries without any non-null observation
}

// Growth sorts rows by (country, period), takes each country's first and last
// non-null observation, computes (last/first - 1) * 100 and keeps the TopN
// countries by growth, descending. Ties are ordered by country code. Rows
// without a country code are left out.
func Growth(rows []dataset.MergedRecord, opt GrowthOptions) (GrowthSummary, error) {
	topN := opt.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	policy := opt.ZeroBase
	if policy == "" {
		policy = ZeroBaseSkip
	}

	sorted := make([]dataset.MergedRecord, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CountryCode != sorted[j].CountryCode {
			return sorted[i].CountryCode < sorted[j].CountryCode
		}
		return sorted[i].TimePeriod < sorted[j].TimePeriod
	})

	var sum GrowthSummary
	for start := 0; start < len(sorted); {
		code := sorted[start].CountryCode
		end := start
		var first, last *dataset.MergedRecord
		for ; end < len(sorted) && sorted[end].CountryCode == code; end++ {
			r := &sorted[end]
			if r.ObsValue == nil {
				continue
			}
			if first == nil {
				first = r
			}
			last = r
		}
		start = end

		// rows without a country code cannot be ranked
		if code == "" {
			continue
		}
		if first == nil {
			sum.NoData = append(sum.NoData, code)
			continue
		}
		if *first.ObsValue == 0 {
			if policy == ZeroBaseFail {
				return GrowthSummary{}, &ZeroBaseError{CountryCode: code, TimePeriod: first.TimePeriod}
			}
			sum.ZeroBase = append(sum.ZeroBase, code)
			continue
		}
		sum.All = append(sum.All, GrowthRecord{
			CountryCode: code,
			FirstPeriod: first.TimePeriod,
			LastPeriod:  last.TimePeriod,
			FirstObs:    *first.ObsValue,
			LastObs:     *last.ObsValue,
			Growth:      (*last.ObsValue / *first.ObsValue - 1) * 100,
		})
	}

	ranked := make([]GrowthRecord, len(sum.All))
	copy(ranked, sum.All)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Growth != ranked[j].Growth {
			return ranked[i].Growth > ranked[j].Growth
		}
		return ranked[i].CountryCode < ranked[j].CountryCode
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	sum.Top = ranked
	return sum, nil
}
