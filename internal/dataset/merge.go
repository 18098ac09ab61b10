package dataset

// MergeOptions controls the indicator/metadata join.
type MergeOptions struct {
	// DedupeMetadata keeps only the first metadata row per key instead of
	// emitting one merged row per matching metadata row.
	DedupeMetadata bool
}

// MergeStats describes the outcome of a join.
type MergeStats struct {
	Rows          int // merged rows emitted
	Matched       int // indicator rows with at least one metadata match
	Unmatched     int // indicator rows null-filled
	DuplicateKeys int // metadata keys that occur more than once
}

type joinKey struct {
	code   string
	period int
}

// Merge left-joins indicator rows with metadata rows on (country code, time period).
// Indicator order is preserved; metadata matches follow metadata order.
// An empty country code never matches, so such indicator rows are null-filled.
func Merge(ind []IndicatorRecord, meta []MetadataRecord, opt MergeOptions) ([]MergedRecord, MergeStats) {
	var st MergeStats
	byKey := make(map[joinKey][]int, len(meta))
	seen := make(map[joinKey]int, len(meta))
	for i, m := range meta {
		if m.CountryCode == "" {
			continue
		}
		k := joinKey{m.CountryCode, m.TimePeriod}
		seen[k]++
		if seen[k] == 2 {
			st.DuplicateKeys++
		}
		if opt.DedupeMetadata && seen[k] > 1 {
			continue
		}
		byKey[k] = append(byKey[k], i)
	}

	out := make([]MergedRecord, 0, len(ind))
	for _, r := range ind {
		var matches []int
		if r.CountryCode != "" {
			matches = byKey[joinKey{r.CountryCode, r.TimePeriod}]
		}
		if len(matches) == 0 {
			st.Unmatched++
			out = append(out, MergedRecord{
				CountryCode: r.CountryCode,
				TimePeriod:  r.TimePeriod,
				ObsValue:    r.ObsValue,
			})
			continue
		}
		st.Matched++
		for _, mi := range matches {
			m := meta[mi]
			out = append(out, MergedRecord{
				CountryCode:    r.CountryCode,
				TimePeriod:     r.TimePeriod,
				ObsValue:       r.ObsValue,
				LifeExpectancy: m.LifeExpectancy,
				GDPPerCapita:   m.GDPPerCapita,
				Matched:        true,
			})
		}
	}
	st.Rows = len(out)
	return out, st
}
