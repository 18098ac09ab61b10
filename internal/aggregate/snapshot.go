package aggregate

import "github.com/KaramelBytes/vaxviz-cli/internal/dataset"

// Snapshot is the subset of merged rows at the latest time period.
// Year is 0 and Rows is empty when there is no data.
type Snapshot struct {
	Year int
	Rows []dataset.MergedRecord
}

// Empty reports whether the snapshot holds no rows.
func (s Snapshot) Empty() bool { return len(s.Rows) == 0 }

// Latest filters rows to the maximum time period present.
func Latest(rows []dataset.MergedRecord) Snapshot {
	if len(rows) == 0 {
		return Snapshot{}
	}
	year := rows[0].TimePeriod
	for _, r := range rows[1:] {
		if r.TimePeriod > year {
			year = r.TimePeriod
		}
	}
	s := Snapshot{Year: year}
	for _, r := range rows {
		if r.TimePeriod == year {
			s.Rows = append(s.Rows, r)
		}
	}
	return s
}
