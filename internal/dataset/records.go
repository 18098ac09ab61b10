package dataset

import "strings"

// IndicatorRecord is one (country, year) observation of the indicator table.
type IndicatorRecord struct {
	CountryCode string
	TimePeriod  int
	ObsValue    *float64
}

// MetadataRecord is one (country, year) row of the metadata table.
type MetadataRecord struct {
	CountryCode    string
	TimePeriod     int
	LifeExpectancy *float64
	GDPPerCapita   *float64
}

// MergedRecord is an indicator row joined with its metadata. The metadata
// fields are nil when no metadata row matched or the cell was missing.
type MergedRecord struct {
	CountryCode    string
	TimePeriod     int
	ObsValue       *float64
	LifeExpectancy *float64
	GDPPerCapita   *float64
	Matched        bool
}

// ParseStats counts the rows read while parsing typed records.
type ParseStats struct {
	Rows        int
	MissingCode int // rows kept with an empty country code
}

// ParseIndicators validates the indicator columns and parses every row.
// Rows with an empty country code are kept with CountryCode "" and counted.
func ParseIndicators(t *Table, cols Columns) ([]IndicatorRecord, ParseStats, error) {
	var st ParseStats
	if err := t.Require(cols.IndicatorColumns()...); err != nil {
		return nil, st, err
	}
	ci, _ := t.Index(cols.CountryCode)
	ti, _ := t.Index(cols.TimePeriod)
	oi, _ := t.Index(cols.ObsValue)

	out := make([]IndicatorRecord, 0, t.Len())
	for i, row := range t.Rows {
		st.Rows++
		code := normalizeCode(row[ci])
		if code == "" {
			st.MissingCode++
		}
		year, err := parseYear(row[ti])
		if err != nil {
			return nil, st, t.cellError(i, cols.TimePeriod, row[ti], err)
		}
		obs, err := parseNumber(row[oi])
		if err != nil {
			return nil, st, t.cellError(i, cols.ObsValue, row[oi], err)
		}
		out = append(out, IndicatorRecord{CountryCode: code, TimePeriod: year, ObsValue: obs})
	}
	return out, st, nil
}

// ParseMetadata validates the metadata columns and parses every row.
// Rows with an empty country code are kept and counted; Merge never joins them.
func ParseMetadata(t *Table, cols Columns) ([]MetadataRecord, ParseStats, error) {
	var st ParseStats
	if err := t.Require(cols.MetadataColumns()...); err != nil {
		return nil, st, err
	}
	ci, _ := t.Index(cols.CountryCode)
	ti, _ := t.Index(cols.TimePeriod)
	li, _ := t.Index(cols.LifeExpectancy)
	gi, _ := t.Index(cols.GDPPerCapita)

	out := make([]MetadataRecord, 0, t.Len())
	for i, row := range t.Rows {
		st.Rows++
		code := normalizeCode(row[ci])
		if code == "" {
			st.MissingCode++
		}
		year, err := parseYear(row[ti])
		if err != nil {
			return nil, st, t.cellError(i, cols.TimePeriod, row[ti], err)
		}
		life, err := parseNumber(row[li])
		if err != nil {
			return nil, st, t.cellError(i, cols.LifeExpectancy, row[li], err)
		}
		gdp, err := parseNumber(row[gi])
		if err != nil {
			return nil, st, t.cellError(i, cols.GDPPerCapita, row[gi], err)
		}
		out = append(out, MetadataRecord{CountryCode: code, TimePeriod: year, LifeExpectancy: life, GDPPerCapita: gdp})
	}
	return out, st, nil
}

func (t *Table) cellError(row int, col, val string, err error) error {
	return &ParseError{File: t.Name, Line: t.line(row), Column: col, Value: val, Err: err}
}

func normalizeCode(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if isNull(s) || s == "NAN" {
		return ""
	}
	return s
}
