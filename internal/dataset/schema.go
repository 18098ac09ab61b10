package dataset

// Columns names the header cells holding each logical field.
type Columns struct {
	CountryCode    string
	TimePeriod     string
	ObsValue       string
	LifeExpectancy string
	GDPPerCapita   string
}

// DefaultColumns returns the header names used by the UNICEF exports.
func DefaultColumns() Columns {
	return Columns{
		CountryCode:    "alpha_3_code",
		TimePeriod:     "time_period",
		ObsValue:       "obs_value",
		LifeExpectancy: "Life expectancy at birth, total (years)",
		GDPPerCapita:   "GDP per capita (constant 2015 US$)",
	}
}

// IndicatorColumns lists the columns an indicator table must carry.
func (c Columns) IndicatorColumns() []string {
	return []string{c.CountryCode, c.TimePeriod, c.ObsValue}
}

// MetadataColumns lists the columns a metadata table must carry.
func (c Columns) MetadataColumns() []string {
	return []string{c.CountryCode, c.TimePeriod, c.LifeExpectancy, c.GDPPerCapita}
}
