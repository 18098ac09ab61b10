// Package export writes the run's side outputs: the summary workbook and
// the run manifest.
package export

import (
	"fmt"

	"github.com/KaramelBytes/vaxviz-cli/internal/aggregate"
	"github.com/KaramelBytes/vaxviz-cli/internal/utils"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the summary workbook.
const (
	SheetTimeSeries = "TimeSeries"
	SheetSnapshot   = "Snapshot"
	SheetGrowth     = "Growth"
	SheetRegression = "Regression"
)

// Summary bundles the aggregates exported to the workbook.
type Summary struct {
	TimeSeries []aggregate.TimeSeriesPoint
	Snapshot   aggregate.Snapshot
	Scatter    aggregate.ScatterSummary
	Growth     aggregate.GrowthSummary
}

// WriteWorkbook writes the aggregates to an .xlsx file at path.
func WriteWorkbook(path string, s Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetTimeSeries); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetSnapshot, SheetGrowth, SheetRegression} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("new sheet %s: %w", name, err)
		}
	}

	sheets := []struct {
		name   string
		header []interface{}
		rows   [][]interface{}
	}{
		{SheetTimeSeries, []interface{}{"time_period", "coverage", "life_expectancy", "coverage_n", "life_expectancy_n"}, timeSeriesRows(s.TimeSeries)},
		{SheetSnapshot, []interface{}{"alpha_3_code", "time_period", "obs_value", "life_expectancy", "gdp_per_capita"}, snapshotRows(s.Snapshot)},
		{SheetGrowth, []interface{}{"rank", "alpha_3_code", "first_period", "last_period", "first_obs", "last_obs", "growth_pct"}, growthRows(s.Growth.Top)},
		{SheetRegression, []interface{}{"metric", "value"}, regressionRows(s.Scatter)},
	}
	for _, sh := range sheets {
		if err := writeSheet(f, sh.name, sh.header, sh.rows); err != nil {
			return err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("encode workbook: %w", err)
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}
	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, 18)
}

// cell leaves missing values as empty cells.
func cell(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func timeSeriesRows(points []aggregate.TimeSeriesPoint) [][]interface{} {
	rows := make([][]interface{}, 0, len(points))
	for _, p := range points {
		rows = append(rows, []interface{}{p.TimePeriod, cell(p.Coverage), cell(p.LifeExpectancy), p.CoverageN, p.LifeN})
	}
	return rows
}

func snapshotRows(s aggregate.Snapshot) [][]interface{} {
	rows := make([][]interface{}, 0, len(s.Rows))
	for _, r := range s.Rows {
		rows = append(rows, []interface{}{r.CountryCode, r.TimePeriod, cell(r.ObsValue), cell(r.LifeExpectancy), cell(r.GDPPerCapita)})
	}
	return rows
}

func growthRows(top []aggregate.GrowthRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(top))
	for i, g := range top {
		rows = append(rows, []interface{}{i + 1, g.CountryCode, g.FirstPeriod, g.LastPeriod, g.FirstObs, g.LastObs, g.Growth})
	}
	return rows
}

func regressionRows(s aggregate.ScatterSummary) [][]interface{} {
	rows := [][]interface{}{{"points", len(s.Points)}}
	if s.Fit == nil {
		reason := "no data"
		if s.FitErr != nil {
			reason = s.FitErr.Error()
		}
		return append(rows, []interface{}{"undefined", reason})
	}
	return append(rows,
		[]interface{}{"intercept", s.Fit.Intercept},
		[]interface{}{"slope", s.Fit.Slope},
		[]interface{}{"r_squared", s.Fit.RSquared},
		[]interface{}{"min_x", s.Fit.MinX},
		[]interface{}{"max_x", s.Fit.MaxX},
	)
}
