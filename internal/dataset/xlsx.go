package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/vaxviz-cli/internal/utils"
	"github.com/xuri/excelize/v2"
)

type xlsxReader struct{}

func (xlsxReader) CanRead(filename string) bool {
	return utils.HasExt(filename, ".xlsx", ".xlsm")
}

// ReadRecords reads the configured sheet, or the first one, using raw cell values.
func (xlsxReader) ReadRecords(path string, opt LoadOptions) (*rawTable, error) {
	name := filepath.Base(path)
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{File: name, Err: errors.New("workbook has no sheets")}
	}
	sheet := sheets[0]
	if opt.Sheet != "" {
		sheet = ""
		for _, s := range sheets {
			if strings.EqualFold(s, opt.Sheet) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
				opt.Sheet, name, strings.Join(sheets, ", "))
		}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &ParseError{File: name, Err: fmt.Errorf("read sheet %s: %w", sheet, err)}
	}
	// Leading blank rows are not a header.
	start := 0
	for start < len(rows) && len(rows[start]) == 0 {
		start++
	}
	if start == len(rows) {
		return nil, &ParseError{File: name, Line: 1, Err: errors.New("missing header row")}
	}
	header := cleanHeader(rows[start])
	t := &rawTable{header: header}
	for i := start + 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}
		// GetRows trims trailing empty cells, so short rows are padded.
		if len(row) > len(header) {
			return nil, &ParseError{File: name, Line: i + 1,
				Err: fmt.Errorf("wrong number of fields: got %d, header has %d", len(row), len(header))}
		}
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			row = padded
		}
		t.rows = append(t.rows, row)
		t.lines = append(t.lines, i+1)
	}
	return t, nil
}
