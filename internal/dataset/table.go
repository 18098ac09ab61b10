package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// LoadOptions controls how an input table is read.
type LoadOptions struct {
	// Sheet selects the worksheet of an .xlsx input; empty means the first sheet.
	Sheet string
}

// Table is an input table held in memory. Rows keep the raw cells for strict
// typed parsing; Frame is gota's typed view with per-column type inference.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
	Frame  dataframe.DataFrame

	lines []int
	index map[string]int
}

// Load reads a table from path, picking a reader by extension.
func Load(path string, opt LoadOptions) (*Table, error) {
	r, err := readerFor(path)
	if err != nil {
		return nil, err
	}
	raw, err := r.ReadRecords(path, opt)
	if err != nil {
		return nil, err
	}
	t := &Table{
		Name:   filepath.Base(path),
		Header: raw.header,
		Rows:   raw.rows,
		lines:  raw.lines,
		index:  make(map[string]int, len(raw.header)),
	}
	for i, h := range raw.header {
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	if len(raw.rows) > 0 {
		records := make([][]string, 0, len(raw.rows)+1)
		records = append(records, raw.header)
		records = append(records, raw.rows...)
		t.Frame = dataframe.LoadRecords(records,
			dataframe.HasHeader(true),
			dataframe.DetectTypes(true),
			dataframe.NaNValues(nullTokens),
		)
		if t.Frame.Err != nil {
			return nil, &ParseError{File: t.Name, Err: t.Frame.Err}
		}
	}
	return t, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Index returns the position of a header cell.
func (t *Table) Index(col string) (int, bool) {
	i, ok := t.index[col]
	return i, ok
}

// Require fails with a *SchemaError when any of cols is missing from the header.
func (t *Table) Require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := t.index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &SchemaError{File: t.Name, Missing: missing, Available: t.Header}
}

// line returns the 1-based source line of data row i.
func (t *Table) line(i int) int {
	if i < len(t.lines) {
		return t.lines[i]
	}
	return i + 2
}

// ColumnKind pairs a column name with the type gota inferred for it.
type ColumnKind struct {
	Name string
	Kind string // int|float|string|bool
}

// Kinds returns the inferred type of every column, in header order.
// Columns of an empty table are reported as string.
func (t *Table) Kinds() []ColumnKind {
	out := make([]ColumnKind, len(t.Header))
	var types []series.Type
	if t.Len() > 0 {
		types = t.Frame.Types()
	}
	for i, h := range t.Header {
		k := string(series.String)
		if i < len(types) {
			k = string(types[i])
		}
		out[i] = ColumnKind{Name: h, Kind: k}
	}
	return out
}

// Describe renders the table's shape, inferred schema and gota summary statistics.
func (t *Table) Describe() string {
	var b strings.Builder
	b.WriteString("[TABLE]\n")
	fmt.Fprintf(&b, "File: %s\n", t.Name)
	fmt.Fprintf(&b, "Rows: %d\n", t.Len())
	fmt.Fprintf(&b, "Columns: %d\n\n", len(t.Header))
	b.WriteString("[SCHEMA]\n")
	for _, k := range t.Kinds() {
		fmt.Fprintf(&b, "- %s: %s\n", k.Name, k.Kind)
	}
	if t.Len() > 0 {
		b.WriteString("\n[STATISTICS]\n")
		b.WriteString(t.Frame.Describe().String())
		b.WriteString("\n")
	}
	return b.String()
}
