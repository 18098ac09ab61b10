package dataset

import "fmt"

// Reader loads the raw cells of a table: a header row followed by data rows.
type Reader interface {
	CanRead(filename string) bool
	ReadRecords(path string, opt LoadOptions) (*rawTable, error)
}

// rawTable is the untyped result of a Reader. lines[i] is the 1-based source
// line (or sheet row) of rows[i].
type rawTable struct {
	header []string
	rows   [][]string
	lines  []int
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

func readerFor(path string) (Reader, error) {
	for _, r := range registry {
		if r.CanRead(path) {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%s: %w (use .csv, .tsv or .xlsx)", path, ErrUnsupported)
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
}
