package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/vaxviz-cli/internal/utils"
)

type csvReader struct{}

func (csvReader) CanRead(filename string) bool {
	return utils.HasExt(filename, ".csv", ".tsv", ".txt")
}

func (csvReader) ReadRecords(path string, _ LoadOptions) (*rawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close()
	return readDelimited(f, filepath.Base(path), sniffDelimiter(path))
}

func readDelimited(src io.Reader, name string, delim rune) (*rawTable, error) {
	r := csv.NewReader(src)
	r.Comma = delim
	r.TrimLeadingSpace = true
	// FieldsPerRecord == 0: every row must match the header width.

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{File: name, Line: 1, Err: errors.New("missing header row")}
		}
		return nil, csvError(name, err)
	}
	header = cleanHeader(header)
	t := &rawTable{header: header}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, csvError(name, err)
		}
		line, _ := r.FieldPos(0)
		t.rows = append(t.rows, rec)
		t.lines = append(t.lines, line)
	}
	return t, nil
}

func csvError(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{File: name, Line: pe.Line, Err: pe.Err}
	}
	return &ParseError{File: name, Err: err}
}

func sniffDelimiter(path string) rune {
	if utils.HasExt(path, ".tsv") {
		return '\t'
	}
	return ','
}

// cleanHeader trims header cells and drops a UTF-8 byte order mark.
func cleanHeader(h []string) []string {
	out := make([]string, len(h))
	for i, s := range h {
		if i == 0 {
			s = strings.TrimPrefix(s, "\ufeff")
		}
		out[i] = strings.TrimSpace(s)
	}
	return out
}

func openError(path string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("open %s: %w", path, errors.Join(ErrNotFound, err))
	}
	return fmt.Errorf("open %s: %w", path, err)
}
