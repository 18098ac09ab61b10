package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates an input table path does not exist.
var ErrNotFound = errors.New("input table not found")

// ErrUnsupported indicates a file format no registered reader accepts.
var ErrUnsupported = errors.New("unsupported table format")

// ParseError reports a malformed row or cell. Line is 1-based and counts the header.
type ParseError struct {
	File   string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse ")
	b.WriteString(e.File)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " value %q", e.Value)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError indicates required columns are absent from a table header.
type SchemaError struct {
	File      string
	Missing   []string
	Available []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required column(s) %s.\nAvailable columns: %s",
		e.File, quoteAll(e.Missing), strings.Join(e.Available, ", "))
}

func quoteAll(ss []string) string {
	q := make([]string, len(ss))
	for i, s := range ss {
		q[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(q, ", ")
}
