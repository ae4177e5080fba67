package ingest

import (
	"strings"

	"github.com/rotisserie/eris"
)

const fieldDelimiter = ","

// Row is one data line split into raw cells. Index is the 1-based position
// of the line among non-blank data lines, so skipped rows still consume an
// index.
type Row struct {
	Index int
	Cells []string
}

// Table is the parsed form of an uploaded file.
type Table struct {
	Headers   []string
	Rows      []Row
	DataLines int
	Skipped   []int
}

// Parse splits delimited text into a header and data rows.
//
// This is a naive splitter: quoted fields and embedded delimiters are not
// supported. Rows with fewer cells than the header are dropped and their
// indexes recorded in Table.Skipped.
func Parse(content string) (*Table, error) {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, eris.Wrap(ErrEmptyFile, "ingest: parse")
	}

	t := &Table{Headers: NormalizeHeaders(strings.Split(lines[0], fieldDelimiter))}
	for i, line := range lines[1:] {
		t.DataLines++
		cells := strings.Split(line, fieldDelimiter)
		if len(cells) < len(t.Headers) {
			t.Skipped = append(t.Skipped, i+1)
			continue
		}
		t.Rows = append(t.Rows, Row{Index: i + 1, Cells: cells})
	}
	return t, nil
}

// NormalizeHeaders trims and lower-cases header names.
func NormalizeHeaders(raw []string) []string {
	out := make([]string, len(raw))
	for i, h := range raw {
		out[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return out
}
