// Package table reads CSV input into an in-memory string table.
package table

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEmptyTable is returned when the input has no header row.
var ErrEmptyTable = errors.New("table: empty input")

// naValues are cell values treated as missing.
var naValues = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"n/a":  true,
	"#N/A": true,
	"NaN":  true,
	"nan":  true,
	"-NaN": true,
	"-nan": true,
	"null": true,
	"NULL": true,
	"None": true,
	"<NA>": true,
}

// IsNA reports whether a cell is a missing value.
func IsNA(cell string) bool {
	return naValues[strings.TrimSpace(cell)]
}

// Table is a header plus data rows. Every row has len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.Header)
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// Column returns the cells of column j.
func (t *Table) Column(j int) []string {
	col := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		col[i] = row[j]
	}
	return col
}

// ReadFile loads a CSV file.
func ReadFile(filename string) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	t, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return t, nil
}

// ReadCSV reads a CSV stream whose first record is the header.
// Rows may be ragged: short rows are padded with empty cells and
// long rows widen the header with unnamed columns.
// A leading UTF-8 byte order mark is skipped.
func ReadCSV(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	if ch, _, err := br.ReadRune(); err == nil && ch != '\ufeff' {
		_ = br.UnreadRune()
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrEmptyTable
	}

	width := 0
	for _, record := range records {
		width = max(width, len(record))
	}

	t := &Table{
		Header: pad(records[0], width),
		Rows:   make([][]string, 0, len(records)-1),
	}
	for j, name := range t.Header {
		if name == "" {
			t.Header[j] = fmt.Sprintf("Unnamed: %d", j)
		}
	}
	for _, record := range records[1:] {
		if blank(record) {
			continue
		}
		t.Rows = append(t.Rows, pad(record, width))
	}

	return t, nil
}

func pad(record []string, width int) []string {
	row := make([]string, width)
	for j, cell := range record {
		row[j] = strings.TrimSpace(cell)
	}
	return row
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
