// Package table holds row-oriented delimited tables with a header row.
// Columns the caller does not know about are carried through untouched.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

// New builds a table from a header and rows. Rows shorter than the header are padded.
func New(header []string, rows [][]string) *Table {
	t := &Table{Header: append([]string(nil), header...)}
	t.reindex()
	t.Rows = make([][]string, len(rows))
	for i, row := range rows {
		t.Rows[i] = t.pad(row)
	}
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		t.index[strings.TrimSpace(name)] = i
	}
}

func (t *Table) pad(row []string) []string {
	out := make([]string, len(t.Header))
	copy(out, row)
	return out
}

// ReadFile loads a table from a CSV file
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// Read parses CSV with a header row
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, rec)
	}
	return New(header, rows), nil
}

// Write renders the table as CSV
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// Col returns the index of a column
func (t *Table) Col(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Require fails when any of the named columns is missing
func (t *Table) Require(names ...string) error {
	var missing []string
	for _, name := range names {
		if _, ok := t.index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required columns missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Value returns the cell of row i in the named column, "" when the column is absent
func (t *Table) Value(i int, name string) string {
	col, ok := t.index[name]
	if !ok {
		return ""
	}
	return strings.TrimSpace(t.Rows[i][col])
}

// Len is the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Clone deep-copies the table
func (t *Table) Clone() *Table {
	return New(t.Header, t.Rows)
}

// Select returns a new table holding the given rows in the given order
func (t *Table) Select(rows []int) *Table {
	out := &Table{Header: append([]string(nil), t.Header...)}
	out.reindex()
	out.Rows = make([][]string, len(rows))
	for i, r := range rows {
		out.Rows[i] = append([]string(nil), t.Rows[r]...)
	}
	return out
}

// EnsureColumn returns the index of name, appending an empty column if needed
func (t *Table) EnsureColumn(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	t.Header = append(t.Header, name)
	t.index[name] = len(t.Header) - 1
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
	return len(t.Header) - 1
}

// Set writes a cell, adding the column when it does not exist yet
func (t *Table) Set(i int, name, value string) {
	col := t.EnsureColumn(name)
	t.Rows[i][col] = value
}
