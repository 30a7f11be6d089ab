// Package table provides a minimal in-memory representation of a
// comma-separated dataset: an ordered header and rows of string cells.
package table

import "slices"

// Table is a named tabular dataset as read from a source.
// Every row has exactly len(Header) cells.
type Table struct {
	// Name identifies the dataset in messages (e.g. "cons").
	Name string

	// Header contains column names in source order.
	Header []string

	// Rows contains cells in the same order as Header.
	Rows [][]string
}

// New creates a Table, padding or trimming rows to the header width.
func New(name string, header []string, rows [][]string) *Table {
	width := len(header)
	for i, row := range rows {
		switch {
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			rows[i] = padded
		case len(row) > width:
			rows[i] = row[:width]
		}
	}
	return &Table{Name: name, Header: header, Rows: rows}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of a column, or -1 if the column is absent.
// If a name repeats, the first occurrence wins.
func (t *Table) Index(column string) int {
	if t == nil {
		return -1
	}
	return slices.Index(t.Header, column)
}

// Missing returns the columns from the list that are absent in the
// header, preserving their order.
func (t *Table) Missing(columns ...string) []string {
	var res []string
	for _, v := range columns {
		if t.Index(v) < 0 {
			res = append(res, v)
		}
	}
	return res
}

// Columns maps column names to their positions.
// It returns ok == false when any column is absent.
func (t *Table) Columns(columns ...string) (map[string]int, bool) {
	res := make(map[string]int, len(columns))
	for _, v := range columns {
		idx := t.Index(v)
		if idx < 0 {
			return nil, false
		}
		res[v] = idx
	}
	return res, true
}
