// Package table holds the raw, string-typed sheet representation shared by the
// readers and the entity loaders, and the column normalizer that maps vendor
// header spellings onto canonical field names.
package table

import (
	"slices"
	"strings"
)

// Table is a header plus string rows as read from one sheet.
// Rows may be ragged; missing trailing cells read as empty.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New creates a table from a header and rows
func New(columns []string, rows [][]string) *Table {
	return &Table{Columns: columns, Rows: rows}
}

// FromRows builds a table whose header is rows[headerRow]; rows above the header are dropped
func FromRows(rows [][]string, headerRow int) *Table {
	if headerRow < 0 || headerRow >= len(rows) {
		return &Table{}
	}
	header := make([]string, len(rows[headerRow]))
	for i, h := range rows[headerRow] {
		header[i] = strings.TrimSpace(h)
	}
	return &Table{Columns: header, Rows: rows[headerRow+1:]}
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of col or -1
func (t *Table) Index(col string) int {
	return slices.Index(t.Columns, col)
}

// Has reports whether the table carries col
func (t *Table) Has(col string) bool {
	return t.Index(col) >= 0
}

// Value returns the trimmed cell at row for col, or "" when either is absent
func (t *Table) Value(row int, col string) string {
	idx := t.Index(col)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return Cell(t.Rows[row], idx)
}

// Cell returns the trimmed cell at idx of a ragged row
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// WithColumns returns a copy of the table whose first len(names) columns are renamed positionally.
// Used for sheets whose header text is unreliable and only the column order is fixed.
func (t *Table) WithColumns(names []string) *Table {
	out := t.Clone()
	for i, name := range names {
		if i < len(out.Columns) {
			out.Columns[i] = name
		} else {
			out.Columns = append(out.Columns, name)
		}
	}
	return out
}

// Clone returns a deep copy
func (t *Table) Clone() *Table {
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = slices.Clone(r)
	}
	return &Table{Columns: slices.Clone(t.Columns), Rows: rows}
}
