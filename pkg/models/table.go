package models

import "maps"

// Row is a single record keyed by column name. A missing value is nil.
type Row map[string]interface{}

// Table is an in-memory columnar dataset flowing through the pipeline.
// Columns keeps the source order; every row carries a key for each column.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether the table declares column.
func (t *Table) HasColumn(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// AddColumn declares column if it is not already present. Existing rows get nil.
func (t *Table) AddColumn(column string) {
	if t.HasColumn(column) {
		return
	}
	t.Columns = append(t.Columns, column)
	for _, r := range t.Rows {
		if _, ok := r[column]; !ok {
			r[column] = nil
		}
	}
}

// Append adds a row, filling undeclared columns with nil.
func (t *Table) Append(r Row) {
	row := make(Row, len(t.Columns))
	for _, c := range t.Columns {
		row[c] = r[c]
	}
	t.Rows = append(t.Rows, row)
}

// Clone returns a copy that shares no rows or column slices with t.
// Values themselves are treated as immutable.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = maps.Clone(r)
	}
	return out
}

// Column returns the values of column in row order.
func (t *Table) Column(column string) []interface{} {
	out := make([]interface{}, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[column]
	}
	return out
}
