package dataset

import "strings"

// Table is a row-oriented in-memory Dataset. It is immutable once built.
type Table struct {
	columns []string
	lookup  map[string]int
	rows    [][]Value
}

// NewTable builds a table from a header and rows. Short rows are padded
// with nulls and long rows truncated to the header width. When two headers
// differ only in case, the first one wins lookups that do not match
// exactly.
func NewTable(columns []string, rows [][]Value) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		lookup:  make(map[string]int, len(columns)*2),
		rows:    make([][]Value, 0, len(rows)),
	}
	for i, name := range columns {
		if _, ok := t.lookup[name]; !ok {
			t.lookup[name] = i
		}
	}
	for i, name := range columns {
		folded := strings.ToLower(name)
		if _, ok := t.lookup[folded]; !ok {
			t.lookup[folded] = i
		}
	}
	for _, row := range rows {
		r := make([]Value, len(columns))
		copy(r, row)
		t.rows = append(t.rows, r)
	}
	return t
}

// FromRecords builds a table with the given column order from
// column→value maps. Keys not listed in order are ignored.
func FromRecords(order []string, records []map[string]Value) *Table {
	rows := make([][]Value, 0, len(records))
	for _, rec := range records {
		row := make([]Value, len(order))
		for i, col := range order {
			row[i] = rec[col]
		}
		rows = append(rows, row)
	}
	return NewTable(order, rows)
}

// Columns returns the header in source order.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.columns...)
}

func (t *Table) columnIndex(name string) (int, bool) {
	if t == nil {
		return 0, false
	}
	if i, ok := t.lookup[name]; ok {
		return i, true
	}
	i, ok := t.lookup[strings.ToLower(name)]
	return i, ok
}

// ColumnExists implements Dataset.
func (t *Table) ColumnExists(name string) bool {
	_, ok := t.columnIndex(name)
	return ok
}

// Get implements Dataset.
func (t *Table) Get(row int, column string) (Value, bool) {
	col, ok := t.columnIndex(column)
	if !ok || row < 0 || row >= len(t.rows) {
		return nil, false
	}
	return t.rows[row][col], true
}

// UniqueValues implements Dataset.
func (t *Table) UniqueValues(column string) []Value {
	col, ok := t.columnIndex(column)
	if !ok {
		return nil
	}
	return uniqueOf(len(t.rows), func(i int) Value { return t.rows[i][col] })
}

// RowCount implements Dataset.
func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

func uniqueOf(n int, at func(int) Value) []Value {
	seen := make(map[string]struct{})
	var out []Value
	for i := 0; i < n; i++ {
		v := at(i)
		if IsNull(v) {
			continue
		}
		k := valueKey(v)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}
