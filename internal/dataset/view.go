package dataset

// view is a row subset of another Dataset.
type view struct {
	base Dataset
	rows []int
}

// Where returns the rows of ds whose value in column stringifies to key.
// A nil ds or a missing column yields an empty view.
func Where(ds Dataset, column, key string) Dataset {
	v := &view{base: ds}
	if ds == nil || !ds.ColumnExists(column) {
		return v
	}
	for i := 0; i < ds.RowCount(); i++ {
		cell, ok := ds.Get(i, column)
		if ok && !IsNull(cell) && String(cell) == key {
			v.rows = append(v.rows, i)
		}
	}
	return v
}

func (v *view) ColumnExists(name string) bool {
	return v.base != nil && v.base.ColumnExists(name)
}

func (v *view) Get(row int, column string) (Value, bool) {
	if row < 0 || row >= len(v.rows) {
		return nil, false
	}
	return v.base.Get(v.rows[row], column)
}

func (v *view) UniqueValues(column string) []Value {
	if !v.ColumnExists(column) {
		return nil
	}
	return uniqueOf(len(v.rows), func(i int) Value {
		cell, _ := v.base.Get(v.rows[i], column)
		return cell
	})
}

func (v *view) RowCount() int {
	return len(v.rows)
}
