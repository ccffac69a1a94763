package metadata

import (
	"strings"

	"github.com/vorobyoffn/Financial-Dashboard/internal/dataset"
)

// keyColumn returns the first identifying column present in ds.
func keyColumn(ds dataset.Dataset, candidates []string) (string, bool) {
	if ds == nil {
		return "", false
	}
	for _, col := range candidates {
		if ds.ColumnExists(col) {
			return col, true
		}
	}
	return "", false
}

// scope narrows ds to the rows that belong to key. Without an identifying
// column every row is taken to belong to the key.
func scope(ds dataset.Dataset, key string, keyColumns []string) dataset.Dataset {
	if ds == nil {
		return nil
	}
	if col, ok := keyColumn(ds, keyColumns); ok {
		return dataset.Where(ds, col, key)
	}
	return ds
}

// fillFields overwrites defaults with values from the first row for key. Only
// fields whose column exists and holds a non-null value are touched.
func fillFields(ds dataset.Dataset, key string, schema EntitySchema, defaults map[string]string) map[string]string {
	rows := scope(ds, key, schema.KeyColumns)
	if rows == nil || rows.RowCount() == 0 {
		return defaults
	}
	for _, f := range schema.Fields {
		if !rows.ColumnExists(f.Column) {
			continue
		}
		v, ok := rows.Get(0, f.Column)
		if !ok || dataset.IsNull(v) {
			continue
		}
		defaults[f.Field] = dataset.String(v)
	}
	return defaults
}

// entityKeys returns the identifying column and its distinct non-blank
// keys, in first-seen order.
func entityKeys(ds dataset.Dataset, candidates []string) (string, []string) {
	col, ok := keyColumn(ds, candidates)
	if !ok {
		return "", nil
	}
	seen := make(map[string]struct{})
	var keys []string
	for _, v := range ds.UniqueValues(col) {
		if dataset.IsNull(v) {
			continue
		}
		key := dataset.String(v)
		if strings.TrimSpace(key) == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return col, keys
}
