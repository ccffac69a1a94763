package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Value is a single scalar cell. nil is a null cell.
type Value = any

// Dataset is the read-only capability set the resolvers rely on.
type Dataset interface {
	// ColumnExists reports whether the column is present (case-insensitive).
	ColumnExists(name string) bool
	// Get returns the cell at row/column. ok is false when the row is out
	// of range or the column is missing; a present null cell is (nil, true).
	Get(row int, column string) (Value, bool)
	// UniqueValues returns the distinct non-null values of a column in
	// first-seen order.
	UniqueValues(column string) []Value
	// RowCount returns the number of rows.
	RowCount() int
}

// IsNull reports whether v is a null cell. NaN floats count as null.
func IsNull(v Value) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}

// String coerces a cell to its string form. Null cells yield "".
func String(v Value) string {
	if IsNull(v) {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// IsBlank reports whether v is null or only whitespace once stringified.
func IsBlank(v Value) bool {
	return strings.TrimSpace(String(v)) == ""
}

// Float coerces a cell to float64. Strings are trimmed before parsing;
// anything else in them, including "," separators, makes the text
// non-numeric. ok is false for null cells, non-numeric text and
// non-finite results.
func Float(v Value) (float64, bool) {
	if IsNull(v) {
		return 0, false
	}
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	case bool:
		if x {
			f = 1
		}
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// valueKey identifies a cell for distinctness. 1 and "1" stay distinct.
func valueKey(v Value) string {
	return fmt.Sprintf("%T:%s", v, String(v))
}
