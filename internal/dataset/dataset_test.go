package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	return NewTable(
		[]string{"Symbol", "company_name", "return_1d"},
		[][]Value{
			{"AAA", "Alpha", "1.5"},
			{"AAA", "Alpha again", 2.0},
			{"BBB", nil, "N/A"},
			{nil, "Ghost"},
			{"", "Blank"},
		},
	)
}

func TestTableColumnLookupIsCaseInsensitive(t *testing.T) {
	tbl := sampleTable()

	assert.True(t, tbl.ColumnExists("Symbol"))
	assert.True(t, tbl.ColumnExists("symbol"))
	assert.True(t, tbl.ColumnExists("COMPANY_NAME"))
	assert.False(t, tbl.ColumnExists("sector"))
}

func TestTableGet(t *testing.T) {
	tbl := sampleTable()

	v, ok := tbl.Get(0, "company_name")
	require.True(t, ok)
	assert.Equal(t, "Alpha", v)

	// short rows are padded with nulls
	v, ok = tbl.Get(3, "return_1d")
	require.True(t, ok)
	assert.Nil(t, v)

	_, ok = tbl.Get(99, "symbol")
	assert.False(t, ok)
	_, ok = tbl.Get(-1, "symbol")
	assert.False(t, ok)
	_, ok = tbl.Get(0, "missing")
	assert.False(t, ok)
}

func TestTableUniqueValues(t *testing.T) {
	tbl := sampleTable()

	assert.Equal(t, []Value{"AAA", "BBB", ""}, tbl.UniqueValues("symbol"))
	assert.Nil(t, tbl.UniqueValues("missing"))
}

func TestNilTableIsEmpty(t *testing.T) {
	var tbl *Table

	assert.Equal(t, 0, tbl.RowCount())
	assert.False(t, tbl.ColumnExists("symbol"))
	_, ok := tbl.Get(0, "symbol")
	assert.False(t, ok)
	assert.Nil(t, tbl.UniqueValues("symbol"))
}

func TestWhere(t *testing.T) {
	tbl := sampleTable()

	aaa := Where(tbl, "symbol", "AAA")
	assert.Equal(t, 2, aaa.RowCount())
	v, ok := aaa.Get(1, "company_name")
	require.True(t, ok)
	assert.Equal(t, "Alpha again", v)
	assert.Equal(t, []Value{"Alpha", "Alpha again"}, aaa.UniqueValues("company_name"))

	none := Where(tbl, "symbol", "ZZZ")
	assert.Equal(t, 0, none.RowCount())
	assert.True(t, none.ColumnExists("symbol"))

	missing := Where(tbl, "ticker", "AAA")
	assert.Equal(t, 0, missing.RowCount())

	assert.Equal(t, 0, Where(nil, "symbol", "AAA").RowCount())
}

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected string
	}{
		{name: "null", input: nil, expected: ""},
		{name: "nan", input: math.NaN(), expected: ""},
		{name: "string", input: " AAA ", expected: " AAA "},
		{name: "integral float", input: 12.0, expected: "12"},
		{name: "fractional float", input: 0.125, expected: "0.125"},
		{name: "int", input: 42, expected: "42"},
		{name: "int64", input: int64(-7), expected: "-7"},
		{name: "bool", input: true, expected: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, String(tt.input))
		})
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected float64
		ok       bool
	}{
		{name: "float", input: 1.25, expected: 1.25, ok: true},
		{name: "int", input: 3, expected: 3, ok: true},
		{name: "numeric string", input: " 2.5 ", expected: 2.5, ok: true},
		{name: "thousands separator", input: "1,234.5", ok: false},
		{name: "decimal comma", input: "0,012", ok: false},
		{name: "comma list", input: "1,2,3", ok: false},
		{name: "negative string", input: "-0.03", expected: -0.03, ok: true},
		{name: "bool true", input: true, expected: 1, ok: true},
		{name: "not a number", input: "N/A", ok: false},
		{name: "empty string", input: "", ok: false},
		{name: "null", input: nil, ok: false},
		{name: "nan", input: math.NaN(), ok: false},
		{name: "nan string", input: "NaN", ok: false},
		{name: "infinity", input: math.Inf(1), ok: false},
		{name: "unsupported type", input: []string{"1"}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Float(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.expected, got, 1e-9)
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(nil))
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   "))
	assert.False(t, IsBlank("A"))
	assert.False(t, IsBlank(0))
}

func TestFromRecords(t *testing.T) {
	tbl := FromRecords([]string{"symbol", "sector"}, []map[string]Value{
		{"symbol": "AAA", "sector": "Tech", "ignored": 1},
		{"symbol": "BBB"},
	})

	assert.Equal(t, []string{"symbol", "sector"}, tbl.Columns())
	assert.Equal(t, 2, tbl.RowCount())
	assert.False(t, tbl.ColumnExists("ignored"))
	v, ok := tbl.Get(1, "sector")
	require.True(t, ok)
	assert.Nil(t, v)
}
