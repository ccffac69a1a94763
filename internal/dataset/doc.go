// Package dataset provides the tabular view the metadata resolvers read
// from, plus loaders that build it from Excel workbooks and CSV exports.
//
// # Capability interface
//
// Resolvers never depend on a concrete table type. They read through
// Dataset, which any columnar or row-oriented in-memory table can
// implement:
//
//	ColumnExists(name) bool
//	Get(row, column) (Value, bool)
//	UniqueValues(column) []Value
//	RowCount() int
//
// Column lookup is case-insensitive. A nil Value is a null cell.
//
// # Loading
//
//	tbl, err := dataset.LoadFile("Input/Package_US_2024_01_15.xlsx")
//	if err != nil {
//	    return err
//	}
//	view := dataset.Where(tbl, "symbol", "AAPL")
//
// Workbook cells are read raw (no number formatting) and kept as strings;
// type coercion is left to the consumer (see Float and String).
package dataset
