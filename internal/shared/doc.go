// Package shared holds code used across packages that belongs to no single
// layer.
//
// The testutil subpackage provides the buffered slog handler used to
// capture log output in tests and fixture writers for workbooks and csv
// exports:
//
//	func TestSomething(t *testing.T) {
//	    logger, handler := testutil.NewTestLogger(t)
//	    path := testutil.WriteWorkbook(t, t.TempDir(), "Package_ISX_2024_01_31.xlsx", "", testutil.CompanyRows)
//	    // ...
//	    assert.True(t, handler.ContainsMessage("Scanned input files"))
//	}
package shared
