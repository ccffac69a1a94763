package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// CompanyRows is a small company export: header row first.
var CompanyRows = [][]interface{}{
	{"symbol", "company_name", "sector", "industry"},
	{"AAPL", "Apple Inc.", "Technology", "Consumer Electronics"},
	{"MSFT", "Microsoft", "Technology", "Software"},
	{"XOM", nil, "Energy", nil},
}

// IndexRows is a small index export with members and performance columns.
var IndexRows = [][]interface{}{
	{"index_symbol", "index_name", "index_type", "weighting_method", "symbol", "return_1d", "return_1y", "volatility"},
	{"SPX", "S&P 500", "Equity", "Market Cap", "AAPL", 0.012, 0.18, "0.2"},
	{"SPX", "S&P 500", "Equity", "Market Cap", "MSFT", 0.012, 0.18, "0.2"},
	{"NDX", "Nasdaq 100", nil, "Modified", "AAPL", "-0.5", nil, "N/A"},
}

// WriteWorkbook writes rows to sheet of a new workbook dir/name and
// returns its path.
func WriteWorkbook(t *testing.T, dir, name, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))

	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// WriteCSV writes records to dir/name and returns its path.
func WriteCSV(t *testing.T, dir, name string, records [][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(records))
	return path
}

// Touch sets the modification time of path.
func Touch(t *testing.T, path string, mod time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, mod, mod))
}
