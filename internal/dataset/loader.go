package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for files that are neither workbooks
// nor CSV exports.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrNoData is returned when a source has no header row at all.
var ErrNoData = errors.New("no tabular data found")

// Excel 97-2003 .xls files are binary BIFF, which excelize cannot open.
var workbookExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// LoadOptions tunes how a source is read.
type LoadOptions struct {
	// Sheet forces a worksheet by name. Empty means the first sheet that
	// has a header row.
	Sheet string
	// Logger receives debug output. Defaults to slog.Default().
	Logger *slog.Logger
}

// IsSupported reports whether the filename has a loadable extension.
func IsSupported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".csv" || workbookExtensions[ext]
}

// LoadFile reads a workbook or CSV file from disk.
func LoadFile(path string, opts ...LoadOptions) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && !workbookExtensions[ext] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if ext == ".csv" {
		return ReadCSV(f)
	}
	return ReadWorkbook(f, opts...)
}

// ReadWorkbook reads the data sheet of an Excel workbook.
func ReadWorkbook(r io.Reader, opts ...LoadOptions) (*Table, error) {
	opt := mergeOptions(opts)

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if opt.Sheet != "" {
		sheets = nil
		for _, name := range f.GetSheetList() {
			if strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(opt.Sheet)) {
				sheets = []string{name}
				break
			}
		}
		if len(sheets) == 0 {
			return nil, fmt.Errorf("sheet %q not found in workbook", opt.Sheet)
		}
	}

	for _, name := range sheets {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			opt.Logger.Debug("Skipping unreadable sheet",
				slog.String("sheet_name", name),
				slog.String("error", err.Error()))
			continue
		}
		tbl, err := buildTable(rows)
		if errors.Is(err, ErrNoData) {
			continue
		}
		if err != nil {
			return nil, err
		}
		opt.Logger.Debug("Loaded worksheet",
			slog.String("sheet_name", name),
			slog.Int("columns", len(tbl.columns)),
			slog.Int("rows", tbl.RowCount()))
		return tbl, nil
	}
	return nil, ErrNoData
}

// ReadCSV reads a CSV export. A UTF-8 BOM on the header is dropped.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return buildTable(records)
}

// buildTable treats the first non-blank row as the header. Blank rows are
// dropped and empty cells become nulls.
func buildTable(records [][]string) (*Table, error) {
	headerRow := -1
	for i, rec := range records {
		if !blankRecord(rec) {
			headerRow = i
			break
		}
	}
	if headerRow == -1 {
		return nil, ErrNoData
	}

	header := make([]string, len(records[headerRow]))
	for i, h := range records[headerRow] {
		header[i] = strings.TrimSpace(h)
	}

	rows := make([][]Value, 0, len(records)-headerRow-1)
	for _, rec := range records[headerRow+1:] {
		if blankRecord(rec) {
			continue
		}
		row := make([]Value, len(header))
		for i := 0; i < len(header) && i < len(rec); i++ {
			if strings.TrimSpace(rec[i]) != "" {
				row[i] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return NewTable(header, rows), nil
}

func blankRecord(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func mergeOptions(opts []LoadOptions) LoadOptions {
	var opt LoadOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	return opt
}
