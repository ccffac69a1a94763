package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vorobyoffn/Financial-Dashboard/pkg/contracts/domain"
)

// Default export file names.
const (
	CompaniesFile = "companies.csv"
	IndicesFile   = "indices.csv"
	PackagesFile  = "packages.csv"
	CatalogFile   = "catalog.json"
)

// CompanyHeaders is the column order of the companies export.
var CompanyHeaders = []string{"package", "symbol", "name", "sector", "industry", "description"}

// IndexHeaders is the column order of the indices export.
var IndexHeaders = append([]string{"package", "symbol", "name", "type", "weighting", "components"},
	domain.PerformanceMetricNames...)

// PackageHeaders is the column order of the packages export.
var PackageHeaders = []string{"filename", "package_name", "date", "year", "month", "day"}

// CatalogExporter writes resolved catalogs to the output directory.
type CatalogExporter struct {
	csv       *CSVWriter
	outputDir string
	logger    *slog.Logger
}

// NewCatalogExporter creates an exporter writing into outputDir.
func NewCatalogExporter(outputDir string, logger *slog.Logger) *CatalogExporter {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "catalog_exporter"))
	return &CatalogExporter{
		csv:       NewCSVWriter(outputDir, logger),
		outputDir: outputDir,
		logger:    logger,
	}
}

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ExportResult lists the files one export wrote.
type ExportResult struct {
	Companies string `json:"companies,omitempty"`
	Indices   string `json:"indices,omitempty"`
	Packages  string `json:"packages,omitempty"`
	Catalog   string `json:"catalog,omitempty"`
}

// Files returns the written files keyed by export name.
func (r *ExportResult) Files() map[string]string {
	files := make(map[string]string, 4)
	for k, v := range map[string]string{
		"companies": r.Companies,
		"indices":   r.Indices,
		"packages":  r.Packages,
		"catalog":   r.Catalog,
	} {
		if v != "" {
			files[k] = v
		}
	}
	return files
}

// Export writes catalogs in the given formats, or in every format when
// none is given. Unknown formats are ignored.
func (e *CatalogExporter) Export(catalogs []domain.Catalog, formats ...string) (*ExportResult, error) {
	want := map[string]bool{FormatCSV: len(formats) == 0, FormatJSON: len(formats) == 0}
	for _, f := range formats {
		want[f] = true
	}

	var (
		res ExportResult
		err error
	)

	if want[FormatCSV] {
		pkgs := make([]domain.PackageInfo, 0, len(catalogs))
		for _, c := range catalogs {
			pkgs = append(pkgs, c.Package)
		}
		if res.Companies, err = e.WriteCompaniesCSV(CompaniesFile, catalogs); err != nil {
			return nil, err
		}
		if res.Indices, err = e.WriteIndicesCSV(IndicesFile, catalogs); err != nil {
			return nil, err
		}
		if res.Packages, err = e.WritePackagesCSV(PackagesFile, pkgs); err != nil {
			return nil, err
		}
	}
	if want[FormatJSON] {
		if res.Catalog, err = e.WriteJSON(CatalogFile, catalogs); err != nil {
			return nil, err
		}
	}

	e.logger.Info("Catalog export complete",
		slog.Int("catalogs", len(catalogs)),
		slog.Int("files", len(res.Files())),
		slog.String("output_dir", e.outputDir))
	return &res, nil
}

// WriteCompaniesCSV writes one row per company of every catalog.
func (e *CatalogExporter) WriteCompaniesCSV(name string, catalogs []domain.Catalog) (string, error) {
	var records [][]string
	for _, c := range catalogs {
		for _, co := range c.Companies {
			records = append(records, []string{
				c.Package.PackageName, co.Symbol, co.Name, co.Sector, co.Industry, co.Description,
			})
		}
	}
	return e.csv.WriteSimpleCSV(name, CompanyHeaders, records)
}

// WriteIndicesCSV writes one row per index of every catalog, components
// joined with ListSeparator and metrics in PerformanceMetricNames order.
func (e *CatalogExporter) WriteIndicesCSV(name string, catalogs []domain.Catalog) (string, error) {
	var records [][]string
	for _, c := range catalogs {
		for _, entry := range c.Indices {
			idx := entry.Index
			rec := []string{
				c.Package.PackageName, idx.Symbol, idx.Name, idx.Type, idx.Weighting, formatList(idx.Components),
			}
			for _, metric := range domain.PerformanceMetricNames {
				v, _ := entry.Performance.Get(metric)
				rec = append(rec, formatFloat(v))
			}
			records = append(records, rec)
		}
	}
	return e.csv.WriteSimpleCSV(name, IndexHeaders, records)
}

// WritePackagesCSV writes one row per package descriptor.
func (e *CatalogExporter) WritePackagesCSV(name string, pkgs []domain.PackageInfo) (string, error) {
	records := make([][]string, 0, len(pkgs))
	for _, p := range pkgs {
		d := p.DateInfo
		records = append(records, []string{p.Filename, p.PackageName, d.Date, d.Year, d.Month, d.Day})
	}
	return e.csv.WriteSimpleCSV(name, PackageHeaders, records)
}

// WriteJSON writes v as indented JSON.
func (e *CatalogExporter) WriteJSON(name string, v interface{}) (string, error) {
	path := e.csv.resolvePath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	e.logger.Info("Wrote JSON export", slog.String("full_path", path), slog.Int("bytes", len(data)))
	return path, nil
}
