package http

import (
	"context"
	"io"

	"github.com/vorobyoffn/Financial-Dashboard/internal/exporter"
	"github.com/vorobyoffn/Financial-Dashboard/pkg/contracts/domain"
)

// CatalogServiceInterface defines the catalog operations the handlers use.
type CatalogServiceInterface interface {
	ResolvePackages(ctx context.Context, filenames []string) []domain.PackageInfo
	InspectFile(ctx context.Context, path string) (domain.Catalog, error)
	InspectInput(ctx context.Context, name string) (domain.Catalog, error)
	ListInputs(ctx context.Context) ([]domain.InputFile, error)
	ScanInputs(ctx context.Context) ([]domain.Catalog, error)
}

// CatalogExporterInterface writes catalogs to the output directory.
type CatalogExporterInterface interface {
	Export(catalogs []domain.Catalog, formats ...string) (*exporter.ExportResult, error)
}

// FileStore stores uploaded input files.
type FileStore interface {
	Save(name string, r io.Reader) (string, error)
	Remove(name string) error
}
