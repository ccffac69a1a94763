package http

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	apierrors "github.com/vorobyoffn/Financial-Dashboard/internal/errors"
	"github.com/vorobyoffn/Financial-Dashboard/internal/exporter"
	"github.com/vorobyoffn/Financial-Dashboard/pkg/contracts/domain"
)

// MockCatalogService is a mock implementation of CatalogServiceInterface
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ResolvePackages(ctx context.Context, filenames []string) []domain.PackageInfo {
	args := m.Called(filenames)
	return args.Get(0).([]domain.PackageInfo)
}

func (m *MockCatalogService) InspectFile(ctx context.Context, path string) (domain.Catalog, error) {
	args := m.Called(path)
	return args.Get(0).(domain.Catalog), args.Error(1)
}

func (m *MockCatalogService) InspectInput(ctx context.Context, name string) (domain.Catalog, error) {
	args := m.Called(name)
	return args.Get(0).(domain.Catalog), args.Error(1)
}

func (m *MockCatalogService) ListInputs(ctx context.Context) ([]domain.InputFile, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InputFile), args.Error(1)
}

func (m *MockCatalogService) ScanInputs(ctx context.Context) ([]domain.Catalog, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Catalog), args.Error(1)
}

// MockExporter is a mock implementation of CatalogExporterInterface
type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) Export(catalogs []domain.Catalog, formats ...string) (*exporter.ExportResult, error) {
	args := m.Called(catalogs, formats)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exporter.ExportResult), args.Error(1)
}

// MockFileStore is a mock implementation of FileStore
type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Save(name string, r io.Reader) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) Remove(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func testErrorHandler() (*slog.Logger, *apierrors.ErrorHandler) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return logger, apierrors.NewErrorHandler(logger, false)
}
