package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/vorobyoffn/Financial-Dashboard/internal/dataset"
	"github.com/vorobyoffn/Financial-Dashboard/internal/files"
	"github.com/vorobyoffn/Financial-Dashboard/internal/infrastructure"
	"github.com/vorobyoffn/Financial-Dashboard/internal/metadata"
	"github.com/vorobyoffn/Financial-Dashboard/pkg/contracts/domain"
)

// Entity kinds recorded on entities_resolved_total.
const (
	KindCompany = "company"
	KindIndex   = "index"
)

// CatalogOptions configures a CatalogService.
type CatalogOptions struct {
	InputDir string
	Workers  int
	Tracer   trace.Tracer
	Metrics  *infrastructure.ResolverMetrics
	Logger   *slog.Logger
}

// CatalogService resolves packages and entity catalogs from input files.
type CatalogService struct {
	resolver  *metadata.Resolver
	discovery *files.Discovery
	inputDir  string
	workers   int
	tracer    trace.Tracer
	metrics   *infrastructure.ResolverMetrics
	logger    *slog.Logger
}

// NewCatalogService creates a catalog service. Missing options fall back
// to one worker, a noop tracer and noop metrics.
func NewCatalogService(resolver *metadata.Resolver, discovery *files.Discovery, opts CatalogOptions) *CatalogService {
	if resolver == nil {
		resolver = metadata.New(metadata.DefaultConfig())
	}
	if discovery == nil {
		discovery = files.NewDiscovery("")
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Tracer == nil {
		opts.Tracer = tracenoop.NewTracerProvider().Tracer(infrastructure.InstrumentationName)
	}
	if opts.Metrics == nil {
		opts.Metrics = infrastructure.NoopResolverMetrics()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &CatalogService{
		resolver:  resolver,
		discovery: discovery,
		inputDir:  opts.InputDir,
		workers:   opts.Workers,
		tracer:    opts.Tracer,
		metrics:   opts.Metrics,
		logger:    opts.Logger.With(slog.String("component", "catalog_service")),
	}
}

// ResolvePackage resolves one filename and records the matched rule.
func (s *CatalogService) ResolvePackage(ctx context.Context, filename string) domain.PackageInfo {
	s.recordMatch(ctx, filename)
	return s.resolver.ResolvePackageInfo(filename)
}

// ResolvePackages resolves every non-blank filename, in input order.
func (s *CatalogService) ResolvePackages(ctx context.Context, filenames []string) []domain.PackageInfo {
	ctx, span := s.tracer.Start(ctx, "catalog.resolve_packages",
		trace.WithAttributes(attribute.Int("filenames.count", len(filenames))))
	defer span.End()

	pkgs := s.resolver.ResolvePackageList(filenames)
	for _, p := range pkgs {
		s.recordMatch(ctx, p.Filename)
	}

	span.SetAttributes(attribute.Int("packages.count", len(pkgs)))
	return pkgs
}

func (s *CatalogService) recordMatch(ctx context.Context, filename string) {
	_, rule, matched := s.resolver.MatchPackage(filename)
	infrastructure.RecordPackageResolution(ctx, s.metrics, rule, matched)
}

// Inspect resolves the package descriptor of filename together with every
// company and index found in ds.
func (s *CatalogService) Inspect(ctx context.Context, filename string, ds dataset.Dataset) domain.Catalog {
	ctx, span := s.tracer.Start(ctx, "catalog.inspect",
		trace.WithAttributes(attribute.String("file.name", filename)))
	defer span.End()

	catalog := domain.Catalog{
		Package:   s.ResolvePackage(ctx, filename),
		Companies: s.resolver.CompanyList(ds),
		Indices:   []domain.IndexEntry{},
	}
	if ds != nil {
		catalog.Rows = ds.RowCount()
	}

	for _, idx := range s.resolver.IndexList(ds) {
		catalog.Indices = append(catalog.Indices, domain.IndexEntry{
			Index:       idx,
			Performance: s.resolver.IndexPerformance(idx.Symbol, ds),
		})
	}

	infrastructure.RecordEntitiesResolved(ctx, s.metrics, KindCompany, len(catalog.Companies))
	infrastructure.RecordEntitiesResolved(ctx, s.metrics, KindIndex, len(catalog.Indices))
	span.SetAttributes(
		attribute.String("package.name", catalog.Package.PackageName),
		attribute.Int("companies.count", len(catalog.Companies)),
		attribute.Int("indices.count", len(catalog.Indices)),
	)

	s.logger.DebugContext(ctx, "Inspected dataset",
		slog.String("filename", filename),
		slog.String("package", catalog.Package.PackageName),
		slog.Int("rows", catalog.Rows),
		slog.Int("companies", len(catalog.Companies)),
		slog.Int("indices", len(catalog.Indices)))

	return catalog
}

// InspectFile loads the file at path and inspects it.
func (s *CatalogService) InspectFile(ctx context.Context, path string) (domain.Catalog, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.inspect_file",
		trace.WithAttributes(attribute.String("file.path", path)))
	defer span.End()

	name := filepath.Base(path)
	start := time.Now()

	table, err := dataset.LoadFile(path, dataset.LoadOptions{Logger: s.logger})
	infrastructure.RecordFileInspection(ctx, s.metrics, formatOf(name), time.Since(start), err)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return domain.Catalog{Package: s.ResolvePackage(ctx, name)}, classifyLoadError(path, err)
	}

	return s.Inspect(ctx, name, table), nil
}

// InspectInput inspects the input file called name. Names that leave the
// input directory or carry a non-input extension are rejected before any
// disk access.
func (s *CatalogService) InspectInput(ctx context.Context, name string) (domain.Catalog, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return domain.Catalog{}, fmt.Errorf("%w: %q", ErrInvalidInput, name)
	}
	if !s.discovery.Accepts(name) {
		return domain.Catalog{}, fmt.Errorf("%w: %s", ErrInvalidFileType, name)
	}
	return s.InspectFile(ctx, filepath.Join(s.inputDir, name))
}

// ListInputs returns the input files, newest first, with their package
// descriptors.
func (s *CatalogService) ListInputs(ctx context.Context) ([]domain.InputFile, error) {
	found, err := s.discovery.FindInputFiles(s.inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list input files: %w", err)
	}

	inputs := make([]domain.InputFile, 0, len(found))
	for _, f := range found {
		inputs = append(inputs, domain.InputFile{
			Name:     f.Name,
			Path:     f.Path,
			Size:     f.Size,
			Modified: f.ModTime,
			Package:  s.ResolvePackage(ctx, f.Name),
		})
	}
	return inputs, nil
}

// ScanInputs inspects every input file concurrently. A file that fails to
// load yields a catalog with Error set; only discovery failures and
// cancellation abort the scan. Catalogs follow discovery order.
func (s *CatalogService) ScanInputs(ctx context.Context) ([]domain.Catalog, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.scan_inputs")
	defer span.End()

	found, err := s.discovery.FindInputFiles(s.inputDir)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "discovery failed")
		return nil, fmt.Errorf("failed to list input files: %w", err)
	}

	catalogs := make([]domain.Catalog, len(found))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, f := range found {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			catalog, err := s.InspectFile(gctx, f.Path)
			if err != nil {
				s.logger.WarnContext(gctx, "Failed to inspect input file",
					slog.String("file", f.Name),
					slog.String("error", err.Error()))
				catalog.Error = err.Error()
			}
			catalogs[i] = catalog
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("files.count", len(catalogs)))
	s.logger.InfoContext(ctx, "Scanned input files",
		slog.String("input_dir", s.inputDir),
		slog.Int("files", len(catalogs)),
		slog.Int("workers", s.workers))
	return catalogs, nil
}

func classifyLoadError(path string, err error) error {
	switch {
	case errors.Is(err, dataset.ErrUnsupportedFormat):
		return fmt.Errorf("%w: %s", ErrInvalidFileType, filepath.Base(path))
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrFileNotFound, filepath.Base(path))
	}
	return fmt.Errorf("failed to load %s: %w", filepath.Base(path), err)
}

func formatOf(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return "none"
	}
	return ext
}
