package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/vorobyoffn/Financial-Dashboard/internal/config"
	"github.com/vorobyoffn/Financial-Dashboard/internal/exporter"
	"github.com/vorobyoffn/Financial-Dashboard/internal/files"
	"github.com/vorobyoffn/Financial-Dashboard/internal/infrastructure"
	"github.com/vorobyoffn/Financial-Dashboard/internal/metadata"
	"github.com/vorobyoffn/Financial-Dashboard/internal/services"
	"github.com/vorobyoffn/Financial-Dashboard/internal/validation"
	"github.com/vorobyoffn/Financial-Dashboard/pkg/contracts/domain"
)

// nameList collects repeated -name flags.
type nameList []string

func (n *nameList) String() string { return strings.Join(*n, ",") }

func (n *nameList) Set(v string) error {
	*n = append(*n, v)
	return nil
}

type options struct {
	file    string
	dir     string
	names   []string
	out     string
	workers int
	compact bool
}

var errUsage = errors.New("one of -file, -dir or -name is required")

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		opts  options
		names nameList
	)
	fs.StringVar(&opts.file, "file", "", "inspect one workbook or csv file")
	fs.StringVar(&opts.dir, "dir", "", "inspect every input file in a directory")
	fs.Var(&names, "name", "resolve a bare filename to its package descriptor (repeatable; trailing arguments are names too)")
	fs.StringVar(&opts.out, "out", "", "also write csv and json exports into this directory")
	fs.IntVar(&opts.workers, "workers", 0, "concurrent file inspections for -dir (defaults to config)")
	fs.BoolVar(&opts.compact, "compact", false, "print compact json")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if len(names) > 0 {
		opts.names = append([]string(names), fs.Args()...)
	}

	modes := 0
	for _, set := range []bool{opts.file != "", opts.dir != "", len(opts.names) > 0} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		fs.Usage()
		return nil, errUsage
	}
	return &opts, nil
}

// validatePaths checks the -file, -dir and -out arguments before any work.
func validatePaths(opts *options, logger *slog.Logger) error {
	v := validation.NewFileValidator(logger)
	if opts.file != "" {
		if err := v.ValidateSourceFile(opts.file); err != nil {
			return err
		}
	}
	if opts.dir != "" {
		if err := v.ValidateInputDirectory(opts.dir); err != nil {
			return err
		}
	}
	if opts.out != "" {
		if err := v.ValidateOutputDirectory(opts.out); err != nil {
			return err
		}
	}
	return nil
}

func run(ctx context.Context, opts *options, cfg *config.Config, stdout io.Writer, logger *slog.Logger) error {
	if err := validatePaths(opts, logger); err != nil {
		return err
	}

	workers := cfg.Processing.Workers
	if opts.workers > 0 {
		workers = opts.workers
	}

	svc := services.NewCatalogService(
		metadata.New(cfg.Metadata()),
		files.NewDiscovery("", cfg.Upload.AllowedExtensions...),
		services.CatalogOptions{InputDir: opts.dir, Workers: workers, Logger: logger},
	)

	var (
		result   interface{}
		catalogs []domain.Catalog
	)

	switch {
	case len(opts.names) > 0:
		result = svc.ResolvePackages(ctx, opts.names)
	case opts.file != "":
		catalog, err := svc.InspectFile(ctx, opts.file)
		if err != nil {
			return err
		}
		catalogs = []domain.Catalog{catalog}
		result = catalog
	default:
		var err error
		if catalogs, err = svc.ScanInputs(ctx); err != nil {
			return err
		}
		result = catalogs
	}

	if opts.out != "" && catalogs != nil {
		res, err := exporter.NewCatalogExporter(opts.out, logger).Export(catalogs)
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}
		logger.Info("Exports written", slog.Any("files", res.Files()))
	}

	enc := json.NewEncoder(stdout)
	if !opts.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	// stdout carries the json result
	logger := infrastructure.NewLoggerWithWriter(os.Stderr, cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, cfg, os.Stdout, logger); err != nil {
		logger.Error("Resolve failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
