// Package services implements the business logic between the HTTP layer and
// the resolver core.
//
// CatalogService resolves package descriptors and entity catalogs from the
// input directory. ScanInputs inspects files concurrently with a bounded
// errgroup; a file that cannot be loaded is reported on its catalog entry
// and never aborts the scan. HealthService answers liveness and readiness
// checks.
//
// Services take a *slog.Logger and an OpenTelemetry tracer through their
// options and fall back to slog.Default() and noop telemetry.
package services
