package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/vorobyoffn/Financial-Dashboard/internal/errors"
	"github.com/vorobyoffn/Financial-Dashboard/internal/middleware"
	"github.com/vorobyoffn/Financial-Dashboard/internal/services"
	api "github.com/vorobyoffn/Financial-Dashboard/pkg/contracts/api/v1"
)

// maxJSONBody bounds JSON request bodies. A full resolve request of
// MaxFilenames names of MaxFilenameLength bytes stays below it.
const maxJSONBody = 2 << 20

// CatalogHandler handles package resolution and catalog requests with
// RFC 7807 errors.
type CatalogHandler struct {
	service      CatalogServiceInterface
	exporter     CatalogExporterInterface
	validator    *middleware.RequestValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service CatalogServiceInterface, exp CatalogExporterInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *CatalogHandler {
	return &CatalogHandler{
		service:      service,
		exporter:     exp,
		validator:    middleware.NewRequestValidator(maxJSONBody),
		logger:       logger.With(slog.String("component", "catalog_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the catalog routes
func (h *CatalogHandler) Routes() chi.Router {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

// Register adds the catalog routes to r.
func (h *CatalogHandler) Register(r chi.Router) {
	r.Get("/files", h.ListFiles)
	r.Get("/files/{name}", h.GetFile)
	r.Get("/catalog", h.GetCatalog)
	r.Post("/catalog/export", h.ExportCatalog)

	r.With(middleware.ContentTypeValidator(h.errorHandler, "application/json")).
		Post("/packages/resolve", h.ResolvePackages)
}

// ListFiles handles GET /api/files
func (h *CatalogHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	inputs, err := h.service.ListInputs(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewStorageError("input directory is not readable", err))
		return
	}
	render.JSON(w, r, api.NewListResponse(inputs, len(inputs)))
}

// GetFile handles GET /api/files/{name}
func (h *CatalogHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	catalog, err := h.service.InspectInput(r.Context(), name)
	if err != nil {
		h.errorHandler.HandleError(w, r, inputError(name, err))
		return
	}
	render.JSON(w, r, catalog)
}

// ResolvePackages handles POST /api/packages/resolve
func (h *CatalogHandler) ResolvePackages(w http.ResponseWriter, r *http.Request) {
	var req api.ResolvePackagesRequest
	if err := h.validator.Decode(w, r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	pkgs := h.service.ResolvePackages(r.Context(), req.Filenames)

	h.logger.InfoContext(r.Context(), "resolved packages",
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.Int("filenames", len(req.Filenames)),
		slog.Int("packages", len(pkgs)))

	render.JSON(w, r, api.NewListResponse(pkgs, len(pkgs)))
}

// GetCatalog handles GET /api/catalog
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	catalogs, err := h.service.ScanInputs(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, scanError(err))
		return
	}
	render.JSON(w, r, api.NewListResponse(catalogs, len(catalogs)))
}

// ExportCatalog handles POST /api/catalog/export. The body is optional.
func (h *CatalogHandler) ExportCatalog(w http.ResponseWriter, r *http.Request) {
	var req api.ExportRequest
	if r.ContentLength != 0 {
		if err := h.validator.Decode(w, r, &req); err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
	}

	catalogs, err := h.service.ScanInputs(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, scanError(err))
		return
	}

	res, err := h.exporter.Export(catalogs, req.Formats...)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewStorageError("failed to write export", err))
		return
	}

	h.logger.InfoContext(r.Context(), "exported catalog",
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.Int("catalogs", len(catalogs)))

	render.JSON(w, r, api.ExportResponse{
		Files:      res.Files(),
		Catalogs:   len(catalogs),
		ExportedAt: time.Now().UTC(),
	})
}

func inputError(name string, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, services.ErrInvalidInput):
		return apierrors.NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST", "Invalid file name", name)
	case errors.Is(err, services.ErrFileNotFound):
		return apierrors.NewNotFoundError("input file").WithContext("file", name)
	case errors.Is(err, services.ErrInvalidFileType):
		return apierrors.NewUnsupportedError("file type is not supported", err).WithContext("file", name)
	}
	return apierrors.NewParsingError("file could not be read as a table", err).WithContext("file", name)
}

func scanError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return apierrors.NewStorageError("failed to scan input directory", err)
}
