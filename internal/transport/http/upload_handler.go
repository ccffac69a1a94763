package http

import (
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/render"

	apierrors "github.com/vorobyoffn/Financial-Dashboard/internal/errors"
	"github.com/vorobyoffn/Financial-Dashboard/internal/files"
	"github.com/vorobyoffn/Financial-Dashboard/internal/middleware"
	"github.com/vorobyoffn/Financial-Dashboard/internal/services"
	api "github.com/vorobyoffn/Financial-Dashboard/pkg/contracts/api/v1"
)

// multipartOverhead is allowed on top of the file limit for boundaries
// and part headers.
const multipartOverhead = 1 << 20

// UploadFormField is the multipart field carrying the file.
const UploadFormField = "file"

// UploadHandler stores uploaded exports and inspects them.
type UploadHandler struct {
	store        FileStore
	service      CatalogServiceInterface
	maxBytes     int64
	allowed      []string
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewUploadHandler creates an upload handler. maxBytes caps one file.
func NewUploadHandler(store FileStore, service CatalogServiceInterface, maxBytes int64, allowed []string, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *UploadHandler {
	return &UploadHandler{
		store:        store,
		service:      service,
		maxBytes:     maxBytes,
		allowed:      allowed,
		logger:       logger.With(slog.String("component", "upload_handler")),
		errorHandler: errorHandler,
	}
}

// Upload handles POST /api/upload
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	limit := h.maxBytes + multipartOverhead
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrFileTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(UploadFormField)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrMissingFile)
		return
	}
	defer file.Close()

	path, err := h.store.Save(header.Filename, file)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.storeError(header.Filename, err))
		return
	}

	catalog, err := h.service.InspectFile(r.Context(), path)
	if err != nil {
		// rejected uploads do not stay in the input directory
		if rmErr := h.store.Remove(filepath.Base(path)); rmErr != nil {
			h.logger.WarnContext(r.Context(), "failed to remove rejected upload",
				slog.String("path", path),
				slog.String("error", rmErr.Error()))
		}
		h.errorHandler.HandleError(w, r, inspectError(err))
		return
	}

	h.logger.InfoContext(r.Context(), "upload inspected",
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.String("filename", header.Filename),
		slog.String("package", catalog.Package.PackageName),
		slog.Int("companies", len(catalog.Companies)),
		slog.Int("indices", len(catalog.Indices)))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, api.UploadResponse{
		Filename: catalog.Package.Filename,
		Path:     path,
		Size:     header.Size,
		Catalog:  catalog,
	})
}

func (h *UploadHandler) storeError(filename string, err error) error {
	switch {
	case errors.Is(err, files.ErrUnsupportedExtension):
		return apierrors.UnsupportedFileError(filename, h.allowed)
	case errors.Is(err, files.ErrInvalidName):
		return apierrors.NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST", "Invalid file name", filename)
	case errors.Is(err, files.ErrFileTooLarge):
		return apierrors.NewWithDetails(http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
			"Uploaded file exceeds the size limit", map[string]interface{}{"max_size": h.maxBytes})
	}
	return apierrors.NewStorageError("failed to store upload", err)
}

func inspectError(err error) error {
	if errors.Is(err, services.ErrInvalidFileType) {
		return apierrors.NewUnsupportedError("file type is not supported", err)
	}
	return apierrors.NewParsingError("file could not be read as a table", err)
}
