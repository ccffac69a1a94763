// Package api contains the HTTP contract of the dashboard metadata API.
// Version v1 represents the current stable API version.
package api

import (
	"time"

	"github.com/vorobyoffn/Financial-Dashboard/pkg/contracts/domain"
)

// Request limits.
const (
	MaxFilenames      = 1000
	MaxFilenameLength = 1024
)

// ResolvePackagesRequest asks for the package descriptors of bare filenames.
type ResolvePackagesRequest struct {
	Filenames []string `json:"filenames" validate:"required,min=1,max=1000,dive,max=1024"`
}

// ExportRequest selects what POST /api/catalog/export writes. An empty
// Formats writes every format.
type ExportRequest struct {
	Formats []string `json:"formats,omitempty" validate:"omitempty,dive,oneof=csv json"`
}

// ListResponse wraps a collection.
type ListResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
	Count  int         `json:"count"`
}

// NewListResponse builds a successful ListResponse.
func NewListResponse(data interface{}, count int) ListResponse {
	return ListResponse{Status: "success", Data: data, Count: count}
}

// UploadResponse describes a stored upload and what was resolved from it.
type UploadResponse struct {
	Filename string         `json:"filename"`
	Path     string         `json:"path"`
	Size     int64          `json:"size"`
	Catalog  domain.Catalog `json:"catalog"`
}

// ExportResponse lists the files an export wrote.
type ExportResponse struct {
	Files      map[string]string `json:"files"`
	Catalogs   int               `json:"catalogs"`
	ExportedAt time.Time         `json:"exported_at"`
}
