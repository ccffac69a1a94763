package domain

import "time"

// Catalog is everything resolved from one source file.
type Catalog struct {
	Package   PackageInfo   `json:"package"`
	Companies []CompanyInfo `json:"companies"`
	Indices   []IndexEntry  `json:"indices"`
	Rows      int           `json:"rows"`
	Error     string        `json:"error,omitempty"`
}

// IndexEntry pairs an index descriptor with its performance metrics.
type IndexEntry struct {
	Index       IndexInfo        `json:"index"`
	Performance IndexPerformance `json:"performance"`
}

// InputFile is a source file found in the input directory.
type InputFile struct {
	Name     string      `json:"name"`
	Path     string      `json:"path"`
	Size     int64       `json:"size"`
	Modified time.Time   `json:"modified"`
	Package  PackageInfo `json:"package"`
}
