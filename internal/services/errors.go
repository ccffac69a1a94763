package services

import "errors"

// Catalog service errors
var (
	ErrNoFilesFound    = errors.New("no files found")
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrInvalidInput    = errors.New("invalid input")
)
