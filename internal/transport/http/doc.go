// Package http implements the HTTP handlers of the dashboard API.
//
// Handlers stay thin: they decode and validate the request, call a service
// and render the result with go-chi/render. Every failure goes through the
// shared apierrors.ErrorHandler and is answered as RFC 7807 problem details.
//
// Routes, mounted under /api by the application router:
//
//	GET  /health               liveness summary
//	GET  /files                input files with package descriptors
//	POST /packages/resolve     package descriptors for bare filenames
//	POST /upload               store and inspect a multipart "file"
//	GET  /catalog              catalogs of every input file
//	POST /catalog/export       write CSV and JSON exports
package http
