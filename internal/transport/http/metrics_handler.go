package http

import (
	"net/http"
)

// MetricsHandler serves the Prometheus exposition of the application
// registry. A nil exporter handler answers 404.
type MetricsHandler struct {
	handler http.Handler
}

// NewMetricsHandler wraps the exporter handler.
func NewMetricsHandler(handler http.Handler) *MetricsHandler {
	if handler == nil {
		handler = http.NotFoundHandler()
	}
	return &MetricsHandler{handler: handler}
}

// ServeHTTP handles GET /metrics
func (h *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}
