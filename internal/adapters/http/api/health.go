package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/iplstats/pkg/metrics"
)

// ReadyChecker reports whether the dataset has been loaded.
type ReadyChecker interface {
	IsStarted() bool
}

// HealthHandler serves the Prometheus exposition once the service is ready.
type HealthHandler struct {
	ready   ReadyChecker
	metrics http.Handler
}

// NewHealthHandler creates a new health handler. A nil checker is always ready.
func NewHealthHandler(ready ReadyChecker) *HealthHandler {
	return &HealthHandler{
		ready:   ready,
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil && !h.ready.IsStarted() {
		writeError(w, http.StatusServiceUnavailable, "not_ready", nil)
		return
	}
	h.metrics.ServeHTTP(w, r)
}
