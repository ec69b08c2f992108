package api

import (
	"context"
	"net/http"

	"github.com/okian/iplstats/internal/analytics"
	"github.com/okian/iplstats/internal/domain/types"
)

// VenuesDependencies defines the interface for venue reports.
type VenuesDependencies interface {
	Venues(ctx context.Context, f analytics.Filter) ([]string, error)
	VenueStats(ctx context.Context, f analytics.Filter) (types.VenueStats, error)
	VenueMetrics(ctx context.Context, f analytics.Filter) (types.VenueMetrics, error)
}

// VenuesHandler handles venue requests.
type VenuesHandler struct {
	deps VenuesDependencies
}

// NewVenuesHandler creates a new venues handler.
func NewVenuesHandler(deps VenuesDependencies) *VenuesHandler {
	return &VenuesHandler{deps: deps}
}

// HandleVenues handles GET /api/analytics/venues requests.
func (h *VenuesHandler) HandleVenues(w http.ResponseWriter, r *http.Request) {
	respond(w, r, "api.get_venues", analytics.Filter{}, nil, h.deps.Venues)
}

// HandleVenueStats handles GET /api/analytics/venues/{venue} requests.
func (h *VenuesHandler) HandleVenueStats(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	respond(w, r, "api.get_venue_stats", analytics.Filter{Venue: p.path("venue")}, p.err, h.deps.VenueStats)
}

// HandleVenueMetrics handles GET /api/analytics/venues/{venue}/metrics?season= requests.
func (h *VenuesHandler) HandleVenueMetrics(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	f := analytics.Filter{Venue: p.path("venue"), Season: p.queryInt("season")}
	respond(w, r, "api.get_venue_metrics", f, p.err, h.deps.VenueMetrics)
}
