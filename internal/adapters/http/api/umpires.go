package api

import (
	"context"
	"net/http"

	"github.com/okian/iplstats/internal/analytics"
	"github.com/okian/iplstats/internal/domain/types"
)

// UmpiresDependencies defines the interface for umpire reports.
type UmpiresDependencies interface {
	Umpires(ctx context.Context, f analytics.Filter) ([]types.Umpire, error)
	UmpireStats(ctx context.Context, f analytics.Filter) (types.UmpireStats, error)
}

// UmpiresHandler handles umpire requests.
type UmpiresHandler struct {
	deps UmpiresDependencies
}

// NewUmpiresHandler creates a new umpires handler.
func NewUmpiresHandler(deps UmpiresDependencies) *UmpiresHandler {
	return &UmpiresHandler{deps: deps}
}

// HandleUmpires handles GET /api/analytics/umpires requests.
func (h *UmpiresHandler) HandleUmpires(w http.ResponseWriter, r *http.Request) {
	respond(w, r, "api.get_umpires", analytics.Filter{}, nil, h.deps.Umpires)
}

// HandleUmpireStats handles GET /api/analytics/umpires/{name} requests.
func (h *UmpiresHandler) HandleUmpireStats(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	respond(w, r, "api.get_umpire_stats", analytics.Filter{Umpire: p.path("name")}, p.err, h.deps.UmpireStats)
}
