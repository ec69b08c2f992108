package api

import (
	"context"
	"net/http"

	"github.com/okian/iplstats/internal/analytics"
	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/internal/domain/types"
)

// MatchesDependencies defines the interface for match reports.
type MatchesDependencies interface {
	Matches(ctx context.Context, f analytics.Filter) ([]model.Match, error)
	MatchesSummary(ctx context.Context, f analytics.Filter) (types.MatchesSummary, error)
	MatchDetails(ctx context.Context, f analytics.Filter) (types.MatchDetails, error)
	MatchDeliveries(ctx context.Context, f analytics.Filter) (types.DeliveryPage, error)
	MatchTimeline(ctx context.Context, f analytics.Filter) (types.MatchTimeline, error)
	MatchOverStats(ctx context.Context, f analytics.Filter) (types.MatchOverStats, error)
}

// MatchesHandler handles match requests.
type MatchesHandler struct {
	deps MatchesDependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchesDependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// HandleMatches handles GET /api/matches?team=&season= requests.
func (h *MatchesHandler) HandleMatches(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	f := analytics.Filter{Team: p.query("team"), Season: p.queryInt("season")}
	respond(w, r, "api.get_matches", f, p.err, h.deps.Matches)
}

// HandleSummary handles GET /api/matches/stats/summary requests.
func (h *MatchesHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	respond(w, r, "api.get_matches_summary", analytics.Filter{}, nil, h.deps.MatchesSummary)
}

// HandleDetails handles GET /api/matches/{id} requests.
func (h *MatchesHandler) HandleDetails(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	respond(w, r, "api.get_match_details", analytics.Filter{MatchID: p.pathInt("id")}, p.err, h.deps.MatchDetails)
}

// HandleDeliveries handles GET /api/matches/{id}/deliveries?inning=&page=&limit= requests.
func (h *MatchesHandler) HandleDeliveries(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	f := analytics.Filter{
		MatchID: p.pathInt("id"),
		Inning:  p.queryInt("inning"),
		Page:    p.queryInt("page"),
		Limit:   p.queryInt("limit"),
	}
	respond(w, r, "api.get_match_deliveries", f, p.err, h.deps.MatchDeliveries)
}

// HandleTimeline handles GET /api/matches/{id}/timeline requests.
func (h *MatchesHandler) HandleTimeline(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	respond(w, r, "api.get_match_timeline", analytics.Filter{MatchID: p.pathInt("id")}, p.err, h.deps.MatchTimeline)
}

// HandleOverStats handles GET /api/analytics/matches/{id}/overs?inning= requests.
func (h *MatchesHandler) HandleOverStats(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	f := analytics.Filter{MatchID: p.pathInt("id"), Inning: p.queryInt("inning")}
	respond(w, r, "api.get_match_over_stats", f, p.err, h.deps.MatchOverStats)
}
