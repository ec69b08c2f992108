package api

import (
	"context"
	"net/http"

	"github.com/okian/iplstats/internal/analytics"
	"github.com/okian/iplstats/internal/domain/types"
)

// RecordsDependencies defines the interface for the league-wide analytics.
type RecordsDependencies interface {
	Partnerships(ctx context.Context, f analytics.Filter) (types.PartnershipReport, error)
	SeasonSummary(ctx context.Context, f analytics.Filter) (types.SeasonSummary, error)
	Milestones(ctx context.Context, f analytics.Filter) (types.Milestones, error)
	Phase(ctx context.Context, f analytics.Filter) (types.PhaseReport, error)
	Impact(ctx context.Context, f analytics.Filter) (types.ImpactResult, error)
	Rival(ctx context.Context, f analytics.Filter) (types.RivalBattle, error)
}

// RecordsHandler handles analytics requests.
type RecordsHandler struct {
	deps RecordsDependencies
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps RecordsDependencies) *RecordsHandler {
	return &RecordsHandler{deps: deps}
}

// HandlePartnerships handles GET /api/analytics/partnerships?team=&season= requests.
func (h *RecordsHandler) HandlePartnerships(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	f := analytics.Filter{Team: p.query("team"), Season: p.queryInt("season")}
	respond(w, r, "api.get_partnerships", f, p.err, h.deps.Partnerships)
}

// HandleSeasonSummary handles GET /api/analytics/seasons/{year} requests.
func (h *RecordsHandler) HandleSeasonSummary(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	respond(w, r, "api.get_season_summary", analytics.Filter{Season: p.pathInt("year")}, p.err, h.deps.SeasonSummary)
}

// HandleMilestones handles GET /api/analytics/milestones?season= requests.
func (h *RecordsHandler) HandleMilestones(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	respond(w, r, "api.get_milestones", analytics.Filter{Season: p.queryInt("season")}, p.err, h.deps.Milestones)
}

// HandlePhase handles GET /api/analytics/phase?team=&player=&season= requests.
func (h *RecordsHandler) HandlePhase(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	f := analytics.Filter{
		Team:   p.query("team"),
		Player: p.query("player"),
		Season: p.queryInt("season"),
	}
	respond(w, r, "api.get_phase", f, p.err, h.deps.Phase)
}

// HandleImpact handles GET /api/analytics/impact?player=&team=&season=&limit= requests.
func (h *RecordsHandler) HandleImpact(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	f := analytics.Filter{
		Player: p.query("player"),
		Team:   p.query("team"),
		Season: p.queryInt("season"),
		Limit:  p.queryInt("limit"),
	}
	respond(w, r, "api.get_impact", f, p.err, h.deps.Impact)
}

// HandleRival handles GET /api/analytics/rival?batsman=&bowler=&season= requests.
// A non-numeric season is ignored rather than rejected.
func (h *RecordsHandler) HandleRival(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	f := analytics.Filter{
		Player: p.query("batsman"),
		Bowler: p.query("bowler"),
		Season: p.lenientInt("season"),
	}
	respond(w, r, "api.get_rival", f, p.err, h.deps.Rival)
}
