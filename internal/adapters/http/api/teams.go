package api

import (
	"context"
	"net/http"

	"github.com/okian/iplstats/internal/analytics"
	"github.com/okian/iplstats/internal/domain/types"
)

// TeamsDependencies defines the interface for team reports.
type TeamsDependencies interface {
	Teams(ctx context.Context, f analytics.Filter) ([]types.Team, error)
	TeamSeasons(ctx context.Context, f analytics.Filter) ([]types.TeamSeason, error)
	TeamSeasonMatches(ctx context.Context, f analytics.Filter) ([]types.TeamMatch, error)
	HeadToHead(ctx context.Context, f analytics.Filter) (types.HeadToHead, error)
}

// TeamsHandler handles team requests.
type TeamsHandler struct {
	deps TeamsDependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamsDependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

// HandleTeams handles GET /api/teams requests.
func (h *TeamsHandler) HandleTeams(w http.ResponseWriter, r *http.Request) {
	respond(w, r, "api.get_teams", analytics.Filter{}, nil, h.deps.Teams)
}

// HandleTeamSeasons handles GET /api/teams/{name}/seasons requests.
func (h *TeamsHandler) HandleTeamSeasons(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	f := analytics.Filter{Team: p.path("name")}
	respond(w, r, "api.get_team_seasons", f, p.err, h.deps.TeamSeasons)
}

// HandleTeamSeasonMatches handles GET /api/teams/{name}/seasons/{season}/matches requests.
func (h *TeamsHandler) HandleTeamSeasonMatches(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	f := analytics.Filter{Team: p.path("name"), Season: p.pathInt("season")}
	respond(w, r, "api.get_team_season_matches", f, p.err, h.deps.TeamSeasonMatches)
}

// HandleHeadToHead handles GET /api/headtohead?team1=&team2=&season= requests.
func (h *TeamsHandler) HandleHeadToHead(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	f := analytics.Filter{
		Team:     p.query("team1"),
		Opponent: p.query("team2"),
		Season:   p.queryInt("season"),
	}
	respond(w, r, "api.get_head_to_head", f, p.err, h.deps.HeadToHead)
}
