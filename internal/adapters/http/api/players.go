package api

import (
	"context"
	"net/http"

	"github.com/okian/iplstats/internal/analytics"
	"github.com/okian/iplstats/internal/domain/types"
)

// PlayersDependencies defines the interface for player reports.
type PlayersDependencies interface {
	Players(ctx context.Context, f analytics.Filter) ([]types.Player, error)
	TopBatsmen(ctx context.Context, f analytics.Filter) ([]types.Player, error)
	PlayerStats(ctx context.Context, f analytics.Filter) (types.PlayerStats, error)
	BowlerStats(ctx context.Context, f analytics.Filter) (types.BowlerStats, error)
}

// PlayersHandler handles player requests.
type PlayersHandler struct {
	deps PlayersDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayersDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// HandlePlayers handles GET /api/players?team= requests.
func (h *PlayersHandler) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	respond(w, r, "api.get_players", analytics.Filter{Team: p.query("team")}, p.err, h.deps.Players)
}

// HandleTopBatsmen handles GET /api/players/top-batsmen?limit=N requests.
func (h *PlayersHandler) HandleTopBatsmen(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	respond(w, r, "api.get_top_batsmen", analytics.Filter{Limit: p.queryInt("limit")}, p.err, h.deps.TopBatsmen)
}

// HandlePlayerStats handles GET /api/analytics/players/{player}?season= requests.
func (h *PlayersHandler) HandlePlayerStats(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	f := analytics.Filter{Player: p.path("player"), Season: p.queryInt("season")}
	respond(w, r, "api.get_player_stats", f, p.err, h.deps.PlayerStats)
}

// HandleBowlerStats handles GET /api/analytics/bowlers/{player}?season= requests.
func (h *PlayersHandler) HandleBowlerStats(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	f := analytics.Filter{Player: p.path("player"), Season: p.queryInt("season")}
	respond(w, r, "api.get_bowler_stats", f, p.err, h.deps.BowlerStats)
}
