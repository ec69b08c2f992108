// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/iplstats/internal/analytics"
	"github.com/okian/iplstats/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ReadyChecker
	TeamsDependencies
	PlayersDependencies
	MatchesDependencies
	VenuesDependencies
	UmpiresDependencies
	RecordsDependencies
}

// Server wires HTTP routes for the analytics API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	teamsHandler   *TeamsHandler
	playersHandler *PlayersHandler
	matchesHandler *MatchesHandler
	venuesHandler  *VenuesHandler
	umpiresHandler *UmpiresHandler
	recordsHandler *RecordsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(deps),
		statsHandler:   NewStatsHandler(statsProvider),
		teamsHandler:   NewTeamsHandler(deps),
		playersHandler: NewPlayersHandler(deps),
		matchesHandler: NewMatchesHandler(deps),
		venuesHandler:  NewVenuesHandler(deps),
		umpiresHandler: NewUmpiresHandler(deps),
		recordsHandler: NewRecordsHandler(deps),
	}
}

type route struct {
	pattern  string
	endpoint string
	handler  http.HandlerFunc
}

func (s *Server) routes() []route {
	return []route{
		{"GET /api/teams", "teams", s.teamsHandler.HandleTeams},
		{"GET /api/teams/{name}/seasons", "team_seasons", s.teamsHandler.HandleTeamSeasons},
		{"GET /api/teams/{name}/seasons/{season}/matches", "team_season_matches", s.teamsHandler.HandleTeamSeasonMatches},
		{"GET /api/headtohead", "head_to_head", s.teamsHandler.HandleHeadToHead},

		{"GET /api/players", "players", s.playersHandler.HandlePlayers},
		{"GET /api/players/top-batsmen", "top_batsmen", s.playersHandler.HandleTopBatsmen},
		{"GET /api/analytics/players/{player}", "player_stats", s.playersHandler.HandlePlayerStats},
		{"GET /api/analytics/bowlers/{player}", "bowler_stats", s.playersHandler.HandleBowlerStats},

		{"GET /api/matches", "matches", s.matchesHandler.HandleMatches},
		{"GET /api/matches/stats/summary", "matches_summary", s.matchesHandler.HandleSummary},
		{"GET /api/matches/{id}", "match_details", s.matchesHandler.HandleDetails},
		{"GET /api/matches/{id}/deliveries", "match_deliveries", s.matchesHandler.HandleDeliveries},
		{"GET /api/matches/{id}/timeline", "match_timeline", s.matchesHandler.HandleTimeline},
		{"GET /api/analytics/matches/{id}/overs", "match_over_stats", s.matchesHandler.HandleOverStats},

		{"GET /api/analytics/venues", "venues", s.venuesHandler.HandleVenues},
		{"GET /api/analytics/venues/{venue}", "venue_stats", s.venuesHandler.HandleVenueStats},
		{"GET /api/analytics/venues/{venue}/metrics", "venue_metrics", s.venuesHandler.HandleVenueMetrics},

		{"GET /api/analytics/umpires", "umpires", s.umpiresHandler.HandleUmpires},
		{"GET /api/analytics/umpires/{name}", "umpire_stats", s.umpiresHandler.HandleUmpireStats},

		{"GET /api/analytics/partnerships", "partnerships", s.recordsHandler.HandlePartnerships},
		{"GET /api/analytics/seasons/{year}", "season_summary", s.recordsHandler.HandleSeasonSummary},
		{"GET /api/analytics/milestones", "milestones", s.recordsHandler.HandleMilestones},
		{"GET /api/analytics/phase", "phase", s.recordsHandler.HandlePhase},
		{"GET /api/analytics/impact", "impact", s.recordsHandler.HandleImpact},
		{"GET /api/analytics/rival", "rival", s.recordsHandler.HandleRival},
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	for _, rt := range s.routes() {
		mux.HandleFunc(rt.pattern, MetricsMiddleware(rt.handler, rt.endpoint))
	}
	logger.Get().Debug(ctx, "registered api routes", logger.Int("routes", len(s.routes())+2))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil && status < http.StatusInternalServerError {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// respond runs one report and writes its result or mapped error.
// A non-nil parseErr short-circuits to 400 without calling fn.
func respond[T any](w http.ResponseWriter, r *http.Request, op string, f analytics.Filter, parseErr error, fn func(context.Context, analytics.Filter) (T, error)) {
	ctx := r.Context()
	if parseErr != nil {
		writeError(w, http.StatusBadRequest, "bad_request", parseErr)
		return
	}
	out, err := fn(ctx, f)
	if err != nil {
		status, code := statusFor(err)
		if status >= http.StatusInternalServerError {
			logger.Get().Error(ctx, "request failed",
				logger.String("op", op),
				logger.String("requestId", logger.RequestID(ctx)),
				logger.Error(err),
			)
		}
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
