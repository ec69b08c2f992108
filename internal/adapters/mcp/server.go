// Package mcp exposes the analytics reports as Model Context Protocol tools
// over stdio.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/okian/iplstats/internal/analytics"
	"github.com/okian/iplstats/internal/domain/types"
)

// Reports is the subset of the analytics service the tools call.
type Reports interface {
	Phase(ctx context.Context, f analytics.Filter) (types.PhaseReport, error)
	VenueMetrics(ctx context.Context, f analytics.Filter) (types.VenueMetrics, error)
	Impact(ctx context.Context, f analytics.Filter) (types.ImpactResult, error)
	Rival(ctx context.Context, f analytics.Filter) (types.RivalBattle, error)
	SeasonSummary(ctx context.Context, f analytics.Filter) (types.SeasonSummary, error)
	Milestones(ctx context.Context, f analytics.Filter) (types.Milestones, error)
	PlayerStats(ctx context.Context, f analytics.Filter) (types.PlayerStats, error)
	HeadToHead(ctx context.Context, f analytics.Filter) (types.HeadToHead, error)
	MatchTimeline(ctx context.Context, f analytics.Filter) (types.MatchTimeline, error)
}

// Tool names.
const (
	ToolPhase         = "phase_analysis"
	ToolVenueMetrics  = "venue_metrics"
	ToolImpact        = "impact_index"
	ToolRival         = "batsman_vs_bowler"
	ToolSeasonSummary = "season_summary"
	ToolMilestones    = "milestones"
	ToolPlayerStats   = "player_stats"
	ToolHeadToHead    = "head_to_head"
	ToolMatchTimeline = "match_timeline"
)

func seasonArg() mcp.ToolOption {
	return mcp.WithNumber("season", mcp.Description("Season year 2008-2019. Omit for all seasons."))
}

// NewMCPServer builds the server without starting it.
func NewMCPServer(reports Reports, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"IPL Analytics Server",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{reports: reports}

	s.AddTool(mcp.NewTool(ToolPhase,
		mcp.WithDescription("Runs, balls, wickets and rates split into powerplay (1-6), middle (7-15) and death (16-20) overs."),
		mcp.WithString("team", mcp.Description("Team name. With player, restricts to that player's innings for the team.")),
		mcp.WithString("player", mcp.Description("Player name.")),
		seasonArg(),
	), h.handlePhase)

	s.AddTool(mcp.NewTool(ToolVenueMetrics,
		mcp.WithDescription("Par first innings score, chase success and phase scoring at one venue."),
		mcp.WithString("venue", mcp.Description("Venue name."), mcp.Required()),
		seasonArg(),
	), h.handleVenueMetrics)

	s.AddTool(mcp.NewTool(ToolImpact,
		mcp.WithDescription("Impact index for a player, a team's players, or the league leaderboard when neither is given."),
		mcp.WithString("player", mcp.Description("Player name.")),
		mcp.WithString("team", mcp.Description("Team name.")),
		seasonArg(),
		mcp.WithNumber("limit", mcp.Description("Maximum rows for team and league modes.")),
	), h.handleImpact)

	s.AddTool(mcp.NewTool(ToolRival,
		mcp.WithDescription("Every ball a batsman faced from one bowler."),
		mcp.WithString("batsman", mcp.Description("Batsman name."), mcp.Required()),
		mcp.WithString("bowler", mcp.Description("Bowler name."), mcp.Required()),
		seasonArg(),
	), h.handleRival)

	s.AddTool(mcp.NewTool(ToolSeasonSummary,
		mcp.WithDescription("Champion, points table, orange and purple caps of one season."),
		mcp.WithNumber("season", mcp.Description("Season year 2008-2019."), mcp.Required()),
	), h.handleSeasonSummary)

	s.AddTool(mcp.NewTool(ToolMilestones,
		mcp.WithDescription("Fastest fifties and hundreds, best figures, hat-tricks and team records."),
		seasonArg(),
	), h.handleMilestones)

	s.AddTool(mcp.NewTool(ToolPlayerStats,
		mcp.WithDescription("Batting, bowling and fielding profile of one player."),
		mcp.WithString("player", mcp.Description("Player name."), mcp.Required()),
		seasonArg(),
	), h.handlePlayerStats)

	s.AddTool(mcp.NewTool(ToolHeadToHead,
		mcp.WithDescription("Results between two teams."),
		mcp.WithString("team1", mcp.Description("First team."), mcp.Required()),
		mcp.WithString("team2", mcp.Description("Second team."), mcp.Required()),
		seasonArg(),
	), h.handleHeadToHead)

	s.AddTool(mcp.NewTool(ToolMatchTimeline,
		mcp.WithDescription("Over-by-over progression of one match with chase status."),
		mcp.WithNumber("match_id", mcp.Description("Match id."), mcp.Required()),
	), h.handleMatchTimeline)

	return s
}

// Serve runs the server on stdin and stdout until the input closes.
func Serve(_ context.Context, reports Reports, version string) error {
	return server.ServeStdio(NewMCPServer(reports, version))
}
