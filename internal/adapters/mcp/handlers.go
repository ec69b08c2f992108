package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/okian/iplstats/internal/analytics"
	service "github.com/okian/iplstats/internal/app"
	"github.com/okian/iplstats/pkg/logger"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	reports Reports
}

// result renders a report as indented JSON, or a tool error carrying the
// error code. Tool failures are never returned as protocol errors.
func result[T any](ctx context.Context, tool string, f analytics.Filter, fn func(context.Context, analytics.Filter) (T, error)) (*mcp.CallToolResult, error) {
	out, err := fn(ctx, f)
	if err != nil {
		logger.Named("mcp").Debug(ctx, "tool failed", logger.String("tool", tool), logger.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", service.Code(err), err)), nil
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: encode: %v", service.CodeInternal, err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func season(req mcp.CallToolRequest) int {
	return req.GetInt("season", 0)
}

func (h *toolHandler) handlePhase(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := analytics.Filter{
		Team:   req.GetString("team", ""),
		Player: req.GetString("player", ""),
		Season: season(req),
	}
	return result(ctx, ToolPhase, f, h.reports.Phase)
}

func (h *toolHandler) handleVenueMetrics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := analytics.Filter{Venue: req.GetString("venue", ""), Season: season(req)}
	return result(ctx, ToolVenueMetrics, f, h.reports.VenueMetrics)
}

func (h *toolHandler) handleImpact(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := analytics.Filter{
		Player: req.GetString("player", ""),
		Team:   req.GetString("team", ""),
		Season: season(req),
		Limit:  req.GetInt("limit", 0),
	}
	return result(ctx, ToolImpact, f, h.reports.Impact)
}

func (h *toolHandler) handleRival(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := analytics.Filter{
		Player: req.GetString("batsman", ""),
		Bowler: req.GetString("bowler", ""),
		Season: season(req),
	}
	return result(ctx, ToolRival, f, h.reports.Rival)
}

func (h *toolHandler) handleSeasonSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return result(ctx, ToolSeasonSummary, analytics.Filter{Season: season(req)}, h.reports.SeasonSummary)
}

func (h *toolHandler) handleMilestones(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return result(ctx, ToolMilestones, analytics.Filter{Season: season(req)}, h.reports.Milestones)
}

func (h *toolHandler) handlePlayerStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := analytics.Filter{Player: req.GetString("player", ""), Season: season(req)}
	return result(ctx, ToolPlayerStats, f, h.reports.PlayerStats)
}

func (h *toolHandler) handleHeadToHead(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := analytics.Filter{
		Team:     req.GetString("team1", ""),
		Opponent: req.GetString("team2", ""),
		Season:   season(req),
	}
	return result(ctx, ToolHeadToHead, f, h.reports.HeadToHead)
}

func (h *toolHandler) handleMatchTimeline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return result(ctx, ToolMatchTimeline, analytics.Filter{MatchID: req.GetInt("match_id", 0)}, h.reports.MatchTimeline)
}
