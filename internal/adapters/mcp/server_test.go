package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/okian/iplstats/internal/adapters/mcp"
	service "github.com/okian/iplstats/internal/app"
	"github.com/okian/iplstats/internal/domain/types"
	"github.com/okian/iplstats/internal/fixtures"
	"github.com/okian/iplstats/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func startedService(t *testing.T) *service.Service {
	t.Helper()
	gen := fixtures.New(fixtures.WithSeed(11), fixtures.WithSeasons(2012, 1))
	svc := service.New(service.WithBootstrap(gen.Generate))
	require.NoError(t, svc.Start(context.Background()))
	t.Cleanup(svc.Stop)
	return svc
}

func call(t *testing.T, svc *service.Service, tool string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcpadapter.NewMCPServer(svc, "test")
	st := s.GetTool(tool)
	require.NotNil(t, st, "tool %s should exist", tool)

	res, err := st.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: tool, Arguments: args},
	})
	require.NoError(t, err, "tool failures are reported in the result")
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestMCPServer_Tools(t *testing.T) {
	svc := startedService(t)
	team := fixtures.DefaultTeams[0]

	t.Run("every tool is registered", func(t *testing.T) {
		s := mcpadapter.NewMCPServer(svc, "test")
		for _, name := range []string{
			mcpadapter.ToolPhase, mcpadapter.ToolVenueMetrics, mcpadapter.ToolImpact,
			mcpadapter.ToolRival, mcpadapter.ToolSeasonSummary, mcpadapter.ToolMilestones,
			mcpadapter.ToolPlayerStats, mcpadapter.ToolHeadToHead, mcpadapter.ToolMatchTimeline,
		} {
			assert.NotNil(t, s.GetTool(name), name)
		}
	})

	t.Run("phase_analysis for a team", func(t *testing.T) {
		res := call(t, svc, mcpadapter.ToolPhase, map[string]any{"team": team.Name, "season": 2012.0})
		require.False(t, res.IsError, text(t, res))

		var r types.PhaseReport
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &r))
		assert.Equal(t, types.PhaseModeTeam, r.Mode)
		assert.Equal(t, "2012", r.Season)
		assert.Len(t, r.Batting, 3)
		assert.Len(t, r.Bowling, 3)
	})

	t.Run("season_summary names a champion", func(t *testing.T) {
		res := call(t, svc, mcpadapter.ToolSeasonSummary, map[string]any{"season": 2012.0})
		require.False(t, res.IsError, text(t, res))

		var r types.SeasonSummary
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &r))
		assert.NotEqual(t, "TBD", r.Champion)
	})

	t.Run("venue_metrics at the home ground", func(t *testing.T) {
		res := call(t, svc, mcpadapter.ToolVenueMetrics, map[string]any{"venue": team.Venue})
		assert.False(t, res.IsError, text(t, res))
	})

	t.Run("impact without filters is the league leaderboard", func(t *testing.T) {
		res := call(t, svc, mcpadapter.ToolImpact, map[string]any{"limit": 5.0})
		require.False(t, res.IsError, text(t, res))

		var r types.ImpactResult
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &r))
		assert.Equal(t, types.ImpactModeLeague, r.Mode)
		require.NotNil(t, r.Leaderboard)
		assert.LessOrEqual(t, len(r.Leaderboard.Players), 5)
	})

	t.Run("match_timeline of the first match", func(t *testing.T) {
		res := call(t, svc, mcpadapter.ToolMatchTimeline, map[string]any{"match_id": 1.0})
		assert.False(t, res.IsError, text(t, res))
	})
}

func TestMCPServer_Errors(t *testing.T) {
	svc := startedService(t)

	t.Run("batsman_vs_bowler without a bowler", func(t *testing.T) {
		res := call(t, svc, mcpadapter.ToolRival, map[string]any{"batsman": "CSK Player 01"})
		assert.True(t, res.IsError)
		assert.Contains(t, text(t, res), service.CodeBadRequest)
	})

	t.Run("player_stats for an unknown player", func(t *testing.T) {
		res := call(t, svc, mcpadapter.ToolPlayerStats, map[string]any{"player": "Nobody"})
		assert.True(t, res.IsError)
		assert.Contains(t, text(t, res), service.CodeNotFound)
	})

	t.Run("season outside the covered range", func(t *testing.T) {
		res := call(t, svc, mcpadapter.ToolMilestones, map[string]any{"season": 1999.0})
		assert.True(t, res.IsError)
		assert.Contains(t, text(t, res), service.CodeBadRequest)
	})
}
