package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/okian/iplstats/internal/analytics"
	"github.com/okian/iplstats/internal/domain/cricket"
	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/internal/domain/types"
)

// Report names, used in cache keys, logs and metric labels.
const (
	ReportTeams             = "teams"
	ReportTeamSeasons       = "team_seasons"
	ReportTeamSeasonMatches = "team_season_matches"
	ReportPlayers           = "players"
	ReportTopBatsmen        = "top_batsmen"
	ReportMatches           = "matches"
	ReportMatchesSummary    = "matches_summary"
	ReportMatchDetails      = "match_details"
	ReportMatchDeliveries   = "match_deliveries"
	ReportMatchTimeline     = "match_timeline"
	ReportHeadToHead        = "head_to_head"
	ReportPlayerStats       = "player_stats"
	ReportBowlerStats       = "bowler_stats"
	ReportVenues            = "venues"
	ReportVenueStats        = "venue_stats"
	ReportVenueMetrics      = "venue_metrics"
	ReportUmpires           = "umpires"
	ReportUmpireStats       = "umpire_stats"
	ReportPartnerships      = "partnerships"
	ReportSeasonSummary     = "season_summary"
	ReportMilestones        = "milestones"
	ReportPhase             = "phase"
	ReportImpact            = "impact"
	ReportRival             = "rival"
	ReportMatchOverStats    = "match_over_stats"
)

// Teams lists every team with its career record.
func (s *Service) Teams(ctx context.Context, f analytics.Filter) ([]types.Team, error) {
	return run(ctx, s, ReportTeams, f, func(ds *analytics.Dataset) ([]types.Team, error) {
		return analytics.Teams(ds), nil
	})
}

// TeamSeasons is the per-season record of f.Team.
func (s *Service) TeamSeasons(ctx context.Context, f analytics.Filter) ([]types.TeamSeason, error) {
	if err := required("service."+ReportTeamSeasons, "team", f.Team); err != nil {
		return nil, err
	}
	return run(ctx, s, ReportTeamSeasons, f, func(ds *analytics.Dataset) ([]types.TeamSeason, error) {
		return analytics.TeamSeasons(ds, f.Team)
	})
}

// TeamSeasonMatches lists f.Team's matches in f.Season with scorecards.
func (s *Service) TeamSeasonMatches(ctx context.Context, f analytics.Filter) ([]types.TeamMatch, error) {
	op := "service." + ReportTeamSeasonMatches
	if err := required(op, "team", f.Team); err != nil {
		return nil, err
	}
	if f.Season == 0 {
		return nil, NewKind(op, ErrBadRequest, "season is required")
	}
	return run(ctx, s, ReportTeamSeasonMatches, f, func(ds *analytics.Dataset) ([]types.TeamMatch, error) {
		return analytics.TeamSeasonMatches(ds, f.Team, f.Season)
	})
}

// Players lists players, optionally those who played for f.Team.
func (s *Service) Players(ctx context.Context, f analytics.Filter) ([]types.Player, error) {
	return run(ctx, s, ReportPlayers, f, func(ds *analytics.Dataset) ([]types.Player, error) {
		return analytics.Players(ds, f.Team), nil
	})
}

// TopBatsmen ranks batsmen by career runs.
func (s *Service) TopBatsmen(ctx context.Context, f analytics.Filter) ([]types.Player, error) {
	return run(ctx, s, ReportTopBatsmen, f, func(ds *analytics.Dataset) ([]types.Player, error) {
		return analytics.TopBatsmen(ds, f.LimitOr(analytics.DefaultTopBatsmen)), nil
	})
}

// Matches lists matches filtered by team substring and season.
func (s *Service) Matches(ctx context.Context, f analytics.Filter) ([]model.Match, error) {
	return run(ctx, s, ReportMatches, f, func(ds *analytics.Dataset) ([]model.Match, error) {
		return analytics.Matches(ds, f.Team, f.Season), nil
	})
}

// MatchesSummary counts matches per season and wins per team.
func (s *Service) MatchesSummary(ctx context.Context, f analytics.Filter) (types.MatchesSummary, error) {
	return run(ctx, s, ReportMatchesSummary, f, func(ds *analytics.Dataset) (types.MatchesSummary, error) {
		return analytics.MatchesSummary(ds), nil
	})
}

// MatchDetails is the scorecard of f.MatchID.
func (s *Service) MatchDetails(ctx context.Context, f analytics.Filter) (types.MatchDetails, error) {
	return run(ctx, s, ReportMatchDetails, f, func(ds *analytics.Dataset) (types.MatchDetails, error) {
		return analytics.MatchDetails(ds, f.MatchID)
	})
}

// MatchDeliveries pages through the deliveries of f.MatchID.
func (s *Service) MatchDeliveries(ctx context.Context, f analytics.Filter) (types.DeliveryPage, error) {
	return run(ctx, s, ReportMatchDeliveries, f, func(ds *analytics.Dataset) (types.DeliveryPage, error) {
		return analytics.MatchDeliveries(ds, f.MatchID, f.Inning, f.Page, f.Limit)
	})
}

// MatchTimeline is the over-by-over progression of f.MatchID.
func (s *Service) MatchTimeline(ctx context.Context, f analytics.Filter) (types.MatchTimeline, error) {
	return run(ctx, s, ReportMatchTimeline, f, func(ds *analytics.Dataset) (types.MatchTimeline, error) {
		return analytics.MatchTimeline(ds, f.MatchID)
	})
}

// HeadToHead compares f.Team against f.Opponent.
func (s *Service) HeadToHead(ctx context.Context, f analytics.Filter) (types.HeadToHead, error) {
	if err := required("service."+ReportHeadToHead, "team1", f.Team, "team2", f.Opponent); err != nil {
		return types.HeadToHead{}, err
	}
	return run(ctx, s, ReportHeadToHead, f, func(ds *analytics.Dataset) (types.HeadToHead, error) {
		return analytics.HeadToHead(ds, f.Team, f.Opponent, f.Season)
	})
}

// PlayerStats is the batting, bowling and fielding profile of f.Player.
func (s *Service) PlayerStats(ctx context.Context, f analytics.Filter) (types.PlayerStats, error) {
	if err := required("service."+ReportPlayerStats, "player", f.Player); err != nil {
		return types.PlayerStats{}, err
	}
	return run(ctx, s, ReportPlayerStats, f, func(ds *analytics.Dataset) (types.PlayerStats, error) {
		return analytics.PlayerStats(ds, f.Player, f.Season)
	})
}

// BowlerStats is the bowling profile of f.Player.
func (s *Service) BowlerStats(ctx context.Context, f analytics.Filter) (types.BowlerStats, error) {
	if err := required("service."+ReportBowlerStats, "player", f.Player); err != nil {
		return types.BowlerStats{}, err
	}
	return run(ctx, s, ReportBowlerStats, f, func(ds *analytics.Dataset) (types.BowlerStats, error) {
		return analytics.BowlerStats(ds, f.Player, f.Season)
	})
}

// Venues lists distinct venues.
func (s *Service) Venues(ctx context.Context, f analytics.Filter) ([]string, error) {
	return run(ctx, s, ReportVenues, f, func(ds *analytics.Dataset) ([]string, error) {
		return analytics.Venues(ds), nil
	})
}

// VenueStats summarizes every match played at f.Venue.
func (s *Service) VenueStats(ctx context.Context, f analytics.Filter) (types.VenueStats, error) {
	if err := required("service."+ReportVenueStats, "venue", f.Venue); err != nil {
		return types.VenueStats{}, err
	}
	return run(ctx, s, ReportVenueStats, f, func(ds *analytics.Dataset) (types.VenueStats, error) {
		return analytics.VenueStats(ds, f.Venue)
	})
}

// VenueMetrics is the scoring and toss profile of f.Venue.
func (s *Service) VenueMetrics(ctx context.Context, f analytics.Filter) (types.VenueMetrics, error) {
	if err := required("service."+ReportVenueMetrics, "venue", f.Venue); err != nil {
		return types.VenueMetrics{}, err
	}
	return run(ctx, s, ReportVenueMetrics, f, func(ds *analytics.Dataset) (types.VenueMetrics, error) {
		return analytics.VenueMetrics(ds, f.Venue, f.Season)
	})
}

// Umpires lists umpires by matches officiated.
func (s *Service) Umpires(ctx context.Context, f analytics.Filter) ([]types.Umpire, error) {
	return run(ctx, s, ReportUmpires, f, func(ds *analytics.Dataset) ([]types.Umpire, error) {
		return analytics.Umpires(ds), nil
	})
}

// UmpireStats is the career of f.Umpire.
func (s *Service) UmpireStats(ctx context.Context, f analytics.Filter) (types.UmpireStats, error) {
	if err := required("service."+ReportUmpireStats, "umpire", f.Umpire); err != nil {
		return types.UmpireStats{}, err
	}
	return run(ctx, s, ReportUmpireStats, f, func(ds *analytics.Dataset) (types.UmpireStats, error) {
		return analytics.UmpireStats(ds, f.Umpire)
	})
}

// Partnerships ranks f.Team's batting pairs.
func (s *Service) Partnerships(ctx context.Context, f analytics.Filter) (types.PartnershipReport, error) {
	return run(ctx, s, ReportPartnerships, f, func(ds *analytics.Dataset) (types.PartnershipReport, error) {
		return analytics.Partnerships(ds, f.Team, f.Season)
	})
}

// SeasonSummary is the overview of f.Season.
func (s *Service) SeasonSummary(ctx context.Context, f analytics.Filter) (types.SeasonSummary, error) {
	if f.Season == 0 {
		return types.SeasonSummary{}, NewKind("service."+ReportSeasonSummary, ErrBadRequest, "season is required")
	}
	return run(ctx, s, ReportSeasonSummary, f, func(ds *analytics.Dataset) (types.SeasonSummary, error) {
		return analytics.SeasonSummary(ds, f.Season)
	})
}

// Milestones collects the record tables.
func (s *Service) Milestones(ctx context.Context, f analytics.Filter) (types.Milestones, error) {
	return run(ctx, s, ReportMilestones, f, func(ds *analytics.Dataset) (types.Milestones, error) {
		return analytics.Milestones(ds, f.Season), nil
	})
}

// Impact is the impact index in player, team or league mode.
func (s *Service) Impact(ctx context.Context, f analytics.Filter) (types.ImpactResult, error) {
	return run(ctx, s, ReportImpact, f, func(ds *analytics.Dataset) (types.ImpactResult, error) {
		return analytics.Impact(ds, f)
	})
}

// Rival is the head-to-head of batsman f.Player against f.Bowler.
func (s *Service) Rival(ctx context.Context, f analytics.Filter) (types.RivalBattle, error) {
	if err := required("service."+ReportRival, "batsman", f.Player, "bowler", f.Bowler); err != nil {
		return types.RivalBattle{}, err
	}
	return run(ctx, s, ReportRival, f, func(ds *analytics.Dataset) (types.RivalBattle, error) {
		return analytics.RivalBattle(ds, f.Player, f.Bowler, f.Season)
	})
}

// MatchOverStats groups one match, or one innings of it, by over.
func (s *Service) MatchOverStats(ctx context.Context, f analytics.Filter) (types.MatchOverStats, error) {
	return run(ctx, s, ReportMatchOverStats, f, func(ds *analytics.Dataset) (types.MatchOverStats, error) {
		return analytics.MatchOverStats(ds, f.MatchID, f.Inning)
	})
}

// Phase is the phase analysis. The mode follows from which of f.Team and
// f.Player are set; batting and bowling sides are computed concurrently.
func (s *Service) Phase(ctx context.Context, f analytics.Filter) (types.PhaseReport, error) {
	return run(ctx, s, ReportPhase, f, func(ds *analytics.Dataset) (types.PhaseReport, error) {
		return phaseReport(ctx, ds, f)
	})
}

func phaseReport(ctx context.Context, ds *analytics.Dataset, f analytics.Filter) (types.PhaseReport, error) {
	out := types.PhaseReport{
		Team:   f.Team,
		Player: f.Player,
		Season: f.SeasonLabel(),
	}
	switch {
	case f.Team != "" && f.Player != "":
		out.Mode = types.PhaseModeTeamPlayer
	case f.Team != "":
		out.Mode = types.PhaseModeTeam
	case f.Player != "":
		out.Mode = types.PhaseModePlayer
	default:
		out.Mode = types.PhaseModeLeague
	}

	emptySeason := f.Season != 0 && !ds.HasSeason(f.Season)
	if out.Mode == types.PhaseModeLeague {
		if !emptySeason {
			out.LeagueStats = analytics.PhaseLeague(ds, f.Season)
		}
		return out, nil
	}
	if emptySeason {
		if out.Mode != types.PhaseModePlayer {
			out.Batting, out.Bowling = zeroBatting(), zeroBowling()
		}
		return out, nil
	}

	var (
		batting []types.PhaseBatting
		bowling []types.PhaseBowling
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		batting = analytics.PhaseBatting(ds, f.Team, f.Player, f.Season)
		return gctx.Err()
	})
	g.Go(func() error {
		bowling = analytics.PhaseBowling(ds, f.Team, f.Player, f.Season)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return types.PhaseReport{}, err
	}

	if out.Mode == types.PhaseModePlayer {
		if analytics.HasBattingBalls(batting) {
			out.Batting = batting
		}
		if analytics.HasBowlingBalls(bowling) {
			out.Bowling = bowling
		}
		return out, nil
	}
	out.Batting, out.Bowling = batting, bowling
	return out, nil
}

func zeroBatting() []types.PhaseBatting {
	rows := make([]types.PhaseBatting, 0, 3)
	for _, p := range cricket.Phases() {
		rows = append(rows, types.PhaseBatting{Phase: p})
	}
	return rows
}

func zeroBowling() []types.PhaseBowling {
	rows := make([]types.PhaseBowling, 0, 3)
	for _, p := range cricket.Phases() {
		rows = append(rows, types.PhaseBowling{Phase: p})
	}
	return rows
}
