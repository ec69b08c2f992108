package types

import "github.com/okian/iplstats/internal/domain/scoring"

// ImpactMode tags which variant an ImpactResult carries.
type ImpactMode string

// Impact report variants.
const (
	ImpactModePlayer ImpactMode = "player"
	ImpactModeTeam   ImpactMode = "team"
	ImpactModeLeague ImpactMode = "league"
)

// ImpactResult is a tagged union: exactly one of Player, Team or
// Leaderboard is set, as named by Mode.
type ImpactResult struct {
	Mode        ImpactMode         `json:"mode"`
	Player      *PlayerImpact      `json:"player,omitempty"`
	Team        *TeamImpact        `json:"team,omitempty"`
	Leaderboard *ImpactLeaderboard `json:"leaderboard,omitempty"`
}

// ImpactComponents holds whichever sides the player has data for.
type ImpactComponents struct {
	Batting *scoring.BattingComponents `json:"batting,omitempty"`
	Bowling *scoring.BowlingComponents `json:"bowling,omitempty"`
}

// PlayerImpact is the single-player breakdown.
type PlayerImpact struct {
	Player     string           `json:"player"`
	Season     string           `json:"season"`
	Impact     float64          `json:"impact"`
	Components ImpactComponents `json:"components"`
}

// TeamImpactRow is one player's contribution to a team.
type TeamImpactRow struct {
	Player  string  `json:"player"`
	Role    string  `json:"role"`
	Impact  float64 `json:"impact"`
	Runs    int     `json:"runs"`
	Wickets int     `json:"wickets"`
}

// TeamImpact ranks a team's players by runs + wickets*20.
type TeamImpact struct {
	Team    string          `json:"team"`
	Season  string          `json:"season"`
	Players []TeamImpactRow `json:"players"`
}

// LeaderboardRow is one batsman on the league impact leaderboard.
type LeaderboardRow struct {
	Player     string  `json:"player"`
	Impact     float64 `json:"impact"`
	Runs       int     `json:"runs"`
	StrikeRate float64 `json:"strikeRate"`
}

// ImpactLeaderboard is the league-wide batting impact ranking.
type ImpactLeaderboard struct {
	Season  string           `json:"season"`
	Players []LeaderboardRow `json:"players"`
	Limit   int              `json:"limit"`
}
