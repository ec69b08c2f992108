// Package types contains the report shapes returned by the analytics layer.
// They are plain JSON-serializable values with no behaviour of their own.
package types

import "github.com/okian/iplstats/internal/domain/cricket"

// SeasonAll is the season label used when no season filter was given.
const SeasonAll = "all"

// PhaseMode names which variant of the phase report was produced.
type PhaseMode string

// Phase report variants.
const (
	PhaseModeTeamPlayer PhaseMode = "team_player"
	PhaseModeTeam       PhaseMode = "team"
	PhaseModePlayer     PhaseMode = "player"
	PhaseModeLeague     PhaseMode = "league"
)

// PhaseBatting is one phase row from the batting side.
type PhaseBatting struct {
	Phase       cricket.Phase `json:"phase"`
	RunsScored  int           `json:"runsScored"`
	BallsFaced  int           `json:"ballsFaced"`
	Fours       int           `json:"fours"`
	Sixes       int           `json:"sixes"`
	WicketsLost int           `json:"wicketsLost"`
	StrikeRate  float64       `json:"strikeRate"`
	Avg         float64       `json:"avg"`
}

// PhaseBowling is one phase row from the bowling side.
type PhaseBowling struct {
	Phase        cricket.Phase `json:"phase"`
	RunsConceded int           `json:"runsConceded"`
	BallsBowled  int           `json:"ballsBowled"`
	WicketsTaken int           `json:"wicketsTaken"`
	Economy      float64       `json:"economy"`
}

// PhaseLeague is one league-wide phase row.
type PhaseLeague struct {
	Phase        cricket.Phase `json:"phase"`
	TotalRuns    int           `json:"totalRuns"`
	TotalBalls   int           `json:"totalBalls"`
	TotalWickets int           `json:"totalWickets"`
	Boundaries   int           `json:"boundaries"`
	AvgRunRate   float64       `json:"avgRunRate"`
	WicketRate   float64       `json:"wicketRate"`
}

// PhaseReport is the phase analysis. Which row slices are populated
// depends on Mode; in player mode a side with no balls is omitted.
type PhaseReport struct {
	Mode        PhaseMode      `json:"mode"`
	Team        string         `json:"team,omitempty"`
	Player      string         `json:"player,omitempty"`
	Season      string         `json:"season"`
	Batting     []PhaseBatting `json:"batting,omitempty"`
	Bowling     []PhaseBowling `json:"bowling,omitempty"`
	LeagueStats []PhaseLeague  `json:"leagueStats,omitempty"`
}
