package types

// TossCounts is the toss decision distribution at a venue.
type TossCounts struct {
	Bat   int `json:"bat"`
	Field int `json:"field"`
}

// TeamWins is a team and its win count.
type TeamWins struct {
	Team string `json:"team"`
	Wins int    `json:"wins"`
}

// PlayerRuns is a player and runs scored.
type PlayerRuns struct {
	Player string `json:"player"`
	Runs   int    `json:"runs"`
}

// PlayerWickets is a player and wickets taken.
type PlayerWickets struct {
	Player  string `json:"player"`
	Wickets int    `json:"wickets"`
}

// VenueBowler is a top bowler row at a venue.
type VenueBowler struct {
	Player  string  `json:"player"`
	Wickets int     `json:"wickets"`
	Runs    int     `json:"runs"`
	Economy float64 `json:"economy"`
}

// VenueMetrics is the per-venue metrics report.
//
// WinPctBatFirst and WinPctChase are fractions that treat team1 as the side
// batting first. BatFirstWinPct is a whole percentage that works out the
// side batting first from the toss.
type VenueMetrics struct {
	Venue              string        `json:"venue"`
	Season             string        `json:"season"`
	TotalMatches       int           `json:"totalMatches"`
	AvgFirstInnings    float64       `json:"avgFirstInnings"`
	AvgSecondInnings   float64       `json:"avgSecondInnings"`
	WinPctBatFirst     float64       `json:"winPctBatFirst"`
	WinPctChase        float64       `json:"winPctChase"`
	BatFirstWinPct     float64       `json:"batFirstWinPct"`
	TossDecisionCounts TossCounts    `json:"tossDecisionCounts"`
	TopTeams           []TeamWins    `json:"topTeams"`
	TopBatsmen         []PlayerRuns  `json:"topBatsmen"`
	TopBowlers         []VenueBowler `json:"topBowlers"`
}

// NameValue is a labelled count, used by chart-style breakdowns.
type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// VenueTeam is a team's record at one venue.
type VenueTeam struct {
	Team          string  `json:"team"`
	Matches       int     `json:"matches"`
	Wins          int     `json:"wins"`
	WinPercentage float64 `json:"winPercentage"`
}

// VenueStats is the venue summary.
type VenueStats struct {
	VenueName                 string      `json:"venueName"`
	TotalMatches              int         `json:"totalMatches"`
	BattingFirstWins          int         `json:"battingFirstWins"`
	ChasingWins               int         `json:"chasingWins"`
	AvgFirstInningsScore      float64     `json:"avgFirstInningsScore"`
	BattingFirstWinPercentage float64     `json:"battingFirstWinPercentage"`
	ChasingWinPercentage      float64     `json:"chasingWinPercentage"`
	TossWinMatchWinPercentage float64     `json:"tossWinMatchWinPercentage"`
	HighestScore              int         `json:"highestScore"`
	TossDecisionImpact        []NameValue `json:"tossDecisionImpact"`
	BestTeamsAtVenue          []VenueTeam `json:"bestTeamsAtVenue"`
}
