package types

// SeasonRuns is one season of a batsman's career.
type SeasonRuns struct {
	Season     int     `json:"season"`
	Runs       int     `json:"runs"`
	Balls      int     `json:"balls"`
	StrikeRate float64 `json:"strikeRate"`
}

// VenueRuns is a batsman's aggregate at one venue.
type VenueRuns struct {
	Venue string `json:"venue"`
	Runs  int    `json:"runs"`
}

// BowlingSummary is the bowling side of a player's profile.
type BowlingSummary struct {
	TotalWickets int     `json:"totalWickets"`
	TotalOvers   float64 `json:"totalOvers"`
	Economy      float64 `json:"economy"`
	BestFigures  string  `json:"bestFigures"`
}

// FieldingSummary counts dismissals a player took part in as a fielder.
type FieldingSummary struct {
	Catches         int `json:"catches"`
	RunOuts         int `json:"runOuts"`
	TotalDismissals int `json:"totalDismissals"`
}

// PlayerStats is a player's career or single-season profile.
type PlayerStats struct {
	PlayerName        string           `json:"playerName"`
	Season            string           `json:"season"`
	TotalRuns         int              `json:"totalRuns"`
	TotalBalls        int              `json:"totalBalls"`
	Fours             int              `json:"fours"`
	Sixes             int              `json:"sixes"`
	StrikeRate        float64          `json:"strikeRate"`
	Average           float64          `json:"average"`
	BestVenue         *VenueRuns       `json:"bestVenue"`
	SeasonPerformance []SeasonRuns     `json:"seasonPerformance"`
	VenuePerformance  []VenueRuns      `json:"venuePerformance"`
	BowlingSummary    *BowlingSummary  `json:"bowlingSummary"`
	FieldingSummary   *FieldingSummary `json:"fieldingSummary"`
}

// TeamWickets is wickets taken against one opponent.
type TeamWickets struct {
	Team    string `json:"team"`
	Wickets int    `json:"wickets"`
}

// PhaseEconomy is economy within one over range.
type PhaseEconomy struct {
	Phase   string  `json:"phase"`
	Economy float64 `json:"economy"`
}

// VenueEconomy is economy at one venue.
type VenueEconomy struct {
	Venue   string  `json:"venue"`
	Economy float64 `json:"economy"`
}

// BowlerStats is a bowler's profile.
type BowlerStats struct {
	BowlerName        string         `json:"bowlerName"`
	Season            string         `json:"season"`
	TotalWickets      int            `json:"totalWickets"`
	TotalOvers        float64        `json:"totalOvers"`
	TotalRuns         int            `json:"totalRuns"`
	TotalBalls        int            `json:"totalBalls"`
	DotBalls          int            `json:"dotBalls"`
	Economy           float64        `json:"economy"`
	BestFigures       string         `json:"bestFigures"`
	DeathOversEconomy float64        `json:"deathOversEconomy"`
	WicketsVsTeams    []TeamWickets  `json:"wicketsVsTeams"`
	EconomyByOvers    []PhaseEconomy `json:"economyByOvers"`
	VenueEconomy      []VenueEconomy `json:"venueEconomy"`
}

// Player is a row of the derived players list.
type Player struct {
	Name       string  `json:"name"`
	Team       string  `json:"team"`
	Matches    int     `json:"matches"`
	TotalRuns  int     `json:"totalRuns"`
	BallsFaced int     `json:"ballsFaced"`
	Wickets    int     `json:"wickets"`
	StrikeRate float64 `json:"strikeRate"`
}
