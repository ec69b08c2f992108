package types

// TeamRecord is a team's wins over matches played.
type TeamRecord struct {
	Team          string  `json:"team"`
	Wins          int     `json:"wins"`
	Matches       int     `json:"matches"`
	WinPercentage float64 `json:"winPercentage"`
}

// NamedCount is a name with an occurrence count.
type NamedCount struct {
	Name    string `json:"name"`
	Matches int    `json:"matches"`
}

// SeasonSummary is the one-season overview.
type SeasonSummary struct {
	Season             int             `json:"season"`
	TotalMatches       int             `json:"totalMatches"`
	TotalRuns          int             `json:"totalRuns"`
	TotalWickets       int             `json:"totalWickets"`
	HighestTotal       int             `json:"highestTotal"`
	BestChase          int             `json:"bestChase"`
	Champion           string          `json:"champion"`
	TopRunScorers      []PlayerRuns    `json:"topRunScorers"`
	TopWicketTakers    []PlayerWickets `json:"topWicketTakers"`
	TeamWinPercentages []TeamRecord    `json:"teamWinPercentages"`
	VenueDistribution  []NamedCount    `json:"venueDistribution"`
}
