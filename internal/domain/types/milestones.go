package types

// InningsScore is a batting milestone: one batsman in one innings.
type InningsScore struct {
	Player  string `json:"player"`
	Runs    int    `json:"runs"`
	Balls   int    `json:"balls"`
	Match   string `json:"match"`
	Season  int    `json:"season"`
	MatchID int    `json:"matchId"`
}

// SixesRecord is the most sixes hit in a single innings.
type SixesRecord struct {
	Player  string `json:"player"`
	Sixes   int    `json:"sixes"`
	Runs    int    `json:"runs"`
	Match   string `json:"match"`
	Season  int    `json:"season"`
	MatchID int    `json:"matchId"`
}

// BowlingFigures is one bowler's spell in one innings.
type BowlingFigures struct {
	Player  string  `json:"player"`
	Wickets int     `json:"wickets"`
	Runs    int     `json:"runs"`
	Overs   float64 `json:"overs"`
	Economy float64 `json:"economy"`
	Figures string  `json:"figures"`
	Match   string  `json:"match"`
	Season  int     `json:"season"`
	MatchID int     `json:"matchId"`
}

// FielderRecord counts dismissals a fielder was involved in.
type FielderRecord struct {
	Player     string `json:"player"`
	Dismissals int    `json:"dismissals"`
}

// TeamInnings is a team total for one innings.
type TeamInnings struct {
	Team    string `json:"team"`
	Runs    int    `json:"runs"`
	Wickets int    `json:"wickets"`
	Overs   int    `json:"overs"`
	Match   string `json:"match"`
	Season  int    `json:"season"`
	MatchID int    `json:"matchId"`
}

// Milestones is the league-wide record book.
type Milestones struct {
	FastestFifties       []InningsScore   `json:"fastestFifties"`
	FastestHundreds      []InningsScore   `json:"fastestHundreds"`
	HighestScores        []InningsScore   `json:"highestScores"`
	MostSixesInMatch     []SixesRecord    `json:"mostSixesInMatch"`
	BestBowlingFigures   []BowlingFigures `json:"bestBowlingFigures"`
	MostEconomicalSpells []BowlingFigures `json:"mostEconomicalSpells"`
	MostCatches          []FielderRecord  `json:"mostCatches"`
	MostRunOuts          []FielderRecord  `json:"mostRunOuts"`
	HatTricks            []BowlingFigures `json:"hatTricks"`
	HighestTeamTotals    []TeamInnings    `json:"highestTeamTotals"`
	SuccessfulChases     []TeamInnings    `json:"successfulChases"`
	LowestDefended       []TeamInnings    `json:"lowestDefended"`
}

// Partnership is the career record of an unordered batting pair.
type Partnership struct {
	Player1            string  `json:"player1"`
	Player2            string  `json:"player2"`
	Runs               int     `json:"runs"`
	Balls              int     `json:"balls"`
	Partnerships       int     `json:"partnerships"`
	AveragePartnership float64 `json:"averagePartnership"`
	StrikeRate         float64 `json:"strikeRate"`
	HighestPartnership int     `json:"highestPartnership"`
}

// PartnershipReport is a team's partnership table.
type PartnershipReport struct {
	Team                 string        `json:"team"`
	Season               string        `json:"season"`
	TotalPartnerships    int           `json:"totalPartnerships"`
	HighestPartnership   int           `json:"highestPartnership"`
	AveragePartnership   float64       `json:"averagePartnership"`
	CenturyPartnerships  int           `json:"centuryPartnerships"`
	TopPartnerships      []Partnership `json:"topPartnerships"`
	OpeningPartnerships  []Partnership `json:"openingPartnerships"`
	MiddleOrder          []Partnership `json:"middleOrderPartnerships"`
	FinishingPartnership []Partnership `json:"finishingPartnerships"`
}
