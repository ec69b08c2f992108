package types

// RivalBall is one delivery in a head-to-head sample.
type RivalBall struct {
	MatchID int  `json:"matchId"`
	Over    int  `json:"over"`
	Ball    int  `json:"ball"`
	Runs    int  `json:"runs"`
	Wicket  bool `json:"wicket"`
}

// RivalBattle summarises every ball a batsman faced from one bowler.
type RivalBattle struct {
	Batsman             string         `json:"batsman"`
	Bowler              string         `json:"bowler"`
	Balls               int            `json:"balls"`
	Runs                int            `json:"runs"`
	Dismissals          int            `json:"dismissals"`
	SR                  float64        `json:"sr"`
	Fours               int            `json:"fours"`
	Sixes               int            `json:"sixes"`
	DismissalsBreakdown map[string]int `json:"dismissalsBreakdown"`
	SampleTimeline      []RivalBall    `json:"sampleTimeline"`
}

// OverStat is one over of an innings with the running total.
type OverStat struct {
	Over          int `json:"over"`
	RunsInOver    int `json:"runsInOver"`
	ExtrasInOver  int `json:"extrasInOver"`
	WicketsInOver int `json:"wicketsInOver"`
	Cumulative    int `json:"cumulative"`
}

// InningsOvers is the over-by-over breakdown of one innings.
type InningsOvers struct {
	Inning int        `json:"inning"`
	Overs  []OverStat `json:"overs"`
}

// MatchOverStats is the over-by-over report for a match.
type MatchOverStats struct {
	MatchID int            `json:"matchId"`
	Innings []InningsOvers `json:"innings"`
}
