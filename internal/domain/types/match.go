package types

import "github.com/okian/iplstats/internal/domain/model"

// MatchesSummary counts matches per season and wins per team.
type MatchesSummary struct {
	TotalMatches     int            `json:"totalMatches"`
	MatchesPerSeason map[int]int    `json:"matchesPerSeason"`
	WinsPerTeam      map[string]int `json:"winsPerTeam"`
}

// FallOfWicket records the score when a batsman was out.
type FallOfWicket struct {
	OverBall    string `json:"overBall"`
	Player      string `json:"player"`
	ScoreAtFall int    `json:"scoreAtFall"`
}

// BatsmanCard is one batsman's line on a scorecard.
type BatsmanCard struct {
	Batsman    string  `json:"batsman"`
	Runs       int     `json:"runs"`
	Balls      int     `json:"balls"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
	StrikeRate float64 `json:"strikeRate"`
	Dismissal  string  `json:"dismissal"`
}

// BowlerCard is one bowler's line on a scorecard.
type BowlerCard struct {
	Bowler  string  `json:"bowler"`
	Overs   float64 `json:"overs"`
	Balls   int     `json:"balls"`
	Runs    int     `json:"runs"`
	Wickets int     `json:"wickets"`
	Economy float64 `json:"economy"`
}

// InningsCard is the scorecard of one innings.
type InningsCard struct {
	Inning        int            `json:"inning"`
	BattingTeam   string         `json:"battingTeam"`
	BowlingTeam   string         `json:"bowlingTeam"`
	TotalRuns     int            `json:"totalRuns"`
	Wickets       int            `json:"wickets"`
	Extras        int            `json:"extras"`
	OversPlayed   float64        `json:"oversPlayed"`
	BatsmenStats  []BatsmanCard  `json:"batsmenStats"`
	BowlersStats  []BowlerCard   `json:"bowlersStats"`
	FallOfWickets []FallOfWicket `json:"fallOfWickets"`
}

// MatchDetails is a full scorecard with the opening deliveries.
type MatchDetails struct {
	Match      model.Match      `json:"match"`
	Innings    []InningsCard    `json:"innings"`
	Deliveries []model.Delivery `json:"deliveries"`
}

// Pagination describes one page of a larger result.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	Limit       int  `json:"limit"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// DeliveryPage is a page of a match's deliveries.
type DeliveryPage struct {
	Data       []model.Delivery `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

// TimelineOver is one over of the match timeline.
type TimelineOver struct {
	Over            int     `json:"over"`
	RunsInOver      int     `json:"runsInOver"`
	Wickets         int     `json:"wickets"`
	CumulativeRuns  int     `json:"cumulativeRuns"`
	CurrentRunRate  float64 `json:"currentRunRate"`
	RequiredRunRate float64 `json:"requiredRunRate,omitempty"`
	ChaseStatus     string  `json:"chaseStatus,omitempty"`
}

// MatchTimeline is the over-by-over progression of both innings.
type MatchTimeline struct {
	MatchID       int            `json:"matchId"`
	Target        int            `json:"target"`
	FirstInnings  []TimelineOver `json:"firstInnings"`
	SecondInnings []TimelineOver `json:"secondInnings"`
}
