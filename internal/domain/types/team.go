package types

import "time"

// Team is a row of the derived teams list.
type Team struct {
	Name          string  `json:"name"`
	TotalMatches  int     `json:"totalMatches"`
	TotalWins     int     `json:"totalWins"`
	WinPercentage float64 `json:"winPercentage"`
	FirstSeason   int     `json:"firstSeason"`
	LastSeason    int     `json:"lastSeason"`
}

// TeamSeason is one season of a team's record.
type TeamSeason struct {
	Season        int `json:"season"`
	MatchesPlayed int `json:"matchesPlayed"`
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	Ties          int `json:"ties"`
	NoResult      int `json:"noResult"`
	RunsScored    int `json:"runsScored"`
	RunsConceded  int `json:"runsConceded"`
	HighestScore  int `json:"highestScore"`
	LowestScore   int `json:"lowestScore"`
	AverageScore  int `json:"averageScore"`
}

// InningsLine is a compact innings scorecard.
type InningsLine struct {
	Total   int     `json:"total"`
	Wickets int     `json:"wickets"`
	Overs   float64 `json:"overs"`
}

// TeamScore is the team's batting in each innings of a match.
type TeamScore struct {
	Innings1 *InningsLine `json:"innings1"`
	Innings2 *InningsLine `json:"innings2"`
}

// TeamMatch is one fixture from a team's point of view.
type TeamMatch struct {
	MatchID      int       `json:"matchId"`
	Date         time.Time `json:"date"`
	Venue        string    `json:"venue"`
	Opponent     string    `json:"opponent"`
	TossWinner   string    `json:"tossWinner"`
	TossDecision string    `json:"tossDecision"`
	Winner       string    `json:"winner"`
	Result       string    `json:"result"`
	TeamScore    TeamScore `json:"teamScore"`
}

// HeadToHead is the record between two teams.
type HeadToHead struct {
	Team1               string `json:"team1"`
	Team2               string `json:"team2"`
	Season              string `json:"season"`
	TotalMatchesBetween int    `json:"totalMatchesBetween"`
	WinsTeam1           int    `json:"winsTeam1"`
	WinsTeam2           int    `json:"winsTeam2"`
	TiesOrNoResult      int    `json:"tiesOrNoResult"`
}

// Umpire is a row of the umpires list.
type Umpire struct {
	Name    string `json:"name"`
	Matches int    `json:"matches"`
}

// UmpireStats is one umpire's career.
type UmpireStats struct {
	UmpireName        string        `json:"umpireName"`
	TotalMatches      int           `json:"totalMatches"`
	FinalsOfficiated  int           `json:"finalsOfficiated"`
	SeasonsActive     int           `json:"seasonsActive"`
	MostFrequentVenue string        `json:"mostFrequentVenue"`
	TeamsEncountered  int           `json:"teamsEncountered"`
	CareerSpan        string        `json:"careerSpan"`
	VenueFrequency    []NamedCount  `json:"venueFrequency"`
	TeamEncounters    []NamedCount  `json:"teamEncounters"`
	SeasonActivity    []SeasonCount `json:"seasonActivity"`
}

// SeasonCount is a per-season match count.
type SeasonCount struct {
	Season  int `json:"season"`
	Matches int `json:"matches"`
}
