package model

import (
	"fmt"
	"strings"
	"time"
)

// Toss decisions as recorded in the source data.
const (
	TossBat   = "bat"
	TossField = "field"
)

// Match is one fixture. Winner is "" on a tie or no result.
type Match struct {
	MatchID       int       `json:"matchId"`
	Season        int       `json:"season"`
	Date          time.Time `json:"date"`
	Venue         string    `json:"venue"`
	City          string    `json:"city,omitempty"`
	Team1         string    `json:"team1"`
	Team2         string    `json:"team2"`
	TossWinner    string    `json:"tossWinner,omitempty"`
	TossDecision  string    `json:"tossDecision,omitempty"`
	Winner        string    `json:"winner,omitempty"`
	Result        string    `json:"result,omitempty"`
	PlayerOfMatch string    `json:"playerOfMatch,omitempty"`
	Umpire1       string    `json:"umpire1,omitempty"`
	Umpire2       string    `json:"umpire2,omitempty"`
	Umpire3       string    `json:"umpire3,omitempty"`
}

// Decisive reports whether one of the two teams was credited with a win.
// A blank winner, or a result mentioning a tie or no result, is non-decisive.
func (m Match) Decisive() bool {
	if strings.TrimSpace(m.Winner) == "" {
		return false
	}
	r := strings.ToLower(m.Result)
	return !strings.Contains(r, "no result") && !strings.Contains(r, "tie")
}

// IsTie reports a tied result.
func (m Match) IsTie() bool {
	return strings.Contains(strings.ToLower(m.Result), "tie")
}

// IsNoResult reports an abandoned or no-result fixture.
func (m Match) IsNoResult() bool {
	return strings.Contains(strings.ToLower(m.Result), "no result") || strings.TrimSpace(m.Winner) == ""
}

// Umpires returns the non-empty umpire names.
func (m Match) Umpires() []string {
	out := make([]string, 0, 3)
	for _, u := range []string{m.Umpire1, m.Umpire2, m.Umpire3} {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// Opponent returns the other side for team, or "" if team did not play.
func (m Match) Opponent(team string) string {
	switch {
	case strings.EqualFold(m.Team1, team):
		return m.Team2
	case strings.EqualFold(m.Team2, team):
		return m.Team1
	}
	return ""
}

// Validate checks that a non-empty winner is one of the two teams.
func (m Match) Validate() error {
	if m.MatchID <= 0 {
		return fmt.Errorf("%w: matchId %d", ErrInvalidMatch, m.MatchID)
	}
	if m.Team1 == "" || m.Team2 == "" {
		return fmt.Errorf("%w: match %d missing teams", ErrInvalidMatch, m.MatchID)
	}
	if m.Winner != "" && !strings.EqualFold(m.Winner, m.Team1) && !strings.EqualFold(m.Winner, m.Team2) {
		return fmt.Errorf("%w: match %d winner %q is neither %q nor %q", ErrInvalidMatch, m.MatchID, m.Winner, m.Team1, m.Team2)
	}
	return nil
}
