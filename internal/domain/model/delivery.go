// Package model contains the two read-only datasets the analytics layer
// works on: ball-by-ball deliveries and match metadata.
package model

import (
	"fmt"
	"strings"
)

// Delivery is one ball bowled. Nullable text fields use "" for null.
type Delivery struct {
	MatchID int `json:"matchId"`
	Inning  int `json:"inning"`
	Over    int `json:"over"`
	Ball    int `json:"ball"`

	BattingTeam string `json:"battingTeam"`
	BowlingTeam string `json:"bowlingTeam"`
	Batsman     string `json:"batsman"`
	NonStriker  string `json:"nonStriker"`
	Bowler      string `json:"bowler"`

	IsSuperOver bool `json:"isSuperOver"`

	WideRuns    int `json:"wideRuns"`
	ByeRuns     int `json:"byeRuns"`
	LegbyeRuns  int `json:"legbyeRuns"`
	NoballRuns  int `json:"noballRuns"`
	PenaltyRuns int `json:"penaltyRuns"`
	BatsmanRuns int `json:"batsmanRuns"`
	ExtraRuns   int `json:"extraRuns"`
	TotalRuns   int `json:"totalRuns"`

	PlayerDismissed   string `json:"player_dismissed,omitempty"`
	DismissalKind     string `json:"dismissal_kind,omitempty"`
	DismissalFielders string `json:"dismissal_fielders,omitempty"`
}

// IsWicket reports whether a batsman was dismissed on this ball.
func (d Delivery) IsWicket() bool { return d.PlayerDismissed != "" }

// notBowlerWickets are dismissals the bowler is not credited with.
var notBowlerWickets = []string{"run out", "retired hurt", "obstructing the field"}

// IsBowlerWicket reports a dismissal credited to the bowler.
func (d Delivery) IsBowlerWicket() bool {
	if !d.IsWicket() {
		return false
	}
	kind := strings.ToLower(d.DismissalKind)
	for _, k := range notBowlerWickets {
		if strings.Contains(kind, k) {
			return false
		}
	}
	return true
}

// IsCatch reports a caught dismissal, including caught and bowled.
func (d Delivery) IsCatch() bool {
	return d.IsWicket() && strings.HasPrefix(strings.ToLower(d.DismissalKind), "caught")
}

// IsRunOut reports a run-out dismissal.
func (d Delivery) IsRunOut() bool {
	return d.IsWicket() && strings.Contains(strings.ToLower(d.DismissalKind), "run out")
}

// Fielders splits DismissalFielders into individual names.
func (d Delivery) Fielders() []string {
	if d.DismissalFielders == "" {
		return nil
	}
	parts := strings.FieldsFunc(d.DismissalFielders, func(r rune) bool { return r == ',' || r == '/' || r == ';' })
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsBoundary reports a four or a six off the bat.
func (d Delivery) IsBoundary() bool { return d.BatsmanRuns == 4 || d.BatsmanRuns == 6 }

// Validate checks the import-time invariants of a delivery.
func (d Delivery) Validate() error {
	if d.MatchID <= 0 {
		return fmt.Errorf("%w: matchId %d", ErrInvalidDelivery, d.MatchID)
	}
	if d.Inning < 1 || d.Over < 1 || d.Ball < 1 {
		return fmt.Errorf("%w: match %d position %d.%d.%d", ErrInvalidDelivery, d.MatchID, d.Inning, d.Over, d.Ball)
	}
	extras := d.WideRuns + d.ByeRuns + d.LegbyeRuns + d.NoballRuns + d.PenaltyRuns
	if d.ExtraRuns != extras {
		return fmt.Errorf("%w: match %d %d.%d extras %d != breakdown %d", ErrRunsMismatch, d.MatchID, d.Over, d.Ball, d.ExtraRuns, extras)
	}
	if d.TotalRuns != d.BatsmanRuns+d.ExtraRuns {
		return fmt.Errorf("%w: match %d %d.%d total %d != %d+%d", ErrRunsMismatch, d.MatchID, d.Over, d.Ball, d.TotalRuns, d.BatsmanRuns, d.ExtraRuns)
	}
	return nil
}

// Less orders deliveries chronologically: match, inning, over, ball.
func (d Delivery) Less(o Delivery) bool {
	if d.MatchID != o.MatchID {
		return d.MatchID < o.MatchID
	}
	if d.Inning != o.Inning {
		return d.Inning < o.Inning
	}
	if d.Over != o.Over {
		return d.Over < o.Over
	}
	return d.Ball < o.Ball
}
