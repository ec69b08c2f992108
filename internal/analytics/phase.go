package analytics

import (
	"github.com/okian/iplstats/internal/domain/cricket"
	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/internal/domain/scoring"
	"github.com/okian/iplstats/internal/domain/types"
)

type battingAcc struct {
	runs, balls, fours, sixes, wickets int
}

func (a *battingAcc) add(d *model.Delivery) {
	a.runs += d.BatsmanRuns
	a.balls++
	switch d.BatsmanRuns {
	case 4:
		a.fours++
	case 6:
		a.sixes++
	}
}

type bowlingAcc struct {
	runs, balls, wickets int
}

func (a *bowlingAcc) add(d *model.Delivery) {
	a.runs += d.TotalRuns
	a.balls++
	if d.IsBowlerWicket() {
		a.wickets++
	}
}

func phaseIndex(p cricket.Phase) int {
	switch p {
	case cricket.Powerplay:
		return 0
	case cricket.Middle:
		return 1
	case cricket.Death:
		return 2
	}
	return -1
}

// PhaseBatting aggregates batting by phase. team and player may each be
// empty; a set player restricts to balls that player faced and to that
// player's own dismissals.
// All three phases are returned, zero-filled.
func PhaseBatting(ds *Dataset, team, player string, season int) []types.PhaseBatting {
	var acc [3]battingAcc
	ds.eachDelivery(season, func(d *model.Delivery) {
		i := phaseIndex(cricket.PhaseOf(d.Over))
		if i < 0 {
			return
		}
		if team != "" && !cricket.TeamMatches(d.BattingTeam, team) {
			return
		}
		if player == "" {
			acc[i].add(d)
			if d.IsWicket() {
				acc[i].wickets++
			}
			return
		}
		if cricket.PlayerMatches(d.Batsman, player) {
			acc[i].add(d)
		}
		if cricket.PlayerMatches(d.PlayerDismissed, player) {
			acc[i].wickets++
		}
	})

	rows := make([]types.PhaseBatting, 0, 3)
	for i, p := range cricket.Phases() {
		a := acc[i]
		rows = append(rows, types.PhaseBatting{
			Phase:       p,
			RunsScored:  a.runs,
			BallsFaced:  a.balls,
			Fours:       a.fours,
			Sixes:       a.sixes,
			WicketsLost: a.wickets,
			StrikeRate:  scoring.Round2(scoring.StrikeRate(a.runs, a.balls)),
			Avg:         scoring.Round2(scoring.BattingAverage(a.runs, a.wickets)),
		})
	}
	return rows
}

// PhaseBowling aggregates bowling by phase for the fielding side team
// and/or bowler player. All three phases are returned, zero-filled.
func PhaseBowling(ds *Dataset, team, player string, season int) []types.PhaseBowling {
	var acc [3]bowlingAcc
	ds.eachDelivery(season, func(d *model.Delivery) {
		i := phaseIndex(cricket.PhaseOf(d.Over))
		if i < 0 {
			return
		}
		if team != "" && !cricket.TeamMatches(d.BowlingTeam, team) {
			return
		}
		if player != "" && !cricket.PlayerMatches(d.Bowler, player) {
			return
		}
		acc[i].add(d)
	})

	rows := make([]types.PhaseBowling, 0, 3)
	for i, p := range cricket.Phases() {
		a := acc[i]
		rows = append(rows, types.PhaseBowling{
			Phase:        p,
			RunsConceded: a.runs,
			BallsBowled:  a.balls,
			WicketsTaken: a.wickets,
			Economy:      scoring.Round2(scoring.Economy(a.runs, a.balls)),
		})
	}
	return rows
}

// PhaseLeague is the league-wide split. Phases without a ball are omitted.
func PhaseLeague(ds *Dataset, season int) []types.PhaseLeague {
	type acc struct{ runs, balls, wickets, boundaries int }
	var a [3]acc
	ds.eachDelivery(season, func(d *model.Delivery) {
		i := phaseIndex(cricket.PhaseOf(d.Over))
		if i < 0 {
			return
		}
		a[i].runs += d.TotalRuns
		a[i].balls++
		if d.IsWicket() {
			a[i].wickets++
		}
		if d.IsBoundary() {
			a[i].boundaries++
		}
	})

	var rows []types.PhaseLeague
	for i, p := range cricket.Phases() {
		if a[i].balls == 0 {
			continue
		}
		rows = append(rows, types.PhaseLeague{
			Phase:        p,
			TotalRuns:    a[i].runs,
			TotalBalls:   a[i].balls,
			TotalWickets: a[i].wickets,
			Boundaries:   a[i].boundaries,
			AvgRunRate:   scoring.Round2(scoring.Economy(a[i].runs, a[i].balls)),
			WicketRate:   scoring.Ratio(a[i].wickets, a[i].balls),
		})
	}
	return rows
}

// HasBattingBalls reports whether any row has a ball faced.
func HasBattingBalls(rows []types.PhaseBatting) bool {
	for _, r := range rows {
		if r.BallsFaced > 0 {
			return true
		}
	}
	return false
}

// HasBowlingBalls reports whether any row has a ball bowled.
func HasBowlingBalls(rows []types.PhaseBowling) bool {
	for _, r := range rows {
		if r.BallsBowled > 0 {
			return true
		}
	}
	return false
}
