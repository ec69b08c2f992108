package analytics

import (
	"fmt"
	"sort"

	"github.com/okian/iplstats/internal/domain/cricket"
	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/internal/domain/scoring"
	"github.com/okian/iplstats/internal/domain/types"
)

// Record book thresholds.
const (
	MilestoneLimit     = 10
	FiftyRuns          = 50
	HundredRuns        = 100
	BestFiguresMinWkts = 3
	EconomicalMinBalls = 18
)

type spellKey struct {
	match, inning int
	player        string
}

// Milestones builds the record book. season 0 covers every season.
func Milestones(ds *Dataset, season int) types.Milestones {
	batting := map[spellKey]*battingAcc{}
	bowling := map[spellKey]*bowlingAcc{}
	catches := map[string]int{}
	runOuts := map[string]int{}

	ds.eachDelivery(season, func(d *model.Delivery) {
		if d.Batsman != "" {
			k := spellKey{d.MatchID, d.Inning, d.Batsman}
			b := batting[k]
			if b == nil {
				b = &battingAcc{}
				batting[k] = b
			}
			b.add(d)
		}
		if d.Bowler != "" {
			k := spellKey{d.MatchID, d.Inning, d.Bowler}
			a := bowling[k]
			if a == nil {
				a = &bowlingAcc{}
				bowling[k] = a
			}
			a.add(d)
		}
		switch {
		case d.IsCatch():
			for _, f := range d.Fielders() {
				catches[f]++
			}
		case d.IsRunOut():
			for _, f := range d.Fielders() {
				runOuts[f]++
			}
		}
	})

	out := types.Milestones{
		FastestFifties:       fastest(ds, batting, FiftyRuns),
		FastestHundreds:      fastest(ds, batting, HundredRuns),
		HighestScores:        highestScores(ds, batting),
		MostSixesInMatch:     mostSixes(ds, batting),
		BestBowlingFigures:   bestFigures(ds, bowling),
		MostEconomicalSpells: economicalSpells(ds, bowling),
		MostCatches:          topFielders(catches),
		MostRunOuts:          topFielders(runOuts),
		HatTricks:            []types.BowlingFigures{},
		LowestDefended:       []types.TeamInnings{},
	}
	out.HighestTeamTotals, out.SuccessfulChases = teamTotals(ds, season)
	return out
}

func (ds *Dataset) caption(id int) (string, int) {
	m, ok := ds.Match(id)
	if !ok {
		return fmt.Sprintf("match %d", id), 0
	}
	return matchLabel(m), m.Season
}

// fastest ranks innings of at least minRuns by the balls faced in the
// whole innings.
func fastest(ds *Dataset, batting map[spellKey]*battingAcc, minRuns int) []types.InningsScore {
	var rows []types.InningsScore
	for k, b := range batting {
		if b.runs < minRuns {
			continue
		}
		label, season := ds.caption(k.match)
		rows = append(rows, types.InningsScore{Player: k.player, Runs: b.runs, Balls: b.balls, Match: label, Season: season, MatchID: k.match})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Balls != rows[j].Balls {
			return rows[i].Balls < rows[j].Balls
		}
		if rows[i].Runs != rows[j].Runs {
			return rows[i].Runs > rows[j].Runs
		}
		return byPlayerMatch(rows[i].Player, rows[j].Player, rows[i].MatchID, rows[j].MatchID)
	})
	return nonNil(truncate(rows, MilestoneLimit))
}

func highestScores(ds *Dataset, batting map[spellKey]*battingAcc) []types.InningsScore {
	rows := make([]types.InningsScore, 0, len(batting))
	for k, b := range batting {
		label, season := ds.caption(k.match)
		rows = append(rows, types.InningsScore{Player: k.player, Runs: b.runs, Balls: b.balls, Match: label, Season: season, MatchID: k.match})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Runs != rows[j].Runs {
			return rows[i].Runs > rows[j].Runs
		}
		if rows[i].Balls != rows[j].Balls {
			return rows[i].Balls < rows[j].Balls
		}
		return byPlayerMatch(rows[i].Player, rows[j].Player, rows[i].MatchID, rows[j].MatchID)
	})
	return truncate(rows, MilestoneLimit)
}

func mostSixes(ds *Dataset, batting map[spellKey]*battingAcc) []types.SixesRecord {
	var rows []types.SixesRecord
	for k, b := range batting {
		if b.sixes == 0 {
			continue
		}
		label, season := ds.caption(k.match)
		rows = append(rows, types.SixesRecord{Player: k.player, Sixes: b.sixes, Runs: b.runs, Match: label, Season: season, MatchID: k.match})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Sixes != rows[j].Sixes {
			return rows[i].Sixes > rows[j].Sixes
		}
		if rows[i].Runs != rows[j].Runs {
			return rows[i].Runs > rows[j].Runs
		}
		return byPlayerMatch(rows[i].Player, rows[j].Player, rows[i].MatchID, rows[j].MatchID)
	})
	return nonNil(truncate(rows, MilestoneLimit))
}

func figures(ds *Dataset, k spellKey, a *bowlingAcc) types.BowlingFigures {
	label, season := ds.caption(k.match)
	return types.BowlingFigures{
		Player:  k.player,
		Wickets: a.wickets,
		Runs:    a.runs,
		Overs:   scoring.Overs(a.balls),
		Economy: scoring.Round2(scoring.Economy(a.runs, a.balls)),
		Figures: fmt.Sprintf("%d/%d", a.wickets, a.runs),
		Match:   label,
		Season:  season,
		MatchID: k.match,
	}
}

// bestFigures ranks spells of three or more wickets; fewer runs conceded
// breaks a tie on wickets.
func bestFigures(ds *Dataset, bowling map[spellKey]*bowlingAcc) []types.BowlingFigures {
	var rows []types.BowlingFigures
	for k, a := range bowling {
		if a.wickets < BestFiguresMinWkts {
			continue
		}
		rows = append(rows, figures(ds, k, a))
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Wickets != rows[j].Wickets {
			return rows[i].Wickets > rows[j].Wickets
		}
		if rows[i].Runs != rows[j].Runs {
			return rows[i].Runs < rows[j].Runs
		}
		return byPlayerMatch(rows[i].Player, rows[j].Player, rows[i].MatchID, rows[j].MatchID)
	})
	return nonNil(truncate(rows, MilestoneLimit))
}

func economicalSpells(ds *Dataset, bowling map[spellKey]*bowlingAcc) []types.BowlingFigures {
	type spell struct {
		row     types.BowlingFigures
		economy float64
	}
	var spells []spell
	for k, a := range bowling {
		if a.balls < EconomicalMinBalls {
			continue
		}
		spells = append(spells, spell{row: figures(ds, k, a), economy: scoring.Economy(a.runs, a.balls)})
	}
	sort.Slice(spells, func(i, j int) bool {
		if spells[i].economy != spells[j].economy {
			return spells[i].economy < spells[j].economy
		}
		if spells[i].row.Wickets != spells[j].row.Wickets {
			return spells[i].row.Wickets > spells[j].row.Wickets
		}
		return byPlayerMatch(spells[i].row.Player, spells[j].row.Player, spells[i].row.MatchID, spells[j].row.MatchID)
	})
	spells = truncate(spells, MilestoneLimit)
	rows := make([]types.BowlingFigures, len(spells))
	for i, s := range spells {
		rows[i] = s.row
	}
	return rows
}

func topFielders(counts map[string]int) []types.FielderRecord {
	rows := make([]types.FielderRecord, 0, len(counts))
	for p, n := range counts {
		rows = append(rows, types.FielderRecord{Player: p, Dismissals: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Dismissals != rows[j].Dismissals {
			return rows[i].Dismissals > rows[j].Dismissals
		}
		return rows[i].Player < rows[j].Player
	})
	return truncate(rows, MilestoneLimit)
}

// teamTotals returns the highest innings totals and the highest
// second-innings totals made by the side that went on to win.
func teamTotals(ds *Dataset, season int) ([]types.TeamInnings, []types.TeamInnings) {
	var ids []int
	ds.eachMatch(season, func(m *model.Match) { ids = append(ids, m.MatchID) })

	var totals, chases []types.TeamInnings
	for k, t := range inningsTotals(ds, ids) {
		if k.inning > 2 {
			continue
		}
		m, _ := ds.Match(k.match)
		row := types.TeamInnings{
			Team:    t.team,
			Runs:    t.runs,
			Wickets: t.wickets,
			Overs:   t.lastOver,
			Match:   matchLabel(m),
			Season:  m.Season,
			MatchID: k.match,
		}
		totals = append(totals, row)
		if k.inning == 2 && m.Decisive() && cricket.TeamMatches(m.Winner, t.team) {
			chases = append(chases, row)
		}
	}
	byRuns := func(rows []types.TeamInnings) []types.TeamInnings {
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Runs != rows[j].Runs {
				return rows[i].Runs > rows[j].Runs
			}
			if rows[i].Wickets != rows[j].Wickets {
				return rows[i].Wickets < rows[j].Wickets
			}
			return rows[i].MatchID < rows[j].MatchID
		})
		return nonNil(truncate(rows, MilestoneLimit))
	}
	return byRuns(totals), byRuns(chases)
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

func byPlayerMatch(p1, p2 string, m1, m2 int) bool {
	if p1 != p2 {
		return p1 < p2
	}
	return m1 < m2
}
