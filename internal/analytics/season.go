package analytics

import (
	"fmt"
	"sort"

	"github.com/okian/iplstats/internal/domain/cricket"
	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/internal/domain/scoring"
	"github.com/okian/iplstats/internal/domain/types"
)

const (
	seasonTopN  = 10
	championTBD = "TBD"
)

// SeasonSummary builds the overview of one season.
func SeasonSummary(ds *Dataset, season int) (types.SeasonSummary, error) {
	if err := ValidateSeason(season); err != nil {
		return types.SeasonSummary{}, err
	}
	if !ds.HasSeason(season) {
		return types.SeasonSummary{}, fmt.Errorf("%w: no matches in season %d", ErrNotFound, season)
	}

	out := types.SeasonSummary{Season: season, Champion: championTBD}
	type rec struct{ wins, matches int }
	teams := map[string]*rec{}
	venues := map[string]int{}
	var ids []int
	ds.eachMatch(season, func(m *model.Match) {
		ids = append(ids, m.MatchID)
		out.TotalMatches++
		for _, t := range []string{m.Team1, m.Team2} {
			r := teams[t]
			if r == nil {
				r = &rec{}
				teams[t] = r
			}
			r.matches++
		}
		if r := teams[winnerOf(*m)]; r != nil && m.Decisive() {
			r.wins++
		}
		if m.Winner != "" {
			out.Champion = m.Winner
		}
		_, name := ds.venueOf(m.MatchID)
		venues[name]++
	})

	runs := map[string]int{}
	wickets := map[string]int{}
	ds.eachDelivery(season, func(d *model.Delivery) {
		out.TotalRuns += d.TotalRuns
		if d.IsWicket() {
			out.TotalWickets++
		}
		runs[d.Batsman] += d.BatsmanRuns
		if d.IsBowlerWicket() {
			wickets[d.Bowler]++
		}
	})
	for k, t := range inningsTotals(ds, ids) {
		if k.inning > 2 {
			continue
		}
		if t.runs > out.HighestTotal {
			out.HighestTotal = t.runs
		}
		if k.inning == 2 && t.runs > out.BestChase {
			if m, ok := ds.Match(k.match); ok && m.Decisive() && cricket.TeamMatches(m.Winner, t.team) {
				out.BestChase = t.runs
			}
		}
	}

	out.TopRunScorers = topPlayerRuns(runs, seasonTopN)
	out.TopWicketTakers = topPlayerWickets(wickets, seasonTopN)

	out.TeamWinPercentages = make([]types.TeamRecord, 0, len(teams))
	for t, r := range teams {
		out.TeamWinPercentages = append(out.TeamWinPercentages, types.TeamRecord{
			Team:          t,
			Wins:          r.wins,
			Matches:       r.matches,
			WinPercentage: scoring.WinPercentage(r.wins, r.matches),
		})
	}
	sort.Slice(out.TeamWinPercentages, func(i, j int) bool {
		a, b := out.TeamWinPercentages[i], out.TeamWinPercentages[j]
		if a.WinPercentage != b.WinPercentage {
			return a.WinPercentage > b.WinPercentage
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.Team < b.Team
	})
	out.VenueDistribution = countsDesc(venues, -1)
	return out, nil
}

func topPlayerWickets(wickets map[string]int, n int) []types.PlayerWickets {
	rows := make([]types.PlayerWickets, 0, len(wickets))
	for p, w := range wickets {
		if p == "" {
			continue
		}
		rows = append(rows, types.PlayerWickets{Player: p, Wickets: w})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Wickets != rows[j].Wickets {
			return rows[i].Wickets > rows[j].Wickets
		}
		return rows[i].Player < rows[j].Player
	})
	return truncate(rows, n)
}

// countsDesc turns a frequency map into rows sorted by count descending,
// then name. n < 0 keeps every row.
func countsDesc(counts map[string]int, n int) []types.NamedCount {
	rows := make([]types.NamedCount, 0, len(counts))
	for name, c := range counts {
		if name == "" {
			continue
		}
		rows = append(rows, types.NamedCount{Name: name, Matches: c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Matches != rows[j].Matches {
			return rows[i].Matches > rows[j].Matches
		}
		return rows[i].Name < rows[j].Name
	})
	return truncate(rows, n)
}

// winnerOf returns the winner spelled as in Team1/Team2.
func winnerOf(m model.Match) string {
	if cricket.TeamMatches(m.Winner, m.Team2) {
		return m.Team2
	}
	if cricket.TeamMatches(m.Winner, m.Team1) {
		return m.Team1
	}
	return m.Winner
}
