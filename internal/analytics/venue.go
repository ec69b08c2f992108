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
	venueTopN       = 5
	venueBestTeamsN = 8
)

// Venues lists every distinct venue once, by the first raw name seen for
// its key, sorted alphabetically.
func Venues(ds *Dataset) []string {
	out := make([]string, 0, len(ds.venueOrder))
	for _, k := range ds.venueOrder {
		out = append(out, ds.venueNames[k])
	}
	sort.Strings(out)
	return out
}

// venueMatches returns the matches at venue in season (0 for all).
func venueMatches(ds *Dataset, venue string, season int) (string, []model.Match) {
	key := cricket.VenueKey(venue)
	if key == "" {
		return key, nil
	}
	var out []model.Match
	ds.eachMatch(season, func(m *model.Match) {
		if ds.venueKeys[m.MatchID] == key {
			out = append(out, *m)
		}
	})
	return key, out
}

func matchIDs(ms []model.Match) []int {
	ids := make([]int, len(ms))
	for i, m := range ms {
		ids[i] = m.MatchID
	}
	return ids
}

type inningsKey struct{ match, inning int }

// inningsTotals sums runs and wickets per (match, inning) over ids.
func inningsTotals(ds *Dataset, ids []int) map[inningsKey]*inningsTotal {
	out := make(map[inningsKey]*inningsTotal)
	ds.eachDeliveryIn(ids, func(d *model.Delivery) {
		k := inningsKey{d.MatchID, d.Inning}
		t := out[k]
		if t == nil {
			t = &inningsTotal{team: d.BattingTeam}
			out[k] = t
		}
		t.runs += d.TotalRuns
		t.balls++
		if d.IsWicket() {
			t.wickets++
		}
		if d.Over > t.lastOver {
			t.lastOver = d.Over
			t.lastBall = d.Ball
		} else if d.Over == t.lastOver && d.Ball > t.lastBall {
			t.lastBall = d.Ball
		}
	})
	return out
}

type inningsTotal struct {
	team               string
	runs, wickets      int
	balls              int
	lastOver, lastBall int
}

// oversNotation is the over.ball position of the last delivery, e.g. 19.4.
func (t *inningsTotal) oversNotation() float64 {
	if t.lastBall >= cricket.BallsPerOver {
		return float64(t.lastOver)
	}
	return scoring.Round1(float64(t.lastOver-1) + float64(t.lastBall)/10)
}

// VenueMetrics builds the per-venue metrics report.
func VenueMetrics(ds *Dataset, venue string, season int) (types.VenueMetrics, error) {
	key, ms := venueMatches(ds, venue, season)
	if len(ms) == 0 {
		return types.VenueMetrics{}, fmt.Errorf("%w: no matches at venue %q", ErrNotFound, venue)
	}
	name, _ := ds.VenueName(key)
	out := types.VenueMetrics{
		Venue:        name,
		Season:       Filter{Season: season}.SeasonLabel(),
		TotalMatches: len(ms),
	}

	var first, second struct{ runs, n int }
	for k, t := range inningsTotals(ds, matchIDs(ms)) {
		switch k.inning {
		case 1:
			first.runs += t.runs
			first.n++
		case 2:
			second.runs += t.runs
			second.n++
		}
	}
	out.AvgFirstInnings = scoring.Round1(scoring.Ratio(first.runs, first.n))
	out.AvgSecondInnings = scoring.Round1(scoring.Ratio(second.runs, second.n))

	team1Wins, batFirstWins, decisive := 0, 0, 0
	wins := map[string]int{}
	for _, m := range ms {
		if cricket.TeamMatches(m.Winner, m.Team1) {
			team1Wins++
		}
		switch m.TossDecision {
		case model.TossBat:
			out.TossDecisionCounts.Bat++
		case model.TossField:
			out.TossDecisionCounts.Field++
		}
		if !m.Decisive() {
			continue
		}
		decisive++
		wins[winnerOf(m)]++
		if cricket.TeamMatches(m.Winner, ds.BattingFirst(m)) {
			batFirstWins++
		}
	}
	out.WinPctBatFirst = scoring.Round2(scoring.Ratio(team1Wins, len(ms)))
	out.WinPctChase = scoring.Round2(scoring.Ratio(len(ms)-team1Wins, len(ms)))
	out.BatFirstWinPct = scoring.WinPercentage(batFirstWins, decisive)
	out.TopTeams = topTeamWins(wins, venueTopN)

	runs := map[string]int{}
	bowl := map[string]*bowlingAcc{}
	ds.eachDeliveryIn(matchIDs(ms), func(d *model.Delivery) {
		runs[d.Batsman] += d.BatsmanRuns
		a := bowl[d.Bowler]
		if a == nil {
			a = &bowlingAcc{}
			bowl[d.Bowler] = a
		}
		a.add(d)
	})
	out.TopBatsmen = topPlayerRuns(runs, venueTopN)
	out.TopBowlers = topVenueBowlers(bowl, venueTopN)
	return out, nil
}

func topTeamWins(wins map[string]int, n int) []types.TeamWins {
	rows := make([]types.TeamWins, 0, len(wins))
	for t, w := range wins {
		rows = append(rows, types.TeamWins{Team: t, Wins: w})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Wins != rows[j].Wins {
			return rows[i].Wins > rows[j].Wins
		}
		return rows[i].Team < rows[j].Team
	})
	return truncate(rows, n)
}

func topPlayerRuns(runs map[string]int, n int) []types.PlayerRuns {
	rows := make([]types.PlayerRuns, 0, len(runs))
	for p, r := range runs {
		if p == "" {
			continue
		}
		rows = append(rows, types.PlayerRuns{Player: p, Runs: r})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Runs != rows[j].Runs {
			return rows[i].Runs > rows[j].Runs
		}
		return rows[i].Player < rows[j].Player
	})
	return truncate(rows, n)
}

// topVenueBowlers orders by wickets descending, then economy ascending.
func topVenueBowlers(bowl map[string]*bowlingAcc, n int) []types.VenueBowler {
	rows := make([]types.VenueBowler, 0, len(bowl))
	for p, a := range bowl {
		if p == "" {
			continue
		}
		rows = append(rows, types.VenueBowler{
			Player:  p,
			Wickets: a.wickets,
			Runs:    a.runs,
			Economy: scoring.Economy(a.runs, a.balls),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Wickets != rows[j].Wickets {
			return rows[i].Wickets > rows[j].Wickets
		}
		if rows[i].Economy != rows[j].Economy {
			return rows[i].Economy < rows[j].Economy
		}
		return rows[i].Player < rows[j].Player
	})
	rows = truncate(rows, n)
	for i := range rows {
		rows[i].Economy = scoring.Round2(rows[i].Economy)
	}
	return rows
}

// VenueStats builds the all-time venue summary.
func VenueStats(ds *Dataset, venue string) (types.VenueStats, error) {
	key, ms := venueMatches(ds, venue, 0)
	if len(ms) == 0 {
		return types.VenueStats{}, fmt.Errorf("%w: no matches at venue %q", ErrNotFound, venue)
	}
	name, _ := ds.VenueName(key)
	out := types.VenueStats{
		VenueName:          name,
		TotalMatches:       len(ms),
		TossDecisionImpact: []types.NameValue{},
	}

	var bat, field, tossDecided, tossWon int
	type rec struct{ matches, wins int }
	teams := map[string]*rec{}
	for _, m := range ms {
		switch m.TossDecision {
		case model.TossBat:
			bat++
		case model.TossField:
			field++
		}
		for _, t := range []string{m.Team1, m.Team2} {
			r := teams[t]
			if r == nil {
				r = &rec{}
				teams[t] = r
			}
			r.matches++
			if m.Decisive() && cricket.TeamMatches(m.Winner, t) {
				r.wins++
			}
		}
		if !m.Decisive() {
			continue
		}
		if cricket.TeamMatches(m.Winner, ds.BattingFirst(m)) {
			out.BattingFirstWins++
		} else {
			out.ChasingWins++
		}
		if m.TossWinner != "" {
			tossDecided++
			if cricket.TeamMatches(m.TossWinner, m.Winner) {
				tossWon++
			}
		}
	}

	if decided := out.BattingFirstWins + out.ChasingWins; decided > 0 {
		out.BattingFirstWinPercentage = scoring.WinPercentage(out.BattingFirstWins, decided)
		out.ChasingWinPercentage = 100 - out.BattingFirstWinPercentage
	}
	out.TossWinMatchWinPercentage = 50
	if tossDecided > 0 {
		out.TossWinMatchWinPercentage = scoring.WinPercentage(tossWon, tossDecided)
	}
	if total := bat + field; total > 0 {
		out.TossDecisionImpact = []types.NameValue{
			{Name: "Bat", Value: int(scoring.WinPercentage(bat, total))},
			{Name: "Field", Value: int(scoring.WinPercentage(field, total))},
		}
	}

	var firstRuns, firstN int
	for k, t := range inningsTotals(ds, matchIDs(ms)) {
		if k.inning == 1 {
			firstRuns += t.runs
			firstN++
		}
		if k.inning <= 2 && t.runs > out.HighestScore {
			out.HighestScore = t.runs
		}
	}
	out.AvgFirstInningsScore = scoring.RoundInt(scoring.Ratio(firstRuns, firstN))

	best := make([]types.VenueTeam, 0, len(teams))
	for t, r := range teams {
		best = append(best, types.VenueTeam{
			Team:          t,
			Matches:       r.matches,
			Wins:          r.wins,
			WinPercentage: scoring.WinPercentage(r.wins, r.matches),
		})
	}
	sort.Slice(best, func(i, j int) bool {
		if best[i].WinPercentage != best[j].WinPercentage {
			return best[i].WinPercentage > best[j].WinPercentage
		}
		if best[i].Matches != best[j].Matches {
			return best[i].Matches > best[j].Matches
		}
		return best[i].Team < best[j].Team
	})
	out.BestTeamsAtVenue = truncate(best, venueBestTeamsN)
	return out, nil
}

func truncate[T any](rows []T, n int) []T {
	if n >= 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}
