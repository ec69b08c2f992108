package analytics

import (
	"fmt"
	"sort"

	"github.com/okian/iplstats/internal/domain/cricket"
	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/internal/domain/scoring"
	"github.com/okian/iplstats/internal/domain/types"
)

func plays(m *model.Match, team string) bool {
	return cricket.TeamMatches(m.Team1, team) || cricket.TeamMatches(m.Team2, team)
}

// Teams lists every team with its all-time record, sorted by name.
func Teams(ds *Dataset) []types.Team {
	rows := map[string]*types.Team{}
	ds.eachMatch(0, func(m *model.Match) {
		for _, t := range []string{m.Team1, m.Team2} {
			r := rows[t]
			if r == nil {
				r = &types.Team{Name: t, FirstSeason: m.Season}
				rows[t] = r
			}
			r.TotalMatches++
			if m.Decisive() && cricket.TeamMatches(m.Winner, t) {
				r.TotalWins++
			}
			if m.Season < r.FirstSeason {
				r.FirstSeason = m.Season
			}
			if m.Season > r.LastSeason {
				r.LastSeason = m.Season
			}
		}
	})
	out := make([]types.Team, 0, len(rows))
	for _, r := range rows {
		r.WinPercentage = scoring.WinPercentage(r.TotalWins, r.TotalMatches)
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// TeamSeasons returns a team's record per season, latest first. Tied and
// no-result fixtures never count as a win or a loss.
func TeamSeasons(ds *Dataset, team string) ([]types.TeamSeason, error) {
	name, ok := ds.Team(team)
	if !ok {
		return nil, fmt.Errorf("%w: team %q", ErrNotFound, team)
	}
	seasons := map[int]*types.TeamSeason{}
	var ids []int
	ds.eachMatch(0, func(m *model.Match) {
		if !plays(m, name) {
			return
		}
		ids = append(ids, m.MatchID)
		s := seasons[m.Season]
		if s == nil {
			s = &types.TeamSeason{Season: m.Season}
			seasons[m.Season] = s
		}
		s.MatchesPlayed++
		switch {
		case m.Decisive() && cricket.TeamMatches(m.Winner, name):
			s.Wins++
		case m.Decisive():
			s.Losses++
		case m.IsTie():
			s.Ties++
		default:
			s.NoResult++
		}
	})
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no matches for team %q", ErrNotFound, team)
	}

	type scores struct{ runs, innings []int }
	batted := map[int]*scores{}
	for k, t := range inningsTotals(ds, ids) {
		if k.inning > 2 {
			continue
		}
		m, _ := ds.Match(k.match)
		s := seasons[m.Season]
		if cricket.TeamMatches(t.team, name) {
			s.RunsScored += t.runs
			b := batted[m.Season]
			if b == nil {
				b = &scores{}
				batted[m.Season] = b
			}
			b.innings = append(b.innings, t.runs)
		} else {
			s.RunsConceded += t.runs
		}
	}

	out := make([]types.TeamSeason, 0, len(seasons))
	for season, s := range seasons {
		if b := batted[season]; b != nil {
			s.LowestScore = b.innings[0]
			for _, r := range b.innings {
				if r > s.HighestScore {
					s.HighestScore = r
				}
				if r < s.LowestScore {
					s.LowestScore = r
				}
			}
			s.AverageScore = int(scoring.RoundInt(scoring.Ratio(s.RunsScored, len(b.innings))))
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Season > out[j].Season })
	return out, nil
}

// TeamSeasonMatches lists a team's fixtures in one season by date, with
// the team's own batting in each innings.
func TeamSeasonMatches(ds *Dataset, team string, season int) ([]types.TeamMatch, error) {
	name, ok := ds.Team(team)
	if !ok {
		return nil, fmt.Errorf("%w: team %q", ErrNotFound, team)
	}
	var ms []model.Match
	ds.eachMatch(season, func(m *model.Match) {
		if plays(m, name) {
			ms = append(ms, *m)
		}
	})
	if season == 0 || len(ms) == 0 {
		return nil, fmt.Errorf("%w: no matches for team %q in season %d", ErrNotFound, team, season)
	}

	totals := inningsTotals(ds, matchIDs(ms))
	out := make([]types.TeamMatch, 0, len(ms))
	for _, m := range ms {
		row := types.TeamMatch{
			MatchID:      m.MatchID,
			Date:         m.Date,
			Venue:        m.Venue,
			Opponent:     m.Opponent(name),
			TossWinner:   m.TossWinner,
			TossDecision: m.TossDecision,
			Winner:       m.Winner,
			Result:       m.Result,
		}
		for inning := 1; inning <= 2; inning++ {
			t := totals[inningsKey{m.MatchID, inning}]
			if t == nil || !cricket.TeamMatches(t.team, name) {
				continue
			}
			line := &types.InningsLine{Total: t.runs, Wickets: t.wickets, Overs: t.oversNotation()}
			if inning == 1 {
				row.TeamScore.Innings1 = line
			} else {
				row.TeamScore.Innings2 = line
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// HeadToHead counts results between two teams. Names match loosely, as a
// case-insensitive substring of the canonical team name.
func HeadToHead(ds *Dataset, team1, team2 string, season int) (types.HeadToHead, error) {
	if team1 == "" || team2 == "" {
		return types.HeadToHead{}, fmt.Errorf("%w: both team1 and team2 are required", ErrInvalidFilter)
	}
	out := types.HeadToHead{Team1: team1, Team2: team2, Season: Filter{Season: season}.SeasonLabel()}
	ds.eachMatch(season, func(m *model.Match) {
		direct := cricket.TeamContains(m.Team1, team1) && cricket.TeamContains(m.Team2, team2)
		swapped := cricket.TeamContains(m.Team1, team2) && cricket.TeamContains(m.Team2, team1)
		if !direct && !swapped {
			return
		}
		out.TotalMatchesBetween++
		switch {
		case !m.Decisive():
			out.TiesOrNoResult++
		case cricket.TeamContains(m.Winner, team1):
			out.WinsTeam1++
		case cricket.TeamContains(m.Winner, team2):
			out.WinsTeam2++
		default:
			out.TiesOrNoResult++
		}
	})
	return out, nil
}
