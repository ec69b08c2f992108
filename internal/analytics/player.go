package analytics

import (
	"fmt"
	"sort"

	"github.com/okian/iplstats/internal/domain/cricket"
	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/internal/domain/scoring"
	"github.com/okian/iplstats/internal/domain/types"
)

const figuresNone = "0/0"

// bestSpell returns the best "w/r" figures over every (match, inning)
// spell in spells, or "0/0" when no spell took a wicket.
func bestSpell(spells map[inningsKey]*bowlingAcc) string {
	var best *bowlingAcc
	for _, a := range spells {
		if a.wickets == 0 {
			continue
		}
		if best == nil || a.wickets > best.wickets || (a.wickets == best.wickets && a.runs < best.runs) {
			best = a
		}
	}
	if best == nil {
		return figuresNone
	}
	return fmt.Sprintf("%d/%d", best.wickets, best.runs)
}

// PlayerStats builds a player's batting, bowling and fielding profile.
// A season without matches yields the zero profile.
func PlayerStats(ds *Dataset, player string, season int) (types.PlayerStats, error) {
	name, ok := ds.Player(player)
	if !ok {
		return types.PlayerStats{}, fmt.Errorf("%w: player %q", ErrNotFound, player)
	}
	out := types.PlayerStats{
		PlayerName:        name,
		Season:            Filter{Season: season}.SeasonLabel(),
		SeasonPerformance: []types.SeasonRuns{},
		VenuePerformance:  []types.VenueRuns{},
	}
	if season != 0 && !ds.HasSeason(season) {
		return out, nil
	}

	var bat battingAcc
	var bowl bowlingAcc
	var field types.FieldingSummary
	spells := map[inningsKey]*bowlingAcc{}
	seasons := map[int]*battingAcc{}
	venues := map[string]int{}
	dismissals := 0

	ds.eachDelivery(season, func(d *model.Delivery) {
		if cricket.PlayerMatches(d.Batsman, name) {
			bat.add(d)
			m, _ := ds.Match(d.MatchID)
			s := seasons[m.Season]
			if s == nil {
				s = &battingAcc{}
				seasons[m.Season] = s
			}
			s.add(d)
			_, v := ds.venueOf(d.MatchID)
			venues[v] += d.BatsmanRuns
		}
		if cricket.PlayerMatches(d.PlayerDismissed, name) {
			dismissals++
		}
		if cricket.PlayerMatches(d.Bowler, name) {
			bowl.add(d)
			k := inningsKey{d.MatchID, d.Inning}
			a := spells[k]
			if a == nil {
				a = &bowlingAcc{}
				spells[k] = a
			}
			a.add(d)
		}
		if d.IsWicket() {
			for _, f := range d.Fielders() {
				if !cricket.PlayerMatches(f, name) {
					continue
				}
				field.TotalDismissals++
				switch {
				case d.IsCatch():
					field.Catches++
				case d.IsRunOut():
					field.RunOuts++
				}
			}
		}
	})

	out.TotalRuns = bat.runs
	out.TotalBalls = bat.balls
	out.Fours = bat.fours
	out.Sixes = bat.sixes
	out.StrikeRate = scoring.Round2(scoring.StrikeRate(bat.runs, bat.balls))
	out.Average = scoring.Round2(scoring.BattingAverage(bat.runs, dismissals))

	for s, a := range seasons {
		out.SeasonPerformance = append(out.SeasonPerformance, types.SeasonRuns{
			Season:     s,
			Runs:       a.runs,
			Balls:      a.balls,
			StrikeRate: scoring.Round2(scoring.StrikeRate(a.runs, a.balls)),
		})
	}
	sort.Slice(out.SeasonPerformance, func(i, j int) bool {
		return out.SeasonPerformance[i].Season < out.SeasonPerformance[j].Season
	})
	for v, r := range venues {
		out.VenuePerformance = append(out.VenuePerformance, types.VenueRuns{Venue: v, Runs: r})
	}
	sort.Slice(out.VenuePerformance, func(i, j int) bool {
		a, b := out.VenuePerformance[i], out.VenuePerformance[j]
		if a.Runs != b.Runs {
			return a.Runs > b.Runs
		}
		return a.Venue < b.Venue
	})
	if len(out.VenuePerformance) > 0 {
		best := out.VenuePerformance[0]
		out.BestVenue = &best
	}

	if bowl.balls > 0 {
		out.BowlingSummary = &types.BowlingSummary{
			TotalWickets: bowl.wickets,
			TotalOvers:   scoring.Overs(bowl.balls),
			Economy:      scoring.Round2(scoring.Economy(bowl.runs, bowl.balls)),
			BestFigures:  bestSpell(spells),
		}
	}
	if field.TotalDismissals > 0 {
		out.FieldingSummary = &field
	}
	return out, nil
}

// BowlerStats builds a bowler's profile. A season without matches yields
// the zero profile.
func BowlerStats(ds *Dataset, player string, season int) (types.BowlerStats, error) {
	name, ok := ds.Player(player)
	if !ok {
		return types.BowlerStats{}, fmt.Errorf("%w: player %q", ErrNotFound, player)
	}
	out := types.BowlerStats{
		BowlerName:     name,
		Season:         Filter{Season: season}.SeasonLabel(),
		BestFigures:    figuresNone,
		WicketsVsTeams: []types.TeamWickets{},
		EconomyByOvers: []types.PhaseEconomy{},
		VenueEconomy:   []types.VenueEconomy{},
	}
	if season != 0 && !ds.HasSeason(season) {
		return out, nil
	}

	var total, death bowlingAcc
	var phases [3]bowlingAcc
	spells := map[inningsKey]*bowlingAcc{}
	vsTeams := map[string]int{}
	venues := map[string]*bowlingAcc{}

	ds.eachDelivery(season, func(d *model.Delivery) {
		if !cricket.PlayerMatches(d.Bowler, name) {
			return
		}
		total.add(d)
		if d.TotalRuns == 0 {
			out.DotBalls++
		}
		if d.IsBowlerWicket() {
			vsTeams[d.BattingTeam]++
		}
		if i := phaseIndex(cricket.PhaseOf(d.Over)); i >= 0 {
			phases[i].add(d)
		}
		if cricket.IsDeath(d.Over) {
			death.add(d)
		}
		k := inningsKey{d.MatchID, d.Inning}
		if spells[k] == nil {
			spells[k] = &bowlingAcc{}
		}
		spells[k].add(d)
		_, v := ds.venueOf(d.MatchID)
		if venues[v] == nil {
			venues[v] = &bowlingAcc{}
		}
		venues[v].add(d)
	})

	out.TotalWickets = total.wickets
	out.TotalRuns = total.runs
	out.TotalBalls = total.balls
	out.TotalOvers = scoring.Overs(total.balls)
	out.Economy = scoring.Round2(scoring.Economy(total.runs, total.balls))
	out.DeathOversEconomy = scoring.Round2(scoring.Economy(death.runs, death.balls))
	out.BestFigures = bestSpell(spells)

	for t, w := range vsTeams {
		out.WicketsVsTeams = append(out.WicketsVsTeams, types.TeamWickets{Team: t, Wickets: w})
	}
	sort.Slice(out.WicketsVsTeams, func(i, j int) bool {
		a, b := out.WicketsVsTeams[i], out.WicketsVsTeams[j]
		if a.Wickets != b.Wickets {
			return a.Wickets > b.Wickets
		}
		return a.Team < b.Team
	})
	for i, p := range cricket.Phases() {
		if phases[i].balls == 0 {
			continue
		}
		out.EconomyByOvers = append(out.EconomyByOvers, types.PhaseEconomy{
			Phase:   p.Label(),
			Economy: scoring.Round2(scoring.Economy(phases[i].runs, phases[i].balls)),
		})
	}
	for v, a := range venues {
		out.VenueEconomy = append(out.VenueEconomy, types.VenueEconomy{
			Venue:   v,
			Economy: scoring.Round2(scoring.Economy(a.runs, a.balls)),
		})
	}
	sort.Slice(out.VenueEconomy, func(i, j int) bool {
		a, b := out.VenueEconomy[i], out.VenueEconomy[j]
		if a.Economy != b.Economy {
			return a.Economy < b.Economy
		}
		return a.Venue < b.Venue
	})
	return out, nil
}

type career struct {
	team        string
	lastMatch   int
	matches     map[int]struct{}
	runs, balls int
	wickets     int
}

// careers derives one row per player from the deliveries. A player's team
// is the side they most recently appeared for.
func careers(ds *Dataset) map[string]*career {
	out := map[string]*career{}
	get := func(name string) *career {
		c := out[name]
		if c == nil {
			c = &career{matches: map[int]struct{}{}}
			out[name] = c
		}
		return c
	}
	seen := func(c *career, d *model.Delivery, team string) {
		c.matches[d.MatchID] = struct{}{}
		if d.MatchID >= c.lastMatch {
			c.lastMatch = d.MatchID
			c.team = team
		}
	}
	ds.eachDelivery(0, func(d *model.Delivery) {
		if d.Batsman != "" {
			c := get(d.Batsman)
			c.runs += d.BatsmanRuns
			c.balls++
			seen(c, d, d.BattingTeam)
		}
		if d.NonStriker != "" {
			seen(get(d.NonStriker), d, d.BattingTeam)
		}
		if d.Bowler != "" {
			c := get(d.Bowler)
			if d.IsBowlerWicket() {
				c.wickets++
			}
			seen(c, d, d.BowlingTeam)
		}
	})
	return out
}

func (c *career) row(name string) types.Player {
	return types.Player{
		Name:       name,
		Team:       c.team,
		Matches:    len(c.matches),
		TotalRuns:  c.runs,
		BallsFaced: c.balls,
		Wickets:    c.wickets,
		StrikeRate: scoring.Round2(scoring.StrikeRate(c.runs, c.balls)),
	}
}

// Players lists every player, optionally those whose current team
// contains team, sorted by name.
func Players(ds *Dataset, team string) []types.Player {
	cs := careers(ds)
	rows := make([]types.Player, 0, len(cs))
	for name, c := range cs {
		if team != "" && !cricket.TeamContains(c.team, team) {
			continue
		}
		rows = append(rows, c.row(name))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

// TopBatsmen ranks players with at least one run by career runs.
func TopBatsmen(ds *Dataset, limit int) []types.Player {
	if limit <= 0 {
		limit = DefaultTopBatsmen
	}
	var rows []types.Player
	for name, c := range careers(ds) {
		if c.runs > 0 {
			rows = append(rows, c.row(name))
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalRuns != rows[j].TotalRuns {
			return rows[i].TotalRuns > rows[j].TotalRuns
		}
		return rows[i].Name < rows[j].Name
	})
	return nonNil(truncate(rows, limit))
}
