package analytics

import (
	"fmt"
	"sort"

	"github.com/okian/iplstats/internal/domain/cricket"
	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/internal/domain/scoring"
	"github.com/okian/iplstats/internal/domain/types"
)

// Roles in the team impact table.
const (
	RoleBatsman = "batsman"
	RoleBowler  = "bowler"
)

// Impact picks the mode from the filter: player, then team, then league.
func Impact(ds *Dataset, f Filter) (types.ImpactResult, error) {
	switch {
	case f.Player != "":
		p, err := PlayerImpact(ds, f.Player, f.Season)
		if err != nil {
			return types.ImpactResult{}, err
		}
		return types.ImpactResult{Mode: types.ImpactModePlayer, Player: &p}, nil
	case f.Team != "":
		t, err := TeamImpact(ds, f.Team, f.Season, f.LimitOr(DefaultLimit))
		if err != nil {
			return types.ImpactResult{}, err
		}
		return types.ImpactResult{Mode: types.ImpactModeTeam, Team: &t}, nil
	}
	l := LeagueImpact(ds, f.Season, f.LimitOr(DefaultLimit))
	return types.ImpactResult{Mode: types.ImpactModeLeague, Leaderboard: &l}, nil
}

// PlayerImpact breaks one player's impact into batting and bowling terms.
func PlayerImpact(ds *Dataset, player string, season int) (types.PlayerImpact, error) {
	name, ok := ds.Player(player)
	if !ok {
		return types.PlayerImpact{}, fmt.Errorf("%w: player %q", ErrNotFound, player)
	}

	var bat scoring.BattingLine
	var bowl scoring.BowlingLine
	ds.eachDelivery(season, func(d *model.Delivery) {
		if cricket.PlayerMatches(d.Batsman, name) {
			bat.Runs += d.BatsmanRuns
			bat.Balls++
			switch d.BatsmanRuns {
			case 4:
				bat.Fours++
			case 6:
				bat.Sixes++
			}
			if cricket.IsDeath(d.Over) {
				bat.DeathRuns += d.BatsmanRuns
			}
		}
		if cricket.PlayerMatches(d.Bowler, name) {
			bowl.Runs += d.TotalRuns
			bowl.Balls++
			if d.IsBowlerWicket() {
				bowl.Wickets++
				if cricket.IsDeath(d.Over) {
					bowl.DeathWickets++
				}
			}
		}
	})

	out := types.PlayerImpact{Player: name, Season: Filter{Season: season}.SeasonLabel()}
	var total float64
	if bat.Balls > 0 {
		c := scoring.BattingImpact(bat)
		total += c.Total
		r := c.Rounded()
		out.Components.Batting = &r
	}
	if bowl.Balls > 0 {
		c := scoring.BowlingImpact(bowl)
		total += c.Total
		r := c.Rounded()
		out.Components.Bowling = &r
	}
	out.Impact = scoring.Round1(total)
	return out, nil
}

// TeamImpact ranks everyone who batted or bowled for team by
// runs + wickets*20. A player who did both appears once per role.
func TeamImpact(ds *Dataset, team string, season, limit int) (types.TeamImpact, error) {
	name, ok := ds.Team(team)
	if !ok {
		return types.TeamImpact{}, fmt.Errorf("%w: team %q", ErrNotFound, team)
	}
	type key struct{ player, role string }
	type acc struct{ runs, wickets int }
	rows := map[key]*acc{}
	get := func(k key) *acc {
		a := rows[k]
		if a == nil {
			a = &acc{}
			rows[k] = a
		}
		return a
	}
	ds.eachDelivery(season, func(d *model.Delivery) {
		switch {
		case cricket.TeamMatches(d.BattingTeam, name):
			get(key{d.Batsman, RoleBatsman}).runs += d.BatsmanRuns
		case cricket.TeamMatches(d.BowlingTeam, name):
			a := get(key{d.Bowler, RoleBowler})
			if d.IsBowlerWicket() {
				a.wickets++
			}
		}
	})

	players := make([]types.TeamImpactRow, 0, len(rows))
	for k, a := range rows {
		players = append(players, types.TeamImpactRow{
			Player:  k.player,
			Role:    k.role,
			Impact:  scoring.Round1(scoring.TeamContextImpact(a.runs, a.wickets)),
			Runs:    a.runs,
			Wickets: a.wickets,
		})
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].Impact != players[j].Impact {
			return players[i].Impact > players[j].Impact
		}
		if players[i].Player != players[j].Player {
			return players[i].Player < players[j].Player
		}
		return players[i].Role < players[j].Role
	})
	return types.TeamImpact{
		Team:    name,
		Season:  Filter{Season: season}.SeasonLabel(),
		Players: truncate(players, limit),
	}, nil
}

// LeagueImpact is the batting-only leaderboard: runs + 4s*2 + 6s*3.
func LeagueImpact(ds *Dataset, season, limit int) types.ImpactLeaderboard {
	acc := map[string]*battingAcc{}
	ds.eachDelivery(season, func(d *model.Delivery) {
		a := acc[d.Batsman]
		if a == nil {
			a = &battingAcc{}
			acc[d.Batsman] = a
		}
		a.add(d)
	})

	players := make([]types.LeaderboardRow, 0, len(acc))
	for p, a := range acc {
		if p == "" {
			continue
		}
		players = append(players, types.LeaderboardRow{
			Player:     p,
			Impact:     scoring.Round1(scoring.SimpleBattingImpact(a.runs, a.fours, a.sixes)),
			Runs:       a.runs,
			StrikeRate: scoring.Round2(scoring.StrikeRate(a.runs, a.balls)),
		})
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].Impact != players[j].Impact {
			return players[i].Impact > players[j].Impact
		}
		return players[i].Player < players[j].Player
	})
	return types.ImpactLeaderboard{
		Season:  Filter{Season: season}.SeasonLabel(),
		Players: truncate(players, limit),
		Limit:   limit,
	}
}
