package analytics

import (
	"fmt"
	"sort"

	"github.com/okian/iplstats/internal/domain/cricket"
	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/internal/domain/scoring"
	"github.com/okian/iplstats/internal/domain/types"
)

const rivalTimelineBalls = 10

// RivalBattle aggregates every ball batsman faced from bowler.
func RivalBattle(ds *Dataset, batsman, bowler string, season int) (types.RivalBattle, error) {
	if batsman == "" || bowler == "" {
		return types.RivalBattle{}, fmt.Errorf("%w: both batsman and bowler are required", ErrInvalidFilter)
	}
	out := types.RivalBattle{
		Batsman:             batsman,
		Bowler:              bowler,
		DismissalsBreakdown: map[string]int{},
		SampleTimeline:      []types.RivalBall{},
	}
	ds.eachDelivery(season, func(d *model.Delivery) {
		if !cricket.PlayerMatches(d.Batsman, batsman) || !cricket.PlayerMatches(d.Bowler, bowler) {
			return
		}
		out.Balls++
		out.Runs += d.BatsmanRuns
		switch d.BatsmanRuns {
		case 4:
			out.Fours++
		case 6:
			out.Sixes++
		}
		out.Batsman, out.Bowler = d.Batsman, d.Bowler
		wicket := cricket.PlayerMatches(d.PlayerDismissed, batsman)
		if wicket {
			out.Dismissals++
			out.DismissalsBreakdown[d.DismissalKind]++
		}
		if len(out.SampleTimeline) < rivalTimelineBalls {
			out.SampleTimeline = append(out.SampleTimeline, types.RivalBall{
				MatchID: d.MatchID,
				Over:    d.Over,
				Ball:    d.Ball,
				Runs:    d.BatsmanRuns,
				Wicket:  wicket,
			})
		}
	})
	if out.Balls == 0 {
		return types.RivalBattle{}, fmt.Errorf("%w: no encounters between %q and %q", ErrNotFound, batsman, bowler)
	}
	out.SR = scoring.Round2(scoring.StrikeRate(out.Runs, out.Balls))
	return out, nil
}

// MatchOverStats breaks one match (optionally one innings) into overs with
// a running total per innings.
func MatchOverStats(ds *Dataset, matchID, inning int) (types.MatchOverStats, error) {
	type key struct{ inning, over int }
	overs := map[key]*types.OverStat{}
	for _, d := range ds.MatchDeliveries(matchID) {
		if inning > 0 && d.Inning != inning {
			continue
		}
		k := key{d.Inning, d.Over}
		o := overs[k]
		if o == nil {
			o = &types.OverStat{Over: d.Over}
			overs[k] = o
		}
		o.RunsInOver += d.TotalRuns
		o.ExtrasInOver += d.ExtraRuns
		if d.IsWicket() {
			o.WicketsInOver++
		}
	}
	if len(overs) == 0 {
		return types.MatchOverStats{}, fmt.Errorf("%w: no deliveries for match %d", ErrNotFound, matchID)
	}

	keys := make([]key, 0, len(overs))
	for k := range overs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].inning != keys[j].inning {
			return keys[i].inning < keys[j].inning
		}
		return keys[i].over < keys[j].over
	})

	out := types.MatchOverStats{MatchID: matchID}
	cumulative := 0
	for _, k := range keys {
		if n := len(out.Innings); n == 0 || out.Innings[n-1].Inning != k.inning {
			out.Innings = append(out.Innings, types.InningsOvers{Inning: k.inning})
			cumulative = 0
		}
		o := overs[k]
		cumulative += o.RunsInOver
		o.Cumulative = cumulative
		cur := &out.Innings[len(out.Innings)-1]
		cur.Overs = append(cur.Overs, *o)
	}
	return out, nil
}
