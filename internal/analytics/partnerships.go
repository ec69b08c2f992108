package analytics

import (
	"fmt"
	"sort"

	"github.com/okian/iplstats/internal/domain/cricket"
	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/internal/domain/scoring"
	"github.com/okian/iplstats/internal/domain/types"
)

// Partnership table sizes. The opening, middle and finishing buckets are
// consecutive rank slices of the career table, not batting positions.
const (
	partnershipKeep    = 30
	partnershipTop     = 15
	partnershipBucket  = 8
	centuryPartnership = 100
)

type pair struct{ a, b string }

func newPair(x, y string) pair {
	if y < x {
		x, y = y, x
	}
	return pair{x, y}
}

// Partnerships builds a team's career partnership table.
func Partnerships(ds *Dataset, team string, season int) (types.PartnershipReport, error) {
	if team == "" {
		return types.PartnershipReport{}, fmt.Errorf("%w: team parameter is required", ErrInvalidFilter)
	}
	type stand struct {
		match, inning int
		p             pair
	}
	type acc struct{ runs, balls int }
	stands := map[stand]*acc{}
	var order []stand
	ds.eachDelivery(season, func(d *model.Delivery) {
		if !cricket.TeamMatches(d.BattingTeam, team) || d.Batsman == "" || d.NonStriker == "" {
			return
		}
		k := stand{d.MatchID, d.Inning, newPair(d.Batsman, d.NonStriker)}
		a := stands[k]
		if a == nil {
			a = &acc{}
			stands[k] = a
			order = append(order, k)
		}
		a.runs += d.BatsmanRuns
		a.balls++
	})

	career := map[pair]*types.Partnership{}
	for _, k := range order {
		s := stands[k]
		c := career[k.p]
		if c == nil {
			c = &types.Partnership{Player1: k.p.a, Player2: k.p.b}
			career[k.p] = c
		}
		c.Runs += s.runs
		c.Balls += s.balls
		c.Partnerships++
		if s.runs > c.HighestPartnership {
			c.HighestPartnership = s.runs
		}
	}

	rows := make([]types.Partnership, 0, len(career))
	for _, c := range career {
		c.AveragePartnership = scoring.RoundInt(scoring.Ratio(c.Runs, c.Partnerships))
		c.StrikeRate = scoring.Round2(scoring.StrikeRate(c.Runs, c.Balls))
		rows = append(rows, *c)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Runs != rows[j].Runs {
			return rows[i].Runs > rows[j].Runs
		}
		if rows[i].Player1 != rows[j].Player1 {
			return rows[i].Player1 < rows[j].Player1
		}
		return rows[i].Player2 < rows[j].Player2
	})
	rows = truncate(rows, partnershipKeep)

	name := team
	if t, ok := ds.Team(team); ok {
		name = t
	}
	out := types.PartnershipReport{Team: name, Season: Filter{Season: season}.SeasonLabel()}
	totalRuns := 0
	for _, r := range rows {
		out.TotalPartnerships += r.Partnerships
		totalRuns += r.Runs
		if r.HighestPartnership >= centuryPartnership {
			out.CenturyPartnerships++
		}
		if r.HighestPartnership > out.HighestPartnership {
			out.HighestPartnership = r.HighestPartnership
		}
	}
	out.AveragePartnership = scoring.RoundInt(scoring.Ratio(totalRuns, out.TotalPartnerships))
	out.TopPartnerships = nonNil(truncate(rows, partnershipTop))
	out.OpeningPartnerships = bucket(rows, 0)
	out.MiddleOrder = bucket(rows, 1)
	out.FinishingPartnership = bucket(rows, 2)
	return out, nil
}

func bucket(rows []types.Partnership, n int) []types.Partnership {
	lo, hi := n*partnershipBucket, (n+1)*partnershipBucket
	if lo >= len(rows) {
		return []types.Partnership{}
	}
	if hi > len(rows) {
		hi = len(rows)
	}
	return rows[lo:hi]
}
