package fixtures

import (
	"math/rand/v2"

	"github.com/okian/iplstats/internal/domain/cricket"
	"github.com/okian/iplstats/internal/domain/model"
)

const (
	maxWickets  = 10
	bowlerCount = 5
	keeperIndex = 5
)

// weighted picks values by relative weight.
type weighted struct {
	values  []int
	weights []int
	total   int
}

func newWeighted(values, weights []int) weighted {
	w := weighted{values: values, weights: weights}
	for _, x := range weights {
		w.total += x
	}
	return w
}

func (w weighted) pick(rng *rand.Rand) int {
	n := rng.IntN(w.total)
	for i, x := range w.weights {
		if n < x {
			return w.values[i]
		}
		n -= x
	}
	return w.values[len(w.values)-1]
}

var shots = map[cricket.Phase]weighted{
	cricket.Powerplay: newWeighted([]int{0, 1, 2, 3, 4, 6}, []int{42, 28, 8, 1, 15, 6}),
	cricket.Middle:    newWeighted([]int{0, 1, 2, 3, 4, 6}, []int{35, 41, 10, 1, 8, 5}),
	cricket.Death:     newWeighted([]int{0, 1, 2, 3, 4, 6}, []int{26, 30, 10, 1, 17, 16}),
}

// wicket chance per legal ball, in tenths of a percent.
var wicketOdds = map[cricket.Phase]int{
	cricket.Powerplay: 40,
	cricket.Middle:    42,
	cricket.Death:     70,
}

type dismissal struct {
	kind   string
	weight int
}

var dismissals = []dismissal{
	{"caught", 58},
	{"bowled", 18},
	{"lbw", 10},
	{"run out", 7},
	{"caught and bowled", 4},
	{"stumped", 3},
}

func pickDismissal(rng *rand.Rand) string {
	n := rng.IntN(100)
	for _, d := range dismissals {
		if n < d.weight {
			return d.kind
		}
		n -= d.weight
	}
	return dismissals[0].kind
}

type inningsResult struct {
	runs      int
	wickets   int
	topScorer string
	balls     []model.Delivery
}

// bat simulates one innings. A positive target ends the innings as soon
// as it is reached.
func bat(rng *rand.Rand, matchID, inning int, batting, bowling Team, target int) inningsResult {
	order := batting.Roster()
	field := bowling.Roster()
	attack := field[RosterSize-bowlerCount:]
	runsBy := make([]int, RosterSize)

	var r inningsResult
	striker, nonStriker, next := 0, 1, 2
	for over := 1; over <= cricket.MaxOver; over++ {
		phase := cricket.PhaseOf(over)
		bowler := attack[(over-1)%len(attack)]
		for legal, ball := 0, 1; legal < cricket.BallsPerOver; ball++ {
			d := model.Delivery{
				MatchID:     matchID,
				Inning:      inning,
				Over:        over,
				Ball:        ball,
				BattingTeam: batting.Name,
				BowlingTeam: bowling.Name,
				Batsman:     order[striker],
				NonStriker:  order[nonStriker],
				Bowler:      bowler,
			}

			switch extra := rng.IntN(100); {
			case extra < 3:
				d.WideRuns = 1
			case extra < 4:
				d.NoballRuns = 1
				d.BatsmanRuns = shots[phase].pick(rng)
			case extra < 6:
				d.LegbyeRuns = 1
				legal++
			default:
				legal++
				if rng.IntN(1000) < wicketOdds[phase] {
					d.PlayerDismissed = order[striker]
					d.DismissalKind = pickDismissal(rng)
					switch d.DismissalKind {
					case "caught", "run out":
						d.DismissalFielders = field[rng.IntN(RosterSize)]
					case "caught and bowled":
						d.DismissalFielders = bowler
					case "stumped":
						d.DismissalFielders = field[keeperIndex]
					}
				} else {
					d.BatsmanRuns = shots[phase].pick(rng)
				}
			}
			d.ExtraRuns = d.WideRuns + d.ByeRuns + d.LegbyeRuns + d.NoballRuns + d.PenaltyRuns
			d.TotalRuns = d.BatsmanRuns + d.ExtraRuns

			r.runs += d.TotalRuns
			runsBy[striker] += d.BatsmanRuns
			r.balls = append(r.balls, d)

			if d.IsWicket() {
				r.wickets++
				if r.wickets == maxWickets || next >= RosterSize {
					r.topScorer = order[topIndex(runsBy)]
					return r
				}
				striker = next
				next++
			} else if (d.BatsmanRuns+d.ByeRuns+d.LegbyeRuns)%2 == 1 {
				striker, nonStriker = nonStriker, striker
			}
			if target > 0 && r.runs >= target {
				r.topScorer = order[topIndex(runsBy)]
				return r
			}
		}
		striker, nonStriker = nonStriker, striker
	}
	r.topScorer = order[topIndex(runsBy)]
	return r
}

func topIndex(runs []int) int {
	best := 0
	for i, v := range runs {
		if v > runs[best] {
			best = i
		}
	}
	return best
}
