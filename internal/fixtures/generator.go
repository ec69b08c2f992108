// Package fixtures simulates complete IPL seasons: a double round-robin
// league followed by a final, with ball-by-ball deliveries for every match.
package fixtures

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/pkg/logger"
)

// Defaults.
const (
	DefaultFirstSeason = 2008
	DefaultSeasons     = 1
	DefaultSeed        = 2008
	DefaultWorkers     = 8
)

const (
	resultNormal = "normal"
	resultTie    = "tie"
	resultFinal  = "Final"

	finalGapDays = 3
)

// Generator builds synthetic matches and deliveries.
type Generator struct {
	seed        uint64
	firstSeason int
	seasons     int
	teams       []Team
	workers     int
	log         logger.Logger
}

// New returns a Generator with the given options applied.
func New(opts ...Option) *Generator {
	g := &Generator{
		seed:        DefaultSeed,
		firstSeason: DefaultFirstSeason,
		seasons:     DefaultSeasons,
		teams:       DefaultTeams,
		workers:     DefaultWorkers,
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// fixture is one scheduled match before it is played.
type fixture struct {
	id     int
	season int
	date   time.Time
	home   Team
	away   Team
	result string
}

type played struct {
	match      model.Match
	deliveries []model.Delivery
}

// Generate plays every configured season. Matches are returned in id
// order and deliveries in chronological order.
func (g *Generator) Generate(ctx context.Context) ([]model.Match, []model.Delivery, error) {
	if len(g.teams) < 2 {
		return nil, nil, ErrTooFewTeams
	}
	if g.seasons < 1 {
		return nil, nil, ErrNoSeasons
	}
	start := time.Now()

	league, finalIDs := g.schedule()
	results := make([]played, len(league))
	if err := g.playAll(ctx, league, results); err != nil {
		return nil, nil, err
	}

	finals := make([]fixture, 0, g.seasons)
	for i := 0; i < g.seasons; i++ {
		finals = append(finals, g.final(g.firstSeason+i, finalIDs[i], results))
	}
	finalResults := make([]played, len(finals))
	if err := g.playAll(ctx, finals, finalResults); err != nil {
		return nil, nil, err
	}
	results = append(results, finalResults...)
	sort.Slice(results, func(i, j int) bool { return results[i].match.MatchID < results[j].match.MatchID })

	matches := make([]model.Match, 0, len(results))
	var deliveries []model.Delivery
	for _, r := range results {
		matches = append(matches, r.match)
		deliveries = append(deliveries, r.deliveries...)
	}

	g.log.Info(ctx, "generated synthetic seasons",
		logger.Int("seasons", g.seasons),
		logger.Int("matches", len(matches)),
		logger.Int("deliveries", len(deliveries)),
		logger.String("duration", time.Since(start).String()))
	return matches, deliveries, nil
}

// schedule lays out the league fixtures of every season and reserves the
// id of each season's final right after its league games.
func (g *Generator) schedule() ([]fixture, []int) {
	var (
		out      []fixture
		finalIDs = make([]int, 0, g.seasons)
		nextID   = 1
	)
	for s := 0; s < g.seasons; s++ {
		season := g.firstSeason + s
		var pairs []fixture
		for i, home := range g.teams {
			for j, away := range g.teams {
				if i == j {
					continue
				}
				pairs = append(pairs, fixture{season: season, home: home, away: away, result: resultNormal})
			}
		}
		rng := rand.New(rand.NewPCG(g.seed, uint64(season)))
		rng.Shuffle(len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] })

		opening := time.Date(season, time.April, 1, 0, 0, 0, 0, time.UTC)
		for i := range pairs {
			pairs[i].id = nextID
			pairs[i].date = opening.AddDate(0, 0, i)
			nextID++
		}
		out = append(out, pairs...)
		finalIDs = append(finalIDs, nextID)
		nextID++
	}
	return out, finalIDs
}

// final pairs the two teams with most league wins in season.
func (g *Generator) final(season, id int, league []played) fixture {
	wins := make(map[string]int, len(g.teams))
	var last time.Time
	for _, p := range league {
		if p.match.Season != season {
			continue
		}
		if p.match.Date.After(last) {
			last = p.match.Date
		}
		if p.match.Winner != "" {
			wins[p.match.Winner]++
		}
	}
	table := make([]Team, len(g.teams))
	copy(table, g.teams)
	sort.SliceStable(table, func(i, j int) bool {
		if wins[table[i].Name] != wins[table[j].Name] {
			return wins[table[i].Name] > wins[table[j].Name]
		}
		return table[i].Name < table[j].Name
	})
	return fixture{
		id:     id,
		season: season,
		date:   last.AddDate(0, 0, finalGapDays),
		home:   table[0],
		away:   table[1],
		result: resultFinal,
	}
}

// playAll simulates fixtures on a bounded pool of goroutines. Every match
// draws from its own seeded source, so scheduling does not affect output.
func (g *Generator) playAll(ctx context.Context, fixtures []fixture, out []played) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i := range fixtures {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("generating match %d: %w", fixtures[i].id, err)
			}
			out[i] = g.play(fixtures[i])
			return nil
		})
	}
	return eg.Wait()
}

func (g *Generator) play(fx fixture) played {
	rng := rand.New(rand.NewPCG(g.seed, uint64(fx.id)<<1|1))
	m := model.Match{
		MatchID: fx.id,
		Season:  fx.season,
		Date:    fx.date,
		Venue:   fx.home.Venue,
		City:    fx.home.City,
		Team1:   fx.home.Name,
		Team2:   fx.away.Name,
		Result:  fx.result,
	}

	toss, other := fx.home, fx.away
	if rng.IntN(2) == 1 {
		toss, other = other, toss
	}
	m.TossWinner = toss.Name
	first, second := toss, other
	m.TossDecision = model.TossBat
	if rng.IntN(100) < 60 {
		m.TossDecision = model.TossField
		first, second = other, toss
	}
	u := rng.Perm(len(umpirePool))
	m.Umpire1, m.Umpire2 = umpirePool[u[0]], umpirePool[u[1]]

	one := bat(rng, fx.id, 1, first, second, 0)
	two := bat(rng, fx.id, 2, second, first, one.runs+1)
	switch {
	case one.runs > two.runs:
		m.Winner, m.PlayerOfMatch = first.Name, one.topScorer
	case two.runs > one.runs:
		m.Winner, m.PlayerOfMatch = second.Name, two.topScorer
	default:
		m.Result = resultTie
	}

	deliveries := make([]model.Delivery, 0, len(one.balls)+len(two.balls))
	deliveries = append(deliveries, one.balls...)
	deliveries = append(deliveries, two.balls...)
	return played{match: m, deliveries: deliveries}
}
