package fixtures

import "github.com/okian/iplstats/pkg/logger"

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the random seed. The same seed always yields the same data.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithSeasons generates count seasons starting at first.
func WithSeasons(first, count int) Option {
	return func(g *Generator) {
		if first > 0 {
			g.firstSeason = first
		}
		g.seasons = count
	}
}

// WithTeams replaces the default franchises.
func WithTeams(teams []Team) Option {
	return func(g *Generator) {
		g.teams = teams
	}
}

// WithWorkers bounds how many matches are simulated at once.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}
