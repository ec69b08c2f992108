package fixtures

import "errors"

var (
	// ErrTooFewTeams is returned when fewer than two teams are configured.
	ErrTooFewTeams = errors.New("at least two teams are required")
	// ErrNoSeasons is returned when the season count is not positive.
	ErrNoSeasons = errors.New("season count must be positive")
)
