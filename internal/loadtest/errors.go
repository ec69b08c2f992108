package loadtest

import "errors"

// Sentinel errors.
var (
	ErrUnhealthy    = errors.New("service unhealthy")
	ErrNoTargets    = errors.New("no report targets discovered")
	ErrServerErrors = errors.New("server errors during load")
	ErrInconsistent = errors.New("repeated request returned a different body")
)
