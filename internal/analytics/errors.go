package analytics

import "errors"

// Pipeline errors. Callers classify with errors.Is.
var (
	// ErrNotFound means the requested entity has no rows in the dataset.
	ErrNotFound = errors.New("not found")
	// ErrInvalidFilter means a required filter is missing or out of range.
	ErrInvalidFilter = errors.New("invalid filter")
)
