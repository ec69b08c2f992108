package ingest

import "errors"

// Sentinel kinds for ingest errors.
var (
	ErrEmptyFile = errors.New("file has no header")
	ErrBadValue  = errors.New("malformed value")
	ErrDuplicate = errors.New("duplicate row")
)
