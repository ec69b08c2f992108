package service

import (
	"errors"
	"fmt"

	"github.com/okian/iplstats/internal/analytics"
)

// Error kinds. Every error returned by a report method matches exactly one
// of ErrNotFound, ErrBadRequest or ErrInternal under errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
	ErrInternal   = errors.New("internal error")

	ErrNotStarted = errors.New("service not started")
)

// Codes used as metric labels and API error codes.
const (
	CodeNotFound   = "not_found"
	CodeBadRequest = "bad_request"
	CodeInternal   = "internal_error"
)

// Error records the failing operation and the kind of failure.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewKind returns an error of kind for op with a formatted message.
func NewKind(op string, kind error, format string, args ...any) error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Wrap classifies err and attaches op. Errors that already carry a kind
// are returned unchanged.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	kind := ErrInternal
	switch {
	case errors.Is(err, analytics.ErrNotFound):
		kind = ErrNotFound
	case errors.Is(err, analytics.ErrInvalidFilter):
		kind = ErrBadRequest
	}
	return &Error{Op: op, Kind: kind, Err: err}
}

// Code maps err to its stable code.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrBadRequest):
		return CodeBadRequest
	default:
		return CodeInternal
	}
}
