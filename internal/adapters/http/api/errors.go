package api

import (
	"errors"
	"net/http"

	service "github.com/okian/iplstats/internal/app"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// statusFor maps a report error to its HTTP status and error code.
func statusFor(err error) (int, string) {
	if errors.Is(err, ErrBadRequest) {
		return http.StatusBadRequest, service.CodeBadRequest
	}
	switch code := service.Code(err); code {
	case service.CodeNotFound:
		return http.StatusNotFound, code
	case service.CodeBadRequest:
		return http.StatusBadRequest, code
	default:
		return http.StatusInternalServerError, code
	}
}
