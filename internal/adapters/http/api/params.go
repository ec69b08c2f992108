package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// params reads request values, keeping the first parse failure.
type params struct {
	r   *http.Request
	err error
}

func newParams(r *http.Request) *params {
	return &params{r: r}
}

// query returns a trimmed query value.
func (p *params) query(name string) string {
	return strings.TrimSpace(p.r.URL.Query().Get(name))
}

// path returns a trimmed path value.
func (p *params) path(name string) string {
	return strings.TrimSpace(p.r.PathValue(name))
}

// queryInt parses an optional integer query value. Absent means 0.
func (p *params) queryInt(name string) int {
	return p.number(name, p.query(name), false)
}

// pathInt parses a required integer path value.
func (p *params) pathInt(name string) int {
	return p.number(name, p.path(name), true)
}

func (p *params) number(name, v string, required bool) int {
	if v == "" {
		if required && p.err == nil {
			p.err = fmt.Errorf("%w: %s is required", ErrBadRequest, name)
		}
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		if p.err == nil {
			p.err = fmt.Errorf("%w: %s must be an integer, got %q", ErrBadRequest, name, v)
		}
		return 0
	}
	return n
}

// lenientInt parses name when it is numeric and ignores it otherwise.
func (p *params) lenientInt(name string) int {
	n, err := strconv.Atoi(p.query(name))
	if err != nil {
		return 0
	}
	return n
}
