package analytics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/iplstats/internal/domain/cricket"
	"github.com/okian/iplstats/internal/domain/types"
)

// Dataset season range covered by the source data.
const (
	FirstSeason = 2008
	LastSeason  = 2019
)

// Default and maximum row limits.
const (
	DefaultLimit         = 50
	DefaultTopBatsmen    = 10
	DefaultDeliveryLimit = 1000
	MaxDeliveryLimit     = 5000
)

// Filter is the flat parameter bag every report takes. Zero values mean
// "not set". Season 0 means all seasons.
type Filter struct {
	Team     string
	Opponent string
	Player   string
	Bowler   string
	Umpire   string
	Venue    string
	Season   int
	MatchID  int
	Inning   int
	Page     int
	Limit    int
}

// SeasonLabel is the season as shown in report headers.
func (f Filter) SeasonLabel() string {
	if f.Season == 0 {
		return types.SeasonAll
	}
	return strconv.Itoa(f.Season)
}

// LimitOr returns Limit, or def when Limit is unset.
func (f Filter) LimitOr(def int) int {
	if f.Limit > 0 {
		return f.Limit
	}
	return def
}

// Key is a normalized representation of f, stable across spelling
// variants that every pipeline treats as equal.
func (f Filter) Key() string {
	var b strings.Builder
	add := func(name, v string) {
		if v == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(v)
	}
	num := func(n int) string {
		if n == 0 {
			return ""
		}
		return strconv.Itoa(n)
	}
	lower := func(s string) string { return strings.ToLower(strings.Join(strings.Fields(s), " ")) }

	add("team", lower(cricket.CanonicalTeam(f.Team)))
	add("opponent", lower(cricket.CanonicalTeam(f.Opponent)))
	add("player", lower(f.Player))
	add("bowler", lower(f.Bowler))
	add("umpire", lower(f.Umpire))
	add("venue", cricket.VenueKey(f.Venue))
	add("season", num(f.Season))
	add("match", num(f.MatchID))
	add("inning", num(f.Inning))
	add("page", num(f.Page))
	add("limit", num(f.Limit))
	return b.String()
}

// ValidateSeason checks that season lies inside the covered range.
func ValidateSeason(season int) error {
	if season < FirstSeason || season > LastSeason {
		return fmt.Errorf("%w: season %d outside %d-%d", ErrInvalidFilter, season, FirstSeason, LastSeason)
	}
	return nil
}
