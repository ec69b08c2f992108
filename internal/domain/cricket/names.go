package cricket

import (
	"strings"
)

// teamAliases collapses spelling variants of the same franchise.
var teamAliases = map[string]string{
	"rising pune supergiant": "Rising Pune Supergiants",
}

// CanonicalTeam trims name and maps known variants to one spelling.
func CanonicalTeam(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if c, ok := teamAliases[strings.ToLower(name)]; ok {
		return c
	}
	return name
}

// TeamMatches reports whether a and b name the same team.
func TeamMatches(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(CanonicalTeam(a), CanonicalTeam(b))
}

// TeamContains is the loose lookup used by list filters: query is a
// case-insensitive substring of the canonical team name.
func TeamContains(name, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(CanonicalTeam(name)), strings.ToLower(strings.TrimSpace(query)))
}

var venueStopWords = map[string]struct{}{
	"stadium":       {},
	"cricket":       {},
	"ground":        {},
	"international": {},
	"arena":         {},
	"park":          {},
}

// VenueKey canonicalizes a raw venue string so that "Eden Gardens" and
// "Eden Gardens, Kolkata" compare equal.
func VenueKey(raw string) string {
	if i := strings.IndexByte(raw, ','); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.ReplaceAll(raw, ".", " ")
	words := strings.Fields(strings.ToLower(raw))
	var b strings.Builder
	for _, w := range words {
		if _, stop := venueStopWords[w]; stop {
			continue
		}
		b.WriteString(w)
	}
	return b.String()
}

// SameVenue reports whether two raw venue strings name the same ground.
func SameVenue(a, b string) bool {
	return VenueKey(a) == VenueKey(b)
}

var playoffWords = []string{"final", "qualifier", "eliminator", "playoff"}

// IsPlayoff reports whether a result text marks a knockout fixture.
func IsPlayoff(result string) bool {
	r := strings.ToLower(result)
	for _, w := range playoffWords {
		if strings.Contains(r, w) {
			return true
		}
	}
	return false
}

// PlayerMatches is the exact, case-insensitive player name comparison.
func PlayerMatches(a, b string) bool {
	return a != "" && strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
