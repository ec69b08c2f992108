// Package analytics implements the report pipelines. Every pipeline is a
// pure function over an immutable Dataset and a Filter; none of them keep
// state between calls.
package analytics

import (
	"sort"
	"strings"

	"github.com/okian/iplstats/internal/domain/cricket"
	"github.com/okian/iplstats/internal/domain/model"
)

// Dataset is a read-only, indexed snapshot of matches and deliveries.
// It is safe for concurrent use once built.
type Dataset struct {
	matches    []model.Match
	byID       map[int]int
	deliveries []model.Delivery
	byMatch    map[int][]model.Delivery
	seasons    map[int][]int
	seasonList []int

	venueKeys  map[int]string
	venueNames map[string]string
	venueOrder []string

	battingFirst map[int]string
	players      map[string]string
	teams        map[string]string
}

// NewDataset indexes matches and deliveries. The inputs are copied, team
// names are canonicalized and deliveries are put in chronological order.
func NewDataset(matches []model.Match, deliveries []model.Delivery) *Dataset {
	d := &Dataset{
		matches:      make([]model.Match, len(matches)),
		byID:         make(map[int]int, len(matches)),
		deliveries:   make([]model.Delivery, len(deliveries)),
		byMatch:      make(map[int][]model.Delivery, len(matches)),
		seasons:      make(map[int][]int),
		venueKeys:    make(map[int]string, len(matches)),
		venueNames:   make(map[string]string),
		battingFirst: make(map[int]string, len(matches)),
		players:      make(map[string]string),
		teams:        make(map[string]string),
	}

	copy(d.matches, matches)
	sort.SliceStable(d.matches, func(i, j int) bool {
		a, b := d.matches[i], d.matches[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.MatchID < b.MatchID
	})
	for i := range d.matches {
		m := &d.matches[i]
		m.Team1 = cricket.CanonicalTeam(m.Team1)
		m.Team2 = cricket.CanonicalTeam(m.Team2)
		m.TossWinner = cricket.CanonicalTeam(m.TossWinner)
		m.Winner = cricket.CanonicalTeam(m.Winner)
		m.TossDecision = strings.ToLower(strings.TrimSpace(m.TossDecision))

		d.byID[m.MatchID] = i
		d.seasons[m.Season] = append(d.seasons[m.Season], m.MatchID)
		d.internTeam(m.Team1)
		d.internTeam(m.Team2)

		key := cricket.VenueKey(m.Venue)
		d.venueKeys[m.MatchID] = key
		if _, ok := d.venueNames[key]; !ok && key != "" {
			d.venueNames[key] = m.Venue
			d.venueOrder = append(d.venueOrder, key)
		}
	}
	// d.seasons keeps the date order of d.matches.
	for s := range d.seasons {
		d.seasonList = append(d.seasonList, s)
	}
	sort.Ints(d.seasonList)

	copy(d.deliveries, deliveries)
	for i := range d.deliveries {
		dl := &d.deliveries[i]
		dl.BattingTeam = cricket.CanonicalTeam(dl.BattingTeam)
		dl.BowlingTeam = cricket.CanonicalTeam(dl.BowlingTeam)
	}
	sort.SliceStable(d.deliveries, func(i, j int) bool { return d.deliveries[i].Less(d.deliveries[j]) })

	start := 0
	for i := 1; i <= len(d.deliveries); i++ {
		if i == len(d.deliveries) || d.deliveries[i].MatchID != d.deliveries[start].MatchID {
			id := d.deliveries[start].MatchID
			d.byMatch[id] = d.deliveries[start:i:i]
			start = i
		}
	}
	for i := range d.deliveries {
		dl := &d.deliveries[i]
		if dl.Inning == 1 {
			if _, ok := d.battingFirst[dl.MatchID]; !ok {
				d.battingFirst[dl.MatchID] = dl.BattingTeam
			}
		}
		d.internPlayer(dl.Batsman)
		d.internPlayer(dl.NonStriker)
		d.internPlayer(dl.Bowler)
	}
	return d
}

func (d *Dataset) internPlayer(name string) {
	if name == "" {
		return
	}
	k := strings.ToLower(strings.TrimSpace(name))
	if _, ok := d.players[k]; !ok {
		d.players[k] = name
	}
}

func (d *Dataset) internTeam(name string) {
	if name == "" {
		return
	}
	k := strings.ToLower(name)
	if _, ok := d.teams[k]; !ok {
		d.teams[k] = name
	}
}

// MatchCount returns the number of matches.
func (d *Dataset) MatchCount() int { return len(d.matches) }

// DeliveryCount returns the number of deliveries.
func (d *Dataset) DeliveryCount() int { return len(d.deliveries) }

// Seasons returns every season in ascending order.
func (d *Dataset) Seasons() []int {
	out := make([]int, len(d.seasonList))
	copy(out, d.seasonList)
	return out
}

// HasSeason reports whether any match was played in season.
func (d *Dataset) HasSeason(season int) bool {
	return len(d.seasons[season]) > 0
}

// Match looks a match up by id.
func (d *Dataset) Match(id int) (model.Match, bool) {
	i, ok := d.byID[id]
	if !ok {
		return model.Match{}, false
	}
	return d.matches[i], true
}

// MatchDeliveries returns the deliveries of one match in order. The slice
// is shared and must not be modified.
func (d *Dataset) MatchDeliveries(id int) []model.Delivery {
	return d.byMatch[id]
}

// Player resolves a player name case-insensitively to its stored spelling.
func (d *Dataset) Player(name string) (string, bool) {
	p, ok := d.players[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Team resolves a team name, including known aliases, to its stored spelling.
func (d *Dataset) Team(name string) (string, bool) {
	t, ok := d.teams[strings.ToLower(cricket.CanonicalTeam(name))]
	return t, ok
}

// VenueName returns the display name for a venue key.
func (d *Dataset) VenueName(key string) (string, bool) {
	n, ok := d.venueNames[key]
	return n, ok
}

// venueOf returns the venue key and display name of a match.
func (d *Dataset) venueOf(id int) (string, string) {
	k := d.venueKeys[id]
	return k, d.venueNames[k]
}

// BattingFirst returns the side that batted first: the first-innings
// batting team when deliveries exist, otherwise what the toss implies.
func (d *Dataset) BattingFirst(m model.Match) string {
	if t, ok := d.battingFirst[m.MatchID]; ok && t != "" {
		return t
	}
	switch m.TossDecision {
	case model.TossBat:
		return m.TossWinner
	case model.TossField:
		return m.Opponent(m.TossWinner)
	}
	return ""
}

// eachMatch calls fn for every match of season (0 for all) in date order.
func (d *Dataset) eachMatch(season int, fn func(m *model.Match)) {
	if season == 0 {
		for i := range d.matches {
			fn(&d.matches[i])
		}
		return
	}
	for _, id := range d.seasons[season] {
		fn(&d.matches[d.byID[id]])
	}
}

// eachDelivery calls fn for every delivery of season (0 for all) in
// chronological order. An unknown season visits nothing.
func (d *Dataset) eachDelivery(season int, fn func(dl *model.Delivery)) {
	if season == 0 {
		for i := range d.deliveries {
			fn(&d.deliveries[i])
		}
		return
	}
	for _, id := range d.seasons[season] {
		ds := d.byMatch[id]
		for i := range ds {
			fn(&ds[i])
		}
	}
}

// eachDeliveryIn visits the deliveries of the given matches in id order.
func (d *Dataset) eachDeliveryIn(ids []int, fn func(dl *model.Delivery)) {
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)
	for _, id := range sorted {
		ds := d.byMatch[id]
		for i := range ds {
			fn(&ds[i])
		}
	}
}

// matchLabel is the "team1 vs team2" caption used by record tables.
func matchLabel(m model.Match) string {
	return m.Team1 + " vs " + m.Team2
}
