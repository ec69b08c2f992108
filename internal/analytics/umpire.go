package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/iplstats/internal/domain/cricket"
	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/internal/domain/types"
)

const (
	umpireVenuesN = 10
	notAvailable  = "N/A"
)

// Umpires lists every umpire with the number of matches officiated.
func Umpires(ds *Dataset) []types.Umpire {
	counts := map[string]int{}
	spelling := map[string]string{}
	ds.eachMatch(0, func(m *model.Match) {
		for _, u := range m.Umpires() {
			k := strings.ToLower(u)
			if _, ok := spelling[k]; !ok {
				spelling[k] = u
			}
			counts[k]++
		}
	})
	out := make([]types.Umpire, 0, len(counts))
	for k, n := range counts {
		out = append(out, types.Umpire{Name: spelling[k], Matches: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// UmpireStats summarises one umpire's career.
func UmpireStats(ds *Dataset, umpire string) (types.UmpireStats, error) {
	venues := map[string]int{}
	teams := map[string]int{}
	seasons := map[int]int{}
	out := types.UmpireStats{UmpireName: umpire, MostFrequentVenue: notAvailable, CareerSpan: notAvailable}
	ds.eachMatch(0, func(m *model.Match) {
		officiated := false
		for _, u := range m.Umpires() {
			if cricket.PlayerMatches(u, umpire) {
				officiated = true
				out.UmpireName = u
			}
		}
		if !officiated {
			return
		}
		out.TotalMatches++
		if cricket.IsPlayoff(m.Result) {
			out.FinalsOfficiated++
		}
		_, v := ds.venueOf(m.MatchID)
		venues[v]++
		teams[m.Team1]++
		teams[m.Team2]++
		if m.Season != 0 {
			seasons[m.Season]++
		}
	})
	if out.TotalMatches == 0 {
		return types.UmpireStats{}, fmt.Errorf("%w: umpire %q", ErrNotFound, umpire)
	}

	out.VenueFrequency = countsDesc(venues, umpireVenuesN)
	if len(out.VenueFrequency) > 0 {
		out.MostFrequentVenue = out.VenueFrequency[0].Name
	}
	out.TeamEncounters = countsDesc(teams, -1)
	out.TeamsEncountered = len(out.TeamEncounters)
	out.SeasonsActive = len(seasons)

	out.SeasonActivity = make([]types.SeasonCount, 0, len(seasons))
	for s, n := range seasons {
		out.SeasonActivity = append(out.SeasonActivity, types.SeasonCount{Season: s, Matches: n})
	}
	sort.Slice(out.SeasonActivity, func(i, j int) bool { return out.SeasonActivity[i].Season < out.SeasonActivity[j].Season })
	if n := len(out.SeasonActivity); n > 0 {
		out.CareerSpan = strconv.Itoa(out.SeasonActivity[0].Season) + "-" + strconv.Itoa(out.SeasonActivity[n-1].Season)
	}
	return out, nil
}
