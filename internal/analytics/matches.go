package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/iplstats/internal/domain/cricket"
	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/internal/domain/scoring"
	"github.com/okian/iplstats/internal/domain/types"
)

const detailDeliveries = 100

// Matches lists fixtures, newest first, filtered by a loose team name and
// an optional season.
func Matches(ds *Dataset, team string, season int) []model.Match {
	out := []model.Match{}
	ds.eachMatch(season, func(m *model.Match) {
		if team != "" && !cricket.TeamContains(m.Team1, team) && !cricket.TeamContains(m.Team2, team) {
			return
		}
		out = append(out, *m)
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].MatchID > out[j].MatchID
	})
	return out
}

// MatchesSummary counts matches per season and wins per team.
func MatchesSummary(ds *Dataset) types.MatchesSummary {
	out := types.MatchesSummary{
		TotalMatches:     ds.MatchCount(),
		MatchesPerSeason: map[int]int{},
		WinsPerTeam:      map[string]int{},
	}
	ds.eachMatch(0, func(m *model.Match) {
		out.MatchesPerSeason[m.Season]++
		if m.Decisive() {
			out.WinsPerTeam[winnerOf(*m)]++
		}
	})
	return out
}

func matchByID(ds *Dataset, id int) (model.Match, error) {
	if id <= 0 {
		return model.Match{}, fmt.Errorf("%w: match id %d", ErrInvalidFilter, id)
	}
	m, ok := ds.Match(id)
	if !ok {
		return model.Match{}, fmt.Errorf("%w: match %d", ErrNotFound, id)
	}
	return m, nil
}

func dismissalText(d *model.Delivery) string {
	kind := d.DismissalKind
	if kind == "" {
		kind = "out"
	}
	if f := d.Fielders(); len(f) > 0 {
		return kind + " (" + strings.Join(f, ", ") + ")"
	}
	return kind
}

// MatchDetails builds the full scorecard of a match.
func MatchDetails(ds *Dataset, id int) (types.MatchDetails, error) {
	m, err := matchByID(ds, id)
	if err != nil {
		return types.MatchDetails{}, err
	}
	deliveries := ds.MatchDeliveries(id)
	out := types.MatchDetails{
		Match:      m,
		Innings:    []types.InningsCard{},
		Deliveries: append([]model.Delivery{}, deliveries[:min(len(deliveries), detailDeliveries)]...),
	}

	var card *types.InningsCard
	var batIdx, bowlIdx map[string]int
	var lastOver, lastBall int
	flush := func() {
		if card == nil {
			return
		}
		t := inningsTotal{lastOver: lastOver, lastBall: lastBall}
		card.OversPlayed = t.oversNotation()
		for i := range card.BatsmenStats {
			b := &card.BatsmenStats[i]
			b.StrikeRate = scoring.Round2(scoring.StrikeRate(b.Runs, b.Balls))
		}
		for i := range card.BowlersStats {
			b := &card.BowlersStats[i]
			b.Overs = scoring.Overs(b.Balls)
			b.Economy = scoring.Round2(scoring.Economy(b.Runs, b.Balls))
		}
		out.Innings = append(out.Innings, *card)
	}
	batsman := func(name string) *types.BatsmanCard {
		i, ok := batIdx[name]
		if !ok {
			i = len(card.BatsmenStats)
			batIdx[name] = i
			card.BatsmenStats = append(card.BatsmenStats, types.BatsmanCard{Batsman: name, Dismissal: "not out"})
		}
		return &card.BatsmenStats[i]
	}

	for i := range deliveries {
		d := &deliveries[i]
		if card == nil || card.Inning != d.Inning {
			flush()
			card = &types.InningsCard{
				Inning:        d.Inning,
				BattingTeam:   d.BattingTeam,
				BowlingTeam:   d.BowlingTeam,
				BatsmenStats:  []types.BatsmanCard{},
				BowlersStats:  []types.BowlerCard{},
				FallOfWickets: []types.FallOfWicket{},
			}
			batIdx, bowlIdx = map[string]int{}, map[string]int{}
			lastOver, lastBall = 0, 0
		}
		lastOver, lastBall = d.Over, d.Ball
		card.TotalRuns += d.TotalRuns
		card.Extras += d.ExtraRuns

		b := batsman(d.Batsman)
		b.Runs += d.BatsmanRuns
		b.Balls++
		switch d.BatsmanRuns {
		case 4:
			b.Fours++
		case 6:
			b.Sixes++
		}

		j, ok := bowlIdx[d.Bowler]
		if !ok {
			j = len(card.BowlersStats)
			bowlIdx[d.Bowler] = j
			card.BowlersStats = append(card.BowlersStats, types.BowlerCard{Bowler: d.Bowler})
		}
		bw := &card.BowlersStats[j]
		bw.Balls++
		bw.Runs += d.TotalRuns
		if d.IsBowlerWicket() {
			bw.Wickets++
		}

		if d.IsWicket() {
			card.Wickets++
			batsman(d.PlayerDismissed).Dismissal = dismissalText(d)
			card.FallOfWickets = append(card.FallOfWickets, types.FallOfWicket{
				OverBall:    fmt.Sprintf("%d.%d", d.Over, d.Ball),
				Player:      d.PlayerDismissed,
				ScoreAtFall: card.TotalRuns,
			})
		}
	}
	flush()
	return out, nil
}

// MatchDeliveries pages through one match's deliveries, optionally for a
// single innings. page starts at 1; limit is 1-5000.
func MatchDeliveries(ds *Dataset, id, inning, page, limit int) (types.DeliveryPage, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultDeliveryLimit
	}
	if page < 1 {
		return types.DeliveryPage{}, fmt.Errorf("%w: page %d", ErrInvalidFilter, page)
	}
	if limit < 1 || limit > MaxDeliveryLimit {
		return types.DeliveryPage{}, fmt.Errorf("%w: limit %d not in 1-%d", ErrInvalidFilter, limit, MaxDeliveryLimit)
	}
	if _, err := matchByID(ds, id); err != nil {
		return types.DeliveryPage{}, err
	}

	var rows []model.Delivery
	for _, d := range ds.MatchDeliveries(id) {
		if inning == 0 || d.Inning == inning {
			rows = append(rows, d)
		}
	}
	total := len(rows)
	pages := (total + limit - 1) / limit
	lo := min((page-1)*limit, total)
	hi := min(lo+limit, total)
	return types.DeliveryPage{
		Data: append([]model.Delivery{}, rows[lo:hi]...),
		Pagination: types.Pagination{
			CurrentPage: page,
			TotalPages:  pages,
			TotalCount:  total,
			Limit:       limit,
			HasNext:     page < pages,
			HasPrev:     page > 1,
		},
	}, nil
}

// MatchTimeline is the over-by-over progression of both innings. Second
// innings overs carry the required run rate against the first-innings
// total.
func MatchTimeline(ds *Dataset, id int) (types.MatchTimeline, error) {
	if _, err := matchByID(ds, id); err != nil {
		return types.MatchTimeline{}, err
	}
	stats, err := MatchOverStats(ds, id, 0)
	if err != nil {
		return types.MatchTimeline{}, err
	}
	out := types.MatchTimeline{
		MatchID:       id,
		FirstInnings:  []types.TimelineOver{},
		SecondInnings: []types.TimelineOver{},
	}
	firstTotal := 0
	for _, inn := range stats.Innings {
		if inn.Inning == 1 && len(inn.Overs) > 0 {
			firstTotal = inn.Overs[len(inn.Overs)-1].Cumulative
		}
	}
	out.Target = firstTotal + 1

	for _, inn := range stats.Innings {
		for _, o := range inn.Overs {
			row := types.TimelineOver{
				Over:           o.Over,
				RunsInOver:     o.RunsInOver,
				Wickets:        o.WicketsInOver,
				CumulativeRuns: o.Cumulative,
				CurrentRunRate: scoring.Round2(scoring.Ratio(o.Cumulative, o.Over)),
			}
			switch inn.Inning {
			case 1:
				out.FirstInnings = append(out.FirstInnings, row)
			case 2:
				ballsLeft := (cricket.MaxOver - o.Over) * cricket.BallsPerOver
				rate, status := scoring.RequiredRunRate(firstTotal, o.Cumulative, ballsLeft)
				row.RequiredRunRate = scoring.Round2(rate)
				row.ChaseStatus = string(status)
				out.SecondInnings = append(out.SecondInnings, row)
			}
		}
	}
	return out, nil
}
