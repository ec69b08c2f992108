// Package ingest loads the Kaggle IPL CSV exports and reads and writes
// Parquet snapshots of both datasets.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/okian/iplstats/internal/domain/cricket"
	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/pkg/logger"
	"github.com/okian/iplstats/pkg/metrics"
)

// Report counts what happened to the rows of one file.
type Report struct {
	Read     int `json:"read"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

func (r Report) record(dataset string) {
	metrics.RecordImportRows(dataset, "imported", r.Imported)
	metrics.RecordImportRows(dataset, "skipped", r.Skipped)
}

// row gives header-addressed access to one CSV record.
type row struct {
	index  map[string]int
	record []string
}

// get returns the first non-empty value among the named columns.
func (r row) get(names ...string) string {
	for _, n := range names {
		if i, ok := r.index[n]; ok && i < len(r.record) {
			if v := strings.TrimSpace(r.record[i]); v != "" && !strings.EqualFold(v, "NA") {
				return v
			}
		}
	}
	return ""
}

func (r row) number(names ...string) (int, error) {
	v := r.get(names...)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: column %s: %q", ErrBadValue, names[0], v)
	}
	return n, nil
}

// eachRow reads a header line and calls fn for every following record.
func eachRow(r io.Reader, fn func(row) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyFile
		}
		return fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read record: %w", err)
		}
		if err := fn(row{index: index, record: rec}); err != nil {
			return err
		}
	}
}

var yearPattern = regexp.MustCompile(`\d{4}`)

var dateLayouts = []string{"2006-01-02", "02-01-2006", "2006/01/02", "02/01/2006", "02/01/06"}

// parseDate accepts the day-first and ISO formats found in the exports.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q", ErrBadValue, s)
}

// parseSeason takes the first four digits of the season column, so both
// "2017" and "IPL-2017" work, falling back to the year of date.
func parseSeason(season string, date time.Time) int {
	if y := yearPattern.FindString(season); y != "" {
		n, _ := strconv.Atoi(y)
		return n
	}
	if !date.IsZero() {
		return date.Year()
	}
	return 0
}

func parseMatch(r row) (model.Match, error) {
	id, err := r.number("id", "match_id", "matchid")
	if err != nil {
		return model.Match{}, err
	}
	m := model.Match{
		MatchID:       id,
		Venue:         r.get("venue"),
		City:          r.get("city"),
		Team1:         cricket.CanonicalTeam(r.get("team1")),
		Team2:         cricket.CanonicalTeam(r.get("team2")),
		TossWinner:    cricket.CanonicalTeam(r.get("toss_winner")),
		TossDecision:  strings.ToLower(r.get("toss_decision")),
		Winner:        cricket.CanonicalTeam(r.get("winner")),
		Result:        r.get("result"),
		PlayerOfMatch: r.get("player_of_match", "man_of_the_match"),
		Umpire1:       r.get("umpire1"),
		Umpire2:       r.get("umpire2"),
		Umpire3:       r.get("umpire3"),
	}
	if d := r.get("date"); d != "" {
		if m.Date, err = parseDate(d); err != nil {
			return model.Match{}, err
		}
	}
	m.Season = parseSeason(r.get("season"), m.Date)
	return m, m.Validate()
}

func parseDelivery(r row) (model.Delivery, error) {
	var d model.Delivery
	ints := []struct {
		dst  *int
		name string
	}{
		{&d.MatchID, "match_id"}, {&d.Inning, "inning"}, {&d.Over, "over"}, {&d.Ball, "ball"},
		{&d.WideRuns, "wide_runs"}, {&d.ByeRuns, "bye_runs"}, {&d.LegbyeRuns, "legbye_runs"},
		{&d.NoballRuns, "noball_runs"}, {&d.PenaltyRuns, "penalty_runs"},
		{&d.BatsmanRuns, "batsman_runs"}, {&d.ExtraRuns, "extra_runs"}, {&d.TotalRuns, "total_runs"},
	}
	for _, f := range ints {
		n, err := r.number(f.name)
		if err != nil {
			return model.Delivery{}, err
		}
		*f.dst = n
	}
	superOver, err := r.number("is_super_over")
	if err != nil {
		return model.Delivery{}, err
	}
	d.IsSuperOver = superOver == 1
	d.BattingTeam = cricket.CanonicalTeam(r.get("batting_team"))
	d.BowlingTeam = cricket.CanonicalTeam(r.get("bowling_team"))
	d.Batsman = r.get("batsman", "batter")
	d.NonStriker = r.get("non_striker")
	d.Bowler = r.get("bowler")
	d.PlayerDismissed = r.get("player_dismissed")
	d.DismissalKind = r.get("dismissal_kind")
	d.DismissalFielders = r.get("fielder", "dismissal_fielders")
	return d, d.Validate()
}

// ReadMatches parses matches.csv. Rows that fail validation are logged
// and skipped; a malformed file is an error.
func ReadMatches(ctx context.Context, r io.Reader) ([]model.Match, Report, error) {
	log := logger.Named("ingest")
	var rep Report
	var out []model.Match
	seen := map[int]bool{}
	err := eachRow(r, func(rw row) error {
		rep.Read++
		m, err := parseMatch(rw)
		if err == nil && seen[m.MatchID] {
			err = fmt.Errorf("%w: match %d", ErrDuplicate, m.MatchID)
		}
		if err != nil {
			rep.Skipped++
			log.Debug(ctx, "skipping match row", logger.Int("row", rep.Read), logger.Error(err))
			return nil
		}
		seen[m.MatchID] = true
		out = append(out, m)
		rep.Imported++
		return nil
	})
	rep.record("matches")
	return out, rep, err
}

// ReadDeliveries parses deliveries.csv with the same skip rules as
// ReadMatches.
func ReadDeliveries(ctx context.Context, r io.Reader) ([]model.Delivery, Report, error) {
	log := logger.Named("ingest")
	var rep Report
	var out []model.Delivery
	err := eachRow(r, func(rw row) error {
		rep.Read++
		d, err := parseDelivery(rw)
		if err != nil {
			rep.Skipped++
			log.Debug(ctx, "skipping delivery row", logger.Int("row", rep.Read), logger.Error(err))
			return nil
		}
		out = append(out, d)
		rep.Imported++
		return nil
	})
	rep.record("deliveries")
	return out, rep, err
}

// Dataset is both loaded files plus their import reports.
type Dataset struct {
	Matches          []model.Match
	Deliveries       []model.Delivery
	MatchReport      Report
	DeliveryReport   Report
	OrphanDeliveries int
}

// LoadCSV reads both files. Deliveries whose match is not in the matches
// file are dropped and counted as orphans.
func LoadCSV(ctx context.Context, matchesPath, deliveriesPath string) (Dataset, error) {
	var ds Dataset

	mf, err := os.Open(matchesPath)
	if err != nil {
		return ds, fmt.Errorf("open matches: %w", err)
	}
	defer func() { _ = mf.Close() }()
	if ds.Matches, ds.MatchReport, err = ReadMatches(ctx, mf); err != nil {
		return ds, fmt.Errorf("%s: %w", matchesPath, err)
	}

	df, err := os.Open(deliveriesPath)
	if err != nil {
		return ds, fmt.Errorf("open deliveries: %w", err)
	}
	defer func() { _ = df.Close() }()
	deliveries, rep, err := ReadDeliveries(ctx, df)
	if err != nil {
		return ds, fmt.Errorf("%s: %w", deliveriesPath, err)
	}
	ds.DeliveryReport = rep

	known := make(map[int]bool, len(ds.Matches))
	for _, m := range ds.Matches {
		known[m.MatchID] = true
	}
	ds.Deliveries = deliveries[:0]
	for _, d := range deliveries {
		if !known[d.MatchID] {
			ds.OrphanDeliveries++
			continue
		}
		ds.Deliveries = append(ds.Deliveries, d)
	}
	metrics.RecordImportRows("deliveries", "orphaned", ds.OrphanDeliveries)

	logger.Named("ingest").Info(ctx, "loaded csv dataset",
		logger.Int("matches", len(ds.Matches)),
		logger.Int("deliveries", len(ds.Deliveries)),
		logger.Int("skippedMatches", ds.MatchReport.Skipped),
		logger.Int("skippedDeliveries", ds.DeliveryReport.Skipped),
		logger.Int("orphans", ds.OrphanDeliveries),
	)
	return ds, nil
}
