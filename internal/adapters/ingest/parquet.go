package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/okian/iplstats/internal/domain/model"
)

// Snapshot file names inside a parquet directory.
const (
	MatchesFile    = "matches.parquet"
	DeliveriesFile = "deliveries.parquet"
)

// MatchRecord is the parquet row layout of a match.
type MatchRecord struct {
	MatchID       int64     `parquet:"match_id,snappy"`
	Season        int32     `parquet:"season,snappy"`
	Date          time.Time `parquet:"date,snappy"`
	Venue         string    `parquet:"venue,snappy,dict"`
	City          string    `parquet:"city,snappy,dict"`
	Team1         string    `parquet:"team1,snappy,dict"`
	Team2         string    `parquet:"team2,snappy,dict"`
	TossWinner    string    `parquet:"toss_winner,snappy,dict"`
	TossDecision  string    `parquet:"toss_decision,snappy,dict"`
	Winner        string    `parquet:"winner,snappy,dict"`
	Result        string    `parquet:"result,snappy,dict"`
	PlayerOfMatch string    `parquet:"player_of_match,snappy"`
	Umpire1       string    `parquet:"umpire1,snappy,dict"`
	Umpire2       string    `parquet:"umpire2,snappy,dict"`
	Umpire3       string    `parquet:"umpire3,snappy,dict"`
}

// DeliveryRecord is the parquet row layout of a delivery.
type DeliveryRecord struct {
	MatchID           int64  `parquet:"match_id,snappy"`
	Inning            int32  `parquet:"inning,snappy"`
	Over              int32  `parquet:"over,snappy"`
	Ball              int32  `parquet:"ball,snappy"`
	BattingTeam       string `parquet:"batting_team,snappy,dict"`
	BowlingTeam       string `parquet:"bowling_team,snappy,dict"`
	Batsman           string `parquet:"batsman,snappy,dict"`
	NonStriker        string `parquet:"non_striker,snappy,dict"`
	Bowler            string `parquet:"bowler,snappy,dict"`
	IsSuperOver       bool   `parquet:"is_super_over,snappy"`
	WideRuns          int32  `parquet:"wide_runs,snappy"`
	ByeRuns           int32  `parquet:"bye_runs,snappy"`
	LegbyeRuns        int32  `parquet:"legbye_runs,snappy"`
	NoballRuns        int32  `parquet:"noball_runs,snappy"`
	PenaltyRuns       int32  `parquet:"penalty_runs,snappy"`
	BatsmanRuns       int32  `parquet:"batsman_runs,snappy"`
	ExtraRuns         int32  `parquet:"extra_runs,snappy"`
	TotalRuns         int32  `parquet:"total_runs,snappy"`
	PlayerDismissed   string `parquet:"player_dismissed,snappy,dict"`
	DismissalKind     string `parquet:"dismissal_kind,snappy,dict"`
	DismissalFielders string `parquet:"dismissal_fielders,snappy,dict"`
}

func toMatchRecord(m model.Match) MatchRecord {
	return MatchRecord{
		MatchID: int64(m.MatchID), Season: int32(m.Season), Date: m.Date.UTC(),
		Venue: m.Venue, City: m.City, Team1: m.Team1, Team2: m.Team2,
		TossWinner: m.TossWinner, TossDecision: m.TossDecision,
		Winner: m.Winner, Result: m.Result, PlayerOfMatch: m.PlayerOfMatch,
		Umpire1: m.Umpire1, Umpire2: m.Umpire2, Umpire3: m.Umpire3,
	}
}

func (r MatchRecord) model() model.Match {
	return model.Match{
		MatchID: int(r.MatchID), Season: int(r.Season), Date: r.Date.UTC(),
		Venue: r.Venue, City: r.City, Team1: r.Team1, Team2: r.Team2,
		TossWinner: r.TossWinner, TossDecision: r.TossDecision,
		Winner: r.Winner, Result: r.Result, PlayerOfMatch: r.PlayerOfMatch,
		Umpire1: r.Umpire1, Umpire2: r.Umpire2, Umpire3: r.Umpire3,
	}
}

func toDeliveryRecord(d model.Delivery) DeliveryRecord {
	return DeliveryRecord{
		MatchID: int64(d.MatchID), Inning: int32(d.Inning), Over: int32(d.Over), Ball: int32(d.Ball),
		BattingTeam: d.BattingTeam, BowlingTeam: d.BowlingTeam,
		Batsman: d.Batsman, NonStriker: d.NonStriker, Bowler: d.Bowler,
		IsSuperOver: d.IsSuperOver,
		WideRuns:    int32(d.WideRuns), ByeRuns: int32(d.ByeRuns), LegbyeRuns: int32(d.LegbyeRuns),
		NoballRuns: int32(d.NoballRuns), PenaltyRuns: int32(d.PenaltyRuns),
		BatsmanRuns: int32(d.BatsmanRuns), ExtraRuns: int32(d.ExtraRuns), TotalRuns: int32(d.TotalRuns),
		PlayerDismissed: d.PlayerDismissed, DismissalKind: d.DismissalKind, DismissalFielders: d.DismissalFielders,
	}
}

func (r DeliveryRecord) model() model.Delivery {
	return model.Delivery{
		MatchID: int(r.MatchID), Inning: int(r.Inning), Over: int(r.Over), Ball: int(r.Ball),
		BattingTeam: r.BattingTeam, BowlingTeam: r.BowlingTeam,
		Batsman: r.Batsman, NonStriker: r.NonStriker, Bowler: r.Bowler,
		IsSuperOver: r.IsSuperOver,
		WideRuns:    int(r.WideRuns), ByeRuns: int(r.ByeRuns), LegbyeRuns: int(r.LegbyeRuns),
		NoballRuns: int(r.NoballRuns), PenaltyRuns: int(r.PenaltyRuns),
		BatsmanRuns: int(r.BatsmanRuns), ExtraRuns: int(r.ExtraRuns), TotalRuns: int(r.TotalRuns),
		PlayerDismissed: r.PlayerDismissed, DismissalKind: r.DismissalKind, DismissalFielders: r.DismissalFielders,
	}
}

func writeFile[T any](path string, rows []T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finish %s: %w", path, err)
	}
	return nil
}

func readFile[T any](path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows[:n], nil
}

// WriteParquet writes both datasets into dir, creating it if needed.
func WriteParquet(dir string, matches []model.Match, deliveries []model.Delivery) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	mr := make([]MatchRecord, len(matches))
	for i, m := range matches {
		mr[i] = toMatchRecord(m)
	}
	if err := writeFile(filepath.Join(dir, MatchesFile), mr); err != nil {
		return err
	}
	dr := make([]DeliveryRecord, len(deliveries))
	for i, d := range deliveries {
		dr[i] = toDeliveryRecord(d)
	}
	return writeFile(filepath.Join(dir, DeliveriesFile), dr)
}

// ReadParquet reads a snapshot written by WriteParquet.
func ReadParquet(dir string) ([]model.Match, []model.Delivery, error) {
	mr, err := readFile[MatchRecord](filepath.Join(dir, MatchesFile))
	if err != nil {
		return nil, nil, err
	}
	dr, err := readFile[DeliveryRecord](filepath.Join(dir, DeliveriesFile))
	if err != nil {
		return nil, nil, err
	}
	matches := make([]model.Match, len(mr))
	for i, r := range mr {
		matches[i] = r.model()
	}
	deliveries := make([]model.Delivery, len(dr))
	for i, r := range dr {
		deliveries[i] = r.model()
	}
	return matches, deliveries, nil
}
