package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver

	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/pkg/metrics"
)

const dateLayout = "2006-01-02"

var matchColumns = []string{
	"match_id", "season", "match_date", "venue", "city", "team1", "team2",
	"toss_winner", "toss_decision", "winner", "result", "player_of_match",
	"umpire1", "umpire2", "umpire3",
}

var deliveryColumns = []string{
	"match_id", "seq", "inning", "over_no", "ball",
	"batting_team", "bowling_team", "batsman", "non_striker", "bowler",
	"is_super_over", "wide_runs", "bye_runs", "legbye_runs", "noball_runs",
	"penalty_runs", "batsman_runs", "extra_runs", "total_runs",
	"player_dismissed", "dismissal_kind", "dismissal_fielders",
}

// SQLStore keeps the datasets in a relational database.
type SQLStore struct {
	db      *sql.DB
	backend Backend
	opts    options
}

var _ Store = (*SQLStore)(nil)

func driverName(backend Backend) (string, error) {
	switch backend {
	case SQLiteBackend:
		return "sqlite", nil
	case PostgresBackend:
		return "pgx", nil
	case MySQLBackend:
		return "mysql", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedBackend, backend)
	}
}

func openDB(ctx context.Context, backend Backend, dsn string) (*sql.DB, error) {
	name, err := driverName(backend)
	if err != nil {
		return nil, err
	}
	if dsn == "" {
		return nil, fmt.Errorf("%w for %s", ErrMissingDSN, backend)
	}
	if backend == MySQLBackend {
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse mysql dsn: %w", err)
		}
		// migrations carry several statements per file
		cfg.MultiStatements = true
		dsn = cfg.FormatDSN()
	}

	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", backend, err)
	}
	if backend == SQLiteBackend {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to %s database: %w", backend, err)
	}
	return db, nil
}

func openSQL(ctx context.Context, backend Backend, dsn string, opts ...Option) (*SQLStore, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.autoMigrate {
		if _, err := Migrate(ctx, backend, dsn, LatestVersion); err != nil {
			return nil, err
		}
	}
	db, err := openDB(ctx, backend, dsn)
	if err != nil {
		return nil, err
	}
	return &SQLStore{db: db, backend: backend, opts: o}, nil
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *SQLStore) rebind(q string) string {
	if s.backend != PostgresBackend {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) observe(op string, start time.Time) {
	metrics.RecordStoreQuery(string(s.backend), op, msSince(start))
}

func (s *SQLStore) Matches(ctx context.Context) ([]model.Match, error) {
	defer s.observe("matches", time.Now())

	q := fmt.Sprintf("SELECT %s FROM ipl_matches ORDER BY match_id", strings.Join(matchColumns, ", "))
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Match
	for rows.Next() {
		var m model.Match
		var date string
		if err := rows.Scan(&m.MatchID, &m.Season, &date, &m.Venue, &m.City, &m.Team1, &m.Team2,
			&m.TossWinner, &m.TossDecision, &m.Winner, &m.Result, &m.PlayerOfMatch,
			&m.Umpire1, &m.Umpire2, &m.Umpire3); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		if date != "" {
			if m.Date, err = time.Parse(dateLayout, date); err != nil {
				return nil, fmt.Errorf("match %d: parse date %q: %w", m.MatchID, date, err)
			}
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLStore) Deliveries(ctx context.Context) ([]model.Delivery, error) {
	defer s.observe("deliveries", time.Now())

	q := fmt.Sprintf("SELECT %s FROM ipl_deliveries ORDER BY match_id, seq", strings.Join(deliveryColumns, ", "))
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query deliveries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Delivery
	for rows.Next() {
		var d model.Delivery
		var seq, superOver int
		if err := rows.Scan(&d.MatchID, &seq, &d.Inning, &d.Over, &d.Ball,
			&d.BattingTeam, &d.BowlingTeam, &d.Batsman, &d.NonStriker, &d.Bowler,
			&superOver, &d.WideRuns, &d.ByeRuns, &d.LegbyeRuns, &d.NoballRuns,
			&d.PenaltyRuns, &d.BatsmanRuns, &d.ExtraRuns, &d.TotalRuns,
			&d.PlayerDismissed, &d.DismissalKind, &d.DismissalFielders); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		d.IsSuperOver = superOver != 0
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLStore) ReplaceAll(ctx context.Context, matches []model.Match, deliveries []model.Delivery) (err error) {
	defer s.observe("replace_all", time.Now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, q := range []string{"DELETE FROM ipl_deliveries", "DELETE FROM ipl_matches", "DELETE FROM ipl_import_meta"} {
		if _, err = tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("clear tables: %w", err)
		}
	}

	matchRows := make([][]any, len(matches))
	for i, m := range matches {
		date := ""
		if !m.Date.IsZero() {
			date = m.Date.Format(dateLayout)
		}
		matchRows[i] = []any{m.MatchID, m.Season, date, m.Venue, m.City, m.Team1, m.Team2,
			m.TossWinner, m.TossDecision, m.Winner, m.Result, m.PlayerOfMatch,
			m.Umpire1, m.Umpire2, m.Umpire3}
	}
	if err = s.insert(ctx, tx, "ipl_matches", matchColumns, matchRows); err != nil {
		return err
	}

	seq := map[int]int{}
	deliveryRows := make([][]any, len(deliveries))
	for i, d := range deliveries {
		seq[d.MatchID]++
		superOver := 0
		if d.IsSuperOver {
			superOver = 1
		}
		deliveryRows[i] = []any{d.MatchID, seq[d.MatchID], d.Inning, d.Over, d.Ball,
			d.BattingTeam, d.BowlingTeam, d.Batsman, d.NonStriker, d.Bowler,
			superOver, d.WideRuns, d.ByeRuns, d.LegbyeRuns, d.NoballRuns,
			d.PenaltyRuns, d.BatsmanRuns, d.ExtraRuns, d.TotalRuns,
			d.PlayerDismissed, d.DismissalKind, d.DismissalFielders}
	}
	if err = s.insert(ctx, tx, "ipl_deliveries", deliveryColumns, deliveryRows); err != nil {
		return err
	}

	meta := [][]any{
		{"imported_at", time.Now().UTC().Format(time.RFC3339)},
		{"matches", strconv.Itoa(len(matches))},
		{"deliveries", strconv.Itoa(len(deliveries))},
	}
	if err = s.insert(ctx, tx, "ipl_import_meta", []string{"meta_key", "meta_value"}, meta); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// insert writes rows with multi-row INSERTs of at most batchSize rows.
func (s *SQLStore) insert(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]any) error {
	tuple := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	head := fmt.Sprintf("INSERT INTO %s (%s) VALUES ", table, strings.Join(columns, ", "))

	for lo := 0; lo < len(rows); lo += s.opts.batchSize {
		hi := min(lo+s.opts.batchSize, len(rows))
		tuples := make([]string, 0, hi-lo)
		args := make([]any, 0, (hi-lo)*len(columns))
		for _, r := range rows[lo:hi] {
			tuples = append(tuples, tuple)
			args = append(args, r...)
		}
		q := s.rebind(head + strings.Join(tuples, ", "))
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	return nil
}

func (s *SQLStore) Count(ctx context.Context) (Counts, error) {
	defer s.observe("count", time.Now())

	var c Counts
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ipl_matches").Scan(&c.Matches); err != nil {
		return Counts{}, fmt.Errorf("count matches: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ipl_deliveries").Scan(&c.Deliveries); err != nil {
		return Counts{}, fmt.Errorf("count deliveries: %w", err)
	}
	return c, nil
}

var _ MetaReader = (*SQLStore)(nil)

// ImportMeta returns the bookkeeping rows written by the last ReplaceAll.
func (s *SQLStore) ImportMeta(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT meta_key, meta_value FROM ipl_import_meta")
	if err != nil {
		return nil, fmt.Errorf("query import meta: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan import meta: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
