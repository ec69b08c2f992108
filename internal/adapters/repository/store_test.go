package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/iplstats/internal/domain/model"
)

func sampleData() ([]model.Match, []model.Delivery) {
	matches := []model.Match{
		{
			MatchID: 1, Season: 2017, Date: time.Date(2017, 4, 5, 0, 0, 0, 0, time.UTC),
			Venue: "Rajiv Gandhi International Stadium, Uppal", City: "Hyderabad",
			Team1: "Sunrisers Hyderabad", Team2: "Royal Challengers Bangalore",
			TossWinner: "Royal Challengers Bangalore", TossDecision: "field",
			Winner: "Sunrisers Hyderabad", Result: "normal", PlayerOfMatch: "Yuvraj Singh",
			Umpire1: "AY Dandekar", Umpire2: "NJ Llong",
		},
		{
			MatchID: 2, Season: 2017, Date: time.Date(2017, 4, 6, 0, 0, 0, 0, time.UTC),
			Venue: "Maharashtra Cricket Association Stadium", City: "Pune",
			Team1: "Mumbai Indians", Team2: "Rising Pune Supergiant",
			Result: "no result",
		},
	}
	deliveries := []model.Delivery{
		{MatchID: 1, Inning: 1, Over: 1, Ball: 1, BattingTeam: "Sunrisers Hyderabad", BowlingTeam: "Royal Challengers Bangalore",
			Batsman: "DA Warner", NonStriker: "S Dhawan", Bowler: "TS Mills", BatsmanRuns: 0, TotalRuns: 0},
		{MatchID: 1, Inning: 1, Over: 1, Ball: 2, BattingTeam: "Sunrisers Hyderabad", BowlingTeam: "Royal Challengers Bangalore",
			Batsman: "DA Warner", NonStriker: "S Dhawan", Bowler: "TS Mills", WideRuns: 2, ExtraRuns: 2, TotalRuns: 2},
		{MatchID: 1, Inning: 1, Over: 1, Ball: 2, BattingTeam: "Sunrisers Hyderabad", BowlingTeam: "Royal Challengers Bangalore",
			Batsman: "DA Warner", NonStriker: "S Dhawan", Bowler: "TS Mills", BatsmanRuns: 4, TotalRuns: 4},
		{MatchID: 1, Inning: 1, Over: 1, Ball: 3, BattingTeam: "Sunrisers Hyderabad", BowlingTeam: "Royal Challengers Bangalore",
			Batsman: "DA Warner", NonStriker: "S Dhawan", Bowler: "TS Mills",
			PlayerDismissed: "DA Warner", DismissalKind: "caught", DismissalFielders: "Mandeep Singh"},
		{MatchID: 1, Inning: 3, Over: 1, Ball: 1, BattingTeam: "Sunrisers Hyderabad", BowlingTeam: "Royal Challengers Bangalore",
			Batsman: "S Dhawan", NonStriker: "KS Williamson", Bowler: "YS Chahal", IsSuperOver: true, BatsmanRuns: 6, TotalRuns: 6},
	}
	return matches, deliveries
}

// storeContract runs the same expectations against any backend.
func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	matches, deliveries := sampleData()

	c, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{}, c)

	require.NoError(t, s.ReplaceAll(ctx, matches, deliveries))

	c, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{Matches: 2, Deliveries: 5}, c)

	gotMatches, err := s.Matches(ctx)
	require.NoError(t, err)
	require.Len(t, gotMatches, 2)
	assert.Equal(t, matches[0], gotMatches[0])
	assert.Equal(t, "no result", gotMatches[1].Result)

	gotDeliveries, err := s.Deliveries(ctx)
	require.NoError(t, err)
	assert.Equal(t, deliveries, gotDeliveries, "order and every field survive, including same-ball extras")

	// a second import replaces rather than appends
	require.NoError(t, s.ReplaceAll(ctx, matches[:1], deliveries[:2]))
	c, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{Matches: 1, Deliveries: 2}, c)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	storeContract(t, s)

	got, err := s.Matches(context.Background())
	require.NoError(t, err)
	got[0].Venue = "changed"
	again, err := s.Matches(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again[0].Venue, "callers get copies")

	require.NoError(t, s.Close())
	_, err = s.Deliveries(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "ipl.db")

	s, err := Open(ctx, SQLiteBackend, dsn, WithBatchSize(2))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	storeContract(t, s)

	meta, err := s.(*SQLStore).ImportMeta(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", meta["deliveries"])
	assert.NotEmpty(t, meta["imported_at"])
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "migrate.db")

	res, err := Migrate(ctx, SQLiteBackend, dsn, LatestVersion)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, uint(2), res.To)

	res, err = Migrate(ctx, SQLiteBackend, dsn, LatestVersion)
	require.NoError(t, err)
	assert.False(t, res.Changed, "already at the latest version")

	res, err = Migrate(ctx, SQLiteBackend, dsn, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(2), res.From)
	assert.Equal(t, uint(1), res.To)

	res, err = Migrate(ctx, SQLiteBackend, dsn, 0)
	require.NoError(t, err)
	assert.True(t, res.Changed)

	_, err = Migrate(ctx, MemoryBackend, "", LatestVersion)
	assert.ErrorIs(t, err, ErrUnsupportedBackend)
}

func TestParseBackend(t *testing.T) {
	for in, want := range map[string]Backend{
		"":           MemoryBackend,
		"SQLite":     SQLiteBackend,
		"postgresql": PostgresBackend,
		"mysql":      MySQLBackend,
	} {
		got, err := ParseBackend(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseBackend("mongo")
	assert.ErrorIs(t, err, ErrUnsupportedBackend)

	_, err = Open(context.Background(), SQLiteBackend, "")
	assert.ErrorIs(t, err, ErrMissingDSN)
}
