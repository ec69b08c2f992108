package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// LatestVersion migrates to the newest embedded migration.
const LatestVersion = -1

// MigrationResult reports the schema version before and after Migrate.
type MigrationResult struct {
	From    uint
	To      uint
	Changed bool
}

// Migrate moves the schema of a SQL backend to version. It opens and
// closes its own connection.
//   - version < 0 migrates to the latest version.
//   - version == 0 rolls every migration back.
//   - version > 0 migrates up or down to exactly that version.
func Migrate(ctx context.Context, backend Backend, dsn string, version int) (MigrationResult, error) {
	db, err := openDB(ctx, backend, dsn)
	if err != nil {
		return MigrationResult{}, err
	}
	defer func() { _ = db.Close() }()
	return migrateDB(db, backend, version)
}

func newMigrator(db *sql.DB, backend Backend) (*migrate.Migrate, error) {
	var (
		driver database.Driver
		err    error
	)
	switch backend {
	case SQLiteBackend:
		driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	case PostgresBackend:
		driver, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	case MySQLBackend:
		driver, err = migratemysql.WithInstance(db, &migratemysql.Config{})
	default:
		return nil, fmt.Errorf("%w: migrations need a SQL backend, got %q", ErrUnsupportedBackend, backend)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s migrate driver: %w", backend, err)
	}

	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("access migrations directory: %w", err)
	}
	src, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "iplstats", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

func migrateDB(db *sql.DB, backend Backend, version int) (MigrationResult, error) {
	m, err := newMigrator(db, backend)
	if err != nil {
		return MigrationResult{}, err
	}
	defer func() { _, _ = m.Close() }()

	var res MigrationResult
	current, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return res, fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		return res, fmt.Errorf("%w at version %d", ErrDirtyMigration, current)
	}
	res.From = current

	switch {
	case version < 0:
		err = m.Up()
	case version == 0:
		err = m.Down()
	default:
		err = m.Migrate(uint(version))
	}
	if errors.Is(err, migrate.ErrNoChange) {
		res.To = current
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("migrate to version %d: %w", version, err)
	}

	res.Changed = true
	if res.To, _, err = m.Version(); err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return res, fmt.Errorf("read migration version: %w", err)
	}
	return res, nil
}
