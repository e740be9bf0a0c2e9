// Package storage bootstraps the local SQLite database that backs the
// persisted session.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/idkeeper/internal/client/migrations"
	"github.com/dmitrijs2005/idkeeper/internal/logging"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// RunMigrations applies the embedded goose migrations to db. Re-running it
// on an up-to-date database is a no-op. Applied migrations are reported to
// log; goose itself prints nothing, so the REPL output stays clean.
func RunMigrations(ctx context.Context, db *sql.DB, log logging.Logger) error {
	p, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	results, err := p.Up(ctx)
	if err != nil {
		return err
	}
	for _, r := range results {
		log.Debug(ctx, "migration applied", "version", r.Source.Version, "file", r.Source.Path, "duration", r.Duration)
	}
	return nil
}

// InitDatabase opens (creating if needed) the SQLite file at dsn and brings
// its schema up to date.
func InitDatabase(ctx context.Context, dsn string, log logging.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// A single connection serializes writers; SQLite would otherwise return
	// SQLITE_BUSY under concurrent session updates.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dsn, err)
	}

	return db, nil
}
