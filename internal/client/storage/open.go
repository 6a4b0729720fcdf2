package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/benchauth/internal/client/migrations"
	"github.com/dmitrijs2005/benchauth/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory SQLite database.
const MemoryDSN = ":memory:"

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the SQLite file at path, migrates it and
// returns a store plus a function that closes the database.
func Open(ctx context.Context, path string, busyTimeout time.Duration) (*SQLiteStore, func() error, error) {
	if path != MemoryDSN {
		abs, err := filex.EnsureParentDir(path)
		if err != nil {
			return nil, nil, err
		}
		path = abs
	}

	db, err := sql.Open("sqlite", dsn(path, busyTimeout))
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	if path == MemoryDSN {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return NewSQLiteStore(db), db.Close, nil
}

func dsn(path string, busyTimeout time.Duration) string {
	if busyTimeout <= 0 {
		return path
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", path, busyTimeout.Milliseconds())
}
