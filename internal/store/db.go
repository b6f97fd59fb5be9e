package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"entgo.io/ent/dialect"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Open opens the database named by dsn and returns it with the matching
// ent dialect. postgres:// and postgresql:// URLs use pgx; anything else is
// treated as a SQLite DSN.
func Open(ctx context.Context, dsn string) (*sql.DB, string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, "", fmt.Errorf("opening postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, "", fmt.Errorf("connecting to postgres: %w", err)
		}
		return db, dialect.Postgres, nil
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, "", fmt.Errorf("opening sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	// SQLite needs foreign keys enabled per connection.
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("enabling foreign keys: %w", err)
	}
	return db, dialect.SQLite, nil
}
