// Package store provides the snippet store used by the chooser: an
// in-memory implementation for tests and demos, and an SQL implementation
// for SQLite or Postgres.
package store

import (
	"context"

	"github.com/matthewbaird/snippetchooser/internal/types"
)

// Store reads and writes snippets of any registered content type.
type Store interface {
	// QueryAll returns every record of the content type in creation order.
	QueryAll(ctx context.Context, ct types.ContentType) ([]types.Record, error)

	// FilterByLocale keeps the records whose locale equals code.
	FilterByLocale(ctx context.Context, records []types.Record, code string) ([]types.Record, error)

	// GetByID returns the record with id, or ok=false if there is none.
	GetByID(ctx context.Context, ct types.ContentType, id string) (types.Record, bool, error)

	// Save inserts or replaces a record.
	Save(ctx context.Context, rec types.Record) error

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, ct types.ContentType, id string) error
}

// filterByLocale is shared by every Store implementation: locale scoping
// happens on the already-loaded set so a request issues a single query.
func filterByLocale(records []types.Record, code string) []types.Record {
	out := make([]types.Record, 0, len(records))
	for _, r := range records {
		if r.Locale == code {
			out = append(out, r)
		}
	}
	return out
}
