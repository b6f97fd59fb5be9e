package chooser

import (
	"context"

	"github.com/matthewbaird/snippetchooser/internal/types"
)

// DataStore is the read side of the snippet store.
type DataStore interface {
	// QueryAll returns every record of the content type in store order.
	QueryAll(ctx context.Context, ct types.ContentType) ([]types.Record, error)

	// FilterByLocale restricts records to the given locale code.
	FilterByLocale(ctx context.Context, records []types.Record, code string) ([]types.Record, error)

	// GetByID looks up a single record. ok is false when it does not exist.
	GetByID(ctx context.Context, ct types.ContentType, id string) (rec types.Record, ok bool, err error)
}

// SearchBackend performs full-text search over an already-scoped record set.
type SearchBackend interface {
	Search(ctx context.Context, query string, records []types.Record) ([]types.Record, error)
}

// LocaleRegistry lists and resolves registered locales.
type LocaleRegistry interface {
	ListLocales(ctx context.Context) ([]types.Locale, error)
	Resolve(ctx context.Context, code string) (loc types.Locale, ok bool, err error)
}
