package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/matthewbaird/snippetchooser/internal/types"
)

const snippetsTable = "snippets"

var snippetColumns = []string{"id", "app_label", "model_name", "label", "locale", "created_at"}

// SQLStore implements Store on a relational table. Statements are built
// with ent's SQL builder so the same code serves SQLite and Postgres.
type SQLStore struct {
	db      *sql.DB
	dialect string
}

// NewSQLStore creates an SQLStore. dialectName is one of ent's dialect
// names (dialect.SQLite or dialect.Postgres).
func NewSQLStore(db *sql.DB, dialectName string) *SQLStore {
	return &SQLStore{db: db, dialect: dialectName}
}

// CreateTable creates the snippets table if it does not exist.
func (s *SQLStore) CreateTable(ctx context.Context) error {
	return Migrate(ctx, s.db, s.dialect, SnippetsTable)
}

func (s *SQLStore) QueryAll(ctx context.Context, ct types.ContentType) ([]types.Record, error) {
	query, args := entsql.Dialect(s.dialect).
		Select(snippetColumns...).
		From(entsql.Table(snippetsTable)).
		Where(entsql.And(
			entsql.EQ("app_label", ct.AppLabel),
			entsql.EQ("model_name", ct.ModelName),
		)).
		OrderBy("created_at", "id").
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying snippets: %w", err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snippets: %w", err)
	}
	return records, nil
}

func (s *SQLStore) FilterByLocale(_ context.Context, records []types.Record, code string) ([]types.Record, error) {
	return filterByLocale(records, code), nil
}

func (s *SQLStore) GetByID(ctx context.Context, ct types.ContentType, id string) (types.Record, bool, error) {
	query, args := entsql.Dialect(s.dialect).
		Select(snippetColumns...).
		From(entsql.Table(snippetsTable)).
		Where(entsql.And(
			entsql.EQ("app_label", ct.AppLabel),
			entsql.EQ("model_name", ct.ModelName),
			entsql.EQ("id", id),
		)).
		Limit(1).
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return types.Record{}, false, fmt.Errorf("loading snippet %s: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return types.Record{}, false, rows.Err()
	}
	rec, err := scanRecord(rows)
	if err != nil {
		return types.Record{}, false, err
	}
	return rec, true, nil
}

// Save upserts rec. An existing row keeps its created_at so the store
// order is stable across edits.
func (s *SQLStore) Save(ctx context.Context, rec types.Record) error {
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().UnixNano()
	}
	query, args := entsql.Dialect(s.dialect).
		Insert(snippetsTable).
		Columns("app_label", "model_name", "id", "label", "locale", "created_at").
		Values(rec.AppLabel, rec.ModelName, rec.ID, rec.Label, rec.Locale, rec.CreatedAt).
		OnConflict(
			entsql.ConflictColumns("app_label", "model_name", "id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("label")
				u.SetExcluded("locale")
			}),
		).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("saving snippet %s: %w", rec.ID, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, ct types.ContentType, id string) error {
	query, args := entsql.Dialect(s.dialect).
		Delete(snippetsTable).
		Where(entsql.And(
			entsql.EQ("app_label", ct.AppLabel),
			entsql.EQ("model_name", ct.ModelName),
			entsql.EQ("id", id),
		)).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deleting snippet %s: %w", id, err)
	}
	return nil
}

func scanRecord(rows *sql.Rows) (types.Record, error) {
	var rec types.Record
	if err := rows.Scan(&rec.ID, &rec.AppLabel, &rec.ModelName, &rec.Label, &rec.Locale, &rec.CreatedAt); err != nil {
		return types.Record{}, fmt.Errorf("scanning snippet: %w", err)
	}
	return rec, nil
}
