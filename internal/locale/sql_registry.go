package locale

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/matthewbaird/snippetchooser/internal/store"
	"github.com/matthewbaird/snippetchooser/internal/types"
)

const localesTable = "locales"

var localeColumns = []*schema.Column{
	{Name: "language_code", Type: field.TypeString, Size: 20},
	{Name: "display_name", Type: field.TypeString, Size: 255},
	{Name: "position", Type: field.TypeInt, Default: 0},
}

// LocalesTable is the ent schema of the locales table.
var LocalesTable = &schema.Table{
	Name:       localesTable,
	Columns:    localeColumns,
	PrimaryKey: localeColumns[0:1],
}

// SQLRegistry implements Registry on the locales table.
type SQLRegistry struct {
	db      *sql.DB
	dialect string
}

// NewSQLRegistry creates an SQLRegistry for the given ent dialect.
func NewSQLRegistry(db *sql.DB, dialectName string) *SQLRegistry {
	return &SQLRegistry{db: db, dialect: dialectName}
}

// CreateTable creates the locales table if it does not exist.
func (r *SQLRegistry) CreateTable(ctx context.Context) error {
	return store.Migrate(ctx, r.db, r.dialect, LocalesTable)
}

func (r *SQLRegistry) ListLocales(ctx context.Context) ([]types.Locale, error) {
	query, args := entsql.Dialect(r.dialect).
		Select("language_code", "display_name").
		From(entsql.Table(localesTable)).
		OrderBy("position", "language_code").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing locales: %w", err)
	}
	defer rows.Close()

	var locales []types.Locale
	for rows.Next() {
		var l types.Locale
		if err := rows.Scan(&l.Code, &l.DisplayName); err != nil {
			return nil, fmt.Errorf("scanning locale: %w", err)
		}
		locales = append(locales, l)
	}
	return locales, rows.Err()
}

func (r *SQLRegistry) Resolve(ctx context.Context, code string) (types.Locale, bool, error) {
	query, args := entsql.Dialect(r.dialect).
		Select("language_code", "display_name").
		From(entsql.Table(localesTable)).
		Where(entsql.EQ("language_code", code)).
		Limit(1).
		Query()

	var l types.Locale
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&l.Code, &l.DisplayName)
	if err == sql.ErrNoRows {
		return types.Locale{}, false, nil
	}
	if err != nil {
		return types.Locale{}, false, fmt.Errorf("resolving locale %q: %w", code, err)
	}
	return l, true, nil
}

// Add inserts loc after the existing locales, or renames it if the code
// is already registered.
func (r *SQLRegistry) Add(ctx context.Context, loc types.Locale) error {
	var next int
	countQuery, countArgs := entsql.Dialect(r.dialect).
		Select(entsql.Count("*")).
		From(entsql.Table(localesTable)).
		Query()
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&next); err != nil {
		return fmt.Errorf("counting locales: %w", err)
	}

	query, args := entsql.Dialect(r.dialect).
		Insert(localesTable).
		Columns("language_code", "display_name", "position").
		Values(loc.Code, loc.DisplayName, next).
		OnConflict(
			entsql.ConflictColumns("language_code"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("display_name")
			}),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("adding locale %q: %w", loc.Code, err)
	}
	return nil
}
