package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	snippetColumnsDDL = []*schema.Column{
		{Name: "app_label", Type: field.TypeString, Size: 100},
		{Name: "model_name", Type: field.TypeString, Size: 100},
		{Name: "id", Type: field.TypeString, Size: 255},
		{Name: "label", Type: field.TypeString},
		{Name: "locale", Type: field.TypeString, Size: 20},
		{Name: "created_at", Type: field.TypeInt64},
	}

	// SnippetsTable is the ent schema of the snippets table.
	SnippetsTable = &schema.Table{
		Name:       snippetsTable,
		Columns:    snippetColumnsDDL,
		PrimaryKey: snippetColumnsDDL[0:3],
	}
)

// Migrate creates or updates tables on db through ent's schema migration.
// Columns and tables that are not declared are left alone.
func Migrate(ctx context.Context, db *sql.DB, dialectName string, tables ...*schema.Table) error {
	m, err := schema.NewMigrate(entsql.OpenDB(dialectName, db))
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}
