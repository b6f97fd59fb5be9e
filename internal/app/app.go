// Package app wires the chooser's collaborators from configuration. It is
// shared by the server binary and the operator CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/matthewbaird/snippetchooser/internal/config"
	"github.com/matthewbaird/snippetchooser/internal/locale"
	"github.com/matthewbaird/snippetchooser/internal/registry"
	"github.com/matthewbaird/snippetchooser/internal/store"
	"github.com/matthewbaird/snippetchooser/internal/types"
)

// App holds the opened database and the collaborators built on it.
type App struct {
	DB       *sql.DB
	Dialect  string
	Store    *store.SQLStore
	Locales  *locale.SQLRegistry
	Registry *registry.Registry
}

// Open connects to the configured database and loads the content types.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	cts, err := loadContentTypes(cfg)
	if err != nil {
		return nil, err
	}
	reg := registry.New()
	if err := reg.RegisterAll(cts); err != nil {
		return nil, fmt.Errorf("registering content types: %w", err)
	}

	db, dialectName, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	log.Printf("app: database dialect %s, %d content types", dialectName, len(cts))

	return &App{
		DB:       db,
		Dialect:  dialectName,
		Store:    store.NewSQLStore(db, dialectName),
		Locales:  locale.NewSQLRegistry(db, dialectName),
		Registry: reg,
	}, nil
}

// Migrate creates or updates the snippets and locales tables.
func (a *App) Migrate(ctx context.Context) error {
	return store.Migrate(ctx, a.DB, a.Dialect, store.SnippetsTable, locale.LocalesTable)
}

// Close closes the database.
func (a *App) Close() error {
	return a.DB.Close()
}

func loadContentTypes(cfg *config.Config) ([]types.ContentType, error) {
	if cfg.ContentTypesFile == "" {
		return registry.Defaults()
	}
	return registry.LoadFile(cfg.ContentTypesFile)
}
