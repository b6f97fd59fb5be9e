package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/matthewbaird/snippetchooser/internal/app"
	"github.com/matthewbaird/snippetchooser/internal/chooser"
	"github.com/matthewbaird/snippetchooser/internal/config"
	"github.com/matthewbaird/snippetchooser/internal/eventbus"
	"github.com/matthewbaird/snippetchooser/internal/locale"
	"github.com/matthewbaird/snippetchooser/internal/search"
	"github.com/matthewbaird/snippetchooser/internal/server"
	"github.com/matthewbaird/snippetchooser/internal/store"
	"github.com/matthewbaird/snippetchooser/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	a, err := app.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("opening app: %v", err)
	}
	defer a.Close()

	if err := a.Migrate(ctx); err != nil {
		log.Fatalf("running schema migration: %v", err)
	}
	log.Println("database migrated successfully")

	locales, err := locale.NewCachedRegistry(a.Locales, cfg.LocaleCacheSize)
	if err != nil {
		log.Fatalf("creating locale cache: %v", err)
	}

	// Build the search index from the store, then keep it current from
	// snippet events.
	index := search.NewIndex()
	for _, ct := range a.Registry.All() {
		if !ct.Indexed {
			continue
		}
		records, err := a.Store.QueryAll(ctx, ct)
		if err != nil {
			log.Fatalf("indexing %s: %v", ct.Key(), err)
		}
		index.Rebuild(ct, records)
	}
	log.Printf("search index built (%d documents)", index.Len())

	bus := eventbus.New(cfg.EventBuffer)
	bus.Subscribe("log", eventbus.NewLogConsumer())
	bus.Subscribe("search_sync", worker.NewSearchSyncWorker(index))
	bus.Start(ctx)
	defer bus.Stop()

	snippets := store.NewPublishing(a.Store, bus)
	c := chooser.New(snippets, index, locales, chooser.WithURLs(chooser.NewURLs(cfg.AdminPrefix)))

	if err := server.Run(ctx, server.Config{
		Port:           cfg.Port,
		Chooser:        c,
		ContentTypes:   a.Registry,
		Store:          snippets,
		Locales:        locales,
		AllowedOrigins: cfg.AllowedOrigins,
	}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
