// Package server assembles the chooser HTTP routes and runs the server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matthewbaird/snippetchooser/internal/chooser"
	"github.com/matthewbaird/snippetchooser/internal/handler"
	"github.com/matthewbaird/snippetchooser/internal/locale"
	"github.com/matthewbaird/snippetchooser/internal/store"
)

// Config holds server configuration and its collaborators.
type Config struct {
	Port           int
	Chooser        *chooser.Chooser
	ContentTypes   handler.ContentTypes
	Store          store.Store
	Locales        locale.Registry
	AllowedOrigins []string // cross-origin patterns for the live websocket
}

// NewRouter returns the chi router with every chooser route registered.
func NewRouter(cfg Config) chi.Router {
	r := chi.NewRouter()
	r.Use(handler.Recovery, handler.Logging)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	handler.Mount(r, handler.Deps{
		Chooser:        cfg.Chooser,
		ContentTypes:   cfg.ContentTypes,
		Store:          cfg.Store,
		Locales:        cfg.Locales,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	return r
}

// Run starts the HTTP server and shuts it down when ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server: shutdown: %v", err)
		}
	}()

	log.Printf("server: listening on %s (%d content types)", addr, len(cfg.ContentTypes.All()))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
