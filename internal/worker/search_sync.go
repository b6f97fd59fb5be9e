// Package worker holds the background consumers of the snippet event bus.
package worker

import (
	"context"
	"log"

	"github.com/matthewbaird/snippetchooser/internal/event"
	"github.com/matthewbaird/snippetchooser/internal/types"
)

// Indexer is the write side of the search index.
type Indexer interface {
	Put(rec types.Record)
	Remove(app, model, id string)
}

// SearchSyncWorker consumes snippet events and keeps the search index in
// step with the store.
type SearchSyncWorker struct {
	index Indexer
}

// NewSearchSyncWorker creates a worker that maintains index.
func NewSearchSyncWorker(index Indexer) *SearchSyncWorker {
	return &SearchSyncWorker{index: index}
}

// HandleEvent applies one snippet event to the index.
func (w *SearchSyncWorker) HandleEvent(_ context.Context, evt event.DomainEvent) error {
	switch evt.EventType {
	case event.SnippetSaved:
		rec, err := evt.Record()
		if err != nil {
			return err
		}
		w.index.Put(rec)
		log.Printf("search_sync: indexed %s.%s/%s", rec.AppLabel, rec.ModelName, rec.ID)
	case event.SnippetDeleted:
		w.index.Remove(evt.AppLabel, evt.ModelName, evt.EntityID)
		log.Printf("search_sync: removed %s.%s/%s", evt.AppLabel, evt.ModelName, evt.EntityID)
	}
	return nil
}
