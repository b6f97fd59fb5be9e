package store

import (
	"context"

	"github.com/matthewbaird/snippetchooser/internal/event"
	"github.com/matthewbaird/snippetchooser/internal/types"
)

// Publishing wraps a Store and publishes a domain event after every
// successful write. Reads pass straight through.
type Publishing struct {
	Store
	bus event.Publisher
}

// NewPublishing returns s with writes announced on bus.
func NewPublishing(s Store, bus event.Publisher) *Publishing {
	return &Publishing{Store: s, bus: bus}
}

// Save writes rec, then publishes snippet_saved with the stored record.
func (p *Publishing) Save(ctx context.Context, rec types.Record) error {
	if err := p.Store.Save(ctx, rec); err != nil {
		return err
	}
	ct := types.ContentType{AppLabel: rec.AppLabel, ModelName: rec.ModelName}
	if stored, ok, err := p.Store.GetByID(ctx, ct, rec.ID); err == nil && ok {
		rec = stored
	}
	p.bus.Publish(ctx, event.NewSnippetSaved(rec))
	return nil
}

// Delete removes the record, then publishes snippet_deleted.
func (p *Publishing) Delete(ctx context.Context, ct types.ContentType, id string) error {
	if err := p.Store.Delete(ctx, ct, id); err != nil {
		return err
	}
	p.bus.Publish(ctx, event.NewSnippetDeleted(ct, id))
	return nil
}
