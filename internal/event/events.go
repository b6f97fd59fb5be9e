// Package event defines the domain events emitted when snippets change.
// Events are published to the in-process bus after the store write
// succeeds; the search sync worker consumes them.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/matthewbaird/snippetchooser/internal/types"
)

// Event types.
const (
	SnippetSaved   = "snippet_saved"
	SnippetDeleted = "snippet_deleted"
)

// DomainEvent carries the canonical shape of every snippet event.
type DomainEvent struct {
	ID         string          `json:"id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	AppLabel   string          `json:"app_label"`
	ModelName  string          `json:"model_name"`
	EntityID   string          `json:"entity_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// Publisher sends domain events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, evt DomainEvent)
}

// Summary returns a one-line description used in logs.
func (e DomainEvent) Summary() string {
	return fmt.Sprintf("%s %s.%s/%s", e.EventType, e.AppLabel, e.ModelName, e.EntityID)
}

// Record decodes the snippet carried by a saved event.
func (e DomainEvent) Record() (types.Record, error) {
	var rec types.Record
	if len(e.Payload) == 0 {
		return rec, fmt.Errorf("event %s has no payload", e.ID)
	}
	if err := json.Unmarshal(e.Payload, &rec); err != nil {
		return rec, fmt.Errorf("decoding %s payload: %w", e.EventType, err)
	}
	return rec, nil
}

func newID() string { return uuid.New().String() }

func mustJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

// NewSnippetSaved builds the event for an inserted or updated snippet.
func NewSnippetSaved(rec types.Record) DomainEvent {
	return DomainEvent{
		ID:         newID(),
		EventType:  SnippetSaved,
		OccurredAt: time.Now(),
		AppLabel:   rec.AppLabel,
		ModelName:  rec.ModelName,
		EntityID:   rec.ID,
		Payload:    mustJSON(rec),
	}
}

// NewSnippetDeleted builds the event for a removed snippet.
func NewSnippetDeleted(ct types.ContentType, id string) DomainEvent {
	return DomainEvent{
		ID:         newID(),
		EventType:  SnippetDeleted,
		OccurredAt: time.Now(),
		AppLabel:   ct.AppLabel,
		ModelName:  ct.ModelName,
		EntityID:   id,
	}
}
