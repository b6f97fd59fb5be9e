// Package registry holds the content types that can be chosen.
//
// Descriptors are registered once at startup, usually from a CUE document,
// and are read concurrently by every request afterwards.
package registry

import (
	"sync"

	"github.com/matthewbaird/snippetchooser/internal/chooser"
	"github.com/matthewbaird/snippetchooser/internal/types"
)

// Registry maps "app_label.model_name" to a content type descriptor.
type Registry struct {
	mu    sync.RWMutex
	types map[string]types.ContentType
	order []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{types: make(map[string]types.ContentType)}
}

// Register adds ct. Descriptors without app label or model name, and
// duplicates, are rejected.
func (r *Registry) Register(ct types.ContentType) error {
	if ct.AppLabel == "" || ct.ModelName == "" {
		return &chooser.ValidationError{Field: "content type", Reason: "app_label and model_name are required"}
	}
	if ct.VerboseName == "" {
		ct.VerboseName = ct.ModelName
	}
	if ct.VerboseNamePlural == "" {
		ct.VerboseNamePlural = ct.VerboseName + "s"
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	key := ct.Key()
	if _, ok := r.types[key]; ok {
		return &chooser.ValidationError{Field: "content type", Reason: key + " is already registered"}
	}
	r.types[key] = ct
	r.order = append(r.order, key)
	return nil
}

// RegisterAll registers every descriptor, stopping at the first error.
func (r *Registry) RegisterAll(cts []types.ContentType) error {
	for _, ct := range cts {
		if err := r.Register(ct); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the content type registered for app and model.
func (r *Registry) Lookup(app, model string) (types.ContentType, error) {
	key := app + "." + model
	r.mu.RLock()
	defer r.mu.RUnlock()
	ct, ok := r.types[key]
	if !ok {
		return types.ContentType{}, &chooser.NotFoundError{Kind: "content type", Key: key}
	}
	return ct, nil
}

// All returns every content type in registration order.
func (r *Registry) All() []types.ContentType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]types.ContentType, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.types[key])
	}
	return out
}
