// Package locale provides the locale registry consulted by the chooser's
// locale filter.
package locale

import (
	"context"
	"sync"

	"github.com/matthewbaird/snippetchooser/internal/types"
)

// Registry lists and resolves registered locales.
type Registry interface {
	ListLocales(ctx context.Context) ([]types.Locale, error)
	Resolve(ctx context.Context, code string) (types.Locale, bool, error)
}

// MemoryRegistry is a fixed, in-memory Registry.
type MemoryRegistry struct {
	mu      sync.RWMutex
	locales []types.Locale
}

// NewMemoryRegistry creates a MemoryRegistry holding locales in the given order.
func NewMemoryRegistry(locales ...types.Locale) *MemoryRegistry {
	return &MemoryRegistry{locales: append([]types.Locale(nil), locales...)}
}

func (r *MemoryRegistry) ListLocales(_ context.Context) ([]types.Locale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]types.Locale(nil), r.locales...), nil
}

func (r *MemoryRegistry) Resolve(_ context.Context, code string) (types.Locale, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.locales {
		if l.Code == code {
			return l, true, nil
		}
	}
	return types.Locale{}, false, nil
}

// Add registers loc, replacing an existing locale with the same code.
func (r *MemoryRegistry) Add(_ context.Context, loc types.Locale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.locales {
		if l.Code == loc.Code {
			r.locales[i] = loc
			return nil
		}
	}
	r.locales = append(r.locales, loc)
	return nil
}
