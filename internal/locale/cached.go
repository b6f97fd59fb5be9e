package locale

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/matthewbaird/snippetchooser/internal/types"
)

// CachedRegistry fronts a Registry with an LRU cache of resolved locales.
// Misses are not cached, so a locale added later resolves on the next call.
type CachedRegistry struct {
	next  Registry
	cache *lru.Cache[string, types.Locale]
}

// NewCachedRegistry wraps next with a cache of the given size.
func NewCachedRegistry(next Registry, size int) (*CachedRegistry, error) {
	if size < 1 {
		size = 128
	}
	cache, err := lru.New[string, types.Locale](size)
	if err != nil {
		return nil, fmt.Errorf("creating locale cache: %w", err)
	}
	return &CachedRegistry{next: next, cache: cache}, nil
}

func (r *CachedRegistry) ListLocales(ctx context.Context) ([]types.Locale, error) {
	return r.next.ListLocales(ctx)
}

func (r *CachedRegistry) Resolve(ctx context.Context, code string) (types.Locale, bool, error) {
	if l, ok := r.cache.Get(code); ok {
		return l, true, nil
	}
	l, ok, err := r.next.Resolve(ctx, code)
	if err != nil || !ok {
		return l, ok, err
	}
	r.cache.Add(code, l)
	return l, true, nil
}

// Invalidate drops code from the cache.
func (r *CachedRegistry) Invalidate(code string) {
	r.cache.Remove(code)
}
