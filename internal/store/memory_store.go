package store

import (
	"context"
	"sort"
	"sync"

	"github.com/matthewbaird/snippetchooser/internal/types"
)

// MemoryStore implements Store using an in-memory slice.
// Used by tests and the demo seed path.
type MemoryStore struct {
	mu      sync.RWMutex
	records []types.Record
	last    int64 // highest CreatedAt seen
}

// NewMemoryStore creates a MemoryStore holding the given records.
func NewMemoryStore(records ...types.Record) *MemoryStore {
	s := &MemoryStore{}
	for _, r := range records {
		s.put(r)
	}
	return s
}

func (s *MemoryStore) QueryAll(_ context.Context, ct types.ContentType) ([]types.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []types.Record
	for _, r := range s.records {
		if r.AppLabel == ct.AppLabel && r.ModelName == ct.ModelName {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt < matched[j].CreatedAt
	})
	return matched, nil
}

func (s *MemoryStore) FilterByLocale(_ context.Context, records []types.Record, code string) ([]types.Record, error) {
	return filterByLocale(records, code), nil
}

func (s *MemoryStore) GetByID(_ context.Context, ct types.ContentType, id string) (types.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.index(ct.AppLabel, ct.ModelName, id); i >= 0 {
		return s.records[i], true, nil
	}
	return types.Record{}, false, nil
}

func (s *MemoryStore) Save(_ context.Context, rec types.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(rec)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, ct types.ContentType, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(ct.AppLabel, ct.ModelName, id); i >= 0 {
		s.records = append(s.records[:i], s.records[i+1:]...)
	}
	return nil
}

// put inserts or replaces rec. Callers hold the write lock.
func (s *MemoryStore) put(rec types.Record) {
	if i := s.index(rec.AppLabel, rec.ModelName, rec.ID); i >= 0 {
		if rec.CreatedAt == 0 {
			rec.CreatedAt = s.records[i].CreatedAt
		}
		s.records[i] = rec
		return
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = s.last + 1
	}
	if rec.CreatedAt > s.last {
		s.last = rec.CreatedAt
	}
	s.records = append(s.records, rec)
}

func (s *MemoryStore) index(app, model, id string) int {
	for i, r := range s.records {
		if r.AppLabel == app && r.ModelName == model && r.ID == id {
			return i
		}
	}
	return -1
}
