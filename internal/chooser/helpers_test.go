package chooser

import (
	"context"
	"errors"
	"fmt"

	"github.com/matthewbaird/snippetchooser/internal/locale"
	"github.com/matthewbaird/snippetchooser/internal/search"
	"github.com/matthewbaird/snippetchooser/internal/store"
	"github.com/matthewbaird/snippetchooser/internal/types"
)

var (
	plainType = types.ContentType{
		AppLabel: "tests", ModelName: "advert",
		VerboseName: "advert", VerboseNamePlural: "adverts",
	}
	fullType = types.ContentType{
		AppLabel: "base", ModelName: "person",
		VerboseName: "person", VerboseNamePlural: "people",
		Indexed: true, Translatable: true,
	}
)

func threeLocales() *locale.MemoryRegistry {
	return locale.NewMemoryRegistry(
		types.Locale{Code: "en", DisplayName: "English"},
		types.Locale{Code: "fr", DisplayName: "French"},
		types.Locale{Code: "de", DisplayName: "German"},
	)
}

func rec(ct types.ContentType, id, label, loc string) types.Record {
	return types.Record{ID: id, AppLabel: ct.AppLabel, ModelName: ct.ModelName, Label: label, Locale: loc}
}

// numbered returns n records of ct labelled "Item 1".."Item n".
func numbered(ct types.ContentType, n int) []types.Record {
	out := make([]types.Record, n)
	for i := range out {
		out[i] = rec(ct, fmt.Sprint(i+1), fmt.Sprintf("Item %d", i+1), "")
	}
	return out
}

func newTestChooser(records ...types.Record) *Chooser {
	return New(store.NewMemoryStore(records...), search.NewIndex(), threeLocales())
}

// recordingStore counts FilterByLocale calls and what the search saw.
type recordingStore struct {
	*store.MemoryStore
	localeCalls int
}

func (s *recordingStore) FilterByLocale(ctx context.Context, records []types.Record, code string) ([]types.Record, error) {
	s.localeCalls++
	return s.MemoryStore.FilterByLocale(ctx, records, code)
}

type recordingSearch struct {
	queries []string
	inputs  [][]types.Record
	next    search.Backend
}

func (s *recordingSearch) Search(ctx context.Context, q string, records []types.Record) ([]types.Record, error) {
	s.queries = append(s.queries, q)
	s.inputs = append(s.inputs, records)
	return s.next.Search(ctx, q, records)
}

var errBackend = errors.New("backend unavailable")

type failingStore struct{ store.Store }

func (failingStore) QueryAll(context.Context, types.ContentType) ([]types.Record, error) {
	return nil, errBackend
}

func (failingStore) GetByID(context.Context, types.ContentType, string) (types.Record, bool, error) {
	return types.Record{}, false, errBackend
}

type failingSearch struct{}

func (failingSearch) Search(context.Context, string, []types.Record) ([]types.Record, error) {
	return nil, errBackend
}
