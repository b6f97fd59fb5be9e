package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/snippetchooser/internal/chooser"
	"github.com/matthewbaird/snippetchooser/internal/locale"
	"github.com/matthewbaird/snippetchooser/internal/registry"
	"github.com/matthewbaird/snippetchooser/internal/search"
	"github.com/matthewbaird/snippetchooser/internal/store"
	"github.com/matthewbaird/snippetchooser/internal/types"
)

type fixture struct {
	router  chi.Router
	store   *store.MemoryStore
	reg     *registry.Registry
	chooser *chooser.Chooser
}

func snippet(app, model, id, label, loc string) types.Record {
	return types.Record{ID: id, AppLabel: app, ModelName: model, Label: label, Locale: loc}
}

// newFixture mounts the chooser routes over in-memory collaborators.
func newFixture(t *testing.T, records ...types.Record) *fixture {
	t.Helper()

	reg := registry.New()
	cts, err := registry.Defaults()
	require.NoError(t, err)
	require.NoError(t, reg.RegisterAll(cts))

	st := store.NewMemoryStore(records...)
	locales := locale.NewMemoryRegistry(
		types.Locale{Code: "en", DisplayName: "English"},
		types.Locale{Code: "fr", DisplayName: "French"},
	)
	c := chooser.New(st, search.NewIndex(), locales)

	r := chi.NewRouter()
	r.Use(Recovery, Logging)
	Mount(r, Deps{Chooser: c, ContentTypes: reg, Store: st, Locales: locales})

	return &fixture{router: r, store: st, reg: reg, chooser: c}
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func people(n int) []types.Record {
	out := make([]types.Record, n)
	for i := range out {
		out[i] = snippet("base", "person", fmt.Sprint(i+1), fmt.Sprintf("Person %d", i+1), "en")
	}
	return out
}
