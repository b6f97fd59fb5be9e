package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/snippetchooser/internal/chooser"
	"github.com/matthewbaird/snippetchooser/internal/locale"
	"github.com/matthewbaird/snippetchooser/internal/registry"
	"github.com/matthewbaird/snippetchooser/internal/search"
	"github.com/matthewbaird/snippetchooser/internal/store"
	"github.com/matthewbaird/snippetchooser/internal/types"
)

func newTestRouter(t *testing.T, prefix string) http.Handler {
	t.Helper()
	reg := registry.New()
	cts, err := registry.Defaults()
	require.NoError(t, err)
	require.NoError(t, reg.RegisterAll(cts))

	st := store.NewMemoryStore(types.Record{ID: "1", AppLabel: "tests", ModelName: "advert", Label: "Advert one"})
	locales := locale.NewMemoryRegistry(types.Locale{Code: "en", DisplayName: "English"})
	c := chooser.New(st, search.NewIndex(), locales, chooser.WithURLs(chooser.NewURLs(prefix)))

	return NewRouter(Config{
		Chooser:      c,
		ContentTypes: reg,
		Store:        st,
		Locales:      locales,
	})
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	rec := get(newTestRouter(t, ""), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRoutes_DefaultPrefix(t *testing.T) {
	h := newTestRouter(t, "")
	for _, path := range []string{
		"/admin/snippets/",
		"/admin/snippets/choose/tests/advert/",
		"/admin/snippets/choose/tests/advert/results/",
		"/admin/snippets/choose/tests/advert/chosen/1/",
	} {
		assert.Equal(t, http.StatusOK, get(h, path).Code, path)
	}
	assert.Equal(t, http.StatusNotFound, get(h, "/cms/snippets/").Code)
}

func TestRoutes_CustomPrefix(t *testing.T) {
	h := newTestRouter(t, "/cms/snippets/")

	rec := get(h, "/cms/snippets/choose/tests/advert/chosen/1/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"edit_url":"/cms/snippets/tests/advert/edit/1/"`)

	req := httptest.NewRequest(http.MethodPost, "/cms/snippets/tests/advert/add/", strings.NewReader(`{"label":"Two"}`))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
