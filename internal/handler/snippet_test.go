package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/snippetchooser/internal/chooser"
	"github.com/matthewbaird/snippetchooser/internal/types"
)

func TestHandleListTypes(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/admin/snippets/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		ContentTypes []struct {
			AppLabel  string `json:"app_label"`
			ModelName string `json:"model_name"`
			ChooseURL string `json:"choose_url"`
			AddURL    string `json:"add_url"`
		} `json:"content_types"`
	}](t, rec)
	require.Len(t, body.ContentTypes, 4)
	first := body.ContentTypes[0]
	assert.Equal(t, "base", first.AppLabel)
	assert.Equal(t, "footertext", first.ModelName)
	assert.Equal(t, "/admin/snippets/choose/base/footertext/", first.ChooseURL)
	assert.Equal(t, "/admin/snippets/base/footertext/add/", first.AddURL)
}

func TestHandleCreate(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/admin/snippets/base/person/add/", `{"id":"ada","label":" Ada Lovelace ","locale":"en"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	view := decode[chooser.ChosenView](t, rec)
	assert.Equal(t, chooser.StepChosen, view.Step)
	assert.Equal(t, "ada", view.Result.ID)
	assert.Equal(t, "Ada Lovelace", view.Result.Label)
	assert.Equal(t, "/admin/snippets/base/person/edit/ada/", view.Result.EditURL)

	got, ok, err := f.store.GetByID(context.Background(), types.ContentType{AppLabel: "base", ModelName: "person"}, "ada")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "en", got.Locale)

	rec = f.do(t, http.MethodPost, "/admin/snippets/base/person/add/", `{"id":"ada","label":"Again","locale":"en"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleCreate_GeneratesID(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/admin/snippets/tests/advert/add/", `{"label":"Banner"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	view := decode[chooser.ChosenView](t, rec)
	assert.Len(t, view.Result.ID, 36)

	records, err := f.store.QueryAll(context.Background(), types.ContentType{AppLabel: "tests", ModelName: "advert"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Locale, "locale is dropped for untranslatable types")
}

func TestHandleCreate_Rejects(t *testing.T) {
	f := newFixture(t)

	for _, tc := range []struct {
		name, path, body, code string
		status                 int
	}{
		{"bad json", "/admin/snippets/tests/advert/add/", `{`, "INVALID_BODY", http.StatusBadRequest},
		{"no label", "/admin/snippets/tests/advert/add/", `{"label":"  "}`, "MISSING_LABEL", http.StatusBadRequest},
		{"no locale", "/admin/snippets/base/person/add/", `{"label":"Ada"}`, "MISSING_LOCALE", http.StatusBadRequest},
		{"unknown locale", "/admin/snippets/base/person/add/", `{"label":"Ada","locale":"xx"}`, "UNKNOWN_LOCALE", http.StatusBadRequest},
		{"unknown type", "/admin/snippets/nope/missing/add/", `{"label":"Ada"}`, "NOT_FOUND", http.StatusNotFound},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, tc.path, tc.body)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, decode[map[string]string](t, rec)["code"])
		})
	}
}
