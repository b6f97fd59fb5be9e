package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/matthewbaird/snippetchooser/internal/chooser"
	"github.com/matthewbaird/snippetchooser/internal/locale"
	"github.com/matthewbaird/snippetchooser/internal/store"
	"github.com/matthewbaird/snippetchooser/internal/types"
)

// SnippetHandler serves the content type index and the "add new" target
// linked from the chooser.
type SnippetHandler struct {
	store   store.Store
	locales locale.Registry
	types   ContentTypes
	urls    chooser.URLs
}

// NewSnippetHandler creates a new SnippetHandler.
func NewSnippetHandler(s store.Store, locales locale.Registry, reg ContentTypes, urls chooser.URLs) *SnippetHandler {
	return &SnippetHandler{store: s, locales: locales, types: reg, urls: urls}
}

type contentTypeEntry struct {
	types.ContentType
	ChooseURL string `json:"choose_url"`
	AddURL    string `json:"add_url"`
}

// HandleListTypes lists every registered content type.
// GET {prefix}/
func (h *SnippetHandler) HandleListTypes(w http.ResponseWriter, r *http.Request) {
	all := h.types.All()
	entries := make([]contentTypeEntry, 0, len(all))
	for _, ct := range all {
		entries = append(entries, contentTypeEntry{
			ContentType: ct,
			ChooseURL:   h.urls.Choose(ct),
			AddURL:      h.urls.Add(ct),
		})
	}
	writeJSON(w, http.StatusOK, struct {
		ContentTypes []contentTypeEntry `json:"content_types"`
	}{ContentTypes: entries})
}

// HandleCreate stores a new snippet and answers with the chosen payload so
// the modal can select it straight away.
// POST {prefix}/{app_label}/{model_name}/add/
func (h *SnippetHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ct, ok := contentType(w, r, h.types)
	if !ok {
		return
	}

	var req struct {
		ID     string `json:"id,omitempty"`
		Label  string `json:"label"`
		Locale string `json:"locale,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	req.Label = strings.TrimSpace(req.Label)
	if req.Label == "" {
		writeError(w, http.StatusBadRequest, "MISSING_LABEL", "label is required")
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	rec := types.Record{
		ID:        req.ID,
		AppLabel:  ct.AppLabel,
		ModelName: ct.ModelName,
		Label:     req.Label,
	}
	if ct.Translatable {
		if req.Locale == "" {
			writeError(w, http.StatusBadRequest, "MISSING_LOCALE", "locale is required for "+ct.VerboseNamePlural)
			return
		}
		loc, found, err := h.locales.Resolve(r.Context(), req.Locale)
		if err != nil {
			errorToHTTP(w, err)
			return
		}
		if !found {
			writeError(w, http.StatusBadRequest, "UNKNOWN_LOCALE", "unknown locale: "+req.Locale)
			return
		}
		rec.Locale = loc.Code
	}

	if _, exists, err := h.store.GetByID(r.Context(), ct, rec.ID); err != nil {
		errorToHTTP(w, err)
		return
	} else if exists {
		writeError(w, http.StatusConflict, "CONFLICT", "snippet "+rec.ID+" already exists")
		return
	}
	if err := h.store.Save(r.Context(), rec); err != nil {
		errorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, chooser.ChosenView{
		Step: chooser.StepChosen,
		Result: chooser.ChosenResult{
			ID:      chooser.Quote(rec.ID),
			Label:   rec.String(),
			EditURL: h.urls.Edit(ct, rec.ID),
		},
	})
}
