package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/matthewbaird/snippetchooser/internal/chooser"
	"github.com/matthewbaird/snippetchooser/internal/types"
)

// ContentTypes resolves the content type named in a request path.
type ContentTypes interface {
	Lookup(app, model string) (types.ContentType, error)
	All() []types.ContentType
}

// ChooserHandler implements the three chooser endpoints of every
// registered content type.
type ChooserHandler struct {
	chooser *chooser.Chooser
	types   ContentTypes
}

// NewChooserHandler creates a new ChooserHandler.
func NewChooserHandler(c *chooser.Chooser, reg ContentTypes) *ChooserHandler {
	return &ChooserHandler{chooser: c, types: reg}
}

// contentType resolves {app_label}/{model_name}; on failure the error
// response has been written.
func contentType(w http.ResponseWriter, r *http.Request, reg ContentTypes) (types.ContentType, bool) {
	ct, err := reg.Lookup(chi.URLParam(r, "app_label"), chi.URLParam(r, "model_name"))
	if err != nil {
		errorToHTTP(w, err)
		return types.ContentType{}, false
	}
	return ct, true
}

// filterInput cleans the query string against the content type's schema.
func (h *ChooserHandler) filterInput(w http.ResponseWriter, r *http.Request, ct types.ContentType) (types.FilterInput, bool) {
	schema, err := h.chooser.Schema(r.Context(), ct)
	if err != nil {
		errorToHTTP(w, err)
		return types.FilterInput{}, false
	}
	return schema.Clean(r.URL.Query()), true
}

// HandleChoose renders the chooser modal.
// GET {prefix}/choose/{app_label}/{model_name}/
func (h *ChooserHandler) HandleChoose(w http.ResponseWriter, r *http.Request) {
	ct, ok := contentType(w, r, h.types)
	if !ok {
		return
	}
	in, ok := h.filterInput(w, r, ct)
	if !ok {
		return
	}
	view, err := h.chooser.RenderChoose(r.Context(), ct, in)
	if err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleResults renders one page of results.
// GET {prefix}/choose/{app_label}/{model_name}/results/?q=&locale=&p=
func (h *ChooserHandler) HandleResults(w http.ResponseWriter, r *http.Request) {
	ct, ok := contentType(w, r, h.types)
	if !ok {
		return
	}
	in, ok := h.filterInput(w, r, ct)
	if !ok {
		return
	}
	view, err := h.chooser.RenderResults(r.Context(), ct, in, parsePage(r))
	if err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleChosen confirms the choice of one snippet.
// GET {prefix}/choose/{app_label}/{model_name}/chosen/{id}/
func (h *ChooserHandler) HandleChosen(w http.ResponseWriter, r *http.Request) {
	ct, ok := contentType(w, r, h.types)
	if !ok {
		return
	}
	// chi matches on RawPath when it is set, so only then is the
	// parameter still escaped.
	raw := chi.URLParam(r, "id")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(raw)
		if err != nil {
			errorToHTTP(w, &chooser.ValidationError{Field: "id", Reason: "malformed path escape"})
			return
		}
		raw = unescaped
	}
	view, err := h.chooser.ConfirmChoice(r.Context(), ct, raw)
	if err != nil {
		errorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
