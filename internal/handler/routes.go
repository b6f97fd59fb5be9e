package handler

import (
	"github.com/go-chi/chi/v5"

	"github.com/matthewbaird/snippetchooser/internal/chooser"
	"github.com/matthewbaird/snippetchooser/internal/locale"
	"github.com/matthewbaird/snippetchooser/internal/store"
)

// Deps are the collaborators the chooser routes are served from.
type Deps struct {
	Chooser        *chooser.Chooser
	ContentTypes   ContentTypes
	Store          store.Store
	Locales        locale.Registry
	AllowedOrigins []string // cross-origin patterns for the live websocket
}

// Mount registers the chooser and snippet routes under the chooser's URL
// prefix.
func Mount(r chi.Router, d Deps) {
	urls := d.Chooser.URLs()
	ch := NewChooserHandler(d.Chooser, d.ContentTypes)
	lh := NewLiveHandler(d.Chooser, d.ContentTypes, d.AllowedOrigins...)
	sh := NewSnippetHandler(d.Store, d.Locales, d.ContentTypes, urls)

	r.Route(urls.Prefix, func(r chi.Router) {
		r.Get("/", sh.HandleListTypes)
		r.Route("/choose/{app_label}/{model_name}", func(r chi.Router) {
			r.Get("/", ch.HandleChoose)
			r.Get("/results/", ch.HandleResults)
			r.Get("/chosen/{id}/", ch.HandleChosen)
			r.Get("/live/", lh.ServeHTTP)
		})
		r.Post("/{app_label}/{model_name}/add/", sh.HandleCreate)
	})
}
