// Package chooser implements the snippet chooser: the modal workflow that
// lets an editor search, filter, paginate and pick a record of a registered
// content type.
//
// The chooser holds no request state. Each operation receives the content
// type, the filter input and the page explicitly, and talks to the store,
// the search backend and the locale registry injected at construction.
package chooser

import (
	"context"

	"github.com/matthewbaird/snippetchooser/internal/types"
)

// Workflow steps reported to the modal.
const (
	StepChoose  = "choose"
	StepResults = "results"
	StepChosen  = "chosen"
)

// ChooseView is the payload of the initial chooser modal.
type ChooseView struct {
	Step            string       `json:"step"`
	Title           string       `json:"title"`
	Subtitle        string       `json:"subtitle"`
	SnippetTypeName string       `json:"snippet_type_name"`
	Icon            string       `json:"icon"`
	Schema          FilterSchema `json:"filter_schema"`
	Results         *ResultsView `json:"results"`
	ResultsURL      string       `json:"results_url"`
	LiveURL         string       `json:"live_url"`
	AddURL          string       `json:"add_url"`
}

// ResultsView is the payload of a results refresh.
type ResultsView struct {
	Step        string      `json:"step"`
	Rows        []Row       `json:"rows"`
	Pagination  *ResultPage `json:"pagination"`
	IsSearching bool        `json:"is_searching"`
	SearchQuery string      `json:"search_query,omitempty"`
	ResultsURL  string      `json:"results_url"`
}

// ChosenResult is handed back to the form field that opened the chooser.
type ChosenResult struct {
	ID      string `json:"id"` // quoted identifier
	Label   string `json:"string"`
	EditURL string `json:"edit_url"`
}

// ChosenView is the payload of a confirmed choice.
type ChosenView struct {
	Step   string       `json:"step"`
	Result ChosenResult `json:"result"`
}

// Chooser serves the choose, results and chosen operations for any
// registered content type.
type Chooser struct {
	store     DataStore
	locales   LocaleRegistry
	query     *QueryBuilder
	formatter Formatter
	urls      URLs
}

// Option configures a Chooser.
type Option func(*Chooser)

// WithURLs overrides the URL builder (default prefix /admin/snippets).
func WithURLs(u URLs) Option {
	return func(c *Chooser) { c.urls = u }
}

// New creates a Chooser over the given collaborators.
func New(store DataStore, search SearchBackend, locales LocaleRegistry, opts ...Option) *Chooser {
	c := &Chooser{
		store:   store,
		locales: locales,
		query:   NewQueryBuilder(store, search, locales),
		urls:    NewURLs(DefaultPrefix),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.formatter = NewFormatter(c.urls)
	return c
}

// URLs returns the URL builder the chooser links through.
func (c *Chooser) URLs() URLs { return c.urls }

// Schema returns the filter schema of ct.
func (c *Chooser) Schema(ctx context.Context, ct types.ContentType) (FilterSchema, error) {
	return BuildFilterSchema(ctx, ct, c.locales)
}

// RenderChoose returns the full chooser payload with the first page of results.
func (c *Chooser) RenderChoose(ctx context.Context, ct types.ContentType, in types.FilterInput) (*ChooseView, error) {
	schema, err := c.Schema(ctx, ct)
	if err != nil {
		return nil, err
	}
	results, err := c.RenderResults(ctx, ct, in, 1)
	if err != nil {
		return nil, err
	}
	return &ChooseView{
		Step:            StepChoose,
		Title:           "Choose",
		Subtitle:        ct.VerboseNamePlural,
		SnippetTypeName: ct.VerboseName,
		Icon:            "snippet",
		Schema:          schema,
		Results:         results,
		ResultsURL:      c.urls.Results(ct),
		LiveURL:         c.urls.Live(ct),
		AddURL:          c.urls.Add(ct),
	}, nil
}

// RenderResults returns one page of formatted rows.
func (c *Chooser) RenderResults(ctx context.Context, ct types.ContentType, in types.FilterInput, page int) (*ResultsView, error) {
	records, err := c.store.QueryAll(ctx, ct)
	if err != nil {
		return nil, collaboratorErr("querying snippets", err)
	}
	p, err := c.query.BuildResultPage(ctx, ct, records, in, page)
	if err != nil {
		return nil, err
	}
	return &ResultsView{
		Step:        StepResults,
		Rows:        c.formatter.FormatRows(ct, p.Records),
		Pagination:  p,
		IsSearching: p.IsSearching,
		SearchQuery: p.SearchQuery,
		ResultsURL:  c.urls.Results(ct),
	}, nil
}

// ConfirmChoice resolves the quoted identifier rawID to a record of ct.
func (c *Chooser) ConfirmChoice(ctx context.Context, ct types.ContentType, rawID string) (*ChosenView, error) {
	id, err := Unquote(rawID)
	if err != nil {
		return nil, err
	}
	rec, ok, err := c.store.GetByID(ctx, ct, id)
	if err != nil {
		return nil, collaboratorErr("loading snippet", err)
	}
	if !ok {
		return nil, &NotFoundError{Kind: "snippet", Key: id}
	}
	return &ChosenView{
		Step: StepChosen,
		Result: ChosenResult{
			ID:      Quote(rec.ID),
			Label:   rec.String(),
			EditURL: c.urls.Edit(ct, rec.ID),
		},
	}, nil
}
