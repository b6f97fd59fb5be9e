package chooser

import (
	"context"

	"github.com/matthewbaird/snippetchooser/internal/types"
)

// PageSize is the fixed number of rows per chooser page.
const PageSize = 25

// ResultPage is one page of a filtered record set.
type ResultPage struct {
	Records     []types.Record `json:"-"`
	Number      int            `json:"page"`
	PageSize    int            `json:"page_size"`
	Total       int            `json:"total"`
	NumPages    int            `json:"num_pages"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
	IsSearching bool           `json:"is_searching"`
	SearchQuery string         `json:"search_query,omitempty"`
}

// QueryBuilder applies locale scoping, search and pagination to a record set.
type QueryBuilder struct {
	store   DataStore
	search  SearchBackend
	locales LocaleRegistry
}

// NewQueryBuilder creates a QueryBuilder over the given collaborators.
// search and locales may be nil when no content type needs them.
func NewQueryBuilder(store DataStore, search SearchBackend, locales LocaleRegistry) *QueryBuilder {
	return &QueryBuilder{store: store, search: search, locales: locales}
}

// BuildResultPage filters records by locale, then by search query, then
// returns the requested page. Facets the content type does not support are
// ignored. The order of records is never changed here.
func (b *QueryBuilder) BuildResultPage(ctx context.Context, ct types.ContentType, records []types.Record, in types.FilterInput, page int) (*ResultPage, error) {
	objects := records

	if in.Locale != "" && ct.Translatable {
		if b.locales == nil {
			return nil, &NotFoundError{Kind: "locale", Key: in.Locale}
		}
		loc, ok, err := b.locales.Resolve(ctx, in.Locale)
		if err != nil {
			return nil, collaboratorErr("resolving locale", err)
		}
		if !ok {
			return nil, &NotFoundError{Kind: "locale", Key: in.Locale}
		}
		objects, err = b.store.FilterByLocale(ctx, objects, loc.Code)
		if err != nil {
			return nil, collaboratorErr("filtering by locale", err)
		}
	}

	var searching bool
	if in.Query != "" && ct.Indexed && b.search != nil {
		found, err := b.search.Search(ctx, in.Query, objects)
		if err != nil {
			return nil, collaboratorErr("searching", err)
		}
		objects = found
		searching = true
	}

	p := paginate(objects, page, PageSize)
	p.IsSearching = searching
	if searching {
		p.SearchQuery = in.Query
	}
	return p, nil
}

// paginate slices records into the 1-indexed page number. Out-of-range
// numbers clamp to the first or last page.
func paginate(records []types.Record, number, size int) *ResultPage {
	total := len(records)
	numPages := (total + size - 1) / size
	if numPages < 1 {
		numPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	start := (number - 1) * size
	end := start + size
	if end > total {
		end = total
	}

	page := make([]types.Record, end-start)
	copy(page, records[start:end])

	return &ResultPage{
		Records:     page,
		Number:      number,
		PageSize:    size,
		Total:       total,
		NumPages:    numPages,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}
}
