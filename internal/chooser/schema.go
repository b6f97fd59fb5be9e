package chooser

import (
	"context"
	"net/url"
	"strings"

	"github.com/matthewbaird/snippetchooser/internal/types"
)

// Filter field names recognized by the chooser.
const (
	FieldQuery  = "q"
	FieldLocale = "locale"
)

// FieldKind classifies how a filter field is rendered.
type FieldKind string

const (
	FieldText   FieldKind = "text"
	FieldChoice FieldKind = "choice"
)

// Choice is one option of a choice field.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterField describes one recognized filter input.
type FilterField struct {
	Name        string    `json:"name"`
	Label       string    `json:"label,omitempty"`
	Kind        FieldKind `json:"kind"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required"`
	Choices     []Choice  `json:"choices,omitempty"`

	// SearchFilter marks fields that refresh the results as soon as they
	// change rather than on submit.
	SearchFilter bool `json:"search_filter,omitempty"`
}

// FilterSchema is the set of filter fields that apply to one content type.
type FilterSchema struct {
	Fields []FilterField `json:"fields"`
}

// BuildFilterSchema derives the filter fields for ct. The query field is
// present only for indexed types; the locale field only for translatable
// types when at least one locale is registered.
func BuildFilterSchema(ctx context.Context, ct types.ContentType, locales LocaleRegistry) (FilterSchema, error) {
	var s FilterSchema
	if ct.Indexed {
		s.Fields = append(s.Fields, FilterField{
			Name:        FieldQuery,
			Label:       "Search term",
			Kind:        FieldText,
			Placeholder: "Search " + ct.VerboseName,
		})
	}
	if ct.Translatable && locales != nil {
		all, err := locales.ListLocales(ctx)
		if err != nil {
			return FilterSchema{}, collaboratorErr("listing locales", err)
		}
		if len(all) > 0 {
			choices := make([]Choice, 0, len(all))
			for _, l := range all {
				choices = append(choices, Choice{Value: l.Code, Label: l.DisplayName})
			}
			s.Fields = append(s.Fields, FilterField{
				Name:         FieldLocale,
				Kind:         FieldChoice,
				Choices:      choices,
				SearchFilter: true,
			})
		}
	}
	return s, nil
}

// Has reports whether the schema recognizes the named field.
func (s FilterSchema) Has(name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Clean builds a FilterInput from raw request values. Fields the schema does
// not recognize are dropped.
func (s FilterSchema) Clean(values url.Values) types.FilterInput {
	var in types.FilterInput
	if s.Has(FieldQuery) {
		in.Query = strings.TrimSpace(values.Get(FieldQuery))
	}
	if s.Has(FieldLocale) {
		in.Locale = strings.TrimSpace(values.Get(FieldLocale))
	}
	return in
}
