// Package types provides the value types shared by the chooser, its
// collaborators and the HTTP boundary.
package types

// ContentType describes a registered snippet kind. Descriptors are
// registered by the host application at startup and never mutated.
type ContentType struct {
	AppLabel          string `json:"app_label"`
	ModelName         string `json:"model_name"`
	VerboseName       string `json:"verbose_name"`
	VerboseNamePlural string `json:"verbose_name_plural"`
	Indexed           bool   `json:"indexed"`      // searchable through the search backend
	Translatable      bool   `json:"translatable"` // records carry a locale code
}

// Key returns the "app_label.model_name" identifier of the content type.
func (ct ContentType) Key() string {
	return ct.AppLabel + "." + ct.ModelName
}

// Record is a transient reference to a snippet held by the store.
type Record struct {
	ID        string `json:"id"`
	AppLabel  string `json:"app_label"`
	ModelName string `json:"model_name"`
	Label     string `json:"label"`
	Locale    string `json:"locale,omitempty"` // empty unless the type is translatable
	CreatedAt int64  `json:"created_at"`       // creation ordinal, store ordering key
}

// String returns the record's display representation.
func (r Record) String() string {
	return r.Label
}

// Key returns the "app_label.model_name" identifier of the record's type.
func (r Record) Key() string {
	return r.AppLabel + "." + r.ModelName
}

// Locale is a registered language variant.
type Locale struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}

// FilterInput carries the optional filter facets of a single request.
type FilterInput struct {
	Query  string `json:"q,omitempty"`
	Locale string `json:"locale,omitempty"`
}
