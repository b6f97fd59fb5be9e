package chooser

import (
	"net/url"
	"strings"

	"github.com/matthewbaird/snippetchooser/internal/types"
)

// DefaultPrefix is the URL prefix of the snippet admin.
const DefaultPrefix = "/admin/snippets"

// URLs builds the per-content-type chooser and admin links.
type URLs struct {
	Prefix string
}

// NewURLs returns a URL builder rooted at prefix. An empty prefix falls
// back to DefaultPrefix.
func NewURLs(prefix string) URLs {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return URLs{Prefix: prefix}
}

func (u URLs) chooserBase(ct types.ContentType) string {
	return u.Prefix + "/choose/" + url.PathEscape(ct.AppLabel) + "/" + url.PathEscape(ct.ModelName)
}

// Choose is the URL of the initial chooser modal.
func (u URLs) Choose(ct types.ContentType) string { return u.chooserBase(ct) + "/" }

// Results is the URL of the results fragment.
func (u URLs) Results(ct types.ContentType) string { return u.chooserBase(ct) + "/results/" }

// Live is the URL of the websocket live-results channel.
func (u URLs) Live(ct types.ContentType) string { return u.chooserBase(ct) + "/live/" }

// Chosen is the URL that confirms the choice of the record with id.
func (u URLs) Chosen(ct types.ContentType, id string) string {
	return u.chooserBase(ct) + "/chosen/" + url.PathEscape(Quote(id)) + "/"
}

// Add is the "add new" entry point for the content type.
func (u URLs) Add(ct types.ContentType) string {
	return u.Prefix + "/" + url.PathEscape(ct.AppLabel) + "/" + url.PathEscape(ct.ModelName) + "/add/"
}

// Edit is the admin edit page of the record with id.
func (u URLs) Edit(ct types.ContentType, id string) string {
	return u.Prefix + "/" + url.PathEscape(ct.AppLabel) + "/" + url.PathEscape(ct.ModelName) + "/edit/" + url.PathEscape(Quote(id)) + "/"
}

// Row is the display form of one result record.
type Row struct {
	ID    string `json:"id"` // quoted identifier
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Formatter maps records to display rows.
type Formatter struct {
	urls URLs
}

// NewFormatter creates a Formatter that links rows through urls.
func NewFormatter(urls URLs) Formatter {
	return Formatter{urls: urls}
}

// FormatRow returns the row for rec. The label is the record's string
// representation, untouched.
func (f Formatter) FormatRow(ct types.ContentType, rec types.Record) Row {
	return Row{
		ID:    Quote(rec.ID),
		Label: rec.String(),
		URL:   f.urls.Chosen(ct, rec.ID),
	}
}

// FormatRows formats every record of a page.
func (f Formatter) FormatRows(ct types.ContentType, records []types.Record) []Row {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, f.FormatRow(ct, rec))
	}
	return rows
}
