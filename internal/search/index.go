// Package search provides the full-text backend used by the chooser for
// indexed content types: an in-process inverted index over snippet labels.
package search

import (
	"context"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/matthewbaird/snippetchooser/internal/types"
)

// Backend searches an already-scoped record set.
type Backend interface {
	Search(ctx context.Context, query string, records []types.Record) ([]types.Record, error)
}

// Match scores.
const (
	scoreExact  = 2
	scorePrefix = 1
)

// Index keeps the tokens of every indexed snippet. It is safe for
// concurrent use.
type Index struct {
	mu   sync.RWMutex
	docs map[string]document
}

// document is the tokenized label of one snippet.
type document struct {
	label  string
	tokens []string
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{docs: make(map[string]document)}
}

func newDocument(label string) document {
	return document{label: label, tokens: Tokenize(label)}
}

func docKey(app, model, id string) string {
	return app + "\x00" + model + "\x00" + id
}

// Tokenize lower-cases s and splits it into letter/digit runs.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// Put indexes rec, replacing any previous document for it.
func (ix *Index) Put(rec types.Record) {
	doc := newDocument(rec.Label)
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.docs[docKey(rec.AppLabel, rec.ModelName, rec.ID)] = doc
}

// Remove drops the document of one snippet.
func (ix *Index) Remove(app, model, id string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	delete(ix.docs, docKey(app, model, id))
}

// Rebuild replaces every document of ct with records.
func (ix *Index) Rebuild(ct types.ContentType, records []types.Record) {
	prefix := ct.AppLabel + "\x00" + ct.ModelName + "\x00"
	fresh := make(map[string]document, len(records))
	for _, rec := range records {
		fresh[docKey(rec.AppLabel, rec.ModelName, rec.ID)] = newDocument(rec.Label)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	for k := range ix.docs {
		if strings.HasPrefix(k, prefix) {
			delete(ix.docs, k)
		}
	}
	for k, v := range fresh {
		ix.docs[k] = v
	}
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

type scored struct {
	rec   types.Record
	score int
}

// Search returns the records whose tokens match every term of query. A
// term matches a token it equals or prefixes. Results are ordered by
// descending score; equal scores keep the input order. Stored tokens are
// used only while they match the record's current label; records that are
// not indexed, or were renamed since, are tokenized from their label.
func (ix *Index) Search(ctx context.Context, query string, records []types.Record) ([]types.Record, error) {
	terms := Tokenize(query)
	if len(terms) == 0 {
		return []types.Record{}, nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var hits []scored
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var tokens []string
		if doc, ok := ix.docs[docKey(rec.AppLabel, rec.ModelName, rec.ID)]; ok && doc.label == rec.Label {
			tokens = doc.tokens
		} else {
			tokens = Tokenize(rec.Label)
		}
		if s := score(terms, tokens); s > 0 {
			hits = append(hits, scored{rec: rec, score: s})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	out := make([]types.Record, len(hits))
	for i, h := range hits {
		out[i] = h.rec
	}
	return out, nil
}

// score returns 0 unless every term matches some token.
func score(terms, tokens []string) int {
	total := 0
	for _, term := range terms {
		best := 0
		for _, tok := range tokens {
			if tok == term {
				best = scoreExact
				break
			}
			if strings.HasPrefix(tok, term) {
				best = scorePrefix
			}
		}
		if best == 0 {
			return 0
		}
		total += best
	}
	return total
}
