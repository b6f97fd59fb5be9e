package search

import (
	"context"
	"testing"

	"github.com/matthewbaird/snippetchooser/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var people = types.ContentType{AppLabel: "base", ModelName: "person", Indexed: true}

func person(id, label string) types.Record {
	return types.Record{ID: id, AppLabel: "base", ModelName: "person", Label: label}
}

func labels(records []types.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Label)
	}
	return out
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"the", "quick", "brown", "fox"}, Tokenize("The quick, brown-fox!"))
	assert.Equal(t, []string{"zoë", "42"}, Tokenize("  Zoë #42 "))
	assert.Empty(t, Tokenize(" ,.; "))
}

func TestSearch_MatchesEveryTerm(t *testing.T) {
	ix := NewIndex()
	records := []types.Record{
		person("1", "Alice Smith"),
		person("2", "Bob Smith"),
		person("3", "Alice Jones"),
	}
	ix.Rebuild(people, records)

	got, err := ix.Search(context.Background(), "alice smith", records)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice Smith"}, labels(got))
}

func TestSearch_ExactBeatsPrefix(t *testing.T) {
	ix := NewIndex()
	records := []types.Record{
		person("1", "Foxglove"),
		person("2", "Fox"),
		person("3", "Foxtrot"),
	}
	ix.Rebuild(people, records)

	got, err := ix.Search(context.Background(), "fox", records)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fox", "Foxglove", "Foxtrot"}, labels(got))
}

func TestSearch_OnlyScopedRecords(t *testing.T) {
	ix := NewIndex()
	all := []types.Record{person("1", "Fox one"), person("2", "Fox two")}
	ix.Rebuild(people, all)

	got, err := ix.Search(context.Background(), "fox", all[1:])
	require.NoError(t, err)
	assert.Equal(t, []string{"Fox two"}, labels(got))
}

func TestSearch_UnindexedRecordUsesLabel(t *testing.T) {
	got, err := NewIndex().Search(context.Background(), "orange", []types.Record{person("9", "Orange Cat")})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSearch_RenamedRecordUsesCurrentLabel(t *testing.T) {
	ix := NewIndex()
	ix.Put(person("1", "Alpha"))

	// The store already holds the new label; the index has not caught up.
	current := []types.Record{person("1", "Beta")}

	got, err := ix.Search(context.Background(), "beta", current)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta"}, labels(got))

	got, err = ix.Search(context.Background(), "alpha", current)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearch_UnchangedLabelUsesStoredTokens(t *testing.T) {
	ix := NewIndex()
	ix.Put(person("1", "Grace Hopper"))

	got, err := ix.Search(context.Background(), "hop", []types.Record{person("1", "Grace Hopper")})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSearch_EmptyQuery(t *testing.T) {
	got, err := NewIndex().Search(context.Background(), "  !! ", []types.Record{person("1", "Anything")})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewIndex().Search(ctx, "a", []types.Record{person("1", "a")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIndex_PutRemoveRebuild(t *testing.T) {
	ix := NewIndex()
	ix.Put(person("1", "One"))
	ix.Put(person("2", "Two"))
	ix.Put(types.Record{ID: "1", AppLabel: "blog", ModelName: "category", Label: "One"})
	assert.Equal(t, 3, ix.Len())

	ix.Remove("base", "person", "2")
	assert.Equal(t, 2, ix.Len())

	ix.Rebuild(people, []types.Record{person("5", "Five"), person("6", "Six")})
	assert.Equal(t, 3, ix.Len(), "rebuild only replaces documents of its own type")
}
