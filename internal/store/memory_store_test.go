package store

import (
	"context"
	"testing"

	"github.com/matthewbaird/snippetchooser/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	advert = types.ContentType{AppLabel: "tests", ModelName: "advert"}
	person = types.ContentType{AppLabel: "base", ModelName: "person", Translatable: true}
)

func testRecord(ct types.ContentType, id, label, loc string) types.Record {
	return types.Record{ID: id, AppLabel: ct.AppLabel, ModelName: ct.ModelName, Label: label, Locale: loc}
}

// storeContract runs the behaviour every Store must share.
func storeContract(t *testing.T, s Store) {
	ctx := context.Background()

	for _, r := range []types.Record{
		testRecord(advert, "1", "First", ""),
		testRecord(person, "1", "Alice", "en"),
		testRecord(advert, "2", "Second", ""),
		testRecord(person, "2", "Amélie", "fr"),
		testRecord(advert, "a/b", "Odd", ""),
	} {
		require.NoError(t, s.Save(ctx, r))
	}

	adverts, err := s.QueryAll(ctx, advert)
	require.NoError(t, err)
	require.Len(t, adverts, 3)
	assert.Equal(t, []string{"1", "2", "a/b"}, ids(adverts))

	got, ok, err := s.GetByID(ctx, advert, "a/b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Odd", got.Label)

	_, ok, err = s.GetByID(ctx, advert, "999")
	require.NoError(t, err)
	assert.False(t, ok)

	// Same id under another content type is a different record.
	got, ok, err = s.GetByID(ctx, person, "1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Alice", got.Label)

	people, err := s.QueryAll(ctx, person)
	require.NoError(t, err)
	french, err := s.FilterByLocale(ctx, people, "fr")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(french))

	// Updating keeps the original position.
	require.NoError(t, s.Save(ctx, testRecord(advert, "1", "First (edited)", "")))
	adverts, err = s.QueryAll(ctx, advert)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "a/b"}, ids(adverts))
	assert.Equal(t, "First (edited)", adverts[0].Label)

	require.NoError(t, s.Delete(ctx, advert, "2"))
	require.NoError(t, s.Delete(ctx, advert, "missing"))
	adverts, err = s.QueryAll(ctx, advert)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "a/b"}, ids(adverts))
}

func ids(records []types.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestMemoryStore_Contract(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestMemoryStore_EmptyStore(t *testing.T) {
	records, err := NewMemoryStore().QueryAll(context.Background(), advert)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestMemoryStore_CreatedAtOrdering(t *testing.T) {
	s := NewMemoryStore(
		types.Record{ID: "late", AppLabel: "tests", ModelName: "advert", CreatedAt: 30},
		types.Record{ID: "early", AppLabel: "tests", ModelName: "advert", CreatedAt: 10},
	)
	require.NoError(t, s.Save(context.Background(), testRecord(advert, "new", "New", "")))

	records, err := s.QueryAll(context.Background(), advert)
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "late", "new"}, ids(records))
}

func TestFilterByLocale_Empty(t *testing.T) {
	got, err := NewMemoryStore().FilterByLocale(context.Background(), nil, "fr")
	require.NoError(t, err)
	assert.Empty(t, got)
}
