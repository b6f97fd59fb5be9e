package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matthewbaird/snippetchooser/internal/chooser"
	"github.com/matthewbaird/snippetchooser/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_DefaultsNames(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(types.ContentType{AppLabel: "tests", ModelName: "advert"}))

	ct, err := r.Lookup("tests", "advert")
	require.NoError(t, err)
	assert.Equal(t, "advert", ct.VerboseName)
	assert.Equal(t, "adverts", ct.VerboseNamePlural)
}

func TestRegister_Rejects(t *testing.T) {
	r := New()
	err := r.Register(types.ContentType{AppLabel: "tests"})
	assert.True(t, chooser.IsValidation(err))

	require.NoError(t, r.Register(types.ContentType{AppLabel: "tests", ModelName: "advert"}))
	err = r.Register(types.ContentType{AppLabel: "tests", ModelName: "advert"})
	assert.True(t, chooser.IsValidation(err))
	assert.Contains(t, err.Error(), "tests.advert")
}

func TestLookup_Unknown(t *testing.T) {
	_, err := New().Lookup("nope", "missing")
	require.Error(t, err)
	assert.True(t, chooser.IsNotFound(err))
}

func TestAll_RegistrationOrder(t *testing.T) {
	r := New()
	require.NoError(t, r.RegisterAll([]types.ContentType{
		{AppLabel: "b", ModelName: "two"},
		{AppLabel: "a", ModelName: "one"},
	}))
	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "b.two", all[0].Key())
	assert.Equal(t, "a.one", all[1].Key())
}

func TestDefaults(t *testing.T) {
	cts, err := Defaults()
	require.NoError(t, err)
	require.Len(t, cts, 4)

	byKey := map[string]types.ContentType{}
	for _, ct := range cts {
		byKey[ct.Key()] = ct
	}

	person := byKey["base.person"]
	assert.True(t, person.Indexed)
	assert.True(t, person.Translatable)
	assert.Equal(t, "people", person.VerboseNamePlural)

	advert := byKey["tests.advert"]
	assert.False(t, advert.Indexed)
	assert.False(t, advert.Translatable)
	assert.Equal(t, "adverts", advert.VerboseNamePlural)

	assert.True(t, byKey["base.footertext"].Translatable)
	assert.False(t, byKey["base.footertext"].Indexed)
	assert.True(t, byKey["blog.category"].Indexed)

	require.NoError(t, New().RegisterAll(cts))
}

func TestLoadCUE_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad app label": `content_types: [{app_label: "Base", model_name: "person", verbose_name: "person"}]`,
		"unknown field": `content_types: [{app_label: "base", model_name: "person", verbose_name: "person", colour: "red"}]`,
		"missing name":  `content_types: [{app_label: "base", model_name: "person"}]`,
		"wrong type":    `content_types: [{app_label: "base", model_name: "person", verbose_name: "person", indexed: "yes"}]`,
		"syntax":        `content_types: [`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadCUE("test.cue", []byte(src))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "types.cue")
	src := `content_types: [{
	app_label:    "shop"
	model_name:   "banner"
	verbose_name: "banner"
	indexed:      true
}]`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cts, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, cts, 1)
	assert.Equal(t, "shop.banner", cts[0].Key())
	assert.Equal(t, "banners", cts[0].VerboseNamePlural)
	assert.True(t, cts[0].Indexed)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.cue"))
	assert.Error(t, err)
}
