package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/mchmarny/navmenu/pkg/menu"
)

func newCatalog(t *testing.T) *Catalog {
	t.Helper()

	c := NewCatalog(language.English)
	require.NoError(t, c.Add("fr", map[string]string{
		"Home":     "Accueil",
		"Progress": "Progrès 100%",
	}))
	require.NoError(t, c.Add("de", map[string]string{"Home": "Startseite"}))
	return c
}

func TestMatch(t *testing.T) {
	c := newCatalog(t)

	tests := []struct {
		pref     string
		expected language.Tag
	}{
		{"", language.English},
		{"fr", language.French},
		{"fr-CA", language.French},
		{"de-DE,de;q=0.9,en;q=0.8", language.German},
		{"ja", language.English},
		{"not a tag;;", language.English},
	}

	for _, tc := range tests {
		t.Run(tc.pref, func(t *testing.T) {
			assert.Equal(t, tc.expected, c.Match(tc.pref))
		})
	}
}

func TestTranslator(t *testing.T) {
	c := newCatalog(t)

	fr := c.Translator("fr")
	assert.Equal(t, "Accueil", fr.Translate("Home"))
	assert.Equal(t, "Progrès 100%", fr.Translate("Progress"))
	assert.Equal(t, "Unknown 50%", fr.Translate("Unknown 50%"))

	en := c.Translator("en")
	assert.Equal(t, "Home", en.Translate("Home"))
}

func TestTranslatorOnItem(t *testing.T) {
	c := newCatalog(t)
	it := menu.NewItem("Home", "/", menu.WithTranslator(c.Translator("de")))

	assert.Equal(t, "Startseite", it.Label())
}

func TestAddInvalidLanguage(t *testing.T) {
	c := NewCatalog(language.English)
	assert.Error(t, c.Add("??", map[string]string{"a": "b"}))
}

func TestLanguages(t *testing.T) {
	c := newCatalog(t)
	assert.Equal(t, []language.Tag{language.English, language.French, language.German}, c.Languages())
}
