// Package i18n provides a dictionary backed menu.Translator.
//
// Translations are registered per language in a golang.org/x/text message
// catalog. A Translator is picked for a language preference (a tag or an
// Accept-Language value) using the x/text language matcher, so "fr-CA"
// falls back to "fr" and unknown languages fall back to the catalog default.
// Labels without a translation are returned unchanged.
package i18n

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/mchmarny/navmenu/pkg/menu"
)

// Catalog holds label translations for several languages.
type Catalog struct {
	fallback language.Tag
	builder  *catalog.Builder

	mu      sync.Mutex
	tags    []language.Tag
	known   map[language.Tag]map[string]struct{}
	matcher language.Matcher
}

// NewCatalog creates an empty catalog whose default language is fallback.
func NewCatalog(fallback language.Tag) *Catalog {
	return &Catalog{
		fallback: fallback,
		builder:  catalog.NewBuilder(catalog.Fallback(fallback)),
		tags:     []language.Tag{fallback},
		known:    map[language.Tag]map[string]struct{}{},
	}
}

// Add registers translations for lang, keyed by the untranslated label.
func (c *Catalog) Add(lang string, entries map[string]string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("invalid language %q: %w", lang, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	keys, ok := c.known[tag]
	if !ok {
		keys = map[string]struct{}{}
		c.known[tag] = keys
		if tag != c.fallback {
			c.tags = append(c.tags, tag)
		}
		c.matcher = nil
	}

	for key, msg := range entries {
		// catalog messages are format strings
		if err := c.builder.SetString(tag, key, strings.ReplaceAll(msg, "%", "%%")); err != nil {
			return fmt.Errorf("failed to add %s translation for %q: %w", tag, key, err)
		}
		keys[key] = struct{}{}
	}

	return nil
}

// Languages returns the registered languages, default first.
func (c *Catalog) Languages() []language.Tag {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]language.Tag(nil), c.tags...)
}

// Match returns the registered language that best fits pref, which may be a
// single tag or an Accept-Language header value. An empty or unparsable
// preference yields the default language.
func (c *Catalog) Match(pref string) language.Tag {
	c.mu.Lock()
	defer c.mu.Unlock()

	if pref == "" {
		return c.fallback
	}

	wanted, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(wanted) == 0 {
		return c.fallback
	}

	if c.matcher == nil {
		c.matcher = language.NewMatcher(c.tags)
	}

	_, idx, conf := c.matcher.Match(wanted...)
	if conf == language.No {
		return c.fallback
	}
	return c.tags[idx]
}

// Translator returns a menu.Translator for the language best matching pref.
func (c *Catalog) Translator(pref string) menu.Translator {
	tag := c.Match(pref)
	printer := message.NewPrinter(tag, message.Catalog(c.builder))

	return menu.TranslatorFunc(func(text string) string {
		if !c.has(tag, text) {
			return text
		}
		return printer.Sprintf(text)
	})
}

func (c *Catalog) has(tag language.Tag, key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.known[tag][key]
	return ok
}
