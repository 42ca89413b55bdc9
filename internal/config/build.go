package config

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/mchmarny/navmenu/pkg/i18n"
	"github.com/mchmarny/navmenu/pkg/menu"
)

// Conditions maps the names used in definitions to display conditions.
type Conditions map[string]menu.Condition

// DefaultConditions returns the built-in conditions "always" and "never".
func DefaultConditions() Conditions {
	return Conditions{
		"always": menu.ConditionFunc(func() bool { return true }),
		"never":  menu.ConditionFunc(func() bool { return false }),
	}
}

// BuildOption configures Build.
type BuildOption func(*builder)

// WithConditions registers named conditions on top of the defaults.
func WithConditions(c Conditions) BuildOption {
	return func(b *builder) {
		for name, cond := range c {
			b.conditions[name] = cond
		}
	}
}

// WithLang overrides the language of the definition.
func WithLang(lang string) BuildOption {
	return func(b *builder) { b.lang = lang }
}

type builder struct {
	def        *Definition
	conditions Conditions
	lang       string
	translator menu.Translator
}

// Build turns a definition into a menu tree.
func Build(def *Definition, opts ...BuildOption) (*menu.Menu, error) {
	b := &builder{
		def:        def,
		conditions: DefaultConditions(),
		lang:       def.Lang,
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.setupTranslator(); err != nil {
		return nil, err
	}

	m := menu.New(def.Title)
	m.Description = def.Description
	m.Version = def.Version

	if def.Condition != "" {
		cond, err := b.condition("menu", def.Condition)
		if err != nil {
			return nil, err
		}
		m.SetDisplayCondition(cond)
	}

	for i := range def.Items {
		it, err := b.item(fmt.Sprintf("items[%d]", i), &def.Items[i])
		if err != nil {
			return nil, err
		}
		m.AddChild(it)
	}

	return m, nil
}

// Load reads a definition file and builds its menu.
func Load(path string, opts ...BuildOption) (*menu.Menu, error) {
	def, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Build(def, opts...)
}

func (b *builder) setupTranslator() error {
	if b.lang == "" || len(b.def.Translations) == 0 {
		return nil
	}

	source := b.def.SourceLang
	if source == "" {
		source = DefaultSourceLang
	}

	fallback, err := language.Parse(source)
	if err != nil {
		return fmt.Errorf("invalid source language %q: %w", source, err)
	}

	cat := i18n.NewCatalog(fallback)
	for lang, entries := range b.def.Translations {
		if err := cat.Add(lang, entries); err != nil {
			return err
		}
	}

	b.translator = cat.Translator(b.lang)
	return nil
}

func (b *builder) condition(path, name string) (menu.Condition, error) {
	cond, ok := b.conditions[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", path, ErrUnknownCondition, name)
	}
	return cond, nil
}

func (b *builder) item(path string, d *ItemDefinition) (*menu.Item, error) {
	if err := validateItem(path, d); err != nil {
		return nil, err
	}

	opts := []menu.ItemOption{menu.WithRootURL(b.def.RootURL)}
	if b.translator != nil {
		opts = append(opts, menu.WithTranslator(b.translator))
	}

	var it *menu.Item
	if d.Separator {
		it = menu.NewSeparator(opts...)
	} else {
		it = menu.NewItem(d.Label, d.URL, opts...)
	}

	if d.Priority != nil {
		it.SetPriority(*d.Priority)
	}
	if d.Extended != nil {
		it.SetExtended(*d.Extended)
	}
	if d.ActivateOnURL != nil {
		it.SetActivateOnURL(*d.ActivateOnURL)
	}

	it.SetCSSClass(d.CSSClass).
		SetPropagatedParams(d.Propagate...).
		SetActive(d.Active)

	if d.Condition != "" {
		cond, err := b.condition(path, d.Condition)
		if err != nil {
			return nil, err
		}
		it.SetDisplayCondition(cond)
	}

	for i, s := range d.Styles {
		style, err := buildStyle(fmt.Sprintf("%s.styles[%d]", path, i), s)
		if err != nil {
			return nil, err
		}
		it.AddStyle(style)
	}

	for i := range d.Children {
		child, err := b.item(fmt.Sprintf("%s.children[%d]", path, i), &d.Children[i])
		if err != nil {
			return nil, err
		}
		it.AddChild(child)
	}

	return it, nil
}

func validateItem(path string, d *ItemDefinition) error {
	if d.Separator {
		if d.Label != "" || d.URL != "" || len(d.Children) > 0 {
			return fmt.Errorf("%s: %w: separator cannot have a label, url or children", path, ErrInvalidItem)
		}
		return nil
	}

	if d.Label == "" {
		return fmt.Errorf("%s: %w: label is required", path, ErrInvalidItem)
	}

	for i, p := range d.Propagate {
		if p == "" {
			return fmt.Errorf("%s.propagate[%d]: %w: empty parameter name", path, i, ErrInvalidItem)
		}
	}

	return nil
}

func buildStyle(path string, s StyleDefinition) (menu.Style, error) {
	switch {
	case s.Icon != "" && s.Target != nil:
		return nil, fmt.Errorf("%s: %w: style must set exactly one of icon or target", path, ErrInvalidItem)
	case s.Icon != "":
		return menu.IconStyle{URL: s.Icon}, nil
	case s.Target != nil:
		return menu.NewTargetStyle(*s.Target), nil
	default:
		return nil, fmt.Errorf("%s: %w: empty style", path, ErrInvalidItem)
	}
}
