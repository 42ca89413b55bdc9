package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSourceLang is the language labels are written in when the
// definition does not say otherwise.
const DefaultSourceLang = "en"

var (
	// ErrInvalidItem is returned for item definitions that cannot be built.
	ErrInvalidItem = errors.New("invalid menu item")

	// ErrUnknownCondition is returned when an item names a condition that is
	// not registered.
	ErrUnknownCondition = errors.New("unknown display condition")
)

// Definition is the declarative form of a menu.
type Definition struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Version     string `yaml:"version,omitempty"`

	// RootURL is prepended to relative item and icon URLs.
	RootURL string `yaml:"rootUrl,omitempty"`

	// SourceLang is the language the labels are written in.
	SourceLang string `yaml:"sourceLang,omitempty"`

	// Lang selects the translation applied to labels. Empty keeps them as-is.
	Lang string `yaml:"lang,omitempty"`

	// Translations maps a language to label translations.
	Translations map[string]map[string]string `yaml:"translations,omitempty"`

	// Condition hides the whole menu when it does not hold.
	Condition string `yaml:"condition,omitempty"`

	Items []ItemDefinition `yaml:"items"`
}

// ItemDefinition is the declarative form of a menu item.
type ItemDefinition struct {
	Label         string            `yaml:"label,omitempty"`
	URL           string            `yaml:"url,omitempty"`
	Priority      *float64          `yaml:"priority,omitempty"`
	CSSClass      string            `yaml:"cssClass,omitempty"`
	Propagate     []string          `yaml:"propagate,omitempty"`
	Active        bool              `yaml:"active,omitempty"`
	ActivateOnURL *bool             `yaml:"activateOnUrl,omitempty"`
	Extended      *bool             `yaml:"extended,omitempty"`
	Condition     string            `yaml:"condition,omitempty"`
	Separator     bool              `yaml:"separator,omitempty"`
	Styles        []StyleDefinition `yaml:"styles,omitempty"`
	Children      []ItemDefinition  `yaml:"children,omitempty"`
}

// StyleDefinition declares one style. Exactly one field must be set.
type StyleDefinition struct {
	Icon   string  `yaml:"icon,omitempty"`
	Target *string `yaml:"target,omitempty"`
}

// LoadFile reads and parses a menu definition file.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading menu definition %s: %w", path, err)
	}

	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("error loading menu definition from %s: %w", path, err)
	}

	return def, nil
}

// Parse decodes a YAML menu definition. Unknown fields are rejected.
func Parse(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return &def, nil
		}
		return nil, err
	}

	return &def, nil
}

// Marshal encodes a definition back to YAML.
func (d *Definition) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}
