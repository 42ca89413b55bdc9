package menu

import (
	"errors"
	"fmt"
)

// DefaultTarget is the link target used by NewTargetStyle when none is given.
const DefaultTarget = "_blank"

const (
	// KindIcon identifies an IconStyle.
	KindIcon StyleKind = "icon"

	// KindTarget identifies a TargetStyle.
	KindTarget StyleKind = "target"
)

// ErrAmbiguousStyle is matched by AmbiguousStyleError via errors.Is.
var ErrAmbiguousStyle = errors.New("ambiguous style")

// StyleKind is the tag used to look up styles attached to an item.
type StyleKind string

// Style is a renderer-specific decoration attached to an item.
// The menu never interprets a style; it only stores and looks it up by kind.
// Renderers may define their own kinds by implementing this interface.
type Style interface {
	Kind() StyleKind
}

// IconStyle adds an icon to the item.
type IconStyle struct {
	// URL of the icon image, relative to the root URL unless it starts
	// with one of the reserved prefixes.
	URL string `json:"url"`
}

// Kind implements Style.
func (IconStyle) Kind() StyleKind { return KindIcon }

// ResolvedURL returns the icon URL resolved against rootURL.
func (s IconStyle) ResolvedURL(rootURL string) string {
	if s.URL == "" {
		return ""
	}
	return resolveBase(rootURL, s.URL)
}

// TargetStyle sets the target attribute of the rendered link.
type TargetStyle struct {
	Target string `json:"target"`
}

// NewTargetStyle returns a TargetStyle, defaulting to DefaultTarget.
func NewTargetStyle(target string) TargetStyle {
	if target == "" {
		target = DefaultTarget
	}
	return TargetStyle{Target: target}
}

// Kind implements Style.
func (TargetStyle) Kind() StyleKind { return KindTarget }

// AmbiguousStyleError is returned by StyleByKind when more than one style
// of the requested kind is attached.
type AmbiguousStyleError struct {
	Kind  StyleKind
	Count int
}

func (e *AmbiguousStyleError) Error() string {
	return fmt.Sprintf("menu item has %d styles of kind %q, use StylesByKind to get all of them", e.Count, e.Kind)
}

// Is reports whether target is ErrAmbiguousStyle.
func (e *AmbiguousStyleError) Is(target error) bool {
	return target == ErrAmbiguousStyle
}
