package menu

import (
	"sort"
	"sync"
)

// Item represents a node in the menu tree, which may contain sub-items.
// An item does not render itself; renderers walk the tree through the read
// accessors below.
//
// Items are meant to be configured once and then read. The children slice and
// its sort cache are guarded by a mutex; the remaining fields are not.
type Item struct {
	label     string
	url       string
	rootURL   string
	cssClass  string
	separator bool

	priority    float64
	hasPriority bool

	propagated []string
	condition  Condition
	translator Translator

	active        bool
	activateOnURL bool
	extended      *bool

	styles []Style

	mu       sync.Mutex
	children []*Item
	sorted   bool
}

// ItemOption configures an Item.
type ItemOption func(*Item)

// WithChildren sets the initial children of the item.
func WithChildren(children ...*Item) ItemOption {
	return func(i *Item) { i.children = append([]*Item(nil), children...) }
}

// WithRootURL sets the URL prepended to relative item URLs.
func WithRootURL(rootURL string) ItemOption {
	return func(i *Item) { i.rootURL = rootURL }
}

// WithPriority sets the sort priority. Lower values sort first.
func WithPriority(p float64) ItemOption {
	return func(i *Item) { i.SetPriority(p) }
}

// WithCSSClass sets the CSS class hint for the renderer.
func WithCSSClass(class string) ItemOption {
	return func(i *Item) { i.cssClass = class }
}

// WithPropagatedParams sets the request parameters copied onto the link.
func WithPropagatedParams(names ...string) ItemOption {
	return func(i *Item) { i.SetPropagatedParams(names...) }
}

// WithCondition sets the display condition.
func WithCondition(c Condition) ItemOption {
	return func(i *Item) { i.condition = c }
}

// WithTranslator sets the translator used for the label.
func WithTranslator(t Translator) ItemOption {
	return func(i *Item) { i.translator = t }
}

// WithStyles attaches styles to the item.
func WithStyles(styles ...Style) ItemOption {
	return func(i *Item) { i.styles = append(i.styles, styles...) }
}

// NewItem creates a menu item. An empty url makes the item a plain
// container that is not a link.
func NewItem(label, url string, opts ...ItemOption) *Item {
	i := &Item{
		label:         label,
		url:           url,
		activateOnURL: true,
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// NewSeparator creates an item that only separates its siblings.
// It has no label and no URL.
func NewSeparator(opts ...ItemOption) *Item {
	i := NewItem("", "", opts...)
	i.separator = true
	return i
}

// Label returns the label, translated when a translator is set.
func (i *Item) Label() string {
	if i.translator != nil {
		return i.translator.Translate(i.label)
	}
	return i.label
}

// SetLabel sets the untranslated label.
func (i *Item) SetLabel(label string) *Item {
	i.label = label
	return i
}

// SetTranslator sets the translator used by Label.
func (i *Item) SetTranslator(t Translator) *Item {
	i.translator = t
	return i
}

// URL returns the raw URL, or "" when the item is not a link.
func (i *Item) URL() string {
	return i.url
}

// SetURL sets the raw URL. It is relative to the root URL unless it starts
// with "/", "javascript:", "http://", "https://", "?" or "#".
func (i *Item) SetURL(url string) *Item {
	i.url = url
	return i
}

// RootURL returns the URL prepended to relative item URLs.
func (i *Item) RootURL() string {
	return i.rootURL
}

// SetRootURL sets the URL prepended to relative item URLs.
func (i *Item) SetRootURL(rootURL string) *Item {
	i.rootURL = rootURL
	return i
}

// Children returns the children sorted by priority. Items with a priority
// come first in ascending order, ties keep their insertion order, and items
// without a priority follow in insertion order. The order is computed once
// and reused until the next call to SetChildren or AddChild.
func (i *Item) Children() []*Item {
	i.mu.Lock()
	defer i.mu.Unlock()

	if len(i.children) == 0 {
		return nil
	}

	if !i.sorted {
		i.children = sortByPriority(i.children)
		i.sorted = true
	}

	return append([]*Item(nil), i.children...)
}

// HasChildren reports whether the item has at least one child.
func (i *Item) HasChildren() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.children) > 0
}

// SetChildren replaces the children.
func (i *Item) SetChildren(children ...*Item) *Item {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.children = append([]*Item(nil), children...)
	i.sorted = false
	return i
}

// AddChild appends a child.
func (i *Item) AddChild(child *Item) *Item {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.children = append(i.children, child)
	i.sorted = false
	return i
}

func sortByPriority(children []*Item) []*Item {
	with := make([]*Item, 0, len(children))
	var without []*Item

	for _, c := range children {
		if _, ok := c.Priority(); ok {
			with = append(with, c)
		} else {
			without = append(without, c)
		}
	}

	sort.SliceStable(with, func(a, b int) bool {
		return with[a].priority < with[b].priority
	})

	return append(with, without...)
}

// Priority returns the sort priority and whether one is set.
func (i *Item) Priority() (float64, bool) {
	return i.priority, i.hasPriority
}

// SetPriority sets the sort priority.
func (i *Item) SetPriority(p float64) *Item {
	i.priority = p
	i.hasPriority = true
	return i
}

// ClearPriority removes the sort priority.
func (i *Item) ClearPriority() *Item {
	i.priority = 0
	i.hasPriority = false
	return i
}

// CSSClass returns the optional CSS class.
func (i *Item) CSSClass() string {
	return i.cssClass
}

// SetCSSClass sets the optional CSS class. Its use depends on the renderer.
func (i *Item) SetCSSClass(class string) *Item {
	i.cssClass = class
	return i
}

// PropagatedParams returns the names of the request parameters copied onto
// the link.
func (i *Item) PropagatedParams() []string {
	return append([]string(nil), i.propagated...)
}

// SetPropagatedParams sets the names of the request parameters copied onto
// the link. For instance, propagating "mode" on a page requested with
// ?mode=42 adds mode=42 to the link.
func (i *Item) SetPropagatedParams(names ...string) *Item {
	i.propagated = append([]string(nil), names...)
	return i
}

// SetDisplayCondition sets the condition that must hold for the item to be
// displayed. A nil condition always displays the item.
func (i *Item) SetDisplayCondition(c Condition) *Item {
	i.condition = c
	return i
}

// IsHidden reports whether the item should not be displayed.
func (i *Item) IsHidden() bool {
	if i.condition == nil {
		return false
	}
	return !i.condition.IsOK()
}

// IsSeparator reports whether the item only separates its siblings.
func (i *Item) IsSeparator() bool {
	return i.separator
}

// SetActive forces the active state regardless of the request URL.
func (i *Item) SetActive(active bool) *Item {
	i.active = active
	return i
}

// Enable marks the item as active.
func (i *Item) Enable() *Item {
	return i.SetActive(true)
}

// ActivateOnURL reports whether the item becomes active when its link path
// matches the request path.
func (i *Item) ActivateOnURL() bool {
	return i.activateOnURL
}

// SetActivateOnURL enables or disables URL based activation. It is enabled
// by default.
func (i *Item) SetActivateOnURL(enabled bool) *Item {
	i.activateOnURL = enabled
	return i
}

// IsActive reports whether the item represents the page of req. An item set
// active with SetActive is always active. Otherwise the path of its link is
// compared with the request path, ignoring scheme, host, query and fragment.
func (i *Item) IsActive(req Request) bool {
	if i.active {
		return true
	}

	if !i.activateOnURL || i.url == "" {
		return false
	}

	return pathOf(i.baseLink()) == req.Path()
}

// IsExtended reports whether the children should be shown expanded. It is
// false when unset and has no effect on items without children.
func (i *Item) IsExtended() bool {
	return i.extended != nil && *i.extended
}

// ExtendedSet reports whether the extended hint was set explicitly.
func (i *Item) ExtendedSet() bool {
	return i.extended != nil
}

// SetExtended sets the extended hint.
func (i *Item) SetExtended(extended bool) *Item {
	i.extended = &extended
	return i
}

// Link returns the resolved link for req, with propagated parameters
// appended, or "" when the item is not a link.
func (i *Item) Link(req Request) string {
	if i.url == "" {
		return ""
	}
	return appendParams(i.baseLink(), i.propagated, req)
}

func (i *Item) baseLink() string {
	return resolveBase(i.rootURL, i.url)
}

// AddStyle attaches a style.
func (i *Item) AddStyle(s Style) *Item {
	i.styles = append(i.styles, s)
	return i
}

// SetStyles replaces the attached styles.
func (i *Item) SetStyles(styles ...Style) *Item {
	i.styles = append([]Style(nil), styles...)
	return i
}

// Styles returns the attached styles in insertion order.
func (i *Item) Styles() []Style {
	return append([]Style(nil), i.styles...)
}

// StyleByKind returns the single style of the given kind, or nil if none is
// attached. It fails with an *AmbiguousStyleError when more than one is.
func (i *Item) StyleByKind(kind StyleKind) (Style, error) {
	matches := i.StylesByKind(kind)
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		return nil, &AmbiguousStyleError{Kind: kind, Count: len(matches)}
	}
}

// StylesByKind returns every style of the given kind in insertion order.
func (i *Item) StylesByKind(kind StyleKind) []Style {
	var out []Style
	for _, s := range i.styles {
		if s.Kind() == kind {
			out = append(out, s)
		}
	}
	return out
}
