package menu

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mchmarny/navmenu/pkg/metric"
)

const (
	// HeaderOriginalURI carries the URI of the page the menu is rendered for
	// when the view is requested by a front proxy.
	HeaderOriginalURI = "X-Original-URI"

	// QueryURI is the query parameter carrying the page URI when the header
	// is not set.
	QueryURI = "uri"
)

// Menu represents the root menu structure. Its children and display
// condition live on a root item so they share the item ordering rules.
type Menu struct {
	// Title is the menu
	Title string

	// Description of the menu
	Description string

	// Version of the menu
	Version string

	root *Item
}

// New creates a menu with the given children.
func New(title string, children ...*Item) *Menu {
	return &Menu{
		Title: title,
		root:  NewItem("", "", WithChildren(children...)),
	}
}

// Root returns the item holding the top level children.
func (m *Menu) Root() *Item {
	return m.root
}

// Children returns the top level items sorted by priority.
func (m *Menu) Children() []*Item {
	return m.root.Children()
}

// SetChildren replaces the top level items.
func (m *Menu) SetChildren(children ...*Item) {
	m.root.SetChildren(children...)
}

// AddChild appends a top level item.
func (m *Menu) AddChild(child *Item) {
	m.root.AddChild(child)
}

// SetDisplayCondition sets the condition that must hold for the menu to be
// displayed.
func (m *Menu) SetDisplayCondition(c Condition) {
	m.root.SetDisplayCondition(c)
}

// IsHidden reports whether the menu should not be displayed.
func (m *Menu) IsHidden() bool {
	return m.root.IsHidden()
}

// Walk calls fn for every item in the tree, depth first, in display order.
// It stops descending into an item's children when fn returns false.
func (m *Menu) Walk(fn func(item *Item, depth int) bool) {
	walk(m.root.Children(), 0, fn)
}

func walk(items []*Item, depth int, fn func(*Item, int) bool) {
	for _, it := range items {
		if fn(it, depth) {
			walk(it.Children(), depth+1, fn)
		}
	}
}

// HandlerOption configures the view handler.
type HandlerOption func(*handler)

// WithRequestCounter counts served views by status label.
func WithRequestCounter(c metric.IncrementalCounter) HandlerOption {
	return func(h *handler) { h.counter = c }
}

// WithViewOptions sets the options used to resolve each view.
func WithViewOptions(opts ...ViewOption) HandlerOption {
	return func(h *handler) { h.viewOpts = append(h.viewOpts, opts...) }
}

type handler struct {
	source   func() *Menu
	counter  metric.IncrementalCounter
	viewOpts []ViewOption
}

// Handler returns an HTTP handler that responds with the menu resolved for
// the requested page as JSON.
func (m *Menu) Handler(opts ...HandlerOption) http.Handler {
	return ViewHandler(func() *Menu { return m }, opts...)
}

// ViewHandler returns an HTTP handler that resolves the menu returned by
// source on every request. The page URI is read from the X-Original-URI
// header, then from the uri query parameter, and defaults to "/".
func ViewHandler(source func() *Menu, opts ...HandlerOption) http.Handler {
	h := &handler{source: source}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handling menu request",
		"method", r.Method,
		"url", r.URL.Path,
	)

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		h.count("method_not_allowed")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	m := h.source()
	if m == nil {
		h.count("unavailable")
		http.Error(w, "menu not loaded", http.StatusServiceUnavailable)
		return
	}

	req := NewRequest(pageURI(r))
	view := Resolve(m, req, h.viewOpts...)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(view); err != nil {
		h.count("error")
		slog.Error("failed to encode menu", "error", err)
		return
	}

	h.count("ok")

	slog.Debug("menu response sent",
		"uri", req.URI,
		"items", len(view.Items),
		"status", http.StatusOK,
	)
}

func (h *handler) count(status string) {
	if h.counter != nil {
		h.counter.Increment(status)
	}
}

func pageURI(r *http.Request) string {
	if uri := r.Header.Get(HeaderOriginalURI); uri != "" {
		return uri
	}
	if uri := r.URL.Query().Get(QueryURI); uri != "" {
		return uri
	}
	return rootPath
}
