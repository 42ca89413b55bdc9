// Package watch keeps the served menu in sync with its definition file.
//
// A Holder owns the current menu tree. Trees are never mutated after they are
// built: a reload builds a fresh tree and swaps it in atomically, so readers
// always see a complete menu. A Watcher triggers reloads when the definition
// file changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/mchmarny/navmenu/pkg/logger"
	"github.com/mchmarny/navmenu/pkg/menu"
	"github.com/mchmarny/navmenu/pkg/metric"
)

// ErrNotLoaded is returned by Ready until a menu has been loaded.
var ErrNotLoaded = errors.New("menu not loaded")

// Loader builds a menu tree.
type Loader func() (*menu.Menu, error)

// Holder holds the current menu tree.
type Holder struct {
	load    Loader
	current atomic.Pointer[menu.Menu]
	reloads metric.IncrementalCounter
}

// HolderOption configures a Holder.
type HolderOption func(*Holder)

// WithReloadCounter counts reloads by result ("success" or "failure").
func WithReloadCounter(c metric.IncrementalCounter) HolderOption {
	return func(h *Holder) { h.reloads = c }
}

// NewHolder creates an empty holder. Call Reload to load the first tree.
func NewHolder(load Loader, opts ...HolderOption) *Holder {
	h := &Holder{load: load}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Menu returns the current tree, or nil before the first successful load.
func (h *Holder) Menu() *menu.Menu {
	return h.current.Load()
}

// Reload builds a new tree and swaps it in. On failure the previous tree
// stays in place.
func (h *Holder) Reload() error {
	m, err := h.load()
	if err != nil {
		h.count("failure")
		return fmt.Errorf("failed to reload menu: %w", err)
	}

	h.current.Store(m)
	h.count("success")

	logger.Component("watch").Info("menu loaded", "title", m.Title, "items", len(m.Children()))
	return nil
}

// Ready implements server.ReadinessChecker.
func (h *Holder) Ready(context.Context) error {
	if h.current.Load() == nil {
		return ErrNotLoaded
	}
	return nil
}

func (h *Holder) count(result string) {
	if h.reloads != nil {
		h.reloads.Increment(result)
	}
}
