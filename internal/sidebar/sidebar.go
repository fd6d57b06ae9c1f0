// Package sidebar holds the interactive navigation state shared by every
// consumer of one sidebar: expanded nodes, the selected node and the
// debounced filter query.
package sidebar

import (
	"maps"
	"sync"
	"time"

	"github.com/dgallion1/navtree/internal/navtree"
)

// DefaultDebounce is the quiet period before filter input takes effect.
const DefaultDebounce = 600 * time.Millisecond

// Snapshot is a read-only, JSON-safe copy of the sidebar state.
type Snapshot struct {
	OpenKeys     []string `json:"open_keys"`
	SelectedKey  string   `json:"selected_key,omitempty"`
	FilterInput  string   `json:"filter_input"`
	FilterText   string   `json:"filter_text"`
	FilterActive bool     `json:"filter_active"`
}

// Context is the shared sidebar state. It is safe for concurrent use.
type Context struct {
	mu          sync.Mutex
	openKeys    navtree.KeySet
	selectedKey string
	filterInput string
	filterText  string
	debounce    *Debouncer[string]

	nextID    int
	observers map[int]func(Snapshot)
}

func New(debounce time.Duration) *Context {
	c := &Context{
		openKeys:  navtree.KeySet{},
		observers: make(map[int]func(Snapshot)),
	}
	c.debounce = NewDebouncer(debounce, c.applyFilter)
	return c
}

// Subscribe registers fn to be called after every change.
func (c *Context) Subscribe(fn func(Snapshot)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// Toggle expands a collapsed node or collapses an expanded one.
func (c *Context) Toggle(key string) {
	c.mutate(func() {
		if c.openKeys.Has(key) {
			delete(c.openKeys, key)
		} else {
			c.openKeys[key] = struct{}{}
		}
	})
}

// Select marks key as selected and expands it. An empty key clears the
// selection.
func (c *Context) Select(key string) {
	c.mutate(func() {
		c.selectedKey = key
		if key != "" {
			c.openKeys[key] = struct{}{}
		}
	})
}

// SetOpenKeys replaces the expanded set.
func (c *Context) SetOpenKeys(keys navtree.KeySet) {
	c.mutate(func() {
		c.openKeys = maps.Clone(keys)
		if c.openKeys == nil {
			c.openKeys = navtree.KeySet{}
		}
	})
}

// FollowRoute expands the ancestors of the page routed at path and selects
// that page. Unknown routes collapse the tree and clear the selection.
func (c *Context) FollowRoute(pages navtree.PageMap, path string) {
	active := navtree.ActiveKeys(pages, path)
	selected, _ := navtree.FindByRoute(pages, path)
	c.mutate(func() {
		c.openKeys = active
		c.selectedKey = selected
	})
}

// SetFilterInput records raw user input; the effective filter follows
// after the debounce delay.
func (c *Context) SetFilterInput(text string) {
	c.mutate(func() {
		c.filterInput = text
	})
	c.debounce.Push(text)
}

// ClearFilter drops pending input and resets the filter immediately.
func (c *Context) ClearFilter() {
	c.debounce.Cancel()
	c.mutate(func() {
		c.filterInput = ""
		c.filterText = ""
	})
}

// applyFilter commits text only while it still matches the raw input, so a
// delivery that lost a race with ClearFilter or a newer keystroke is dropped.
func (c *Context) applyFilter(text string) {
	c.mutateIf(func() bool {
		if text != c.filterInput {
			return false
		}
		c.filterText = text
		return true
	})
}

// IsOpen reports whether key is expanded.
func (c *Context) IsOpen(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.openKeys.Has(key)
}

// OpenKeys returns a copy of the expanded set.
func (c *Context) OpenKeys() navtree.KeySet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.openKeys)
}

// SelectedKey returns the selected key, or "".
func (c *Context) SelectedKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedKey
}

// FilterText returns the debounced query, trimmed and lowercased.
func (c *Context) FilterText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return navtree.NormalizeQuery(c.filterText)
}

// IsFilterActive reports whether a non-blank filter is in effect.
func (c *Context) IsFilterActive() bool {
	return c.FilterText() != ""
}

// View applies the current filter to tree.
func (c *Context) View(tree []*navtree.TreeNode) []*navtree.TreeNode {
	return navtree.FilterTree(tree, c.FilterText())
}

func (c *Context) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Context) snapshotLocked() Snapshot {
	text := navtree.NormalizeQuery(c.filterText)
	return Snapshot{
		OpenKeys:     c.openKeys.Sorted(),
		SelectedKey:  c.selectedKey,
		FilterInput:  c.filterInput,
		FilterText:   text,
		FilterActive: text != "",
	}
}

func (c *Context) mutate(fn func()) {
	c.mutateIf(func() bool {
		fn()
		return true
	})
}

// mutateIf notifies observers only when fn reports a change.
func (c *Context) mutateIf(fn func() bool) {
	c.mu.Lock()
	if !fn() {
		c.mu.Unlock()
		return
	}
	snap := c.snapshotLocked()
	observers := make([]func(Snapshot), 0, len(c.observers))
	for _, o := range c.observers {
		observers = append(observers, o)
	}
	c.mu.Unlock()

	for _, o := range observers {
		o(snap)
	}
}
