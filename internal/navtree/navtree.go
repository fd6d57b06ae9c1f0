// Package navtree turns a flat, key-indexed page map into a navigable
// hierarchy and derives filtered and route-driven views of it.
package navtree

import "slices"

// DefaultMaxDepth is the depth at which BuildTree stops descending. Walks
// over an already built tree need no bound of their own.
const DefaultMaxDepth = 256

// Page is a single navigation entry as published in the contents document.
type Page struct {
	Key           string   `json:"key"`
	Name          string   `json:"name"`
	Level         int      `json:"level"`                   // Display hint only; depth is structural.
	Link          *string  `json:"link"`                    // nil for container pages
	ParentKey     *string  `json:"parentKey,omitempty"`     // nil for root pages
	ChildPageKeys []string `json:"childPageKeys,omitempty"` // Display order of children.
}

// PageMap is the flat key -> page lookup table.
type PageMap map[string]Page

// Content is the fetched contents document.
type Content struct {
	Pages         PageMap  `json:"pages"`
	RootLevelKeys []string `json:"rootLevelKeys"`
}

// TreeNode is a page with its children materialized.
type TreeNode struct {
	Page
	Children []*TreeNode `json:"children"`
}

// HasLink reports whether the page is navigable.
func (p Page) HasLink() bool {
	return p.Link != nil && *p.Link != ""
}

// Route returns the router path for the page, or "" for container pages.
func (p Page) Route() string {
	if !p.HasLink() {
		return ""
	}
	return "/" + *p.Link
}

func (p Page) clone() Page {
	p.ChildPageKeys = slices.Clone(p.ChildPageKeys)
	return p
}

// StringPtr is a convenience for building pages in code.
func StringPtr(s string) *string {
	return &s
}

func parentOf(p Page) string {
	if p.ParentKey == nil {
		return ""
	}
	return *p.ParentKey
}
