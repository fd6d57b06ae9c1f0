// Package render writes navigation trees as an HTML sidebar or a Markdown
// outline.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/navtree/internal/navtree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Options carries the interactive state that decorates the sidebar.
type Options struct {
	ActiveKeys  navtree.KeySet
	OpenKeys    navtree.KeySet
	SelectedKey string
	// ExpandAll opens every branch, e.g. while a filter is active.
	ExpandAll bool
}

func (o Options) expanded(key string) bool {
	return o.ExpandAll || o.OpenKeys.Has(key) || o.ActiveKeys.Has(key)
}

// HTML writes nodes as <nav class="sidebar"> with nested lists. Collapsed
// branches are rendered with the hidden attribute.
func HTML(w io.Writer, nodes []*navtree.TreeNode, opts Options) error {
	nav := element(atom.Nav, attr("class", "sidebar"))
	if len(nodes) > 0 {
		nav.AppendChild(list(nodes, opts, false))
	}
	if err := html.Render(w, nav); err != nil {
		return fmt.Errorf("render sidebar: %w", err)
	}
	return nil
}

func list(nodes []*navtree.TreeNode, opts Options, hidden bool) *html.Node {
	ul := element(atom.Ul)
	if hidden {
		ul.Attr = append(ul.Attr, attr("hidden", ""))
	}
	for _, n := range nodes {
		ul.AppendChild(item(n, opts))
	}
	return ul
}

func item(n *navtree.TreeNode, opts Options) *html.Node {
	li := element(atom.Li, attr("data-key", n.Key))
	if classes := itemClasses(n, opts); classes != "" {
		li.Attr = append(li.Attr, attr("class", classes))
	}

	var label *html.Node
	if n.HasLink() {
		label = element(atom.A, attr("href", n.Route()))
		if n.Key == opts.SelectedKey {
			label.Attr = append(label.Attr, attr("aria-current", "page"))
		}
	} else {
		label = element(atom.Span)
	}
	label.AppendChild(&html.Node{Type: html.TextNode, Data: n.Name})
	li.AppendChild(label)

	if len(n.Children) > 0 {
		li.AppendChild(list(n.Children, opts, !opts.expanded(n.Key)))
	}
	return li
}

func itemClasses(n *navtree.TreeNode, opts Options) string {
	var classes []string
	if len(n.Children) > 0 {
		if opts.expanded(n.Key) {
			classes = append(classes, "open")
		} else {
			classes = append(classes, "closed")
		}
	}
	if opts.ActiveKeys.Has(n.Key) {
		classes = append(classes, "active")
	}
	if n.Key == opts.SelectedKey && n.Key != "" {
		classes = append(classes, "selected")
	}
	return strings.Join(classes, " ")
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}
