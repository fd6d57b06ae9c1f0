package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/navtree/internal/navtree"
	"golang.org/x/net/html"
)

// HTMLParser reads nested <ul>/<ol> lists. Each <li> becomes a page named
// after its first <a> (or its own text) and linked to that anchor's href.
// A data-key attribute on the <li> is used as the page key.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*navtree.Content, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	root := &entry{}
	scope := findElement(doc, "nav")
	if scope == nil {
		scope = doc
	}
	if list := findList(scope); list != nil {
		root.children = htmlListEntries(list)
	}
	return toContent(root), nil
}

func htmlListEntries(list *html.Node) []*entry {
	var out []*entry
	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		e := &entry{key: attr(li, "data-key")}
		var label strings.Builder
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case isList(c):
				e.children = append(e.children, htmlListEntries(c)...)
			case c.Type == html.ElementNode && c.Data == "a" && e.link == "" && strings.TrimSpace(label.String()) == "":
				e.link = normalizeLink(attr(c, "href"))
				label.WriteString(textContent(c))
			default:
				if e.link == "" {
					label.WriteString(" " + textContent(c))
				}
			}
		}
		e.name = strings.Join(strings.Fields(label.String()), " ")
		if e.name == "" && len(e.children) == 0 {
			continue
		}
		out = append(out, e)
	}
	return out
}

func isList(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.Data == "ul" || n.Data == "ol")
}

func findList(n *html.Node) *html.Node {
	if isList(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if l := findList(c); l != nil {
			return l
		}
	}
	return nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}
