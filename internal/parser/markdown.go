package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/navtree/internal/navtree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser reads a summary-style outline: headings become container
// pages, list items become pages, and an item's first link is its target.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*navtree.Content, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	stack := newHeadingStack()
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			stack.push(&entry{name: inlineText(node, src)}, node.Level)
		case *ast.List:
			parent := stack.top()
			for _, e := range listEntries(node, src) {
				parent.add(e)
			}
		case *ast.Paragraph:
			// Bare links between lists, e.g. "[Introduction](intro.html)".
			if e := linkEntry(node, src); e != nil {
				stack.top().add(e)
			}
		}
	}

	return toContent(stack.root), nil
}

func listEntries(list *ast.List, src []byte) []*entry {
	var out []*entry
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		if _, ok := item.(*ast.ListItem); !ok {
			continue
		}
		e := &entry{}
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch block := c.(type) {
			case *ast.List:
				e.children = append(e.children, listEntries(block, src)...)
			default:
				if e.name == "" {
					e.name = inlineText(block, src)
					e.link = firstLink(block)
				}
			}
		}
		if e.name == "" && len(e.children) == 0 {
			continue
		}
		out = append(out, e)
	}
	return out
}

func linkEntry(para *ast.Paragraph, src []byte) *entry {
	link, ok := para.FirstChild().(*ast.Link)
	if !ok {
		return nil
	}
	return &entry{
		name: inlineText(link, src),
		link: normalizeLink(string(link.Destination)),
	}
}

// firstLink returns the destination of the first link inside n.
func firstLink(n ast.Node) string {
	var dest string
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if l, ok := node.(*ast.Link); ok {
			dest = normalizeLink(string(l.Destination))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return dest
}

// inlineText gets the plain text content of a goldmark node.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return strings.Join(strings.Fields(buf.String()), " ")
}
