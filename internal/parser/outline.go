package parser

import (
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/navtree/internal/navtree"
)

// entry is one outline item before keys are assigned.
type entry struct {
	key      string // explicit key, if the source carries one
	name     string
	link     string
	children []*entry
}

func (e *entry) add(child *entry) {
	e.children = append(e.children, child)
}

// headingStack nests entries by heading level. Level 0 is the root.
type headingStack struct {
	root    *entry
	entries []stackEntry
}

type stackEntry struct {
	node  *entry
	level int
}

func newHeadingStack() *headingStack {
	root := &entry{}
	return &headingStack{root: root, entries: []stackEntry{{node: root, level: 0}}}
}

// push places e under the nearest entry with a lower level.
func (s *headingStack) push(e *entry, level int) {
	for len(s.entries) > 1 && s.entries[len(s.entries)-1].level >= level {
		s.entries = s.entries[:len(s.entries)-1]
	}
	s.top().add(e)
	s.entries = append(s.entries, stackEntry{node: e, level: level})
}

func (s *headingStack) top() *entry {
	return s.entries[len(s.entries)-1].node
}

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// Slugify converts a string to a URL/path-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 50 {
		s = strings.TrimRight(s[:50], "-")
	}
	return s
}

// normalizeLink turns an href into a contents link fragment.
func normalizeLink(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	return strings.TrimPrefix(href, "/")
}

// toContent flattens the outline under root into a contents document.
// Keys come from the explicit key, the link, or the name, in that order,
// and are made unique with numeric suffixes.
func toContent(root *entry) *navtree.Content {
	c := &navtree.Content{
		Pages:         navtree.PageMap{},
		RootLevelKeys: []string{},
	}
	used := map[string]int{}

	var assign func(e *entry, parent string, level int) string
	assign = func(e *entry, parent string, level int) string {
		key := uniqueKey(used, baseKey(e))
		page := navtree.Page{Key: key, Name: e.name, Level: level}
		if e.link != "" {
			page.Link = navtree.StringPtr(e.link)
		}
		if parent != "" {
			page.ParentKey = navtree.StringPtr(parent)
		}
		// Reserve the key before descending so children cannot take it.
		c.Pages[key] = page
		for _, child := range e.children {
			page.ChildPageKeys = append(page.ChildPageKeys, assign(child, key, level+1))
		}
		c.Pages[key] = page
		return key
	}

	for _, e := range root.children {
		c.RootLevelKeys = append(c.RootLevelKeys, assign(e, "", 0))
	}
	return c
}

func baseKey(e *entry) string {
	if k := strings.TrimSpace(e.key); k != "" {
		return k
	}
	if e.link != "" {
		trimmed := strings.TrimSuffix(e.link, path.Ext(e.link))
		if s := Slugify(trimmed); s != "" {
			return s
		}
	}
	if s := Slugify(e.name); s != "" {
		return s
	}
	return "page"
}

func uniqueKey(used map[string]int, base string) string {
	used[base]++
	n := used[base]
	if n == 1 {
		return base
	}
	for {
		candidate := base + "-" + strconv.Itoa(n)
		if used[candidate] == 0 {
			used[candidate] = 1
			return candidate
		}
		n++
	}
}
