package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/navtree/internal/navtree"
)

// CSVParser reads one page per row. The header must name the columns
// key, name, link and parent_key; level is optional. Roots and children
// keep row order.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*navtree.Content, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	c := &navtree.Content{
		Pages:         navtree.PageMap{},
		RootLevelKeys: []string{},
	}
	if len(records) == 0 {
		return c, nil
	}

	cols := map[string]int{}
	for i, h := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"key", "name", "link", "parent_key"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("parse csv: missing column %q", required)
		}
	}
	cell := func(row []string, col string) string {
		i, ok := cols[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var order []string
	for n, row := range records[1:] {
		key := cell(row, "key")
		if key == "" {
			continue
		}
		if _, dup := c.Pages[key]; dup {
			return nil, fmt.Errorf("parse csv: row %d: duplicate key %q", n+2, key)
		}
		page := navtree.Page{Key: key, Name: cell(row, "name")}
		if link := normalizeLink(cell(row, "link")); link != "" {
			page.Link = navtree.StringPtr(link)
		}
		if parent := cell(row, "parent_key"); parent != "" {
			page.ParentKey = navtree.StringPtr(parent)
		}
		if lv, err := strconv.Atoi(cell(row, "level")); err == nil {
			page.Level = lv
		}
		c.Pages[key] = page
		order = append(order, key)
	}

	for _, key := range order {
		page := c.Pages[key]
		if page.ParentKey == nil {
			c.RootLevelKeys = append(c.RootLevelKeys, key)
			continue
		}
		parent, ok := c.Pages[*page.ParentKey]
		if !ok {
			// Left dangling; navtree.Check reports it.
			continue
		}
		parent.ChildPageKeys = append(parent.ChildPageKeys, key)
		c.Pages[*page.ParentKey] = parent
	}
	return c, nil
}
