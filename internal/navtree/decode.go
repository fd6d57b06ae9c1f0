package navtree

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// Decode reads a contents document. Only malformed JSON is an error. A body
// of the wrong shape decodes field by field: a field of the wrong type is
// left nil, and a page that does not fit Page is dropped, so BuildTree
// yields an empty or partial tree.
func Decode(r io.Reader) (*Content, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode contents: %w", err)
	}

	c := &Content{}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return c, nil
	}
	if v, ok := fields["pages"]; ok {
		c.Pages = decodePages(v)
	}
	if v, ok := fields["rootLevelKeys"]; ok {
		var keys []string
		if err := json.Unmarshal(v, &keys); err == nil {
			c.RootLevelKeys = keys
		}
	}
	return c, nil
}

func decodePages(raw json.RawMessage) PageMap {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil || entries == nil {
		return nil
	}
	pages := make(PageMap, len(entries))
	for key, v := range entries {
		var p Page
		if err := json.Unmarshal(v, &p); err != nil {
			continue
		}
		pages[key] = p
	}
	return pages
}

// Encode writes v as indented JSON.
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
