package parser

import (
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/navtree/internal/navtree"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser turns the document's bookmarks into container pages.
type PDFParser struct{}

func (p *PDFParser) Parse(r io.Reader, filename string) (*navtree.Content, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "navtree-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	root := &entry{children: outlineEntries(reader.Outline().Child)}
	return toContent(root), nil
}

func outlineEntries(items []pdflib.Outline) []*entry {
	out := make([]*entry, 0, len(items))
	for _, item := range items {
		out = append(out, &entry{
			name:     item.Title,
			children: outlineEntries(item.Child),
		})
	}
	return out
}
