package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/navtree/internal/navtree"
)

// TextParser reads an indented outline, one page per line:
//
//	Guide
//	  Installation | install.html
//	  - Configuration | config.html
//
// Two spaces or one tab add a level. A leading "- " or "* " bullet is
// ignored, "| link" sets the page link, and lines starting with "#" are
// comments.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*navtree.Content, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	stack := newHeadingStack()
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		level := indentLevel(line) + 1
		stack.push(lineEntry(line), level)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return toContent(stack.root), nil
}

func indentLevel(line string) int {
	spaces := 0
	for _, r := range line {
		switch r {
		case ' ':
			spaces++
		case '\t':
			spaces += 2
		default:
			return spaces / 2
		}
	}
	return spaces / 2
}

func lineEntry(line string) *entry {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "- ")
	line = strings.TrimPrefix(line, "* ")
	name, link, _ := strings.Cut(line, "|")
	return &entry{
		name: strings.TrimSpace(name),
		link: normalizeLink(link),
	}
}
