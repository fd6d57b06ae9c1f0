package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/navtree/internal/navtree"
)

var mdEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`, `*`, `\*`, `_`, `\_`, "`", "\\`")

// Markdown writes nodes as a nested list; linked pages become Markdown
// links to their route.
func Markdown(w io.Writer, nodes []*navtree.TreeNode) error {
	bw := bufio.NewWriter(w)
	navtree.Walk(nodes, func(n *navtree.TreeNode, depth int) bool {
		bw.WriteString(strings.Repeat("  ", depth))
		bw.WriteString("- ")
		name := mdEscaper.Replace(n.Name)
		if n.HasLink() {
			bw.WriteString("[" + name + "](" + n.Route() + ")")
		} else {
			bw.WriteString(name)
		}
		bw.WriteByte('\n')
		return true
	})
	return bw.Flush()
}
