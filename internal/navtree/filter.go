package navtree

import "strings"

// NormalizeQuery prepares user input for FilterTree.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// FilterTree keeps the nodes whose name contains query (case-insensitive on
// the name side; query must already be normalized) plus their ancestors.
// A matching node keeps its entire subtree. An empty query returns nodes
// as-is. Input nodes are never modified: pruned ancestors are shallow copies.
// nodes must be acyclic, as BuildTree and BuildTreeDepth guarantee; depth
// is already bounded there.
func FilterTree(nodes []*TreeNode, query string) []*TreeNode {
	if query == "" {
		return nodes
	}
	out := make([]*TreeNode, 0, len(nodes))
	for _, n := range nodes {
		if fn := filterNode(n, query); fn != nil {
			out = append(out, fn)
		}
	}
	return out
}

func filterNode(n *TreeNode, query string) *TreeNode {
	if n == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(n.Name), query) {
		return n
	}
	var kept []*TreeNode
	for _, child := range n.Children {
		if fc := filterNode(child, query); fc != nil {
			kept = append(kept, fc)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	cp := *n
	cp.Children = kept
	return &cp
}
