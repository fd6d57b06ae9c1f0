package navtree

// Walk visits nodes depth-first in display order. Returning false from fn
// skips the node's children. Trees from BuildTreeDepth are acyclic, so the
// walk ends at their depth bound.
func Walk(nodes []*TreeNode, fn func(n *TreeNode, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []*TreeNode, depth int, fn func(*TreeNode, int) bool) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if fn(n, depth) {
			walk(n.Children, depth+1, fn)
		}
	}
}

// Count returns the number of nodes in the forest.
func Count(nodes []*TreeNode) int {
	total := 0
	Walk(nodes, func(*TreeNode, int) bool {
		total++
		return true
	})
	return total
}

// Find returns the first node with the given key.
func Find(nodes []*TreeNode, key string) *TreeNode {
	var found *TreeNode
	Walk(nodes, func(n *TreeNode, _ int) bool {
		if found != nil {
			return false
		}
		if n.Key == key {
			found = n
			return false
		}
		return true
	})
	return found
}
