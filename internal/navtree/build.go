package navtree

// BuildTree converts the flat page map into root nodes ordered by
// RootLevelKeys. Missing content, pages, or root keys yield an empty slice.
// Keys that do not resolve to a page are skipped.
func BuildTree(c *Content) []*TreeNode {
	return BuildTreeDepth(c, DefaultMaxDepth)
}

// BuildTreeDepth is BuildTree with an explicit depth bound. Nodes at the
// bound are emitted without children, and a key already present on the
// path from the root is skipped, so cyclic child lists terminate.
func BuildTreeDepth(c *Content, maxDepth int) []*TreeNode {
	if c == nil || c.Pages == nil || c.RootLevelKeys == nil {
		return []*TreeNode{}
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	b := &builder{
		pages:    c.Pages,
		maxDepth: maxDepth,
		onPath:   make(map[string]bool),
	}
	return b.nodes(c.RootLevelKeys, 0)
}

type builder struct {
	pages    PageMap
	maxDepth int
	onPath   map[string]bool
}

func (b *builder) nodes(keys []string, depth int) []*TreeNode {
	out := make([]*TreeNode, 0, len(keys))
	for _, key := range keys {
		page, ok := b.pages[key]
		if !ok || b.onPath[key] {
			continue
		}
		out = append(out, b.node(key, page, depth))
	}
	return out
}

func (b *builder) node(key string, page Page, depth int) *TreeNode {
	n := &TreeNode{Page: page.clone(), Children: []*TreeNode{}}
	if len(page.ChildPageKeys) == 0 || depth+1 >= b.maxDepth {
		return n
	}
	b.onPath[key] = true
	n.Children = b.nodes(page.ChildPageKeys, depth+1)
	delete(b.onPath, key)
	return n
}
