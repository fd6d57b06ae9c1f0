package navtree

import (
	"reflect"
	"testing"
)

func TestBuildTree_EmptyInput(t *testing.T) {
	cases := map[string]*Content{
		"nil content":     nil,
		"zero content":    {},
		"nil root keys":   {Pages: PageMap{"a": {Key: "a", Name: "A"}}},
		"nil pages":       {RootLevelKeys: []string{"a"}},
		"empty root keys": {Pages: PageMap{}, RootLevelKeys: []string{}},
	}
	for name, c := range cases {
		tree := BuildTree(c)
		if tree == nil {
			t.Errorf("%s: expected non-nil empty slice", name)
		}
		if len(tree) != 0 {
			t.Errorf("%s: expected 0 nodes, got %d", name, len(tree))
		}
	}
}

func TestBuildTree_OneLevel(t *testing.T) {
	page1 := Page{Key: "key1", Name: "Node 1", Level: 0, Link: StringPtr("link1.html")}
	page2 := Page{Key: "key2", Name: "Node 2", Level: 0, Link: StringPtr("link2.html")}
	c := &Content{
		Pages:         PageMap{"key1": page1, "key2": page2},
		RootLevelKeys: []string{"key1", "key2"},
	}

	tree := BuildTree(c)
	if len(tree) != 2 {
		t.Fatalf("expected 2 root nodes, got %d", len(tree))
	}
	for i, want := range []Page{page1, page2} {
		if !reflect.DeepEqual(tree[i].Page, want) {
			t.Errorf("node[%d]: expected page %+v, got %+v", i, want, tree[i].Page)
		}
		if tree[i].Children == nil || len(tree[i].Children) != 0 {
			t.Errorf("node[%d]: expected empty non-nil children, got %v", i, tree[i].Children)
		}
	}
}

func TestBuildTree_TwoLevels(t *testing.T) {
	c := twoLevelContent()
	tree := BuildTree(c)

	if len(tree) != 2 {
		t.Fatalf("expected 2 root nodes, got %d", len(tree))
	}
	if tree[0].Key != "p1" {
		t.Errorf("expected first root %q, got %q", "p1", tree[0].Key)
	}
	if len(tree[0].Children) != 2 {
		t.Fatalf("expected 2 children under p1, got %d", len(tree[0].Children))
	}
	for i, key := range []string{"c1", "c2"} {
		child := tree[0].Children[i]
		if !reflect.DeepEqual(child.Page, c.Pages[key]) {
			t.Errorf("child[%d]: expected page %+v, got %+v", i, c.Pages[key], child.Page)
		}
		if len(child.Children) != 0 {
			t.Errorf("child[%d]: expected no children, got %d", i, len(child.Children))
		}
	}
	if tree[1].Key != "p2" {
		t.Errorf("expected second root %q, got %q", "p2", tree[1].Key)
	}
	if len(tree[1].Children) != 0 {
		t.Errorf("expected p2 to have no children, got %d", len(tree[1].Children))
	}
}

func TestBuildTree_SkipsDanglingKeys(t *testing.T) {
	c := &Content{
		Pages: PageMap{
			"p1": {Key: "p1", Name: "Parent", ChildPageKeys: []string{"ghost", "c1"}},
			"c1": {Key: "c1", Name: "Child", ParentKey: StringPtr("p1")},
		},
		RootLevelKeys: []string{"missing", "p1"},
	}
	tree := BuildTree(c)
	if len(tree) != 1 {
		t.Fatalf("expected 1 root node, got %d", len(tree))
	}
	if len(tree[0].Children) != 1 || tree[0].Children[0].Key != "c1" {
		t.Fatalf("expected only c1 under p1, got %+v", tree[0].Children)
	}
	if Find(tree, "ghost") != nil || Find(tree, "missing") != nil {
		t.Error("expected dangling keys to be absent from the tree")
	}
}

func TestBuildTree_PreservesChildOrder(t *testing.T) {
	c := &Content{
		Pages: PageMap{
			"root": {Key: "root", Name: "Root", ChildPageKeys: []string{"z", "a", "m"}},
			"a":    {Key: "a", Name: "A"},
			"m":    {Key: "m", Name: "M"},
			"z":    {Key: "z", Name: "Z"},
		},
		RootLevelKeys: []string{"root"},
	}
	tree := BuildTree(c)
	var got []string
	for _, ch := range tree[0].Children {
		got = append(got, ch.Key)
	}
	want := []string{"z", "a", "m"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected order %v, got %v", want, got)
	}
}

func TestBuildTree_DoesNotShareChildKeySlices(t *testing.T) {
	c := twoLevelContent()
	tree := BuildTree(c)
	tree[0].ChildPageKeys[0] = "mutated"
	if c.Pages["p1"].ChildPageKeys[0] != "c1" {
		t.Error("expected page map to be unaffected by tree mutation")
	}
}

func TestBuildTree_CycleTerminates(t *testing.T) {
	c := &Content{
		Pages: PageMap{
			"a": {Key: "a", Name: "A", ChildPageKeys: []string{"b"}},
			"b": {Key: "b", Name: "B", ParentKey: StringPtr("a"), ChildPageKeys: []string{"a", "c"}},
			"c": {Key: "c", Name: "C", ParentKey: StringPtr("b")},
		},
		RootLevelKeys: []string{"a"},
	}
	tree := BuildTree(c)
	if got := Count(tree); got != 3 {
		t.Fatalf("expected 3 nodes after cutting the cycle, got %d", got)
	}
	b := tree[0].Children[0]
	if len(b.Children) != 1 || b.Children[0].Key != "c" {
		t.Errorf("expected b to keep only c, got %+v", b.Children)
	}
}

func TestBuildTree_SharedChildIsNotACycle(t *testing.T) {
	c := &Content{
		Pages: PageMap{
			"a":      {Key: "a", Name: "A", ChildPageKeys: []string{"shared"}},
			"b":      {Key: "b", Name: "B", ChildPageKeys: []string{"shared"}},
			"shared": {Key: "shared", Name: "Shared"},
		},
		RootLevelKeys: []string{"a", "b"},
	}
	tree := BuildTree(c)
	if len(tree[0].Children) != 1 || len(tree[1].Children) != 1 {
		t.Errorf("expected shared page under both roots, got %d and %d", len(tree[0].Children), len(tree[1].Children))
	}
}

func TestBuildTreeDepth_Bound(t *testing.T) {
	c := chainContent(10)
	tree := BuildTreeDepth(c, 3)
	if got := Count(tree); got != 3 {
		t.Errorf("expected depth bound of 3 nodes, got %d", got)
	}
}

func twoLevelContent() *Content {
	return &Content{
		Pages: PageMap{
			"p1": {Key: "p1", Name: "Parent 1", Level: 0, Link: StringPtr("p1.html"), ChildPageKeys: []string{"c1", "c2"}},
			"c1": {Key: "c1", Name: "Child 1.1", Level: 1, Link: StringPtr("c1.html"), ParentKey: StringPtr("p1")},
			"c2": {Key: "c2", Name: "Child 1.2", Level: 1, Link: StringPtr("c2.html"), ParentKey: StringPtr("p1")},
			"p2": {Key: "p2", Name: "Parent 2", Level: 0, Link: StringPtr("p2.html")},
		},
		RootLevelKeys: []string{"p1", "p2"},
	}
}

// chainContent builds n0 -> n1 -> ... -> n(depth-1).
func chainContent(depth int) *Content {
	pages := PageMap{}
	for i := range depth {
		key := chainKey(i)
		p := Page{Key: key, Name: "Node " + key, Level: i}
		if i > 0 {
			p.ParentKey = StringPtr(chainKey(i - 1))
		}
		if i < depth-1 {
			p.ChildPageKeys = []string{chainKey(i + 1)}
		}
		pages[key] = p
	}
	return &Content{Pages: pages, RootLevelKeys: []string{chainKey(0)}}
}

func chainKey(i int) string {
	return "n" + string(rune('a'+i%26)) + string(rune('a'+i/26))
}
