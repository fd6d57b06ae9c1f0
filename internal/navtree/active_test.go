package navtree

import (
	"reflect"
	"testing"
)

func TestActiveKeys_CollectsAncestors(t *testing.T) {
	c := &Content{
		Pages: PageMap{
			"guide":   {Key: "guide", Name: "Guide"},
			"install": {Key: "install", Name: "Install", ParentKey: StringPtr("guide")},
			"linux":   {Key: "linux", Name: "Linux", ParentKey: StringPtr("install"), Link: StringPtr("linux.html")},
			"other":   {Key: "other", Name: "Other", Link: StringPtr("other.html")},
		},
	}
	got := ActiveKeys(c.Pages, "/linux.html").Sorted()
	want := []string{"guide", "install", "linux"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestActiveKeys_NoMatch(t *testing.T) {
	pages := PageMap{"a": {Key: "a", Link: StringPtr("a.html")}}
	for _, path := range []string{"/", "/b.html", "a.html", ""} {
		if got := ActiveKeys(pages, path); len(got) != 0 {
			t.Errorf("path %q: expected empty set, got %v", path, got.Sorted())
		}
	}
}

func TestActiveKeys_IgnoresContainerPages(t *testing.T) {
	pages := PageMap{
		"empty": {Key: "empty", Link: StringPtr("")},
		"nil":   {Key: "nil"},
	}
	if got := ActiveKeys(pages, "/"); len(got) != 0 {
		t.Errorf("expected container pages never to match, got %v", got.Sorted())
	}
}

func TestActiveKeys_NilPages(t *testing.T) {
	if got := ActiveKeys(nil, "/a.html"); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil set, got %v", got)
	}
}

func TestActiveKeys_ParentCycleTerminates(t *testing.T) {
	pages := PageMap{
		"a": {Key: "a", ParentKey: StringPtr("b"), Link: StringPtr("a.html")},
		"b": {Key: "b", ParentKey: StringPtr("a")},
	}
	got := ActiveKeys(pages, "/a.html").Sorted()
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("expected [a b], got %v", got)
	}
}

func TestActiveKeys_DanglingParentIncluded(t *testing.T) {
	pages := PageMap{
		"a": {Key: "a", ParentKey: StringPtr("gone"), Link: StringPtr("a.html")},
	}
	got := ActiveKeys(pages, "/a.html")
	if !got.Has("a") || !got.Has("gone") || len(got) != 2 {
		t.Errorf("expected {a, gone}, got %v", got.Sorted())
	}
}

func TestActiveKeys_ChainDeeperThanDefaultBound(t *testing.T) {
	depth := DefaultMaxDepth + 40
	c := chainContent(depth)
	last := chainKey(depth - 1)
	p := c.Pages[last]
	p.Link = StringPtr("deep.html")
	c.Pages[last] = p

	got := ActiveKeys(c.Pages, "/deep.html")
	if len(got) != depth {
		t.Errorf("expected every ancestor of the deep page (%d keys), got %d", depth, len(got))
	}
	if !got.Has(chainKey(0)) {
		t.Errorf("expected root %q to be active", chainKey(0))
	}
}

func TestFindByRoute_Deterministic(t *testing.T) {
	pages := PageMap{
		"b": {Key: "b", Link: StringPtr("dup.html")},
		"a": {Key: "a", Link: StringPtr("dup.html")},
	}
	for range 10 {
		key, ok := FindByRoute(pages, "/dup.html")
		if !ok || key != "a" {
			t.Fatalf("expected key %q, got %q (ok=%v)", "a", key, ok)
		}
	}
}
