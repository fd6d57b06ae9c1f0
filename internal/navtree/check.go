package navtree

import (
	"fmt"
	"maps"
	"slices"
)

// IssueKind classifies a data-quality problem in a contents document.
type IssueKind string

const (
	IssueDanglingRoot   IssueKind = "dangling_root"
	IssueDanglingChild  IssueKind = "dangling_child"
	IssueDanglingParent IssueKind = "dangling_parent"
	IssueParentMismatch IssueKind = "parent_mismatch"
	IssueKeyMismatch    IssueKind = "key_mismatch"
	IssueCycle          IssueKind = "cycle"
)

// Issue is a single diagnostic reported by Check.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Key     string    `json:"key"`
	Ref     string    `json:"ref,omitempty"`
	Message string    `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Kind, i.Message)
}

// Check reports dangling references, inconsistent parent pointers and
// reference cycles. It never fails: BuildTree and ActiveKeys tolerate
// everything reported here, so issues are diagnostics only.
func Check(c *Content) []Issue {
	if c == nil || c.Pages == nil {
		return nil
	}
	var issues []Issue
	keys := slices.Sorted(maps.Keys(c.Pages))

	for _, key := range c.RootLevelKeys {
		if _, ok := c.Pages[key]; !ok {
			issues = append(issues, Issue{
				Kind:    IssueDanglingRoot,
				Key:     key,
				Message: fmt.Sprintf("root key %q has no page", key),
			})
		}
	}

	for _, key := range keys {
		page := c.Pages[key]
		if page.Key != key {
			issues = append(issues, Issue{
				Kind:    IssueKeyMismatch,
				Key:     key,
				Ref:     page.Key,
				Message: fmt.Sprintf("page stored under %q declares key %q", key, page.Key),
			})
		}
		if parent := parentOf(page); parent != "" {
			if _, ok := c.Pages[parent]; !ok {
				issues = append(issues, Issue{
					Kind:    IssueDanglingParent,
					Key:     key,
					Ref:     parent,
					Message: fmt.Sprintf("page %q points at missing parent %q", key, parent),
				})
			}
		}
		for _, child := range page.ChildPageKeys {
			cp, ok := c.Pages[child]
			if !ok {
				issues = append(issues, Issue{
					Kind:    IssueDanglingChild,
					Key:     key,
					Ref:     child,
					Message: fmt.Sprintf("page %q lists missing child %q", key, child),
				})
				continue
			}
			if parentOf(cp) != key {
				issues = append(issues, Issue{
					Kind:    IssueParentMismatch,
					Key:     key,
					Ref:     child,
					Message: fmt.Sprintf("child %q of %q has parent %q", child, key, parentOf(cp)),
				})
			}
		}
	}

	issues = append(issues, childCycles(c.Pages, keys)...)
	issues = append(issues, parentCycles(c.Pages, keys)...)
	return issues
}

// childCycles finds back edges in the ChildPageKeys graph.
func childCycles(pages PageMap, keys []string) []Issue {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(pages))
	var issues []Issue

	var visit func(key string)
	visit = func(key string) {
		state[key] = visiting
		for _, child := range pages[key].ChildPageKeys {
			if _, ok := pages[child]; !ok {
				continue
			}
			switch state[child] {
			case visiting:
				issues = append(issues, Issue{
					Kind:    IssueCycle,
					Key:     key,
					Ref:     child,
					Message: fmt.Sprintf("child list of %q leads back to %q", key, child),
				})
			case unvisited:
				visit(child)
			}
		}
		state[key] = done
	}

	for _, key := range keys {
		if state[key] == unvisited {
			visit(key)
		}
	}
	return issues
}

// parentCycles finds pages whose parent chain revisits a key.
func parentCycles(pages PageMap, keys []string) []Issue {
	var issues []Issue
	reported := make(map[string]bool)
	for _, start := range keys {
		seen := map[string]bool{}
		for cur := start; cur != ""; {
			if seen[cur] {
				if !reported[cur] {
					reported[cur] = true
					issues = append(issues, Issue{
						Kind:    IssueCycle,
						Key:     cur,
						Message: fmt.Sprintf("parent chain of %q loops", cur),
					})
				}
				break
			}
			seen[cur] = true
			page, ok := pages[cur]
			if !ok {
				break
			}
			cur = parentOf(page)
		}
	}
	return issues
}
