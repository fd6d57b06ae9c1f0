package navtree

import (
	"maps"
	"slices"
)

// KeySet is an unordered set of page keys.
type KeySet map[string]struct{}

// Has reports whether key is in the set.
func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Sorted returns the keys in lexical order.
func (s KeySet) Sorted() []string {
	keys := slices.Sorted(maps.Keys(s))
	if keys == nil {
		keys = []string{}
	}
	return keys
}

// FindByRoute returns the key of the page whose route equals path.
// Keys are scanned in lexical order so duplicate links resolve the same way
// on every call.
func FindByRoute(pages PageMap, path string) (string, bool) {
	for _, key := range slices.Sorted(maps.Keys(pages)) {
		if r := pages[key].Route(); r != "" && r == path {
			return key, true
		}
	}
	return "", false
}

// ActiveKeys returns the key of the page routed at currentPath together with
// all of its ancestors. The parent walk stops on a repeated key, so
// malformed parent chains cannot loop, and it never takes more steps than
// there are pages.
func ActiveKeys(pages PageMap, currentPath string) KeySet {
	keys := KeySet{}
	active, ok := FindByRoute(pages, currentPath)
	if !ok {
		return keys
	}

	for cur := active; cur != "" && len(keys) <= len(pages); {
		if keys.Has(cur) {
			break
		}
		keys[cur] = struct{}{}
		page, ok := pages[cur]
		if !ok {
			break
		}
		cur = parentOf(page)
	}
	return keys
}
