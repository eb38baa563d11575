package tags

import (
	"maps"
	"slices"
)

// Selection is the set of tag names active for filtering.
//
// It is keyed by name, so two tags sharing a name cannot be told apart. Forest
// DuplicateNames reports where that happens.
type Selection map[string]struct{}

// NewSelection builds a selection from names.
func NewSelection(names ...string) Selection {
	sel := make(Selection, len(names))
	for _, name := range names {
		sel[name] = struct{}{}
	}
	return sel
}

// Has reports whether name is selected.
func (s Selection) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s Selection) Len() int {
	return len(s)
}

func (s Selection) Clone() Selection {
	if s == nil {
		return Selection{}
	}
	return maps.Clone(s)
}

func (s Selection) Equal(other Selection) bool {
	if len(s) != len(other) {
		return false
	}
	for name := range s {
		if !other.Has(name) {
			return false
		}
	}
	return true
}

// Names returns the selected names sorted.
func (s Selection) Names() []string {
	return slices.Sorted(maps.Keys(s))
}

// Toggle flips the node with the given id together with its whole subtree.
//
// When the node's name is selected, the node and every descendant are removed;
// otherwise they are all added. Ancestors are never touched. The input selection
// is not modified. An unknown id returns an unchanged copy.
func Toggle(f *Forest, sel Selection, id int64) Selection {
	next := sel.Clone()
	node, ok := f.Node(id)
	if !ok {
		return next
	}

	subtree := f.Descendants(id)
	if sel.Has(node.Name) {
		for _, n := range subtree {
			delete(next, n.Name)
		}
		return next
	}
	for _, n := range subtree {
		next[n.Name] = struct{}{}
	}
	return next
}

// PruneSelection drops names that no tag in the forest carries anymore.
func (f *Forest) PruneSelection(sel Selection) Selection {
	known := make(map[string]struct{}, f.Len())
	if f != nil {
		for _, node := range f.nodes {
			known[node.Name] = struct{}{}
		}
	}
	next := make(Selection, len(sel))
	for name := range sel {
		if _, ok := known[name]; ok {
			next[name] = struct{}{}
		}
	}
	return next
}
