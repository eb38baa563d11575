package tags

import "slices"

// TagRecord is a tag as the backend returns it: flat, with the parent referenced by id.
type TagRecord struct {
	ID       int64
	Name     string
	ParentID *int64
}

// TagNode is a tag placed in a Forest. Children are stored as ids; the node never
// references its parent directly, parent lookup goes through the forest index.
type TagNode struct {
	ID       int64
	Name     string
	ParentID *int64
	Children []int64
}

// Forest is an arena of TagNodes indexed by id, with zero or more roots.
type Forest struct {
	nodes map[int64]*TagNode
	order []int64 // first-seen id order
	roots []int64
}

// Row is one line of a flattened forest.
type Row struct {
	Node  TagNode
	Depth int
}

// BuildForest converts a flat record list into a forest in two passes.
//
// The first pass indexes records by id. A repeated id overwrites name and parent
// of the earlier record (last write wins) but keeps the position where the id was
// first seen. The second pass links every node under its parent when the parent
// id resolves; otherwise the node becomes a root. A node naming itself as parent is
// a root as well. Roots and children keep first-seen order.
func BuildForest(records []TagRecord) *Forest {
	f := &Forest{
		nodes: make(map[int64]*TagNode, len(records)),
		order: make([]int64, 0, len(records)),
	}

	for _, rec := range records {
		node, ok := f.nodes[rec.ID]
		if !ok {
			node = &TagNode{ID: rec.ID}
			f.nodes[rec.ID] = node
			f.order = append(f.order, rec.ID)
		}
		node.Name = rec.Name
		node.ParentID = cloneID(rec.ParentID)
	}

	for _, id := range f.order {
		node := f.nodes[id]
		if node.ParentID != nil && *node.ParentID != id {
			if parent, ok := f.nodes[*node.ParentID]; ok {
				parent.Children = append(parent.Children, id)
				continue
			}
		}
		f.roots = append(f.roots, id)
	}

	return f
}

// Len returns the number of distinct tag ids in the forest.
func (f *Forest) Len() int {
	if f == nil {
		return 0
	}
	return len(f.nodes)
}

// Roots returns root ids in first-seen order.
func (f *Forest) Roots() []int64 {
	if f == nil {
		return nil
	}
	return slices.Clone(f.roots)
}

// Node returns a copy of the node with the given id.
func (f *Forest) Node(id int64) (TagNode, bool) {
	if f == nil {
		return TagNode{}, false
	}
	node, ok := f.nodes[id]
	if !ok {
		return TagNode{}, false
	}
	return copyNode(node), true
}

// Parent resolves the parent node through the index.
func (f *Forest) Parent(id int64) (TagNode, bool) {
	if f == nil {
		return TagNode{}, false
	}
	node, ok := f.nodes[id]
	if !ok || node.ParentID == nil || *node.ParentID == id {
		return TagNode{}, false
	}
	return f.Node(*node.ParentID)
}

// Descendants returns the subtree rooted at id in pre-order, the node itself first.
func (f *Forest) Descendants(id int64) []TagNode {
	if f == nil {
		return nil
	}
	if _, ok := f.nodes[id]; !ok {
		return nil
	}

	var out []TagNode
	f.walkFrom(id, 0, make(map[int64]bool), func(node *TagNode, _ int) {
		out = append(out, copyNode(node))
	})
	return out
}

// Walk visits every node reachable from the roots in pre-order.
func (f *Forest) Walk(fn func(node TagNode, depth int)) {
	if f == nil || fn == nil {
		return
	}
	seen := make(map[int64]bool, len(f.nodes))
	for _, root := range f.roots {
		f.walkFrom(root, 0, seen, func(node *TagNode, depth int) {
			fn(copyNode(node), depth)
		})
	}
}

// Rows flattens the forest for display.
func (f *Forest) Rows() []Row {
	rows := make([]Row, 0, f.Len())
	f.Walk(func(node TagNode, depth int) {
		rows = append(rows, Row{Node: node, Depth: depth})
	})
	return rows
}

// IDs returns every reachable id in pre-order.
func (f *Forest) IDs() []int64 {
	ids := make([]int64, 0, f.Len())
	f.Walk(func(node TagNode, _ int) {
		ids = append(ids, node.ID)
	})
	return ids
}

// Unreachable returns ids that no root leads to. Only parent chains that loop
// without ever reaching a root produce them.
func (f *Forest) Unreachable() []int64 {
	if f == nil {
		return nil
	}
	seen := make(map[int64]bool, len(f.nodes))
	for _, root := range f.roots {
		f.walkFrom(root, 0, seen, func(*TagNode, int) {})
	}
	var out []int64
	for _, id := range f.order {
		if !seen[id] {
			out = append(out, id)
		}
	}
	return out
}

// walkFrom is an iterative pre-order traversal; seen guards against looping chains.
func (f *Forest) walkFrom(id int64, depth int, seen map[int64]bool, visit func(*TagNode, int)) {
	type frame struct {
		id    int64
		depth int
	}
	stack := []frame{{id: id, depth: depth}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[top.id] {
			continue
		}
		node, ok := f.nodes[top.id]
		if !ok {
			continue
		}
		seen[top.id] = true
		visit(node, top.depth)
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: node.Children[i], depth: top.depth + 1})
		}
	}
}

func copyNode(node *TagNode) TagNode {
	return TagNode{
		ID:       node.ID,
		Name:     node.Name,
		ParentID: cloneID(node.ParentID),
		Children: slices.Clone(node.Children),
	}
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// ID returns a pointer to v, for building ParentID values.
func ID(v int64) *int64 {
	return &v
}
