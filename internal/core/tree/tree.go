// Package tree builds parent-child hierarchies from flat adjacency lists.
// Used for department and menu trees.
package tree

import "sort"

// Node is implemented by entities that participate in a tree.
// The type parameter is the concrete node type so children keep their type.
type Node[T any] interface {
	TreeID() int64
	TreeParentID() int64
	TreeSort() int
	AppendChild(T)
}

// RootParentID marks top-level nodes.
const RootParentID = 0

// Build assembles a forest from a flat slice.
//
// Nodes whose parent ID is RootParentID become roots. Nodes referencing a
// missing parent are dropped. Sibling order is ascending by sort key; ties
// keep input order.
func Build[T Node[T]](items []T) []T {
	byID := make(map[int64]T, len(items))
	for _, it := range items {
		byID[it.TreeID()] = it
	}

	// Stable sort up front so children arrive at parents already ordered.
	ordered := make([]T, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TreeSort() < ordered[j].TreeSort()
	})

	var roots []T
	for _, it := range ordered {
		pid := it.TreeParentID()
		if pid == RootParentID {
			roots = append(roots, it)
			continue
		}
		parent, ok := byID[pid]
		if !ok {
			continue
		}
		parent.AppendChild(it)
	}

	return roots
}

// Find returns the node with the given ID from a forest, searching
// depth-first. The returned node keeps its attached subtree. The second
// result is false when the ID is absent.
func Find[T Node[T]](forest []T, nodeID int64, children func(T) []T) (T, bool) {
	for _, n := range forest {
		if n.TreeID() == nodeID {
			return n, true
		}
		if sub, ok := Find(children(n), nodeID, children); ok {
			return sub, true
		}
	}
	var zero T
	return zero, false
}
