// Package bst implements an unbalanced binary search tree over the
// containers/tree substrate. It stores values directly (not keys-to-sets),
// ordered by a caller-supplied cmp.NodeCmp; BST.Search additionally accepts
// a cmp.KeyCmp so a lookup key's type need not match the stored type.
package bst

import (
	"unsafe"

	"github.com/TomTonic/containers/cmp"
	"github.com/TomTonic/containers/tree"
)

// entry is the tree node wrapping a single stored value. tree.Node is
// embedded as the first field so a *tree.Node recovered from a walk can be
// cast back to *entry[T] with unsafe.Pointer, the same recovery idiom the
// library's B-tree and trie node layouts use for their own footers.
type entry[T any] struct {
	tree.Node
	val T
}

// Tree is an unbalanced binary search tree of values of type T.
type Tree[T any] struct {
	root *tree.Node
	size int
	cmp  cmp.NodeCmp[T]
}

// New returns an empty Tree ordered by cmp.
func New[T any](less cmp.NodeCmp[T]) *Tree[T] {
	return &Tree[T]{cmp: less}
}

// Len reports the number of stored values.
func (t *Tree[T]) Len() int { return t.size }

func valAt[T any](n *tree.Node) T {
	return (*entry[T])(unsafe.Pointer(n)).val
}

// Add inserts v, returning false without modifying the tree if an equal
// value (per cmp) is already present.
func (t *Tree[T]) Add(v T) bool {
	probe := func(n *tree.Node) int { return t.cmp(v, valAt[T](n)) }
	found, parent, left := tree.SearchWithParent(t.root, probe)
	if found != nil {
		return false
	}
	e := &entry[T]{val: v}
	tree.Init(&e.Node, parent, nil, nil)
	if parent == nil {
		t.root = &e.Node
	} else if left {
		parent.Left = &e.Node
	} else {
		parent.Right = &e.Node
	}
	t.size++
	return true
}

// Search returns the stored value matching key under cmp, and whether one
// was found.
func Search[K, T any](t *Tree[T], key K, cmpKey cmp.KeyCmp[K, T]) (T, bool) {
	n := tree.Search(t.root, func(n *tree.Node) int { return cmpKey(key, valAt[T](n)) })
	if n == nil {
		var zero T
		return zero, false
	}
	return valAt[T](n), true
}

// Contains reports whether an equal value (per cmp) is present.
func (t *Tree[T]) Contains(v T) bool {
	probe := func(n *tree.Node) int { return t.cmp(v, valAt[T](n)) }
	return tree.Search(t.root, probe) != nil
}

// Remove deletes a value equal to v (per cmp) if present, reporting
// whether anything was removed.
func (t *Tree[T]) Remove(v T) bool {
	probe := func(n *tree.Node) int { return t.cmp(v, valAt[T](n)) }
	n := tree.Search(t.root, probe)
	if n == nil {
		return false
	}
	t.removeNode(n)
	t.size--
	return true
}

// removeNode detaches n from the tree, wiring successor/child subtrees in
// its place. With two children, n is swapped with its in-order successor
// (which has no left child) before being detached, so the actual unlink
// always happens on a node with at most one child.
func (t *Tree[T]) removeNode(n *tree.Node) {
	if n.Left != nil && n.Right != nil {
		succ := tree.FirstInorder(n.Right)
		wasRoot := n == t.root
		tree.Swap(n, succ)
		if wasRoot {
			t.root = succ
		}
	}
	// n now has at most one child.
	var child *tree.Node
	if n.Left != nil {
		child = n.Left
	} else {
		child = n.Right
	}
	parent := n.Parent
	var wasLeft bool
	if parent != nil {
		wasLeft = parent.Left == n
	}
	tree.Detach(n)
	if child != nil {
		child.Parent = parent
	}
	if parent == nil {
		t.root = child
		return
	}
	if wasLeft {
		parent.Left = child
	} else {
		parent.Right = child
	}
}

// InorderValues returns every stored value in ascending order.
func (t *Tree[T]) InorderValues() []T {
	out := make([]T, 0, t.size)
	for n := tree.FirstInorder(t.root); n != nil; n = tree.InorderNext(n) {
		out = append(out, valAt[T](n))
	}
	return out
}
