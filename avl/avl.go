// Package avl implements a self-balancing AVL tree over the
// containers/tree substrate. The original C layout reserves the two low
// bits of the node's parent pointer to carry the balance tag; Go's
// garbage collector requires every pointer-typed field to hold a valid
// pointer or nil, so that tag is carried instead in a sibling struct field
// beside the link triple rather than stolen from the pointer itself. This
// is the alternative the tagged-pointer design itself calls out as the
// natural substitute in a language without pointer bit-stealing.
package avl

import (
	"unsafe"

	"github.com/TomTonic/containers/cmp"
	"github.com/TomTonic/containers/tree"
)

type balance int8

const (
	even balance = iota
	leftHeavy
	rightHeavy
)

// node is the AVL-specific header: the tree substrate's link triple plus
// the balance tag that would otherwise live in the pointer's low bits.
type node struct {
	tree.Node
	bal balance
}

func nodeOf(n *tree.Node) *node { return (*node)(unsafe.Pointer(n)) }

func getBal(n *tree.Node) balance    { return nodeOf(n).bal }
func setBal(n *tree.Node, b balance) { nodeOf(n).bal = b }

// entry is the tree node wrapping a single stored value, following the
// same embed-as-first-field recovery idiom bst.entry uses.
type entry[T any] struct {
	node
	val T
}

func valAt[T any](n *tree.Node) T {
	return (*entry[T])(unsafe.Pointer(n)).val
}

// Tree is a height-balanced binary search tree of values of type T.
type Tree[T any] struct {
	root *tree.Node
	size int
	cmp  cmp.NodeCmp[T]
}

// New returns an empty Tree ordered by less.
func New[T any](less cmp.NodeCmp[T]) *Tree[T] {
	return &Tree[T]{cmp: less}
}

// Len reports the number of stored values.
func (t *Tree[T]) Len() int { return t.size }

// Height reports the tree's height (0 for an empty tree), for validating
// the balance invariant in tests.
func (t *Tree[T]) Height() int { return height(t.root) }

func height(n *tree.Node) int {
	if n == nil {
		return 0
	}
	l, r := height(n.Left), height(n.Right)
	if l > r {
		return l + 1
	}
	return r + 1
}

// rotateLeft performs the reckless link rotation described by the tagged-
// pointer rotation primitive: pivot's right child becomes the new local
// root, the inner grandchild transfers under pivot preserving its own tag
// (untouched here), and the two links that attach the new root to pivot
// and to the grandparent are rewritten without regard to tag bits, since
// the caller is about to overwrite them anyway.
func rotateLeft(pivot *tree.Node) *tree.Node {
	newRoot := pivot.Right
	transfer := newRoot.Left

	pivot.Right = transfer
	if transfer != nil {
		transfer.Parent = pivot
	}

	gp := pivot.Parent
	newRoot.Left = pivot
	pivot.Parent = newRoot
	newRoot.Parent = gp
	if gp != nil {
		if gp.Left == pivot {
			gp.Left = newRoot
		} else {
			gp.Right = newRoot
		}
	}
	return newRoot
}

func rotateRight(pivot *tree.Node) *tree.Node {
	newRoot := pivot.Left
	transfer := newRoot.Right

	pivot.Left = transfer
	if transfer != nil {
		transfer.Parent = pivot
	}

	gp := pivot.Parent
	newRoot.Right = pivot
	pivot.Parent = newRoot
	newRoot.Parent = gp
	if gp != nil {
		if gp.Left == pivot {
			gp.Left = newRoot
		} else {
			gp.Right = newRoot
		}
	}
	return newRoot
}

func (t *Tree[T]) reattachRoot(old, newRoot *tree.Node) {
	if t.root == old {
		t.root = newRoot
	}
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
	tree.Init(&e.node.Node, parent, nil, nil)
	e.node.bal = even
	t.size++
	if parent == nil {
		t.root = &e.node.Node
		return true
	}
	if left {
		parent.Left = &e.node.Node
	} else {
		parent.Right = &e.node.Node
	}
	t.rebalanceAfterInsert(parent, left)
	return true
}

// rebalanceAfterInsert walks upward from node, the parent of a node just
// linked in on the fromLeft side, updating balance tags and rotating on
// the first node that becomes doubly imbalanced.
func (t *Tree[T]) rebalanceAfterInsert(node *tree.Node, fromLeft bool) {
	for node != nil {
		b := getBal(node)
		stop := false
		switch {
		case fromLeft && b == even:
			setBal(node, leftHeavy)
		case fromLeft && b == rightHeavy:
			setBal(node, even)
			stop = true
		case fromLeft && b == leftHeavy:
			t.rebalanceLeftHeavy(node)
			stop = true
		case !fromLeft && b == even:
			setBal(node, rightHeavy)
		case !fromLeft && b == leftHeavy:
			setBal(node, even)
			stop = true
		case !fromLeft && b == rightHeavy:
			t.rebalanceRightHeavy(node)
			stop = true
		}
		if stop {
			return
		}
		parent := node.Parent
		if parent == nil {
			return
		}
		fromLeft = parent.Left == node
		node = parent
	}
}

// rebalanceLeftHeavy resolves a node that was already left-heavy and just
// grew taller on the left again (the LL/LR insertion cases). The left
// child's own tag can never be even at this point during insertion.
func (t *Tree[T]) rebalanceLeftHeavy(node *tree.Node) {
	left := node.Left
	if getBal(left) == leftHeavy {
		newRoot := rotateRight(node)
		setBal(node, even)
		setBal(newRoot, even)
		t.reattachRoot(node, newRoot)
		return
	}
	pivot := left.Right
	pivotBal := getBal(pivot)
	rotateLeft(left)
	newRoot := rotateRight(node)
	switch pivotBal {
	case leftHeavy:
		setBal(node, rightHeavy)
		setBal(left, even)
	case rightHeavy:
		setBal(node, even)
		setBal(left, leftHeavy)
	default:
		setBal(node, even)
		setBal(left, even)
	}
	setBal(newRoot, even)
	t.reattachRoot(node, newRoot)
}

// rebalanceRightHeavy mirrors rebalanceLeftHeavy for the RR/RL cases.
func (t *Tree[T]) rebalanceRightHeavy(node *tree.Node) {
	right := node.Right
	if getBal(right) == rightHeavy {
		newRoot := rotateLeft(node)
		setBal(node, even)
		setBal(newRoot, even)
		t.reattachRoot(node, newRoot)
		return
	}
	pivot := right.Left
	pivotBal := getBal(pivot)
	rotateRight(right)
	newRoot := rotateLeft(node)
	switch pivotBal {
	case rightHeavy:
		setBal(node, leftHeavy)
		setBal(right, even)
	case leftHeavy:
		setBal(node, even)
		setBal(right, rightHeavy)
	default:
		setBal(node, even)
		setBal(right, even)
	}
	setBal(newRoot, even)
	t.reattachRoot(node, newRoot)
}

// Contains reports whether an equal value (per cmp) is present.
func (t *Tree[T]) Contains(v T) bool {
	probe := func(n *tree.Node) int { return t.cmp(v, valAt[T](n)) }
	return tree.Search(t.root, probe) != nil
}

// Search returns the stored value matching key under cmpKey, and whether
// one was found.
func Search[K, T any](t *Tree[T], key K, cmpKey cmp.KeyCmp[K, T]) (T, bool) {
	n := tree.Search(t.root, func(n *tree.Node) int { return cmpKey(key, valAt[T](n)) })
	if n == nil {
		var zero T
		return zero, false
	}
	return valAt[T](n), true
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

func (t *Tree[T]) removeNode(n *tree.Node) {
	if n.Left != nil && n.Right != nil {
		succ := tree.FirstInorder(n.Right)
		wasRoot := n == t.root
		bn, bs := getBal(n), getBal(succ)
		tree.Swap(n, succ)
		if wasRoot {
			t.root = succ
		}
		// Swap repositions the nodes but tags describe balance of the
		// subtree rooted at a position, not the node identity; each moved
		// node inherits the tag of the slot it now occupies.
		setBal(n, bs)
		setBal(succ, bn)
	}

	parent := n.Parent
	var wasLeft bool
	if parent != nil {
		wasLeft = parent.Left == n
	}
	var child *tree.Node
	if n.Left != nil {
		child = n.Left
	} else {
		child = n.Right
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
	t.rebalanceAfterRemove(parent, wasLeft)
}

// rebalanceAfterRemove walks upward from node, the parent of a subtree
// that just shrank on the shortenedLeft side, updating tags and rotating
// as needed. Unlike insertion, the heavy child's own tag may legitimately
// be even here, yielding a single rotation that does not reduce height.
func (t *Tree[T]) rebalanceAfterRemove(node *tree.Node, shortenedLeft bool) {
	for node != nil {
		b := getBal(node)
		var continueUp bool
		var newRoot *tree.Node
		switch {
		case shortenedLeft && b == leftHeavy:
			setBal(node, even)
			continueUp = true
		case shortenedLeft && b == even:
			setBal(node, rightHeavy)
		case shortenedLeft && b == rightHeavy:
			newRoot = t.rebalanceRightHeavyAfterRemoval(node)
			continueUp = getBal(newRoot) == even
		case !shortenedLeft && b == rightHeavy:
			setBal(node, even)
			continueUp = true
		case !shortenedLeft && b == even:
			setBal(node, leftHeavy)
		case !shortenedLeft && b == leftHeavy:
			newRoot = t.rebalanceLeftHeavyAfterRemoval(node)
			continueUp = getBal(newRoot) == even
		}
		if !continueUp {
			return
		}
		pivotNode := node
		if newRoot != nil {
			pivotNode = newRoot
		}
		next := pivotNode.Parent
		if next == nil {
			return
		}
		shortenedLeft = next.Left == pivotNode
		node = next
	}
}

func (t *Tree[T]) rebalanceRightHeavyAfterRemoval(node *tree.Node) *tree.Node {
	right := node.Right
	switch getBal(right) {
	case rightHeavy:
		newRoot := rotateLeft(node)
		setBal(node, even)
		setBal(newRoot, even)
		t.reattachRoot(node, newRoot)
		return newRoot
	case even:
		newRoot := rotateLeft(node)
		setBal(node, rightHeavy)
		setBal(newRoot, leftHeavy)
		t.reattachRoot(node, newRoot)
		return newRoot
	default: // leftHeavy
		pivot := right.Left
		pivotBal := getBal(pivot)
		rotateRight(right)
		newRoot := rotateLeft(node)
		switch pivotBal {
		case rightHeavy:
			setBal(node, leftHeavy)
			setBal(right, even)
		case leftHeavy:
			setBal(node, even)
			setBal(right, rightHeavy)
		default:
			setBal(node, even)
			setBal(right, even)
		}
		setBal(newRoot, even)
		t.reattachRoot(node, newRoot)
		return newRoot
	}
}

func (t *Tree[T]) rebalanceLeftHeavyAfterRemoval(node *tree.Node) *tree.Node {
	left := node.Left
	switch getBal(left) {
	case leftHeavy:
		newRoot := rotateRight(node)
		setBal(node, even)
		setBal(newRoot, even)
		t.reattachRoot(node, newRoot)
		return newRoot
	case even:
		newRoot := rotateRight(node)
		setBal(node, leftHeavy)
		setBal(newRoot, rightHeavy)
		t.reattachRoot(node, newRoot)
		return newRoot
	default: // rightHeavy
		pivot := left.Right
		pivotBal := getBal(pivot)
		rotateLeft(left)
		newRoot := rotateRight(node)
		switch pivotBal {
		case leftHeavy:
			setBal(node, rightHeavy)
			setBal(left, even)
		case rightHeavy:
			setBal(node, even)
			setBal(left, leftHeavy)
		default:
			setBal(node, even)
			setBal(left, even)
		}
		setBal(newRoot, even)
		t.reattachRoot(node, newRoot)
		return newRoot
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
