// Package tree implements the mechanical binary-tree substrate shared by
// bst and avl: parent/left/right link plumbing, search, and the six
// traversal-order successor/predecessor walks, all without auxiliary
// storage. The substrate reports no errors; its preconditions are the
// caller's responsibility, matching the original C sources where this
// layer is a set of asserts-only primitives.
//
// Ownership: a Node is never allocated or freed by this package. The
// caller embeds Node as the first field of their own struct and recovers
// that struct from a *Node with unsafe.Pointer, the same cast family the
// teacher library uses to reinterpret a generic node pointer as one of its
// concrete node-kind structs (see bst.valAt / avl.valAt).
package tree

// Node is the intrusive link triple every ordered-tree layer builds on.
// It carries no payload; embed it as the first field of your own struct.
type Node struct {
	Parent, Left, Right *Node
}

// Init writes the three links directly with no invariant checking; the
// caller asserts correctness.
func Init(n, parent, left, right *Node) {
	n.Parent, n.Left, n.Right = parent, left, right
}

// IsRoot reports whether n has no parent.
func IsRoot(n *Node) bool { return n.Parent == nil }

// Detach removes n from its parent's child slot and clears n.Parent.
// Idempotent when n is already a root.
func Detach(n *Node) {
	if n.Parent != nil {
		switch n.Parent {
		case nil:
		default:
			if n.Parent.Left == n {
				n.Parent.Left = nil
			} else if n.Parent.Right == n {
				n.Parent.Right = nil
			}
		}
	}
	n.Parent = nil
}

// Replace substitutes neu for old in the tree: old's parent's child slot
// now points at neu, old's children are reparented to neu, and old's own
// links are zeroed. old and neu must be distinct and neu must not already
// be a descendant of old (Replace does not special-case that).
func Replace(old, neu *Node) {
	neu.Parent, neu.Left, neu.Right = old.Parent, old.Left, old.Right
	replaceChildSlot(old.Parent, old, neu)
	if old.Left != nil {
		old.Left.Parent = neu
	}
	if old.Right != nil {
		old.Right.Parent = neu
	}
	old.Parent, old.Left, old.Right = nil, nil, nil
}

// Swap exchanges the tree positions of n1 and n2, including the adjacent
// case where one is the direct parent of the other (the case BST/AVL
// removal hits when the in-order successor is the target's own right
// child). Callers must check separately whether n1 or n2 was the tree
// root and update their external root pointer accordingly; Swap only
// fixes up the links reachable from n1 and n2 themselves.
func Swap(n1, n2 *Node) {
	if n1 == n2 {
		return
	}
	if n2.Parent == n1 {
		swapAdjacent(n1, n2)
		return
	}
	if n1.Parent == n2 {
		swapAdjacent(n2, n1)
		return
	}
	swapNonAdjacent(n1, n2)
}

// swapAdjacent handles child being a direct child of parent. Generic
// triple-swap formulas produce a self-referential parent==self (or
// child-points-to-itself) cycle in this case; rather than patch that up
// after the fact, the adjacent transposition is computed directly.
func swapAdjacent(parent, child *Node) {
	gp := parent.Parent
	parentWasLeftOfGP := gp != nil && gp.Left == parent
	childWasLeftOfParent := parent.Left == child

	var otherChild *Node
	if childWasLeftOfParent {
		otherChild = parent.Right
	} else {
		otherChild = parent.Left
	}
	newParentLeft, newParentRight := child.Left, child.Right

	child.Parent = gp
	if gp != nil {
		if parentWasLeftOfGP {
			gp.Left = child
		} else {
			gp.Right = child
		}
	}

	parent.Parent = child
	if childWasLeftOfParent {
		child.Left, child.Right = parent, otherChild
	} else {
		child.Right, child.Left = parent, otherChild
	}
	if otherChild != nil {
		otherChild.Parent = child
	}

	parent.Left, parent.Right = newParentLeft, newParentRight
	if newParentLeft != nil {
		newParentLeft.Parent = parent
	}
	if newParentRight != nil {
		newParentRight.Parent = parent
	}
}

func swapNonAdjacent(n1, n2 *Node) {
	p1, l1, r1 := n1.Parent, n1.Left, n1.Right
	p2, l2, r2 := n2.Parent, n2.Left, n2.Right

	if p1 != nil && p1 == p2 {
		// Siblings: rewriting one slot at a time would undo the first write.
		p1.Left, p1.Right = p1.Right, p1.Left
	} else {
		replaceChildSlot(p1, n1, n2)
		replaceChildSlot(p2, n2, n1)
	}

	n1.Parent, n1.Left, n1.Right = p2, l2, r2
	n2.Parent, n2.Left, n2.Right = p1, l1, r1

	reparentChildren(n1)
	reparentChildren(n2)
}

func replaceChildSlot(parent, old, neu *Node) {
	if parent == nil {
		return
	}
	if parent.Left == old {
		parent.Left = neu
	} else if parent.Right == old {
		parent.Right = neu
	}
}

func reparentChildren(n *Node) {
	if n.Left != nil {
		n.Left.Parent = n
	}
	if n.Right != nil {
		n.Right.Parent = n
	}
}

// Search descends from root, calling probe(candidate) at each node: probe
// must return negative to go left, positive to go right, zero on a match.
// Returns nil on a miss.
func Search(root *Node, probe func(*Node) int) *Node {
	n := root
	for n != nil {
		switch c := probe(n); {
		case c == 0:
			return n
		case c < 0:
			n = n.Left
		default:
			n = n.Right
		}
	}
	return nil
}

// SearchWithParent returns the node where probe matches (nil on a miss),
// together with the parent of the slot where a matching node lives or
// would be inserted, and whether that slot is the parent's left child.
// This is the primitive BST.Add and AVL insertion share to locate both the
// existing node (if any) and the would-be insertion point in one descent.
func SearchWithParent(root *Node, probe func(*Node) int) (found, parent *Node, wentLeft bool) {
	n := root
	var p *Node
	left := false
	for n != nil {
		c := probe(n)
		if c == 0 {
			return n, p, left
		}
		p = n
		if c < 0 {
			left = true
			n = n.Left
		} else {
			left = false
			n = n.Right
		}
	}
	return nil, p, left
}
