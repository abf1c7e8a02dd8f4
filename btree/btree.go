// Package btree implements an order-M B-tree ordered map over the
// containers/mway node layout. Node footers need to carry a live Go
// pointer (first-child) alongside a plain count, which the mway package's
// opaque []byte footer cannot safely hold (see mway's package doc); so the
// footer here is expressed as ordinary Go fields on a wrapper struct that
// embeds mway.Node as its first field, recoverable from a child's
// *mway.Header the same way every other node-kind cast in this module
// works.
package btree

import (
	"unsafe"

	"github.com/TomTonic/containers/alloc"
	"github.com/TomTonic/containers/cmp"
	"github.com/TomTonic/containers/debuglog"
	"github.com/TomTonic/containers/mway"
	"github.com/TomTonic/containers/stack"
	"github.com/TomTonic/containers/status"
)

// node is one B-tree node: an mway layout (Capacity = order, to leave one
// spare slot for the classic insert-then-split algorithm) plus the
// first-child pointer and live entry count the original footer held.
type node struct {
	mway.Node
	firstChild *mway.Header
	size       int
	buf        []byte // retained only to pair Alloc/Free for leak tracking
}

func nodeOf(h *mway.Header) *node {
	if h == nil {
		return nil
	}
	return (*node)(unsafe.Pointer(h))
}

func isLeaf(n *node) bool { return n.firstChild == nil }

func newNode(order int, a alloc.Allocator) *node {
	buf := a.Alloc(mway.NodeSize(order, 0))
	if buf == nil {
		return nil
	}
	n := &node{buf: buf}
	n.Capacity = order
	n.Entries = make([]mway.Entry, order)
	return n
}

func freeNode(n *node, a alloc.Allocator) {
	a.Free(n.buf)
}

func dataAt[T any](n *node, i int) T {
	return *(*T)(n.EntryData(i))
}

func setDataAt[T any](n *node, i int, v T) {
	p := new(T)
	*p = v
	n.SetEntryData(i, unsafe.Pointer(p))
}

func childAt(n *node, descendIdx int) *mway.Header {
	if descendIdx == -1 {
		return n.firstChild
	}
	return n.EntryChild(descendIdx)
}

func setChildAt(n *node, descendIdx int, c *mway.Header) {
	if descendIdx == -1 {
		n.firstChild = c
	} else {
		n.SetEntryChild(descendIdx, c)
	}
}

// insertAt shifts entries right to make room at pos and writes v there,
// with childAfter becoming the new entry's child (nil for a leaf insert).
func insertAt[T any](n *node, pos int, v T, childAfter *mway.Header) {
	for i := n.size; i > pos; i-- {
		n.Entries[i] = n.Entries[i-1]
	}
	setDataAt(n, pos, v)
	n.SetEntryChild(pos, childAfter)
	n.size++
}

func removeAt(n *node, pos int) {
	for i := pos; i < n.size-1; i++ {
		n.Entries[i] = n.Entries[i+1]
	}
	n.size--
}

// Tree is an order-M B-tree ordered map of values of type T.
type Tree[T any] struct {
	order int
	root  *node
	size  int
	cmp   cmp.NodeCmp[T]
	alloc alloc.Allocator
	log   debuglog.Logger
}

// Option configures a Tree at construction time, following the
// functional-option idiom: WithAllocator swaps in a non-default node
// allocator (e.g. alloc.Tracking for leak tests), WithLogger wires a
// debuglog.Logger so split/merge/deinit events are observable.
type Option[T any] func(*Tree[T])

// WithAllocator sets the allocator a Tree draws its node storage from.
// Without this option, a Tree uses alloc.Default{}.
func WithAllocator[T any](a alloc.Allocator) Option[T] {
	return func(t *Tree[T]) { t.alloc = a }
}

// WithLogger sets the Logger a Tree reports structural events to (split,
// merge, deinit). Without this option, a Tree is silent, per
// debuglog.Noop's default.
func WithLogger[T any](l debuglog.Logger) Option[T] {
	return func(t *Tree[T]) { t.log = l }
}

// New returns an empty Tree of the given order (>= 3), ordered by less.
// Panics if order < 3, per the binding configuration contract.
func New[T any](order int, less cmp.NodeCmp[T], opts ...Option[T]) *Tree[T] {
	if order < 3 {
		panic("btree: order must be >= 3")
	}
	t := &Tree[T]{order: order, cmp: less, alloc: alloc.Default{}, log: debuglog.Noop}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Len reports the number of stored values.
func (t *Tree[T]) Len() int { return t.size }

// Height reports the tree's height (0 for an empty tree). Every leaf lies
// at the same depth, so following first-child links down from the root
// gives the height unambiguously.
func (t *Tree[T]) Height() int {
	h := 0
	for n := t.root; n != nil; n = nodeOf(n.firstChild) {
		h++
	}
	return h
}

// searchInNode returns the matching entry index (match true), or the
// child-descend index per spec.md's convention: -1 means "descend into
// first-child", otherwise the largest i with entries[i] < v.
func (t *Tree[T]) searchInNode(n *node, v T) (idx int, match bool) {
	lo, hi := 0, n.size
	for lo < hi {
		mid := (lo + hi) / 2
		switch c := t.cmp(v, dataAt[T](n, mid)); {
		case c == 0:
			return mid, true
		case c < 0:
			hi = mid
		default:
			lo = mid + 1
		}
	}
	return lo - 1, false
}

func searchInNodeKey[K, T any](n *node, key K, cmpKey cmp.KeyCmp[K, T]) (idx int, match bool) {
	lo, hi := 0, n.size
	for lo < hi {
		mid := (lo + hi) / 2
		switch c := cmpKey(key, dataAt[T](n, mid)); {
		case c == 0:
			return mid, true
		case c < 0:
			hi = mid
		default:
			lo = mid + 1
		}
	}
	return lo - 1, false
}

type pathFrame struct {
	n   *node
	idx int
}

// Add inserts v. Returns DuplicateKey if an equal value (per cmp) is
// already present anywhere on the descent, or SystemError if a node
// allocation fails; per the documented weak guarantee, a SystemError that
// occurs mid-cascade (after at least one split already succeeded) leaves
// the tree corrupt.
func (t *Tree[T]) Add(v T) status.Code {
	if t.root == nil {
		n := newNode(t.order, t.alloc)
		if n == nil {
			return status.SystemError
		}
		t.root = n
	}

	path := stack.New[pathFrame]()
	cur := t.root
	for {
		idx, match := t.searchInNode(cur, v)
		if match {
			return status.DuplicateKey
		}
		if isLeaf(cur) {
			insertAt(cur, idx+1, v, nil)
			break
		}
		path.Push(pathFrame{cur, idx})
		cur = nodeOf(childAt(cur, idx))
	}

	for cur.size > t.order-1 {
		median, sibling, ok := t.splitFull(cur)
		if !ok {
			return status.SystemError
		}
		t.log.Debugf("btree: split node (size=%d) around median, new sibling size=%d", cur.size, sibling.size)
		frm, hasParent := path.Pop()
		if !hasParent {
			newRoot := newNode(t.order, t.alloc)
			if newRoot == nil {
				return status.SystemError
			}
			newRoot.firstChild = &cur.Header
			insertAt(newRoot, 0, median, &sibling.Header)
			t.root = newRoot
			t.log.Debugf("btree: grew a new root after a root split")
			break
		}
		parent, pidx := frm.n, frm.idx
		insertAt(parent, pidx+1, median, &sibling.Header)
		cur = parent
	}
	t.size++
	return status.OK
}

// splitFull median-splits an overfull node (one that briefly holds `order`
// entries, one more than the normal capacity) at index (order-1)/2: the
// median is promoted to the caller, and the new sibling inherits the
// entries above the median plus the overflow entry, adopting the median
// entry's old child as its own first-child.
func (t *Tree[T]) splitFull(n *node) (median T, sibling *node, ok bool) {
	medianIdx := (t.order - 1) / 2
	sibling = newNode(t.order, t.alloc)
	if sibling == nil {
		return median, nil, false
	}
	median = dataAt[T](n, medianIdx)
	sibling.firstChild = n.EntryChild(medianIdx)
	j := 0
	for i := medianIdx + 1; i < n.size; i++ {
		sibling.Entries[j] = n.Entries[i]
		j++
	}
	sibling.size = j
	n.size = medianIdx
	return median, sibling, true
}

// Contains reports whether an equal value (per cmp) is present.
func (t *Tree[T]) Contains(v T) bool {
	cur := t.root
	for cur != nil {
		idx, match := t.searchInNode(cur, v)
		if match {
			return true
		}
		if isLeaf(cur) {
			return false
		}
		cur = nodeOf(childAt(cur, idx))
	}
	return false
}

// Search returns the stored value matching key under cmpKey, and whether
// one was found.
func Search[K, T any](t *Tree[T], key K, cmpKey cmp.KeyCmp[K, T]) (T, bool) {
	cur := t.root
	for cur != nil {
		idx, match := searchInNodeKey[K, T](cur, key, cmpKey)
		if match {
			return dataAt[T](cur, idx), true
		}
		if isLeaf(cur) {
			break
		}
		cur = nodeOf(childAt(cur, idx))
	}
	var zero T
	return zero, false
}

// Remove deletes a value equal to v (per cmp) if present, returning the
// removed value and true, or the zero value and false on a miss.
func (t *Tree[T]) Remove(v T) (T, bool) {
	var zero T
	path := stack.New[pathFrame]()
	cur := t.root
	var matchNode *node
	var matchIdx int
	for cur != nil {
		idx, match := t.searchInNode(cur, v)
		if match {
			matchNode, matchIdx = cur, idx
			break
		}
		if isLeaf(cur) {
			return zero, false
		}
		path.Push(pathFrame{cur, idx})
		cur = nodeOf(childAt(cur, idx))
	}
	if matchNode == nil {
		return zero, false
	}
	removed := dataAt[T](matchNode, matchIdx)

	if !isLeaf(matchNode) {
		// Swap with the in-order predecessor: the rightmost leaf of the
		// subtree to the left of the matched entry.
		path.Push(pathFrame{matchNode, matchIdx - 1})
		predNode := nodeOf(childAt(matchNode, matchIdx-1))
		for !isLeaf(predNode) {
			ri := predNode.size - 1
			path.Push(pathFrame{predNode, ri})
			predNode = nodeOf(predNode.EntryChild(ri))
		}
		predIdx := predNode.size - 1
		setDataAt(matchNode, matchIdx, dataAt[T](predNode, predIdx))
		matchNode, matchIdx = predNode, predIdx
	}

	removeAt(matchNode, matchIdx)
	t.size--

	minFill := (t.order+1)/2 - 1
	cur = matchNode
	for cur != t.root && cur.size < minFill {
		frm, _ := path.Pop()
		cur = t.fixUnderflow(frm.n, frm.idx, cur)
	}
	if t.root.size == 0 && t.root.firstChild != nil {
		oldRoot := t.root
		t.root = nodeOf(oldRoot.firstChild)
		freeNode(oldRoot, t.alloc)
		t.log.Debugf("btree: root shrank, old root freed")
	}
	return removed, true
}

// fixUnderflow resolves starving, the child of parent at descend index
// pidx, falling under minFill: borrow from a sibling with room to spare,
// or merge with one, per spec.md's rotate-through-parent rules.
func (t *Tree[T]) fixUnderflow(parent *node, pidx int, starving *node) *node {
	minFill := (t.order+1)/2 - 1
	if pidx > -1 {
		if donor := nodeOf(childAt(parent, pidx-1)); donor.size > minFill {
			t.borrowFromLeft(parent, pidx, starving, donor)
			return parent
		}
	}
	if pidx < parent.size-1 {
		if donor := nodeOf(childAt(parent, pidx+1)); donor.size > minFill {
			t.borrowFromRight(parent, pidx, starving, donor)
			return parent
		}
	}
	if pidx > -1 {
		left := nodeOf(childAt(parent, pidx-1))
		t.mergeWithRightSibling(parent, pidx-1, left, starving)
		return parent
	}
	right := nodeOf(childAt(parent, pidx+1))
	t.mergeWithRightSibling(parent, pidx, starving, right)
	return parent
}

// borrowFromLeft rotates right through parent: the separator moves down
// as starving's new first entry, the donor's last entry becomes the new
// separator, and the donor's rightmost child becomes starving's new
// first-child.
func (t *Tree[T]) borrowFromLeft(parent *node, pidx int, starving, donor *node) {
	sepIdx := pidx
	sep := dataAt[T](parent, sepIdx)
	oldFirstChild := starving.firstChild
	donorLastIdx := donor.size - 1
	donorLastVal := dataAt[T](donor, donorLastIdx)
	donorRightChild := donor.EntryChild(donorLastIdx)

	for i := starving.size; i > 0; i-- {
		starving.Entries[i] = starving.Entries[i-1]
	}
	setDataAt(starving, 0, sep)
	starving.SetEntryChild(0, oldFirstChild)
	starving.firstChild = donorRightChild
	starving.size++

	setDataAt[T](parent, sepIdx, donorLastVal)
	donor.size--
}

// borrowFromRight is the mirror of borrowFromLeft: a left-rotation through
// parent.
func (t *Tree[T]) borrowFromRight(parent *node, pidx int, starving, donor *node) {
	sepIdx := pidx + 1
	sep := dataAt[T](parent, sepIdx)
	donorFirstVal := dataAt[T](donor, 0)
	donorFirstChild := donor.firstChild

	setDataAt(starving, starving.size, sep)
	starving.SetEntryChild(starving.size, donorFirstChild)
	starving.size++

	setDataAt[T](parent, sepIdx, donorFirstVal)

	donor.firstChild = donor.EntryChild(0)
	for i := 0; i < donor.size-1; i++ {
		donor.Entries[i] = donor.Entries[i+1]
	}
	donor.size--
}

// mergeWithRightSibling concatenates [left entries | parent separator |
// right entries] into left, frees right, and removes the separator entry
// from parent. leftIdx is left's own descend index at parent.
func (t *Tree[T]) mergeWithRightSibling(parent *node, leftIdx int, left, right *node) {
	sepIdx := leftIdx + 1
	sep := dataAt[T](parent, sepIdx)

	setDataAt(left, left.size, sep)
	left.SetEntryChild(left.size, right.firstChild)
	left.size++

	for i := 0; i < right.size; i++ {
		left.Entries[left.size] = right.Entries[i]
		left.size++
	}

	freeNode(right, t.alloc)
	removeAt(parent, sepIdx)
	t.log.Debugf("btree: merged sibling into left node (new size=%d), freed right node", left.size)
}

// Walk visits every stored value in ascending order. visit returning
// false stops the walk early.
func (t *Tree[T]) Walk(visit func(T) bool) {
	walkNode[T](t.root, visit)
}

func walkNode[T any](n *node, visit func(T) bool) bool {
	if n == nil {
		return true
	}
	if !walkNode[T](nodeOf(n.firstChild), visit) {
		return false
	}
	for i := 0; i < n.size; i++ {
		if !visit(dataAt[T](n, i)) {
			return false
		}
		if !walkNode[T](nodeOf(n.EntryChild(i)), visit) {
			return false
		}
	}
	return true
}

// InorderValues returns every stored value in ascending order.
func (t *Tree[T]) InorderValues() []T {
	out := make([]T, 0, t.size)
	t.Walk(func(v T) bool { out = append(out, v); return true })
	return out
}

// Deinit releases every node's backing storage through the Tree's
// allocator, invoking destroyCB (if non-nil) on each stored value first.
// Per the ownership table, the B-tree node (M-way record) is the
// container's own resource: unlike an intrusive tree's nodes, which the
// caller owns and frees itself, a discarded Tree must hand its node
// storage back to the allocator it came from. The Tree is empty and
// unusable after Deinit returns.
func (t *Tree[T]) Deinit(destroyCB func(T)) {
	deinitNode[T](t.root, destroyCB, t.alloc)
	t.log.Debugf("btree: deinit released storage for %d stored values", t.size)
	t.root = nil
	t.size = 0
}

func deinitNode[T any](n *node, destroyCB func(T), a alloc.Allocator) {
	if n == nil {
		return
	}
	deinitNode[T](nodeOf(n.firstChild), destroyCB, a)
	for i := 0; i < n.size; i++ {
		if destroyCB != nil {
			destroyCB(dataAt[T](n, i))
		}
		deinitNode[T](nodeOf(n.EntryChild(i)), destroyCB, a)
	}
	freeNode(n, a)
}
