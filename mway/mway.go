// Package mway implements the runtime-polymorphic M-way node layout
// shared by containers/btree and containers/trie: a node whose branching
// factor and opaque footer size are both chosen at creation time rather
// than fixed by the Go type system.
//
// The original layout is a single flexible-array-member allocation:
// header, then `capacity` entries, then an opaque footer, all in one
// block. Go has no flexible array members, and — unlike the teacher's own
// art_node.go, which reinterprets a single untyped byte block as one of a
// fixed family of node shapes via unsafe.Pointer — an M-way node's entries
// hold live Go pointers (Entry.Child, and whatever Entry.Data points at),
// which cannot safely live inside a raw byte slice the garbage collector
// doesn't know how to scan. So only the genuinely opaque, pointer-free
// piece — the footer — is drawn from the Allocator; the entry array is an
// ordinary Go slice. NodeSize reports the size of the entry array plus the
// footer, for diagnostics; it does not count the Header and does not round
// up to pointer alignment.
package mway

import (
	"unsafe"

	"github.com/TomTonic/containers/alloc"
)

// Header is the fixed portion every M-way node starts with. Embedding it
// as a struct's first field (as Node does) lets a *Header be reinterpreted
// as a *Node via unsafe.Pointer, the same recovery cast the tree package's
// consumers use to recover a typed entry from a *tree.Node.
type Header struct {
	Capacity int
}

// Entry is one slot of an M-way node: an opaque data pointer and a child
// subtree pointer. Child is nil for leaves.
type Entry struct {
	Data  unsafe.Pointer
	Child *Header
}

// Node is a runtime-sized M-way node: a fixed Header, capacity entries,
// and an opaque footer a consumer (B-tree, trie) defines the meaning of.
type Node struct {
	Header
	Entries []Entry
	Footer  []byte
}

var entrySize = int(unsafe.Sizeof(Entry{}))

// NodeSize reports the byte footprint of a node's entries plus its footer:
// capacity*sizeof(Entry) + footerSize. The Header is not counted and the
// result is not rounded up to pointer alignment. Create itself draws only
// the footer bytes from an Allocator.
func NodeSize(capacity, footerSize int) int {
	return capacity*entrySize + footerSize
}

// Create returns a zero-initialised node with room for capacity entries
// and a footerSize-byte opaque footer. Returns nil if a reports an
// allocation failure for the footer bytes.
func Create(capacity, footerSize int, a alloc.Allocator) *Node {
	n := &Node{Header: Header{Capacity: capacity}}
	n.Entries = make([]Entry, capacity)
	if footerSize > 0 {
		buf := a.Alloc(footerSize)
		if buf == nil {
			return nil
		}
		n.Footer = buf
	}
	return n
}

// Destroy recursively frees every entry's child subtree, invokes
// destroyData (if non-nil) on each non-nil entry data pointer, releases
// the footer bytes through a, and drops n. Because the footer is opaque
// to this layer, Destroy does not interpret it: a consumer storing a
// child pointer there (B-tree's first-child) must walk and free that
// subtree itself before calling Destroy on the node.
func Destroy(n *Node, destroyData func(unsafe.Pointer), a alloc.Allocator) {
	if n == nil {
		return
	}
	for i := range n.Entries {
		e := &n.Entries[i]
		if e.Child != nil {
			Destroy(FromHeader(e.Child), destroyData, a)
		}
		if destroyData != nil && e.Data != nil {
			destroyData(e.Data)
		}
	}
	if n.Footer != nil {
		a.Free(n.Footer)
	}
}

// FromHeader recovers the owning *Node from a *Header obtained through an
// Entry's Child field.
func FromHeader(h *Header) *Node {
	return (*Node)(unsafe.Pointer(h))
}

// EntryData returns entry i's opaque data pointer.
func (n *Node) EntryData(i int) unsafe.Pointer { return n.Entries[i].Data }

// SetEntryData sets entry i's opaque data pointer.
func (n *Node) SetEntryData(i int, d unsafe.Pointer) { n.Entries[i].Data = d }

// EntryChild returns entry i's child subtree header, nil for a leaf.
func (n *Node) EntryChild(i int) *Header { return n.Entries[i].Child }

// SetEntryChild sets entry i's child subtree header.
func (n *Node) SetEntryChild(i int, c *Header) { n.Entries[i].Child = c }

// Len reports the number of entry slots, len(Entries), which is the
// node's Capacity. How many of them are filled is tracked by callers
// (B-tree nodes keep a count beside the node) since the layout engine has
// no notion of "filled" versus "allocated" on its own.
func (n *Node) Len() int { return len(n.Entries) }
