// Package alloc provides the pluggable node-allocation hook used by the
// M-way node layout (containers/mway) and by containers/btree;
// containers/trie builds its nodes directly and does not call it. Intrusive containers (containers/tree, containers/bst,
// containers/avl, containers/list) never call through here: their nodes are
// embedded by the caller and the container neither allocates nor frees them.
package alloc

// Allocator abstracts per-container node allocation. Size is the number of
// bytes a single node occupies, computed by the caller (mway.NodeSize) from
// a runtime branching factor.
type Allocator interface {
	// Alloc returns a zero-filled byte slice of exactly size bytes.
	// A nil return means allocation failed (status.SystemError).
	Alloc(size int) []byte
	// Free releases a slice previously returned by Alloc. Implementations
	// that rely on the garbage collector may make this a no-op.
	Free(b []byte)
}

// Default is a process-heap-backed Allocator: Alloc is a plain make([]byte,
// size), Free is a no-op and lets the GC reclaim the backing array.
// btree.New uses Default unless the caller wires in something else with
// WithAllocator (e.g. Tracking, for leak tests).
type Default struct{}

// Alloc returns a freshly zeroed slice of the requested size.
func (Default) Alloc(size int) []byte { return make([]byte, size) }

// Free is a no-op; Default relies on the garbage collector.
func (Default) Free([]byte) {}
