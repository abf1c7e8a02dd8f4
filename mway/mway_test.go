package mway

import (
	"testing"
	"unsafe"

	"github.com/TomTonic/containers/alloc"
)

func TestCreateAndAccessors(t *testing.T) {
	n := Create(4, 16, alloc.Default{})
	if n == nil {
		t.Fatalf("Create should not fail")
	}
	if n.Capacity != 4 || len(n.Entries) != 4 || len(n.Footer) != 16 {
		t.Fatalf("unexpected node shape: capacity=%d entries=%d footer=%d", n.Capacity, len(n.Entries), len(n.Footer))
	}
	v := 42
	n.SetEntryData(1, unsafe.Pointer(&v))
	if got := (*int)(n.EntryData(1)); *got != 42 {
		t.Fatalf("EntryData(1) = %v, want 42", *got)
	}
	child := Create(4, 0, alloc.Default{})
	n.SetEntryChild(2, &child.Header)
	if n.EntryChild(2) != &child.Header {
		t.Fatalf("EntryChild(2) mismatch")
	}
	if got := FromHeader(n.EntryChild(2)); got != child {
		t.Fatalf("FromHeader should recover the original child node")
	}
}

func TestNodeSize(t *testing.T) {
	if got := NodeSize(0, 8); got != 8 {
		t.Fatalf("NodeSize(0, 8) = %d, want 8", got)
	}
	if got := NodeSize(4, 0); got != 4*entrySize {
		t.Fatalf("NodeSize(4, 0) = %d, want %d", got, 4*entrySize)
	}
}

func TestDestroyWalksChildrenAndData(t *testing.T) {
	leaf := Create(2, 0, alloc.Default{})
	v := 7
	leaf.SetEntryData(0, unsafe.Pointer(&v))

	root := Create(2, 8, alloc.Default{})
	root.SetEntryChild(0, &leaf.Header)

	var destroyed []unsafe.Pointer
	Destroy(root, func(p unsafe.Pointer) { destroyed = append(destroyed, p) }, alloc.Default{})

	if len(destroyed) != 1 || destroyed[0] != unsafe.Pointer(&v) {
		t.Fatalf("expected destroyData called once on the leaf's entry, got %v", destroyed)
	}
}

func TestCreateAllocationFailure(t *testing.T) {
	n := Create(2, 8, failingAllocator{})
	if n != nil {
		t.Fatalf("Create should return nil when the allocator fails")
	}
}

type failingAllocator struct{}

func (failingAllocator) Alloc(int) []byte { return nil }
func (failingAllocator) Free([]byte)      {}
