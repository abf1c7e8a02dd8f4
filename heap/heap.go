// Package heap implements a binary heap over containers/dynarray's
// contiguous buffer: root at index 0, parent of i at (i-1)/2, children at
// 2i+1 and 2i+2, precedence decided by a caller comparator.
package heap

import (
	"github.com/TomTonic/containers/cmp"
	"github.com/TomTonic/containers/dynarray"
	"github.com/TomTonic/containers/object"
	"github.com/TomTonic/containers/status"
)

// Heap is a binary heap of values of type T. Precedence (who sits closer to
// the root) is decided by less: less(a, b) < 0 means a has precedence over
// b, matching cmp.NodeCmp's usual ordering convention.
type Heap[T any] struct {
	data *dynarray.Array[T]
	less cmp.NodeCmp[T]
	obj  object.Object[T]
}

// New returns an empty Heap. obj governs how popped values are copied out
// to the caller's destination on Remove; pass object.PlainObject[T]{} when
// T owns no external resource.
func New[T any](less cmp.NodeCmp[T], obj object.Object[T]) *Heap[T] {
	return &Heap[T]{
		data: dynarray.New[T](0),
		less: less,
		obj:  obj,
	}
}

// Len reports the number of elements currently in the heap.
func (h *Heap[T]) Len() int { return h.data.Len() }

// Peek returns the root element without removing it. ok is false if the
// heap is empty.
func (h *Heap[T]) Peek() (v T, ok bool) {
	if h.data.Len() == 0 {
		return v, false
	}
	return h.data.At(0), true
}

func parent(i int) int { return (i - 1) / 2 }
func left(i int) int   { return 2*i + 1 }
func right(i int) int  { return 2*i + 2 }

// Add inserts v, appending it to the backing array and sifting it up while
// it has precedence over its parent.
func (h *Heap[T]) Add(v T) status.Code {
	h.data.Append(v)
	h.siftUp(h.data.Len() - 1)
	return status.OK
}

func (h *Heap[T]) siftUp(i int) {
	for i > 0 {
		p := parent(i)
		if h.less(h.data.At(i), h.data.At(p)) >= 0 {
			return
		}
		h.data.Swap(i, p)
		i = p
	}
}

// Remove pops the root, copying it into dst via the heap's Object, moves
// the last element to the root, shrinks, and sifts down. Returns NotFound
// on an empty heap, or whatever non-OK code CopyInit reports (leaving the
// heap untouched) if the copy-out itself fails.
func (h *Heap[T]) Remove(dst *T) status.Code {
	n := h.data.Len()
	if n == 0 {
		return status.NotFound
	}
	top := h.data.At(0)
	if code := h.obj.CopyInit(dst, top); code != status.OK {
		return code
	}

	last, _ := h.data.Pop()
	if h.data.Len() > 0 {
		h.data.Set(0, last)
		h.siftDown(0)
	}
	h.obj.Destroy(top)
	return status.OK
}

// Deinit invokes Destroy on every remaining element, then empties the
// heap. Per the ownership table, heap slot contents are owned by the
// container, which "calls destroy on pop and on deinit" — Remove handles
// the former, Deinit the latter for whatever is left unpopped.
func (h *Heap[T]) Deinit() {
	for i := 0; i < h.data.Len(); i++ {
		h.obj.Destroy(h.data.At(i))
	}
	h.data = dynarray.New[T](0)
}

func (h *Heap[T]) siftDown(i int) {
	n := h.data.Len()
	for {
		l, r := left(i), right(i)
		best := i
		if l < n && h.less(h.data.At(l), h.data.At(best)) < 0 {
			best = l
		}
		if r < n && h.less(h.data.At(r), h.data.At(best)) < 0 {
			best = r
		}
		if best == i {
			return
		}
		h.data.Swap(i, best)
		i = best
	}
}
