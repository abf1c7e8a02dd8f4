package list

// dnode is a link in a DoublyCircular list.
type dnode[T any] struct {
	next, prev *dnode[T]
	val        T
}

// DoublyCircular is a doubly linked circular list with one sentinel node
// acting as both the before-first and after-last position: iteration stops
// when the cursor returns to the sentinel, and the list is empty iff the
// sentinel's next points back to itself.
type DoublyCircular[T any] struct {
	sentinel *dnode[T]
	size     int
}

// NewDoublyCircular returns an empty DoublyCircular list.
func NewDoublyCircular[T any]() *DoublyCircular[T] {
	s := &dnode[T]{}
	s.next, s.prev = s, s
	return &DoublyCircular[T]{sentinel: s}
}

// Len reports the number of elements.
func (l *DoublyCircular[T]) Len() int { return l.size }

// Empty reports whether the sentinel's next points back to itself.
func (l *DoublyCircular[T]) Empty() bool { return l.sentinel.next == l.sentinel }

func (l *DoublyCircular[T]) linkBetween(v T, before, after *dnode[T]) {
	n := &dnode[T]{val: v, prev: before, next: after}
	before.next = n
	after.prev = n
	l.size++
}

// PushFront inserts v as the new first element.
func (l *DoublyCircular[T]) PushFront(v T) {
	l.linkBetween(v, l.sentinel, l.sentinel.next)
}

// PushBack inserts v as the new last element.
func (l *DoublyCircular[T]) PushBack(v T) {
	l.linkBetween(v, l.sentinel.prev, l.sentinel)
}

func (l *DoublyCircular[T]) unlink(n *dnode[T]) T {
	n.prev.next = n.next
	n.next.prev = n.prev
	l.size--
	return n.val
}

// PopFront removes and returns the first element. ok is false if empty.
func (l *DoublyCircular[T]) PopFront() (v T, ok bool) {
	if l.Empty() {
		return v, false
	}
	return l.unlink(l.sentinel.next), true
}

// PopBack removes and returns the last element. ok is false if empty.
func (l *DoublyCircular[T]) PopBack() (v T, ok bool) {
	if l.Empty() {
		return v, false
	}
	return l.unlink(l.sentinel.prev), true
}

// ForEach walks front to back. fn returning false stops the walk early.
func (l *DoublyCircular[T]) ForEach(fn func(T) bool) {
	for n := l.sentinel.next; n != l.sentinel; n = n.next {
		if !fn(n.val) {
			return
		}
	}
}

// ForEachReverse walks back to front. fn returning false stops the walk
// early.
func (l *DoublyCircular[T]) ForEachReverse(fn func(T) bool) {
	for n := l.sentinel.prev; n != l.sentinel; n = n.prev {
		if !fn(n.val) {
			return
		}
	}
}
