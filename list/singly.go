// Package list provides the linked-list utilities spec'd as collaborators
// for the core containers (containers/tree.BFS uses Singly as its queue).
// True pointer-embedded intrusion, where the caller's own struct carries
// the link fields, does not translate memory-safely to a garbage-collected
// language (per the design notes: an arena-with-indices is the suggested
// re-architecture). Singly instead owns small link nodes holding a T
// payload by value, but keeps the original's defining trait: a sentinel
// head and the indirect pointer-to-pointer cursor idiom that unifies
// head and mid-list insertion/removal into one code path.
package list

// node is a single link in a Singly list.
type node[T any] struct {
	next *node[T]
	val  T
}

// Singly is a singly linked list with an implicit sentinel: the list's head
// pointer plays the role the original's dummy head node played, and the
// zero value is an empty, ready-to-use list.
type Singly[T any] struct {
	head *node[T]
	tail *node[T]
	size int
}

// NewSingly returns an empty Singly list.
func NewSingly[T any]() *Singly[T] { return &Singly[T]{} }

// Len reports the number of elements.
func (l *Singly[T]) Len() int { return l.size }

// Empty reports whether the list holds no elements.
func (l *Singly[T]) Empty() bool { return l.size == 0 }

// PushFront inserts v as the new head.
func (l *Singly[T]) PushFront(v T) {
	l.First().InsertBefore(v)
}

// PushBack appends v as the new tail, used as Queue.PushBack for BFS.
func (l *Singly[T]) PushBack(v T) {
	n := &node[T]{val: v}
	if l.tail == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.size++
}

// PopFront removes and returns the head element. ok is false if empty.
func (l *Singly[T]) PopFront() (T, bool) {
	return l.First().Remove()
}

// ForEach visits every element front to back. fn returning false stops
// the walk early.
func (l *Singly[T]) ForEach(fn func(T) bool) {
	for c := l.First(); c.Valid(); c = c.Next() {
		if !fn(c.Value()) {
			return
		}
	}
}

// Cursor is the indirect pointer-to-pointer position used by Insert/Remove:
// the same slot can be the list's head pointer or some node's next field,
// so head and mid-list mutation share one code path.
type Cursor[T any] struct {
	list *Singly[T]
	pp   **node[T]
}

// First returns a cursor at the list's head slot.
func (l *Singly[T]) First() Cursor[T] { return Cursor[T]{list: l, pp: &l.head} }

// Valid reports whether the cursor points at a live element.
func (c Cursor[T]) Valid() bool { return *c.pp != nil }

// Value returns the element at the cursor. Panics if !Valid.
func (c Cursor[T]) Value() T { return (*c.pp).val }

// Next advances the cursor to the following slot.
func (c Cursor[T]) Next() Cursor[T] { return Cursor[T]{list: c.list, pp: &(*c.pp).next} }

// InsertBefore links a new element at this slot, pushing whatever was there
// (possibly nil) one step further down the list.
func (c Cursor[T]) InsertBefore(v T) {
	n := &node[T]{val: v, next: *c.pp}
	wasTail := *c.pp == nil
	*c.pp = n
	c.list.size++
	if wasTail {
		c.list.tail = n
	}
}

// Remove unlinks the element at this slot and returns it. ok is false if
// the cursor is not valid.
func (c Cursor[T]) Remove() (v T, ok bool) {
	n := *c.pp
	if n == nil {
		return v, false
	}
	*c.pp = n.next
	if n == c.list.tail {
		// tail moved; pp pointed at the slot holding n, which now holds
		// n.next (nil here since n was the tail).
		if c.list.head == nil {
			c.list.tail = nil
		} else {
			// find new tail by walking from pp's slot is not possible in
			// O(1); since n was the tail, n.next is nil and the new tail is
			// whatever node pointed at n, which is reachable as the node
			// owning pp unless pp is the list head itself.
			c.list.tail = c.list.findTail()
		}
	}
	c.list.size--
	return n.val, true
}

func (l *Singly[T]) findTail() *node[T] {
	if l.head == nil {
		return nil
	}
	n := l.head
	for n.next != nil {
		n = n.next
	}
	return n
}
