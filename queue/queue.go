// Package queue provides the FIFO collaborator containers/tree.BFS uses to
// walk a tree level by level. Backed by containers/list.Singly, so pushing
// the traversal frontier reuses the same sentinel/cursor linked list the
// rest of this module's list utilities are built on.
package queue

import "github.com/TomTonic/containers/list"

// Queue is a FIFO buffer over a list.Singly.
type Queue[T any] struct {
	l *list.Singly[T]
}

// New returns an empty Queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{l: list.NewSingly[T]()}
}

// PushBack enqueues v.
func (q *Queue[T]) PushBack(v T) { q.l.PushBack(v) }

// PopFront dequeues and returns the oldest element. ok is false if empty.
func (q *Queue[T]) PopFront() (T, bool) { return q.l.PopFront() }

// Empty reports whether the queue holds no elements.
func (q *Queue[T]) Empty() bool { return q.l.Empty() }

// Len reports the number of queued elements.
func (q *Queue[T]) Len() int { return q.l.Len() }
