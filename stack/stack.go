// Package stack provides the LIFO collaborator containers/tree.DFS uses to
// walk a tree without recursion, and containers/btree uses to hold the
// bounded descent path during insert/remove. Backed by containers/dynarray,
// mirroring the original C sources' array-backed vstack.c.
package stack

import "github.com/TomTonic/containers/dynarray"

// Stack is a LIFO buffer over a dynarray.Array.
type Stack[T any] struct {
	a *dynarray.Array[T]
}

// New returns an empty Stack.
func New[T any]() *Stack[T] {
	return &Stack[T]{a: dynarray.New[T](0)}
}

// Push adds v to the top of the stack.
func (s *Stack[T]) Push(v T) { s.a.Append(v) }

// Pop removes and returns the top of the stack. ok is false if empty.
func (s *Stack[T]) Pop() (T, bool) { return s.a.Pop() }

// Peek returns the top of the stack without removing it.
func (s *Stack[T]) Peek() (T, bool) { return s.a.Last() }

// Empty reports whether the stack holds no elements.
func (s *Stack[T]) Empty() bool { return s.a.Len() == 0 }

// Len reports the number of elements currently on the stack.
func (s *Stack[T]) Len() int { return s.a.Len() }
