package tree

import (
	"github.com/TomTonic/containers/stack"

	"github.com/TomTonic/containers/queue"
)

// BFS walks the tree rooted at root level by level, calling visit on each
// node. visit returning false stops the walk early.
func BFS(root *Node, visit func(*Node) bool) {
	if root == nil {
		return
	}
	q := queue.New[*Node]()
	q.PushBack(root)
	for !q.Empty() {
		n, _ := q.PopFront()
		if !visit(n) {
			return
		}
		if n.Left != nil {
			q.PushBack(n.Left)
		}
		if n.Right != nil {
			q.PushBack(n.Right)
		}
	}
}

// DFS walks the tree rooted at root depth first, calling visit on each
// node in pre-order. visit returning false stops the walk early.
func DFS(root *Node, visit func(*Node) bool) {
	if root == nil {
		return
	}
	s := stack.New[*Node]()
	s.Push(root)
	for !s.Empty() {
		n, _ := s.Pop()
		if !visit(n) {
			return
		}
		if n.Right != nil {
			s.Push(n.Right)
		}
		if n.Left != nil {
			s.Push(n.Left)
		}
	}
}
