// Package cmp defines the two comparator flavours used throughout the
// ordered containers: a node-vs-node comparator for tree-internal
// operations, and a key-vs-node comparator for lookups where the key's
// runtime type may differ from the stored type.
package cmp

// Ordering is the result of a comparison: negative if the first argument
// sorts before the second, zero if equal, positive if it sorts after.
type Ordering = int

// NodeCmp compares two stored values of the same type, used by BST/AVL/
// B-tree insertion to find where a new value belongs relative to existing
// ones.
type NodeCmp[T any] func(a, b T) Ordering

// KeyCmp compares a lookup key against a stored value, used by Search-style
// operations where K need not equal T (e.g. looking up a []byte key against
// a struct that embeds one).
type KeyCmp[K, T any] func(key K, stored T) Ordering
