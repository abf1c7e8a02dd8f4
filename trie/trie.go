// Package trie implements a prefix tree over containers/mway nodes: each
// node has width AlphabetSize and an empty footer (tries have nothing to
// put there), wrapped with a containers/bitset occupancy map so
// PrefixIterate's recursive descent can skip empty entries without
// scanning every one of them.
package trie

import (
	"unsafe"

	set3 "github.com/TomTonic/Set3"
	"github.com/TomTonic/containers/bitset"
	"github.com/TomTonic/containers/mway"
	"github.com/TomTonic/containers/status"
)

// maxKeyLen bounds the reconstruction buffer PrefixIterate builds keys
// into; longer keys are rejected up front rather than walked.
const maxKeyLen = 32

// Mapper converts a key symbol to a dense index in [0, AlphabetSize) and
// back. Index's bool return is false for symbols outside the alphabet.
type Mapper struct {
	AlphabetSize int
	Index        func(rune) (int, bool)
	Unmap        func(int) rune
}

// node is an M-way node of width AlphabetSize plus an occupancy bitmap:
// bit i is set whenever Entries[i] holds live data or a child subtree,
// letting the prefix walk skip the many empty alphabet slots typical
// nodes have without checking each entry's two pointer fields.
type node struct {
	mway.Node
	occupied *bitset.BitSet
}

func nodeOf(h *mway.Header) *node {
	if h == nil {
		return nil
	}
	return (*node)(unsafe.Pointer(h))
}

func newNode(alphabetSize int) *node {
	n := &node{occupied: bitset.New(alphabetSize)}
	n.Capacity = alphabetSize
	n.Entries = make([]mway.Entry, alphabetSize)
	return n
}

// Trie is a prefix tree from string keys to values of type T. The root is
// a bare entry, not a node: a zero-length key's value lives directly on
// it, matching the original layer's "root is a bare entry" framing.
type Trie[T any] struct {
	root   mway.Entry
	mapper Mapper
	size   int
}

// New returns an empty Trie using mapper to translate key symbols.
func New[T any](mapper Mapper) *Trie[T] {
	return &Trie[T]{mapper: mapper}
}

// Len reports the number of stored keys.
func (t *Trie[T]) Len() int { return t.size }

func dataAt[T any](e *mway.Entry) T { return *(*T)(e.Data) }

func setDataAt[T any](e *mway.Entry, v T) {
	p := new(T)
	*p = v
	e.Data = unsafe.Pointer(p)
}

// markOccupied recomputes parent's occupancy bit for entry idx after a
// Data or Child change there.
func markOccupied(parent *node, idx int, e *mway.Entry) {
	if e.Data != nil || e.Child != nil {
		parent.occupied.Set(idx)
	} else {
		parent.occupied.Clear(idx)
	}
}

// walkStep is the result of descending one symbol: the entry reached, and
// the node/index it lives in (nil/−1 at the root, which has no parent
// node of its own).
type walkStep struct {
	entry  *mway.Entry
	parent *node
	idx    int
}

// descend walks key one symbol at a time from the root, following
// entry[index(c)] at each step. When create is true, an absent child node
// is allocated; otherwise an absent child breaks the walk with NotFound.
func (t *Trie[T]) descend(key string, create bool) (step walkStep, code status.Code) {
	runes := []rune(key)
	if len(runes) > maxKeyLen {
		return step, status.UnknownInput
	}
	step = walkStep{entry: &t.root, parent: nil, idx: -1}
	for _, c := range runes {
		idx, ok := t.mapper.Index(c)
		if !ok || idx < 0 || idx >= t.mapper.AlphabetSize {
			return walkStep{}, status.UnknownInput
		}
		if step.entry.Child == nil {
			if !create {
				return walkStep{}, status.NotFound
			}
			n := newNode(t.mapper.AlphabetSize)
			step.entry.Child = &n.Header
			if step.parent != nil {
				markOccupied(step.parent, step.idx, step.entry)
			}
		}
		parent := nodeOf(step.entry.Child)
		step = walkStep{entry: &parent.Entries[idx], parent: parent, idx: idx}
	}
	return step, status.OK
}

// Put stores value at key, creating child nodes along the way as needed.
// Returns the previous value (hadPrev false if this is a new key) and
// increments Len only on a new insertion.
func (t *Trie[T]) Put(key string, value T) (prev T, hadPrev bool, code status.Code) {
	step, code := t.descend(key, true)
	if code != status.OK {
		return prev, false, code
	}
	if step.entry.Data != nil {
		prev, hadPrev = dataAt[T](step.entry), true
	} else {
		t.size++
	}
	setDataAt(step.entry, value)
	if step.parent != nil {
		markOccupied(step.parent, step.idx, step.entry)
	}
	return prev, hadPrev, status.OK
}

// Get mirrors the walk Put performs without creating nodes: NotFound if
// the walk breaks on an absent child or an unset entry, UnknownInput if
// the mapper rejects a symbol, OK with the stored value otherwise.
func (t *Trie[T]) Get(key string) (T, status.Code) {
	var zero T
	step, code := t.descend(key, false)
	if code != status.OK {
		return zero, code
	}
	if step.entry.Data == nil {
		return zero, status.NotFound
	}
	return dataAt[T](step.entry), status.OK
}

// Remove clears the entry's data slot if key is stored, decrementing Len.
// Nodes are never compacted when they empty out — a documented
// limitation, not an oversight: reclaiming dead subtrees would require
// either reference counting per node or a second descent to check
// siblings, and the original layer does neither.
func (t *Trie[T]) Remove(key string) status.Code {
	step, code := t.descend(key, false)
	if code != status.OK {
		return code
	}
	if step.entry.Data == nil {
		return status.NotFound
	}
	step.entry.Data = nil
	t.size--
	if step.parent != nil {
		markOccupied(step.parent, step.idx, step.entry)
	}
	return status.OK
}

// PrefixIterate walks to prefix's terminal entry, then recursively visits
// every descendant entry (including the prefix's own, and including
// prefix itself when it is the empty string) whose data is non-nil,
// reconstructing each full key and invoking visit. visit returning false
// stops the walk. An absent prefix simply yields zero calls, not an error.
func (t *Trie[T]) PrefixIterate(prefix string, visit func(key string, value T) bool) status.Code {
	step, code := t.descend(prefix, false)
	if code == status.NotFound {
		return status.OK
	}
	if code != status.OK {
		return code
	}
	buf := make([]rune, 0, maxKeyLen)
	buf = append(buf, []rune(prefix)...)
	t.walk(step.entry, buf, visit)
	return status.OK
}

func (t *Trie[T]) walk(e *mway.Entry, prefix []rune, visit func(string, T) bool) bool {
	if e.Data != nil {
		if !visit(string(prefix), dataAt[T](e)) {
			return false
		}
	}
	if e.Child == nil {
		return true
	}
	n := nodeOf(e.Child)
	for i := 0; i < t.mapper.AlphabetSize; i++ {
		if !n.occupied.Get(i) {
			continue
		}
		c := t.mapper.Unmap(i)
		if !t.walk(&n.Entries[i], append(prefix, c), visit) {
			return false
		}
	}
	return true
}

// CollectInto is a convenience alternative to the callback form of
// PrefixIterate: it collects every matching key into dst, a caller-owned
// Set3, rather than invoking a callback per key.
func (t *Trie[T]) CollectInto(prefix string, dst *set3.Set3[string]) status.Code {
	return t.PrefixIterate(prefix, func(key string, _ T) bool {
		dst.Add(key)
		return true
	})
}

// Deinit invokes destroyCB (if non-nil) on every stored value, then drops
// every node the Trie holds. Per the ownership table, trie nodes are the
// container's own resource (the user never frees them directly, unlike an
// intrusive tree's nodes) — Deinit is how a caller that is done with a
// Trie returns that storage rather than leaving it for Remove, which
// never compacts. The Trie is empty and unusable after Deinit returns.
func (t *Trie[T]) Deinit(destroyCB func(T)) {
	if destroyCB != nil {
		t.PrefixIterate("", func(_ string, v T) bool {
			destroyCB(v)
			return true
		})
	}
	t.root = mway.Entry{}
	t.size = 0
}

// LongestPrefix walks key noting the deepest step at which the current
// entry's data is non-nil, and returns that depth — the length, in
// symbols, of the longest stored prefix of key. Returns -1 if no prefix
// of key (including the empty one) has a stored value.
func (t *Trie[T]) LongestPrefix(key string) int {
	depth := -1
	if t.root.Data != nil {
		depth = 0
	}
	runes := []rune(key)
	if len(runes) > maxKeyLen {
		return depth
	}
	cur := &t.root
	for i, c := range runes {
		idx, ok := t.mapper.Index(c)
		if !ok || cur.Child == nil {
			break
		}
		n := nodeOf(cur.Child)
		cur = &n.Entries[idx]
		if cur.Data != nil {
			depth = i + 1
		}
	}
	return depth
}
