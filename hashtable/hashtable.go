// Package hashtable implements an open-addressing hash table with double
// hashing, tombstone deletion, and load-factor-driven resizing, grounded
// on _examples/original_source/src/hash_table.c's insert_ht/search_ht/
// delete_ht probe loops.
package hashtable

import (
	"github.com/dolthub/maphash"

	set3 "github.com/TomTonic/Set3"
	"github.com/TomTonic/containers/bitset"
	"github.com/TomTonic/containers/hashtable/primeutil"
	"github.com/TomTonic/containers/status"
)

const (
	upLoadRatio   = 0.7
	downLoadRatio = 0.1
	defaultMinCap = 53
)

type slotState int8

const (
	empty slotState = iota
	tombstone
	live
)

type entry[K comparable, V any] struct {
	state slotState
	key   K
	value V
}

// Table is an open-addressing hash map from K to V.
type Table[K comparable, V any] struct {
	entries     []entry[K, V]
	tombstones  *bitset.BitSet
	capacity    int
	size        int
	minCapacity int
	h1, h2      func(K) uint64
	newBacking  func(n int) []entry[K, V]
}

// New returns an empty Table whose capacity never shrinks below the next
// prime at or above minCapacity (53, the original layer's floor, if
// minCapacity <= 0). h1 and h2 default to two independently-seeded
// dolthub/maphash hashers, the standard double-hashing precondition that
// the two probe functions be independent of each other.
func New[K comparable, V any](minCapacity int) *Table[K, V] {
	if minCapacity <= 0 {
		minCapacity = defaultMinCap
	}
	cap := primeutil.NextPrime(minCapacity)
	hasher1 := maphash.NewHasher[K]()
	hasher2 := maphash.NewHasher[K]()
	return &Table[K, V]{
		entries:     make([]entry[K, V], cap),
		tombstones:  bitset.New(cap),
		capacity:    cap,
		minCapacity: cap,
		h1:          hasher1.Hash,
		h2:          hasher2.Hash,
		newBacking:  func(n int) []entry[K, V] { return make([]entry[K, V], n) },
	}
}

// Len reports the number of live entries.
func (t *Table[K, V]) Len() int { return t.size }

// Cap reports the current backing capacity.
func (t *Table[K, V]) Cap() int { return t.capacity }

func (t *Table[K, V]) probe(key K, attempt int) int {
	h1 := t.h1(key)
	h2 := t.h2(key)
	return int((h1 + uint64(attempt)*(h2+1)) % uint64(t.capacity))
}

// Insert places value at key, resizing up first if the load factor is at
// or above 0.7. Overwrites the value in place on a matching live key (no
// size change). Returns SystemError only if a required resize fails and
// the table is already completely full at the old capacity; a resize
// that fails while there is still room proceeds at the old capacity.
func (t *Table[K, V]) Insert(key K, value V) status.Code {
	if float64(t.size)/float64(t.capacity) >= upLoadRatio {
		target := primeutil.NextPrime(2 * t.capacity)
		if code := t.resizeTo(target); code != status.OK && t.size >= t.capacity {
			return status.SystemError
		}
	}

	attempt := 0
	firstTombstone := -1
	for {
		idx := t.probe(key, attempt)
		e := &t.entries[idx]
		switch e.state {
		case empty:
			target := idx
			if firstTombstone != -1 {
				target = firstTombstone
				t.tombstones.Clear(firstTombstone)
			}
			t.entries[target] = entry[K, V]{state: live, key: key, value: value}
			t.size++
			return status.OK
		case tombstone:
			if firstTombstone == -1 {
				firstTombstone = idx
			}
		default: // live
			if e.key == key {
				e.value = value
				return status.OK
			}
		}
		attempt++
	}
}

// Search walks the probe sequence, skipping tombstones, and returns the
// value of a matching live slot, or NotFound.
func (t *Table[K, V]) Search(key K) (V, status.Code) {
	var zero V
	attempt := 0
	for {
		idx := t.probe(key, attempt)
		e := &t.entries[idx]
		if e.state == empty {
			return zero, status.NotFound
		}
		if e.state == live && e.key == key {
			return e.value, status.OK
		}
		attempt++
	}
}

// Remove converts a matching live slot to a tombstone and decrements
// size. If the load factor then drops below 0.1 and capacity is above
// the configured minimum, resizes down to the next prime above
// capacity/2; a failed shrink rolls the removal back (strong exception
// safety), per the original layer's failure semantics.
func (t *Table[K, V]) Remove(key K) status.Code {
	attempt := 0
	for {
		idx := t.probe(key, attempt)
		e := &t.entries[idx]
		if e.state == empty {
			return status.NotFound
		}
		if e.state == live && e.key == key {
			origValue := e.value
			var zeroK K
			var zeroV V
			e.state = tombstone
			e.key, e.value = zeroK, zeroV
			t.tombstones.Set(idx)
			t.size--

			if t.capacity > t.minCapacity && float64(t.size)/float64(t.capacity) < downLoadRatio {
				target := primeutil.NextPrime(t.capacity / 2)
				if target < t.minCapacity {
					target = t.minCapacity
				}
				if code := t.resizeTo(target); code != status.OK {
					e.state = live
					e.key, e.value = key, origValue
					t.tombstones.Clear(idx)
					t.size++
					return status.SystemError
				}
			}
			return status.OK
		}
		attempt++
	}
}

// resizeTo allocates a new backing array at newCap, re-hashes every live
// entry into it, and swaps it in. Tombstones are not carried across
// resize. Strong exception safety: on allocation failure the table is
// left exactly as it was.
func (t *Table[K, V]) resizeTo(newCap int) status.Code {
	newEntries := t.newBacking(newCap)
	if newEntries == nil {
		return status.SystemError
	}
	for i := range t.entries {
		if t.entries[i].state != live {
			continue
		}
		rehashInto(newEntries, newCap, t.h1, t.h2, t.entries[i].key, t.entries[i].value)
	}
	t.entries = newEntries
	t.tombstones = bitset.New(newCap)
	t.capacity = newCap
	return status.OK
}

func rehashInto[K comparable, V any](entries []entry[K, V], capacity int, h1, h2 func(K) uint64, key K, value V) {
	attempt := 0
	for {
		h1v := h1(key)
		h2v := h2(key)
		idx := int((h1v + uint64(attempt)*(h2v+1)) % uint64(capacity))
		if entries[idx].state == empty {
			entries[idx] = entry[K, V]{state: live, key: key, value: value}
			return
		}
		attempt++
	}
}

// Walk visits every live key/value pair; the hash table's only safe
// traversal primitive, per the original layer's resize semantics
// invalidating any other form of iterator. visit returning false stops
// the walk early.
func (t *Table[K, V]) Walk(visit func(K, V) bool) {
	for i := range t.entries {
		if t.entries[i].state == live {
			if !visit(t.entries[i].key, t.entries[i].value) {
				return
			}
		}
	}
}

// Diagnostics reports structural stats, including the set of keys whose
// initial probe slot (attempt 0) collides with another live key's.
type Diagnostics[K comparable] struct {
	Capacity      int
	Size          int
	Tombstones    int
	CollidingKeys *set3.Set3[K]
}

// Deinit invokes destroyCB (if non-nil) on every live key/value pair, then
// releases the backing array. Per the ownership table, the backing array
// is the container's own resource, freed "on deinit or resize", and stored
// key/value references are the user's, who "may register a destroy
// callback invoked at deinit". The Table is empty and unusable after
// Deinit returns.
func (t *Table[K, V]) Deinit(destroyCB func(K, V)) {
	if destroyCB != nil {
		for i := range t.entries {
			if t.entries[i].state == live {
				destroyCB(t.entries[i].key, t.entries[i].value)
			}
		}
	}
	t.entries = nil
	t.tombstones = nil
	t.size = 0
	t.capacity = 0
}

// Diagnostics computes a Diagnostics snapshot for the table's current
// state.
func (t *Table[K, V]) Diagnostics() Diagnostics[K] {
	colliding := set3.Empty[K]()
	firstSlotOwner := make(map[int]K, t.size)
	for i := range t.entries {
		if t.entries[i].state != live {
			continue
		}
		key := t.entries[i].key
		slot := t.probe(key, 0)
		if owner, ok := firstSlotOwner[slot]; ok {
			colliding.Add(key)
			colliding.Add(owner)
		} else {
			firstSlotOwner[slot] = key
		}
	}
	return Diagnostics[K]{
		Capacity:      t.capacity,
		Size:          t.size,
		Tombstones:    t.tombstones.Count(),
		CollidingKeys: colliding,
	}
}
