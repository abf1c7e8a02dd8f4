package trie

import (
	"sort"
	"testing"

	set3 "github.com/TomTonic/Set3"
	"github.com/TomTonic/containers/status"
)

func lowercaseMapper() Mapper {
	return Mapper{
		AlphabetSize: 26,
		Index: func(c rune) (int, bool) {
			if c < 'a' || c > 'z' {
				return 0, false
			}
			return int(c - 'a'), true
		},
		Unmap: func(i int) rune { return rune('a' + i) },
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	tr := New[int](lowercaseMapper())
	_, hadPrev, code := tr.Put("cat", 1)
	if code != status.OK || hadPrev {
		t.Fatalf("Put(cat) = hadPrev=%v code=%v, want false, OK", hadPrev, code)
	}
	v, code := tr.Get("cat")
	if code != status.OK || v != 1 {
		t.Fatalf("Get(cat) = %v, %v, want 1, OK", v, code)
	}
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tr.Len())
	}
}

func TestPutOverwriteReturnsPrevious(t *testing.T) {
	tr := New[int](lowercaseMapper())
	tr.Put("cat", 1)
	prev, hadPrev, code := tr.Put("cat", 2)
	if code != status.OK || !hadPrev || prev != 1 {
		t.Fatalf("Put overwrite = prev=%v hadPrev=%v code=%v, want 1, true, OK", prev, hadPrev, code)
	}
	if tr.Len() != 1 {
		t.Fatalf("overwrite should not change Len(), got %d", tr.Len())
	}
}

func TestGetMissingAndBrokenWalk(t *testing.T) {
	tr := New[int](lowercaseMapper())
	if _, code := tr.Get("cat"); code != status.NotFound {
		t.Fatalf("Get on empty trie = %v, want NotFound", code)
	}
	tr.Put("cat", 1)
	if _, code := tr.Get("ca"); code != status.NotFound {
		t.Fatalf("Get(ca) = %v, want NotFound (ca has no stored value)", code)
	}
	if _, code := tr.Get("caterpillar"); code != status.NotFound {
		t.Fatalf("Get(caterpillar) = %v, want NotFound (walk breaks, no child)", code)
	}
}

func TestGetUnknownInput(t *testing.T) {
	tr := New[int](lowercaseMapper())
	tr.Put("cat", 1)
	if _, code := tr.Get("Cat"); code != status.UnknownInput {
		t.Fatalf("Get(Cat) = %v, want UnknownInput", code)
	}
}

func TestRemoveDoesNotCompact(t *testing.T) {
	tr := New[int](lowercaseMapper())
	tr.Put("cat", 1)
	if code := tr.Remove("cat"); code != status.OK {
		t.Fatalf("Remove(cat) = %v, want OK", code)
	}
	if tr.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", tr.Len())
	}
	if _, code := tr.Get("cat"); code != status.NotFound {
		t.Fatalf("Get(cat) after remove = %v, want NotFound", code)
	}
	if code := tr.Remove("cat"); code != status.NotFound {
		t.Fatalf("second Remove(cat) = %v, want NotFound", code)
	}
	// The intermediate c->a->t node chain stays allocated (no compaction);
	// re-inserting a sibling under the same prefix should still work.
	if _, _, code := tr.Put("car", 2); code != status.OK {
		t.Fatalf("Put(car) after Remove(cat) = %v, want OK", code)
	}
}

func TestPrefixIterate(t *testing.T) {
	tr := New[int](lowercaseMapper())
	entries := map[string]int{"cat": 1, "car": 2, "card": 3, "care": 4, "dog": 5}
	for k, v := range entries {
		tr.Put(k, v)
	}

	var got []string
	code := tr.PrefixIterate("ca", func(key string, value int) bool {
		got = append(got, key)
		if entries[key] != value {
			t.Fatalf("PrefixIterate(%q) value = %d, want %d", key, value, entries[key])
		}
		return true
	})
	if code != status.OK {
		t.Fatalf("PrefixIterate(ca) = %v, want OK", code)
	}
	sort.Strings(got)
	want := []string{"car", "card", "care", "cat"}
	if len(got) != len(want) {
		t.Fatalf("PrefixIterate(ca) visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("PrefixIterate(ca) visited %v, want %v", got, want)
		}
	}

	got = nil
	tr.PrefixIterate("", func(key string, _ int) bool {
		got = append(got, key)
		return true
	})
	if len(got) != 5 {
		t.Fatalf("PrefixIterate(\"\") visited %d keys, want 5", len(got))
	}
}

func TestPrefixIterateStopsEarly(t *testing.T) {
	tr := New[int](lowercaseMapper())
	tr.Put("cat", 1)
	tr.Put("car", 2)
	tr.Put("card", 3)

	count := 0
	tr.PrefixIterate("ca", func(string, int) bool {
		count++
		return false
	})
	if count != 1 {
		t.Fatalf("expected visit to stop after the first call, got %d calls", count)
	}
}

func TestPrefixIterateAbsentPrefix(t *testing.T) {
	tr := New[int](lowercaseMapper())
	tr.Put("cat", 1)
	calls := 0
	code := tr.PrefixIterate("dog", func(string, int) bool { calls++; return true })
	if code != status.OK || calls != 0 {
		t.Fatalf("PrefixIterate(dog) = code=%v calls=%d, want OK, 0", code, calls)
	}
}

func TestCollectInto(t *testing.T) {
	tr := New[int](lowercaseMapper())
	for _, k := range []string{"cat", "car", "card", "care", "dog"} {
		tr.Put(k, len(k))
	}
	dst := set3.Empty[string]()
	if code := tr.CollectInto("ca", dst); code != status.OK {
		t.Fatalf("CollectInto(ca) = %v, want OK", code)
	}
	if dst.Len() != 4 {
		t.Fatalf("CollectInto(ca) collected %d keys, want 4", dst.Len())
	}
	if !dst.Contains("cat") || !dst.Contains("card") {
		t.Fatalf("expected cat and card in the collected set")
	}
}

func TestLongestPrefix(t *testing.T) {
	tr := New[int](lowercaseMapper())
	tr.Put("car", 1)
	tr.Put("cart", 2)

	if got := tr.LongestPrefix("cartoon"); got != 4 {
		t.Fatalf("LongestPrefix(cartoon) = %d, want 4", got)
	}
	if got := tr.LongestPrefix("ca"); got != -1 {
		t.Fatalf("LongestPrefix(ca) = %d, want -1", got)
	}
	if got := tr.LongestPrefix("dog"); got != -1 {
		t.Fatalf("LongestPrefix(dog) = %d, want -1", got)
	}
}

func TestDeinitInvokesCallbackAndEmptiesTrie(t *testing.T) {
	tr := New[int](lowercaseMapper())
	entries := map[string]int{"cat": 1, "car": 2, "dog": 3}
	for k, v := range entries {
		tr.Put(k, v)
	}

	destroyed := make(map[int]bool)
	tr.Deinit(func(v int) { destroyed[v] = true })

	if len(destroyed) != len(entries) {
		t.Fatalf("Deinit invoked destroyCB %d times, want %d", len(destroyed), len(entries))
	}
	for _, v := range entries {
		if !destroyed[v] {
			t.Fatalf("Deinit never destroyed value %d", v)
		}
	}
	if tr.Len() != 0 {
		t.Fatalf("expected Len() == 0 after Deinit, got %d", tr.Len())
	}
	if _, code := tr.Get("cat"); code != status.NotFound {
		t.Fatalf("Get(cat) after Deinit = %v, want NotFound", code)
	}
}

func TestKeyTooLongRejected(t *testing.T) {
	tr := New[int](lowercaseMapper())
	tooLong := make([]byte, maxKeyLen+1)
	for i := range tooLong {
		tooLong[i] = 'a'
	}
	if _, _, code := tr.Put(string(tooLong), 1); code != status.UnknownInput {
		t.Fatalf("Put with an over-long key = %v, want UnknownInput", code)
	}
}
