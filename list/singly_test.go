package list

import "testing"

func TestSinglyPushPop(t *testing.T) {
	l := NewSingly[int]()
	if !l.Empty() {
		t.Fatalf("new list should be empty")
	}
	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)
	if l.Len() != 3 {
		t.Fatalf("expected len 3, got %d", l.Len())
	}
	for _, want := range []int{1, 2, 3} {
		got, ok := l.PopFront()
		if !ok || got != want {
			t.Fatalf("PopFront() = %v, %v, want %v, true", got, ok, want)
		}
	}
	if !l.Empty() {
		t.Fatalf("list should be empty after draining")
	}
	if _, ok := l.PopFront(); ok {
		t.Fatalf("PopFront on empty should fail")
	}
}

func TestSinglyPushFront(t *testing.T) {
	l := NewSingly[string]()
	l.PushFront("b")
	l.PushFront("a")
	var got []string
	l.ForEach(func(v string) bool { got = append(got, v); return true })
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestSinglyCursorRemoveMidAndTail(t *testing.T) {
	l := NewSingly[int]()
	for i := 1; i <= 5; i++ {
		l.PushBack(i)
	}
	// remove the value 3 (mid-list) via cursor walk
	c := l.First()
	for c.Valid() && c.Value() != 3 {
		c = c.Next()
	}
	if !c.Valid() {
		t.Fatalf("expected to find 3")
	}
	v, ok := c.Remove()
	if !ok || v != 3 {
		t.Fatalf("Remove() = %v, %v, want 3, true", v, ok)
	}
	var remaining []int
	l.ForEach(func(v int) bool { remaining = append(remaining, v); return true })
	if len(remaining) != 4 {
		t.Fatalf("expected 4 remaining, got %v", remaining)
	}

	// now drain to the tail and remove it, then push again to ensure tail
	// bookkeeping stays correct.
	for l.Len() > 1 {
		l.PopFront()
	}
	l.PopFront() // removes the last element via head slot
	l.PushBack(42)
	got, ok := l.PopFront()
	if !ok || got != 42 {
		t.Fatalf("expected to recover tail bookkeeping, got %v, %v", got, ok)
	}
}

func TestSinglyInsertBeforeAtArbitraryCursor(t *testing.T) {
	l := NewSingly[int]()
	l.PushBack(1)
	l.PushBack(3)
	c := l.First().Next() // slot holding "3"
	c.InsertBefore(2)
	var got []int
	l.ForEach(func(v int) bool { got = append(got, v); return true })
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("unexpected order after InsertBefore: %v", got)
	}
}
