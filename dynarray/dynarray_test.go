package dynarray

import "testing"

func TestAppendAndAt(t *testing.T) {
	a := New[int](0)
	for i := 0; i < 10; i++ {
		a.Append(i)
	}
	if a.Len() != 10 {
		t.Fatalf("expected len 10, got %d", a.Len())
	}
	for i := 0; i < 10; i++ {
		if a.At(i) != i {
			t.Fatalf("At(%d) = %d, want %d", i, a.At(i), i)
		}
	}
}

func TestPopAndLast(t *testing.T) {
	a := New[string](0)
	if _, ok := a.Pop(); ok {
		t.Fatalf("Pop on empty should fail")
	}
	a.Append("x")
	a.Append("y")
	last, ok := a.Last()
	if !ok || last != "y" {
		t.Fatalf("Last() = %v, %v, want y, true", last, ok)
	}
	v, ok := a.Pop()
	if !ok || v != "y" {
		t.Fatalf("Pop() = %v, %v, want y, true", v, ok)
	}
	if a.Len() != 1 {
		t.Fatalf("expected len 1 after pop, got %d", a.Len())
	}
}

func TestSwapAndTruncate(t *testing.T) {
	a := New[int](0)
	a.Append(1)
	a.Append(2)
	a.Append(3)
	a.Swap(0, 2)
	if a.At(0) != 3 || a.At(2) != 1 {
		t.Fatalf("swap failed: %v %v", a.At(0), a.At(2))
	}
	a.Truncate(1)
	if a.Len() != 1 || a.At(0) != 3 {
		t.Fatalf("truncate failed: len=%d at0=%d", a.Len(), a.At(0))
	}
}

func TestClear(t *testing.T) {
	a := New[int](4)
	a.Append(1)
	a.Append(2)
	capBefore := a.Cap()
	a.Clear()
	if a.Len() != 0 {
		t.Fatalf("expected len 0 after clear")
	}
	if a.Cap() != capBefore {
		t.Fatalf("clear should retain capacity: before=%d after=%d", capBefore, a.Cap())
	}
}

func TestTruncateOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	a := New[int](0)
	a.Append(1)
	a.Truncate(5)
}
