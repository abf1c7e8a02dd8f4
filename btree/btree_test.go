package btree

import (
	"fmt"
	"strings"
	"testing"

	"github.com/TomTonic/containers/alloc"
	"github.com/TomTonic/containers/status"
)

func intCmp(a, b int) int { return a - b }

func checkSorted(t *testing.T, got []int) {
	t.Helper()
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("expected strictly increasing order, got %v", got)
		}
	}
}

func checkFill(t *testing.T, order int, n *node, isRoot bool) {
	t.Helper()
	if n == nil {
		return
	}
	minFill := (order+1)/2 - 1
	if !isRoot && n.size < minFill {
		t.Fatalf("node underflowed: size %d, min %d", n.size, minFill)
	}
	if n.size > order-1 {
		t.Fatalf("node overflowed: size %d, max %d", n.size, order-1)
	}
	checkFill(t, order, nodeOf(n.firstChild), false)
	for i := 0; i < n.size; i++ {
		checkFill(t, order, nodeOf(n.EntryChild(i)), false)
	}
}

func TestAddAndWalkAscending(t *testing.T) {
	tr := New[int](3, intCmp)
	for _, v := range []int{5, 3, 7, 1, 9, 2, 0, 4, 6, 8} {
		if code := tr.Add(v); code != status.OK {
			t.Fatalf("Add(%d) = %v, want OK", v, code)
		}
	}
	checkSorted(t, tr.InorderValues())
	checkFill(t, 3, tr.root, true)
	if tr.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", tr.Len())
	}
}

func TestAddDuplicateRejected(t *testing.T) {
	tr := New[int](3, intCmp)
	if code := tr.Add(5); code != status.OK {
		t.Fatalf("first Add should succeed, got %v", code)
	}
	if code := tr.Add(5); code != status.DuplicateKey {
		t.Fatalf("Add of a duplicate = %v, want DuplicateKey", code)
	}
	if tr.Len() != 1 {
		t.Fatalf("expected len 1, got %d", tr.Len())
	}
}

func TestSplitCascadeOrderThree(t *testing.T) {
	tr := New[int](3, intCmp)
	for i := 0; i < 10; i++ {
		tr.Add(i)
	}
	checkSorted(t, tr.InorderValues())
	checkFill(t, 3, tr.root, true)
	if tr.Height() < 2 {
		t.Fatalf("expected the root to have split at least once, height = %d", tr.Height())
	}
	for i := 0; i < 10; i++ {
		if !tr.Contains(i) {
			t.Fatalf("expected Contains(%d) true after split cascade", i)
		}
	}
}

func TestContainsAndSearch(t *testing.T) {
	tr := New[int](4, intCmp)
	for _, v := range []int{10, 20, 30, 40, 50, 60, 70} {
		tr.Add(v)
	}
	if !tr.Contains(40) {
		t.Fatalf("expected Contains(40) true")
	}
	if tr.Contains(45) {
		t.Fatalf("expected Contains(45) false")
	}
	got, ok := Search[int](tr, 60, func(key, stored int) int { return key - stored })
	if !ok || got != 60 {
		t.Fatalf("Search(60) = %v, %v, want 60, true", got, ok)
	}
	if _, ok := Search[int](tr, 99, func(key, stored int) int { return key - stored }); ok {
		t.Fatalf("Search(99) should miss")
	}
}

func TestRemoveLeaf(t *testing.T) {
	tr := New[int](4, intCmp)
	for _, v := range []int{10, 20, 30, 40, 50} {
		tr.Add(v)
	}
	v, ok := tr.Remove(50)
	if !ok || v != 50 {
		t.Fatalf("Remove(50) = %v, %v, want 50, true", v, ok)
	}
	if tr.Contains(50) {
		t.Fatalf("50 should be gone")
	}
	checkSorted(t, tr.InorderValues())
}

func TestRemoveMissing(t *testing.T) {
	tr := New[int](3, intCmp)
	tr.Add(1)
	if _, ok := tr.Remove(2); ok {
		t.Fatalf("Remove of an absent value should miss")
	}
}

func TestRemoveInternalNodeUsesPredecessor(t *testing.T) {
	tr := New[int](4, intCmp)
	for _, v := range []int{20, 10, 30, 5, 15, 25, 35} {
		tr.Add(v)
	}
	if _, ok := tr.Remove(20); !ok {
		t.Fatalf("Remove(20) should succeed")
	}
	if tr.Contains(20) {
		t.Fatalf("20 should be gone")
	}
	checkSorted(t, tr.InorderValues())
	checkFill(t, 4, tr.root, true)
}

func TestMergeUnderflowCascade(t *testing.T) {
	tr := New[int](3, intCmp)
	insertOrder := []int{5, 3, 7, 1, 9, 2, 0, 4, 6, 8}
	for _, v := range insertOrder {
		tr.Add(v)
	}
	removeOrder := []int{5, 3, 7, 1, 9, 2, 0, 4, 6, 8}
	for i, v := range removeOrder {
		if _, ok := tr.Remove(v); !ok {
			t.Fatalf("Remove(%d) should succeed", v)
		}
		checkFill(t, 3, tr.root, true)
		checkSorted(t, tr.InorderValues())
		if tr.Len() != len(removeOrder)-i-1 {
			t.Fatalf("Len() = %d, want %d", tr.Len(), len(removeOrder)-i-1)
		}
	}
	if tr.Len() != 0 {
		t.Fatalf("expected empty tree, got len %d", tr.Len())
	}
	if tr.root == nil || tr.root.size != 0 || tr.root.firstChild != nil {
		t.Fatalf("expected an empty leaf root to remain")
	}
}

func TestRemoveUntilEmptyLargerOrder(t *testing.T) {
	tr := New[int](5, intCmp)
	vals := []int{50, 30, 70, 20, 40, 60, 80, 10, 25, 35, 45, 90, 5, 15, 55}
	for _, v := range vals {
		tr.Add(v)
	}
	for _, v := range vals {
		if _, ok := tr.Remove(v); !ok {
			t.Fatalf("Remove(%d) should succeed", v)
		}
		checkFill(t, 5, tr.root, true)
	}
	if tr.Len() != 0 {
		t.Fatalf("expected empty tree")
	}
}

func TestAddAllocationFailure(t *testing.T) {
	tr := New[int](3, intCmp, WithAllocator[int](failingAllocator{}))
	if code := tr.Add(1); code != status.SystemError {
		t.Fatalf("Add with a failing allocator = %v, want SystemError", code)
	}
}

type failingAllocator struct{}

func (failingAllocator) Alloc(int) []byte { return nil }
func (failingAllocator) Free([]byte)      {}

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Debugf(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func TestWithLoggerObservesSplitAndMerge(t *testing.T) {
	logger := &recordingLogger{}
	tr := New[int](3, intCmp, WithLogger[int](logger))
	for _, v := range []int{5, 3, 7, 1, 9, 2, 0, 4, 6, 8} {
		tr.Add(v)
	}
	if len(logger.lines) == 0 {
		t.Fatalf("expected WithLogger to observe at least one split event")
	}
	afterAdds := len(logger.lines)
	for _, v := range []int{5, 3, 7, 1, 9, 2, 0, 4, 6, 8} {
		tr.Remove(v)
	}
	if tr.Len() != 0 {
		t.Fatalf("expected empty tree, got len %d", tr.Len())
	}
	merged := false
	for _, line := range logger.lines[afterAdds:] {
		if strings.HasPrefix(line, "btree: merged") {
			merged = true
		}
	}
	if !merged {
		t.Fatalf("expected WithLogger to observe at least one merge event, got %v", logger.lines[afterAdds:])
	}
}

func TestDeinitReleasesEveryNodeAndInvokesCallback(t *testing.T) {
	tracker := alloc.NewTracking(nil)
	tr := New[int](3, intCmp, WithAllocator[int](tracker))
	vals := []int{5, 3, 7, 1, 9, 2, 0, 4, 6, 8}
	for _, v := range vals {
		tr.Add(v)
	}
	if tracker.Live() == 0 {
		t.Fatalf("expected outstanding node allocations before Deinit")
	}

	var destroyed []int
	tr.Deinit(func(v int) { destroyed = append(destroyed, v) })

	if tracker.Live() != 0 {
		t.Fatalf("Deinit left %d node allocations outstanding", tracker.Live())
	}
	if len(destroyed) != len(vals) {
		t.Fatalf("Deinit invoked destroyCB %d times, want %d", len(destroyed), len(vals))
	}
	if tr.Len() != 0 {
		t.Fatalf("expected Len() == 0 after Deinit, got %d", tr.Len())
	}
}
