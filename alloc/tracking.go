package alloc

// Tracking decorates another Allocator and counts outstanding allocations,
// so tests can assert that a container's Deinit/Destroy path releases every
// node it acquired. Single-threaded, matching the library's concurrency
// model: callers sharing a Tracking allocator across goroutines must
// serialize externally.
type Tracking struct {
	Backing     Allocator
	live        int
	totalAllocs int
	totalFrees  int
}

// NewTracking wraps backing (Default{} if nil is passed as the zero value
// isn't usable directly since Backing would be a nil interface).
func NewTracking(backing Allocator) *Tracking {
	if backing == nil {
		backing = Default{}
	}
	return &Tracking{Backing: backing}
}

// Alloc delegates to Backing and records the allocation unless it failed.
func (t *Tracking) Alloc(size int) []byte {
	b := t.Backing.Alloc(size)
	if b != nil {
		t.live++
		t.totalAllocs++
	}
	return b
}

// Free delegates to Backing and records the release.
func (t *Tracking) Free(b []byte) {
	if b == nil {
		return
	}
	t.Backing.Free(b)
	t.live--
	t.totalFrees++
}

// Live reports the number of allocations not yet matched by a Free call.
func (t *Tracking) Live() int { return t.live }

// Totals reports the lifetime allocation and free counts.
func (t *Tracking) Totals() (allocs, frees int) { return t.totalAllocs, t.totalFrees }
