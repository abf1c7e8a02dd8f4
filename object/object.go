// Package object defines the copy-init/destroy hooks a container uses to
// take ownership of (or release) values it stores, mirroring the
// object_concept collaborator the original C containers were built against.
package object

import "github.com/TomTonic/containers/status"

// Object describes how a container should initialize a freshly stored
// value from a caller-supplied source, and how to release any resources a
// stored value owns when the container discards it. Either behaviour may be
// a no-op when the container only stores references/plain values.
type Object[T any] interface {
	// CopyInit places a value at dest given a source value, returning
	// SystemError if the copy cannot complete (e.g. an implementation that
	// itself needs to allocate to copy src). Implementations that only
	// ever deal with plain Go values (no external resource ownership) can
	// just do `*dest = src` and return status.OK.
	CopyInit(dest *T, src T) status.Code
	// Destroy releases any resources owned by obj. Called when a container
	// drops a value it owns (heap pop, deinit with a destroy callback).
	Destroy(obj T)
}

// PlainObject is the default Object implementation: CopyInit assigns by
// value and always succeeds, Destroy does nothing. Used whenever T owns no
// external resource, which is the common case for a garbage-collected
// language.
type PlainObject[T any] struct{}

// CopyInit assigns src to *dest and returns status.OK.
func (PlainObject[T]) CopyInit(dest *T, src T) status.Code {
	*dest = src
	return status.OK
}

// Destroy is a no-op.
func (PlainObject[T]) Destroy(T) {}
