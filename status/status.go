// Package status defines the stable result codes returned by every
// container's mutating and searching operations.
package status

import "errors"

// Code is a result code returned by container operations in place of a
// language-level exception. Mutating operations return a Code; searches
// typically return a value (or nil/zero) together with a bool or Code.
type Code int

const (
	// OK indicates the operation completed normally.
	OK Code = iota
	// NotFound indicates the requested key is absent.
	NotFound
	// DuplicateKey indicates an insert collided with an existing key in a
	// container whose semantics forbid overwrite.
	DuplicateKey
	// SystemError indicates an allocator returned a failure.
	SystemError
	// UnknownInput indicates a trie character mapper rejected an input
	// symbol.
	UnknownInput
)

func (c Code) String() string {
	switch c {
	case OK:
		return "ok"
	case NotFound:
		return "not-found"
	case DuplicateKey:
		return "duplicate-key"
	case SystemError:
		return "system-error"
	case UnknownInput:
		return "unknown-input"
	default:
		return "unknown-status"
	}
}

// Sentinel errors, one per non-OK Code, so callers can use errors.Is.
var (
	ErrNotFound     = errors.New(NotFound.String())
	ErrDuplicateKey = errors.New(DuplicateKey.String())
	ErrSystemError  = errors.New(SystemError.String())
	ErrUnknownInput = errors.New(UnknownInput.String())
)

// Err converts a Code into the matching sentinel error, or nil for OK.
func (c Code) Err() error {
	switch c {
	case OK:
		return nil
	case NotFound:
		return ErrNotFound
	case DuplicateKey:
		return ErrDuplicateKey
	case SystemError:
		return ErrSystemError
	case UnknownInput:
		return ErrUnknownInput
	default:
		return errors.New(c.String())
	}
}
