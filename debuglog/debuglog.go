// Package debuglog provides the pluggable, debug-build-only logging
// collaborator every container may be wired with. It mirrors the LOG/
// LOG_IF macros of the original C sources (debug.h): compiled away to
// nothing when no Logger is configured, a single call site at each failure
// point otherwise. In release, with no Logger wired, containers are silent
// at the library level exactly as spec.md's error-handling design requires.
package debuglog

// Logger is the minimal interface a container calls into when it wants to
// report a recoverable failure or an internal structural event (split,
// merge, rotation, resize). Debugf takes a printf-style format string.
type Logger interface {
	Debugf(format string, args ...any)
}

// noop discards everything; it is the default for every container that is
// not explicitly configured with a Logger.
type noop struct{}

func (noop) Debugf(string, ...any) {}

// Noop is the shared no-op Logger instance.
var Noop Logger = noop{}
