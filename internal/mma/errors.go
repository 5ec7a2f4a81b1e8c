package mma

import (
	"errors"
	"fmt"
)

// Error taxonomy. Capacity and Bounds are recoverable at the caller; IO is
// fatal to the operation and poisons the manager; invariant violations are
// never returned as errors (see invariantf below), they panic.
var (
	// ErrCapacity is returned by Allocate when the requested array would need
	// more pages than the pool has frames.
	ErrCapacity = errors.New("mma: allocation exceeds pool capacity")

	// ErrBounds is returned for an out-of-range vid/offset, or for any
	// operation against an array that does not exist (including a
	// previously-released one).
	ErrBounds = errors.New("mma: index out of bounds")

	// ErrIO is returned when the swap store fails to read, write, or remove
	// a page blob.
	ErrIO = errors.New("mma: swap I/O error")

	// ErrPoisoned is returned by every Allocate, Read and Write once the
	// manager has observed an unrecoverable ErrIO; the manager does not
	// attempt to self-heal. Release still runs, to clean up swap blobs.
	ErrPoisoned = errors.New("mma: manager poisoned by a previous I/O error")
)

// invariantf panics with a message identifying an impossible internal state.
// Per the spec's error taxonomy, invariant violations are bugs, not
// recoverable errors: treating them as a normal error return would let a
// caller paper over corrupted bookkeeping (e.g. two virtual pages bound to
// the same frame).
func invariantf(format string, args ...any) {
	panic("mma: invariant violation: " + fmt.Sprintf(format, args...))
}
