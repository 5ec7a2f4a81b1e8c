package mma

import "fmt"

// ArrayList is a handle onto one logical array managed by a MemoryManager.
// It is a thin convenience wrapper: all state lives in the manager, so a
// handle stays valid (if functionally dead) even after Release, and copying
// one is cheap and safe.
type ArrayList struct {
	mgr  *MemoryManager
	id   ArrayID
	size int
}

// NewArray allocates a fresh array of size elements through mgr and returns
// a handle onto it.
func NewArray(mgr *MemoryManager, size int) (*ArrayList, error) {
	id, err := mgr.Allocate(size)
	if err != nil {
		return nil, err
	}
	return &ArrayList{mgr: mgr, id: id, size: size}, nil
}

// ID returns the array's manager-assigned identifier.
func (a *ArrayList) ID() ArrayID { return a.id }

// Len returns the number of elements the array was allocated with.
func (a *ArrayList) Len() int { return a.size }

// Get returns the element at index.
func (a *ArrayList) Get(index int) (int32, error) {
	if index < 0 || index >= a.size {
		return 0, fmt.Errorf("%w: index %d, length %d", ErrBounds, index, a.size)
	}
	return a.mgr.Read(a.id, index)
}

// Set stores value at index.
func (a *ArrayList) Set(index int, value int32) error {
	if index < 0 || index >= a.size {
		return fmt.Errorf("%w: index %d, length %d", ErrBounds, index, a.size)
	}
	return a.mgr.Write(a.id, index, value)
}

// Release returns the array's frames and swap blobs to its manager. The
// handle must not be used afterward.
func (a *ArrayList) Release() error {
	return a.mgr.Release(a.id)
}
