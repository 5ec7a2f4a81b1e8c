package mma

import (
	"encoding/binary"
	"fmt"
)

// PageFrame is a fixed-capacity, PageSize-word block of physical memory.
// It is the unit the manager binds to virtual pages; frames are allocated
// once for the manager's lifetime and never resized.
type PageFrame struct {
	words [PageSize]int32
}

// Read returns the word at offset. offset must be in [0, PageSize).
func (f *PageFrame) Read(offset int) (int32, error) {
	if offset < 0 || offset >= PageSize {
		return 0, fmt.Errorf("%w: frame offset %d", ErrBounds, offset)
	}
	return f.words[offset], nil
}

// Write stores value at offset. offset must be in [0, PageSize).
func (f *PageFrame) Write(offset int, value int32) error {
	if offset < 0 || offset >= PageSize {
		return fmt.Errorf("%w: frame offset %d", ErrBounds, offset)
	}
	f.words[offset] = value
	return nil
}

// Clear zeroes the frame. First-touch virtual pages must read as zero, so
// the coordinator calls this before binding a freshly-allocated frame.
func (f *PageFrame) Clear() {
	for i := range f.words {
		f.words[i] = 0
	}
}

// blobSize is the exact byte length of a frame's on-disk representation.
const blobSize = PageSize * 4

// flushTo serializes the frame into dst, which must be exactly blobSize
// bytes. Words are written in little-endian order, a fixed on-disk format
// independent of the host's native byte order.
func (f *PageFrame) flushTo(dst []byte) error {
	if len(dst) != blobSize {
		return fmt.Errorf("mma: frame blob must be %d bytes, got %d", blobSize, len(dst))
	}
	for i, w := range f.words {
		binary.LittleEndian.PutUint32(dst[i*4:], uint32(w))
	}
	return nil
}

// loadFrom deserializes src, which must be exactly blobSize bytes, into the
// frame, overwriting its current contents.
func (f *PageFrame) loadFrom(src []byte) error {
	if len(src) != blobSize {
		return fmt.Errorf("mma: frame blob must be %d bytes, got %d", blobSize, len(src))
	}
	for i := range f.words {
		f.words[i] = int32(binary.LittleEndian.Uint32(src[i*4:]))
	}
	return nil
}
