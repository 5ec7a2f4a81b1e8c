// Package mma implements a user-space virtual-memory manager: a bounded pool
// of fixed-size physical page frames that backs an unbounded number of
// logical arrays by transparently paging their contents to and from a swap
// directory on disk.
package mma

// PageSize is the number of int32 words held by a single page frame, and the
// number of elements addressed by a single virtual page id. Matches the
// reference implementation's 1024-word page.
const PageSize = 1024

// ArrayID identifies a logical array for the lifetime of a MemoryManager.
// IDs are issued monotonically by Allocate and are never reused, even after
// Release.
type ArrayID int64

// FrameID is a dense index of a physical page frame in [0, N).
type FrameID int32

// pageEntry is one slot of a page table row. Non-negative values name a
// resident frame; the two named sentinels below carry the other two states.
type pageEntry int32

const (
	// unallocated marks a virtual page that has never been touched.
	unallocated pageEntry = -2
	// onDisk marks a virtual page whose only copy lives in the swap store.
	onDisk pageEntry = -1
)

func (e pageEntry) resident() bool { return e >= 0 }
func (e pageEntry) frame() FrameID  { return FrameID(e) }

// pageCount returns ceil(size / PageSize) for an array of size elements.
func pageCount(size int) int {
	return (size + PageSize - 1) / PageSize
}
