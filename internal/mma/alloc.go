package mma

import "container/list"

// freeFrameAllocator hands out and reclaims physical frame ids. Frames are
// served in the order they were freed (a FIFO queue), matching the
// reference's std::queue<int>-backed AllocMgr; container/list gives the same
// O(1) push/pop without a manual ring buffer, the same tradeoff the teacher
// corpus makes for identically-shaped order tracking (bufferpool.LRUReplacer,
// pagemanager.LRUCache).
type freeFrameAllocator struct {
	free *list.List
}

func newFreeFrameAllocator(n int) *freeFrameAllocator {
	a := &freeFrameAllocator{free: list.New()}
	for i := 0; i < n; i++ {
		a.free.PushBack(FrameID(i))
	}
	return a
}

// alloc removes and returns any currently free frame id. ok is false once
// every frame is bound.
func (a *freeFrameAllocator) alloc() (FrameID, bool) {
	front := a.free.Front()
	if front == nil {
		return 0, false
	}
	a.free.Remove(front)
	return front.Value.(FrameID), true
}

// release returns id to the pool. The coordinator must never call this for an
// id that is already free; doing so is an invariant violation, not a
// recoverable error, since it means the coordinator's own bookkeeping
// (the page table / free set partition) has desynchronized.
func (a *freeFrameAllocator) release(id FrameID) {
	for e := a.free.Front(); e != nil; e = e.Next() {
		if e.Value.(FrameID) == id {
			invariantf("free frame %d is already free", id)
		}
	}
	a.free.PushBack(id)
}

func (a *freeFrameAllocator) numFree() int { return a.free.Len() }
