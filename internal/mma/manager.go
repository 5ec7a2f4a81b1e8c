package mma

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"vmma/internal/mma/evict"
	"vmma/internal/mma/swapstore"

	"go.uber.org/multierr"
)

const logPrefix = "mma: "

// MemoryManager is the coordinator: it owns the pool of physical frames, the
// page table mapping every live array's virtual pages onto them, the
// free-frame allocator, the replacement policy, and the swap store frames
// are evicted to. All of it is guarded by a single mutex — the pool is sized
// for a handful of frames and a modest number of concurrent callers, and a
// coarse lock keeps every operation trivially linearizable at the cost of
// serializing unrelated arrays' traffic.
type MemoryManager struct {
	mu sync.Mutex

	frames  []PageFrame
	table   *pageTable
	alloc   *freeFrameAllocator
	policy  evict.Policy
	swap    swapstore.Store
	nextID  ArrayID
	poisons error
	stats   statCounters
}

// NewManager builds a MemoryManager per cfg, backed by a FileStore rooted at
// cfg.SwapDir (os.TempDir() when empty), which must already exist.
func NewManager(cfg Config) (*MemoryManager, error) {
	dir := cfg.SwapDir
	if dir == "" {
		dir = os.TempDir()
	}
	store, err := swapstore.NewFileStore(dir, blobSize)
	if err != nil {
		return nil, err
	}
	return newManagerWithStore(cfg, store)
}

// newManagerWithStore builds a MemoryManager against an arbitrary Store,
// bypassing the filesystem — tests use this to exercise the coordinator
// without needing a real swap directory to back every case.
func newManagerWithStore(cfg Config, swap swapstore.Store) (*MemoryManager, error) {
	if cfg.PoolSize <= 0 {
		return nil, fmt.Errorf("mma: pool size must be positive, got %d", cfg.PoolSize)
	}
	kind, err := cfg.policyKind()
	if err != nil {
		return nil, err
	}
	return &MemoryManager{
		frames: make([]PageFrame, cfg.PoolSize),
		table:  newPageTable(),
		alloc:  newFreeFrameAllocator(cfg.PoolSize),
		policy: evict.New(kind, cfg.PoolSize),
		swap:   swap,
	}, nil
}

// Stats returns a snapshot of the manager's access counters.
func (m *MemoryManager) Stats() Stats {
	return m.stats.snapshot()
}

// Allocate reserves a new logical array of size elements and returns its id.
// No frames are bound and no swap blobs are written until the array's
// elements are first touched — pages start unallocated and read as zero.
func (m *MemoryManager) Allocate(size int) (ArrayID, error) {
	if size <= 0 {
		return 0, fmt.Errorf("%w: array size must be positive, got %d", ErrBounds, size)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.poisonedLocked(); err != nil {
		return 0, err
	}

	n := pageCount(size)
	if n > len(m.frames) {
		return 0, fmt.Errorf("%w: array needs %d pages, pool has %d frames", ErrCapacity, n, len(m.frames))
	}

	id := m.nextID
	m.nextID++
	m.table.create(id, n)

	slog.Debug(logPrefix+"allocate", "array_id", id, "size", size, "pages", n)
	return id, nil
}

// Release frees every frame and swap blob backing id and forgets the array.
// Any subsequent Read/Write against id returns ErrBounds. Release still runs
// on a poisoned manager, so swap blobs can be cleaned up after an I/O error.
func (m *MemoryManager) Release(id ArrayID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.table.row(id)
	if !ok {
		return fmt.Errorf("%w: unknown array %d", ErrBounds, id)
	}

	var errs error
	for vid, e := range row {
		switch {
		case e.resident():
			f := e.frame()
			m.policy.OnFree(int(f))
			m.alloc.release(f)
		case e == onDisk:
			if err := m.swap.Remove(swapstore.Key{ArrayID: int64(id), Vid: vid}); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
	}
	m.table.drop(id)

	slog.Debug(logPrefix+"release", "array_id", id)

	if errs != nil {
		m.poisons = fmt.Errorf("%w: %w", ErrIO, errs)
		return m.poisons
	}
	return nil
}

// Read returns the word at flat index idx within array id.
func (m *MemoryManager) Read(id ArrayID, idx int) (int32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, offset, err := m.locateLocked(id, idx)
	if err != nil {
		return 0, err
	}
	return f.Read(offset)
}

// Write stores value at flat index idx within array id.
func (m *MemoryManager) Write(id ArrayID, idx int, value int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, offset, err := m.locateLocked(id, idx)
	if err != nil {
		return err
	}
	return f.Write(offset, value)
}

// locateLocked resolves (id, idx) to a resident frame and intra-page offset,
// faulting the owning page in if necessary. Both reads and writes bring a
// page fully resident, so the two share this path.
func (m *MemoryManager) locateLocked(id ArrayID, idx int) (*PageFrame, int, error) {
	if err := m.poisonedLocked(); err != nil {
		return nil, 0, err
	}

	if idx < 0 {
		return nil, 0, fmt.Errorf("%w: negative index %d", ErrBounds, idx)
	}
	vid, offset := idx/PageSize, idx%PageSize

	entry, ok := m.table.entry(id, vid)
	if !ok {
		return nil, 0, fmt.Errorf("%w: array %d has no page %d", ErrBounds, id, vid)
	}

	m.stats.numAccess.Inc()

	// 1) Already resident: touch the policy and return.
	if entry.resident() {
		m.stats.numHit.Inc()
		f := entry.frame()
		m.policy.OnAccess(int(f))
		slog.Debug(logPrefix+"hit", "array_id", id, "vid", vid, "frame", f)
		return &m.frames[f], offset, nil
	}

	m.stats.numMiss.Inc()

	// 2) Fault: find a frame, either free or by evicting.
	frame, err := m.faultFrameLocked()
	if err != nil {
		return nil, 0, err
	}

	f := &m.frames[frame]
	if entry == unallocated {
		f.Clear()
	} else {
		blob, err := m.swap.Get(swapstore.Key{ArrayID: int64(id), Vid: vid})
		if err != nil {
			m.poisons = fmt.Errorf("%w: %w", ErrIO, err)
			m.alloc.release(frame)
			return nil, 0, m.poisons
		}
		if err := f.loadFrom(blob); err != nil {
			m.poisons = fmt.Errorf("%w: %w", ErrIO, err)
			m.alloc.release(frame)
			return nil, 0, m.poisons
		}
		if err := m.swap.Remove(swapstore.Key{ArrayID: int64(id), Vid: vid}); err != nil {
			m.poisons = fmt.Errorf("%w: %w", ErrIO, err)
			return nil, 0, m.poisons
		}
	}

	m.table.setEntry(id, vid, pageEntry(frame))
	m.policy.OnLoad(int(frame))

	slog.Debug(logPrefix+"fault", "array_id", id, "vid", vid, "frame", frame)
	return f, offset, nil
}

// faultFrameLocked returns a frame id ready to bind to a new page, either
// from the free pool or by evicting and swapping out a victim.
func (m *MemoryManager) faultFrameLocked() (FrameID, error) {
	if id, ok := m.alloc.alloc(); ok {
		return id, nil
	}

	victim, ok := m.policy.Evict()
	if !ok {
		invariantf("pool exhausted but no frame is evictable")
	}
	m.stats.numEvict.Inc()

	ownerID, ownerVid, found := m.ownerOfLocked(FrameID(victim))
	if !found {
		invariantf("frame %d chosen as victim has no owning page", victim)
	}

	var blob [blobSize]byte
	if err := m.frames[victim].flushTo(blob[:]); err != nil {
		invariantf("flushing victim frame %d: %v", victim, err)
	}
	if err := m.swap.Put(swapstore.Key{ArrayID: int64(ownerID), Vid: ownerVid}, blob[:]); err != nil {
		m.poisons = fmt.Errorf("%w: %w", ErrIO, err)
		return 0, m.poisons
	}

	m.table.setEntry(ownerID, ownerVid, onDisk)
	slog.Debug(logPrefix+"evict", "array_id", ownerID, "vid", ownerVid, "frame", victim)

	return FrameID(victim), nil
}

// ownerOfLocked finds which (array, vid) currently owns frame f. The pool is
// sized for a small number of frames, so a linear scan over live arrays is
// fine and avoids keeping a second, easy-to-desync reverse index.
func (m *MemoryManager) ownerOfLocked(f FrameID) (ArrayID, int, bool) {
	for id, row := range m.table.rows {
		for vid, e := range row {
			if e.resident() && e.frame() == f {
				return id, vid, true
			}
		}
	}
	return 0, 0, false
}

func (m *MemoryManager) poisonedLocked() error {
	if m.poisons != nil {
		return fmt.Errorf("%w: %w", ErrPoisoned, m.poisons)
	}
	return nil
}
