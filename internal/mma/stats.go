package mma

import "go.uber.org/atomic"

// statCounters holds the manager's live counters. Each field is independently
// atomic so readers never need to take the coordinator's mutex just to
// inspect throughput.
type statCounters struct {
	numAccess atomic.Uint64
	numHit    atomic.Uint64
	numMiss   atomic.Uint64
	numEvict  atomic.Uint64
}

// Stats is a point-in-time snapshot of a MemoryManager's counters.
type Stats struct {
	NumAccess uint64
	NumHit    uint64
	NumMiss   uint64
	NumEvict  uint64
}

func (c *statCounters) snapshot() Stats {
	return Stats{
		NumAccess: c.numAccess.Load(),
		NumHit:    c.numHit.Load(),
		NumMiss:   c.numMiss.Load(),
		NumEvict:  c.numEvict.Load(),
	}
}
