package evict

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFIFOPolicy_EvictsInLoadOrder(t *testing.T) {
	p := New(KindFIFO, 4)
	p.OnLoad(0)
	p.OnLoad(1)
	p.OnLoad(2)

	// Accessing 0 must not change FIFO's order: unlike an LRU-style queue,
	// FIFO only cares when a frame was first loaded.
	p.OnAccess(0)

	id, ok := p.Evict()
	require.True(t, ok)
	require.Equal(t, 0, id)

	id, ok = p.Evict()
	require.True(t, ok)
	require.Equal(t, 1, id)
}

func TestFIFOPolicy_OnFreeRemovesFromQueue(t *testing.T) {
	p := New(KindFIFO, 4)
	p.OnLoad(0)
	p.OnLoad(1)
	p.OnFree(0)

	id, ok := p.Evict()
	require.True(t, ok)
	require.Equal(t, 1, id)
}

func TestFIFOPolicy_EvictEmptyFails(t *testing.T) {
	p := New(KindFIFO, 4)
	_, ok := p.Evict()
	require.False(t, ok)
}
