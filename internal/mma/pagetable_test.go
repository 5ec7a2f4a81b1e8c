package mma

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageTable_CreateStartsUnallocated(t *testing.T) {
	pt := newPageTable()
	pt.create(1, 3)

	for vid := 0; vid < 3; vid++ {
		e, ok := pt.entry(1, vid)
		require.True(t, ok)
		require.Equal(t, unallocated, e)
	}
}

func TestPageTable_EntryOutOfRange(t *testing.T) {
	pt := newPageTable()
	pt.create(1, 2)

	_, ok := pt.entry(1, 2)
	require.False(t, ok)

	_, ok = pt.entry(1, -1)
	require.False(t, ok)

	_, ok = pt.entry(2, 0)
	require.False(t, ok)
}

func TestPageTable_SetEntryAndDrop(t *testing.T) {
	pt := newPageTable()
	pt.create(1, 1)

	pt.setEntry(1, 0, pageEntry(5))
	e, ok := pt.entry(1, 0)
	require.True(t, ok)
	require.Equal(t, FrameID(5), e.frame())

	pt.drop(1)
	_, ok = pt.row(1)
	require.False(t, ok)
}
