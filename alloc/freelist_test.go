package alloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestFreeListAllocateAndFreeReclaimsSpace(t *testing.T) {
	a, d := NewFreeList(4096, FindFirst)

	p := Allocate(a, 64, 0)
	require.NotNil(t, p)
	require.Greater(t, d.Used(), int64(0))

	Free(p, 0)
	require.EqualValues(t, 0, d.Used())
}

func TestFreeListWritesAreIsolatedPerAllocation(t *testing.T) {
	a, _ := NewFreeList(4096, FindFirst)

	p1 := Allocate(a, 32, 0)
	p2 := Allocate(a, 32, 0)
	require.NotNil(t, p1)
	require.NotNil(t, p2)

	b1 := unsafe.Slice((*byte)(p1), 32)
	b2 := unsafe.Slice((*byte)(p2), 32)
	for i := range b1 {
		b1[i] = 0xAA
	}
	for i := range b2 {
		b2[i] = 0xBB
	}
	require.EqualValues(t, 0xAA, b1[0])
	require.EqualValues(t, 0xBB, b2[0])
}

// TestFreeListCoalescesAdjacentFreedBlocks frees two neighboring blocks and
// then proves the space was merged back together by allocating something
// that would not fit in either block alone.
func TestFreeListCoalescesAdjacentFreedBlocks(t *testing.T) {
	a, d := NewFreeList(256, FindFirst)

	p1 := Allocate(a, 64, 0)
	p2 := Allocate(a, 64, 0)
	require.NotNil(t, p1)
	require.NotNil(t, p2)

	Free(p1, 0)
	Free(p2, 0)
	require.EqualValues(t, 0, d.Used())

	big := Allocate(a, 150, 0)
	require.NotNil(t, big)
}

func TestFreeListFindBestPrefersTighterBlock(t *testing.T) {
	a, d := NewFreeList(4096, FindBest)

	p1 := Allocate(a, 32, 0)
	p2 := Allocate(a, 512, 0)
	p3 := Allocate(a, 32, 0)
	require.NotNil(t, p1)
	require.NotNil(t, p2)
	require.NotNil(t, p3)

	Free(p1, 0)
	Free(p3, 0)

	before := d.Used()
	p4 := Allocate(a, 16, 0)
	require.NotNil(t, p4)
	require.Less(t, d.Used()-before, int64(512))
}

func TestFreeListExhaustionReturnsNil(t *testing.T) {
	a, _ := NewFreeList(64, FindFirst)
	p := Allocate(a, 4096, 0)
	require.Nil(t, p)
}

func TestFreeListFreeAllResetsToOneBlock(t *testing.T) {
	a, d := NewFreeList(1024, FindFirst)

	Allocate(a, 100, 0)
	Allocate(a, 100, 0)
	require.Greater(t, d.Used(), int64(0))

	require.True(t, FreeAll(a, 0))
	require.EqualValues(t, 0, d.Used())
	require.EqualValues(t, 0, d.PeakUsed())

	p := Allocate(a, 900, 0)
	require.NotNil(t, p)
}

func TestFreeListPeakUsedTracksHighWaterMark(t *testing.T) {
	a, d := NewFreeList(4096, FindFirst)

	p1 := Allocate(a, 500, 0)
	peak := d.PeakUsed()
	Free(p1, 0)
	require.Equal(t, peak, d.PeakUsed())
	require.EqualValues(t, 0, d.Used())
}
