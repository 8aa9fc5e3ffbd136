package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestArenaGrowsOverflowPages is part of scenario S6: once the base page
// fills up, further allocations chain a new overflow page instead of
// failing.
func TestArenaGrowsOverflowPages(t *testing.T) {
	a, d := New()
	require.EqualValues(t, 1, d.PageCount())

	// The base page is reserved lazily by the first allocation.
	require.NotNil(t, Allocate(a, 16, 0))
	base := d.BaseReserved()
	for i := 0; i < 64 && d.PageCount() == 1; i++ {
		p := Allocate(a, base/4, 0)
		require.NotNil(t, p)
	}
	require.Greater(t, d.PageCount(), 1)
}

// TestArenaFreeAllCollapsesIntoOneEnlargedPage is scenario S6: FREE_ALL on a
// chained arena collapses every page into a single page sized to hold what
// was previously spread across all of them, and resets usage to zero.
func TestArenaFreeAllCollapsesIntoOneEnlargedPage(t *testing.T) {
	a, d := New()
	// The base page is reserved lazily by the first allocation.
	require.NotNil(t, Allocate(a, 16, 0))
	base := d.BaseReserved()

	var sum int64
	for d.PageCount() < 3 {
		p := Allocate(a, base/4, 0)
		require.NotNil(t, p)
		sum += base / 4
	}
	require.Greater(t, d.TotalUsed(), int64(0))

	require.True(t, FreeAll(a, 0))
	require.EqualValues(t, 1, d.PageCount())
	require.EqualValues(t, 0, d.TotalUsed())
	require.GreaterOrEqual(t, d.BaseReserved(), base)
	require.GreaterOrEqual(t, d.BaseReserved(), sum)
}

func TestArenaFreeAllIsSupported(t *testing.T) {
	a, _ := New()
	require.True(t, FreeAll(a, 0))
}

func TestArenaSingleFreeIsANoOp(t *testing.T) {
	a, d := New()
	p := Allocate(a, 16, 0)
	require.NotNil(t, p)
	before := d.TotalUsed()
	Free(p, 0)
	require.Equal(t, before, d.TotalUsed())
}
