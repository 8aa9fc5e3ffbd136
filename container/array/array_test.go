package array

import (
	"testing"

	"github.com/light-std/ls/alloc"
	"github.com/stretchr/testify/require"
)

// TestInsertRemoveOrdering is scenario S1 from the spec: insert/remove at
// index must preserve relative order of the remaining elements.
func TestInsertRemoveOrdering(t *testing.T) {
	a := New[int](alloc.Default)
	for i := 0; i < 10; i++ {
		a.InsertAtIndex(int64(i), i)
	}
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, a.Data)

	a.InsertAtIndex(3, -3)
	require.Equal(t, []int{0, 1, 2, -3, 3, 4, 5, 6, 7, 8, 9}, a.Data)

	a.RemoveOrderedAtIndex(4)
	require.Equal(t, []int{0, 1, 2, -3, 4, 5, 6, 7, 8, 9}, a.Data)
}

func TestReserveInvariant(t *testing.T) {
	a := New[int](alloc.Default)
	for i := 0; i < 100; i++ {
		a.InsertAtIndex(-1, i)
		require.LessOrEqual(t, int64(len(a.Data)), a.allocated)
		if a.allocated != 0 {
			require.Zero(t, a.allocated&(a.allocated-1), "allocated must be a power of two")
			require.GreaterOrEqual(t, a.allocated, int64(8))
		}
	}
}

func TestViewMaterializesOnMutate(t *testing.T) {
	backing := []int{1, 2, 3}
	v := View(backing)
	require.True(t, v.IsView())
	v.RemoveOrderedAtIndex(0)
	require.False(t, v.IsView())
	require.Equal(t, []int{2, 3}, v.Data)
}

func TestSearchNegativeAndReversed(t *testing.T) {
	a := New[int](alloc.Default)
	a.InsertAtIndex(-1, 1, 2, 3, 2, 1)
	require.EqualValues(t, 1, a.Search(2, 0, false))
	require.EqualValues(t, 3, a.Search(2, -1, true))
	require.EqualValues(t, -1, a.Search(99, 0, false))
}

func TestReplaceAllNoRescanIntoReplacement(t *testing.T) {
	a := New[byte](alloc.Default)
	a.InsertAtIndex(-1, []byte("aaaa")...)
	a.ReplaceAll([]byte("aa"), []byte("aaa"))
	// "aaaa" -> replace [0:2) -> "aaa" + "aa" -> continue search from index 3
	// -> next "aa" at the tail replaced too.
	require.Equal(t, "aaaaaa", string(a.Data))
}

func TestSliceClamping(t *testing.T) {
	a := New[int](alloc.Default)
	a.InsertAtIndex(-1, 1, 2, 3)
	s := a.Slice(1, 10)
	require.Equal(t, []int{2, 3}, s.Data)
	empty := a.Slice(2, 1)
	require.Equal(t, 0, empty.Count())
}
