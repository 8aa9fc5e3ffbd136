package ctx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBuildsUsableDefaults(t *testing.T) {
	c := New()
	require.True(t, c.Alloc.IsValid())
	require.True(t, c.TempAlloc.IsValid())
	require.NotNil(t, c.TempData)
	require.NotNil(t, c.PanicHandler)
	require.NotNil(t, c.FmtParseErrorHandler)
	require.Equal(t, LocaleDefault, c.Locale)
}

func TestNewAssignsDistinctThreadIDs(t *testing.T) {
	a := New()
	b := New()
	require.NotEqual(t, a.ThreadID, b.ThreadID)
}

func TestNewThreadGetsItsOwnArena(t *testing.T) {
	parent := New()
	parent.AllocateTemp(64, 0)

	child := NewThread(parent)
	require.NotEqual(t, parent.ThreadID, child.ThreadID)
	require.NotSame(t, parent.TempData, child.TempData)
	require.Zero(t, child.TempData.TotalUsed())
	require.Greater(t, parent.TempData.TotalUsed(), int64(0))
}

func TestNewThreadCopiesNonArenaFields(t *testing.T) {
	parent := New()
	parent.Locale = LocaleTurkic
	parent.AllocAlignment = 32

	child := NewThread(parent)
	require.Equal(t, LocaleTurkic, child.Locale)
	require.Equal(t, 32, child.AllocAlignment)
}

func TestCurrentReturnsSameProcessContext(t *testing.T) {
	a := Current()
	b := Current()
	require.Same(t, a, b)
}
