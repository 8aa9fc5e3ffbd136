package ctx

import (
	"testing"

	"github.com/light-std/ls/alloc"
	"github.com/stretchr/testify/require"
)

func TestPushRestoresOnNormalReturn(t *testing.T) {
	var field int
	Push(&field, 42, func() {
		require.Equal(t, 42, field)
	})
	require.Zero(t, field)
}

func TestPushRestoresAcrossPanic(t *testing.T) {
	var field int
	func() {
		defer func() { recover() }()
		Push(&field, 42, func() {
			require.Equal(t, 42, field)
			panic("boom")
		})
	}()
	require.Zero(t, field, "field must be restored even though body panicked")
}

func TestPushNestsCorrectly(t *testing.T) {
	var field int
	Push(&field, 1, func() {
		Push(&field, 2, func() {
			require.Equal(t, 2, field)
		})
		require.Equal(t, 1, field)
	})
	require.Zero(t, field)
}

func TestWithAllocatorRestoresOnReturn(t *testing.T) {
	c := New()
	original := c.Alloc
	arena, _ := alloc.New()

	c.WithAllocator(arena, func() {
		require.Equal(t, arena.Context, c.Alloc.Context)
	})
	require.Equal(t, original.Context, c.Alloc.Context)
}

func TestWithAllocatorRestoresAcrossPanic(t *testing.T) {
	c := New()
	original := c.Alloc
	arena, _ := alloc.New()

	func() {
		defer func() { recover() }()
		c.WithAllocator(arena, func() {
			panic("boom")
		})
	}()
	require.Equal(t, original.Context, c.Alloc.Context)
}

func TestWithAlignmentRestoresOnReturn(t *testing.T) {
	c := New()
	c.AllocAlignment = 8
	c.WithAlignment(64, func() {
		require.Equal(t, 64, c.AllocAlignment)
	})
	require.Equal(t, 8, c.AllocAlignment)
}

func TestWithLogRestoresOnReturn(t *testing.T) {
	c := New()
	var w Writer
	c.Log = w
	replacement := &recordingWriter{}
	c.WithLog(replacement, func() {
		require.Same(t, replacement, c.Log)
	})
	require.Nil(t, c.Log)
}

func TestWithLocaleRestoresOnReturn(t *testing.T) {
	c := New()
	c.Locale = LocaleDefault
	c.WithLocale(LocaleTurkic, func() {
		require.Equal(t, LocaleTurkic, c.Locale)
	})
	require.Equal(t, LocaleDefault, c.Locale)
}

func TestAllocateUsesContextAllocator(t *testing.T) {
	c := New()
	b := c.Allocate(16, 0)
	require.Len(t, b, 16)
}

func TestAllocateTempUsesArena(t *testing.T) {
	c := New()
	b := c.AllocateTemp(16, 0)
	require.Len(t, b, 16)
	require.Greater(t, c.TempData.TotalUsed(), int64(0))
}

type recordingWriter struct{}

func (w *recordingWriter) Write(p []byte) (int, error) { return len(p), nil }
