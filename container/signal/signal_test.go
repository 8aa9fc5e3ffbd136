package signal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnectEmitLastAndDisconnect(t *testing.T) {
	s := New[int]()
	var calls []int
	id1 := s.Connect(func(args ...any) int {
		calls = append(calls, 1)
		return args[0].(int) + 1
	})
	s.Connect(func(args ...any) int {
		calls = append(calls, 2)
		return args[0].(int) + 2
	})

	last, ok := EmitLast(s, 10)
	require.True(t, ok)
	require.Equal(t, 12, last)
	require.Equal(t, []int{1, 2}, calls)

	require.True(t, s.Disconnect(id1))
	require.Equal(t, 1, s.Len())
	require.False(t, s.Disconnect(id1))
}

func TestEmitLastOnEmptySignal(t *testing.T) {
	s := New[string]()
	_, ok := EmitLast(s)
	require.False(t, ok)
}

func TestEmitArrayCollectsAllResults(t *testing.T) {
	s := New[int]()
	s.Connect(func(args ...any) int { return 1 })
	s.Connect(func(args ...any) int { return 2 })
	s.Connect(func(args ...any) int { return 3 })
	require.Equal(t, []int{1, 2, 3}, EmitArray(s))
}

func TestEmitUntilZeroStopsAtZero(t *testing.T) {
	s := New[int]()
	var called []int
	s.Connect(func(args ...any) int { called = append(called, 1); return 5 })
	s.Connect(func(args ...any) int { called = append(called, 2); return 0 })
	s.Connect(func(args ...any) int { called = append(called, 3); return 9 })

	result := EmitUntilZero(s)
	require.Equal(t, 0, result)
	require.Equal(t, []int{1, 2}, called)
}

func TestEmitWhileZeroStopsAtFirstNonZero(t *testing.T) {
	s := New[int]()
	var called []int
	s.Connect(func(args ...any) int { called = append(called, 1); return 0 })
	s.Connect(func(args ...any) int { called = append(called, 2); return 7 })
	s.Connect(func(args ...any) int { called = append(called, 3); return 0 })

	result := EmitWhileZero(s)
	require.Equal(t, 7, result)
	require.Equal(t, []int{1, 2}, called)
}

func TestEmitUntilTargetStops(t *testing.T) {
	s := New[int]()
	var called []int
	s.Connect(func(args ...any) int { called = append(called, 1); return 1 })
	s.Connect(func(args ...any) int { called = append(called, 2); return 42 })
	s.Connect(func(args ...any) int { called = append(called, 3); return 99 })

	result := EmitUntil(s, 42)
	require.Equal(t, 42, result)
	require.Equal(t, []int{1, 2}, called)
}
