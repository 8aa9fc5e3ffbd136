package xstring

import (
	"testing"

	"github.com/light-std/ls/alloc"
	"github.com/stretchr/testify/require"
)

// TestSetCodePoint is scenario S2: set(s, 1, U'Д') then a run of negative
// index sets with 4-byte code points.
func TestSetCodePoint(t *testing.T) {
	s := New(alloc.Default)
	s.AppendString(View("aDc"))

	s.Set(1, 'Д')
	require.Equal(t, "aДc", string(s.Bytes))
	require.EqualValues(t, 4, s.ByteLength())

	s2 := New(alloc.Default)
	s2.AppendString(View("abc"))
	s2.Set(-3, '\U0002070E')
	s2.Set(-2, '\U00020731')
	s2.Set(-1, '\U00020779')
	require.Equal(t, "\U0002070E\U00020731\U00020779", string(s2.Bytes))
}

func TestRoundTripEncodeDecode(t *testing.T) {
	for _, cp := range []rune{'a', 0x7FF, 0xFFFF, 0x10FFFF, 'Д', '\U0002070E'} {
		buf := make([]byte, 4)
		n := EncodeCodePoint(buf, cp)
		require.Equal(t, SizeOfCodePoint(cp), n)
		got := DecodeCodePoint(buf[:n])
		require.Equal(t, cp, got)
	}
}

func TestFindInvalid(t *testing.T) {
	require.EqualValues(t, -1, FindInvalid([]byte("hello, é")))
	require.EqualValues(t, 0, FindInvalid([]byte{0xC0, 0x80})) // overlong NUL
	require.EqualValues(t, 0, FindInvalid([]byte{0x80}))       // stray continuation
	require.EqualValues(t, 0, FindInvalid([]byte{0xE0, 0x80})) // truncated
}

func TestLengthAndGet(t *testing.T) {
	s := View("héllo")
	require.EqualValues(t, 5, s.Length())
	require.Equal(t, 'é', s.Get(1))
	require.Equal(t, 'o', s.Get(-1))
}

func TestTrimAndMatch(t *testing.T) {
	s := View("  hello world  ")
	require.Equal(t, "hello world", s.Trim().String())

	tr := s.Trim()
	pre := View("hello")
	require.True(t, tr.MatchBeginning(pre))
	suf := View("world")
	require.True(t, tr.MatchEnd(suf))
}

func TestSearchAndReplace(t *testing.T) {
	s := New(alloc.Default)
	s.AppendString(View("banana"))
	require.EqualValues(t, 1, s.SearchString(View("ana")))

	s.ReplaceAll(View("ana"), View("ugh"))
	require.Equal(t, "bughna", s.String())
}

func TestSliceRespectsCodePointBoundaries(t *testing.T) {
	s := View("héllo")
	sl := s.Slice(1, 3)
	require.Equal(t, "él", sl.String())
}

func TestCloneIsDeep(t *testing.T) {
	s := View("abc")
	c := s.Clone(alloc.Default)
	c.Set(0, 'X')
	require.Equal(t, "abc", s.String())
	require.Equal(t, "Xbc", c.String())
}
