package ioreader

import (
	"os"
	"testing"

	"github.com/light-std/ls/container/xstring"
	"github.com/stretchr/testify/require"
)

func TestStringReaderReadsCodePoints(t *testing.T) {
	r := NewStringReader(xstring.View("aé中"))
	var got []rune
	for {
		cp, ok := r.ReadCodePoint()
		if !ok {
			break
		}
		got = append(got, cp)
	}
	require.Equal(t, []rune("aé中"), got)
	require.True(t, r.EOF)
}

func TestStringReaderReadUntilAndReadWhile(t *testing.T) {
	r := NewStringReader(xstring.View("key=value;rest"))
	out, ok := r.ReadUntil('=')
	require.True(t, ok)
	require.Equal(t, "key", string(out))

	r.SkipWhitespace = false
	word := r.ReadWhile(func(b byte) bool { return b != ';' })
	require.Equal(t, "value", string(word))
}

func TestStringReaderReadLineAndIgnore(t *testing.T) {
	r := NewStringReader(xstring.View("first\nsecond\nthird"))
	line, ok := r.ReadLine()
	require.True(t, ok)
	require.Equal(t, "first", line)

	r.Ignore()
	line, ok = r.ReadLine()
	require.True(t, ok)
	require.Equal(t, "third", line)
}

func TestStringReaderEmptyIsImmediatelyEOF(t *testing.T) {
	r := NewStringReader(xstring.View(""))
	_, ok := r.ReadCodePoint()
	require.False(t, ok)
	require.True(t, r.EOF)
}

func TestReadIntDecimal(t *testing.T) {
	r := NewStringReader(xstring.View("  -42 "))
	v, ok := ReadInt[int](&r.Reader, 0)
	require.True(t, ok)
	require.False(t, r.LastFailed)
	require.EqualValues(t, -42, v)
}

func TestReadIntHexAutoDetect(t *testing.T) {
	r := NewStringReader(xstring.View("0x2a"))
	v, ok := ReadInt[int](&r.Reader, 0)
	require.True(t, ok)
	require.EqualValues(t, 42, v)
}

func TestReadIntOctalAutoDetect(t *testing.T) {
	r := NewStringReader(xstring.View("052"))
	v, ok := ReadInt[int](&r.Reader, 0)
	require.True(t, ok)
	require.EqualValues(t, 42, v)
}

func TestReadIntExplicitBase(t *testing.T) {
	r := NewStringReader(xstring.View("101010"))
	v, ok := ReadInt[int](&r.Reader, 2)
	require.True(t, ok)
	require.EqualValues(t, 42, v)
}

func TestReadIntOverflowClampsToMax(t *testing.T) {
	r := NewStringReader(xstring.View("99999"))
	v, ok := ReadInt[int8](&r.Reader, 10)
	require.False(t, ok)
	require.True(t, r.LastFailed)
	require.EqualValues(t, 127, v)
}

func TestReadIntOverflowClampsToMinWhenNegative(t *testing.T) {
	r := NewStringReader(xstring.View("-99999"))
	v, ok := ReadInt[int8](&r.Reader, 10)
	require.False(t, ok)
	require.EqualValues(t, -128, v)
}

func TestReadIntNoDigitsFails(t *testing.T) {
	r := NewStringReader(xstring.View("abc"))
	_, ok := ReadInt[int](&r.Reader, 10)
	require.False(t, ok)
	require.True(t, r.LastFailed)
}

func TestReadFloatBasic(t *testing.T) {
	r := NewStringReader(xstring.View("3.14159"))
	v, ok := r.ReadFloat()
	require.True(t, ok)
	require.InDelta(t, 3.14159, v, 1e-9)
}

func TestReadFloatExponent(t *testing.T) {
	r := NewStringReader(xstring.View("-2.5e3"))
	v, ok := r.ReadFloat()
	require.True(t, ok)
	require.InDelta(t, -2500.0, v, 1e-9)
}

func TestReadFloatNoDigitsFails(t *testing.T) {
	r := NewStringReader(xstring.View("abc"))
	_, ok := r.ReadFloat()
	require.False(t, ok)
	require.True(t, r.LastFailed)
}

func TestReadBoolVariants(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want bool
	}{
		{"0", false}, {"1", true},
		{"true", true}, {"FALSE", false}, {"True", true},
	} {
		r := NewStringReader(xstring.View(tc.in))
		v, ok := r.ReadBool()
		require.True(t, ok, tc.in)
		require.Equal(t, tc.want, v, tc.in)
	}
}

func TestReadBoolInvalidFails(t *testing.T) {
	r := NewStringReader(xstring.View("maybe"))
	_, ok := r.ReadBool()
	require.False(t, ok)
	require.True(t, r.LastFailed)
}

func TestConsoleReaderReadsFromPipe(t *testing.T) {
	rf, wf, err := os.Pipe()
	require.NoError(t, err)
	defer rf.Close()

	go func() {
		wf.WriteString("hello\nworld")
		wf.Close()
	}()

	cr := NewConsoleReader(rf, true)
	line, ok := cr.ReadLine()
	require.True(t, ok)
	require.Equal(t, "hello", line)

	line, ok = cr.ReadLine()
	require.True(t, ok)
	require.Equal(t, "world", line)

	_, ok = cr.ReadLine()
	require.False(t, ok)
}
