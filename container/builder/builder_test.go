package builder

import (
	"testing"

	"github.com/light-std/ls/alloc"
	"github.com/light-std/ls/container/xstring"
	"github.com/stretchr/testify/require"
)

func TestAddAcrossChunkBoundary(t *testing.T) {
	b := New(alloc.Default)
	chunk1 := make([]byte, chunkSize-3)
	for i := range chunk1 {
		chunk1[i] = 'a'
	}
	b.Add(chunk1)
	b.Add([]byte("bcdef"))
	require.EqualValues(t, chunkSize-3+5, b.Len())

	out := b.ToString(alloc.Default)
	require.EqualValues(t, b.Len(), out.ByteLength())
	require.Equal(t, "bcdef", out.String()[chunkSize-3:])
}

func TestAddCodePointAndString(t *testing.T) {
	b := New(alloc.Default)
	b.AddCodePoint('h')
	b.AddString(xstring.View("ello"))
	require.Equal(t, "hello", b.ToString(alloc.Default).String())
}

func TestResetKeepsBuilderUsable(t *testing.T) {
	b := New(alloc.Default)
	b.Add([]byte("abc"))
	b.Reset()
	require.EqualValues(t, 0, b.Len())
	b.Add([]byte("xyz"))
	require.Equal(t, "xyz", b.ToString(alloc.Default).String())
}
