// Package builder implements the chunked write buffer described in
// §3.7/§4.6: a linked list of fixed-size buffers that concatenates to a
// final string in one pass, used as the format engine's default writer
// target (§4.14).
//
// Grounded on light-std's storage/string_builder.h/.cpp (1 KiB buffer
// chaining, ToString concatenation) and tinyrange-rtg's std/io.Writer
// interface shape, which Builder also satisfies.
package builder

import (
	"unsafe"

	"github.com/light-std/ls/alloc"
	"github.com/light-std/ls/container/xstring"
)

const chunkSize = 1024

type chunk struct {
	buf  [chunkSize]byte
	used int
	next *chunk
}

// Builder is a linked chain of fixed-size buffers. The zero value is ready
// to use with alloc.Default; call New to pick a different allocator.
type Builder struct {
	head    chunk
	tail    *chunk
	a       alloc.Allocator
	started bool
}

// New returns a builder that allocates overflow chunks from a.
func New(a alloc.Allocator) *Builder {
	return &Builder{a: a}
}

func (b *Builder) ensure() {
	if !b.started {
		b.tail = &b.head
		if !b.a.IsValid() {
			b.a = alloc.Default
		}
		b.started = true
	}
}

// Write implements io.Writer / ctx.Writer so Builder can sit under the
// format engine or anything else that writes bytes.
func (b *Builder) Write(p []byte) (int, error) {
	b.Add(p)
	return len(p), nil
}

// Add appends raw bytes, chaining a new chunk when the current one fills.
func (b *Builder) Add(p []byte) {
	b.ensure()
	for len(p) > 0 {
		room := chunkSize - b.tail.used
		if room == 0 {
			fresh := alloc.AllocSlice[chunk](b.a, 1, 0)
			var nc *chunk
			if fresh != nil {
				nc = &fresh[0]
			} else {
				nc = &chunk{}
			}
			b.tail.next = nc
			b.tail = nc
			room = chunkSize
		}
		n := room
		if n > len(p) {
			n = len(p)
		}
		copy(b.tail.buf[b.tail.used:], p[:n])
		b.tail.used += n
		p = p[n:]
	}
}

// AddCodePoint appends cp's UTF-8 encoding.
func (b *Builder) AddCodePoint(cp rune) {
	var buf [4]byte
	n := xstring.EncodeCodePoint(buf[:], cp)
	b.Add(buf[:n])
}

// AddString appends an xstring.String's bytes.
func (b *Builder) AddString(s xstring.String) {
	b.Add(s.Bytes)
}

// Len returns the total number of bytes written so far.
func (b *Builder) Len() int64 {
	if !b.started {
		return 0
	}
	n := int64(0)
	for c := &b.head; c != nil; c = c.next {
		n += int64(c.used)
	}
	return n
}

// ToString concatenates every chunk into a single freshly allocated string,
// without freeing the builder's chunks (§4.6).
func (b *Builder) ToString(a alloc.Allocator) xstring.String {
	total := b.Len()
	out := alloc.AllocSlice[byte](a, int(total), 0)
	if out == nil {
		out = make([]byte, total)
	}
	out = out[:0]
	if b.started {
		for c := &b.head; c != nil; c = c.next {
			out = append(out, c.buf[:c.used]...)
		}
	}
	s := xstring.New(a)
	s.AppendString(xstring.View(string(out)))
	return s
}

// Reset zeroes the head buffer and drops chained overflow buffers without
// freeing them through the allocator (use FreeBuffers for that).
func (b *Builder) Reset() {
	b.head = chunk{}
	b.tail = &b.head
	b.started = false
}

// FreeBuffers releases every chained overflow buffer back to the builder's
// allocator (§4.6). The embedded head buffer is never freed, mirroring
// light-std's embedded first buffer.
func (b *Builder) FreeBuffers() {
	if !b.started {
		return
	}
	c := b.head.next
	for c != nil {
		next := c.next
		alloc.FreeSlice(unsafe.Slice(c, 1), 0)
		c = next
	}
	b.head.next = nil
	b.Reset()
}
