package ctx

import (
	"unsafe"

	"github.com/light-std/ls/alloc"
)

func ptrToSlice(p unsafe.Pointer, size int64) []byte {
	return unsafe.Slice((*byte)(p), size)
}

// Push saves field's current value, runs body with it replaced by newValue,
// and restores the saved value on every exit path from body — including a
// panic unwinding through it — mirroring light-std's WITH_CONTEXT_VAR /
// defer idiom (§3.3, §9).
func Push[T any](field *T, newValue T, body func()) {
	old := *field
	defer func() { *field = old }()
	*field = newValue
	body()
}

// WithAllocator is the Alloc shortcut named in §3.3 ("shortcuts exist for
// alloc, alloc_alignment, log").
func (c *Context) WithAllocator(a alloc.Allocator, body func()) {
	Push(&c.Alloc, a, body)
}

// WithAlignment is the AllocAlignment shortcut.
func (c *Context) WithAlignment(align int, body func()) {
	Push(&c.AllocAlignment, align, body)
}

// WithLog is the Log shortcut.
func (c *Context) WithLog(w Writer, body func()) {
	Push(&c.Log, w, body)
}

// WithLocale scopes a casing locale override, e.g. for a single Turkish
// string transform in an otherwise-default-locale program.
func (c *Context) WithLocale(l Locale, body func()) {
	Push(&c.Locale, l, body)
}

// Allocate is sugar for alloc.Allocate(c.Alloc, size, flags).
func (c *Context) Allocate(size int64, flags alloc.UserFlags) []byte {
	p := alloc.Allocate(c.Alloc, size, flags)
	if p == nil {
		return nil
	}
	return ptrToSlice(p, size)
}

// AllocateTemp is sugar for alloc.Allocate(c.TempAlloc, size, flags).
func (c *Context) AllocateTemp(size int64, flags alloc.UserFlags) []byte {
	p := alloc.Allocate(c.TempAlloc, size, flags)
	if p == nil {
		return nil
	}
	return ptrToSlice(p, size)
}
