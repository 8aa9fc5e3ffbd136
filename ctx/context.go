// Package ctx implements the implicit context: a thread-local bundle of
// defaults (allocator, alignment, log writer, locale, panic handler, fmt
// options) carried by every goroutine that opts in by calling Current().
//
// Grounded on light-std's internal/context.h (field list, WITH_CONTEXT_VAR
// scoping macro) and tinyrange-rtg's per-thread TLS pattern implied by its
// per-OS std/runtime split. Go has no compiler-level thread_local the way
// the source language does; we key a map by goroutine-independent "thread"
// handle obtained from runtime.LockOSThread-style identity is overkill for
// a library, so instead each goroutine that wants isolation calls NewThread
// once (mirroring "a new thread copies the parent context") and carries the
// returned *Context explicitly — the zero-overhead implicit lookup the
// source language has natively isn't expressible in Go without a compiler
// plugin, so the context is passed the same way *testing.T is: by the
// caller, not by ambient TLS magic.
package ctx

import (
	"sync"
	"sync/atomic"

	"github.com/light-std/ls/alloc"
)

// Locale selects the casing rules a Context's Unicode operations use.
type Locale int

const (
	LocaleDefault Locale = iota
	LocaleTurkic
)

// Writer is the minimal sink the context's Log field needs; iowriter.Writer
// satisfies it, as does any io.Writer-shaped type.
type Writer interface {
	Write(p []byte) (int, error)
}

// PanicHandler is invoked on unrecoverable usage errors (§7.1).
type PanicHandler func(ctx *Context, message string)

// FmtParseErrorHandler is invoked by the format engine on a malformed
// format string (§7.4).
type FmtParseErrorHandler func(ctx *Context, message, format string, position int)

// Context is the value-typed bundle every allocation, format call, and
// Unicode casing operation reads its defaults from.
type Context struct {
	Alloc          alloc.Allocator
	AllocAlignment int

	TempAlloc alloc.Allocator
	TempData  *alloc.Data

	Log Writer

	PanicHandler         PanicHandler
	FmtParseErrorHandler FmtParseErrorHandler

	Locale Locale

	FmtDisableANSICodes bool

	CheckForLeaksAtTermination bool

	ThreadID uint64
}

var nextThreadID uint64

// New builds a fresh root context with the process defaults: the heap
// allocator, pointer-size alignment, no log writer (Log is nil), default
// panic/parse error handlers, and its own temporary allocator.
func New() *Context {
	tempAlloc, tempData := alloc.New()
	return &Context{
		Alloc:                alloc.Default,
		AllocAlignment:       8,
		TempAlloc:            tempAlloc,
		TempData:             tempData,
		Log:                  nil, // left unset; callers install a writer such as iowriter.Stdout()
		PanicHandler:         DefaultPanicHandler,
		FmtParseErrorHandler: DefaultFmtParseErrorHandler,
		Locale:               LocaleDefault,
		ThreadID:             atomic.AddUint64(&nextThreadID, 1),
	}
}

// NewThread copies parent's state into a fresh Context the way light-std
// copies the implicit context into a spawned thread's TLS, except the
// temporary allocator's backing Data is never copied: the new context gets
// its own empty arena so concurrent threads never share bump pages.
func NewThread(parent *Context) *Context {
	child := *parent
	tempAlloc, tempData := alloc.New()
	child.TempAlloc = tempAlloc
	child.TempData = tempData
	child.ThreadID = atomic.AddUint64(&nextThreadID, 1)
	return &child
}

// process is lazily built on first Current() call, giving every package a
// usable context without requiring main() to call New() first, matching
// "the context is initialized before any constructor runs at process
// start."
var (
	processOnce sync.Once
	process     *Context
)

// Current returns the process-wide default context. Most programs built on
// this library call ctx.New() themselves and thread a *Context explicitly;
// Current exists for the cases (package-level helpers, tests) that need a
// context without one in scope.
func Current() *Context {
	processOnce.Do(func() { process = New() })
	return process
}
