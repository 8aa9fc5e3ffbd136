// Package iowriter implements the §4.14 writer stack: a byte-counting
// sink, a string_builder-backed sink, and a buffered console writer with
// an optional lock, all satisfying ctx.Writer.
//
// Grounded on light-std's io/writer.h (counting_writer, string_builder_writer,
// console_writer's 1 KiB buffer + flush-on-full) and tinyrange-rtg's
// std/os.File (raw fd write), adapted to use Go's os.Stdout/os.Stderr and
// golang.org/x/term for TTY detection instead of a hand-rolled syscall layer.
package iowriter

import (
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/light-std/ls/container/builder"
	"github.com/light-std/ls/ctx"
)

// CountingWriter discards everything written to it, only counting bytes
// written so far (§4.14).
type CountingWriter struct {
	Count int64
}

func (w *CountingWriter) Write(p []byte) (int, error) {
	w.Count += int64(len(p))
	return len(p), nil
}

// StringBuilderWriter adapts a container/builder.Builder to ctx.Writer
// (§4.14's string_builder_writer).
type StringBuilderWriter struct {
	B *builder.Builder
}

func (w *StringBuilderWriter) Write(p []byte) (int, error) {
	w.B.Add(p)
	return len(p), nil
}

const bufferSize = 1024

// ConsoleWriter buffers writes to an *os.File in bufferSize chunks,
// issuing one real write(2) per flush instead of one per call (§4.14).
// LockMutex selects whether Write and Flush take the writer's sync.Mutex.
// The lock is not re-entrant: a goroutine that already holds it blocks on
// a further Write or Flush of the same writer.
type ConsoleWriter struct {
	file      *os.File
	buf       [bufferSize]byte
	used      int
	LockMutex bool

	mu sync.Mutex
}

// Stdout returns the process-wide buffered stdout console writer.
func Stdout() *ConsoleWriter { return stdout }

// Stderr returns the process-wide buffered stderr console writer. Stderr
// is unbuffered at the OS level already by convention, but this still
// batches writes the same way Stdout does, leaving the decision of
// whether to Flush after every line to the caller.
func Stderr() *ConsoleWriter { return stderr }

var (
	stdout = &ConsoleWriter{file: os.Stdout, LockMutex: true}
	stderr = &ConsoleWriter{file: os.Stderr, LockMutex: true}
)

// New wraps an arbitrary *os.File (e.g. a log file) in a buffered console
// writer.
func New(f *os.File, lockMutex bool) *ConsoleWriter {
	return &ConsoleWriter{file: f, LockMutex: lockMutex}
}

// IsTerminal reports whether this writer's file is attached to a terminal,
// the signal ctx.Context.FmtDisableANSICodes is normally derived from.
func (w *ConsoleWriter) IsTerminal() bool {
	return term.IsTerminal(int(w.file.Fd()))
}

func (w *ConsoleWriter) lock() {
	if w.LockMutex {
		w.mu.Lock()
	}
}

func (w *ConsoleWriter) unlock() {
	if w.LockMutex {
		w.mu.Unlock()
	}
}

// Write appends p to the internal buffer, flushing whole chunks to the
// underlying file as the buffer fills.
func (w *ConsoleWriter) Write(p []byte) (int, error) {
	w.lock()
	defer w.unlock()

	total := len(p)
	for len(p) > 0 {
		room := bufferSize - w.used
		if room == 0 {
			if err := w.flushLocked(); err != nil {
				return total - len(p), err
			}
			room = bufferSize
		}
		n := room
		if n > len(p) {
			n = len(p)
		}
		copy(w.buf[w.used:], p[:n])
		w.used += n
		p = p[n:]
	}
	return total, nil
}

// Flush writes any buffered bytes to the underlying file in one call.
func (w *ConsoleWriter) Flush() error {
	w.lock()
	defer w.unlock()
	return w.flushLocked()
}

func (w *ConsoleWriter) flushLocked() error {
	if w.used == 0 {
		return nil
	}
	_, err := w.file.Write(w.buf[:w.used])
	w.used = 0
	return err
}

var _ ctx.Writer = (*CountingWriter)(nil)
var _ ctx.Writer = (*StringBuilderWriter)(nil)
var _ ctx.Writer = (*ConsoleWriter)(nil)
