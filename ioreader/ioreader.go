// Package ioreader implements the §4.14 writer stack's input-side
// counterpart: a pull-based byte reader built around a single extension
// point, plus an integer/float/bool parser layered on top of it.
//
// Grounded on light-std's io/reader.h (the request_byte_t extension point
// and the read/read_until/read_while/parse_int surface) and
// io/string_reader.h + io/console_reader.h (the two built-in sources),
// mirroring package iowriter's naming and LockMutex convention for the
// console-backed implementation.
package ioreader

import (
	"os"
	"strconv"
	"sync"
	"unsafe"

	"github.com/light-std/ls/alloc"
	"github.com/light-std/ls/container/builder"
	"github.com/light-std/ls/container/xstring"
	"github.com/light-std/ls/unicode"
)

// EOF is the sentinel a RequestByteFunc or a byte-level read returns when
// the source is exhausted.
const EOF = -1

// RequestByteFunc is the Reader's only required extension point: called
// whenever the internal buffer is empty, it should push more bytes into r
// (by setting r.buf, a same-package-only field) and report whether it did.
// Returning false means the underlying source has nothing left.
type RequestByteFunc func(r *Reader) bool

// Reader is a pull-based byte reader: every method below is implemented in
// terms of RequestByte. Grounded on light-std's io::reader.
type Reader struct {
	requestByte RequestByteFunc
	buf         []byte

	// EOF reports whether the underlying source has been exhausted.
	EOF bool
	// LastFailed reports whether the last parse call (ReadInt, ReadFloat,
	// ReadBool) failed; reset to false at the start of every parse call.
	LastFailed bool
	// SkipWhitespace controls whether parse calls skip leading whitespace;
	// on by default.
	SkipWhitespace bool
}

func newReader(request RequestByteFunc) Reader {
	return Reader{requestByte: request, SkipWhitespace: true}
}

func (r *Reader) fill() bool {
	for len(r.buf) == 0 {
		if r.EOF {
			return false
		}
		if !r.requestByte(r) {
			r.EOF = true
			return false
		}
	}
	return true
}

func (r *Reader) bumpByte() int {
	if !r.fill() {
		return EOF
	}
	b := r.buf[0]
	r.buf = r.buf[1:]
	return int(b)
}

func (r *Reader) peekByte() int {
	if !r.fill() {
		return EOF
	}
	return int(r.buf[0])
}

func (r *Reader) skipWhitespace() bool {
	if !r.SkipWhitespace {
		return r.peekByte() != EOF
	}
	for {
		b := r.peekByte()
		if b == EOF {
			return false
		}
		if !unicode.IsWhitespace(rune(b)) {
			return true
		}
		r.bumpByte()
	}
}

// ReadCodePoint decodes and consumes one UTF-8 code point, honoring
// SkipWhitespace. ok is false at EOF.
func (r *Reader) ReadCodePoint() (cp rune, ok bool) {
	if r.SkipWhitespace && !r.skipWhitespace() {
		return 0, false
	}
	lead := r.bumpByte()
	if lead == EOF {
		return 0, false
	}
	size := xstring.CodePointSize(byte(lead))
	if size == 0 {
		size = 1
	}
	buf := make([]byte, size)
	buf[0] = byte(lead)
	for i := 1; i < size; i++ {
		b := r.bumpByte()
		if b == EOF {
			return xstring.DecodeCodePoint(buf[:i]), true
		}
		buf[i] = byte(b)
	}
	return xstring.DecodeCodePoint(buf), true
}

// ReadBytes consumes and returns up to n raw bytes, without honoring
// SkipWhitespace (matching read(char*, size_t)'s "assumes there is enough
// space" contract, minus the caller-supplied buffer). A short read (EOF
// before n bytes) returns what was read with ok false.
func (r *Reader) ReadBytes(n int) (out []byte, ok bool) {
	out = make([]byte, 0, n)
	for i := 0; i < n; i++ {
		b := r.bumpByte()
		if b == EOF {
			return out, false
		}
		out = append(out, byte(b))
	}
	return out, true
}

// ReadUntil consumes bytes up to (not including) the first occurrence of
// delim, which is itself consumed. ok is false if delim was never found
// before EOF, in which case out holds everything read so far.
func (r *Reader) ReadUntil(delim byte) (out []byte, ok bool) {
	for {
		b := r.bumpByte()
		if b == EOF {
			return out, false
		}
		if byte(b) == delim {
			return out, true
		}
		out = append(out, byte(b))
	}
}

// ReadWhile consumes bytes as long as pred holds, leaving the first byte
// that fails pred (or EOF) unconsumed.
func (r *Reader) ReadWhile(pred func(byte) bool) []byte {
	var out []byte
	for {
		b := r.peekByte()
		if b == EOF || !pred(byte(b)) {
			return out
		}
		r.bumpByte()
		out = append(out, byte(b))
	}
}

// ReadLine reads bytes up to (not including) the next '\n', consuming the
// '\n' itself. ok is false once there is nothing left to read at all.
func (r *Reader) ReadLine() (string, bool) {
	if r.peekByte() == EOF {
		return "", false
	}
	out, _ := r.ReadUntil('\n')
	return string(out), true
}

// Ignore discards everything up to and including the next newline, without
// returning it, for callers that want to skip a line they don't care about.
func (r *Reader) Ignore() {
	r.ReadUntil('\n')
}

// integer is the set of Go integer types ReadInt accepts.
type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func isUnsigned[T integer]() bool {
	var zero T
	return zero-1 > 0
}

// digitValue returns ch's digit value (0-9, then a/A through z/Z as 10-35),
// or 1<<30 (larger than any base) if ch is neither a digit nor a letter.
func digitValue(ch byte) int {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0')
	case ch >= 'a' && ch <= 'z':
		return int(ch-'a') + 10
	case ch >= 'A' && ch <= 'Z':
		return int(ch-'A') + 10
	default:
		return 1 << 30
	}
}

// ReadInt parses an integer, honoring a leading +/- sign and, when base is
// 0, auto-detecting base from a "0x"/"0" prefix (hex/octal) or defaulting to
// decimal. Grounded on light-std's reader::parse_int<T>: on overflow the
// result clamps to T's min/max instead of wrapping, and LastFailed is set
// either way a valid digit run couldn't be parsed.
func ReadInt[T integer](r *Reader, base int) (T, bool) {
	r.LastFailed = false
	if !r.skipWhitespace() {
		r.LastFailed = true
		return 0, false
	}

	ch := r.bumpByte()
	if ch == EOF {
		r.LastFailed = true
		return 0, false
	}

	negative := false
	if ch == '+' {
		ch = r.bumpByte()
	} else if ch == '-' {
		negative = true
		ch = r.bumpByte()
	}
	if ch == EOF {
		r.LastFailed = true
		return 0, false
	}

	next := r.peekByte()
	if (base == 0 || base == 16) && ch == '0' && (next == 'x' || next == 'X') {
		base = 16
		r.bumpByte()
		ch = r.bumpByte()
		if ch == EOF {
			r.LastFailed = true
			return 0, false
		}
	}
	if base == 0 {
		if ch == '0' {
			base = 8
		} else {
			base = 10
		}
	}

	unsigned := isUnsigned[T]()
	var maxValue, minValue T
	maxValue = ^minValue
	if !unsigned {
		minValue = T(1) << (unsafeBitSize[T]() - 1)
		maxValue = ^minValue
	}

	var value T
	sawDigit := false
	for {
		d := digitValue(byte(ch))
		if d >= base {
			break
		}
		sawDigit = true

		limit := maxValue
		if negative && !unsigned {
			limit = -(minValue + 1) // abs(minValue) - 1, avoiding overflow on two's complement min
		}
		if value > limit/T(base) || (value == limit/T(base) && T(d) > limit%T(base)) {
			r.LastFailed = true
			if unsigned {
				if negative {
					return 0 - maxValue, false
				}
				return maxValue, false
			}
			if negative {
				return minValue, false
			}
			return maxValue, false
		}
		value = value*T(base) + T(d)

		next = r.peekByte()
		if next == EOF || digitValue(byte(next)) >= base {
			break
		}
		ch = r.bumpByte()
	}

	if !sawDigit {
		r.LastFailed = true
		return 0, false
	}
	if negative && !unsigned {
		value = -value
	} else if negative && unsigned {
		value = 0 - value
	}
	return value, true
}

func unsafeBitSize[T integer]() uint {
	var zero T
	return uint(8 * unsafe.Sizeof(zero))
}

// ReadBool parses "0"/"1" and "true"/"false" written all lower case, with
// a capital first letter, or all upper case (mixed case is rejected), matching
// light-std's reader::parse_bool.
func (r *Reader) ReadBool() (bool, bool) {
	r.LastFailed = false
	if !r.skipWhitespace() {
		r.LastFailed = true
		return false, false
	}

	word := r.ReadWhile(func(b byte) bool {
		switch b {
		case '0', '1':
			return true
		default:
			return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
		}
	})
	switch string(word) {
	case "0", "false", "False", "FALSE":
		return false, true
	case "1", "true", "True", "TRUE":
		return true, true
	default:
		r.LastFailed = true
		return false, false
	}
}

// ReadFloat parses a decimal float, honoring a leading +/- sign, an integer
// part, an optional fractional part, and an optional e/E exponent.
// Grounded on light-std's reader::parse_float.
func (r *Reader) ReadFloat() (float64, bool) {
	r.LastFailed = false
	if !r.skipWhitespace() {
		r.LastFailed = true
		return 0, false
	}

	b := builder.New(alloc.Default)
	defer b.FreeBuffers()

	ch := r.peekByte()
	if ch == '+' || ch == '-' {
		b.Add([]byte{byte(ch)})
		r.bumpByte()
		ch = r.peekByte()
	}
	sawDigit := false
	for ch >= '0' && ch <= '9' {
		b.Add([]byte{byte(ch)})
		r.bumpByte()
		sawDigit = true
		ch = r.peekByte()
	}
	if ch == '.' {
		b.Add([]byte{'.'})
		r.bumpByte()
		ch = r.peekByte()
		for ch >= '0' && ch <= '9' {
			b.Add([]byte{byte(ch)})
			r.bumpByte()
			sawDigit = true
			ch = r.peekByte()
		}
	}
	if !sawDigit {
		r.LastFailed = true
		return 0, false
	}
	if ch == 'e' || ch == 'E' {
		b.Add([]byte{byte(ch)})
		r.bumpByte()
		ch = r.peekByte()
		if ch == '+' || ch == '-' {
			b.Add([]byte{byte(ch)})
			r.bumpByte()
			ch = r.peekByte()
		}
		if ch < '0' || ch > '9' {
			r.LastFailed = true
			return 0, false
		}
		for ch >= '0' && ch <= '9' {
			b.Add([]byte{byte(ch)})
			r.bumpByte()
			ch = r.peekByte()
		}
	}

	s := b.ToString(alloc.Default)
	v, err := strconv.ParseFloat(s.String(), 64)
	if err != nil {
		r.LastFailed = true
		return 0, false
	}
	return v, true
}

// StringReader hands its whole backing string over as one buffer on the
// first byte request, then reports EOF forever after: the buffer is never
// meant to be streamed in chunks. Grounded on light-std's string_reader.
type StringReader struct {
	Reader
	src       []byte
	exhausted bool
}

// NewStringReader wraps s for reading.
func NewStringReader(s xstring.String) *StringReader {
	sr := &StringReader{src: s.Bytes}
	sr.Reader = newReader(sr.requestByte)
	return sr
}

func (sr *StringReader) requestByte(r *Reader) bool {
	if sr.exhausted {
		return false
	}
	sr.exhausted = true
	r.buf = sr.src
	return len(r.buf) > 0
}

const consoleReadChunk = 4096

// ConsoleReader wraps an *os.File (normally os.Stdin) as a Reader.
// LockMutex selects whether reads take a lock, mirroring
// iowriter.ConsoleWriter's own LockMutex field: on by default so concurrent
// goroutines reading from the same console reader don't interleave partial
// reads, off for single-threaded callers chasing maximum throughput.
type ConsoleReader struct {
	Reader
	file      *os.File
	LockMutex bool

	mu sync.Mutex
}

// NewConsoleReader wraps an arbitrary *os.File (e.g. a pipe) as a Reader.
func NewConsoleReader(f *os.File, lockMutex bool) *ConsoleReader {
	cr := &ConsoleReader{file: f, LockMutex: lockMutex}
	cr.Reader = newReader(cr.requestByte)
	return cr
}

// Stdin returns the process-wide standard input reader.
func Stdin() *ConsoleReader { return stdin }

var stdin = NewConsoleReader(os.Stdin, true)

func (cr *ConsoleReader) requestByte(r *Reader) bool {
	if cr.LockMutex {
		cr.mu.Lock()
		defer cr.mu.Unlock()
	}
	buf := make([]byte, consoleReadChunk)
	n, _ := cr.file.Read(buf)
	if n <= 0 {
		return false
	}
	r.buf = buf[:n]
	return true
}
