package xstring

import (
	"github.com/light-std/ls/alloc"
)

// String is a UTF-8 byte buffer addressed by code point, not by byte
// (§3.5). Allocated == 0 means Bytes is a non-owning view.
type String struct {
	Bytes     []byte
	allocated int64
	a         alloc.Allocator
}

// View wraps s as a non-owning string, reinterpreting its bytes as UTF-8.
func View(s string) String {
	return String{Bytes: []byte(s)}
}

// New returns an empty owned string backed by a.
func New(a alloc.Allocator) String {
	return String{a: a}
}

// fromBytesOwned takes ownership of an already-allocated (or nil/invalid)
// buffer; Clone uses it to wrap the fresh copy it builds.
func fromBytesOwned(a alloc.Allocator, b []byte) String {
	return String{Bytes: b, allocated: int64(cap(b)), a: a}
}

// Null returns the canonical "invalid input" result: a zero-value string
// with no backing allocation (§4.5, §7.3).
func Null() String { return String{} }

// IsNull reports whether s is the null-string sentinel.
func (s *String) IsNull() bool { return s.Bytes == nil && s.allocated == 0 }

// IsView reports whether s is a non-owning view.
func (s *String) IsView() bool { return s.allocated == 0 }

// ByteLength returns the number of UTF-8 bytes.
func (s *String) ByteLength() int64 { return int64(len(s.Bytes)) }

// Length returns the number of code points (§4.5).
func (s *String) Length() int64 {
	n := int64(0)
	i := 0
	for i < len(s.Bytes) {
		sz := CodePointSize(s.Bytes[i])
		if sz == 0 {
			sz = 1
		}
		i += sz
		n++
	}
	return n
}

func translate(i, count int64, allowOnePastEnd bool) int64 {
	if i < 0 {
		i += count + 1
		if !allowOnePastEnd {
			i--
		}
	}
	return i
}

// byteOffsetOf returns the byte offset of the codeIndex'th code point, and
// its encoded size in bytes.
func (s *String) byteOffsetOf(codeIndex int64) (offset int, size int) {
	i := 0
	cur := int64(0)
	for i < len(s.Bytes) {
		sz := CodePointSize(s.Bytes[i])
		if sz == 0 {
			sz = 1
		}
		if cur == codeIndex {
			return i, sz
		}
		i += sz
		cur++
	}
	return i, 0
}

// Get decodes the i-th code point (negative indices count from the end).
func (s *String) Get(i int64) rune {
	idx := translate(i, s.Length(), false)
	off, sz := s.byteOffsetOf(idx)
	if sz == 0 {
		return 0
	}
	return DecodeCodePoint(s.Bytes[off : off+sz])
}

func ceilPow2(n int64) int64 {
	if n <= 1 {
		return 1
	}
	p := int64(1)
	for p < n {
		p <<= 1
	}
	return p
}

func (s *String) reserveBytes(extra int64) {
	count := int64(len(s.Bytes))
	if s.allocated > 0 && count+extra <= s.allocated {
		return
	}
	target := ceilPow2(count + extra + 1)
	if target < 8 {
		target = 8
	}
	fresh := alloc.AllocSlice[byte](s.a, int(target), 0)
	if fresh == nil {
		fresh = make([]byte, target)
	}
	copy(fresh, s.Bytes)
	s.Bytes = fresh[:count]
	s.allocated = target
}

// Set replaces the code point at index i with cp, growing or shrinking the
// byte buffer if the encoded size differs (§3.5, §4.5).
func (s *String) Set(i int64, cp rune) {
	idx := translate(i, s.Length(), false)
	off, oldSize := s.byteOffsetOf(idx)
	newSize := SizeOfCodePoint(cp)

	if s.allocated == 0 {
		s.materialize()
	}

	if newSize != oldSize {
		diff := int64(newSize - oldSize)
		s.reserveBytes(diff)
		count := int64(len(s.Bytes))
		if diff > 0 {
			s.Bytes = s.Bytes[:count+diff]
			copy(s.Bytes[off+newSize:], s.Bytes[off+oldSize:count])
		} else {
			copy(s.Bytes[off+newSize:count+diff], s.Bytes[off+oldSize:count])
			s.Bytes = s.Bytes[:count+diff]
		}
	}
	EncodeCodePoint(s.Bytes[off:off+newSize], cp)
}

func (s *String) materialize() {
	count := int64(len(s.Bytes))
	target := ceilPow2(count + 1)
	if target < 8 {
		target = 8
	}
	fresh := alloc.AllocSlice[byte](s.a, int(target), 0)
	if fresh == nil {
		fresh = make([]byte, target)
	}
	copy(fresh, s.Bytes)
	s.Bytes = fresh[:count]
	s.allocated = target
}

// Append adds cp's UTF-8 encoding to the end of s.
func (s *String) Append(cp rune) {
	sz := SizeOfCodePoint(cp)
	if s.allocated == 0 {
		s.materialize()
	}
	s.reserveBytes(int64(sz))
	count := len(s.Bytes)
	s.Bytes = s.Bytes[:count+sz]
	EncodeCodePoint(s.Bytes[count:], cp)
}

// AppendString appends another string's bytes verbatim.
func (s *String) AppendString(other String) {
	if s.allocated == 0 {
		s.materialize()
	}
	s.reserveBytes(int64(len(other.Bytes)))
	count := len(s.Bytes)
	s.Bytes = s.Bytes[:count+len(other.Bytes)]
	copy(s.Bytes[count:], other.Bytes)
}

// InsertAtIndex inserts cp before code-point index i.
func (s *String) InsertAtIndex(i int64, cp rune) {
	length := s.Length()
	idx := translate(i, length, true)
	off, _ := s.byteOffsetOf(idx)
	if idx == length {
		off = len(s.Bytes)
	}
	if s.allocated == 0 {
		s.materialize()
	}
	sz := SizeOfCodePoint(cp)
	s.reserveBytes(int64(sz))
	count := len(s.Bytes)
	s.Bytes = s.Bytes[:count+sz]
	copy(s.Bytes[off+sz:], s.Bytes[off:count])
	EncodeCodePoint(s.Bytes[off:off+sz], cp)
}

// RemoveAtIndex removes the code point at index i.
func (s *String) RemoveAtIndex(i int64) {
	s.RemoveRange(i, translate(i, s.Length(), false)+1)
}

// RemoveRange removes the code points in the half-open range [begin, end).
func (s *String) RemoveRange(begin, end int64) {
	length := s.Length()
	b := translate(begin, length, false)
	e := translate(end, length, true)
	if e <= b {
		return
	}
	bOff, _ := s.byteOffsetOf(b)
	var eOff int
	if e >= length {
		eOff = len(s.Bytes)
	} else {
		eOff, _ = s.byteOffsetOf(e)
	}
	if s.allocated == 0 {
		s.materialize()
	}
	count := len(s.Bytes)
	copy(s.Bytes[bOff:], s.Bytes[eOff:count])
	s.Bytes = s.Bytes[:count-(eOff-bOff)]
}

// Slice returns a non-owning view over code points [begin, end).
func (s *String) Slice(begin, end int64) String {
	length := s.Length()
	b := translate(begin, length, false)
	e := translate(end, length, true)
	if b < 0 {
		b = 0
	}
	if e > length {
		e = length
	}
	if b >= e {
		return String{}
	}
	bOff, _ := s.byteOffsetOf(b)
	var eOff int
	if e >= length {
		eOff = len(s.Bytes)
	} else {
		eOff, _ = s.byteOffsetOf(e)
	}
	return View(string(s.Bytes[bOff:eOff]))
}

// Clone deep-copies s into a freshly owned buffer allocated from a.
func (s *String) Clone(a alloc.Allocator) String {
	fresh := alloc.AllocSlice[byte](a, len(s.Bytes), 0)
	if fresh == nil {
		fresh = make([]byte, len(s.Bytes))
	}
	copy(fresh, s.Bytes)
	return fromBytesOwned(a, fresh[:len(s.Bytes)])
}

const asciiWhitespace = " \t\n\r\v\f"

func isASCIIWhitespace(b byte) bool {
	for i := 0; i < len(asciiWhitespace); i++ {
		if asciiWhitespace[i] == b {
			return true
		}
	}
	return false
}

// TrimStart returns a view with leading ASCII whitespace removed.
func (s *String) TrimStart() String {
	i := 0
	for i < len(s.Bytes) && isASCIIWhitespace(s.Bytes[i]) {
		i++
	}
	return View(string(s.Bytes[i:]))
}

// TrimEnd returns a view with trailing ASCII whitespace removed.
func (s *String) TrimEnd() String {
	i := len(s.Bytes)
	for i > 0 && isASCIIWhitespace(s.Bytes[i-1]) {
		i--
	}
	return View(string(s.Bytes[:i]))
}

// Trim returns a view with leading and trailing ASCII whitespace removed.
func (s *String) Trim() String {
	t := s.TrimStart()
	return t.TrimEnd()
}

// MatchBeginning reports whether s starts with prefix's bytes.
func (s *String) MatchBeginning(prefix String) bool {
	if len(prefix.Bytes) > len(s.Bytes) {
		return false
	}
	for i := range prefix.Bytes {
		if s.Bytes[i] != prefix.Bytes[i] {
			return false
		}
	}
	return true
}

// MatchEnd reports whether s ends with suffix's bytes.
func (s *String) MatchEnd(suffix String) bool {
	if len(suffix.Bytes) > len(s.Bytes) {
		return false
	}
	off := len(s.Bytes) - len(suffix.Bytes)
	for i := range suffix.Bytes {
		if s.Bytes[off+i] != suffix.Bytes[i] {
			return false
		}
	}
	return true
}

// Search returns the code-point index of needle, honoring negative start
// and reversed search (§4.5).
func (s *String) Search(needle rune, start int64, reversed bool) int64 {
	length := s.Length()
	if length == 0 {
		return -1
	}
	if !reversed {
		if start < 0 {
			start += length
		}
		for i := start; i < length; i++ {
			if s.Get(i) == needle {
				return i
			}
		}
		return -1
	}
	if start == -1 {
		start = length - 1
	} else if start < 0 {
		start += length
	}
	for i := start; i >= 0; i-- {
		if s.Get(i) == needle {
			return i
		}
	}
	return -1
}

// SearchString returns the code-point index of the first occurrence of
// needle as a substring, or -1.
func (s *String) SearchString(needle String) int64 {
	if len(needle.Bytes) == 0 {
		return 0
	}
	byteIdx := indexOfBytes(s.Bytes, needle.Bytes, 0)
	if byteIdx == -1 {
		return -1
	}
	// Convert byte index back to code-point index.
	cpIdx := int64(0)
	i := 0
	for i < byteIdx {
		sz := CodePointSize(s.Bytes[i])
		if sz == 0 {
			sz = 1
		}
		i += sz
		cpIdx++
	}
	return cpIdx
}

func indexOfBytes(haystack, needle []byte, from int) int {
	n, m := len(haystack), len(needle)
	for i := from; i+m <= n; i++ {
		match := true
		for j := 0; j < m; j++ {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// ReplaceAll replaces every non-overlapping occurrence of pattern with
// replacement, advancing past each replacement (§4.5, §9).
func (s *String) ReplaceAll(pattern, replacement String) {
	if len(pattern.Bytes) == 0 {
		return
	}
	if s.allocated == 0 {
		s.materialize()
	}
	i := 0
	for {
		idx := indexOfBytes(s.Bytes, pattern.Bytes, i)
		if idx == -1 {
			return
		}
		tail := append([]byte{}, s.Bytes[idx+len(pattern.Bytes):]...)
		s.Bytes = s.Bytes[:idx]
		s.Bytes = append(s.Bytes, replacement.Bytes...)
		s.Bytes = append(s.Bytes, tail...)
		s.allocated = int64(cap(s.Bytes))
		i = idx + len(replacement.Bytes)
	}
}

// RemoveAll removes every non-overlapping occurrence of pattern.
func (s *String) RemoveAll(pattern String) {
	s.ReplaceAll(pattern, String{})
}

// String satisfies fmt.Stringer for debug printing/tests; it is not part of
// the spec's formatted-output engine (see package format for that).
func (s String) String() string {
	return string(s.Bytes)
}

// Runes decodes s into a fresh slice of code points.
func (s *String) Runes() []rune {
	out := make([]rune, 0, s.Length())
	i := 0
	for i < len(s.Bytes) {
		sz := CodePointSize(s.Bytes[i])
		if sz == 0 {
			sz = 1
		}
		out = append(out, DecodeCodePoint(s.Bytes[i:i+sz]))
		i += sz
	}
	return out
}

// AppendCodePoint is an alias for Append, read more naturally by callers
// building a string one decoded code point at a time.
func (s *String) AppendCodePoint(cp rune) { s.Append(cp) }
