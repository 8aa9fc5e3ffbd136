// Package array implements the owned-or-view dynamic array described in
// §3.4/§4.4 of the spec: a plain struct where Allocated == 0 means the
// array doesn't own Data, and mutating operations that need to grow first
// materialize a view into an owned buffer.
//
// Grounded on light-std's storage/array.h (reserve/insert/remove shape,
// translate_index semantics, owner-pointer encoding) and generalized from
// C++ templates to a Go generic type. tinyrange-rtg's std/strings.go
// supplies the search/trim idiom carried over into Array's Search.
package array

import (
	"github.com/light-std/ls/alloc"
)

// Array is the owned-or-view dynamic array. The zero value is a valid empty
// array (a view over nothing).
type Array[T comparable] struct {
	Data      []T
	allocated int64 // 0 means Data is a non-owning view
	owner     *Array[T]
	a         alloc.Allocator
}

// View wraps an existing slice as a non-owning array, the Go equivalent of
// light-std's array(array_view<T>) constructor.
func View[T comparable](items []T) Array[T] {
	return Array[T]{Data: items}
}

// New returns an empty owned array backed by a.
func New[T comparable](a alloc.Allocator) Array[T] {
	return Array[T]{a: a}
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

func translate(i, count int64, allowOnePastEnd bool) int64 {
	if i < 0 {
		i += count + 1
		if !allowOnePastEnd {
			i--
		}
	}
	return i
}

// Count returns the number of live elements.
func (a *Array[T]) Count() int { return len(a.Data) }

// IsView reports whether the array is a non-owning view.
func (a *Array[T]) IsView() bool { return a.allocated == 0 }

// Reserve ensures there is room for at least n more elements, materializing
// a view into an owned buffer first if necessary (§4.4).
func (a *Array[T]) Reserve(n int64) {
	count := int64(len(a.Data))
	if a.allocated > 0 && count+n < a.allocated {
		return
	}
	target := ceilPow2(count + n + 1)
	if target < 8 {
		target = 8
	}

	if a.allocated > 0 && a.owner == a {
		grown := alloc.ResizeSlice(a.a, a.Data[:a.allocated], int(target), 0)
		if grown == nil {
			grown = make([]T, target)
			copy(grown, a.Data)
		}
		a.Data = grown[:count]
		a.allocated = target
		return
	}

	fresh := alloc.AllocSlice[T](a.a, int(target), 0)
	if fresh == nil {
		fresh = make([]T, target)
	}
	copy(fresh, a.Data)
	a.Data = fresh[:count]
	a.allocated = target
	a.owner = a
}

// Release frees the owned buffer (no-op on a view) and empties the array.
func (a *Array[T]) Release() {
	if a.allocated > 0 && a.owner == a {
		alloc.FreeSlice(a.Data[:a.allocated], 0)
	}
	a.Data = nil
	a.allocated = 0
	a.owner = nil
}

// Get returns the element at index i (negative counts from the end).
func (a *Array[T]) Get(i int64) T {
	idx := translate(i, int64(len(a.Data)), false)
	return a.Data[idx]
}

// Has reports whether x is present.
func (a *Array[T]) Has(x T) bool {
	return a.Search(x, 0, false) != -1
}

// Search performs byte-equality linear search with negative-start and
// reversed support (§4.4).
func (a *Array[T]) Search(needle T, start int64, reversed bool) int64 {
	n := int64(len(a.Data))
	if n == 0 {
		return -1
	}
	if !reversed {
		if start < 0 {
			start += n
		}
		for i := start; i < n; i++ {
			if a.Data[i] == needle {
				return i
			}
		}
		return -1
	}
	if start == -1 {
		start = n - 1
	} else if start < 0 {
		start += n
	}
	for i := start; i >= 0; i-- {
		if a.Data[i] == needle {
			return i
		}
	}
	return -1
}

// InsertAtIndex inserts xs starting at index i (negative allowed, -1 means
// append). Preserves order of the remaining elements (§4.4).
func (a *Array[T]) InsertAtIndex(i int64, xs ...T) {
	if len(xs) == 0 {
		return
	}
	count := int64(len(a.Data))
	a.Reserve(int64(len(xs)))
	offset := translate(i, count, true)

	count = int64(len(a.Data))
	a.Data = a.Data[:count+int64(len(xs))]
	copy(a.Data[offset+int64(len(xs)):], a.Data[offset:count])
	copy(a.Data[offset:], xs)
}

// RemoveOrderedAtIndex removes the element at index i, shifting the tail
// down to preserve order.
func (a *Array[T]) RemoveOrderedAtIndex(i int64) {
	count := int64(len(a.Data))
	idx := translate(i, count, false)
	if a.allocated == 0 {
		a.materialize()
		count = int64(len(a.Data))
	}
	copy(a.Data[idx:], a.Data[idx+1:count])
	a.Data = a.Data[:count-1]
}

// RemoveRange removes the half-open range [begin, end).
func (a *Array[T]) RemoveRange(begin, end int64) {
	count := int64(len(a.Data))
	b := translate(begin, count, false)
	e := translate(end, count, true)
	if e <= b {
		return
	}
	if a.allocated == 0 {
		a.materialize()
		count = int64(len(a.Data))
	}
	copy(a.Data[b:], a.Data[e:count])
	a.Data = a.Data[:count-(e-b)]
}

// ReplaceRange replaces [begin, end) with xs, handling xs.Count != end-begin
// with a single shift.
func (a *Array[T]) ReplaceRange(begin, end int64, xs []T) {
	count := int64(len(a.Data))
	b := translate(begin, count, false)
	e := translate(end, count, true)
	if a.allocated == 0 {
		a.materialize()
		count = int64(len(a.Data))
	}

	oldLen := e - b
	newLen := int64(len(xs))
	if newLen > oldLen {
		a.Reserve(newLen - oldLen)
		count = int64(len(a.Data))
	}

	newCount := count - oldLen + newLen
	if newLen != oldLen {
		if newLen < oldLen {
			copy(a.Data[b+newLen:newCount], a.Data[e:count])
			a.Data = a.Data[:newCount]
		} else {
			a.Data = a.Data[:newCount]
			copy(a.Data[b+newLen:newCount], a.Data[e:count])
		}
	}
	copy(a.Data[b:b+newLen], xs)
}

// ReplaceAll replaces every non-overlapping occurrence of pattern with
// replacement, advancing past each replacement without rescanning inside it
// (§4.4, §9).
func (a *Array[T]) ReplaceAll(pattern, replacement []T) {
	if len(pattern) == 0 {
		return
	}
	i := int64(0)
	for {
		idx := a.indexOfSliceFrom(pattern, i)
		if idx == -1 {
			return
		}
		a.ReplaceRange(idx, idx+int64(len(pattern)), replacement)
		i = idx + int64(len(replacement))
	}
}

// RemoveAll removes every non-overlapping occurrence of pattern.
func (a *Array[T]) RemoveAll(pattern []T) {
	a.ReplaceAll(pattern, nil)
}

func (a *Array[T]) indexOfSliceFrom(pattern []T, from int64) int64 {
	n := int64(len(a.Data))
	m := int64(len(pattern))
	if m == 0 || m > n {
		return -1
	}
	for i := from; i <= n-m; i++ {
		match := true
		for j := int64(0); j < m; j++ {
			if a.Data[i+j] != pattern[j] {
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

// Slice returns a non-owning view over [begin, end), clamped to [0, count].
func (a *Array[T]) Slice(begin, end int64) Array[T] {
	count := int64(len(a.Data))
	if begin < 0 {
		begin = 0
	}
	if end > count {
		end = count
	}
	if begin >= end {
		return Array[T]{}
	}
	return View(a.Data[begin:end])
}

func (a *Array[T]) materialize() {
	count := int64(len(a.Data))
	fresh := alloc.AllocSlice[T](a.a, int(max64(ceilPow2(count+1), 8)), 0)
	if fresh == nil {
		fresh = make([]T, max64(ceilPow2(count+1), 8))
	}
	copy(fresh, a.Data)
	a.Data = fresh[:count]
	a.allocated = int64(len(fresh))
	a.owner = a
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
