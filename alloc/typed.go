package alloc

import "unsafe"

// AllocSlice requests room for n values of T from a and returns it as a Go
// slice of length n, capacity n. Used by container/array, container/htable
// and friends to get allocator-backed (rather than runtime.growslice-backed)
// storage while still working with ordinary Go slice syntax.
func AllocSlice[T any](a Allocator, n int, flags UserFlags) []T {
	if n == 0 {
		return nil
	}
	var zero T
	elemSize := int64(unsafe.Sizeof(zero))
	p := AllocateAligned(a, elemSize*int64(n), alignOf(zero), flags)
	if p == nil {
		return nil
	}
	return unsafe.Slice((*T)(p), n)
}

// ResizeSlice grows/shrinks s in place if possible (preserving existing
// elements up to min(len)), otherwise copies to a fresh allocation. Mirrors
// Reallocate but at element granularity.
func ResizeSlice[T any](a Allocator, s []T, newN int, flags UserFlags) []T {
	if len(s) == 0 {
		return AllocSlice[T](a, newN, flags)
	}
	var zero T
	elemSize := int64(unsafe.Sizeof(zero))
	p := unsafe.Pointer(&s[0])
	newP := Reallocate(p, elemSize*int64(newN), flags)
	if newP == nil {
		return nil
	}
	return unsafe.Slice((*T)(newP), newN)
}

// FreeSlice releases storage obtained from AllocSlice/ResizeSlice.
func FreeSlice[T any](s []T, flags UserFlags) {
	if len(s) == 0 {
		return
	}
	Free(unsafe.Pointer(&s[0]), flags)
}

func alignOf[T any](v T) int {
	a := int(unsafe.Alignof(v))
	if a < 1 {
		return 8
	}
	return a
}
