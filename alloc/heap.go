package alloc

import "unsafe"

// Default is the general-purpose heap allocator: thread-safe, supports
// ALLOCATE/RESIZE/FREE, refuses FREE_ALL. Backed by Go's own memory manager
// (which itself sits on top of the OS page allocator) the way the teacher's
// std/runtime.Alloc sits on top of a raw mmap bump region — we don't need to
// re-implement the OS paging dance here, only the vtable contract. The OS
// allocator in os_page_unix.go/os_page_windows.go does talk to the kernel directly, for the arena's
// overflow pages and for bootstrapping.
var Default = Allocator{Fn: defaultAllocFn}

func defaultAllocFn(mode Mode, _ unsafe.Pointer, size int64, oldPtr unsafe.Pointer, oldSize int64, _ UserFlags) unsafe.Pointer {
	switch mode {
	case Allocate:
		if size < 0 {
			return nil
		}
		buf := make([]byte, size)
		return unsafe.Pointer(unsafe.SliceData(buf))
	case Resize:
		// Go slices never grow in place; report refusal so Reallocate falls
		// back to allocate-copy-free, same as light-std's "return null" path.
		return nil
	case Free:
		return nil
	case FreeAll:
		return FreeAllUnsupported
	default:
		return nil
	}
}
