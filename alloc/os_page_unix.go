//go:build linux || darwin

package alloc

import (
	"unsafe"

	"github.com/golang/glog"
	"golang.org/x/sys/unix"
)

// OS is a thin pass-through to the kernel's page allocator, used to
// bootstrap the arena's first page and every overflow page after it.
// Grounded on tinyrange-rtg's std/runtime.Alloc, which mmaps a fresh
// MAP_PRIVATE|MAP_ANONYMOUS region per chunk; we use golang.org/x/sys/unix
// directly instead of the teacher's raw Syscall(9, ...) numbers.
var OS = Allocator{Fn: osAllocFn}

func osAllocFn(mode Mode, _ unsafe.Pointer, size int64, oldPtr unsafe.Pointer, oldSize int64, _ UserFlags) unsafe.Pointer {
	switch mode {
	case Allocate:
		if size <= 0 {
			return nil
		}
		b, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
		if err != nil {
			glog.Errorf("alloc: mmap %d bytes: %v", size, err)
			return nil
		}
		return unsafe.Pointer(unsafe.SliceData(b))
	case Resize:
		return nil
	case Free:
		if oldPtr == nil || oldSize <= 0 {
			return nil
		}
		b := unsafe.Slice((*byte)(oldPtr), oldSize)
		if err := unix.Munmap(b); err != nil {
			glog.Errorf("alloc: munmap: %v", err)
		}
		return nil
	case FreeAll:
		return FreeAllUnsupported
	default:
		return nil
	}
}

// PageSize reports the OS page size, mirroring the os_page_size() platform
// callout named in the external interface.
func PageSize() int64 { return int64(unix.Getpagesize()) }
