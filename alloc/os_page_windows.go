//go:build windows

package alloc

import (
	"unsafe"

	"github.com/golang/glog"
	"golang.org/x/sys/windows"
)

// OS mirrors os_page_unix.go's mmap-backed allocator but on top of
// VirtualAlloc/VirtualFree, matching the teacher's os_windows.go split
// (std/os has a dedicated *_windows.go next to every *_linux.go file).
var OS = Allocator{Fn: osAllocFn}

func osAllocFn(mode Mode, _ unsafe.Pointer, size int64, oldPtr unsafe.Pointer, oldSize int64, _ UserFlags) unsafe.Pointer {
	switch mode {
	case Allocate:
		if size <= 0 {
			return nil
		}
		addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
		if err != nil {
			glog.Errorf("alloc: VirtualAlloc %d bytes: %v", size, err)
			return nil
		}
		return unsafe.Pointer(addr)
	case Resize:
		return nil
	case Free:
		if oldPtr == nil {
			return nil
		}
		if err := windows.VirtualFree(uintptr(oldPtr), 0, windows.MEM_RELEASE); err != nil {
			glog.Errorf("alloc: VirtualFree: %v", err)
		}
		return nil
	case FreeAll:
		return FreeAllUnsupported
	default:
		return nil
	}
}

func PageSize() int64 {
	var si windows.SystemInfo
	windows.GetSystemInfo(&si)
	return int64(si.PageSize)
}
