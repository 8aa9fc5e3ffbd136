package alloc

import (
	"math"
	"sync"
	"unsafe"

	"github.com/golang/glog"
)

const pageGranularity = 8 * 1024 // 8 KiB

// page is one bump-pointer region of the arena, chained to the next
// overflow page when it fills up. Grounded on light-std's
// temporary_allocator_data::page and the teacher's single-region
// std/runtime.Alloc, generalized here into a linked chain of regions.
type page struct {
	storage  []byte
	reserved int64
	used     int64
	next     *page
}

// Data is the per-thread backing store for a temporary (arena) allocator.
// Exactly one Data belongs to exactly one Allocator value; callers get this
// pairing from New, and it is never meant to be shared across goroutines
// (see ctx.Context.TempData).
type Data struct {
	mu       sync.Mutex
	base     page
	totalUsed int64
}

// New wires up a fresh temporary allocator bound to its own backing Data.
// The backing storage is allocated lazily on first use, not here.
func New() (Allocator, *Data) {
	d := &Data{}
	return Allocator{Fn: arenaAllocFn, Context: unsafe.Pointer(d)}, d
}

func ceilPow2(n int64) int64 {
	if n <= 1 {
		return 1
	}
	return int64(1) << uint(64-bitsLeadingZeros64(uint64(n-1)))
}

func bitsLeadingZeros64(x uint64) int {
	n := 0
	for i := 63; i >= 0; i-- {
		if x&(1<<uint(i)) != 0 {
			break
		}
		n++
	}
	return n
}

func roundUpPage(n int64) int64 {
	return (n + pageGranularity - 1) &^ (pageGranularity - 1)
}

// osAllocPage requests size bytes straight from the kernel via OS (see
// os_page_unix.go/os_page_windows.go), the same way the arena's overflow
// pages are sourced in the original temporary_allocator_data. Falls back to
// the Go heap on mmap/VirtualAlloc failure rather than returning a nil page.
func osAllocPage(size int64) []byte {
	raw := OS.Fn(Allocate, nil, size, nil, 0, 0)
	if raw == nil {
		return make([]byte, size)
	}
	return unsafe.Slice((*byte)(raw), size)
}

// osFreePage releases a page obtained from osAllocPage. Arena pages are
// mmap'd/VirtualAlloc'd, not GC-managed, so dropping the slice without this
// would leak the address space for the life of the process.
func osFreePage(b []byte) {
	if len(b) == 0 {
		return
	}
	OS.Fn(Free, nil, 0, unsafe.Pointer(unsafe.SliceData(b)), int64(len(b)), 0)
}

func growthSize(reserved, size int64) int64 {
	logged := int64(math.Ceil(float64(reserved) * (math.Log2(float64(reserved)*10) / 3)))
	target := ceilPow2(size * 2)
	if alt := ceilPow2(logged); alt > target {
		target = alt
	}
	return roundUpPage(target)
}

func arenaAllocFn(mode Mode, allocCtx unsafe.Pointer, size int64, oldPtr unsafe.Pointer, oldSize int64, _ UserFlags) unsafe.Pointer {
	d := (*Data)(allocCtx)
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.base.reserved == 0 {
		start := roundUpPage(size*2 + pageGranularity - 1)
		d.base.storage = osAllocPage(start)
		d.base.reserved = start
	}

	switch mode {
	case Allocate:
		p := &d.base
		for p.next != nil {
			if p.used+size < p.reserved {
				break
			}
			p = p.next
		}
		if p.used+size >= p.reserved {
			target := growthSize(p.reserved, size)
			glog.V(1).Infof("alloc: arena growing overflow page to %d bytes", target)
			p.next = &page{storage: osAllocPage(target), reserved: target}
			p = p.next
		}
		result := unsafe.Pointer(&p.storage[p.used])
		p.used += size
		d.totalUsed += size
		return result

	case Resize:
		p := &d.base
		for p.next != nil {
			if p.used+size < p.reserved {
				break
			}
			p = p.next
		}
		diff := size - oldSize
		if p.used < oldSize {
			return nil
		}
		var possiblyThisBlock unsafe.Pointer
		if p.used-oldSize >= 0 && p.used-oldSize < int64(len(p.storage)) {
			possiblyThisBlock = unsafe.Pointer(&p.storage[p.used-oldSize])
		}
		if possiblyThisBlock == oldPtr {
			if p.used+diff >= p.reserved {
				return nil
			}
			p.used += diff
			return oldPtr
		}
		return nil

	case Free:
		// Individual frees are not supported by the arena.
		return nil

	case FreeAll:
		targetSize := d.base.reserved
		pg := d.base.next
		for pg != nil {
			targetSize += pg.reserved
			pg = pg.next
		}
		if targetSize != d.base.reserved {
			// Every existing page is mmap'd/VirtualAlloc'd, not GC-managed:
			// release them before replacing with the single enlarged page.
			osFreePage(d.base.storage)
			for pg := d.base.next; pg != nil; {
				next := pg.next
				osFreePage(pg.storage)
				pg = next
			}
			d.base.storage = osAllocPage(targetSize)
			d.base.reserved = targetSize
			glog.V(1).Infof("alloc: arena FREE_ALL enlarged base page to %d bytes", targetSize)
		}
		d.base.next = nil
		d.base.used = 0
		d.totalUsed = 0
		return nil

	default:
		return nil
	}
}

// TotalUsed returns the number of bytes currently bumped across all pages.
func (d *Data) TotalUsed() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.totalUsed
}

// BaseReserved returns the capacity of the base (non-overflow) page.
func (d *Data) BaseReserved() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.base.reserved
}

// PageCount returns the number of pages currently chained (1 + overflow
// pages), for test assertions and the corefmt bench subcommand.
func (d *Data) PageCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for p := &d.base; p != nil; p = p.next {
		n++
	}
	return n
}
