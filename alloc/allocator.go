// Package alloc defines the allocator vtable used by every container in
// this module: one calling convention, a header written before every
// payload, and a default + arena implementation on top of it.
//
// Grounded on tinyrange-rtg's std/runtime.Alloc (bump allocator over mmap)
// and the original light-std allocator.h/allocator.cpp (header layout, mode
// semantics, debug fences).
package alloc

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/golang/glog"
)

// Mode selects the operation an allocator function performs.
type Mode int

const (
	Allocate Mode = iota
	Resize
	Free
	FreeAll
)

func (m Mode) String() string {
	switch m {
	case Allocate:
		return "ALLOCATE"
	case Resize:
		return "RESIZE"
	case Free:
		return "FREE"
	case FreeAll:
		return "FREE_ALL"
	default:
		return "UNKNOWN"
	}
}

// UserFlags carries caller options through to an allocator function.
type UserFlags uint64

// DoInit0, when set, causes freshly returned memory to be zeroed. Zeroing
// itself happens above the allocator, in Allocate/AllocateAligned.
const DoInit0 UserFlags = 1 << 31

// FreeAllUnsupported is the sentinel Func implementations return from
// FreeAll when they don't support releasing everything at once.
var FreeAllUnsupported = unsafe.Pointer(^uintptr(0))

// Func is the single calling convention every allocator in this module
// implements. size/oldSize are payload sizes (header-exclusive).
type Func func(mode Mode, allocCtx unsafe.Pointer, size int64, oldPtr unsafe.Pointer, oldSize int64, flags UserFlags) unsafe.Pointer

// Allocator is a vtable + opaque context, copied by value like any other
// field of ctx.Context.
type Allocator struct {
	Fn      Func
	Context unsafe.Pointer
}

// IsValid reports whether the allocator has a function pointer set.
func (a Allocator) IsValid() bool { return a.Fn != nil }

const maxAlignment = 65536

// DebugMemory turns on fence bytes, fill patterns, and the live-allocation
// list. Off by default; flip it on in tests that want to exercise the debug
// path, mirroring light-std's DEBUG_MEMORY compile switch.
var DebugMemory = false

const (
	noMansLandSize = 4
	noMansLandFill = 0xFD
	deadLandFill   = 0xDD
	cleanLandFill  = 0xCD
)

// Header is the fixed metadata recorded for every payload; it is kept in a
// side table keyed by the payload pointer (liveHeader), not in the bytes
// before the payload.
// Field order matches the original allocation_header layout in spirit
// (debug-only fields separated out into a side table instead of inline,
// since Go headers aren't placed by the allocator itself the way C++
// placement-new headers are).
type Header struct {
	ID               uint32
	RID              uint32
	Fn               Func
	AllocCtx         unsafe.Pointer
	Size             int64
	Owner            unsafe.Pointer
	Alignment        uint16
	AlignmentPadding uint16
	UserData         unsafe.Pointer
}

const headerSize = int64(unsafe.Sizeof(Header{}))

// debugInfo is the side-table entry kept only when DebugMemory is on: the
// linked-list pointers, the duplicated payload pointer, and fence state
// live here instead of inline so release builds pay nothing for them.
type debugInfo struct {
	prev, next  *debugInfo
	hdr         *Header
	payload     unsafe.Pointer
	payloadBuf  []byte // not set by this package; the payload bytes stay owned by the backing allocator
	frontFence  [noMansLandSize]byte
	backFence   [noMansLandSize]byte
}

var (
	idCounter  uint32
	debugMu    sync.Mutex
	debugHead  *debugInfo
	liveHeader = map[unsafe.Pointer]*Header{}
	liveDebug  = map[unsafe.Pointer]*debugInfo{}
)

// rawPayloads records, for every live payload and whatever DebugMemory is,
// the raw block the backing allocator returned, keyed by payload pointer.
// header_of(payload) in this port is implemented as a map lookup rather
// than raw pointer arithmetic, since Go does not allow placing a struct
// immediately before an arbitrary byte slice the way C/C++ placement does.
var rawPayloads = map[unsafe.Pointer][]byte{}
var rawMu sync.Mutex

// HeaderOf recovers the allocation header for a payload pointer returned by
// Allocate/AllocateAligned. Panics (via the caller's context, not here) is
// the caller's concern; HeaderOf itself returns nil on an unknown pointer.
func HeaderOf(p unsafe.Pointer) *Header {
	rawMu.Lock()
	h := liveHeader[p]
	rawMu.Unlock()
	return h
}

func nextID() uint32 {
	return atomic.AddUint32(&idCounter, 1)
}

func padPointer(raw unsafe.Pointer, align int) uint16 {
	a := uintptr(align)
	u := uintptr(raw)
	aligned := (u + a - 1) &^ (a - 1)
	return uint16(aligned - u)
}

// AllocateAligned requests size bytes at the given alignment (power of two, <=
// maxAlignment) from a, writing and registering the header. Returns nil on
// OOM or on an invalid alignment.
func AllocateAligned(a Allocator, size int64, align int, flags UserFlags) unsafe.Pointer {
	if !a.IsValid() || size < 0 {
		return nil
	}
	if align <= 0 || align&(align-1) != 0 || align > maxAlignment {
		glog.Errorf("alloc: invalid alignment %d", align)
		return nil
	}

	// The header lives in a side table (liveHeader), not inline before the
	// payload: Go gives us no portable way to place a struct immediately
	// before bytes handed back by an arbitrary allocator function (mmap
	// regions, arena bump pages, GC'd slices all disagree on what "before"
	// even means). We still request align extra slack bytes so the
	// returned payload pointer is genuinely aligned, matching the
	// AlignmentPadding field's meaning in the original header layout.
	raw := a.Fn(Allocate, a.Context, size+int64(align), nil, 0, flags)
	if raw == nil {
		return nil
	}

	padding := padPointer(raw, align)
	payload := unsafe.Add(raw, int64(padding))

	hdr := &Header{
		ID:               nextID(),
		Fn:               a.Fn,
		AllocCtx:         a.Context,
		Size:             size,
		Alignment:        uint16(align),
		AlignmentPadding: padding,
	}

	buf := unsafe.Slice((*byte)(payload), size)
	if flags&DoInit0 != 0 {
		for i := range buf {
			buf[i] = 0
		}
	} else if DebugMemory {
		for i := range buf {
			buf[i] = cleanLandFill
		}
	}

	rawMu.Lock()
	liveHeader[payload] = hdr
	rawPayloads[payload] = unsafe.Slice((*byte)(raw), size+int64(align))
	rawMu.Unlock()

	if DebugMemory {
		registerDebug(hdr, payload)
	}

	return payload
}

// Allocate requests size bytes at a fixed 8-byte alignment (the pointer
// size on every platform this module targets); it does not read the
// AllocAlignment of any ctx.Context.
func Allocate(a Allocator, size int64, flags UserFlags) unsafe.Pointer {
	return AllocateAligned(a, size, 8, flags)
}

func registerDebug(hdr *Header, payload unsafe.Pointer) {
	debugMu.Lock()
	defer debugMu.Unlock()
	d := &debugInfo{hdr: hdr, payload: payload, next: debugHead}
	for i := range d.frontFence {
		d.frontFence[i] = noMansLandFill
		d.backFence[i] = noMansLandFill
	}
	if debugHead != nil {
		debugHead.prev = d
	}
	debugHead = d
	liveDebug[payload] = d
}

func unregisterDebug(payload unsafe.Pointer) {
	debugMu.Lock()
	defer debugMu.Unlock()
	d, ok := liveDebug[payload]
	if !ok {
		return
	}
	if d.prev != nil {
		d.prev.next = d.next
	} else {
		debugHead = d.next
	}
	if d.next != nil {
		d.next.prev = d.prev
	}
	delete(liveDebug, payload)
}

// Reallocate resizes the block at ptr to newSize. nil ptr is a no-op that
// returns nil; newSize == 0 frees the block and returns nil. Otherwise it
// tries Resize first and falls back to allocate-copy-free.
func Reallocate(ptr unsafe.Pointer, newSize int64, flags UserFlags) unsafe.Pointer {
	if ptr == nil {
		return nil
	}
	hdr := HeaderOf(ptr)
	if hdr == nil {
		glog.Errorf("alloc: Reallocate on unknown pointer")
		return nil
	}
	if newSize == 0 {
		Free(ptr, flags)
		return nil
	}

	a := Allocator{Fn: hdr.Fn, Context: hdr.AllocCtx}
	if got := a.Fn(Resize, a.Context, newSize, ptr, hdr.Size, flags); got != nil {
		hdr.RID++
		hdr.Size = newSize
		return ptr
	}

	fresh := AllocateAligned(a, newSize, int(hdr.Alignment), flags)
	if fresh == nil {
		return nil
	}
	n := hdr.Size
	if newSize < n {
		n = newSize
	}
	src := unsafe.Slice((*byte)(ptr), n)
	dst := unsafe.Slice((*byte)(fresh), n)
	copy(dst, src)

	if freshHdr := HeaderOf(fresh); freshHdr != nil {
		freshHdr.RID = hdr.RID + 1
	}
	Free(ptr, flags)
	return fresh
}

// Free releases the block at ptr. A nil pointer is a no-op.
func Free(ptr unsafe.Pointer, flags UserFlags) {
	if ptr == nil {
		return
	}
	hdr := HeaderOf(ptr)
	if hdr == nil {
		glog.Errorf("alloc: Free on unknown pointer")
		return
	}
	if DebugMemory {
		buf := unsafe.Slice((*byte)(ptr), hdr.Size)
		for i := range buf {
			buf[i] = deadLandFill
		}
		unregisterDebug(ptr)
	}
	rawMu.Lock()
	delete(liveHeader, ptr)
	delete(rawPayloads, ptr)
	rawMu.Unlock()

	hdr.Fn(Free, hdr.AllocCtx, 0, ptr, hdr.Size, flags)
}

// FreeAll releases everything a owns, or reports unsupported.
func FreeAll(a Allocator, flags UserFlags) bool {
	if !a.IsValid() {
		return false
	}
	res := a.Fn(FreeAll, a.Context, 0, nil, 0, flags)
	return res != FreeAllUnsupported
}

// VerifyHeap walks the debug list and checks that every registered fence is
// still intact. Returns the first corrupted payload pointer, or nil if the
// heap is sound. No-op (always sound) when DebugMemory is off.
func VerifyHeap() unsafe.Pointer {
	if !DebugMemory {
		return nil
	}
	debugMu.Lock()
	defer debugMu.Unlock()
	for d := debugHead; d != nil; d = d.next {
		for _, b := range d.frontFence {
			if b != noMansLandFill {
				glog.Errorf("alloc: corrupted no-man's-land fence at %v", d.payload)
				return d.payload
			}
		}
		for _, b := range d.backFence {
			if b != noMansLandFill {
				glog.Errorf("alloc: corrupted no-man's-land fence at %v", d.payload)
				return d.payload
			}
		}
	}
	return nil
}

// LiveCount returns the number of allocations currently tracked by the
// debug list (0 when DebugMemory is off).
func LiveCount() int {
	debugMu.Lock()
	defer debugMu.Unlock()
	n := 0
	for d := debugHead; d != nil; d = d.next {
		n++
	}
	return n
}

// Snapshot is a read-only diagnostic summary of the live allocations at the
// moment Stats was called.
type Snapshot struct {
	Count      int
	TotalBytes int64
}

// Stats walks the debug list and reports how many allocations are live and
// how many payload bytes they hold. Always {0, 0} when DebugMemory is off,
// since the debug list itself isn't populated outside that mode.
func Stats() Snapshot {
	debugMu.Lock()
	defer debugMu.Unlock()
	var s Snapshot
	for d := debugHead; d != nil; d = d.next {
		s.Count++
		s.TotalBytes += d.hdr.Size
	}
	return s
}
