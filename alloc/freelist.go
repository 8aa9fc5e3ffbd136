package alloc

import (
	"math"
	"sync"
	"unsafe"

	"github.com/golang/glog"
)

// Policy selects how a free list allocator searches for a block large
// enough to satisfy a request. Grounded on light-std's
// free_list_allocator_data::placement_policy.
type Policy uint8

const (
	// FindFirst returns the first free block big enough. Faster, more
	// fragmentation over time.
	FindFirst Policy = iota
	// FindBest scans every free block and keeps the tightest fit. Slower,
	// less fragmentation.
	FindBest
)

// freeListHeader sits immediately before a live block's payload: how big the
// block is (header + padding + payload) and how much padding precedes the
// header, so free can walk back to reconstruct a node in place.
type freeListHeader struct {
	blockSize int64
	padding   int64
}

const freeListHeaderSize = int64(unsafe.Sizeof(freeListHeader{}))

// freeListNode is a free block's own bookkeeping, written into the block's
// own bytes while it is unused: a free block costs nothing beyond what it
// already has. Same layout size as freeListHeader; freeing a block writes
// the node at the block's start, the header's padding bytes before the
// header itself (see (*FreeListData).free).
type freeListNode struct {
	blockSize int64
	next      *freeListNode
}

const freeListNodeSize = int64(unsafe.Sizeof(freeListNode{}))

const freeListMinAlignment = 16

// FreeListData is the backing state for a free list allocator: one
// pre-allocated block carved up on demand and bookkept with an intrusive
// singly linked list of free nodes. Grounded on light-std's
// free_list_allocator_data; suited for general-purpose use where the arena's
// no-individual-free restriction (alloc/arena.go) is too limiting but a full
// OS-backed heap (alloc/heap.go) is more than needed.
type FreeListData struct {
	mu       sync.Mutex
	storage  []byte
	reserved int64
	head     *freeListNode
	used     int64
	peakUsed int64
	policy   Policy
}

// NewFreeList carves a totalSize-byte block out of the Go heap and wires a
// free list allocator around it using the given placement policy.
func NewFreeList(totalSize int64, policy Policy) (Allocator, *FreeListData) {
	d := &FreeListData{storage: make([]byte, totalSize), reserved: totalSize, policy: policy}
	d.resetFreeList()
	return Allocator{Fn: freeListAllocFn, Context: unsafe.Pointer(d)}, d
}

func (d *FreeListData) resetFreeList() {
	first := (*freeListNode)(unsafe.Pointer(&d.storage[0]))
	first.blockSize = d.reserved
	first.next = nil
	d.head = first
	d.used = 0
	d.peakUsed = 0
}

// Used returns the number of bytes currently handed out (header and padding
// included, matching free_list_allocator_data::Used).
func (d *FreeListData) Used() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.used
}

// PeakUsed returns the high-water mark of Used since the last FreeAll.
func (d *FreeListData) PeakUsed() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.peakUsed
}

// Reserved returns the total size of the backing block.
func (d *FreeListData) Reserved() int64 { return d.reserved }

func calculatePaddingWithHeader(p unsafe.Pointer, align int64) int64 {
	a := uintptr(align)
	u := uintptr(p)
	aligned := (u + a - 1) &^ (a - 1)
	padding := int64(aligned - u)

	if padding < freeListHeaderSize {
		need := freeListHeaderSize - padding
		if need%align > 0 {
			padding += align * (1 + need/align)
		} else {
			padding += align * (need / align)
		}
	}
	return padding
}

func (d *FreeListData) findFirst(size, align int64) (prev, found *freeListNode, padding int64) {
	it := d.head
	for it != nil {
		padding = calculatePaddingWithHeader(unsafe.Pointer(it), align)
		if it.blockSize >= size+padding {
			break
		}
		prev = it
		it = it.next
	}
	found = it
	return prev, found, padding
}

func (d *FreeListData) findBest(size, align int64) (prev, found *freeListNode, padding int64) {
	smallestDiff := int64(math.MaxInt64)
	it := d.head
	var itPrev *freeListNode
	for it != nil {
		p := calculatePaddingWithHeader(unsafe.Pointer(it), align)
		required := size + p
		if it.blockSize >= required {
			if diff := it.blockSize - required; diff < smallestDiff {
				found = it
				prev = itPrev
				padding = p
				smallestDiff = diff
			}
		}
		itPrev = it
		it = it.next
	}
	return prev, found, padding
}

func (d *FreeListData) allocate(size, align int64) unsafe.Pointer {
	if size < freeListNodeSize {
		size = freeListNodeSize
	}
	if align < freeListMinAlignment {
		align = freeListMinAlignment
	}

	var prev, found *freeListNode
	var padding int64
	if d.policy == FindBest {
		prev, found, padding = d.findBest(size, align)
	} else {
		prev, found, padding = d.findFirst(size, align)
	}
	if found == nil {
		return nil
	}

	alignmentPadding := padding - freeListHeaderSize
	required := size + padding
	rest := found.blockSize - required

	if rest > 0 {
		newFree := (*freeListNode)(unsafe.Add(unsafe.Pointer(found), required))
		newFree.blockSize = rest
		newFree.next = found.next
		found.next = newFree
	}
	if prev != nil {
		prev.next = found.next
	} else {
		d.head = found.next
	}

	d.used += required
	if d.used > d.peakUsed {
		d.peakUsed = d.used
	}

	hdr := (*freeListHeader)(unsafe.Add(unsafe.Pointer(found), alignmentPadding))
	hdr.blockSize = required
	hdr.padding = alignmentPadding

	return unsafe.Add(unsafe.Pointer(hdr), freeListHeaderSize)
}

func freeListCoalescence(prev, freeNode *freeListNode) {
	if freeNode.next != nil && uintptr(unsafe.Pointer(freeNode))+uintptr(freeNode.blockSize) == uintptr(unsafe.Pointer(freeNode.next)) {
		freeNode.blockSize += freeNode.next.blockSize
		freeNode.next = freeNode.next.next
	}
	if prev != nil && uintptr(unsafe.Pointer(prev))+uintptr(prev.blockSize) == uintptr(unsafe.Pointer(freeNode)) {
		prev.blockSize += freeNode.blockSize
		prev.next = freeNode.next
	}
}

func (d *FreeListData) free(ptr unsafe.Pointer) {
	hdr := (*freeListHeader)(unsafe.Add(ptr, -freeListHeaderSize))
	// hdr.blockSize already spans the whole original free block (node start
	// to end of payload, see allocate); reconstruct the node at that node
	// start, not at the header's own address, so the reclaimed range can
	// never run past what was actually carved out.
	nodeStart := unsafe.Add(unsafe.Pointer(hdr), -hdr.padding)
	freeNode := (*freeListNode)(nodeStart)
	freeNode.blockSize = hdr.blockSize
	freeNode.next = nil

	var prev *freeListNode
	inserted := false
	for it := d.head; it != nil; it = it.next {
		if uintptr(nodeStart) < uintptr(unsafe.Pointer(it)) {
			if prev == nil {
				freeNode.next = d.head
				d.head = freeNode
			} else {
				freeNode.next = prev.next
				prev.next = freeNode
			}
			inserted = true
			break
		}
		prev = it
	}
	if !inserted {
		// freeNode sits after every existing free block (or the list is
		// empty): append it at the tail instead of dropping it, closing the
		// gap left by the original's tail case (it only ever linked a freed
		// block in when it found one already positioned after it).
		if prev == nil {
			d.head = freeNode
		} else {
			prev.next = freeNode
		}
	}

	d.used -= freeNode.blockSize
	freeListCoalescence(prev, freeNode)
}

// freeListAllocFn is the Func for a free list allocator (see NewFreeList).
// Grounded on light-std's free_list_allocator dispatcher.
func freeListAllocFn(mode Mode, allocCtx unsafe.Pointer, size int64, oldPtr unsafe.Pointer, oldSize int64, _ UserFlags) unsafe.Pointer {
	d := (*FreeListData)(allocCtx)
	d.mu.Lock()
	defer d.mu.Unlock()

	switch mode {
	case Allocate:
		p := d.allocate(size, 8)
		if p == nil {
			glog.Errorf("alloc: free list exhausted requesting %d bytes", size)
		}
		return p

	case Resize:
		// Never resizes in place; Reallocate falls back to
		// allocate-copy-free, same as the other allocators in this package.
		return nil

	case Free:
		if oldPtr == nil {
			return nil
		}
		d.free(oldPtr)
		return nil

	case FreeAll:
		d.resetFreeList()
		return nil

	default:
		return nil
	}
}
