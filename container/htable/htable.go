// Package htable implements the open-addressed hash table of §3.6/§4.7:
// two parallel arrays of keys/values plus a hashes array where 0 marks an
// empty slot, linear probing for insert/lookup, and robin-hood
// backward-shift deletion. Capacity is always a power of two; initial
// capacity on first insert is 16; load factor is capped at 70% (§9 pins
// this policy explicitly since the source material was inconsistent).
//
// Grounded on light-std's storage/table.h (parallel-array layout, reserve
// growth policy) with the probe/deletion policy replaced per §9's fixed
// resolution, and tinyrange-rtg's std/runtime bump-allocator idiom for how
// a single allocation backs multiple logical arrays.
package htable

import (
	"github.com/golang/glog"
	"github.com/light-std/ls/alloc"
)

const minCapacity = 16
const maxLoadFactorNum = 7
const maxLoadFactorDen = 10

// HashFunc computes a (possibly zero) hash for a key; Table biases zero
// hashes to a non-zero sentinel internally so hashes[i]==0 can mean empty.
type HashFunc[K comparable] func(k K) uint64

// Table is the open-addressed hash table.
type Table[K comparable, V any] struct {
	keys    []K
	values  []V
	hashes  []uint64
	count   int
	hashFn  HashFunc[K]
	a       alloc.Allocator
}

// New returns an empty table using hashFn for key hashing and a for
// backing-array allocation.
func New[K comparable, V any](hashFn HashFunc[K], a alloc.Allocator) *Table[K, V] {
	return &Table[K, V]{hashFn: hashFn, a: a}
}

// Count returns the number of live entries.
func (t *Table[K, V]) Count() int { return t.count }

// Cap returns the current slot capacity.
func (t *Table[K, V]) Cap() int { return len(t.hashes) }

func biasHash(h uint64) uint64 {
	if h == 0 {
		return 1
	}
	return h
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Resize grows capacity to at least next_pow2(max(n, 16)), re-inserting
// every live entry (§4.7).
func (t *Table[K, V]) Resize(n int) {
	target := nextPow2(n)
	if target < minCapacity {
		target = minCapacity
	}
	if target <= len(t.hashes) {
		return
	}

	oldKeys, oldValues, oldHashes := t.keys, t.values, t.hashes
	t.keys = alloc.AllocSlice[K](t.a, target, 0)
	t.values = alloc.AllocSlice[V](t.a, target, 0)
	t.hashes = alloc.AllocSlice[uint64](t.a, target, 0)
	t.count = 0

	for i, h := range oldHashes {
		if h == 0 {
			continue
		}
		t.insertHashed(h, oldKeys[i], oldValues[i])
	}
	glog.V(1).Infof("htable: resized to capacity %d (%d live entries)", target, t.count)
}

func (t *Table[K, V]) ensureCapacityFor(n int) {
	if len(t.hashes) == 0 {
		t.Resize(minCapacity)
		return
	}
	if (n+1)*maxLoadFactorDen > len(t.hashes)*maxLoadFactorNum {
		t.Resize(len(t.hashes) * 2)
	}
}

func (t *Table[K, V]) insertHashed(hash uint64, key K, value V) {
	capacity := len(t.hashes)
	slot := int(hash & uint64(capacity-1))
	dist := 0
	for {
		if t.hashes[slot] == 0 {
			t.hashes[slot] = hash
			t.keys[slot] = key
			t.values[slot] = value
			t.count++
			return
		}
		if t.hashes[slot] == hash && t.keys[slot] == key {
			t.values[slot] = value
			return
		}
		// Robin-hood: displace the resident entry if it's closer to its
		// ideal slot than the one we're inserting.
		existingDist := probeDistance(t.hashes[slot], slot, capacity)
		if existingDist < dist {
			t.hashes[slot], hash = hash, t.hashes[slot]
			t.keys[slot], key = key, t.keys[slot]
			t.values[slot], value = value, t.values[slot]
			dist = existingDist
		}
		slot = (slot + 1) & (capacity - 1)
		dist++
	}
}

func probeDistance(hash uint64, slot, capacity int) int {
	ideal := int(hash & uint64(capacity-1))
	if slot >= ideal {
		return slot - ideal
	}
	return capacity + slot - ideal
}

// Set inserts or overwrites the value for key (§4.7 "add/set").
func (t *Table[K, V]) Set(key K, value V) {
	t.ensureCapacityFor(t.count)
	hash := biasHash(t.hashFn(key))
	t.insertHashed(hash, key, value)
}

// Search returns the value for key and whether it was found.
func (t *Table[K, V]) Search(key K) (V, bool) {
	var zero V
	if len(t.hashes) == 0 {
		return zero, false
	}
	capacity := len(t.hashes)
	hash := biasHash(t.hashFn(key))
	slot := int(hash & uint64(capacity-1))
	dist := 0
	for {
		h := t.hashes[slot]
		if h == 0 {
			return zero, false
		}
		if h == hash && t.keys[slot] == key {
			return t.values[slot], true
		}
		if probeDistance(h, slot, capacity) < dist {
			return zero, false
		}
		slot = (slot + 1) & (capacity - 1)
		dist++
	}
}

// Has reports whether key is present.
func (t *Table[K, V]) Has(key K) bool {
	_, ok := t.Search(key)
	return ok
}

// Delete removes key if present, backward-shifting the probe cluster
// (robin-hood deletion) so later lookups stay correct (§4.7).
func (t *Table[K, V]) Delete(key K) bool {
	if len(t.hashes) == 0 {
		return false
	}
	capacity := len(t.hashes)
	hash := biasHash(t.hashFn(key))
	slot := int(hash & uint64(capacity-1))
	dist := 0
	found := -1
	for {
		h := t.hashes[slot]
		if h == 0 {
			return false
		}
		if h == hash && t.keys[slot] == key {
			found = slot
			break
		}
		if probeDistance(h, slot, capacity) < dist {
			return false
		}
		slot = (slot + 1) & (capacity - 1)
		dist++
	}

	cur := found
	for {
		next := (cur + 1) & (capacity - 1)
		if t.hashes[next] == 0 || probeDistance(t.hashes[next], next, capacity) == 0 {
			var zeroK K
			var zeroV V
			t.hashes[cur] = 0
			t.keys[cur] = zeroK
			t.values[cur] = zeroV
			break
		}
		t.hashes[cur] = t.hashes[next]
		t.keys[cur] = t.keys[next]
		t.values[cur] = t.values[next]
		cur = next
	}
	t.count--
	return true
}

// Entry is one (key, value) pair yielded by iteration.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Each visits every occupied slot in index order (§4.7: deterministic given
// insertion history, order not otherwise specified).
func (t *Table[K, V]) Each(fn func(Entry[K, V])) {
	for i, h := range t.hashes {
		if h == 0 {
			continue
		}
		fn(Entry[K, V]{Key: t.keys[i], Value: t.values[i]})
	}
}
