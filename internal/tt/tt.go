// Package tt implements the transposition table: a fixed-capacity,
// power-of-two-sized, direct-replacement table with a lock-free per-slot
// gate. It is grounded on the alwaysReplaceTransTable design (as opposed to
// the deep-replace or clustered variants also present in the reference
// corpus) because the spec calls for direct replacement with no bucketing.
package tt

import "sync/atomic"

// Bound classifies a stored value relative to the search window that
// produced it.
type Bound uint8

const (
	Unused Bound = iota
	Exact
	Lower
	Upper
)

type entry struct {
	gate  int32
	hash  uint64
	score int32
	move  uint32
	depth int8
	bound Bound
}

// Table is safe for concurrent Probe/Store from multiple search workers: a
// CAS gate around each slot guarantees a reader never observes a torn
// write across the key/score/move/depth/bound fields. The gate does not
// spin: a Probe that finds it taken reports a miss, and a Store that finds
// it taken is dropped.
type Table struct {
	entries []entry
	mask    uint64
}

// DefaultCapacity matches the reference implementation's
// max_transpositions_size = 1 << 27.
const DefaultCapacity = 1 << 27

// New allocates a table whose capacity is rounded down to the nearest power
// of two not exceeding capacity.
func New(capacity int) *Table {
	size := roundPowerOfTwo(capacity)
	return &Table{
		entries: make([]entry, size),
		mask:    uint64(size - 1),
	}
}

func roundPowerOfTwo(n int) int {
	x := 1
	for x<<1 <= n {
		x <<= 1
	}
	return x
}

// Clear resets every slot.
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = entry{}
	}
}

// Probe looks up hash. ok is false on a miss (empty slot, hash collision,
// or a slot gate held by another worker); move is an opaque encoding the
// caller assigned at Store time.
func (t *Table) Probe(hash uint64) (score, depth int, bound Bound, move uint32, ok bool) {
	slot := &t.entries[hash&t.mask]
	if !atomic.CompareAndSwapInt32(&slot.gate, 0, 1) {
		return 0, 0, Unused, 0, false
	}
	defer atomic.StoreInt32(&slot.gate, 0)
	if slot.bound == Unused || slot.hash != hash {
		return 0, 0, Unused, 0, false
	}
	return int(slot.score), int(slot.depth), slot.bound, slot.move, true
}

// Store always replaces the slot's entry regardless of stored depth, and
// never buckets; the only skipped write is one whose slot gate is held by
// another worker.
func (t *Table) Store(hash uint64, score, depth int, bound Bound, move uint32) {
	slot := &t.entries[hash&t.mask]
	if !atomic.CompareAndSwapInt32(&slot.gate, 0, 1) {
		return
	}
	slot.hash = hash
	slot.score = int32(score)
	slot.depth = int8(depth)
	slot.bound = bound
	slot.move = move
	atomic.StoreInt32(&slot.gate, 0)
}
