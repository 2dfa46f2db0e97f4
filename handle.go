// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package asset

// handle.go implements the asset manager's generational handle store.
// It replaces an ECS entity id with a dedicated slotmap-style index so
// the manager does not depend on any particular ECS implementation.

// idBits/genBits split a Handle the same way an ECS entity id is
// conventionally split: enough index bits to address a very large
// number of live assets, the remainder spent on a generation counter
// that invalidates stale handles after a slot is recycled.
const (
	idBits  = 20
	genBits = 12

	maxIndex      = 1<<idBits - 1
	maxGeneration = 1<<genBits - 1

	// maxFree bounds how many freed slots accumulate before they are
	// recycled. Keeping a cushion of unrecycled slots lowers the odds
	// that a recycled index collides with a handle a caller is still
	// holding (and whose generation has not yet been bumped in its mind).
	maxFree = 1 << (genBits - 1)
)

// Handle is a stable, opaque identifier for an asset. It is minted on
// first Lookup and remains valid (though its Flags may change) for the
// lifetime of the Manager. A Handle whose generation does not match the
// store's current generation for that index is stale.
type Handle struct {
	index      uint32
	generation uint16
}

// Valid reports whether h was ever minted by a handle table.
func (h Handle) Valid() bool { return h.generation != 0 || h.index != 0 }

// handleTable is a generational slotmap: generations[i] is the current
// generation for slot i, bumped each time the slot is recycled. A Handle
// is valid precisely when its generation matches generations[index].
type handleTable struct {
	generations []uint16
	free        []uint32
}

// create allocates a new slot, recycling one from the free list once
// there is a sufficient cushion, exactly as the model codebase's own
// entity-id allocator does to keep generation turnover slow.
func (t *handleTable) create() Handle {
	if len(t.free) > maxFree {
		index := t.free[0]
		t.free = t.free[1:]
		return Handle{index: index, generation: t.generations[index]}
	}
	index := uint32(len(t.generations))
	if index > maxIndex {
		panic("asset: handle table exhausted")
	}
	t.generations = append(t.generations, 1)
	return Handle{index: index, generation: 1}
}

// valid reports whether h still refers to a live slot.
func (t *handleTable) valid(h Handle) bool {
	return int(h.index) < len(t.generations) && t.generations[h.index] == h.generation
}

// dispose recycles h's slot, bumping its generation so any copies of h
// still held elsewhere are detected as stale on their next use.
func (t *handleTable) dispose(h Handle) {
	if !t.valid(h) {
		return
	}
	if t.generations[h.index] < maxGeneration {
		t.generations[h.index]++
	} else {
		t.generations[h.index] = 1
	}
	t.free = append(t.free, h.index)
}
