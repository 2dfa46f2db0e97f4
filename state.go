// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package asset

import "sync/atomic"

// state.go implements the per-handle state machine, the dirty-record
// combinator, and the dependency-edge storage. Ported from the
// reference manager's AssetFlags/AssetComp/AssetDirtyComp/
// AssetDependencyComp types.

// Flags mirrors the reference AssetFlags: exactly one of
// {Loading, Loaded, Failed, Cleanup} is set at a time (Idle is the
// absence of all four); Changed and InstantUnload are independent bits
// set by change propagation and cleared once consumed.
type Flags uint8

const (
	FlagLoading Flags = 1 << iota
	FlagLoaded
	FlagFailed
	FlagCleanup
	FlagChanged
	FlagInstantUnload
)

// stateFlags is the subset of Flags that are mutually exclusive load
// states; a record is active when any of these is set.
const stateFlags = FlagLoading | FlagLoaded | FlagFailed | FlagCleanup

// record is the per-handle asset record.
type record struct {
	id          string
	refCount    uint16
	loadCount   uint16
	unloadTicks uint16
	flags       Flags
	lastFormat  FormatTag
	lastModTime int64 // unix nanos; valid once loadCount > 0.

	watchToken uint64 // token registered with the repository on load start.
	loadFormat FormatTag
}

func (r *record) active() bool { return r.flags&stateFlags != 0 }

// dirty is the per-handle combinable dirty record. numAcquire/
// numRelease combine additively across concurrent callers, mapping
// cleanly onto a per-id atomic pair.
type dirty struct {
	numAcquire int32
	numRelease int32
	present    int32 // 1 while this handle has an outstanding dirty record.
}

// acquire records a pending increment. Safe for concurrent callers.
func (d *dirty) acquire() {
	atomic.AddInt32(&d.numAcquire, 1)
	atomic.StoreInt32(&d.present, 1)
}

// release records a pending decrement. Safe for concurrent callers.
func (d *dirty) release() {
	atomic.AddInt32(&d.numRelease, 1)
	atomic.StoreInt32(&d.present, 1)
}

// markDirty flags the handle dirty without changing the acquire/release
// tally — used by reload and change propagation.
func (d *dirty) markDirty() { atomic.StoreInt32(&d.present, 1) }

// drain consumes and clears the pending deltas; only the tick goroutine
// (the sole consumer) may call this.
func (d *dirty) drain() (acquire, release int32, wasDirty bool) {
	acquire = atomic.SwapInt32(&d.numAcquire, 0)
	release = atomic.SwapInt32(&d.numRelease, 0)
	wasDirty = atomic.SwapInt32(&d.present, 0) != 0
	return acquire, release, wasDirty
}

// dependencySet stores the dependents of one dependency handle, using
// the source's single-or-many representation switch: a bare Handle
// until the second distinct insert, then a slice. This keeps the common
// case (one dependent) free of a slice allocation.
type dependencySet struct {
	single Handle
	many   []Handle
	count  int // 0, 1 (single valid), or len(many) (many valid).
}

func (s *dependencySet) add(h Handle) {
	switch s.count {
	case 0:
		s.single = h
		s.count = 1
	case 1:
		if s.single == h {
			return
		}
		s.many = append(s.many[:0], s.single, h)
		s.count = 2
	default:
		for _, existing := range s.many {
			if existing == h {
				return
			}
		}
		s.many = append(s.many, h)
		s.count = len(s.many)
	}
}

func (s *dependencySet) forEach(fn func(Handle)) {
	switch {
	case s.count == 1:
		fn(s.single)
	case s.count > 1:
		for _, h := range s.many {
			fn(h)
		}
	}
}
