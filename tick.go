// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package asset

import "time"

// tick.go implements the reconciliation tick: fold pending ref-count
// deltas, resolve state transitions, start new loads within a per-tick
// time budget, advance in-flight loads, age out unreferenced handles,
// poll the repository for external changes, and flush queued cache
// writes. The model codebase drives an equivalent reconciliation as an
// ECS system ordered each frame; here it is a single explicit method so
// the manager has no dependency on any particular scheduler.

// Tick runs one reconciliation pass. It is not safe to call Tick
// concurrently with Lookup/Acquire/Release/Reload/RegisterDep/
// RequestCache from another goroutine: all mutation of manager state
// happens on the owning goroutine.
func (m *Manager) Tick() {
	for i := range m.records {
		h := Handle{index: uint32(i), generation: m.handles.generations[i]}
		m.settle(h)
	}

	for i := range m.records {
		if !m.loading[i].active {
			continue
		}
		h := Handle{index: uint32(i), generation: m.handles.generations[i]}
		m.advanceLoad(h)
	}

	deadline := time.Now().Add(m.config.LoadBudget)
	for i := range m.records {
		if m.config.LoadBudget > 0 && time.Now().After(deadline) {
			break
		}
		h := Handle{index: uint32(i), generation: m.handles.generations[i]}
		m.maybeStartLoad(h)
	}
	m.pollChanges()
	m.flushCache()
}

// settle folds one handle's pending dirty delta into its refcount and
// advances its state machine.
func (m *Manager) settle(h Handle) {
	i := h.index
	acq, rel, wasDirty := m.dirties[i].drain()
	if !wasDirty && m.records[i].refCount == 0 && m.records[i].flags == 0 {
		return
	}

	r := &m.records[i]
	delta := int32(acq) - int32(rel)
	next := int32(r.refCount) + delta
	if next < 0 {
		next = 0
	}
	wasZero := r.refCount == 0
	r.refCount = uint16(next)

	switch {
	case r.refCount > 0 && r.flags&FlagFailed != 0 && wasZero:
		// Reacquiring a failed asset gives it a fresh attempt.
		r.flags &^= FlagFailed
	case r.refCount > 0 && r.flags&FlagCleanup != 0:
		r.flags &^= FlagCleanup
		r.unloadTicks = 0
	case r.refCount == 0 && r.flags&FlagCleanup != 0:
		// Cleanup is transient: one tick after the countdown finishes,
		// the record falls back to Idle.
		r.flags = 0
		r.unloadTicks = 0
		m.detach(h)
	case r.refCount == 0 && r.active():
		r.unloadTicks++
		delay := m.unloadDelay()
		if r.flags&FlagInstantUnload != 0 {
			delay = 0
		}
		if r.unloadTicks >= delay {
			r.flags &^= stateFlags
			r.flags |= FlagCleanup
			r.flags &^= FlagChanged | FlagInstantUnload
			r.unloadTicks = 0
			m.loading[i] = loadState{}
		}
	case r.refCount == 0 && r.flags == 0:
		// Never loaded and unreferenced: nothing to do.
	}
}

// maybeStartLoad opens the backing source and dispatches to the
// registered Loader for h if it is refcounted, not already active, and
// not mid-cooldown in Cleanup.
func (m *Manager) maybeStartLoad(h Handle) {
	i := h.index
	r := &m.records[i]
	if r.refCount == 0 || r.active() || r.flags&FlagCleanup != 0 {
		return
	}

	tag := FormatFromID(r.id)
	loader := m.loaderFor(tag)
	if loader == nil {
		r.flags |= FlagLoading
		m.fail(h, ErrUnsupportedFormat)
		return
	}

	if m.repo == nil {
		r.flags |= FlagLoading
		m.fail(h, ErrSourceOpenFailed)
		return
	}
	src, err := m.repo.Open(r.id)
	if err != nil {
		r.flags |= FlagLoading
		m.fail(h, ErrSourceOpenFailed)
		return
	}

	r.flags &^= stateFlags
	r.flags |= FlagLoading
	r.flags &^= FlagChanged | FlagInstantUnload
	r.loadFormat = tag
	r.lastFormat = tag
	r.lastModTime = src.ModTime.UnixNano()
	r.loadCount++

	if m.config.TrackChanges {
		r.watchToken = uint64(h.index)<<32 | uint64(h.generation)
		_ = m.repo.Watch(r.id, r.watchToken)
	}

	m.loading[i] = loadState{active: true, src: src, fn: loader}
	m.advanceLoad(h)
}

// advanceLoad invokes the in-flight loader for h once, applying its
// (done, err) result. A loader that returns done=false is resumed on
// the next tick with the same handle and source.
func (m *Manager) advanceLoad(h Handle) {
	i := h.index
	ls := &m.loading[i]
	if !ls.active {
		return
	}
	r := &m.records[i]

	done, err := ls.fn(m, h, r.id, ls.src)
	if !done {
		return
	}
	ls.active = false
	if err != nil {
		m.fail(h, err)
		return
	}
	r.flags &^= stateFlags
	r.flags |= FlagLoaded
}

// pollChanges drains the repository's change stream (when tracked),
// marking affected handles and their dependents for instant reload. A
// change observed this tick becomes visible to dependents on the next
// one, since dependents are only walked here, not re-entered.
func (m *Manager) pollChanges() {
	if !m.config.TrackChanges || m.repo == nil {
		return
	}
	for {
		token, ok := m.repo.Poll()
		if !ok {
			return
		}
		for i := range m.records {
			if m.records[i].watchToken != token {
				continue
			}
			h := Handle{index: uint32(i), generation: m.handles.generations[i]}
			m.records[i].flags |= FlagChanged | FlagInstantUnload
			m.dirties[i].markDirty()
			m.deps[i].forEach(func(dep Handle) {
				if m.handles.valid(dep) {
					m.records[dep.index].flags |= FlagChanged | FlagInstantUnload
					m.dirties[dep.index].markDirty()
				}
			})
			_ = h
		}
	}
}

// flushCache persists every cache request queued this tick. Failures
// are logged and discarded: a cache miss never blocks the asset it was
// written for.
func (m *Manager) flushCache() {
	if len(m.pendingCache) == 0 {
		return
	}
	for _, req := range m.pendingCache {
		if !m.handles.valid(req.handle) || m.repo == nil {
			continue
		}
		id := m.records[req.handle.index].id
		modTime := time.Unix(0, m.records[req.handle.index].lastModTime)
		if err := m.repo.Cache(id, modTime, req.blob); err != nil {
			m.log.Warn("asset cache write failed", "id", id, "error", err)
		}
	}
	m.pendingCache = m.pendingCache[:0]
}
