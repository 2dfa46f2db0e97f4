// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package asset implements the asset manager: a process-wide registry
// that owns a generational Handle per asset, tracks reference counts,
// drives multi-frame asynchronous loads, detects source changes,
// propagates invalidation across a dependency graph, and governs
// deferred unloading. It consumes a repo.Repository for storage and a
// table of format-specific Loader functions; it does not itself know
// how to parse any particular asset format.
package asset

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"path"
	"sort"
	"time"

	"github.com/galvanized/forge/repo"
)

// Source is the opened blob handed to a Loader. It is the repository's
// own Source type; the manager does not wrap it further.
type Source = repo.Source

// Config holds the manager's tunables. See the config package for the
// YAML-backed loader that produces one of these.
type Config struct {
	TrackChanges     bool          // poll the repository's change stream each tick.
	DelayUnload      bool          // false collapses UnloadDelayTicks to 0 (instant unload always).
	UnloadDelayTicks uint16        // ticks at zero refcount before Cleanup.
	LoadBudget       time.Duration // per-tick time budget for starting new loads.
	MaxQueryResults  int           // cap on Query results.
}

// DefaultConfig returns the manager's out-of-the-box tunables.
func DefaultConfig() Config {
	return Config{
		TrackChanges:     true,
		DelayUnload:      true,
		UnloadDelayTicks: 500,
		LoadBudget:       2 * time.Millisecond,
		MaxQueryResults:  512,
	}
}

type lookupEntry struct {
	idHash uint32
	handle Handle
}

// cacheRequest is the per-handle transient queued by a loader after a
// successful build, consumed by the cache writer at end of tick.
type cacheRequest struct {
	handle Handle
	blob   []byte
}

// Manager is the asset manager. The zero value is not usable; construct
// with NewManager.
type Manager struct {
	repo   repo.Repository
	config Config
	loaders loaderTable

	handles handleTable

	// lookup is the sorted idHash -> Handle index, binary-searched on
	// lookup and inserted into on first request; mutated only from
	// Lookup, which callers must only invoke from the owning goroutine.
	lookup []lookupEntry

	// Parallel, handle-index-keyed slices. All grow together in Lookup.
	records []record
	dirties []dirty
	deps    []dependencySet // deps[i] = dependents of handle i.

	pendingCache []cacheRequest
	log          *slog.Logger

	// components holds each loaded handle's attached runtime value; see
	// components.go.
	components map[Handle]any

	// loaderState holds a loader's own transient, per-handle bookkeeping
	// across suspended ticks (e.g. the font-texture bundle's dependency
	// wait list); distinct from components so a multi-tick loader can
	// track its own progress without colliding with the final attached
	// value. See components.go.
	loaderState map[Handle]any

	// In-flight loader state, parallel to records/dirties/deps. A loader
	// is free to ignore the re-supplied Source on ticks after the first;
	// it is re-passed only so multi-frame loaders that do consult it
	// (e.g. to re-read bytes) need not be special-cased.
	loading []loadState
}

type loadState struct {
	active bool
	src    Source
	fn     Loader
}

// NewManager constructs a Manager over r using cfg. Pass a nil logger to
// use slog.Default().
func NewManager(r repo.Repository, cfg Config, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{repo: r, config: cfg, log: log}
}

func idHash32(id string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return h.Sum32()
}

// Lookup is idempotent and stable: it creates the handle on first call
// for id and returns the same Handle on every subsequent call. It is
// the only operation that mutates the lookup table, and must only be
// called from the owning (main) goroutine.
func (m *Manager) Lookup(id string) Handle {
	h := idHash32(id)
	i := sort.Search(len(m.lookup), func(i int) bool { return m.lookup[i].idHash >= h })
	if i < len(m.lookup) && m.lookup[i].idHash == h {
		return m.lookup[i].handle
	}

	handle := m.handles.create()
	m.growTo(int(handle.index) + 1)
	m.records[handle.index] = record{id: id}

	m.lookup = append(m.lookup, lookupEntry{})
	copy(m.lookup[i+1:], m.lookup[i:])
	m.lookup[i] = lookupEntry{idHash: h, handle: handle}
	return handle
}

func (m *Manager) growTo(n int) {
	for len(m.records) < n {
		m.records = append(m.records, record{})
		m.dirties = append(m.dirties, dirty{})
		m.deps = append(m.deps, dependencySet{})
		m.loading = append(m.loading, loadState{})
	}
}

// Acquire increments h's pending-acquire count; loading begins on the
// next Tick if the net refcount transitions to positive.
func (m *Manager) Acquire(h Handle) {
	if m.handles.valid(h) {
		m.dirties[h.index].acquire()
	}
}

// Release is the symmetric decrement. Loading in flight is not
// cancelled; the asset becomes eligible for unload once it reaches zero
// refcount and the configured delay elapses.
func (m *Manager) Release(h Handle) {
	if m.handles.valid(h) {
		m.dirties[h.index].release()
	}
}

// Reload marks h changed and schedules an instant unload, without
// propagating to dependents.
func (m *Manager) Reload(h Handle) {
	if !m.handles.valid(h) {
		return
	}
	m.records[h.index].flags |= FlagChanged | FlagInstantUnload
	m.dirties[h.index].markDirty()
}

// RegisterDep records a directed dependent -> dependency edge. Monotonic;
// there is no unregister.
func (m *Manager) RegisterDep(dependent, dependency Handle) {
	if !m.handles.valid(dependent) || !m.handles.valid(dependency) {
		return
	}
	m.deps[dependency.index].add(dependent)
}

// Query delegates to the repository, capping results at
// Config.MaxQueryResults.
func (m *Manager) Query(pattern string) ([]string, error) {
	if m.repo == nil {
		return nil, ErrNotSupported
	}
	max := m.config.MaxQueryResults
	if max <= 0 {
		max = 512
	}
	var ids []string
	err := m.repo.Query(pattern, max, func(id string) bool {
		ids = append(ids, id)
		return len(ids) < max
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Save writes bytes back through the repository. id must carry an
// extension.
func (m *Manager) Save(id string, data []byte) error {
	if path.Ext(id) == "" {
		return ErrNoExtension
	}
	if m.repo == nil {
		return ErrNotSupported
	}
	return m.repo.Save(id, data)
}

// RequestCache queues blob to be persisted for h's id at end of the
// current tick. Loaders call this after a successful build.
func (m *Manager) RequestCache(h Handle, blob []byte) {
	m.pendingCache = append(m.pendingCache, cacheRequest{handle: h, blob: blob})
}

// Flags returns h's current state flags.
func (m *Manager) Flags(h Handle) Flags {
	if !m.handles.valid(h) {
		return 0
	}
	return m.records[h.index].flags
}

// ID returns the interned id string for h.
func (m *Manager) ID(h Handle) string {
	if !m.handles.valid(h) {
		return ""
	}
	return m.records[h.index].id
}

// RefCount returns h's current reference count.
func (m *Manager) RefCount(h Handle) uint16 {
	if !m.handles.valid(h) {
		return 0
	}
	return m.records[h.index].refCount
}

func (m *Manager) unloadDelay() uint16 {
	if !m.config.DelayUnload {
		return 0
	}
	return m.config.UnloadDelayTicks
}

// fail transitions h to Failed, marks its dependents for instant-unload,
// and logs the failure with enough context to trace it back to the
// originating id and handle.
func (m *Manager) fail(h Handle, err error) {
	r := &m.records[h.index]
	r.flags &^= stateFlags
	r.flags |= FlagFailed
	m.log.Error("asset load failed", "id", r.id, "handle", fmt.Sprintf("%d/%d", h.index, h.generation), "error", err)
	m.deps[h.index].forEach(func(dep Handle) {
		if m.handles.valid(dep) {
			m.records[dep.index].flags |= FlagChanged | FlagInstantUnload
			m.dirties[dep.index].markDirty()
		}
	})
}
