// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package repo

import (
	"path"
	"sort"
	"strings"
	"time"
)

// mem.go implements the in-memory Repository backend: a sorted array of
// (idHash, bytes) entries, ported from the reference repo_mem.c (which
// keeps a DynArray sorted on idHash and binary-searches it on open).
// There is no change detection and no cache; both are optional
// Repository operations this backend simply declines.

type memEntry struct {
	id     string
	idHash uint64
	data   []byte
}

// Memory is the in-memory Repository backend.
type Memory struct {
	entries []memEntry // sorted by idHash
}

// NewMemory builds a Memory repository from an initial id→bytes set, in
// the same spirit as the reference asset_repo_create_mem: every record
// is inserted once, in sorted position, up front.
func NewMemory(records map[string][]byte) *Memory {
	m := &Memory{entries: make([]memEntry, 0, len(records))}
	for id, data := range records {
		m.entries = append(m.entries, memEntry{id: id, idHash: idHash(id), data: data})
	}
	sort.Slice(m.entries, func(i, j int) bool { return m.entries[i].idHash < m.entries[j].idHash })
	return m
}

// Put inserts or replaces the entry for id, maintaining sort order.
func (m *Memory) Put(id string, data []byte) {
	h := idHash(id)
	i := sort.Search(len(m.entries), func(i int) bool { return m.entries[i].idHash >= h })
	if i < len(m.entries) && m.entries[i].idHash == h {
		m.entries[i].data = data
		return
	}
	m.entries = append(m.entries, memEntry{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = memEntry{id: id, idHash: h, data: data}
}

func (m *Memory) find(id string) (*memEntry, bool) {
	h := idHash(id)
	i := sort.Search(len(m.entries), func(i int) bool { return m.entries[i].idHash >= h })
	if i < len(m.entries) && m.entries[i].idHash == h {
		return &m.entries[i], true
	}
	return nil, false
}

func (m *Memory) Path(id string) (string, bool) { return "", false }

func (m *Memory) Open(id string) (Source, error) {
	entry, ok := m.find(id)
	if !ok {
		return Source{}, ErrNotFound
	}
	return Source{Data: entry.data, Format: formatFromExt(id)}, nil
}

func (m *Memory) Save(id string, data []byte) error {
	m.Put(id, data)
	return nil
}

func (m *Memory) Query(glob string, maxResults int, handler QueryHandler) error {
	matched := 0
	for _, e := range m.entries {
		ok, err := path.Match(glob, e.id)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		matched++
		if matched > maxResults {
			return nil
		}
		if !handler(e.id) {
			return nil
		}
	}
	return nil
}

func (m *Memory) Cache(id string, modTime time.Time, blob []byte) error { return ErrNotSupported }
func (m *Memory) Watch(id string, token uint64) error                   { return ErrNotSupported }
func (m *Memory) Poll() (uint64, bool)                                  { return 0, false }
func (m *Memory) Destroy() error                                        { return nil }

// idHash is the 32-bit-accepting, 64-bit-wide string hash this package
// uses for sorted lookup. It is unrelated to the manager's own id
// interning; repositories are free to hash however they like.
func idHash(s string) uint64 {
	// FNV-1a, 64-bit: a plain, dependency-free hash adequate for sorting
	// and binary search; collisions are no worse here than they are for
	// the manager's own 32-bit id hash, and are likewise accepted as an
	// unrecoverable event rather than guarded against.
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211
	h := uint64(offset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime64
	}
	return h
}

func formatFromExt(id string) string {
	ext := path.Ext(id)
	return strings.TrimPrefix(strings.ToLower(ext), ".")
}
