// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package repo

import "time"

// pack.go declares the pack-file Repository backend as a deliberate
// stub: every optional operation returns ErrNotSupported and Open
// always fails, matching the reference repo.c's dispatch-table shape
// (a backend may leave any function pointer but open/destroy null).
// A real packed-archive format is future grounding work.
type Pack struct {
	path string
}

// NewPack declares (but does not open) a pack file at path.
func NewPack(path string) *Pack { return &Pack{path: path} }

func (p *Pack) Path(id string) (string, bool)                           { return "", false }
func (p *Pack) Open(id string) (Source, error)                          { return Source{}, ErrNotSupported }
func (p *Pack) Save(id string, data []byte) error                       { return ErrNotSupported }
func (p *Pack) Query(glob string, max int, handler QueryHandler) error  { return ErrNotSupported }
func (p *Pack) Cache(id string, modTime time.Time, blob []byte) error   { return ErrNotSupported }
func (p *Pack) Watch(id string, token uint64) error                     { return ErrNotSupported }
func (p *Pack) Poll() (uint64, bool)                                    { return 0, false }
func (p *Pack) Destroy() error                                          { return nil }
