//go:build linux

// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package repo

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// watch_linux.go backs the filesystem repository's change detection
// with inotify, reached through golang.org/x/sys/unix — the same
// dependency the model codebase pulls in for its own low-level platform
// bindings (there, GPU and audio syscalls; here, filesystem syscalls).

const inotifyEventHeaderSize = unix.SizeofInotifyEvent

type inotifyWatcher struct {
	fd int

	mu      sync.Mutex
	byWatch map[int32]string // watch descriptor -> id
	pending []string
}

func newWatcher() watcher {
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK)
	if err != nil {
		return &nullWatcher{}
	}
	return &inotifyWatcher{fd: fd, byWatch: map[int32]string{}}
}

func (w *inotifyWatcher) add(absPath, id string) error {
	wd, err := unix.InotifyAddWatch(w.fd, absPath, unix.IN_MODIFY|unix.IN_CLOSE_WRITE|unix.IN_MOVE_SELF)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.byWatch[int32(wd)] = id
	w.mu.Unlock()
	return nil
}

// drain reads whatever inotify events are currently available without
// blocking, translating watch descriptors back to ids.
func (w *inotifyWatcher) drain() {
	buf := make([]byte, 64*(inotifyEventHeaderSize+unix.PathMax+1))
	n, err := unix.Read(w.fd, buf)
	if err != nil || n <= 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	offset := 0
	for offset+inotifyEventHeaderSize <= n {
		raw := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
		if id, ok := w.byWatch[raw.Wd]; ok {
			w.pending = append(w.pending, id)
		}
		offset += inotifyEventHeaderSize + int(raw.Len)
	}
}

func (w *inotifyWatcher) poll() (string, bool) {
	w.drain()
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return "", false
	}
	id := w.pending[0]
	w.pending = w.pending[1:]
	return id, true
}

func (w *inotifyWatcher) close() error {
	return unix.Close(w.fd)
}

// nullWatcher is used when inotify initialization fails (e.g. inside a
// restrictive sandbox); change detection is simply unavailable, which is
// fine since watch/poll are optional Repository operations.
type nullWatcher struct{}

func (*nullWatcher) add(absPath, id string) error { return nil }
func (*nullWatcher) poll() (string, bool)         { return "", false }
func (*nullWatcher) close() error                 { return nil }
