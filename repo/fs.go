// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package repo

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	mmap "github.com/edsrzf/mmap-go"
)

// fs.go implements the filesystem Repository backend: rooted at a
// directory, ids are relative paths. Open memory-maps the file rather
// than reading it fully (grounded in a sibling example repository's
// binary-format parser, which maps its input instead of read()-ing it):
// a component that needs the bytes to outlive the load keeps the
// Source (and hence the mapping) alive.
type Filesystem struct {
	root string

	watcher watcher // platform-specific change detector; see watch_*.go.

	mu      sync.Mutex
	tokens  map[string]uint64 // id -> token, set by Watch.
}

// watcher is satisfied by the platform-specific file-watch facility
// (inotify on Linux, a portable poller elsewhere).
type watcher interface {
	add(absPath, id string) error
	poll() (id string, ok bool)
	close() error
}

// NewFilesystem roots a Repository at dir, which must already exist.
func NewFilesystem(dir string) (*Filesystem, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	fsRepo := &Filesystem{root: abs, tokens: map[string]uint64{}}
	fsRepo.watcher = newWatcher()
	return fsRepo, nil
}

func (f *Filesystem) resolve(id string) string {
	return filepath.Join(f.root, filepath.FromSlash(id))
}

func (f *Filesystem) Path(id string) (string, bool) { return f.resolve(id), true }

func (f *Filesystem) Open(id string) (Source, error) {
	full := f.resolve(id)
	file, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return Source{}, ErrNotFound
		}
		return Source{}, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return Source{}, err
	}
	if info.Size() == 0 {
		// mmap-go rejects zero-length mappings; an empty source is
		// still a valid (if useless) blob.
		file.Close()
		return Source{Format: formatFromExt(id), ModTime: info.ModTime()}, nil
	}
	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		file.Close()
		return Source{}, err
	}
	src := Source{
		Data:    []byte(data),
		Format:  formatFromExt(id),
		ModTime: info.ModTime(),
		closer: func() error {
			unmapErr := data.Unmap()
			closeErr := file.Close()
			if unmapErr != nil {
				return unmapErr
			}
			return closeErr
		},
	}
	return src, nil
}

func (f *Filesystem) Save(id string, data []byte) error {
	full := f.resolve(id)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}

func (f *Filesystem) Query(glob string, maxResults int, handler QueryHandler) error {
	matched := 0
	err := filepath.WalkDir(f.root, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, relErr := filepath.Rel(f.root, p)
		if relErr != nil {
			return nil
		}
		id := filepath.ToSlash(rel)
		ok, matchErr := path.Match(glob, id)
		if matchErr != nil {
			return matchErr
		}
		if !ok {
			return nil
		}
		matched++
		if matched > maxResults {
			return io.EOF // early termination sentinel, swallowed below.
		}
		if !handler(id) {
			return io.EOF
		}
		return nil
	})
	if err == io.EOF {
		return nil
	}
	return err
}

func (f *Filesystem) Cache(id string, modTime time.Time, blob []byte) error {
	if err := f.Save(id, blob); err != nil {
		return err
	}
	return os.Chtimes(f.resolve(id), modTime, modTime)
}

func (f *Filesystem) Watch(id string, token uint64) error {
	f.mu.Lock()
	f.tokens[id] = token
	f.mu.Unlock()
	return f.watcher.add(f.resolve(id), id)
}

func (f *Filesystem) Poll() (uint64, bool) {
	id, ok := f.watcher.poll()
	if !ok {
		return 0, false
	}
	f.mu.Lock()
	token, known := f.tokens[id]
	f.mu.Unlock()
	if !known {
		return 0, false
	}
	return token, true
}

func (f *Filesystem) Destroy() error {
	return f.watcher.close()
}
