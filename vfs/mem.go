// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package vfs

import (
	"bytes"
	"sync"

	"github.com/tidesdb/lsmcore/internal/base"
)

// MemEnv is an in-memory Env, for tests that want to exercise the table
// cache's open/miss/error paths without writing files to disk.
type MemEnv struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemEnv returns an empty MemEnv.
func NewMemEnv() *MemEnv {
	return &MemEnv{files: make(map[string][]byte)}
}

// Create registers contents under name, overwriting any prior contents.
func (m *MemEnv) Create(name string, contents []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = contents
}

// Open implements Env. It returns base.ErrNotFound (by way of
// base.KindOf) when name has not been registered with Create.
func (m *MemEnv) Open(name string) (File, error) {
	m.mu.Lock()
	contents, ok := m.files[name]
	m.mu.Unlock()
	if !ok {
		return nil, base.WithDetail(base.ErrNotFound, name)
	}
	return &memFile{r: bytes.NewReader(contents)}, nil
}

type memFile struct {
	r *bytes.Reader
}

func (f *memFile) ReadAt(p []byte, off int64) (int, error) {
	return f.r.ReadAt(p, off)
}

func (f *memFile) Size() (int64, error) {
	return f.r.Size(), nil
}

func (f *memFile) Close() error {
	return nil
}
