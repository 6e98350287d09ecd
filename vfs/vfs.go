// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package vfs narrows the filesystem surface a storage engine needs down
// to what the tablecache package actually uses: opening an existing table file
// for random-access reads, and naming one from a directory and a file
// number. Keeping the interface this small is what lets tests substitute
// an in-memory filesystem instead of touching disk.
package vfs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tidesdb/lsmcore/internal/base"
)

// File is a read-only, randomly-addressable table file. It is implemented
// by the wrapper around *os.File that Default returns and by the in-memory
// file returned by MemEnv.
type File interface {
	io.ReaderAt
	io.Closer
	// Size returns the file's length in bytes.
	Size() (int64, error)
}

// Env abstracts the filesystem operations a table cache needs: opening a
// table file by name. Real use goes through Default; tests use MemEnv to
// avoid touching disk.
type Env interface {
	// Open opens name for random-access reads.
	Open(name string) (File, error)
}

// TableFileName returns the path of the table identified by fileNum
// within dbname, in the sstable naming convention
// (<dbname>/<fileNum>.sst).
func TableFileName(dbname string, fileNum base.FileNum) string {
	return filepath.Join(dbname, fmt.Sprintf("%06d.sst", uint64(fileNum)))
}

// Default is the Env backed by the operating system's filesystem.
var Default Env = osEnv{}

type osEnv struct{}

func (osEnv) Open(name string) (File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return osFile{f}, nil
}

type osFile struct {
	*os.File
}

func (f osFile) Size() (int64, error) {
	fi, err := f.File.Stat()
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}
