// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package vfs

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidesdb/lsmcore/internal/base"
)

func TestTableFileName(t *testing.T) {
	require.Equal(t, "db/000042.sst", TableFileName("db", base.FileNum(42)))
}

func TestMemEnvOpenMissingReturnsNotFound(t *testing.T) {
	m := NewMemEnv()
	_, err := m.Open("db/000001.sst")
	require.ErrorIs(t, err, base.ErrNotFound)
}

func TestMemEnvOpenAndReadBack(t *testing.T) {
	m := NewMemEnv()
	m.Create("db/000001.sst", []byte("hello world"))

	f, err := m.Open("db/000001.sst")
	require.NoError(t, err)
	defer f.Close()

	size, err := f.Size()
	require.NoError(t, err)
	require.Equal(t, int64(len("hello world")), size)

	buf := make([]byte, 5)
	n, err := f.ReadAt(buf, 6)
	require.NoError(t, err)
	require.Equal(t, "world", string(buf[:n]))
}
