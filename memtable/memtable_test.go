// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package memtable

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidesdb/lsmcore/internal/base"
)

func TestGetOnEmptyMemTable(t *testing.T) {
	m := New(nil)
	m.Ref()
	_, found, err := m.Get(base.NewLookupKey([]byte("a"), 10))
	require.False(t, found)
	require.NoError(t, err)
}

func TestGetReturnsStoredValue(t *testing.T) {
	m := New(nil)
	m.Ref()
	m.Add(5, base.InternalKeyKindSet, []byte("foo"), []byte("bar"))

	val, found, err := m.Get(base.NewLookupKey([]byte("foo"), 10))
	require.True(t, found)
	require.NoError(t, err)
	require.Equal(t, []byte("bar"), val)
}

func TestGetHonorsSnapshotAndDeletion(t *testing.T) {
	m := New(nil)
	m.Ref()
	m.Add(5, base.InternalKeyKindSet, []byte("foo"), []byte("bar"))
	m.Add(7, base.InternalKeyKindDelete, []byte("foo"), nil)

	_, found, err := m.Get(base.NewLookupKey([]byte("foo"), 10))
	require.True(t, found)
	require.ErrorIs(t, err, base.ErrNotFound)

	val, found, err := m.Get(base.NewLookupKey([]byte("foo"), 6))
	require.True(t, found)
	require.NoError(t, err)
	require.Equal(t, []byte("bar"), val)
}

func TestGetMissingUserKey(t *testing.T) {
	m := New(nil)
	m.Ref()
	m.Add(5, base.InternalKeyKindSet, []byte("foo"), []byte("bar"))

	_, found, err := m.Get(base.NewLookupKey([]byte("fop"), 10))
	require.False(t, found)
	require.NoError(t, err)
}

func TestIteratorVisitsInOrderNewestFirst(t *testing.T) {
	m := New(nil)
	m.Ref()
	m.Add(1, base.InternalKeyKindSet, []byte("a"), []byte("a1"))
	m.Add(2, base.InternalKeyKindSet, []byte("b"), []byte("b2"))
	m.Add(3, base.InternalKeyKindSet, []byte("a"), []byte("a3"))

	it := m.NewIterator()
	require.True(t, it.First())
	require.Equal(t, []byte("a"), it.Key().UserKey)
	require.Equal(t, base.SeqNum(3), it.Key().SeqNum())
	require.Equal(t, []byte("a3"), it.Value())

	require.True(t, it.Next())
	require.Equal(t, []byte("a"), it.Key().UserKey)
	require.Equal(t, base.SeqNum(1), it.Key().SeqNum())

	require.True(t, it.Next())
	require.Equal(t, []byte("b"), it.Key().UserKey)
	require.False(t, it.Next())
}

func TestRefUnrefLifecycle(t *testing.T) {
	m := New(nil)
	m.Ref()
	m.Ref()
	require.False(t, m.Unref())
	require.True(t, m.Unref())
}

func TestUnrefBelowZeroPanics(t *testing.T) {
	m := New(nil)
	require.Panics(t, func() { m.Unref() })
}

func TestApproximateMemoryUsageGrows(t *testing.T) {
	m := New(nil)
	m.Ref()
	before := m.ApproximateMemoryUsage()
	m.Add(1, base.InternalKeyKindSet, []byte("a-long-enough-key"), []byte("a-long-enough-value"))
	require.Greater(t, m.ApproximateMemoryUsage(), before)
}
