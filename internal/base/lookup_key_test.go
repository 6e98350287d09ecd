// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupKeyViews(t *testing.T) {
	lk := NewLookupKey([]byte("foo"), 42)

	require.Equal(t, []byte("foo"), lk.UserKey())
	require.Equal(t, SeqNum(42), lk.SeqNum())

	ikey := DecodeInternalKey(lk.InternalKey())
	require.Equal(t, []byte("foo"), ikey.UserKey)
	require.Equal(t, SeqNum(42), ikey.SeqNum())
	require.Equal(t, ValueTypeForSeek, ikey.Kind())

	mtKey, rest, ok := DecodeLengthPrefixedSlice(lk.MemTableKey())
	require.True(t, ok)
	require.Empty(t, rest)
	require.Equal(t, lk.InternalKey(), mtKey)
}

func TestLookupKeyEmptyUserKey(t *testing.T) {
	lk := NewLookupKey(nil, 1)
	require.Empty(t, lk.UserKey())
	require.Equal(t, SeqNum(1), lk.SeqNum())
}
