// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// capacityOneShard builds a cache where every shard has room for
// perShard charge units, by giving New a total capacity of
// perShard*numShards.
func capacityOneShard(perShard int64) *Cache {
	return New(perShard * numShards)
}

func TestLookupMissReturnsNil(t *testing.T) {
	c := capacityOneShard(10)
	require.Nil(t, c.Lookup([]byte("missing")))
}

func TestInsertThenLookupReturnsValue(t *testing.T) {
	c := capacityOneShard(10)
	h := c.Insert([]byte("a"), "value-a", 1, nil)
	defer c.Release(h)

	lh := c.Lookup([]byte("a"))
	require.NotNil(t, lh)
	require.Equal(t, "value-a", c.Value(lh))
	c.Release(lh)
}

func TestEraseRunsDeleterOnceHandlesReleased(t *testing.T) {
	c := capacityOneShard(10)
	deleted := false
	h := c.Insert([]byte("a"), "value-a", 1, func(key []byte, value interface{}) {
		deleted = true
	})

	c.Erase([]byte("a"))
	require.False(t, deleted, "deleter must not run while a handle is outstanding")
	require.Nil(t, c.Lookup([]byte("a")), "erased entry must not be found by Lookup")

	c.Release(h)
	require.True(t, deleted, "deleter must run once the last handle is released")
}

func TestInsertOverwriteErasesOldEntry(t *testing.T) {
	c := capacityOneShard(10)
	oldDeleted := false
	h1 := c.Insert([]byte("a"), "old", 1, func(key []byte, value interface{}) {
		oldDeleted = true
	})
	c.Release(h1)

	h2 := c.Insert([]byte("a"), "new", 1, nil)
	require.True(t, oldDeleted, "overwriting a key must erase the prior entry")

	lh := c.Lookup([]byte("a"))
	require.Equal(t, "new", c.Value(lh))
	c.Release(lh)
	c.Release(h2)
}

// sameShardKeys returns n distinct keys that all hash to the same shard
// of c, found by probing small integers. With numShards == 16 this
// finds enough keys quickly.
func sameShardKeys(t *testing.T, c *Cache, n int) [][]byte {
	t.Helper()
	buckets := make(map[*shard][][]byte)
	for i := 0; len(buckets) == 0 || len(longestBucket(buckets)) < n; i++ {
		k := []byte(fmt.Sprintf("key-%d", i))
		s := shardFor(c, k)
		buckets[s] = append(buckets[s], k)
		if i > 100000 {
			t.Fatal("could not find enough same-shard keys")
		}
	}
	return longestBucket(buckets)[:n]
}

func longestBucket(buckets map[*shard][][]byte) [][]byte {
	var best [][]byte
	for _, keys := range buckets {
		if len(keys) > len(best) {
			best = keys
		}
	}
	return best
}

// TestCapacityTwoEvictsLeastRecentlyUsed mirrors the literal
// insert-three-into-capacity-two scenario: with a single shard holding
// capacity for two charge-1 entries, inserting A, B, C in order (with A
// looked up in between to mark it most-recently-used) evicts B, the
// entry nobody touched since it was pushed to the back of the list.
func TestCapacityTwoEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(2 * numShards) // 2 units of capacity per shard
	keys := sameShardKeys(t, c, 3)
	a, b, cc := keys[0], keys[1], keys[2]

	hA := c.Insert(a, "A", 1, nil)
	c.Release(hA)
	hB := c.Insert(b, "B", 1, nil)
	c.Release(hB)

	// Touch A so B, not A, is the least-recently-used entry.
	lh := c.Lookup(a)
	require.NotNil(t, lh)
	c.Release(lh)

	hC := c.Insert(cc, "C", 1, nil)
	c.Release(hC)

	require.Nil(t, c.Lookup(b), "B should have been evicted as least-recently-used")
	if h := c.Lookup(a); h != nil {
		c.Release(h)
	} else {
		t.Error("A should still be cached")
	}
	if h := c.Lookup(cc); h != nil {
		c.Release(h)
	} else {
		t.Error("C should still be cached")
	}
}

func TestNewIDIsStrictlyIncreasing(t *testing.T) {
	c := capacityOneShard(10)
	a := c.NewID()
	b := c.NewID()
	require.Less(t, a, b)
}
