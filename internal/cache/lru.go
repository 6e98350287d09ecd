// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package cache implements a bounded, reference-counted, least-recently
// used cache: a generic key/value cache with external eviction callbacks
// and thread-safe concurrent access, sharded across several
// independently-locked LRU lists the way leveldb's ShardedLRUCache does,
// using xxhash (rather than leveldb's hand-rolled hash table) to pick a
// shard.
package cache

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
)

const numShards = 16

// DeleteFunc is invoked, without the cache's lock held, when an entry's
// last reference is released after it has left the cache.
type DeleteFunc func(key []byte, value interface{})

// entry is one mapping held by a shard. It lives in the shard's table
// (while inCache is true) and/or its LRU list, and is reference counted:
// one reference for being in the table, plus one per outstanding Handle.
type entry struct {
	key     string
	value   interface{}
	charge  int64
	deleter DeleteFunc
	refs    int32
	inCache bool
	elem    *list.Element // this entry's node in the shard's LRU list
}

// Handle is a pinned reference to a cache entry, returned by Insert and
// Lookup. Every Handle obtained must eventually be passed to Release
// exactly once.
type Handle struct {
	e *entry
}

type shard struct {
	mu       sync.Mutex
	capacity int64
	usage    int64
	table    map[string]*entry
	lru      *list.List // most-recently-used at the front
}

// Cache is a bounded, thread-safe key/value cache. capacity is divided
// evenly across shards; each shard evicts independently once its own
// share of the capacity is exceeded.
type Cache struct {
	shards [numShards]shard
	nextID atomic.Uint64
}

// New returns a Cache whose total capacity (summed across entry charges)
// is bounded by capacity when capacity is at least numShards. Each shard
// gets capacity/numShards, but never less than 1, so a smaller capacity
// does not bound the total below numShards charge units.
func New(capacity int64) *Cache {
	c := &Cache{}
	per := capacity / numShards
	if per < 1 {
		per = 1
	}
	for i := range c.shards {
		c.shards[i].capacity = per
		c.shards[i].table = make(map[string]*entry)
		c.shards[i].lru = list.New()
	}
	return c
}

func shardFor(c *Cache, key []byte) *shard {
	h := xxhash.Sum64(key)
	return &c.shards[h%numShards]
}

// Insert installs key->value with the given charge and deleter, returning
// a pinned handle. If key is already present, the prior entry is removed
// from the table (and LRU list) and becomes eligible for destruction once
// its remaining handles are released. After insertion, entries are evicted
// from the LRU tail until the shard's usage is at or below its capacity.
func (c *Cache) Insert(key []byte, value interface{}, charge int64, deleter DeleteFunc) *Handle {
	s := shardFor(c, key)
	k := string(key)

	s.mu.Lock()
	var evicted []*entry
	if old, ok := s.table[k]; ok {
		s.removeFromLRU(old)
		delete(s.table, k)
		s.usage -= old.charge
		old.inCache = false
		// Drop the table's own reference to the overwritten entry. If no
		// handle is outstanding, it is collected here rather than destroyed
		// inline: the deleter must run without the shard's lock held (it
		// may call back into the cache, e.g. to re-Insert or Erase the same
		// key, which would deadlock on this shard's non-reentrant mutex).
		if atomic.AddInt32(&old.refs, -1) == 0 {
			evicted = append(evicted, old)
		}
	}

	e := &entry{key: k, value: value, charge: charge, deleter: deleter, refs: 2, inCache: true}
	s.table[k] = e
	e.elem = s.lru.PushFront(e)
	s.usage += charge

	for s.usage > s.capacity && s.lru.Len() > 0 {
		back := s.lru.Back()
		victim := back.Value.(*entry)
		s.lru.Remove(back)
		delete(s.table, victim.key)
		s.usage -= victim.charge
		victim.inCache = false
		victim.elem = nil
		if atomic.AddInt32(&victim.refs, -1) == 0 {
			evicted = append(evicted, victim)
		}
	}
	s.mu.Unlock()

	for _, v := range evicted {
		if v.deleter != nil {
			v.deleter([]byte(v.key), v.value)
		}
	}

	return &Handle{e: e}
}

// Lookup returns a pinned handle for key, or nil if absent. A successful
// lookup moves the entry to the most-recently-used end of its shard's
// list, atomically with the lookup.
func (c *Cache) Lookup(key []byte) *Handle {
	s := shardFor(c, key)
	k := string(key)

	s.mu.Lock()
	e, ok := s.table[k]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	atomic.AddInt32(&e.refs, 1)
	s.lru.MoveToFront(e.elem)
	s.mu.Unlock()

	return &Handle{e: e}
}

// Release drops one reference obtained from Insert or Lookup. If the
// entry has left the table and this was its last reference, its deleter
// runs (without the shard's lock held). Every Handle obtained from Insert
// or Lookup must be released at most once; a second Release on the same
// handle is a caller bug, not a recoverable condition, and panics rather
// than risk running a deleter twice or under-counting a still-live entry.
func (c *Cache) Release(h *Handle) {
	if h == nil {
		return
	}
	if h.e == nil {
		panic(errors.AssertionFailedf("cache: handle released more than once"))
	}
	e := h.e
	h.e = nil
	if atomic.AddInt32(&e.refs, -1) == 0 && e.deleter != nil {
		e.deleter([]byte(e.key), e.value)
	}
}

// Value returns the opaque value held by h.
func (c *Cache) Value(h *Handle) interface{} {
	return h.e.value
}

// Erase removes key from the table and LRU list immediately; destruction
// of the entry is deferred until every outstanding handle to it has been
// released.
func (c *Cache) Erase(key []byte) {
	s := shardFor(c, key)
	k := string(key)

	s.mu.Lock()
	e, ok := s.table[k]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.table, k)
	s.removeFromLRU(e)
	s.usage -= e.charge
	e.inCache = false
	shouldDelete := atomic.AddInt32(&e.refs, -1) == 0
	s.mu.Unlock()

	if shouldDelete && e.deleter != nil {
		e.deleter([]byte(e.key), e.value)
	}
}

// NewID returns a fresh, strictly increasing 64-bit identifier, usable by
// clients sharing one cache to partition their key spaces.
func (c *Cache) NewID() uint64 {
	return c.nextID.Add(1)
}

// removeFromLRU removes e from its shard's LRU list without touching the
// table or usage counters; callers update those separately. Must be
// called with the shard's mutex held.
func (s *shard) removeFromLRU(e *entry) {
	if e.elem != nil {
		s.lru.Remove(e.elem)
		e.elem = nil
	}
}
