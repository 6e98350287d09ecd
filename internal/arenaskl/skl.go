// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package arenaskl implements a probabilistic ordered index: a skip list
// whose keys are opaque byte strings (in practice, memtable records
// allocated out of an internal/arena.Arena), supporting lock-free reads
// concurrent with a single writer's inserts.
package arenaskl

import (
	"math/rand"
	"sync/atomic"
)

const (
	maxHeight = 12
	branching = 4
)

// Comparator orders two stored keys. For the memtable's use, keys are full
// records (varint32(internal_key_len) || internal_key || varint32(value_len)
// || value); the comparator is expected to decode the length prefix before
// comparing.
type Comparator func(a, b []byte) int

// node towers are ordinary heap allocations, not carved out of the arena:
// Go's garbage collector already gives safe, shared-ownership lifetime for
// them, so there is nothing for the arena to buy here beyond what it buys
// for the record bytes themselves (see DESIGN.md, "arena node towers").
//
// Each level is an atomic.Pointer: the writer publishes a level's successor
// with Store, and a reader's Load for that same pointer establishes a
// happens-before edge, giving the release/acquire protocol this structure
// needs for lock-free reads without any additional locking.
type node struct {
	key   []byte
	tower [maxHeight]atomic.Pointer[node]
}

// Skiplist is an ordered set over byte-string keys, described by a single
// Comparator. Keys are immutable once inserted; insertion never overwrites
// or removes an existing key. A single writer may call Insert; any number
// of readers may concurrently Seek, iterate, or call Contains.
type Skiplist struct {
	cmp    Comparator
	head   *node
	height atomic.Uint32 // the observable max-height cursor; only grows
	rnd    *rand.Rand    // touched only by the single writer
}

// NewSkiplist returns an empty skip list ordered by cmp.
func NewSkiplist(cmp Comparator) *Skiplist {
	s := &Skiplist{
		cmp:  cmp,
		head: &node{},
		rnd:  rand.New(rand.NewSource(0xd1ce5eed)),
	}
	s.height.Store(1)
	return s
}

func (s *Skiplist) randomHeight() int {
	h := 1
	for h < maxHeight && s.rnd.Intn(branching) == 0 {
		h++
	}
	return h
}

// Insert adds key to the list. The caller must guarantee key does not
// compare equal to any key already present; the memtable's (user_key,
// sequence) uniqueness discharges this for its own use. Insert must not be
// called concurrently with another Insert.
func (s *Skiplist) Insert(key []byte) {
	height := s.randomHeight()
	curHeight := int(s.height.Load())

	var preds [maxHeight]*node
	x := s.head
	for l := maxHeight - 1; l >= 0; l-- {
		if l >= curHeight {
			preds[l] = s.head
			continue
		}
		for {
			next := x.tower[l].Load()
			if next != nil && s.cmp(next.key, key) < 0 {
				x = next
				continue
			}
			break
		}
		preds[l] = x
	}

	n := &node{key: key}
	// Fully wire every level of the new node before publishing it anywhere,
	// so a reader that observes a successor pointer to n always sees n's
	// key and every level it will ever have.
	for i := 0; i < height; i++ {
		n.tower[i].Store(preds[i].tower[i].Load())
	}
	for i := 0; i < height; i++ {
		preds[i].tower[i].Store(n)
	}

	if height > curHeight {
		// Published last, and only after every level 0..height-1 successor
		// of n has been wired in above.
		s.height.Store(uint32(height))
	}
}

// Contains reports whether key is present in the list.
func (s *Skiplist) Contains(key []byte) bool {
	n := s.findGreaterOrEqual(key)
	return n != nil && s.cmp(n.key, key) == 0
}

func (s *Skiplist) findGreaterOrEqual(key []byte) *node {
	x := s.head
	for l := int(s.height.Load()) - 1; l >= 0; l-- {
		for {
			next := x.tower[l].Load()
			if next != nil && s.cmp(next.key, key) < 0 {
				x = next
				continue
			}
			break
		}
	}
	return x.tower[0].Load()
}

func (s *Skiplist) findLessThan(key []byte) *node {
	x := s.head
	for l := int(s.height.Load()) - 1; l >= 0; l-- {
		for {
			next := x.tower[l].Load()
			if next != nil && s.cmp(next.key, key) < 0 {
				x = next
				continue
			}
			break
		}
	}
	if x == s.head {
		return nil
	}
	return x
}

func (s *Skiplist) findLast() *node {
	x := s.head
	for l := int(s.height.Load()) - 1; l >= 0; l-- {
		for {
			next := x.tower[l].Load()
			if next == nil {
				break
			}
			x = next
		}
	}
	if x == s.head {
		return nil
	}
	return x
}

// Iterator is a bidirectional cursor over a Skiplist. Prev re-seeks from
// the head on every call rather than following back pointers, trading a
// constant-factor slowdown on reverse iteration for not having to store
// or maintain back pointers at all.
type Iterator struct {
	list *Skiplist
	cur  *node
}

// NewIter returns an unpositioned iterator over s.
func (s *Skiplist) NewIter() *Iterator {
	return &Iterator{list: s}
}

// SeekGE moves to the first key >= target. Returns Valid().
func (it *Iterator) SeekGE(target []byte) bool {
	it.cur = it.list.findGreaterOrEqual(target)
	return it.cur != nil
}

// SeekToFirst moves to the first key in the list. Returns Valid().
func (it *Iterator) SeekToFirst() bool {
	it.cur = it.list.head.tower[0].Load()
	return it.cur != nil
}

// SeekToLast moves to the last key in the list. Returns Valid().
func (it *Iterator) SeekToLast() bool {
	it.cur = it.list.findLast()
	return it.cur != nil
}

// Next advances to the next key in order. Returns Valid().
func (it *Iterator) Next() bool {
	if it.cur == nil {
		return false
	}
	it.cur = it.cur.tower[0].Load()
	return it.cur != nil
}

// Prev moves to the previous key in order. Returns Valid().
func (it *Iterator) Prev() bool {
	if it.cur == nil {
		return false
	}
	it.cur = it.list.findLessThan(it.cur.key)
	return it.cur != nil
}

// Key returns the key at the iterator's current position.
func (it *Iterator) Key() []byte {
	return it.cur.key
}

// Valid reports whether the iterator is positioned at a key.
func (it *Iterator) Valid() bool {
	return it.cur != nil
}
