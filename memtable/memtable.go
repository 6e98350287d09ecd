// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package memtable implements the write-path accumulator of an LSM-tree
// storage engine: an append-only, sorted, memory-bounded structure built
// atop an arena allocator and a skip list, supporting concurrent readers
// and a single writer.
package memtable

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"

	"github.com/tidesdb/lsmcore/internal/arena"
	"github.com/tidesdb/lsmcore/internal/arenaskl"
	"github.com/tidesdb/lsmcore/internal/base"
)

// MemTable is an in-memory, sorted, append-only store backed by an arena
// and a skip list. MemTables are reference counted: the initial count is
// zero and the caller must call Ref at least once.
type MemTable struct {
	userCmp *base.Comparer
	intCmp  *base.Comparer // the internal-key comparer derived from userCmp
	arena   *arena.Arena
	skl     *arenaskl.Skiplist
	refs    atomic.Int32
}

// New returns a MemTable ordered by userCmp (base.DefaultComparer if nil),
// with a reference count of zero.
func New(userCmp *base.Comparer) *MemTable {
	if userCmp == nil {
		userCmp = base.DefaultComparer
	}
	m := &MemTable{
		userCmp: userCmp,
		intCmp:  base.MakeInternalComparer(userCmp),
		arena:   arena.New(),
	}
	m.skl = arenaskl.NewSkiplist(m.recordCompare)
	return m
}

// recordCompare compares two stored records (each
// varint32(internal_key_len)||internal_key||varint32(value_len)||value) by
// their internal-key portion: it decodes the length prefix before
// comparing.
func (m *MemTable) recordCompare(a, b []byte) int {
	ak := recordInternalKey(a)
	bk := recordInternalKey(b)
	return m.intCmp.Compare(ak, bk)
}

// recordInternalKey pulls the internal-key bytes out of a stored record's
// length-prefixed head.
func recordInternalKey(record []byte) []byte {
	ikey, _, ok := base.DecodeLengthPrefixedSlice(record)
	if !ok {
		panic(errors.AssertionFailedf("memtable: corrupt record: internal key length prefix"))
	}
	return ikey
}

// Ref increases the reference count.
func (m *MemTable) Ref() {
	m.refs.Add(1)
}

// Unref decreases the reference count. It returns true if this was the
// last reference, in which case the caller must stop using m. There is
// nothing further to release explicitly: the arena and skip list become
// unreachable and are reclaimed by the garbage collector.
func (m *MemTable) Unref() bool {
	switch v := m.refs.Add(-1); {
	case v < 0:
		panic(errors.AssertionFailedf("memtable: inconsistent reference count: %d", v))
	case v == 0:
		return true
	default:
		return false
	}
}

// ApproximateMemoryUsage returns the arena's memory usage estimate.
func (m *MemTable) ApproximateMemoryUsage() int {
	return m.arena.MemoryUsage()
}

// Add encodes one record and inserts it into the skip list. The caller
// assigns sequence numbers; because they strictly increase, the
// (user_key, sequence) pair is unique by construction and Add never needs
// to detect duplicates. Deletion records are expected to carry an empty
// value.
func (m *MemTable) Add(seq base.SeqNum, kind base.InternalKeyKind, userKey, value []byte) {
	ikey := base.MakeInternalKey(userKey, seq, kind)
	ikeyLen := ikey.Size()

	recordLen := base.VarintLength(uint64(ikeyLen)) + ikeyLen +
		base.VarintLength(uint64(len(value))) + len(value)
	buf := m.arena.Allocate(recordLen)[:0]
	buf = base.PutVarint32(buf, uint32(ikeyLen))
	buf = ikey.EncodeAppend(buf)
	buf = base.PutLengthPrefixedSlice(buf, value)

	m.skl.Insert(buf)
}

// NewIterator returns a forward/backward iterator over the memtable's
// internal keys. Seek input is the length-prefixed memtable-key form;
// Key() returns the internal key decoded into its user key and trailer.
func (m *MemTable) NewIterator() *Iterator {
	return &Iterator{it: m.skl.NewIter()}
}

// Get resolves userKey at lk's snapshot sequence number. found is true iff
// the memtable has a record for userKey at or below that sequence; when
// found, either value holds the stored bytes (and err is nil), or the
// resolving record was a deletion, in which case err is base.ErrNotFound
// and value is nil. found is false (with err nil) when no record for
// userKey exists in the memtable at or below the snapshot sequence.
//
// The skip list's ordering guarantees that the first entry seen whose
// user key matches is the newest write for that key at or below the
// snapshot: later sequences never affect the answer for an earlier
// snapshot.
func (m *MemTable) Get(lk *base.LookupKey) (value []byte, found bool, err error) {
	it := m.skl.NewIter()
	if !it.SeekGE(lk.MemTableKey()) {
		return nil, false, nil
	}
	ikey := recordInternalKey(it.Key())
	decoded := base.DecodeInternalKey(ikey)
	if !m.userCmp.Equal(decoded.UserKey, lk.UserKey()) {
		return nil, false, nil
	}
	_, rest, _ := base.DecodeLengthPrefixedSlice(it.Key())
	switch decoded.Kind() {
	case base.InternalKeyKindSet:
		val, _, ok := base.DecodeLengthPrefixedSlice(rest)
		if !ok {
			panic(errors.AssertionFailedf("memtable: corrupt record: value length prefix"))
		}
		return val, true, nil
	case base.InternalKeyKindDelete:
		return nil, true, base.ErrNotFound
	default:
		panic(errors.AssertionFailedf("memtable: corrupt record: unknown internal key kind %d", decoded.Kind()))
	}
}

// Iterator is a forward/backward iterator over a MemTable's internal keys.
type Iterator struct {
	it *arenaskl.Iterator
}

// SeekGE moves to the first record whose internal key is >= the internal
// key encoded in target (a length-prefixed memtable key, as produced by
// base.LookupKey.MemTableKey).
func (i *Iterator) SeekGE(target []byte) bool { return i.it.SeekGE(target) }

// First moves to the first record in the memtable.
func (i *Iterator) First() bool { return i.it.SeekToFirst() }

// Last moves to the last record in the memtable.
func (i *Iterator) Last() bool { return i.it.SeekToLast() }

// Next advances to the next record.
func (i *Iterator) Next() bool { return i.it.Next() }

// Prev moves to the previous record.
func (i *Iterator) Prev() bool { return i.it.Prev() }

// Valid reports whether the iterator is positioned at a record.
func (i *Iterator) Valid() bool { return i.it.Valid() }

// Key returns the internal key of the current record, decoded into its
// user key and trailer.
func (i *Iterator) Key() base.InternalKey {
	return base.DecodeInternalKey(recordInternalKey(i.it.Key()))
}

// Value returns the value bytes of the current record.
func (i *Iterator) Value() []byte {
	_, rest, _ := base.DecodeLengthPrefixedSlice(i.it.Key())
	val, _, ok := base.DecodeLengthPrefixedSlice(rest)
	if !ok {
		panic(errors.AssertionFailedf("memtable: corrupt record: value length prefix"))
	}
	return val
}
