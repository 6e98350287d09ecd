// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

// LookupKey is a single allocation shaped as a memtable seek target, with
// three views into the same buffer:
//
//	[ varint32(user_key_len + 8) ][ user_key ][ 8-byte tag ]
//	 ^-- MemTableKey() starts here
//	                              ^-- InternalKey() starts here
//	                              ^-- UserKey() starts here, ends 8 before InternalKey's end
//
// The tag is built from (sequence, ValueTypeForSeek) so that a forward scan
// from this key lands on the newest record for UserKey at or below
// sequence, regardless of that record's kind.
type LookupKey struct {
	buf []byte
	// ikeyStart is the offset of the internal key (user_key||tag) within
	// buf, i.e. where the varint32 length prefix ends.
	ikeyStart int
}

// NewLookupKey builds a LookupKey for userKey at the given snapshot
// sequence number.
func NewLookupKey(userKey []byte, seq SeqNum) *LookupKey {
	internalKeyLen := len(userKey) + 8
	buf := make([]byte, 0, 5+internalKeyLen)
	buf = PutVarint32(buf, uint32(internalKeyLen))
	ikeyStart := len(buf)
	buf = append(buf, userKey...)
	buf = PutFixed64(buf, MakeTrailer(seq, ValueTypeForSeek))
	return &LookupKey{buf: buf, ikeyStart: ikeyStart}
}

// MemTableKey returns the length-prefixed form suitable as a skip list seek
// target: varint32(internal_key_len) || internal_key.
func (lk *LookupKey) MemTableKey() []byte {
	return lk.buf
}

// InternalKey returns the packed (user_key, sequence, kind) byte string:
// user_key || 8-byte tag.
func (lk *LookupKey) InternalKey() []byte {
	return lk.buf[lk.ikeyStart:]
}

// UserKey returns the caller-supplied key, with no sequence/kind metadata.
func (lk *LookupKey) UserKey() []byte {
	return lk.buf[lk.ikeyStart : len(lk.buf)-8]
}

// SeqNum returns the sequence number this lookup was built for.
func (lk *LookupKey) SeqNum() SeqNum {
	return SeqNum(DecodeFixed64(lk.buf[len(lk.buf)-8:]) >> 8)
}
