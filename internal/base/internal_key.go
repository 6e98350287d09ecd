// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "encoding/binary"

// SeqNum is a 56-bit monotonically increasing sequence number assigned to
// every write. Zero is reserved; the first usable sequence number is 1.
type SeqNum uint64

// SeqNumMax is the largest sequence number representable in the 56-bit tag.
const SeqNumMax SeqNum = 1<<56 - 1

// InternalKeyKind distinguishes a live value from a tombstone. These values
// are part of the on-disk format and must not be renumbered.
type InternalKeyKind uint8

const (
	// InternalKeyKindDelete marks a tombstone; its value must be empty.
	InternalKeyKindDelete InternalKeyKind = 0
	// InternalKeyKindSet marks a live value; its value holds the payload.
	InternalKeyKindSet InternalKeyKind = 1

	// InternalKeyKindMax is the largest valid kind.
	InternalKeyKindMax = InternalKeyKindSet

	// InternalKeyKindInvalid marks a key that failed to decode.
	InternalKeyKindInvalid InternalKeyKind = 255
)

// ValueTypeForSeek is the kind used when building a seek key: it sorts
// before every kind at the same sequence number, so a forward scan from a
// lookup key lands on the newest record at or below the snapshot sequence
// regardless of that record's kind.
const ValueTypeForSeek = InternalKeyKindSet

// MaxSeekTag is the largest tag ever produced: the maximum sequence number
// paired with ValueTypeForSeek. Used to build a lookup key for "newest
// version of this user key as of the most recent possible write".
const MaxSeekTag = (uint64(SeqNumMax) << 8) | uint64(ValueTypeForSeek)

// InternalKey packs (user_key, sequence, kind) into the canonical sort key
// used throughout the write path: user_key ascending, then tag descending
// (larger sequence first, and for equal sequence, larger kind first).
type InternalKey struct {
	UserKey []byte
	Trailer uint64
}

// MakeTrailer packs a sequence number and kind into the 8-byte tag:
// (seq << 8) | kind.
func MakeTrailer(seq SeqNum, kind InternalKeyKind) uint64 {
	return (uint64(seq) << 8) | uint64(kind)
}

// MakeInternalKey constructs an InternalKey from its parts.
func MakeInternalKey(userKey []byte, seq SeqNum, kind InternalKeyKind) InternalKey {
	return InternalKey{UserKey: userKey, Trailer: MakeTrailer(seq, kind)}
}

// SeqNum returns the sequence number encoded in the key's trailer.
func (k InternalKey) SeqNum() SeqNum {
	return SeqNum(k.Trailer >> 8)
}

// Kind returns the kind encoded in the key's trailer.
func (k InternalKey) Kind() InternalKeyKind {
	return InternalKeyKind(k.Trailer & 0xff)
}

// Valid reports whether the key's kind is one of the known kinds.
func (k InternalKey) Valid() bool {
	return k.Kind() <= InternalKeyKindMax
}

// Size returns the encoded length: the user key plus the 8-byte trailer.
func (k InternalKey) Size() int {
	return len(k.UserKey) + 8
}

// Encode writes the user_key || little_endian_u64(trailer) form into buf,
// which must be at least k.Size() bytes.
func (k InternalKey) Encode(buf []byte) {
	n := copy(buf, k.UserKey)
	binary.LittleEndian.PutUint64(buf[n:], k.Trailer)
}

// EncodeAppend appends the encoded key to dst and returns the grown slice.
func (k InternalKey) EncodeAppend(dst []byte) []byte {
	dst = append(dst, k.UserKey...)
	var tb [8]byte
	binary.LittleEndian.PutUint64(tb[:], k.Trailer)
	return append(dst, tb[:]...)
}

// Clone returns a deep copy of k, safe to retain past the lifetime of the
// buffer UserKey was borrowed from.
func (k InternalKey) Clone() InternalKey {
	if k.UserKey == nil {
		return k
	}
	u := make([]byte, len(k.UserKey))
	copy(u, k.UserKey)
	return InternalKey{UserKey: u, Trailer: k.Trailer}
}

// DecodeInternalKey decodes the user_key||trailer form produced by Encode.
// An input shorter than 8 bytes decodes to an invalid key whose UserKey is
// the entire input, mirroring the original's defensive behavior on
// corruption rather than panicking.
func DecodeInternalKey(encoded []byte) InternalKey {
	n := len(encoded) - 8
	if n < 0 {
		return InternalKey{UserKey: encoded, Trailer: uint64(InternalKeyKindInvalid)}
	}
	return InternalKey{
		UserKey: encoded[:n:n],
		Trailer: binary.LittleEndian.Uint64(encoded[n:]),
	}
}

// InternalCompare orders two internal keys: by user key ascending under
// userCmp, then by trailer descending (larger sequence, and for equal
// sequence larger kind, sorts first). Invalid keys get no special case: the
// trailer DecodeInternalKey gives them (sequence 0, kind 255) is compared
// like any other, so an invalid key sorts after every valid key with the
// same user key bytes and a sequence number of 1 or more.
func InternalCompare(userCmp Compare, a, b InternalKey) int {
	if c := userCmp(a.UserKey, b.UserKey); c != 0 {
		return c
	}
	switch {
	case a.Trailer > b.Trailer:
		return -1
	case a.Trailer < b.Trailer:
		return 1
	default:
		return 0
	}
}

// MakeInternalComparer wraps a user Comparer into one that orders encoded
// internal keys (user_key||trailer byte strings) per InternalCompare. Its
// separator/successor helpers operate on the user-key portion and then
// append a trailer of (MaxSeekTag's sequence, ValueTypeForSeek), which
// keeps the shortened key sorting at or before the original limit: a
// smaller user key always sorts first regardless of trailer, and an equal
// user key with the maximal trailer sorts first among same-user-key
// internal keys.
func MakeInternalComparer(userCmp *Comparer) *Comparer {
	return &Comparer{
		Compare: func(a, b []byte) int {
			return InternalCompare(userCmp.Compare, DecodeInternalKey(a), DecodeInternalKey(b))
		},
		Equal: func(a, b []byte) bool {
			return InternalCompare(userCmp.Compare, DecodeInternalKey(a), DecodeInternalKey(b)) == 0
		},
		AppendSeparator: func(dst, a, b []byte) []byte {
			ak, bk := DecodeInternalKey(a), DecodeInternalKey(b)
			n := len(dst)
			dst = userCmp.AppendSeparator(dst, ak.UserKey, bk.UserKey)
			if len(dst)-n < len(ak.UserKey) || !userCmp.Equal(dst[n:], ak.UserKey) {
				// The user-key portion actually shortened; re-tag it so the
				// result still decodes as a valid internal key that sorts
				// between a and (at or before) b.
				var tb [8]byte
				binary.LittleEndian.PutUint64(tb[:], MaxSeekTag)
				return append(dst, tb[:]...)
			}
			return append(dst, a[len(ak.UserKey):]...)
		},
		AppendSuccessor: func(dst, a []byte) []byte {
			ak := DecodeInternalKey(a)
			n := len(dst)
			dst = userCmp.AppendSuccessor(dst, ak.UserKey)
			if len(dst)-n < len(ak.UserKey) || !userCmp.Equal(dst[n:], ak.UserKey) {
				var tb [8]byte
				binary.LittleEndian.PutUint64(tb[:], MaxSeekTag)
				return append(dst, tb[:]...)
			}
			return append(dst, a[len(ak.UserKey):]...)
		},
		Name: userCmp.Name + ".Internal",
	}
}
