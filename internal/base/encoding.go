// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "encoding/binary"

// PutFixed32 appends v to dst in little-endian, regardless of host order.
func PutFixed32(dst []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(dst, buf[:]...)
}

// PutFixed64 appends v to dst in little-endian, regardless of host order.
func PutFixed64(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}

// DecodeFixed32 decodes a little-endian uint32 from the first 4 bytes of
// buf. The caller must ensure len(buf) >= 4.
func DecodeFixed32(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf)
}

// DecodeFixed64 decodes a little-endian uint64 from the first 8 bytes of
// buf. The caller must ensure len(buf) >= 8.
func DecodeFixed64(buf []byte) uint64 {
	return binary.LittleEndian.Uint64(buf)
}

// VarintLength returns the number of bytes PutVarint64 would produce for
// v, without encoding it.
func VarintLength(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// PutVarint32 appends v to dst using the standard 7-bit little-endian
// varint encoding (1-5 bytes).
func PutVarint32(dst []byte, v uint32) []byte {
	return PutVarint64(dst, uint64(v))
}

// PutVarint64 appends v to dst using the standard 7-bit little-endian
// varint encoding (1-10 bytes).
func PutVarint64(dst []byte, v uint64) []byte {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	return append(dst, buf[:n]...)
}

// PutLengthPrefixedSlice appends a varint32 length followed by value's
// bytes to dst.
func PutLengthPrefixedSlice(dst, value []byte) []byte {
	dst = PutVarint32(dst, uint32(len(value)))
	return append(dst, value...)
}

// DecodeVarint32 decodes a varint32 from the front of buf, returning the
// value and the number of bytes consumed. ok is false on truncation or on
// an encoding that would overflow 32 bits (more than 5 bytes), in which
// case value and n are unspecified. Mirrors leveldb's
// GetVarint32PtrFallback: a byte with its continuation bit (0x80) clear
// always terminates the varint, even one encountered before the nominal
// byte budget is exhausted.
func DecodeVarint32(buf []byte) (value uint32, n int, ok bool) {
	v, m, ok := decodeVarint(buf, 5)
	return uint32(v), m, ok
}

// DecodeVarint64 decodes a varint64 from the front of buf, returning the
// value and the number of bytes consumed. ok is false on truncation or
// overflow (more than 10 bytes).
func DecodeVarint64(buf []byte) (value uint64, n int, ok bool) {
	return decodeVarint(buf, 10)
}

func decodeVarint(buf []byte, maxBytes int) (value uint64, n int, ok bool) {
	var result uint64
	var shift uint
	for i := 0; i < maxBytes && i < len(buf); i++ {
		b := buf[i]
		if b&0x80 != 0 {
			result |= uint64(b&0x7f) << shift
			shift += 7
			continue
		}
		result |= uint64(b) << shift
		return result, i + 1, true
	}
	return 0, 0, false
}

// DecodeLengthPrefixedSlice decodes a varint32 length followed by that many
// payload bytes from the front of buf. ok is false if the length prefix
// fails to decode or the payload would run past the end of buf; in that
// case rest and value are unspecified.
func DecodeLengthPrefixedSlice(buf []byte) (value, rest []byte, ok bool) {
	length, n, ok := DecodeVarint32(buf)
	if !ok {
		return nil, nil, false
	}
	buf = buf[n:]
	if uint32(len(buf)) < length {
		return nil, nil, false
	}
	return buf[:length:length], buf[length:], true
}
