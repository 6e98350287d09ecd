// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

// FileNum identifies an on-disk table file. The table cache keys its
// entries by the 8-byte little-endian encoding of a FileNum.
type FileNum uint64

// EncodeFileNum appends the 8-byte little-endian encoding of n to dst,
// matching leveldb's table_cache.cc EncodeFixed64(buf, file_number).
func EncodeFileNum(dst []byte, n FileNum) []byte {
	return PutFixed64(dst, uint64(n))
}
