// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "bytes"

// Compare returns -1, 0, or +1 depending on whether a is less than, equal
// to, or greater than b.
type Compare func(a, b []byte) int

// Equal returns true iff a and b are identical under the comparer's order.
type Equal func(a, b []byte) bool

// Separator appends to dst a key k such that a <= k < b, where a, b are
// ordered by Compare and a < b. It is allowed to append a unchanged if no
// shorter separator exists. Used by table index builders; kept here because
// the internal-key comparer wraps it.
type Separator func(dst, a, b []byte) []byte

// Successor appends to dst a key k such that k >= a. It is allowed to
// append a unchanged.
type Successor func(dst, a []byte) []byte

// Comparer defines a total order over user keys, plus the two key
// shortening helpers used by index/separator construction.
type Comparer struct {
	Compare         Compare
	Equal           Equal
	AppendSeparator Separator
	AppendSuccessor Successor
	Name            string
}

// DefaultComparer orders keys lexicographically by unsigned byte value,
// matching leveldb's BytewiseComparator.
var DefaultComparer = &Comparer{
	Compare:         bytes.Compare,
	Equal:           bytes.Equal,
	AppendSeparator: appendShortestSeparator,
	AppendSuccessor: appendShortSuccessor,
	Name:            "leveldb.BytewiseComparator",
}

// appendShortestSeparator appends to dst a short key k such that
// start <= k < limit. start and dst may overlap in the caller's buffer
// management, so the result is always built fresh into dst.
//
// Ported from leveldb's BytewiseComparatorImpl::FindShortestSeparator: walk
// to the first differing byte; if one key is a prefix of the other, leave
// start unchanged; otherwise bump the differing byte by one and truncate,
// but only when doing so still sorts below limit.
func appendShortestSeparator(dst, start, limit []byte) []byte {
	n := len(start)
	if len(limit) < n {
		n = len(limit)
	}
	diff := 0
	for diff < n && start[diff] == limit[diff] {
		diff++
	}
	if diff >= n {
		// One key is a prefix of the other; no shortening is possible.
		return append(dst, start...)
	}
	b := start[diff]
	if b < 0xff && b+1 < limit[diff] {
		dst = append(dst, start[:diff]...)
		dst = append(dst, b+1)
		return dst
	}
	return append(dst, start...)
}

// appendShortSuccessor appends to dst the shortest key k >= a: the first
// byte of a that is not 0xff, incremented, with the key truncated there. If
// every byte of a is 0xff, a is appended unchanged.
func appendShortSuccessor(dst, a []byte) []byte {
	for i := 0; i < len(a); i++ {
		if a[i] != 0xff {
			dst = append(dst, a[:i]...)
			dst = append(dst, a[i]+1)
			return dst
		}
	}
	return append(dst, a...)
}
