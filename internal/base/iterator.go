// Copyright 2011 The LevelDB-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package base

// InternalIterator iterates over key/value pairs in internal-key order:
// for identical user keys, forward iteration returns newer sequence
// numbers before older ones, and reverse iteration returns older ones
// before newer ones.
//
// An iterator must be closed after use. It is not necessary to read an
// iterator to exhaustion. An iterator is not goroutine-safe, but distinct
// iterators over the same underlying data may be used concurrently, each
// from its own goroutine.
type InternalIterator interface {
	// SeekGE moves to the first key/value pair whose key is >= key.
	SeekGE(key []byte) bool
	// First moves to the first key/value pair.
	First() bool
	// Last moves to the last key/value pair.
	Last() bool
	// Next moves to the next key/value pair. Returns false when exhausted.
	Next() bool
	// Prev moves to the previous key/value pair. Returns false when
	// exhausted.
	Prev() bool
	// Key returns the internal key of the current pair. Its result is
	// invalidated by the next positioning call.
	Key() InternalKey
	// Value returns the value of the current pair. Its result is
	// invalidated by the next positioning call.
	Value() []byte
	// Valid reports whether the iterator is positioned at a pair.
	Valid() bool
	// Error returns any accumulated error.
	Error() error
	// Close releases the iterator's resources and returns any
	// accumulated error. Safe to call multiple times.
	Close() error
}

// Table is the boundary the core consumes from the on-disk table format:
// given an opened file and its size, a Table yields iterators over its
// contents. Block layout, the index block, and bloom filters are entirely
// the table format's concern and are not visible here.
type Table interface {
	// NewIter returns an unpositioned iterator over the table's contents.
	NewIter() (InternalIterator, error)
	// Close releases resources held by the table. It does not close the
	// underlying file.
	Close() error
}

// errorIterator is an InternalIterator that always reports err and never
// yields a key/value pair. Returned by the table cache on an open failure
// so that the error surfaces on first use rather than at lookup time, and
// so that nothing about the failure is cached.
type errorIterator struct {
	err error
}

// NewErrorIterator returns an InternalIterator whose every positioning
// method returns false and whose Error returns err.
func NewErrorIterator(err error) InternalIterator {
	return &errorIterator{err: err}
}

func (e *errorIterator) SeekGE([]byte) bool  { return false }
func (e *errorIterator) First() bool         { return false }
func (e *errorIterator) Last() bool          { return false }
func (e *errorIterator) Next() bool          { return false }
func (e *errorIterator) Prev() bool          { return false }
func (e *errorIterator) Key() InternalKey    { return InternalKey{} }
func (e *errorIterator) Value() []byte       { return nil }
func (e *errorIterator) Valid() bool         { return false }
func (e *errorIterator) Error() error        { return e.err }
func (e *errorIterator) Close() error        { return e.err }
