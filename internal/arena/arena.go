// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package arena implements a bump-pointer allocator over a list of owned
// blocks, ported from leveldb's util/arena.{h,cc}. It is the allocator the
// memtable's skip list records are carried in: every allocation lives as
// long as the arena does and none is ever individually freed.
package arena

import (
	"unsafe"

	"github.com/cockroachdb/errors"
)

// blockSize is the size of a standard block. An allocation larger than a
// quarter of this gets its own dedicated block instead of fragmenting a
// standard one.
const blockSize = 4096

// pointerSize is used to estimate the bookkeeping overhead of the arena's
// block index in MemoryUsage, matching leveldb's
// blocks_.capacity() * sizeof(char*).
const pointerSize = unsafe.Sizeof(uintptr(0))

// Arena is a bump-pointer allocator. It is not safe for concurrent
// mutation: the memtable's single-writer discipline is what makes its use
// here safe, not any locking in Arena itself.
type Arena struct {
	curBlockLen int    // length of the standard block curTail is a suffix of
	curTail     []byte // unused tail of the current standard block
	blocks      [][]byte
	blocksMem   int // total bytes across all allocated blocks
}

// New returns an empty arena. Its first allocation triggers the first
// block allocation.
func New() *Arena {
	return &Arena{}
}

// Allocate returns n writable bytes whose lifetime equals the arena's.
// Panics if n is zero, mirroring the original's assert(bytes > 0): zero-
// byte allocations have no sensible semantics and no caller needs one.
func (a *Arena) Allocate(n int) []byte {
	if n <= 0 {
		panic(errors.AssertionFailedf("arena: Allocate requires n > 0, got %d", n))
	}
	if n <= len(a.curTail) {
		b := a.curTail[:n:n]
		a.curTail = a.curTail[n:]
		return b
	}
	return a.allocateFallback(n)
}

func (a *Arena) allocateFallback(n int) []byte {
	if n > blockSize/4 {
		// Large allocations get a dedicated block so the current standard
		// block's leftover space isn't wasted serving them; the standard
		// block's tail is kept around for future small allocations.
		return a.allocateNewBlock(n)
	}
	// The current block's tail is too small to be worth tracking further;
	// discard it and start a fresh standard block.
	block := a.allocateNewBlock(blockSize)
	a.curBlockLen = blockSize
	b := block[:n:n]
	a.curTail = block[n:]
	return b
}

// AllocateAligned returns n bytes aligned to the machine pointer size
// (which the arena assumes is a power of two, true of every Go target).
func (a *Arena) AllocateAligned(n int) []byte {
	align := int(pointerSize)
	offset := a.curBlockLen - len(a.curTail)
	slop := 0
	if r := offset & (align - 1); r != 0 {
		slop = align - r
	}
	needed := n + slop
	if needed <= len(a.curTail) {
		b := a.curTail[slop : slop+n : slop+n]
		a.curTail = a.curTail[needed:]
		return b
	}
	// allocateFallback's dedicated-block path always returns a
	// freshly-made slice, which is pointer-aligned at offset zero; its
	// standard-block path starts a fresh block at offset zero too.
	return a.allocateFallback(n)
}

func (a *Arena) allocateNewBlock(size int) []byte {
	block := make([]byte, size)
	a.blocksMem += size
	a.blocks = append(a.blocks, block)
	return block
}

// MemoryUsage returns an estimate of the arena's total footprint: bytes
// allocated in blocks (including any unused tail of the current block)
// plus the overhead of the block index itself.
func (a *Arena) MemoryUsage() int {
	return a.blocksMem + cap(a.blocks)*int(pointerSize)
}
