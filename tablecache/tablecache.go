// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package tablecache specializes internal/cache into a cache of opened
// table files, keyed by file number, grounded on leveldb's
// db/table_cache.cc: a miss opens the file through an Env and builds a
// Table over it; a transient open failure surfaces on the returned
// iterator's first use rather than poisoning the cache entry.
package tablecache

import (
	"github.com/tidesdb/lsmcore/internal/base"
	"github.com/tidesdb/lsmcore/internal/cache"
	"github.com/tidesdb/lsmcore/vfs"
)

// TableConstructor builds a Table from an opened file and its size. It is
// the environment capability the core consumes without any knowledge of
// on-disk block layout.
type TableConstructor func(file vfs.File, size int64) (base.Table, error)

// Cache maps file numbers to opened (file, table) pairs. entries are
// evicted by internal/cache.Cache under the usual LRU discipline; a
// charge of 1 per entry makes the cache's capacity (or 16, the underlying
// cache's shard count, if capacity is smaller) a ceiling on the number of
// tables it keeps open.
type Cache struct {
	dbname     string
	env        vfs.Env
	buildFn    TableConstructor
	underlying *cache.Cache
}

// New returns a Cache that opens table files for dbname through env,
// builds Tables with buildFn, and bounds itself to capacity entries.
func New(dbname string, env vfs.Env, buildFn TableConstructor, capacity int64) *Cache {
	return &Cache{
		dbname:     dbname,
		env:        env,
		buildFn:    buildFn,
		underlying: cache.New(capacity),
	}
}

// tableAndFile is the value type stored in the underlying cache; its
// deleter closes both the table and the file.
type tableAndFile struct {
	file  vfs.File
	table base.Table
}

func encodeFileNum(n base.FileNum) []byte {
	return base.EncodeFileNum(nil, n)
}

// NewIterator returns an iterator over the table identified by fileNum
// (whose on-disk size is fileSize). On a cache hit, the existing table is
// reused. On a miss, the file is opened and the table built; a failure at
// either step is not cached and is instead reported by the first call on
// the returned iterator. If table is non-nil, *table receives the
// resolved Table on success.
func (c *Cache) NewIterator(fileNum base.FileNum, fileSize int64, table *base.Table) (base.InternalIterator, error) {
	key := encodeFileNum(fileNum)

	h := c.underlying.Lookup(key)
	if h == nil {
		f, err := c.env.Open(vfs.TableFileName(c.dbname, fileNum))
		if err != nil {
			return base.NewErrorIterator(err), nil
		}
		tbl, err := c.buildFn(f, fileSize)
		if err != nil {
			f.Close()
			return base.NewErrorIterator(err), nil
		}
		tf := &tableAndFile{file: f, table: tbl}
		h = c.underlying.Insert(key, tf, 1, func(key []byte, value interface{}) {
			v := value.(*tableAndFile)
			v.table.Close()
			v.file.Close()
		})
	}

	tf := c.underlying.Value(h).(*tableAndFile)
	if table != nil {
		*table = tf.table
	}

	it, err := tf.table.NewIter()
	if err != nil {
		c.underlying.Release(h)
		return base.NewErrorIterator(err), nil
	}
	return &releasingIterator{InternalIterator: it, cache: c.underlying, handle: h}, nil
}

// Evict drops the cached entry for fileNum, if present. Outstanding
// iterators continue to hold the file and table open until they release
// their handle.
func (c *Cache) Evict(fileNum base.FileNum) {
	c.underlying.Erase(encodeFileNum(fileNum))
}

// releasingIterator wraps a table iterator so that the cache handle
// backing it is released exactly once, when the iterator is closed.
type releasingIterator struct {
	base.InternalIterator
	cache  *cache.Cache
	handle *cache.Handle
}

func (it *releasingIterator) Close() error {
	err := it.InternalIterator.Close()
	if it.handle != nil {
		it.cache.Release(it.handle)
		it.handle = nil
	}
	return err
}
