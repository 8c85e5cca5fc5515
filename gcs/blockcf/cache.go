// Copyright (c) 2026 The LBRY developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockcf

import (
	"bytes"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/container/lru"
)

// cacheKey identifies a cached filter by the block it commits to and its type.
type cacheKey struct {
	blockHash  chainhash.Hash
	filterType FilterType
}

// Cache is a bounded least recently used cache of parsed block filters.  It
// avoids validating the same serialized filter repeatedly when a light client
// checks a block against several watch lists.
//
// The cache is safe for concurrent access.
type Cache struct {
	filters *lru.Map[cacheKey, *BlockFilter]
}

// NewCache returns an empty cache that holds up to limit filters.
func NewCache(limit uint32) *Cache {
	return &Cache{filters: lru.NewMap[cacheKey, *BlockFilter](limit)}
}

// Add adds the filter to the cache, evicting the least recently used filter
// when the cache is full.
func (c *Cache) Add(bf *BlockFilter) {
	key := cacheKey{blockHash: bf.blockHash, filterType: bf.filterType}
	if numEvicted := c.filters.Put(key, bf); numEvicted > 0 {
		log.Tracef("Evicted %d filters from the cache", numEvicted)
	}
}

// Lookup returns the cached filter of the given type for the block, if any.
func (c *Cache) Lookup(filterType FilterType, blockHash *chainhash.Hash) (*BlockFilter, bool) {
	key := cacheKey{blockHash: *blockHash, filterType: filterType}
	return c.filters.Get(key)
}

// FromBytes returns the cached filter for the block when it has the same
// serialized form as encoded.  Otherwise it parses encoded like FromBytes and
// caches the result.
func (c *Cache) FromBytes(filterType FilterType, blockHash *chainhash.Hash, encoded []byte) (*BlockFilter, error) {
	if bf, ok := c.Lookup(filterType, blockHash); ok &&
		bytes.Equal(bf.Bytes(), encoded) {

		return bf, nil
	}

	bf, err := FromBytes(filterType, blockHash, encoded)
	if err != nil {
		return nil, err
	}
	c.Add(bf)
	return bf, nil
}

// Len returns the number of cached filters.
func (c *Cache) Len() uint32 {
	return c.filters.Len()
}
