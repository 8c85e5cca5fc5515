// Copyright (c) 2026 The LBRY developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockcf

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/decred/dcrd/chaincfg/chainhash"
)

// genAddressHashes generates the given number of random address hashes using
// the provided prng.
func genAddressHashes(num int, prng *rand.Rand) Entries {
	entries := make(Entries, 0, num)
	for i := 0; i < num; i++ {
		hash160 := make([]byte, 20)
		prng.Read(hash160)
		entries.AddAddressHash(hash160)
	}
	return entries
}

// BenchmarkAddressFilter benchmarks building an address filter for a block that
// touches 2000 addresses.
func BenchmarkAddressFilter(b *testing.B) {
	// Use a fixed prng seed for stable benchmarks.
	prng := rand.New(rand.NewSource(0))
	entries := genAddressHashes(2000, prng)
	var blockHash chainhash.Hash

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := New(Address, &blockHash, entries); err != nil {
			b.Fatalf("unable to build filter: %v", err)
		}
	}
}

// BenchmarkWalletScan benchmarks matching a wallet's addresses against a
// serialized block filter that is not in the cache.
func BenchmarkWalletScan(b *testing.B) {
	prng := rand.New(rand.NewSource(0))
	var blockHash chainhash.Hash
	bf, err := New(Address, &blockHash, genAddressHashes(2000, prng))
	if err != nil {
		b.Fatalf("unable to build filter: %v", err)
	}
	var buf bytes.Buffer
	if err := bf.Serialize(&buf); err != nil {
		b.Fatalf("unable to serialize filter: %v", err)
	}
	serialized := buf.Bytes()
	wallet := genAddressHashes(100, prng)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		parsed, err := Deserialize(bytes.NewReader(serialized))
		if err != nil {
			b.Fatalf("unable to parse filter: %v", err)
		}
		parsed.MatchAny(wallet)
	}
}

// benchFilters are the filter types benchmarked through the block wrapper.
var benchFilters = []FilterType{Basic, Address}

// BenchmarkNew benchmarks building a filter of each type for a block that
// touches 2000 addresses.
func BenchmarkNew(b *testing.B) {
	entries := genAddressHashes(2000, rand.New(rand.NewSource(0)))
	blockHash := chainhash.Hash{0x01, 0x02, 0x03}
	for _, filterType := range benchFilters {
		b.Run(filterType.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := New(filterType, &blockHash, entries); err != nil {
					b.Fatalf("unable to build filter: %v", err)
				}
			}
		})
	}
}

// BenchmarkFromBytes benchmarks validating a serialized filter of each type.
func BenchmarkFromBytes(b *testing.B) {
	entries := genAddressHashes(2000, rand.New(rand.NewSource(0)))
	blockHash := chainhash.Hash{0x01, 0x02, 0x03}
	for _, filterType := range benchFilters {
		bf, err := New(filterType, &blockHash, entries)
		if err != nil {
			b.Fatalf("unable to build filter: %v", err)
		}
		serialized := bf.Bytes()
		b.Run(filterType.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, err := FromBytes(filterType, &blockHash, serialized)
				if err != nil {
					b.Fatalf("unable to parse filter: %v", err)
				}
			}
		})
	}
}

// BenchmarkCacheFromBytes benchmarks obtaining parsed filters through the cache
// when they are already cached and when every lookup misses.
func BenchmarkCacheFromBytes(b *testing.B) {
	const numBlocks = 16
	prng := rand.New(rand.NewSource(0))
	blockHashes := make([]chainhash.Hash, numBlocks)
	serialized := make([][]byte, numBlocks)
	for i := range blockHashes {
		blockHashes[i] = chainhash.Hash{byte(i)}
		bf, err := New(Address, &blockHashes[i], genAddressHashes(2000, prng))
		if err != nil {
			b.Fatalf("unable to build filter: %v", err)
		}
		serialized[i] = bf.Bytes()
	}

	tests := []struct {
		name  string // benchmark description
		limit uint32 // cache limit
	}{
		{"hit", numBlocks},
		{"miss", 1},
	}
	for _, test := range tests {
		b.Run(test.name, func(b *testing.B) {
			cache := NewCache(test.limit)
			for i := range blockHashes {
				_, err := cache.FromBytes(Address, &blockHashes[i], serialized[i])
				if err != nil {
					b.Fatalf("unable to parse filter: %v", err)
				}
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				j := i % numBlocks
				_, err := cache.FromBytes(Address, &blockHashes[j], serialized[j])
				if err != nil {
					b.Fatalf("unable to parse filter: %v", err)
				}
			}
		})
	}
}
