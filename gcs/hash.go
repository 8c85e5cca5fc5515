// Copyright (c) 2019 The Decred developers
// Copyright (c) 2026 The LBRY developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gcs

import (
	"math/bits"

	"github.com/dchest/siphash"
)

// fastReduce calculates a mapping that is more or less equivalent to x mod N.
// However, instead of using a mod operation that can lead to slowness on many
// processors when not using a power of two due to unnecessary division, this
// uses a "multiply-and-shift" trick that eliminates all divisions as described
// in a blog post by Daniel Lemire, located at the following site at the time
// of this writing:
// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
//
// The general idea is to treat x as a fixed-point fraction of 2^64 and scale it
// by N:
//
// (x * N) / 2^64 == (x * N) >> 64
//
// This maps all multiples of N in [0,2^64) to 0, all multiples of N in
// [2^64, 2*2^64) to 1, etc.  This results in either ceil(2^64/N) or
// floor(2^64/N) multiples of N.
//
// It is also the reduction required by BIP158 so filters agree bit-for-bit
// with other implementations.
func fastReduce(x, N uint64) uint64 {
	// The high 64 bits in a 128-bit product is the same as shifting the entire
	// product right by 64 bits.
	hi, _ := bits.Mul64(x, N)
	return hi
}

// HashToRange hashes data with SipHash-2-4 keyed by k0 and k1 and reduces the
// result to the range [0, modulus).  A modulus of zero always yields zero.
func HashToRange(data []byte, k0, k1, modulus uint64) uint64 {
	return fastReduce(siphash.Hash(k0, k1, data), modulus)
}

// hashToRange is a convenience wrapper around HashToRange that takes the key
// from the filter parameters.
func (p *FilterParams) hashToRange(data []byte, modulus uint64) uint64 {
	return HashToRange(data, p.K0, p.K1, modulus)
}
