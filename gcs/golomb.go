// Copyright (c) 2026 The LBRY developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gcs

import (
	"math"
)

// writeGolombRice writes v using Golomb-Rice coding with a bin size of 2^p.
//
// The quotient v >> p is written in unary followed by the p-bit remainder in
// big endian.  Note that Golomb coding typically uses truncated binary encoding
// for the remainder in order to support arbitrary bin sizes, however, since the
// bin size is fixed to a power of 2, it is equivalent to a regular binary code.
func (w *bitWriter) writeGolombRice(v uint64, p uint8) {
	w.writeUnary(v >> p)
	w.writeNBits(v, uint(p))
}

// readGolombRice reads a value written by writeGolombRice with the same p.
// The unary quotient is not allowed to exceed maxQuotient.
func (r *bitReader) readGolombRice(p uint8, maxQuotient uint64) (uint64, error) {
	q, err := r.readUnary(maxQuotient)
	if err != nil {
		return 0, err
	}

	rem, err := r.readNBits(uint(p))
	if err != nil {
		return 0, err
	}

	return q<<p | rem, nil
}

// maxQuotientFor returns the largest unary quotient a valid filter hashed into
// [0, modulus) can contain for bit parameter p.  Every delta is less than the
// modulus, so any longer run can only come from a corrupt bitstream.
func maxQuotientFor(modulus uint64, p uint8) uint64 {
	if modulus == 0 {
		return 0
	}
	return (modulus - 1) >> p
}

// encodeDeltas writes the Golomb-Rice coded deltas between the ascending sorted
// values to a new bitstream and returns its bytes.
func encodeDeltas(values []uint64, p uint8) []byte {
	// Every entry will have p bits for the remainder portion and a quotient
	// that is expected to be 1 on average with an exponentially decreasing
	// probability for each subsequent value with reasonably optimal parameters.
	// A quotient of 1 takes 2 bits in unary to encode and a quotient of 2 takes
	// 3 bits.  Since the first two terms dominate, a reasonable expected size
	// in bytes is:
	//   (Np + 2N/2 + 3N/2) / 8
	n := uint64(len(values))
	sizeHint := (n*uint64(p) + n + 3*n>>1) >> 3
	if sizeHint > math.MaxInt32 {
		sizeHint = 0
	}
	w := bitWriter{bytes: make([]byte, 0, sizeHint)}

	var prev uint64
	for _, v := range values {
		w.writeGolombRice(v-prev, p)
		prev = v
	}
	return w.bytes
}
