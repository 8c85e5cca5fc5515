// Copyright (c) 2026 The LBRY developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gcs

import (
	"encoding/binary"
	"fmt"
	"math"
)

// KeySize is the size of the byte array required for key material for the
// SipHash keyed hash function.
const KeySize = 16

const (
	// MaxP is the largest supported Golomb-Rice bit parameter.
	MaxP = 32

	// DefaultP is the Golomb-Rice bit parameter used by lbry address filters.
	DefaultP = 20

	// DefaultM is the inverse false positive rate used by lbry address
	// filters.
	DefaultM = 1 << 20
)

// DefaultParams are the parameters used by lbry address filters: P=20,
// M=2^20 and an all zero SipHash key.
//
// Filters built with one set of parameters must be queried with exactly the
// same parameters.  Nothing in the serialized form records them, so a mismatch
// silently produces wrong answers rather than an error.
var DefaultParams = FilterParams{P: DefaultP, M: DefaultM}

// FilterParams houses the tunable parameters used to build and query a filter.
type FilterParams struct {
	// K0 and K1 are the two halves of the SipHash-2-4 key.
	K0, K1 uint64

	// P is the number of bits of the fixed width remainder in the Golomb-Rice
	// code of each delta.  It must be in the range [1, 32].
	P uint8

	// M is the inverse of the target false positive rate.  Items are hashed
	// into the range [0, N*M).  It must be in the range [1, 2^32).
	M uint64
}

// NewParams returns filter parameters for the given key, bit parameter and
// inverse false positive rate.  The key is split into two little-endian
// uint64s to form the SipHash key.
func NewParams(key [KeySize]byte, P uint8, M uint64) FilterParams {
	return FilterParams{
		K0: binary.LittleEndian.Uint64(key[0:8]),
		K1: binary.LittleEndian.Uint64(key[8:16]),
		P:  P,
		M:  M,
	}
}

// Validate returns an error when the parameters can't be used to build or
// query a filter.
func (p FilterParams) Validate() error {
	switch {
	case p.P == 0:
		return makeError(ErrPTooSmall, "P value of 0 is less than min "+
			"allowed 1")
	case p.P > MaxP:
		str := fmt.Sprintf("P value of %d is greater than max allowed %d",
			p.P, MaxP)
		return makeError(ErrPTooBig, str)
	case p.M == 0:
		return makeError(ErrMTooSmall, "M value of 0 is less than min "+
			"allowed 1")
	case p.M > math.MaxUint32:
		str := fmt.Sprintf("M value of %d is greater than max allowed %d",
			p.M, uint64(math.MaxUint32))
		return makeError(ErrMTooBig, str)
	}
	return nil
}

// String returns the parameters in a human-readable form.  The key is
// intentionally omitted.
func (p FilterParams) String() string {
	return fmt.Sprintf("P=%d M=%d", p.P, p.M)
}
