// Copyright (c) 2026 The LBRY developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gcs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/decred/dcrd/wire"
)

// Decoder is a cursor that lazily produces the ascending hashed values of a
// serialized filter one at a time.
//
// A Decoder is not restartable.  Create a new one from the serialized bytes in
// order to iterate the values again.  It is not safe for concurrent use,
// however, any number of decoders may read the same bytes concurrently.
type Decoder struct {
	n           uint32
	p           uint8
	modulusNM   uint64
	maxQuotient uint64
	r           bitReader
	numRead     uint32
	value       uint64
	err         error
}

// newDecoder returns a decoder for the bitstream of a filter with n items and
// the given bit parameter and modulus.
func newDecoder(n uint32, p uint8, modulusNM uint64, bitstream []byte) *Decoder {
	return &Decoder{
		n:           n,
		p:           p,
		modulusNM:   modulusNM,
		maxQuotient: maxQuotientFor(modulusNM, p),
		r:           newBitReader(bitstream),
	}
}

// parseN parses the number of items from the front of a serialized filter and
// returns it along with the remaining bitstream.
func parseN(d []byte) (uint32, []byte, error) {
	if len(d) == 0 {
		return 0, nil, makeError(ErrMisserialized, "number of items "+
			"serialization missing")
	}

	n, err := wire.ReadVarInt(bytes.NewReader(d), 0)
	if err != nil {
		str := fmt.Sprintf("failed to read number of filter items: %v", err)
		return 0, nil, makeError(ErrMisserialized, str)
	}
	if n > math.MaxUint32 {
		str := fmt.Sprintf("number of filter items %d is greater than max "+
			"allowed %d", n, uint32(math.MaxUint32))
		return 0, nil, makeError(ErrNTooBig, str)
	}
	return uint32(n), d[wire.VarIntSerializeSize(n):], nil
}

// NewDecoder parses the number of items of the serialized filter d and returns
// a decoder positioned before the first value.  The params must be the ones
// the filter was built with.
func NewDecoder(params FilterParams, d []byte) (*Decoder, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	n, bitstream, err := parseN(d)
	if err != nil {
		return nil, err
	}
	return newDecoder(n, params.P, uint64(n)*params.M, bitstream), nil
}

// N returns the number of items in the filter.
func (d *Decoder) N() uint32 {
	return d.n
}

// Remaining returns the number of values that have not been read yet.
func (d *Decoder) Remaining() uint32 {
	return d.n - d.numRead
}

// Next returns the next value in ascending order.  It returns io.EOF once all
// N values have been produced.  A corrupt bitstream results in an error that
// is returned from every later call as well.
func (d *Decoder) Next() (uint64, error) {
	if d.err != nil {
		return 0, d.err
	}
	if d.numRead == d.n {
		return 0, io.EOF
	}

	delta, err := d.r.readGolombRice(d.p, d.maxQuotient)
	if err != nil {
		if errors.Is(err, io.EOF) {
			str := fmt.Sprintf("bitstream exhausted after %d of %d items",
				d.numRead, d.n)
			err = makeError(ErrMisserialized, str)
		}
		d.err = err
		return 0, err
	}

	// Every value must remain in the range [0, N*M).  The subtraction form
	// also catches wraparound.
	if delta > d.modulusNM-1-d.value {
		str := fmt.Sprintf("item %d is outside of the filter range %d",
			d.numRead, d.modulusNM)
		d.err = makeError(ErrMisserialized, str)
		return 0, d.err
	}

	d.value += delta
	d.numRead++
	return d.value, nil
}

// All reads every remaining value and returns them.
func (d *Decoder) All() ([]uint64, error) {
	// N comes from the serialized bytes, so it is only trusted as far as the
	// bitstream can back it up.  Every code takes at least P+1 bits.
	sizeHint := uint64(d.Remaining())
	if maxCodes := d.r.bitsLeft() / (uint64(d.p) + 1); maxCodes < sizeHint {
		sizeHint = maxCodes
	}
	values := make([]uint64, 0, sizeHint)
	for {
		v, err := d.Next()
		if errors.Is(err, io.EOF) {
			return values, nil
		}
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
}

// checkTrailer ensures the bitstream ends with the final item aside from zero
// padding in the last byte.  It must only be called after all items are read.
func (d *Decoder) checkTrailer() error {
	left := d.r.bitsLeft()
	if left >= 8 {
		str := fmt.Sprintf("serialized filter contains %d excess bytes",
			left/8)
		return makeError(ErrExcessData, str)
	}
	if left == 0 {
		return nil
	}
	padding, err := d.r.readNBits(uint(left))
	if err != nil {
		return err
	}
	if padding != 0 {
		return makeError(ErrMisserialized, "serialized filter has non-zero "+
			"padding bits")
	}
	return nil
}
