// Copyright (c) 2018-2019 The Decred developers
// Copyright (c) 2026 The LBRY developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gcs

import (
	"fmt"
	"io"
)

// bitWriter appends bits most significant bit first to a byte slice.  The final
// byte is zero padded while it is only partially written.
type bitWriter struct {
	bytes []byte
	used  uint8 // number of bits already written to the final byte
}

// writeBit writes a single bit to the bit stream.
func (w *bitWriter) writeBit(bit bool) {
	if w.used == 0 {
		w.bytes = append(w.bytes, 0)
	}
	if bit {
		w.bytes[len(w.bytes)-1] |= 0x80 >> w.used
	}
	w.used = (w.used + 1) & 7
}

// writeOne writes a one bit to the bit stream.
func (w *bitWriter) writeOne() {
	w.writeBit(true)
}

// writeZero writes a zero bit to the bit stream.
func (w *bitWriter) writeZero() {
	w.writeBit(false)
}

// writeUnary writes q one bits followed by a terminating zero bit.
func (w *bitWriter) writeUnary(q uint64) {
	for q > 0 && w.used != 0 {
		w.writeOne()
		q--
	}
	for q >= 8 {
		w.bytes = append(w.bytes, 0xff)
		q -= 8
	}
	for q > 0 {
		w.writeOne()
		q--
	}
	w.writeZero()
}

// writeNBits writes the n least significant bits of data to the bit stream in
// big endian order.  Panics if n > 64.
func (w *bitWriter) writeNBits(data uint64, n uint) {
	if n > 64 {
		panic(fmt.Sprintf("gcs: cannot write %d bits of a uint64", n))
	}

	// Finish off a partially written byte first.
	for n > 0 && w.used != 0 {
		n--
		w.writeBit(data>>n&1 == 1)
	}

	// Whole bytes.
	for n >= 8 {
		n -= 8
		w.bytes = append(w.bytes, byte(data>>n))
	}

	for n > 0 {
		n--
		w.writeBit(data>>n&1 == 1)
	}
}

// bitReader reads bits most significant bit first from a byte slice.
type bitReader struct {
	bytes []byte
	pos   uint64 // offset of the next bit to read
}

// newBitReader returns a reader positioned at the first bit of bitstream.
func newBitReader(bitstream []byte) bitReader {
	return bitReader{bytes: bitstream}
}

// bitsLeft returns the number of unread bits.
func (r *bitReader) bitsLeft() uint64 {
	return uint64(len(r.bytes))*8 - r.pos
}

// readBit reads a single bit.  Errors with io.EOF when no bits remain.
func (r *bitReader) readBit() (bool, error) {
	if r.bitsLeft() == 0 {
		return false, io.EOF
	}
	bit := r.bytes[r.pos>>3] & (0x80 >> (r.pos & 7))
	r.pos++
	return bit != 0, nil
}

// readUnary returns the number of sequential one bits before the next zero bit
// and consumes the zero bit.  Errors with io.EOF if no zero bit is encountered
// and with ErrUnaryOverflow as soon as the count exceeds limit.
func (r *bitReader) readUnary(limit uint64) (uint64, error) {
	var q uint64
	for {
		// Skip runs of whole 0xff bytes at once when byte aligned.
		for r.pos&7 == 0 && r.bitsLeft() >= 8 && r.bytes[r.pos>>3] == 0xff {
			q += 8
			r.pos += 8
			if q > limit {
				return q, unaryOverflowError(limit)
			}
		}

		bit, err := r.readBit()
		if err != nil {
			return q, err
		}
		if !bit {
			return q, nil
		}
		q++
		if q > limit {
			return q, unaryOverflowError(limit)
		}
	}
}

// readNBits reads n bits as a big endian uint64.  Panics if n > 64.  Errors
// with io.EOF without consuming anything when fewer than n bits remain.
func (r *bitReader) readNBits(n uint) (uint64, error) {
	if n > 64 {
		panic(fmt.Sprintf("gcs: cannot read %d bits as a uint64", n))
	}
	if uint64(n) > r.bitsLeft() {
		return 0, io.EOF
	}

	var value uint64
	for n > 0 {
		offset := uint(r.pos & 7)
		avail := 8 - offset
		take := avail
		if n < take {
			take = n
		}
		chunk := uint64(r.bytes[r.pos>>3]) >> (avail - take) & (1<<take - 1)
		value = value<<take | chunk
		r.pos += uint64(take)
		n -= take
	}
	return value, nil
}

// unaryOverflowError returns an ErrUnaryOverflow error for the given limit.
func unaryOverflowError(limit uint64) error {
	str := fmt.Sprintf("unary quotient exceeds max allowed %d", limit)
	return makeError(ErrUnaryOverflow, str)
}
