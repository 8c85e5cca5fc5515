// Copyright (c) 2026 The LBRY developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gcs

import (
	"fmt"

	"github.com/decred/dcrd/chaincfg/chainhash"
)

// Source identifies where a filter is constructed from.  It is implemented by
// FromElements, FromEncoded, and FromBlockWrapper.
//
// Every source yields a filter in the same canonical state, so code that
// queries a filter never needs to know how it was constructed.
type Source interface {
	filterSource()
}

// FromElements is a Source that builds a new filter from a set of items.
type FromElements [][]byte

// FromEncoded is a Source that parses a filter serialized by Filter.Bytes.
type FromEncoded []byte

// FromBlockWrapper is a Source that parses the serialized filter carried by a
// per-block filter along with the hash of the block it commits to.
type FromBlockWrapper struct {
	BlockHash chainhash.Hash
	Encoded   []byte
}

func (FromElements) filterSource()     {}
func (FromEncoded) filterSource()      {}
func (FromBlockWrapper) filterSource() {}

// Build constructs a filter with the given parameters from any Source.
func Build(params FilterParams, src Source) (*Filter, error) {
	switch src := src.(type) {
	case FromElements:
		return NewFilter(params, src)

	case FromEncoded:
		return FromBytes(params, src)

	case FromBlockWrapper:
		f, err := FromBytes(params, src.Encoded)
		if err != nil {
			str := fmt.Sprintf("invalid filter for block %v: %v",
				src.BlockHash, err)
			return nil, Error{Err: err, Description: str}
		}
		return f, nil
	}

	panic(fmt.Sprintf("gcs: unsupported filter source %T", src))
}
