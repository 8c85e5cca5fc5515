// Copyright (c) 2019 The Decred developers
// Copyright (c) 2026 The LBRY developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockcf

import (
	"fmt"
	"io"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/wire"
	"github.com/lbryio/lbry-sdk/gcs"
)

// FilterType identifies the contents and parameters of a per-block filter.
type FilterType uint8

const (
	// Basic is the BIP158 basic filter type which is keyed by the hash of the
	// block it commits to.
	Basic FilterType = 0

	// Address is the address filter type used by lbry light clients.  Its
	// members are the hash160 of every address a block touches and it uses a
	// zero key so filters for blocks, transactions, and groups of blocks all
	// share the same parameters.
	Address FilterType = 1
)

const (
	// BasicP is the Golomb-Rice bit parameter for basic filters.
	BasicP = 19

	// BasicM is the inverse of the target false positive rate for basic
	// filters.  This is the optimal value of M to minimize the size of the
	// filter for P = 19.
	BasicM = 784931

	// AddressP is the Golomb-Rice bit parameter for address filters.
	AddressP = gcs.DefaultP

	// AddressM is the inverse of the target false positive rate for address
	// filters.
	AddressM = gcs.DefaultM
)

// filterTypeStrings is a map of filter types back to their constant names for
// pretty printing.
var filterTypeStrings = map[FilterType]string{
	Basic:   "basic",
	Address: "address",
}

// String returns the FilterType in human-readable form.
func (t FilterType) String() string {
	if s, ok := filterTypeStrings[t]; ok {
		return s
	}
	return fmt.Sprintf("Unknown FilterType (%d)", uint8(t))
}

// ParseFilterType returns the filter type for its human-readable name.
func ParseFilterType(s string) (FilterType, error) {
	for t, name := range filterTypeStrings {
		if name == s {
			return t, nil
		}
	}
	str := fmt.Sprintf("unknown filter type %q", s)
	return 0, makeError(ErrUnknownFilterType, str)
}

// Key creates a block filter key by truncating the provided block hash to the
// first gcs.KeySize bytes.
func Key(blockHash *chainhash.Hash) [gcs.KeySize]byte {
	var key [gcs.KeySize]byte
	copy(key[:], blockHash[:])
	return key
}

// ParamsFor returns the filter parameters for the given filter type and block.
func ParamsFor(filterType FilterType, blockHash *chainhash.Hash) (gcs.FilterParams, error) {
	switch filterType {
	case Basic:
		return gcs.NewParams(Key(blockHash), BasicP, BasicM), nil
	case Address:
		return gcs.FilterParams{P: AddressP, M: AddressM}, nil
	}

	str := fmt.Sprintf("no parameters for filter type %v", filterType)
	return gcs.FilterParams{}, makeError(ErrUnknownFilterType, str)
}

// Entries describes all of the filter entries used to create a GCS filter and
// provides methods for appending data structures found in blocks.
type Entries [][]byte

// AddPkScript adds an output script to an entries slice.  Empty scripts are
// ignored.
func (e *Entries) AddPkScript(script []byte) {
	if len(script) == 0 {
		return
	}
	*e = append(*e, script)
}

// AddAddressHash adds the hash160 of an address to an entries slice.  Hashes of
// any length other than 20 bytes are ignored.
func (e *Entries) AddAddressHash(hash160 []byte) {
	if len(hash160) != hash160Size {
		return
	}
	*e = append(*e, hash160)
}

// BlockFilter is a filter of a given type that commits to a single block.  It
// is immutable and safe for concurrent use.
type BlockFilter struct {
	blockHash  chainhash.Hash
	filterType FilterType
	filter     *gcs.Filter
}

// checkSize ensures a serialized filter fits in a committed filter message.
func checkSize(size int) error {
	if size > wire.MaxCFilterDataSize {
		str := fmt.Sprintf("serialized filter is %d bytes which exceeds the "+
			"max allowed %d", size, wire.MaxCFilterDataSize)
		return makeError(ErrFilterTooLarge, str)
	}
	return nil
}

// New builds a filter of the given type for the block with the provided hash
// that contains all of the passed elements.
func New(filterType FilterType, blockHash *chainhash.Hash, elements [][]byte) (*BlockFilter, error) {
	params, err := ParamsFor(filterType, blockHash)
	if err != nil {
		return nil, err
	}
	f, err := gcs.Build(params, gcs.FromElements(elements))
	if err != nil {
		return nil, err
	}
	if err := checkSize(len(f.Bytes())); err != nil {
		return nil, err
	}

	log.Debugf("Built %v filter for block %v with %d items", filterType,
		blockHash, f.N())
	return &BlockFilter{
		blockHash:  *blockHash,
		filterType: filterType,
		filter:     f,
	}, nil
}

// FromBytes parses and validates a serialized filter of the given type that
// commits to the block with the provided hash.
func FromBytes(filterType FilterType, blockHash *chainhash.Hash, encoded []byte) (*BlockFilter, error) {
	if err := checkSize(len(encoded)); err != nil {
		return nil, err
	}
	params, err := ParamsFor(filterType, blockHash)
	if err != nil {
		return nil, err
	}
	f, err := gcs.Build(params, gcs.FromBlockWrapper{
		BlockHash: *blockHash,
		Encoded:   encoded,
	})
	if err != nil {
		return nil, err
	}
	return &BlockFilter{
		blockHash:  *blockHash,
		filterType: filterType,
		filter:     f,
	}, nil
}

// BlockHash returns the hash of the block the filter commits to.
func (bf *BlockFilter) BlockHash() chainhash.Hash {
	return bf.blockHash
}

// Type returns the type of the filter.
func (bf *BlockFilter) Type() FilterType {
	return bf.filterType
}

// Filter returns the underlying GCS filter.
func (bf *BlockFilter) Filter() *gcs.Filter {
	return bf.filter
}

// Bytes returns the serialized GCS filter.
func (bf *BlockFilter) Bytes() []byte {
	return bf.filter.Bytes()
}

// N returns the number of distinct items in the filter.
func (bf *BlockFilter) N() uint32 {
	return bf.filter.N()
}

// Match returns whether the data is likely a member of the filter.
func (bf *BlockFilter) Match(data []byte) bool {
	return bf.filter.Match(data)
}

// MatchAny returns whether any of the data is likely a member of the filter.
func (bf *BlockFilter) MatchAny(data [][]byte) bool {
	return bf.filter.MatchAny(data)
}

// Hash returns the hash of the serialized filter.
func (bf *BlockFilter) Hash() chainhash.Hash {
	return bf.filter.Hash()
}

// Header returns the filter chain header for the filter given the header of
// the filter for the previous block.
func (bf *BlockFilter) Header(prevHeader *chainhash.Hash) chainhash.Hash {
	return gcs.MakeHeaderForFilter(bf.filter, prevHeader)
}

// Serialize writes the filter to w as a committed filter message which carries
// the block hash and filter type along with the serialized filter.
func (bf *BlockFilter) Serialize(w io.Writer) error {
	msg := wire.NewMsgCFilter(&bf.blockHash, wire.FilterType(bf.filterType),
		bf.filter.Bytes())
	return msg.BtcEncode(w, wire.ProtocolVersion)
}

// Deserialize reads a committed filter message from r and returns the parsed
// and validated block filter it carries.
func Deserialize(r io.Reader) (*BlockFilter, error) {
	var msg wire.MsgCFilter
	if err := msg.BtcDecode(r, wire.ProtocolVersion); err != nil {
		return nil, err
	}
	return FromBytes(FilterType(msg.FilterType), &msg.BlockHash, msg.Data)
}
