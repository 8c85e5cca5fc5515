// Copyright (c) 2016-2017 The btcsuite developers
// Copyright (c) 2016-2017 The Lightning Network Developers
// Copyright (c) 2018-2019 The Decred developers
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
	"sort"
	"sync"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/crypto/blake256"
	"github.com/decred/dcrd/wire"
)

// uint64s implements sort.Interface for *[]uint64
type uint64s []uint64

func (s *uint64s) Len() int           { return len(*s) }
func (s *uint64s) Less(i, j int) bool { return (*s)[i] < (*s)[j] }
func (s *uint64s) Swap(i, j int)      { (*s)[i], (*s)[j] = (*s)[j], (*s)[i] }

// Filter describes an immutable filter that can be built from a set of data
// elements, serialized, deserialized, and queried in a thread-safe manner.  The
// serialized form is compressed as a Golomb Coded Set (GCS) along with the
// number of members of the set encoded as a variable length integer.  The hash
// function used is SipHash-2-4, a keyed function.  The parameters used in
// building the filter, including the key, are required in order to match
// filter values and are not included in the serialized form.
type Filter struct {
	params      FilterParams
	n           uint32
	modulusNM   uint64
	filterNData []byte
	filterData  []byte // Slice into filterNData with raw filter bytes.
}

// serializeFilter returns n as a variable length integer followed by the
// bitstream along with the size of the encoded n.
func serializeFilter(n uint32, bitstream []byte) ([]byte, int) {
	var buf bytes.Buffer
	nSize := wire.VarIntSerializeSize(uint64(n))
	buf.Grow(nSize + len(bitstream))

	// The errors are ignored here since they can't realistically fail due to
	// writing into an allocated buffer.
	_ = wire.WriteVarInt(&buf, 0, uint64(n))
	_, _ = buf.Write(bitstream)
	return buf.Bytes(), nSize
}

// NewFilter builds a new GCS filter with the provided parameters that contains
// every item of the passed data as a member of the set.
//
// The data is treated as a set: the order is irrelevant and duplicate items are
// only included once.  Items of zero length are permitted.  Distinct items that
// reduce to the same value are both retained as a zero delta so the encoded
// number of items always matches the number of distinct items.
//
// An empty set produces a valid filter that never matches anything.
func NewFilter(params FilterParams, data [][]byte) (*Filter, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	// Remove any duplicate items.
	seen := make(map[string]struct{}, len(data))
	items := make([][]byte, 0, len(data))
	for _, d := range data {
		if _, ok := seen[string(d)]; ok {
			continue
		}
		seen[string(d)] = struct{}{}
		items = append(items, d)
	}

	numEntries := uint64(len(items))
	if numEntries > math.MaxUint32 {
		str := fmt.Sprintf("unable to create filter with %d entries greater "+
			"than max allowed %d", numEntries, uint32(math.MaxUint32))
		return nil, makeError(ErrNTooBig, str)
	}

	// Reduce the hash of each data element to the range [0,N*M) and sort it.
	modulusNM := numEntries * params.M
	values := make([]uint64, 0, numEntries)
	for _, d := range items {
		values = append(values, params.hashToRange(d, modulusNM))
	}
	sort.Sort((*uint64s)(&values))

	filterNData, nSize := serializeFilter(uint32(numEntries),
		encodeDeltas(values, params.P))
	f := &Filter{
		params:      params,
		n:           uint32(numEntries),
		modulusNM:   modulusNM,
		filterNData: filterNData,
		filterData:  filterNData[nSize:],
	}
	log.Tracef("Built filter with %d items (%d bytes, %v)", f.n,
		len(f.filterNData), params)
	return f, nil
}

// FromBytes deserializes a GCS filter from the given parameters and serialized
// filter as returned by Bytes().
//
// The serialized filter is fully validated: every item must decode, the values
// must stay within the filter range, and nothing but zero padding may follow
// the final item.  The filter retains its own copy of d.
func FromBytes(params FilterParams, d []byte) (*Filter, error) {
	dec, err := NewDecoder(params, d)
	if err != nil {
		log.Debugf("Rejected serialized filter: %v", err)
		return nil, err
	}
	for {
		_, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Debugf("Rejected serialized filter: %v", err)
			return nil, err
		}
	}
	if err := dec.checkTrailer(); err != nil {
		log.Debugf("Rejected serialized filter: %v", err)
		return nil, err
	}

	filterNData := make([]byte, len(d))
	copy(filterNData, d)
	nSize := wire.VarIntSerializeSize(uint64(dec.n))
	return &Filter{
		params:      params,
		n:           dec.n,
		modulusNM:   dec.modulusNM,
		filterNData: filterNData,
		filterData:  filterNData[nSize:],
	}, nil
}

// Bytes returns the serialized format of the GCS filter which includes N, but
// does not include other parameters such as the false positive rate or the key.
//
// The returned slice is owned by the filter and must not be modified.
func (f *Filter) Bytes() []byte {
	return f.filterNData
}

// N returns the number of distinct items used to build the filter.
func (f *Filter) N() uint32 {
	return f.n
}

// Params returns the parameters the filter was built or parsed with.
func (f *Filter) Params() FilterParams {
	return f.params
}

// NewDecoder returns a decoder over the hashed values of the filter.
func (f *Filter) NewDecoder() *Decoder {
	return newDecoder(f.n, f.params.P, f.modulusNM, f.filterData)
}

// Values returns the ascending hashed values encoded in the filter.
func (f *Filter) Values() []uint64 {
	// The filter contents were validated on construction, so decoding can't
	// fail.
	values, err := f.NewDecoder().All()
	if err != nil {
		panic(fmt.Sprintf("gcs: decoding validated filter: %v", err))
	}
	return values
}

// Match checks whether a []byte value is likely (within collision probability)
// to be a member of the set represented by the filter.
func (f *Filter) Match(data []byte) bool {
	// An empty filter can't possibly match anything.
	if f.n == 0 {
		return false
	}

	// Hash the search term with the same parameters as the filter.
	term := f.params.hashToRange(data, f.modulusNM)

	// Go through the search filter and look for the desired value.  The
	// values are ascending, so stop as soon as the search term is passed.
	dec := f.NewDecoder()
	for {
		value, err := dec.Next()
		if err != nil {
			return false
		}
		if value >= term {
			return value == term
		}
	}
}

// matchPool pools allocations for match data.
var matchPool sync.Pool

// MatchAny checks whether any []byte value is likely (within collision
// probability) to be a member of the set represented by the filter faster than
// calling Match() for each value individually.
func (f *Filter) MatchAny(data [][]byte) bool {
	// An empty filter or empty data can't possibly match anything.
	if f.n == 0 || len(data) == 0 {
		return false
	}

	// Create an uncompressed filter of the search values.
	var values *[]uint64
	if v := matchPool.Get(); v != nil {
		values = v.(*[]uint64)
		*values = (*values)[:0]
	} else {
		vs := make([]uint64, 0, len(data))
		values = &vs
	}
	defer matchPool.Put(values)
	for _, d := range data {
		*values = append(*values, f.params.hashToRange(d, f.modulusNM))
	}
	sort.Sort((*uint64s)(values))

	// Zip down the filter and the search values, advancing whichever one is
	// behind, until either a match is found or one of them runs out.
	dec := f.NewDecoder()
	search := *values
	var searchIdx int
	for {
		filterVal, err := dec.Next()
		if err != nil {
			return false
		}

		for searchIdx < len(search) && search[searchIdx] < filterVal {
			searchIdx++
		}
		if searchIdx == len(search) {
			return false
		}
		if search[searchIdx] == filterVal {
			return true
		}
	}
}

// Hash returns the BLAKE256 hash of the serialized filter.
func (f *Filter) Hash() chainhash.Hash {
	return chainhash.Hash(blake256.Sum256(f.filterNData))
}

// MakeHeaderForFilter makes a filter chain header for a filter, given the
// filter and the previous filter chain header.
func MakeHeaderForFilter(filter *Filter, prevHeader *chainhash.Hash) chainhash.Hash {
	// Compute hash || prevHash as an intermediate value.
	var filterTip [2 * chainhash.HashSize]byte
	filterHash := filter.Hash()
	copy(filterTip[:], filterHash[:])
	copy(filterTip[chainhash.HashSize:], prevHeader[:])

	// The final filter hash is the blake256 of the hash computed above.
	return chainhash.Hash(blake256.Sum256(filterTip[:]))
}
