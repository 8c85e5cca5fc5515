// Copyright (c) 2018-2023 The Decred developers
// Copyright (c) 2026 The LBRY developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package gcs provides an API for building and using a Golomb-coded set filter.

A Golomb-Coded Set (GCS) is a space-efficient probabilistic data structure that
is used to test set membership with a tunable false positive rate while
simultaneously preventing false negatives.  In other words, items that are in
the set will always match, but items that are not in the set will also sometimes
match with the chosen false positive rate.

The filters follow the construction used by BIP158 compact block filters:

  - Every item is hashed with SipHash-2-4 and mapped to the range [0, N*M)
    with a multiply-and-shift reduction
  - The reduced values are sorted and the deltas between them are Golomb-Rice
    coded with a remainder of P bits
  - The serialized filter is the number of items N as a variable length
    integer followed by the bitstream padded with zero bits

Filters are parameterized by FilterParams:

  - P, the remainder code bit size, in the range [1, 32]
  - M, which defines the false positive rate as 1/M
  - K0 and K1, the key for the SipHash-2-4 function

The parameters are not part of the serialized form.  Querying a filter with
parameters other than those it was built with does not fail, it simply gives
wrong answers, so the parameters must be agreed upon out of band.
DefaultParams holds the parameters used by lbry address filters.

# Construction

A filter can be built from a set of items with NewFilter, parsed from its
serialized form with FromBytes, or created from either via Build and one of the
Source variants.  All paths produce identical filters for identical contents.
Filters are immutable and safe for concurrent use.

The hashed values of a serialized filter can also be read lazily with a
Decoder.

# Errors

The errors returned by this package are of type gcs.Error.  This allows the
caller to programmatically determine the specific error by using errors.Is or
errors.As against the ErrorKind constants while still providing rich error
messages with contextual information.
*/
package gcs
