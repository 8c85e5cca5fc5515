// Copyright (c) 2019 The Decred developers
// Copyright (c) 2026 The LBRY developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package blockcf provides functions for building committed filters for blocks
using Golomb-coded sets in a way that is useful for light clients such as SPV
wallets.

Committed filters are a reversal of how bloom filters are typically used by a
light client: a full node commits to filters for every block with a
predetermined collision probability and light clients match against the filters
locally rather than uploading personal data to other nodes.  If a filter
matches, the light client should fetch the entire block and further inspect it
for relevant transactions.

Two filter types are supported.  Basic filters use the BIP158 parameters and
are keyed by the block hash.  Address filters contain the hash160 of every
address a block touches and use a zero key, so a wallet can test its entire
address set against a filter with a single MatchAny call.

Block filters are carried over the wire and stored as committed filter
messages which include the block hash and filter type along with the
serialized filter.
*/
package blockcf
