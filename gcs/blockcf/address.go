// Copyright (c) 2026 The LBRY developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockcf

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

const (
	// hash160Size is the size of the address hash that address filters
	// contain.
	hash160Size = 20

	// PubKeyHashAddrID is the version byte of lbry mainnet pay-to-pubkey-hash
	// addresses.
	PubKeyHashAddrID = 0x55

	// ScriptHashAddrID is the version byte of lbry mainnet pay-to-script-hash
	// addresses.
	ScriptHashAddrID = 0x7a
)

// EncodeAddress returns the base58check encoded address for the hash160 and
// version byte.
func EncodeAddress(hash160 []byte, version byte) string {
	return base58.CheckEncode(hash160, version)
}

// DecodeAddress decodes a base58check encoded address and returns the hash160
// it commits to along with its version byte.  The hash160 is the member of
// address filters for the address.
func DecodeAddress(addr string) ([]byte, byte, error) {
	hash160, version, err := base58.CheckDecode(addr)
	if err != nil {
		str := fmt.Sprintf("address %q is not base58check encoded: %v", addr,
			err)
		return nil, 0, makeError(ErrInvalidAddress, str)
	}
	if len(hash160) != hash160Size {
		str := fmt.Sprintf("address %q commits to %d bytes instead of a "+
			"%d byte hash", addr, len(hash160), hash160Size)
		return nil, 0, makeError(ErrInvalidAddress, str)
	}
	return hash160, version, nil
}

// AddAddress decodes the base58check encoded address and adds its hash160 to
// an entries slice.
func (e *Entries) AddAddress(addr string) error {
	hash160, _, err := DecodeAddress(addr)
	if err != nil {
		return err
	}
	e.AddAddressHash(hash160)
	return nil
}
