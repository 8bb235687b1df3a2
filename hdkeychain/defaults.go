// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkeychain

import (
	"github.com/btcsuite/bip32/chainec"
	"github.com/btcsuite/bip32/hmackdf"
)

// NewSecp256k1 returns a Keychain bound to the secp256k1 provider from the
// chainec package and the HMAC-SHA512 provider from the hmackdf package.
func NewSecp256k1() *Keychain {
	return &Keychain{
		ec:  chainec.Secp256k1,
		kdf: hmackdf.SHA512,
	}
}
