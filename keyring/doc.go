// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package keyring derives application keys from a BIP0032 tree by key locator.

Keys are grouped into families, which are BIP0043 accounts, and derived along

	m/1017'/coinType'/keyFamily'/0/index

An HDKeyRing owns the root private key and can derive, look up and sign with
any key.  AccountKey hands out the extended public key of a single family,
from which a PubKeyRing derives the same public keys without ever seeing
private key material.  A PubKeyRing keeps recently derived public keys in an
LRU cache since public derivation is the expensive part of watching a family.
*/
package keyring
