// Copyright (c) 2015-2016 The Decred developers
// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package chainec provides the elliptic curve backend for hierarchical
deterministic key derivation.

Overview

This package provides thin wrappers around btcec so the key derivation code
only ever exchanges byte slices with the curve implementation.  Private keys
are 32-byte big-endian scalars, public keys are 33-byte compressed points and
signatures are 64-byte R || S values.

The exported Secp256k1 value satisfies the hdkeychain.ECProvider interface.
*/
package chainec
