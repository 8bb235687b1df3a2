// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyring

import (
	"errors"

	"github.com/btcsuite/bip32/hdkeychain"
	"github.com/btcsuite/btcd/btcec/v2"
)

const (
	// BIP0043Purpose is the purpose field of every path derived by a key
	// ring.  All keys live below m/1017'/coinType'.
	BIP0043Purpose = 1017

	// CoinTypeBitcoin specifies the BIP44 coin type for Bitcoin key
	// derivation.
	CoinTypeBitcoin uint32 = 0

	// CoinTypeTestnet specifies the BIP44 coin type for all testnet key
	// derivation.
	CoinTypeTestnet uint32 = 1

	// externalBranch is the only branch below a key family.
	externalBranch = 0

	// DefaultCacheSize is the number of derived public keys a PubKeyRing
	// keeps when no size is given.
	DefaultCacheSize = 1000
)

var (
	// MaxKeyRangeScan is the maximum number of indices DerivePrivKey will
	// scan when the caller knows the public key but not its index.
	MaxKeyRangeScan uint32 = 100000

	// ErrCannotDerivePrivKey is returned when DerivePrivKey is unable to
	// find the private key for a public key within its key family.
	ErrCannotDerivePrivKey = errors.New("unable to derive private key")

	// ErrNotAccountKey is returned when a PubKeyRing is created from a key
	// that is not a hardened key at the account depth.
	ErrNotAccountKey = errors.New("key is not a hardened account key")

	// ErrFamilyMismatch is returned when a PubKeyRing is asked for a key
	// outside of the family of its account key.
	ErrFamilyMismatch = errors.New("key family does not match account")

	// ErrRingClosed is returned by a SecretKeyRing after Close.
	ErrRingClosed = errors.New("key ring is closed")
)

// KeyFamily represents a distinct branch of keys within the HD tree, an
// account in BIP43 terms.  Every key is derived along
//
//   - m/1017'/coinType'/keyFamily'/0/index
type KeyFamily uint32

// KeyLocator is a two-tuple that identifies any key derived by a key ring.
type KeyLocator struct {
	// Family is the family of key being identified.
	Family KeyFamily

	// Index is the precise index of the key being identified.
	Index uint32
}

// IsEmpty returns true if a KeyLocator is "empty".  This is the case when a
// key is known only by its public key.
func (k KeyLocator) IsEmpty() bool {
	return k.Family == 0 && k.Index == 0
}

// path returns the full derivation path of the key relative to the root.
func (k KeyLocator) path(coinType uint32) hdkeychain.DerivationPath {
	return hdkeychain.DerivationPath{
		hdkeychain.HardenedKeyStart + BIP0043Purpose,
		hdkeychain.HardenedKeyStart + coinType,
		hdkeychain.HardenedKeyStart + uint32(k.Family),
		externalBranch,
		k.Index,
	}
}

// KeyDescriptor wraps a KeyLocator and also optionally includes a public key.
// Either the KeyLocator must be non-empty, or the public key must be set.
type KeyDescriptor struct {
	// KeyLocator is the internal KeyLocator of the descriptor.
	KeyLocator

	// PubKey is an optional public key that fully describes a target key.
	// If this is nil, the KeyLocator MUST NOT be empty.
	PubKey *btcec.PublicKey
}

// KeyRing performs public derivation of keys by locator.  Only an account
// level extended public key is needed to implement it.
type KeyRing interface {
	// DeriveNextKey derives the next unused external key within the key
	// family.
	DeriveNextKey(keyFam KeyFamily) (KeyDescriptor, error)

	// DeriveKey derives the key specified by the passed KeyLocator.
	DeriveKey(keyLoc KeyLocator) (KeyDescriptor, error)
}

// SecretKeyRing is a KeyRing that also has access to the private keys and
// can sign with them.
type SecretKeyRing interface {
	KeyRing

	// DerivePrivKey returns the private key described by the descriptor.
	// A descriptor with a public key and a zero index has its family
	// searched for the key.  ErrCannotDerivePrivKey is returned when the
	// key is not found or does not match the descriptor's public key.
	DerivePrivKey(keyDesc KeyDescriptor) (*btcec.PrivateKey, error)

	// SignDigest signs a 32-byte digest with the key at the locator and
	// returns a 64-byte R || S signature.
	SignDigest(keyLoc KeyLocator, digest [32]byte) ([]byte, error)

	// SignDigestCompact signs a 32-byte digest with the key at the locator
	// and returns a 65-byte signature from which the public key can be
	// recovered.
	SignDigestCompact(keyLoc KeyLocator, digest [32]byte) ([]byte, error)
}
