// Copyright (c) 2014-2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkeychain

// References:
//   [BIP32]: BIP0032 - Hierarchical Deterministic Wallets
//   https://github.com/bitcoin/bips/blob/master/bip-0032.mediawiki

import (
	"crypto/rand"
	"fmt"
)

const (
	// RecommendedSeedLen is the recommended length in bytes for a seed
	// to a master node.
	RecommendedSeedLen = 32 // 256 bits

	// HardenedKeyStart is the index at which a hardened key starts.  Each
	// extended key has 2^31 normal child keys and 2^31 hardened child keys.
	// Thus the range for normal child keys is [0, 2^31 - 1] and the range
	// for hardened child keys is [2^31, 2^32 - 1].
	HardenedKeyStart = 0x80000000 // 2^31

	// MinSeedBytes is the minimum number of bytes allowed for a seed to
	// a master node.
	MinSeedBytes = 16 // 128 bits

	// MaxSeedBytes is the maximum number of bytes allowed for a seed to
	// a master node.
	MaxSeedBytes = 64 // 512 bits

	// MaxChildRetries is the number of consecutive indices Child will try
	// after the requested index produced an invalid key.
	MaxChildRetries = 8

	// kdfOutputLen is the length of the HMAC-SHA512 output.
	kdfOutputLen = 64

	// chainCodeLen is the length of a chain code.
	chainCodeLen = 32

	// privKeyLen is the length of a serialized private key.
	privKeyLen = 32

	// pubKeyCompressedLen is the length of a compressed public key.
	pubKeyCompressedLen = 33

	// pubKeyUncompressedLen is the length of an uncompressed public key.
	pubKeyUncompressedLen = 65
)

var (
	// masterKey is the master key used along with a random seed used to
	// generate the master node in the hierarchical tree.
	masterKey = []byte("Bitcoin seed")
)

// Keychain binds the elliptic curve and KDF providers used to create and
// derive extended keys.  A Keychain is immutable and safe for concurrent use
// when its providers are.
type Keychain struct {
	ec  ECProvider
	kdf KDFProvider
}

// New returns a Keychain that uses the passed providers for every key it
// creates.  ErrProviderNotInitialized is returned when either is nil.
func New(ec ECProvider, kdf KDFProvider) (*Keychain, error) {
	if ec == nil || kdf == nil {
		str := "both an elliptic curve and a KDF provider are required"
		return nil, makeError(ErrProviderNotInitialized, str)
	}

	return &Keychain{ec: ec, kdf: kdf}, nil
}

// ready returns ErrProviderNotInitialized unless the keychain is usable.  It
// accepts a nil receiver so extended keys that were not created by a Keychain
// fail fast.
func (kc *Keychain) ready() error {
	if kc == nil || kc.ec == nil || kc.kdf == nil {
		str := "extended key is not bound to an initialized keychain"
		return makeError(ErrProviderNotInitialized, str)
	}
	return nil
}

// hmacSHA512 runs the KDF provider and checks the length of its output.
func (kc *Keychain) hmacSHA512(key, data []byte) ([]byte, error) {
	out := kc.kdf.HMACSHA512(key, data)
	if len(out) != kdfOutputLen {
		str := fmt.Sprintf("KDF provider returned %d bytes instead of %d",
			len(out), kdfOutputLen)
		return nil, makeError(ErrInvalidKDFOutput, str)
	}
	return out, nil
}

// NewMaster creates a new master node for use in creating a hierarchical
// deterministic key chain.  The seed must be between 128 and 512 bits and
// should be generated by a cryptographically secure random generation source.
//
// The zero Versions value selects the Bitcoin mainnet version bytes.
//
// NOTE: There is an extremely small chance (< 1 in 2^127) the provided seed
// will derive to an unusable secret key.  The ErrInvalidPrivateKey error will
// be returned if this should occur, so the caller must check for it and
// generate a new seed accordingly.
func (kc *Keychain) NewMaster(seed []byte, versions Versions) (*ExtendedKey, error) {
	if err := kc.ready(); err != nil {
		return nil, err
	}

	// Per [BIP32], the seed must be in range [MinSeedBytes, MaxSeedBytes].
	if len(seed) < MinSeedBytes || len(seed) > MaxSeedBytes {
		str := fmt.Sprintf("seed length must be between %d and %d bits",
			MinSeedBytes*8, MaxSeedBytes*8)
		return nil, makeError(ErrInvalidSeedLen, str)
	}

	// First take the HMAC-SHA512 of the master key and the seed data:
	//   I = HMAC-SHA512(Key = "Bitcoin seed", Data = S)
	lr, err := kc.hmacSHA512(masterKey, seed)
	if err != nil {
		return nil, err
	}
	defer zero(lr)

	// Split "I" into two 32-byte sequences Il and Ir where:
	//   Il = master secret key
	//   Ir = master chain code
	secretKey := lr[:len(lr)/2]
	chainCode := lr[len(lr)/2:]

	key := &ExtendedKey{
		kc:        kc,
		versions:  versions.orDefault(),
		chainCode: append([]byte(nil), chainCode...),
	}
	if err := key.SetPrivateKey(secretKey); err != nil {
		return nil, err
	}

	log.Tracef("Created master key %x", key.Fingerprint())

	return key, nil
}

// NewKey returns a root extended key built from a raw key and chain code.
// A 32-byte key is treated as a private key while a 33 or 65-byte key is
// treated as a public key.
func (kc *Keychain) NewKey(key, chainCode []byte, versions Versions) (*ExtendedKey, error) {
	if err := kc.ready(); err != nil {
		return nil, err
	}

	if len(chainCode) != chainCodeLen {
		str := fmt.Sprintf("chain code must be %d bytes, got %d",
			chainCodeLen, len(chainCode))
		return nil, makeError(ErrInvalidChainCode, str)
	}

	k := &ExtendedKey{
		kc:        kc,
		versions:  versions.orDefault(),
		chainCode: append([]byte(nil), chainCode...),
	}

	var err error
	if len(key) == privKeyLen {
		err = k.SetPrivateKey(key)
	} else {
		err = k.SetPublicKey(key)
	}
	if err != nil {
		return nil, err
	}

	return k, nil
}

// GenerateSeed returns a cryptographically secure random seed that can be used
// as the input for the NewMaster function to generate a new master node.
//
// The length is in bytes and it must be between 16 and 64 (128 to 512 bits).
// The recommended length is 32 (256 bits) as defined by the RecommendedSeedLen
// constant.
func GenerateSeed(length uint8) ([]byte, error) {
	// Per [BIP32], the seed must be in range [MinSeedBytes, MaxSeedBytes].
	if length < MinSeedBytes || length > MaxSeedBytes {
		str := fmt.Sprintf("seed length must be between %d and %d bytes",
			MinSeedBytes, MaxSeedBytes)
		return nil, makeError(ErrInvalidSeedLen, str)
	}

	buf := make([]byte, length)
	_, err := rand.Read(buf)
	if err != nil {
		return nil, err
	}

	return buf, nil
}
