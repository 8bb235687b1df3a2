// Copyright (c) 2014-2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkeychain

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// maxDepth is the deepest an extended key can be while still fitting the
// single depth byte of the serialized format.
const maxDepth = 255

// ExtendedKey houses all the information needed to support a hierarchical
// deterministic extended key.  See the package overview documentation for
// more details on how to use extended keys.
type ExtendedKey struct {
	kc        *Keychain
	versions  Versions
	depth     uint8
	index     uint32
	parentFP  [4]byte
	privKey   *secretKey
	pubKey    []byte
	chainCode []byte
}

// SetPrivateKey replaces the private key of the extended key and recomputes
// its compressed public key.  The key must be 32 bytes and a valid scalar for
// the curve.  Any previous private key is wiped.
func (k *ExtendedKey) SetPrivateKey(privKey []byte) error {
	if err := k.kc.ready(); err != nil {
		return err
	}

	if len(privKey) != privKeyLen {
		str := fmt.Sprintf("private key must be %d bytes, got %d",
			privKeyLen, len(privKey))
		return makeError(ErrInvalidKeyLength, str)
	}
	if !k.kc.ec.IsValidPrivateKey(privKey) {
		str := "private key is zero or not less than the curve order"
		return makeError(ErrInvalidPrivateKey, str)
	}

	pubKey, err := k.kc.ec.DerivePublicKeyCompressed(privKey)
	if err != nil {
		str := fmt.Sprintf("unable to derive public key: %v", err)
		return makeError(ErrInvalidPrivateKey, str)
	}

	if k.privKey != nil {
		k.privKey.wipe()
	}
	k.privKey = newSecretKey(privKey)
	k.pubKey = pubKey
	return nil
}

// SetPublicKey replaces the public key of the extended key with the
// compressed form of the passed 33 or 65-byte key.  The extended key becomes
// a public extended key and any private key is wiped.
func (k *ExtendedKey) SetPublicKey(pubKey []byte) error {
	if err := k.kc.ready(); err != nil {
		return err
	}

	if len(pubKey) != pubKeyCompressedLen &&
		len(pubKey) != pubKeyUncompressedLen {

		str := fmt.Sprintf("public key must be %d or %d bytes, got %d",
			pubKeyCompressedLen, pubKeyUncompressedLen, len(pubKey))
		return makeError(ErrInvalidKeyLength, str)
	}

	compressed, err := k.kc.ec.CompressPublicKey(pubKey)
	if err != nil {
		str := fmt.Sprintf("invalid public key: %v", err)
		return makeError(ErrInvalidPublicKey, str)
	}
	if len(compressed) != pubKeyCompressedLen {
		str := fmt.Sprintf("provider compressed public key to %d bytes",
			len(compressed))
		return makeError(ErrInvalidPublicKey, str)
	}

	k.WipePrivateData()
	k.pubKey = compressed
	return nil
}

// WipePrivateData zeroes the private key material of the extended key and
// drops it, leaving a public extended key.  It is a no-op for public
// extended keys.
func (k *ExtendedKey) WipePrivateData() {
	if k.privKey == nil {
		return
	}
	k.privKey.wipe()
	k.privKey = nil
}

// IsPrivate returns whether or not the extended key is a private extended key.
//
// A private extended key can be used to derive both hardened and non-hardened
// child private and public extended keys.  A public extended key can only be
// used to derive non-hardened child public extended keys.
func (k *ExtendedKey) IsPrivate() bool {
	return k.privKey != nil
}

// Depth returns the current derivation level with respect to the root.
//
// The root key has depth zero, and the field has a maximum of 255 due to
// how depth is serialized.
func (k *ExtendedKey) Depth() uint8 {
	return k.depth
}

// Index returns the index at which the child extended key was derived.  When
// the requested index produced an invalid key this is the index that was
// used instead.
//
// Extended keys with depth value of 0 (the master node) have an index of 0.
func (k *ExtendedKey) Index() uint32 {
	return k.index
}

// IsHardened returns whether the extended key was derived at a hardened
// index.
func (k *ExtendedKey) IsHardened() bool {
	return k.index >= HardenedKeyStart
}

// Versions returns the version bytes carried by the extended key.
func (k *ExtendedKey) Versions() Versions {
	return k.versions
}

// ChainCode returns a copy of the extended key's chain code.
//
// This is useful for creating custom extended keys with NewKey.
func (k *ExtendedKey) ChainCode() []byte {
	return append([]byte(nil), k.chainCode...)
}

// PublicKey returns a copy of the compressed public key of the extended key.
func (k *ExtendedKey) PublicKey() []byte {
	return append([]byte(nil), k.pubKey...)
}

// PrivateKey returns a copy of the 32-byte private key, or None for public
// extended keys.  The caller owns the returned copy and should zero it when
// done.
func (k *ExtendedKey) PrivateKey() fn.Option[[]byte] {
	if k.privKey == nil {
		return fn.None[[]byte]()
	}
	return fn.Some(append([]byte(nil), k.privKey.bytes()...))
}

// ParentFingerprint returns a fingerprint of the parent extended key from which
// this one was derived.
func (k *ExtendedKey) ParentFingerprint() uint32 {
	return binary.BigEndian.Uint32(k.parentFP[:])
}

// Fingerprint returns the first four bytes of the HASH160 of the extended
// key's public key, which is the parent fingerprint of its children.
func (k *ExtendedKey) Fingerprint() uint32 {
	return binary.BigEndian.Uint32(btcutil.Hash160(k.pubKey)[:4])
}

// Neuter returns a new extended public key from this extended private key.  The
// same extended key will be returned unaltered if it is already an extended
// public key.
//
// As the name implies, an extended public key does not have access to the
// private key, so it is not capable of signing transactions or deriving
// child extended private keys.  However, it is capable of deriving further
// child extended public keys.
func (k *ExtendedKey) Neuter() (*ExtendedKey, error) {
	if err := k.kc.ready(); err != nil {
		return nil, err
	}

	// Already an extended public key.
	if !k.IsPrivate() {
		return k, nil
	}

	return &ExtendedKey{
		kc:        k.kc,
		versions:  k.versions,
		depth:     k.depth,
		index:     k.index,
		parentFP:  k.parentFP,
		pubKey:    k.PublicKey(),
		chainCode: k.ChainCode(),
	}, nil
}

// Sign produces a deterministic 64-byte compact signature of the 32-byte hash
// with the extended key's private key.  ErrNoPrivateKey is returned for
// public extended keys.
func (k *ExtendedKey) Sign(hash []byte) ([]byte, error) {
	if err := k.kc.ready(); err != nil {
		return nil, err
	}
	if !k.IsPrivate() {
		return nil, makeError(ErrNoPrivateKey, "unable to sign with a "+
			"public extended key")
	}

	return k.kc.ec.SignCompact(k.privKey.bytes(), hash)
}

// SignRecoverable is like Sign but also returns the recovery id needed by
// Recover to reconstruct the public key from the signature.
func (k *ExtendedKey) SignRecoverable(hash []byte) ([]byte, byte, error) {
	if err := k.kc.ready(); err != nil {
		return nil, 0, err
	}
	if !k.IsPrivate() {
		return nil, 0, makeError(ErrNoPrivateKey, "unable to sign with "+
			"a public extended key")
	}

	return k.kc.ec.SignRecoverableCompact(k.privKey.bytes(), hash)
}

// Verify reports whether sig is a valid compact signature of hash by the
// extended key's public key.  Extended keys that are not bound to a keychain
// never verify.
func (k *ExtendedKey) Verify(hash, sig []byte) bool {
	if k.kc.ready() != nil || len(k.pubKey) == 0 {
		return false
	}
	return k.kc.ec.VerifyCompact(sig, k.pubKey, hash)
}

// Recover returns the compressed public key that produced the compact
// signature sig over hash.  No key material of the extended key is used.
func (k *ExtendedKey) Recover(hash, sig []byte, recoveryID byte) ([]byte, error) {
	if err := k.kc.ready(); err != nil {
		return nil, err
	}
	return k.kc.ec.RecoverPublicKeyCompressed(sig, recoveryID, hash)
}
