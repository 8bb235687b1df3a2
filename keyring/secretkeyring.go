// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyring

import (
	"errors"
	"fmt"
	"sync"

	"github.com/btcsuite/bip32/hdkeychain"
	"github.com/btcsuite/btcd/btcec/v2"
)

const (
	// compactSigMagicOffset and compactSigCompPubKey make up the header
	// byte of a recoverable compact signature for a compressed public key.
	compactSigMagicOffset = 27
	compactSigCompPubKey  = 4
)

// HDKeyRing is a SecretKeyRing backed by a root extended private key.  All
// keys are derived along m/1017'/coinType'/keyFamily'/0/index.
type HDKeyRing struct {
	coinType uint32

	mtx       sync.Mutex
	root      *hdkeychain.ExtendedKey
	nextIndex map[KeyFamily]uint32
}

// A compile time check to ensure HDKeyRing implements the SecretKeyRing
// interface.
var _ SecretKeyRing = (*HDKeyRing)(nil)

// NewSecretKeyRing returns a key ring that derives keys for coinType below the
// passed root key.  The root must be a private extended key.  The key ring
// takes ownership of the root and wipes it on Close.
func NewSecretKeyRing(root *hdkeychain.ExtendedKey,
	coinType uint32) (*HDKeyRing, error) {

	if root == nil || !root.IsPrivate() {
		return nil, fmt.Errorf("unable to create key ring: %w",
			hdkeychain.ErrNoPrivateKey)
	}
	if coinType >= hdkeychain.HardenedKeyStart {
		return nil, fmt.Errorf("coin type %d: %w", coinType,
			hdkeychain.ErrIndexOutOfRange)
	}

	return &HDKeyRing{
		coinType:  coinType,
		root:      root,
		nextIndex: make(map[KeyFamily]uint32),
	}, nil
}

// Close wipes the root private key.  Every later call returns ErrRingClosed.
func (r *HDKeyRing) Close() {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if r.root != nil {
		r.root.WipePrivateData()
		r.root = nil
	}
}

// withRoot calls f with the root key while holding the mutex.
func (r *HDKeyRing) withRoot(f func(root *hdkeychain.ExtendedKey) error) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if r.root == nil {
		return ErrRingClosed
	}
	return f(r.root)
}

// AccountKey returns the neutered m/1017'/coinType'/keyFamily' node for the
// family.  It can be passed to NewPubKeyRing to derive the same public keys
// without access to the root.
func (r *HDKeyRing) AccountKey(keyFam KeyFamily) (*hdkeychain.ExtendedKey, error) {
	if uint32(keyFam) >= hdkeychain.HardenedKeyStart {
		return nil, fmt.Errorf("key family %d: %w", keyFam,
			hdkeychain.ErrIndexOutOfRange)
	}

	var account *hdkeychain.ExtendedKey
	err := r.withRoot(func(root *hdkeychain.ExtendedKey) error {
		path := KeyLocator{Family: keyFam}.path(r.coinType)[:accountDepth]
		key, err := root.DerivePath(path...)
		if err != nil {
			return err
		}
		return hdkeychain.WithKey(key, func(key *hdkeychain.ExtendedKey) error {
			account, err = key.Neuter()
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// deriveLeaf derives the private leaf node at the locator and calls f with it.
// The node is wiped once f returns.  The locator passed to f carries the index
// that was actually used.
func (r *HDKeyRing) deriveLeaf(keyLoc KeyLocator,
	f func(KeyLocator, *hdkeychain.ExtendedKey) error) error {

	if uint32(keyLoc.Family) >= hdkeychain.HardenedKeyStart {
		return fmt.Errorf("key family %d: %w", keyLoc.Family,
			hdkeychain.ErrIndexOutOfRange)
	}

	return r.withRoot(func(root *hdkeychain.ExtendedKey) error {
		leaf, err := root.DerivePath(keyLoc.path(r.coinType)...)
		if err != nil {
			return err
		}
		return hdkeychain.WithKey(leaf, func(leaf *hdkeychain.ExtendedKey) error {
			used := KeyLocator{Family: keyLoc.Family, Index: leaf.Index()}
			return f(used, leaf)
		})
	})
}

// DeriveKey derives the public key at the passed locator.
//
// NOTE: This is part of the KeyRing interface.
func (r *HDKeyRing) DeriveKey(keyLoc KeyLocator) (KeyDescriptor, error) {
	var desc KeyDescriptor
	err := r.deriveLeaf(keyLoc, func(used KeyLocator,
		leaf *hdkeychain.ExtendedKey) error {

		pubKey, err := btcec.ParsePubKey(leaf.PublicKey())
		if err != nil {
			return err
		}
		desc = KeyDescriptor{KeyLocator: used, PubKey: pubKey}
		return nil
	})
	if err != nil {
		return KeyDescriptor{}, err
	}
	return desc, nil
}

// DeriveNextKey derives the key at the next index of the family that has not
// been handed out by this ring.
//
// NOTE: This is part of the KeyRing interface.
func (r *HDKeyRing) DeriveNextKey(keyFam KeyFamily) (KeyDescriptor, error) {
	r.mtx.Lock()
	next := r.nextIndex[keyFam]
	r.mtx.Unlock()

	desc, err := r.DeriveKey(KeyLocator{Family: keyFam, Index: next})
	if err != nil {
		return KeyDescriptor{}, err
	}

	r.mtx.Lock()
	if desc.Index+1 > r.nextIndex[keyFam] {
		r.nextIndex[keyFam] = desc.Index + 1
	}
	r.mtx.Unlock()

	return desc, nil
}

// DerivePrivKey returns the private key described by the descriptor.  When
// the descriptor carries a public key and a zero index, the first
// MaxKeyRangeScan indices of the family are searched for it.  When both an
// index and a public key are given, the derived key must match the public
// key.
//
// NOTE: This is part of the SecretKeyRing interface.
func (r *HDKeyRing) DerivePrivKey(keyDesc KeyDescriptor) (*btcec.PrivateKey, error) {
	if keyDesc.PubKey == nil {
		privKey, _, err := r.privKeyAt(keyDesc.KeyLocator)
		return privKey, err
	}

	want := keyDesc.PubKey.SerializeCompressed()

	if keyDesc.Index == 0 {
		log.Debugf("Scanning family %d for unknown key index",
			keyDesc.Family)

		var privKey *btcec.PrivateKey
		err := r.scanFamily(keyDesc.Family, want, &privKey)
		if err != nil {
			return nil, err
		}
		return privKey, nil
	}

	privKey, pubKey, err := r.privKeyAt(keyDesc.KeyLocator)
	if err != nil {
		return nil, err
	}
	if string(pubKey) != string(want) {
		privKey.Zero()
		return nil, ErrCannotDerivePrivKey
	}
	return privKey, nil
}

// privKeyAt returns the private key at the locator and its serialized public
// key.
func (r *HDKeyRing) privKeyAt(keyLoc KeyLocator) (*btcec.PrivateKey, []byte, error) {
	var (
		privKey *btcec.PrivateKey
		pubKey  []byte
	)
	err := r.deriveLeaf(keyLoc, func(_ KeyLocator,
		leaf *hdkeychain.ExtendedKey) error {

		raw, err := leaf.PrivateKey().UnwrapOrErr(hdkeychain.ErrNoPrivateKey)
		if err != nil {
			return err
		}
		privKey, _ = btcec.PrivKeyFromBytes(raw)
		for i := range raw {
			raw[i] = 0
		}
		pubKey = leaf.PublicKey()
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return privKey, pubKey, nil
}

// scanFamily searches the family for the private key matching the serialized
// public key.
func (r *HDKeyRing) scanFamily(keyFam KeyFamily, want []byte,
	out **btcec.PrivateKey) error {

	for i := uint32(0); i < MaxKeyRangeScan; i++ {
		privKey, pubKey, err := r.privKeyAt(KeyLocator{
			Family: keyFam, Index: i,
		})
		switch {
		case errors.Is(err, hdkeychain.ErrDeriveExhausted),
			errors.Is(err, hdkeychain.ErrInvalidChild):
			continue
		case err != nil:
			return err
		}

		if string(pubKey) == string(want) {
			log.Debugf("Found key in family %d at index %d", keyFam, i)
			*out = privKey
			return nil
		}
		privKey.Zero()
	}

	return ErrCannotDerivePrivKey
}

// SignDigest signs a 32-byte digest with the key at the locator and returns a
// 64-byte R || S signature.
//
// NOTE: This is part of the SecretKeyRing interface.
func (r *HDKeyRing) SignDigest(keyLoc KeyLocator, digest [32]byte) ([]byte, error) {
	var sig []byte
	err := r.deriveLeaf(keyLoc, func(_ KeyLocator,
		leaf *hdkeychain.ExtendedKey) error {

		var err error
		sig, err = leaf.Sign(digest[:])
		return err
	})
	if err != nil {
		return nil, err
	}
	return sig, nil
}

// SignDigestCompact signs a 32-byte digest with the key at the locator and
// returns a 65-byte signature whose first byte encodes the recovery id for a
// compressed public key.
//
// NOTE: This is part of the SecretKeyRing interface.
func (r *HDKeyRing) SignDigestCompact(keyLoc KeyLocator,
	digest [32]byte) ([]byte, error) {

	var sig []byte
	err := r.deriveLeaf(keyLoc, func(_ KeyLocator,
		leaf *hdkeychain.ExtendedKey) error {

		rs, recoveryID, err := leaf.SignRecoverable(digest[:])
		if err != nil {
			return err
		}
		sig = make([]byte, 0, 1+len(rs))
		sig = append(sig, compactSigMagicOffset+compactSigCompPubKey+recoveryID)
		sig = append(sig, rs...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sig, nil
}
