// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyring

import (
	"fmt"
	"sync"

	"github.com/btcsuite/bip32/hdkeychain"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/lightninglabs/neutrino/cache/lru"
)

// accountDepth is the depth of m/1017'/coinType'/keyFamily'.
const accountDepth = 3

// cachedPubKey is a wrapper around a parsed public key that implements the
// cache.Value interface required by the LRU cache.
type cachedPubKey struct {
	pubKey *btcec.PublicKey
}

// Size returns the "size" of an entry. We return 1 as we just want to limit
// the total number of entries rather than do accurate size accounting.
func (c *cachedPubKey) Size() (uint64, error) {
	return 1, nil
}

// PubKeyRing is a KeyRing for a single key family backed by the family's
// extended public key.  It can be handed to a process that must never see
// private key material.  Derived public keys are kept in an LRU cache.
type PubKeyRing struct {
	family KeyFamily

	// branch is the neutered m/1017'/coinType'/keyFamily'/0 node.
	branch *hdkeychain.ExtendedKey

	cache *lru.Cache[uint32, *cachedPubKey]

	mtx       sync.Mutex
	nextIndex uint32
}

// A compile time check to ensure PubKeyRing implements the KeyRing interface.
var _ KeyRing = (*PubKeyRing)(nil)

// NewPubKeyRing returns a key ring that derives keys below the passed account
// key, which must be the hardened key family node at depth 3 as returned by
// SecretKeyRing.AccountKey.  A private account key is neutered first.  A zero
// cacheSize selects DefaultCacheSize.
func NewPubKeyRing(account *hdkeychain.ExtendedKey,
	cacheSize uint64) (*PubKeyRing, error) {

	if account == nil {
		return nil, ErrNotAccountKey
	}
	if account.Depth() != accountDepth || !account.IsHardened() {
		return nil, fmt.Errorf("%w: depth %d, index %d", ErrNotAccountKey,
			account.Depth(), account.Index())
	}

	pub, err := account.Neuter()
	if err != nil {
		return nil, err
	}
	branch, err := pub.Child(externalBranch)
	if err != nil {
		return nil, fmt.Errorf("unable to derive external branch: %w", err)
	}

	if cacheSize == 0 {
		cacheSize = DefaultCacheSize
	}

	return &PubKeyRing{
		family: KeyFamily(account.Index() - hdkeychain.HardenedKeyStart),
		branch: branch,
		cache:  lru.NewCache[uint32, *cachedPubKey](cacheSize),
	}, nil
}

// Family returns the key family of the ring.
func (r *PubKeyRing) Family() KeyFamily {
	return r.family
}

// AccountString returns the serialized extended public key of the external
// branch the ring derives from.
func (r *PubKeyRing) AccountString() string {
	return r.branch.String()
}

// DeriveKey derives the public key at the passed locator.
//
// NOTE: This is part of the KeyRing interface.
func (r *PubKeyRing) DeriveKey(keyLoc KeyLocator) (KeyDescriptor, error) {
	if keyLoc.Family != r.family {
		return KeyDescriptor{}, fmt.Errorf("%w: ring %d, locator %d",
			ErrFamilyMismatch, r.family, keyLoc.Family)
	}

	pubKey, index, err := r.derive(keyLoc.Index)
	if err != nil {
		return KeyDescriptor{}, err
	}

	return KeyDescriptor{
		KeyLocator: KeyLocator{Family: r.family, Index: index},
		PubKey:     pubKey,
	}, nil
}

// DeriveNextKey derives the key at the next index that has not been handed out
// by this ring.
//
// NOTE: This is part of the KeyRing interface.
func (r *PubKeyRing) DeriveNextKey(keyFam KeyFamily) (KeyDescriptor, error) {
	if keyFam != r.family {
		return KeyDescriptor{}, fmt.Errorf("%w: ring %d, requested %d",
			ErrFamilyMismatch, r.family, keyFam)
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	pubKey, index, err := r.derive(r.nextIndex)
	if err != nil {
		return KeyDescriptor{}, err
	}
	r.nextIndex = index + 1

	return KeyDescriptor{
		KeyLocator: KeyLocator{Family: r.family, Index: index},
		PubKey:     pubKey,
	}, nil
}

// derive returns the public key at index along with the index that was used,
// which differs from the requested one only if the requested index produced
// an invalid key.
func (r *PubKeyRing) derive(index uint32) (*btcec.PublicKey, uint32, error) {
	if cached, err := r.cache.Get(index); err == nil {
		log.Tracef("Family %d index %d served from cache", r.family,
			index)
		return cached.pubKey, index, nil
	}

	child, err := r.branch.Child(index)
	if err != nil {
		return nil, 0, err
	}
	pubKey, err := btcec.ParsePubKey(child.PublicKey())
	if err != nil {
		return nil, 0, err
	}

	// Only cache keys at the index they were requested at.  A skipped
	// index must be derived again so the caller learns the used index.
	if child.Index() == index {
		_, _ = r.cache.Put(index, &cachedPubKey{pubKey: pubKey})
	}

	log.Tracef("Derived family %d index %d", r.family, child.Index())

	return pubKey, child.Index(), nil
}
