// Copyright (c) 2014-2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkeychain

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/bip32/chainec"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// Child returns a derived child extended key at the given index.
//
// When this extended key is a private extended key (as determined by the
// IsPrivate function), a private extended key will be derived.  Otherwise,
// the derived extended key will also be a public extended key.
//
// When the index is greater than or equal to the HardenedKeyStart constant,
// the derived extended key will be a hardened extended key.  It is only
// possible to derive a hardened extended key from a private extended key.
// Consequently, this function will return ErrDeriveHardFromPublic if a
// hardened child extended key is requested from a public extended key.
//
// A standard hierarchical deterministic wallet layout as described per
// BIP0044 is:
//   m/purpose'/coin_type'/account'/change/address_index
//
// NOTE: There is an extremely small chance (< 1 in 2^127) the specific child
// index does not derive to a usable child.  In that case the next index is
// tried, at most MaxChildRetries times, and the returned key reports the
// index that was used.  ErrInvalidChild is returned if the next index would
// wrap around or leave the hardened or normal range of the requested index.
func (k *ExtendedKey) Child(i uint32) (*ExtendedKey, error) {
	if err := k.kc.ready(); err != nil {
		return nil, err
	}

	// Prevent derivation of children beyond the max allowed depth.
	if k.depth == maxDepth {
		return nil, makeError(ErrDeriveBeyondMaxDepth, "cannot derive "+
			"a child key beyond the maximum depth")
	}

	// There are four scenarios that could happen here:
	// 1) Private extended key -> Hardened child private extended key
	// 2) Private extended key -> Non-hardened child private extended key
	// 3) Public extended key -> Non-hardened child public extended key
	// 4) Public extended key -> Hardened child public extended key (INVALID!)
	hardened := i >= HardenedKeyStart

	// Case #4 is invalid, so error out early.
	// A hardened child extended key may not be created from a public
	// extended key.
	if hardened && !k.IsPrivate() {
		return nil, makeError(ErrDeriveHardFromPublic, "cannot derive "+
			"a hardened key from a public key")
	}

	index := i
	for attempt := 0; ; attempt++ {
		child, err := k.childAt(index)
		if err != nil {
			return nil, err
		}
		if child.IsSome() {
			return child.UnsafeFromSome(), nil
		}

		if attempt == MaxChildRetries {
			str := fmt.Sprintf("indices %d through %d all produced "+
				"invalid keys", i, index)
			return nil, makeError(ErrDeriveExhausted, str)
		}

		next := index + 1
		if next == 0 || (next >= HardenedKeyStart) != hardened {
			str := fmt.Sprintf("index %d produced an invalid key and "+
				"no further index is available in its range", index)
			return nil, makeError(ErrInvalidChild, str)
		}

		log.Debugf("Child index %d at depth %d is invalid, trying %d",
			index, k.depth+1, next)
		index = next
	}
}

// isUnusableTweak returns whether err reports that Il is not less than the
// curve order or that adding it produced an invalid key.  Derivation moves on
// to the next index for these and fails for anything else.
func isUnusableTweak(err error) bool {
	return errors.Is(err, chainec.ErrInvalidTweak) ||
		errors.Is(err, chainec.ErrInvalidTweakResult)
}

// childAt performs a single CKDpriv or CKDpub step at exactly index i.  An
// index that yields an invalid key is reported as None rather than as an
// error so Child can move on to the next index.  Any other provider failure
// is returned.
func (k *ExtendedKey) childAt(i uint32) (fn.Option[*ExtendedKey], error) {
	none := fn.None[*ExtendedKey]()
	isPrivate := k.IsPrivate()

	// The data used to derive the child key depends on whether or not the
	// child is hardened per [BIP32].
	//
	// For hardened children:
	//   0x00 || ser256(parentKey) || ser32(i)
	//
	// For normal children:
	//   serP(parentPubKey) || ser32(i)
	keyLen := pubKeyCompressedLen
	data := make([]byte, keyLen+4)
	defer zero(data)
	if i >= HardenedKeyStart {
		// Case #1.
		// When the child is a hardened child, the key is known to be a
		// private key since Child rejects case #4.  Pad it with a
		// leading zero as required by [BIP32] for deriving the child.
		copy(data[1:], k.privKey.bytes())
	} else {
		// Case #2 or #3.
		// This is either a public or private extended key, but in
		// either case, the data which is used to derive the child key
		// starts with the compressed public key bytes.
		copy(data, k.pubKey)
	}
	binary.BigEndian.PutUint32(data[keyLen:], i)

	// Take the HMAC-SHA512 of the current key's chain code and the derived
	// data:
	//   I = HMAC-SHA512(Key = chainCode, Data = data)
	ilr, err := k.kc.hmacSHA512(k.chainCode, data)
	if err != nil {
		return none, err
	}
	defer zero(ilr)

	// Split "I" into two 32-byte sequences Il and Ir where:
	//   Il = intermediate key used to derive the child
	//   Ir = child chain code
	il := ilr[:len(ilr)/2]
	childChainCode := append([]byte(nil), ilr[len(ilr)/2:]...)

	// The parent fingerprint is the first four bytes of the HASH160 of the
	// parent's public key.
	parentFP := btcutil.Hash160(k.pubKey)[:4]

	child := &ExtendedKey{
		kc:        k.kc,
		versions:  k.versions,
		depth:     k.depth + 1,
		index:     i,
		chainCode: childChainCode,
	}
	copy(child.parentFP[:], parentFP)

	if isPrivate {
		// Case #1 or #2.
		// Add the parent private key to the intermediate private key to
		// derive the final child key.
		//
		// childKey = parse256(Il) + parentKey
		childKey, err := k.kc.ec.TweakAddPrivateKey(k.privKey.bytes(), il)
		if isUnusableTweak(err) {
			return none, nil
		}
		if err != nil {
			return none, err
		}
		err = child.SetPrivateKey(childKey)
		zero(childKey)
		if err != nil {
			return none, err
		}
	} else {
		// Case #3.
		// Calculate the corresponding intermediate public key for the
		// intermediate private key and add the parent public key to
		// it.
		//
		// childKey = serP(point(parse256(Il)) + parentKey)
		childKey, err := k.kc.ec.TweakAddPublicKeyCompressed(k.pubKey, il)
		if isUnusableTweak(err) {
			return none, nil
		}
		if err != nil {
			return none, err
		}
		if err := child.SetPublicKey(childKey); err != nil {
			return none, err
		}
	}

	return fn.Some(child), nil
}

// DerivePath derives the extended key at the passed sequence of indices
// relative to this key.  Hardened indices are expressed by adding
// HardenedKeyStart.
func (k *ExtendedKey) DerivePath(path ...uint32) (*ExtendedKey, error) {
	if err := k.kc.ready(); err != nil {
		return nil, err
	}

	key := k
	for _, index := range path {
		var err error
		key, err = key.Child(index)
		if err != nil {
			return nil, err
		}
	}
	return key, nil
}
