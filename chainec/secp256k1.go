// Copyright (c) 2015-2016 The Decred developers
// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainec

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

var (
	// ErrInvalidPrivateKey is returned when a private key is not 32 bytes,
	// is zero or is not less than the curve order.
	ErrInvalidPrivateKey = errors.New("invalid private key")

	// ErrInvalidTweak is returned when a tweak is not a 32-byte scalar less
	// than the curve order.
	ErrInvalidTweak = errors.New("tweak is not less than the curve order")

	// ErrInvalidTweakResult is returned when adding a tweak produces the
	// zero scalar or the point at infinity.
	ErrInvalidTweakResult = errors.New("tweak produced an invalid key")

	// ErrInvalidHashLength is returned when the message digest passed to a
	// signing or verification function is not 32 bytes.
	ErrInvalidHashLength = errors.New("hash must be 32 bytes")

	// ErrInvalidSignature is returned when a compact signature is not 64
	// bytes.
	ErrInvalidSignature = errors.New("compact signature must be 64 bytes")

	// ErrInvalidRecoveryID is returned when a recovery id is not in the
	// range [0, 3].
	ErrInvalidRecoveryID = errors.New("recovery id must be between 0 and 3")
)

const (
	// compactSigMagicOffset is the value added to the recovery id in the
	// header byte of a btcec compact signature.
	compactSigMagicOffset = 27

	// compactSigCompPubKey is added to the header byte when the signature
	// commits to a compressed public key.
	compactSigCompPubKey = 4

	// compactSigLen is the length of an R || S signature.
	compactSigLen = 64

	// hashLen is the length of the message digests this package signs.
	hashLen = 32

	// maxRecoveryID is the largest valid recovery id.
	maxRecoveryID = 3
)

// secp256k1DSA implements the provider functions on the secp256k1 curve.  It
// holds no state.
type secp256k1DSA struct{}

// Secp256k1 is the secp256k1 curve and ECDSA system used in Bitcoin.
var Secp256k1 = newSecp256k1DSA()

func newSecp256k1DSA() secp256k1DSA {
	return secp256k1DSA{}
}

// parsePrivKey loads a 32-byte private key into s.  The caller must zero s.
func parsePrivKey(privKey []byte, s *btcec.ModNScalar) error {
	if len(privKey) != secp.PrivKeyBytesLen {
		return ErrInvalidPrivateKey
	}
	if overflow := s.SetByteSlice(privKey); overflow || s.IsZero() {
		return ErrInvalidPrivateKey
	}
	return nil
}

// parseTweak loads a 32-byte tweak into s.
func parseTweak(tweak []byte, s *btcec.ModNScalar) error {
	if len(tweak) != hashLen {
		return ErrInvalidTweak
	}
	if overflow := s.SetByteSlice(tweak); overflow {
		return ErrInvalidTweak
	}
	return nil
}

// IsValidPrivateKey returns whether the passed 32 bytes are a scalar in the
// range [1, N-1].
func (sp secp256k1DSA) IsValidPrivateKey(privKey []byte) bool {
	var k btcec.ModNScalar
	defer k.Zero()
	return parsePrivKey(privKey, &k) == nil
}

// DerivePublicKeyCompressed returns the compressed point privKey*G.
func (sp secp256k1DSA) DerivePublicKeyCompressed(privKey []byte) ([]byte, error) {
	var k btcec.ModNScalar
	defer k.Zero()
	if err := parsePrivKey(privKey, &k); err != nil {
		return nil, err
	}

	priv := btcec.PrivKeyFromScalar(&k)
	defer priv.Zero()
	return priv.PubKey().SerializeCompressed(), nil
}

// CompressPublicKey parses a 33 or 65-byte public key and returns its
// compressed form.
func (sp secp256k1DSA) CompressPublicKey(pubKey []byte) ([]byte, error) {
	pub, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return nil, err
	}
	return pub.SerializeCompressed(), nil
}

// TweakAddPrivateKey returns privKey + tweak mod N.
func (sp secp256k1DSA) TweakAddPrivateKey(privKey, tweak []byte) ([]byte, error) {
	var k, t btcec.ModNScalar
	defer k.Zero()
	defer t.Zero()

	if err := parsePrivKey(privKey, &k); err != nil {
		return nil, err
	}
	if err := parseTweak(tweak, &t); err != nil {
		return nil, err
	}

	k.Add(&t)
	if k.IsZero() {
		return nil, ErrInvalidTweakResult
	}

	childKey := k.Bytes()
	return childKey[:], nil
}

// TweakAddPublicKeyCompressed returns the compressed point pubKey + tweak*G.
func (sp secp256k1DSA) TweakAddPublicKeyCompressed(pubKey, tweak []byte) ([]byte, error) {
	pub, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return nil, err
	}

	var t btcec.ModNScalar
	if err := parseTweak(tweak, &t); err != nil {
		return nil, err
	}

	var tweakPoint, pubPoint, result btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&t, &tweakPoint)
	pub.AsJacobian(&pubPoint)
	btcec.AddNonConst(&tweakPoint, &pubPoint, &result)

	if (result.X.IsZero() && result.Y.IsZero()) || result.Z.IsZero() {
		return nil, ErrInvalidTweakResult
	}

	result.ToAffine()
	return btcec.NewPublicKey(&result.X, &result.Y).SerializeCompressed(), nil
}

// signCompact returns the 65-byte btcec compact signature of hash.
func signCompact(privKey, hash []byte) ([]byte, error) {
	if len(hash) != hashLen {
		return nil, ErrInvalidHashLength
	}

	var k btcec.ModNScalar
	defer k.Zero()
	if err := parsePrivKey(privKey, &k); err != nil {
		return nil, err
	}

	priv := btcec.PrivKeyFromScalar(&k)
	defer priv.Zero()
	return ecdsa.SignCompact(priv, hash, true), nil
}

// SignCompact produces a deterministic RFC6979 64-byte R || S signature of the
// 32-byte hash.
func (sp secp256k1DSA) SignCompact(privKey, hash []byte) ([]byte, error) {
	sig, err := signCompact(privKey, hash)
	if err != nil {
		return nil, err
	}
	return sig[1:], nil
}

// SignRecoverableCompact produces a deterministic RFC6979 64-byte R || S
// signature of the 32-byte hash along with its recovery id.
func (sp secp256k1DSA) SignRecoverableCompact(privKey, hash []byte) ([]byte, byte, error) {
	sig, err := signCompact(privKey, hash)
	if err != nil {
		return nil, 0, err
	}

	recoveryID := sig[0] - compactSigMagicOffset - compactSigCompPubKey
	return sig[1:], recoveryID, nil
}

// RecoverPublicKeyCompressed returns the compressed public key that produced
// sig over hash given the recovery id.
func (sp secp256k1DSA) RecoverPublicKeyCompressed(sig []byte, recoveryID byte,
	hash []byte) ([]byte, error) {

	if len(sig) != compactSigLen {
		return nil, ErrInvalidSignature
	}
	if len(hash) != hashLen {
		return nil, ErrInvalidHashLength
	}
	if recoveryID > maxRecoveryID {
		return nil, ErrInvalidRecoveryID
	}

	var full [compactSigLen + 1]byte
	full[0] = compactSigMagicOffset + compactSigCompPubKey + recoveryID
	copy(full[1:], sig)

	pub, _, err := ecdsa.RecoverCompact(full[:], hash)
	if err != nil {
		return nil, fmt.Errorf("unable to recover public key: %w", err)
	}
	return pub.SerializeCompressed(), nil
}

// VerifyCompact reports whether sig is a valid 64-byte R || S signature of
// hash by pubKey.
func (sp secp256k1DSA) VerifyCompact(sig, pubKey, hash []byte) bool {
	if len(sig) != compactSigLen || len(hash) != hashLen {
		return false
	}

	var r, s btcec.ModNScalar
	if overflow := r.SetByteSlice(sig[:32]); overflow || r.IsZero() {
		return false
	}
	if overflow := s.SetByteSlice(sig[32:]); overflow || s.IsZero() {
		return false
	}

	pub, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return false
	}

	return ecdsa.NewSignature(&r, &s).Verify(hash, pub)
}
