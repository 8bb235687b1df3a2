// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkeychain

// ECProvider is the elliptic curve backend used by a Keychain.  All keys
// exchanged with the provider are raw byte slices: private keys are 32-byte
// big-endian scalars and public keys are 33-byte compressed points unless
// stated otherwise.
//
// Implementations must not retain or modify the slices passed to them.
type ECProvider interface {
	// IsValidPrivateKey returns whether the passed 32 bytes are a scalar in
	// the range [1, N-1].
	IsValidPrivateKey(privKey []byte) bool

	// DerivePublicKeyCompressed returns the compressed point privKey*G.
	DerivePublicKeyCompressed(privKey []byte) ([]byte, error)

	// CompressPublicKey parses a 33 or 65-byte public key and returns its
	// compressed form.  An error is returned when the bytes do not describe
	// a point on the curve.
	CompressPublicKey(pubKey []byte) ([]byte, error)

	// TweakAddPrivateKey returns privKey + tweak mod N.  The error must
	// wrap chainec.ErrInvalidTweak when the tweak is not less than N and
	// chainec.ErrInvalidTweakResult when the result is zero.  Child only
	// retries the next index for those two errors.
	TweakAddPrivateKey(privKey, tweak []byte) ([]byte, error)

	// TweakAddPublicKeyCompressed returns the compressed point
	// pubKey + tweak*G.  The error must wrap chainec.ErrInvalidTweak when
	// the tweak is not less than N and chainec.ErrInvalidTweakResult when
	// the result is the point at infinity.
	TweakAddPublicKeyCompressed(pubKey, tweak []byte) ([]byte, error)

	// SignCompact produces a deterministic 64-byte R || S signature of the
	// 32-byte hash.
	SignCompact(privKey, hash []byte) ([]byte, error)

	// SignRecoverableCompact produces a deterministic 64-byte R || S
	// signature of the 32-byte hash along with the recovery id in [0, 3].
	SignRecoverableCompact(privKey, hash []byte) ([]byte, byte, error)

	// RecoverPublicKeyCompressed returns the compressed public key that
	// produced sig over hash given the recovery id.
	RecoverPublicKeyCompressed(sig []byte, recoveryID byte,
		hash []byte) ([]byte, error)

	// VerifyCompact reports whether sig is a valid 64-byte R || S signature
	// of hash by pubKey.
	VerifyCompact(sig, pubKey, hash []byte) bool
}

// KDFProvider is the keyed hash backend used by a Keychain.
type KDFProvider interface {
	// HMACSHA512 returns the 64-byte HMAC-SHA512 of data keyed by key.
	HMACSHA512(key, data []byte) []byte
}
