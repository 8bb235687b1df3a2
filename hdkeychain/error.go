// Copyright (c) 2014-2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkeychain

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrProviderNotInitialized describes an error in which an operation
	// that needs the elliptic curve or KDF provider was attempted on an
	// extended key that was not created through a Keychain, or a Keychain
	// was created without one of its providers.
	ErrProviderNotInitialized = ErrorKind("ErrProviderNotInitialized")

	// ErrInvalidKeyLength describes an error in which a private key, a
	// public key or a serialized extended key does not have one of the
	// accepted lengths.
	ErrInvalidKeyLength = ErrorKind("ErrInvalidKeyLength")

	// ErrInvalidPrivateKey describes an error in which a private key is zero
	// or is not less than the order of the curve.
	ErrInvalidPrivateKey = ErrorKind("ErrInvalidPrivateKey")

	// ErrInvalidPublicKey describes an error in which a public key does not
	// parse to a point on the curve.
	ErrInvalidPublicKey = ErrorKind("ErrInvalidPublicKey")

	// ErrInvalidChainCode describes an error in which a chain code is not
	// exactly 32 bytes.
	ErrInvalidChainCode = ErrorKind("ErrInvalidChainCode")

	// ErrInvalidPathFormat describes an error in which a derivation path
	// does not start with m or M, or contains an empty or non-numeric
	// segment.
	ErrInvalidPathFormat = ErrorKind("ErrInvalidPathFormat")

	// ErrIndexOutOfRange describes an error in which a derivation path
	// segment is not less than HardenedKeyStart.
	ErrIndexOutOfRange = ErrorKind("ErrIndexOutOfRange")

	// ErrDeriveHardFromPublic describes an error in which the caller
	// attempted to derive a hardened extended key from a public key.
	ErrDeriveHardFromPublic = ErrorKind("ErrDeriveHardFromPublic")

	// ErrNoPrivateKey describes an error in which an operation that needs
	// the private key was attempted on a public extended key.
	ErrNoPrivateKey = ErrorKind("ErrNoPrivateKey")

	// ErrInvalidChild describes an error in which a child index produced an
	// invalid key and the next index would either wrap around or cross
	// between the normal and hardened ranges.
	ErrInvalidChild = ErrorKind("ErrInvalidChild")

	// ErrDeriveExhausted describes an error in which MaxChildRetries
	// consecutive indices all produced invalid keys.
	ErrDeriveExhausted = ErrorKind("ErrDeriveExhausted")

	// ErrDeriveBeyondMaxDepth describes an error in which the caller
	// attempted to derive more than 255 keys from a root key.
	ErrDeriveBeyondMaxDepth = ErrorKind("ErrDeriveBeyondMaxDepth")

	// ErrInvalidSeedLen describes an error in which the provided seed or
	// seed length is not in the allowed range.
	ErrInvalidSeedLen = ErrorKind("ErrInvalidSeedLen")

	// ErrInvalidKDFOutput describes an error in which the KDF provider
	// returned something other than 64 bytes.
	ErrInvalidKDFOutput = ErrorKind("ErrInvalidKDFOutput")

	// ErrBadChecksum describes an error in which the checksum encoded with
	// a serialized extended key does not match the calculated value.
	ErrBadChecksum = ErrorKind("ErrBadChecksum")

	// ErrUnknownHDKeyID describes an error in which the version bytes of a
	// serialized extended key do not belong to any known network.
	ErrUnknownHDKeyID = ErrorKind("ErrUnknownHDKeyID")

	// ErrInvalidDepthZero describes an error in which a serialized master
	// key carries a parent fingerprint or child index other than zero.
	ErrInvalidDepthZero = ErrorKind("ErrInvalidDepthZero")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to hierarchical deterministic keys.  It
// has full support for errors.Is and errors.As, so the caller can ascertain
// the specific reason for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
