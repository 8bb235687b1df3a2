// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hmackdf provides the HMAC-SHA512 key derivation function used to
// derive master and child keys.
package hmackdf

import (
	"crypto/hmac"
	"crypto/sha512"
)

// Size is the length in bytes of the HMAC-SHA512 output.
const Size = sha512.Size

// SHA512 computes HMAC-SHA512.  It is stateless and safe for concurrent use.
var SHA512 = sha512KDF{}

type sha512KDF struct{}

// HMACSHA512 returns the 64-byte HMAC-SHA512 of data keyed by key.
func (sha512KDF) HMACSHA512(key, data []byte) []byte {
	mac := hmac.New(sha512.New, key)
	_, _ = mac.Write(data)
	return mac.Sum(nil)
}
