// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkeychain

import (
	"runtime"
)

// zero sets all bytes in the passed slice to zero.  This is used to
// explicitly clear private key material from memory.
func zero(b []byte) {
	for i := range b {
		b[i] = 0x00
	}
}

// secretKey owns a copy of private key material.  The copy is zeroed by wipe
// or, failing that, when the container is garbage collected.
type secretKey struct {
	b []byte
}

// newSecretKey copies b into a new container.
func newSecretKey(b []byte) *secretKey {
	s := &secretKey{b: append([]byte(nil), b...)}
	runtime.SetFinalizer(s, (*secretKey).wipe)
	return s
}

// bytes returns the owned slice.  Callers must not retain it.
func (s *secretKey) bytes() []byte {
	return s.b
}

// wipe zeroes the owned copy.  It is safe to call more than once.
func (s *secretKey) wipe() {
	zero(s.b)
	s.b = nil
	runtime.SetFinalizer(s, nil)
}

// WithKey calls f with key and wipes the private key material of key once f
// returns or panics.  It returns the error returned by f.
func WithKey(key *ExtendedKey, f func(*ExtendedKey) error) error {
	defer key.WipePrivateData()
	return f(key)
}
