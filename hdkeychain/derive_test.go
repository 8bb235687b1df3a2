// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkeychain_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sync"
	"testing"

	"github.com/btcsuite/bip32/chainec"
	"github.com/btcsuite/bip32/hdkeychain"
	"github.com/btcsuite/bip32/hmackdf"
	"github.com/stretchr/testify/require"
)

// rejectingKDF wraps the real HMAC-SHA512 and replaces the left half of the
// output with a value not less than the curve order for every child index in
// reject.  The master key derivation is passed through untouched.
type rejectingKDF struct {
	reject map[uint32]struct{}
}

func newRejectingKDF(indices ...uint32) *rejectingKDF {
	reject := make(map[uint32]struct{}, len(indices))
	for _, i := range indices {
		reject[i] = struct{}{}
	}
	return &rejectingKDF{reject: reject}
}

func (r *rejectingKDF) HMACSHA512(key, data []byte) []byte {
	out := hmackdf.SHA512.HMACSHA512(key, data)
	if len(data) < 4 || bytes.Equal(key, []byte("Bitcoin seed")) {
		return out
	}
	index := binary.BigEndian.Uint32(data[len(data)-4:])
	if _, ok := r.reject[index]; ok {
		copy(out[:32], bytes.Repeat([]byte{0xff}, 32))
	}
	return out
}

// shortKDF returns a truncated HMAC-SHA512 output.
type shortKDF struct{}

func (shortKDF) HMACSHA512(key, data []byte) []byte {
	return hmackdf.SHA512.HMACSHA512(key, data)[:63]
}

// errProviderFailure is returned by failingEC for every tweak.
var errProviderFailure = errors.New("provider failure")

// failingEC is the secp256k1 provider with tweaks that fail for a reason
// other than an unusable tweak.
type failingEC struct {
	hdkeychain.ECProvider
}

func (failingEC) TweakAddPrivateKey(_, _ []byte) ([]byte, error) {
	return nil, errProviderFailure
}

func (failingEC) TweakAddPublicKeyCompressed(_, _ []byte) ([]byte, error) {
	return nil, errProviderFailure
}

// rejectingMaster returns the test vector 1 master key bound to a keychain
// whose KDF rejects the passed indices.
func rejectingMaster(t *testing.T, indices ...uint32) *hdkeychain.ExtendedKey {
	t.Helper()

	kc, err := hdkeychain.New(chainec.Secp256k1, newRejectingKDF(indices...))
	require.NoError(t, err)
	master, err := kc.NewMaster(hexToBytes(testVec1MasterHex),
		hdkeychain.Versions{})
	require.NoError(t, err)
	return master
}

// TestChildRetry ensures an index that produces an invalid key is skipped in
// favor of the next index in the same range and that the result is the key a
// normal derivation at that next index would produce.
func TestChildRetry(t *testing.T) {
	t.Parallel()

	const h = hdkeychain.HardenedKeyStart

	reference, err := hdkeychain.NewSecp256k1().NewKeyFromString(masterPriv1)
	require.NoError(t, err)

	tests := []struct {
		name      string
		reject    []uint32
		index     uint32
		neuter    bool
		wantIndex uint32
	}{
		{
			name:      "single skip",
			reject:    []uint32{5},
			index:     5,
			wantIndex: 6,
		},
		{
			name:      "unaffected index",
			reject:    []uint32{5},
			index:     4,
			wantIndex: 4,
		},
		{
			name:      "several skips",
			reject:    []uint32{5, 6, 7},
			index:     5,
			wantIndex: 8,
		},
		{
			name:      "all retries used",
			reject:    []uint32{0, 1, 2, 3, 4, 5, 6, 7},
			index:     0,
			wantIndex: 8,
		},
		{
			name:      "public parent",
			reject:    []uint32{10},
			index:     10,
			neuter:    true,
			wantIndex: 11,
		},
		{
			name:      "hardened",
			reject:    []uint32{h + 1},
			index:     h + 1,
			wantIndex: h + 2,
		},
	}

	for _, test := range tests {
		master := rejectingMaster(t, test.reject...)
		want, err := reference.Child(test.wantIndex)
		require.NoError(t, err, test.name)
		if test.neuter {
			master, err = master.Neuter()
			require.NoError(t, err, test.name)
			want, err = want.Neuter()
			require.NoError(t, err, test.name)
		}

		child, err := master.Child(test.index)
		require.NoError(t, err, test.name)
		require.Equal(t, test.wantIndex, child.Index(), test.name)
		require.Equal(t, want.String(), child.String(), test.name)
		require.Equal(t, master.Fingerprint(), child.ParentFingerprint(),
			test.name)
	}
}

// TestChildRetryErrors ensures retries stop at the edge of the index range and
// after MaxChildRetries attempts.
func TestChildRetryErrors(t *testing.T) {
	t.Parallel()

	const h = hdkeychain.HardenedKeyStart

	tests := []struct {
		name   string
		reject []uint32
		index  uint32
		err    error
	}{
		{
			name:   "exhausted",
			reject: []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8},
			index:  0,
			err:    hdkeychain.ErrDeriveExhausted,
		},
		{
			name:   "exhausted hardened",
			reject: []uint32{h, h + 1, h + 2, h + 3, h + 4, h + 5, h + 6, h + 7, h + 8},
			index:  h,
			err:    hdkeychain.ErrDeriveExhausted,
		},
		{
			name:   "normal range end",
			reject: []uint32{h - 1},
			index:  h - 1,
			err:    hdkeychain.ErrInvalidChild,
		},
		{
			name:   "normal range end after skip",
			reject: []uint32{h - 2, h - 1},
			index:  h - 2,
			err:    hdkeychain.ErrInvalidChild,
		},
		{
			name:   "hardened range end",
			reject: []uint32{h + h - 1},
			index:  h + h - 1,
			err:    hdkeychain.ErrInvalidChild,
		},
	}

	for _, test := range tests {
		master := rejectingMaster(t, test.reject...)
		_, err := master.Child(test.index)
		require.ErrorIs(t, err, test.err, test.name)
	}
}

// TestChildInvalidKDFOutput ensures a KDF provider that returns the wrong
// amount of data is reported rather than retried.
func TestChildInvalidKDFOutput(t *testing.T) {
	t.Parallel()

	kc, err := hdkeychain.New(chainec.Secp256k1, shortKDF{})
	require.NoError(t, err)

	_, err = kc.NewMaster(hexToBytes(testVec1MasterHex), hdkeychain.Versions{})
	require.ErrorIs(t, err, hdkeychain.ErrInvalidKDFOutput)

	key, err := kc.NewKey(bytes.Repeat([]byte{0x01}, 32),
		bytes.Repeat([]byte{0x02}, 32), hdkeychain.Versions{})
	require.NoError(t, err)

	_, err = key.Child(0)
	require.ErrorIs(t, err, hdkeychain.ErrInvalidKDFOutput)
}

// TestChildProviderFailure ensures provider errors other than an unusable
// tweak are returned instead of moving on to the next index.
func TestChildProviderFailure(t *testing.T) {
	t.Parallel()

	kc, err := hdkeychain.New(failingEC{chainec.Secp256k1}, hmackdf.SHA512)
	require.NoError(t, err)
	master, err := kc.NewMaster(hexToBytes(testVec1MasterHex),
		hdkeychain.Versions{})
	require.NoError(t, err)

	_, err = master.Child(0)
	require.ErrorIs(t, err, errProviderFailure)
	require.NotErrorIs(t, err, hdkeychain.ErrDeriveExhausted)

	_, err = master.Child(hdkeychain.HardenedKeyStart)
	require.ErrorIs(t, err, errProviderFailure)

	pub, err := master.Neuter()
	require.NoError(t, err)
	_, err = pub.Child(0)
	require.ErrorIs(t, err, errProviderFailure)
}

// TestChildMaxDepth ensures no child can be derived once a key reaches the
// maximum depth representable in the serialized format.
func TestChildMaxDepth(t *testing.T) {
	t.Parallel()

	kc := hdkeychain.NewSecp256k1()
	master, err := kc.NewKeyFromString(masterPub1)
	require.NoError(t, err)

	key := master
	for i := 0; i < 255; i++ {
		key, err = key.Child(0)
		require.NoError(t, err, "depth %d", i+1)
	}
	require.Equal(t, uint8(255), key.Depth())

	// The deepest key still round trips.
	decoded, err := kc.NewKeyFromString(key.String())
	require.NoError(t, err)
	require.Equal(t, uint8(255), decoded.Depth())

	_, err = key.Child(0)
	require.ErrorIs(t, err, hdkeychain.ErrDeriveBeyondMaxDepth)
	_, err = decoded.Derive("m/1")
	require.ErrorIs(t, err, hdkeychain.ErrDeriveBeyondMaxDepth)
}

// TestConcurrentDerivation ensures a single parent can be shared by many
// goroutines deriving children at the same time.
func TestConcurrentDerivation(t *testing.T) {
	t.Parallel()

	kc := hdkeychain.NewSecp256k1()
	master, err := kc.NewKeyFromString(masterPriv1)
	require.NoError(t, err)

	const workers = 16
	want := make([]string, workers)
	for i := range want {
		child, err := master.Child(uint32(i))
		require.NoError(t, err)
		want[i] = child.String()
	}

	var wg sync.WaitGroup
	got := make([]string, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			child, err := master.Child(uint32(i))
			if err != nil {
				errs[i] = err
				return
			}
			got[i] = child.String()
		}(i)
	}
	wg.Wait()

	for i := range got {
		require.NoError(t, errs[i])
		require.Equal(t, want[i], got[i])
	}
}
