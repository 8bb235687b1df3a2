// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hmackdf_test

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/bip32/hmackdf"
	"github.com/stretchr/testify/require"
)

// TestHMACSHA512 checks the provider against RFC 4231 test cases and the
// BIP0032 master key derivation of test vector 1.
func TestHMACSHA512(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
		data string
		want string
	}{{
		name: "RFC 4231 test case 1",
		key:  "0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b",
		data: hex.EncodeToString([]byte("Hi There")),
		want: "87aa7cdea5ef619d4ff0b4241a1d6cb02379f4e2ce4ec2787ad0b30545e17cde" +
			"daa833b7d6b8a702038b274eaea3f4e4be9d914eeb61f1702e696c203a126854",
	}, {
		name: "RFC 4231 test case 2",
		key:  hex.EncodeToString([]byte("Jefe")),
		data: hex.EncodeToString([]byte("what do ya want for nothing?")),
		want: "164b7a7bfcf819e2e395fbe73b56e0a387bd64222e831fd610270cd7ea250554" +
			"9758bf75c05a994a6d034f65f8f0e6fdcaeab1a34d4a6b4b636e070a38bce737",
	}, {
		name: "BIP0032 test vector 1 master",
		key:  hex.EncodeToString([]byte("Bitcoin seed")),
		data: "000102030405060708090a0b0c0d0e0f",
		want: "e8f32e723decf4051aefac8e2c93c9c5b214313817cdb01a1494b917c8436b35" +
			"873dff81c02f525623fd1fe5167eac3a55a049de3d314bb42ee227ffed37d508",
	}}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			key, err := hex.DecodeString(test.key)
			require.NoError(t, err)
			data, err := hex.DecodeString(test.data)
			require.NoError(t, err)

			got := hmackdf.SHA512.HMACSHA512(key, data)
			require.Len(t, got, hmackdf.Size)
			require.Equal(t, test.want, hex.EncodeToString(got))
		})
	}
}
