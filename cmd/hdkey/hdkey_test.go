// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/btcsuite/bip32/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
)

const (
	testMasterPub = "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8Nqtwyb" +
		"GhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8"

	testChildPriv = "xprv9uHRZZhk6KAJC1avXpDAp4MDc3sQKNxDiPvvkX8Br5ngLNv1T" +
		"xvUxt4cV1rGL5hj6KCesnDYUhd7oWgT11eZG7XnxHrnYeSvkzY7d2bhkJ7"
	testChildPub = "xpub68Gmy5EdvgibQVfPdqkBBCHxA5htiqg55crXYuXoQRKfDBFA1" +
		"WEjWgP6LHhwBZeNK1VTsfTFUHCdrfp1bgwQ9xv5ski8PX9rL2dZXvgGDnw"
)

// outputFields splits the command output into its labeled values.
func outputFields(t *testing.T, out string) map[string]string {
	t.Helper()

	fields := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		label, value, ok := strings.Cut(line, ":")
		require.True(t, ok, line)
		fields[label] = strings.TrimSpace(value)
	}
	return fields
}

// TestHDKeyDerive ensures the command derives the expected key from a seed.
func TestHDKeyDerive(t *testing.T) {
	var out bytes.Buffer
	err := hdkeyMain(&out, []string{
		"--nofilelogging", "--seed=" + testSeedHex, "--path=m/0h",
	})
	require.NoError(t, err)

	fields := outputFields(t, out.String())
	require.Equal(t, "m/0'", fields["path"])
	require.Equal(t, "1", fields["depth"])
	require.Equal(t, "2147483648 (0')", fields["index"])
	require.Equal(t, "5c1bd648", fields["fingerprint"])
	require.Equal(t, "3442193e", fields["parent fingerprint"])
	require.Equal(t, "47fdacbd0f1097043b78c63c20c34ef4ed9a111d980047ad16282c7ae6236141",
		fields["chain code"])
	require.Equal(t, "035a784662a4a20a65bf6aab9ae98a6c068a81c52e4b032c0fb5400c706cfccc56",
		fields["public key"])
	require.Equal(t, testChildPub, fields["extended public"])
	require.Equal(t, testChildPriv, fields["extended private"])
}

// TestHDKeyNeuterAndSign ensures a signature is produced with the private key
// even when only the public key is printed.
func TestHDKeyNeuterAndSign(t *testing.T) {
	digest := chainhash.HashB([]byte("hdkey"))

	var out bytes.Buffer
	err := hdkeyMain(&out, []string{
		"--nofilelogging", "--seed=" + testSeedHex, "--path=m/0'",
		"--neuter", "--sign=" + hex.EncodeToString(digest),
	})
	require.NoError(t, err)

	fields := outputFields(t, out.String())
	require.Equal(t, testChildPub, fields["extended public"])
	require.NotContains(t, fields, "extended private")

	sig, err := hex.DecodeString(fields["signature"])
	require.NoError(t, err)
	require.Len(t, sig, 64)

	key, err := hdkeychain.NewSecp256k1().NewKeyFromString(testChildPub)
	require.NoError(t, err)
	require.True(t, key.Verify(digest, sig))
}

// TestHDKeyExtendedKey ensures derivation can start from a serialized key and
// that derivation errors are returned.
func TestHDKeyExtendedKey(t *testing.T) {
	var out bytes.Buffer
	err := hdkeyMain(&out, []string{
		"--nofilelogging", "--xkey=" + testMasterPub, "--path=m/0/1",
	})
	require.NoError(t, err)
	fields := outputFields(t, out.String())
	require.Equal(t, "2", fields["depth"])
	require.NotContains(t, fields, "extended private")

	out.Reset()
	err = hdkeyMain(&out, []string{
		"--nofilelogging", "--xkey=" + testMasterPub, "--path=m/0'",
	})
	require.ErrorIs(t, err, hdkeychain.ErrDeriveHardFromPublic)
	require.Zero(t, out.Len())

	err = hdkeyMain(&out, []string{
		"--nofilelogging", "--xkey=" + testMasterPub, "--sign=" +
			strings.Repeat("00", 32),
	})
	require.ErrorIs(t, err, hdkeychain.ErrNoPrivateKey)
}

// TestHDKeyGenSeed ensures a seed of the requested length is printed.
func TestHDKeyGenSeed(t *testing.T) {
	var out bytes.Buffer
	err := hdkeyMain(&out, []string{"--nofilelogging", "--genseed",
		"--seedlen=16"})
	require.NoError(t, err)

	seed, err := hex.DecodeString(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	require.Len(t, seed, 16)
}

// TestHDKeyLogFile ensures the rotated log file is created in the log
// directory.
func TestHDKeyLogFile(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer
	err := hdkeyMain(&out, []string{"--logdir=" + dir, "--genseed"})
	require.NoError(t, err)
	require.FileExists(t, dir+"/"+defaultLogFile)
}

// TestHDKeyVersion ensures the version is printed without any other option
// being validated.
func TestHDKeyVersion(t *testing.T) {
	var out bytes.Buffer
	err := hdkeyMain(&out, []string{"--version", "--testnet", "--simnet"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out.String(), "hdkey version 0.1.0"))
}
