// Copyright (c) 2014-2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkeychain

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// serializedKeyLen is the length of a serialized public or private
	// extended key.  It consists of 4 bytes version, 1 byte depth, 4 bytes
	// fingerprint, 4 bytes child number, 32 bytes chain code, and 33 bytes
	// public/private key data.
	serializedKeyLen = 4 + 1 + 4 + 4 + 32 + 33 // 78 bytes

	// checksumLen is the length of the double SHA-256 checksum appended to
	// a serialized extended key.
	checksumLen = 4
)

// zeroFingerprint is the parent fingerprint of every master key.
var zeroFingerprint [4]byte

// String returns the extended key as a human-readable base58-encoded string.
// Extended keys that were never populated with a key serialize to an empty
// string.
func (k *ExtendedKey) String() string {
	if len(k.pubKey) == 0 {
		return ""
	}

	var childNumBytes [4]byte
	binary.BigEndian.PutUint32(childNumBytes[:], k.index)

	// The serialized format is:
	//   version (4) || depth (1) || parent fingerprint (4)) ||
	//   child num (4) || chain code (32) || key data (33) || checksum (4)
	serializedBytes := make([]byte, 0, serializedKeyLen+checksumLen)
	defer zero(serializedBytes[:cap(serializedBytes)])
	var version [4]byte
	if k.IsPrivate() {
		binary.BigEndian.PutUint32(version[:], k.versions.Private)
	} else {
		binary.BigEndian.PutUint32(version[:], k.versions.Public)
	}
	serializedBytes = append(serializedBytes, version[:]...)
	serializedBytes = append(serializedBytes, k.depth)
	serializedBytes = append(serializedBytes, k.parentFP[:]...)
	serializedBytes = append(serializedBytes, childNumBytes[:]...)
	serializedBytes = append(serializedBytes, k.chainCode...)
	if k.IsPrivate() {
		serializedBytes = append(serializedBytes, 0x00)
		serializedBytes = append(serializedBytes, k.privKey.bytes()...)
	} else {
		serializedBytes = append(serializedBytes, k.pubKey...)
	}

	checkSum := chainhash.DoubleHashB(serializedBytes)[:checksumLen]
	serializedBytes = append(serializedBytes, checkSum...)
	return base58.Encode(serializedBytes)
}

// NewKeyFromString returns a new extended key instance from a base58-encoded
// extended key.  The version bytes must belong to one of the networks known
// to chaincfg.
func (kc *Keychain) NewKeyFromString(key string) (*ExtendedKey, error) {
	if err := kc.ready(); err != nil {
		return nil, err
	}

	// The base58-decoded extended key must consist of a serialized payload
	// plus an additional 4 bytes for the checksum.
	decoded := base58.Decode(key)
	defer zero(decoded)
	if len(decoded) != serializedKeyLen+checksumLen {
		str := fmt.Sprintf("serialized extended key must be %d bytes, "+
			"got %d", serializedKeyLen+checksumLen, len(decoded))
		return nil, makeError(ErrInvalidKeyLength, str)
	}

	// The serialized format is:
	//   version (4) || depth (1) || parent fingerprint (4)) ||
	//   child num (4) || chain code (32) || key data (33) || checksum (4)

	// Split the payload and checksum up and ensure the checksum matches.
	payload := decoded[:len(decoded)-checksumLen]
	checkSum := decoded[len(decoded)-checksumLen:]
	expectedCheckSum := chainhash.DoubleHashB(payload)[:checksumLen]
	if !bytes.Equal(checkSum, expectedCheckSum) {
		return nil, makeError(ErrBadChecksum, "bad extended key checksum")
	}

	// Deserialize each of the payload fields.
	version := binary.BigEndian.Uint32(payload[:4])
	depth := payload[4:5][0]
	parentFP := payload[5:9]
	childNum := binary.BigEndian.Uint32(payload[9:13])
	chainCode := payload[13:45]
	keyData := payload[45:78]

	// A master key has no parent and is not a child of anything.
	if depth == 0 && (!bytes.Equal(parentFP, zeroFingerprint[:]) ||
		childNum != 0) {

		str := fmt.Sprintf("zero depth key with parent fingerprint %x "+
			"and index %d", parentFP, childNum)
		return nil, makeError(ErrInvalidDepthZero, str)
	}

	versions, ok := versionsByID[version]
	if !ok {
		str := fmt.Sprintf("unknown extended key version %08x", version)
		return nil, makeError(ErrUnknownHDKeyID, str)
	}

	// The key data is a private key if it starts with 0x00.  Serialized
	// compressed pubkeys either start with 0x02 or 0x03.
	isPrivate := keyData[0] == 0x00
	if isPrivate != (version == versions.Private) {
		str := fmt.Sprintf("key data does not match version %08x",
			version)
		return nil, makeError(ErrUnknownHDKeyID, str)
	}

	k := &ExtendedKey{
		kc:        kc,
		versions:  versions,
		depth:     depth,
		index:     childNum,
		chainCode: append([]byte(nil), chainCode...),
	}
	copy(k.parentFP[:], parentFP)

	var err error
	if isPrivate {
		err = k.SetPrivateKey(keyData[1:])
	} else {
		err = k.SetPublicKey(keyData)
	}
	if err != nil {
		return nil, err
	}

	return k, nil
}
