// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkeychain

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg"
)

// Versions holds the four-byte version prefixes used when serializing private
// and public extended keys.  They are copied unchanged to every descendant.
type Versions struct {
	Private uint32
	Public  uint32
}

// BitcoinVersions are the mainnet xprv/xpub version bytes.
var BitcoinVersions = Versions{
	Private: 0x0488ade4,
	Public:  0x0488b21e,
}

// orDefault returns BitcoinVersions for the zero value.
func (v Versions) orDefault() Versions {
	if v == (Versions{}) {
		return BitcoinVersions
	}
	return v
}

// VersionsForNet returns the extended key version bytes of the passed network.
func VersionsForNet(net *chaincfg.Params) Versions {
	return Versions{
		Private: binary.BigEndian.Uint32(net.HDPrivateKeyID[:]),
		Public:  binary.BigEndian.Uint32(net.HDPublicKeyID[:]),
	}
}

// versionsByID maps every known private and public version to the pair it
// belongs to so a serialized key can be decoded without knowing its network.
var versionsByID = func() map[uint32]Versions {
	nets := []*chaincfg.Params{
		&chaincfg.MainNetParams,
		&chaincfg.TestNet3Params,
		&chaincfg.RegressionNetParams,
		&chaincfg.SimNetParams,
		&chaincfg.SigNetParams,
	}

	m := make(map[uint32]Versions, len(nets)*2)
	for _, net := range nets {
		v := VersionsForNet(net)
		m[v.Private] = v
		m[v.Public] = v
	}
	return m
}()
