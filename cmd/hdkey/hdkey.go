// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/bip32/hdkeychain"
	"github.com/btcsuite/bip32/internal/log"
	"github.com/btcsuite/bip32/internal/version"
	flags "github.com/jessevdk/go-flags"
	"golang.org/x/crypto/ssh/terminal"
)

var hdkyLog = log.HdkyLog

func zero(b []byte) {
	for i := 0; i < len(b); i++ {
		b[i] = 0x00
	}
}

// promptSeed reads a hex encoded seed from the terminal without echoing it.
func promptSeed() ([]byte, error) {
	fmt.Fprint(os.Stderr, "Seed (hex): ")
	secret, err := terminal.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprint(os.Stderr, "\n")
	if err != nil {
		return nil, fmt.Errorf("unable to read seed: %w", err)
	}
	defer zero(secret)

	trimmed := []byte(strings.TrimSpace(string(secret)))
	defer zero(trimmed)
	seed := make([]byte, hex.DecodedLen(len(trimmed)))
	if _, err := hex.Decode(seed, trimmed); err != nil {
		zero(seed)
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	return seed, nil
}

// rootKey returns the key derivation starts from: either the deserialized
// extended key or the master key of the configured or prompted seed.
func rootKey(kc *hdkeychain.Keychain, cfg *config) (*hdkeychain.ExtendedKey, error) {
	versions := hdkeychain.VersionsForNet(cfg.params)

	if cfg.ExtendedKey != "" {
		key, err := kc.NewKeyFromString(cfg.ExtendedKey)
		if err != nil {
			return nil, err
		}
		if key.Versions() != versions {
			hdkyLog.Warnf("Extended key is not for %s, keeping its "+
				"version bytes", cfg.params.Name)
		}
		return key, nil
	}

	seed := cfg.seed
	if seed == nil {
		var err error
		seed, err = promptSeed()
		if err != nil {
			return nil, err
		}
	}
	defer zero(seed)

	return kc.NewMaster(seed, versions)
}

// writeKey prints the derived key and its metadata.
func writeKey(w io.Writer, path hdkeychain.DerivationPath,
	key *hdkeychain.ExtendedKey) {

	index := fmt.Sprintf("%d", key.Index())
	if key.IsHardened() {
		index = fmt.Sprintf("%d (%d')", key.Index(),
			key.Index()-hdkeychain.HardenedKeyStart)
	}

	fmt.Fprintf(w, "path:               %s\n", path)
	fmt.Fprintf(w, "depth:              %d\n", key.Depth())
	fmt.Fprintf(w, "index:              %s\n", index)
	fmt.Fprintf(w, "fingerprint:        %08x\n", key.Fingerprint())
	fmt.Fprintf(w, "parent fingerprint: %08x\n", key.ParentFingerprint())
	fmt.Fprintf(w, "chain code:         %x\n", key.ChainCode())
	fmt.Fprintf(w, "public key:         %x\n", key.PublicKey())

	pub, err := key.Neuter()
	if err == nil {
		fmt.Fprintf(w, "extended public:    %s\n", pub.String())
	}
	if key.IsPrivate() {
		fmt.Fprintf(w, "extended private:   %s\n", key.String())
	}
}

// writeSignature prints a recoverable compact signature.
func writeSignature(w io.Writer, sig []byte, recoveryID byte) {
	fmt.Fprintf(w, "signature:          %x\n", sig)
	fmt.Fprintf(w, "recovery id:        %d\n", recoveryID)
}

// hdkeyMain is the real main function for hdkey.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is
// called.
func hdkeyMain(stdout io.Writer, args []string) error {
	// Configuration errors are reported by loadConfig.
	cfg, _, err := loadConfig(args)
	if err != nil {
		return err
	}

	if err := run(stdout, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

// run performs the action selected by the configuration.
func run(stdout io.Writer, cfg *config) error {
	if cfg.ShowVersion {
		fmt.Fprintln(stdout, "hdkey version", version.String())
		return nil
	}

	if !cfg.NoFileLogging {
		logFile := filepath.Join(cfg.LogDir, defaultLogFile)
		if err := log.InitLogRotator(logFile); err != nil {
			return err
		}
		defer log.CloseLogRotator()
	}

	if cfg.GenSeed {
		seed, err := hdkeychain.GenerateSeed(cfg.SeedLen)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%x\n", seed)
		zero(seed)
		return nil
	}

	kc := hdkeychain.NewSecp256k1()
	root, err := rootKey(kc, cfg)
	if err != nil {
		return err
	}

	hdkyLog.Debugf("Deriving %s below key %08x", cfg.path, root.Fingerprint())

	return hdkeychain.WithKey(root, func(root *hdkeychain.ExtendedKey) error {
		key, err := root.DerivePath(cfg.path...)
		if err != nil {
			return err
		}
		defer key.WipePrivateData()

		// Sign before neutering so the private key is still available.
		var (
			sig        []byte
			recoveryID byte
		)
		if len(cfg.digest) != 0 {
			sig, recoveryID, err = key.SignRecoverable(cfg.digest)
			if err != nil {
				return err
			}
		}

		if cfg.Neuter {
			key, err = key.Neuter()
			if err != nil {
				return err
			}
		}

		writeKey(stdout, cfg.path, key)
		if sig != nil {
			writeSignature(stdout, sig, recoveryID)
		}
		return nil
	})
}

func main() {
	if err := hdkeyMain(os.Stdout, os.Args[1:]); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
