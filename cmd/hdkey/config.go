// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/bip32/hdkeychain"
	"github.com/btcsuite/bip32/internal/log"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultPath       = "m"
	defaultDebugLevel = "info"
	defaultLogFile    = "hdkey.log"
	digestLen         = 32
)

var (
	hdkeyHomeDir  = btcutil.AppDataDir("hdkey", false)
	defaultLogDir = filepath.Join(hdkeyHomeDir, "logs")
)

// config defines the configuration options for hdkey.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ShowVersion    bool   `short:"V" long:"version" description:"Display version information and exit"`
	Seed           string `short:"s" long:"seed" description:"Hex encoded seed of the master key; prompted for when neither --seed nor --xkey is given"`
	ExtendedKey    string `short:"k" long:"xkey" description:"Start from a serialized extended key instead of a seed"`
	Path           string `short:"p" long:"path" description:"Derivation path relative to the starting key, for example m/44'/0'/0'/0/0"`
	TestNet3       bool   `long:"testnet" description:"Use the test network version bytes"`
	RegressionTest bool   `long:"regtest" description:"Use the regression test network version bytes"`
	SimNet         bool   `long:"simnet" description:"Use the simulation test network version bytes"`
	Neuter         bool   `short:"n" long:"neuter" description:"Only output the public part of the derived key"`
	Sign           string `long:"sign" description:"Hex encoded 32-byte digest to sign with the derived key"`
	GenSeed        bool   `long:"genseed" description:"Print a new random seed and exit"`
	SeedLen        uint8  `long:"seedlen" description:"Length in bytes of the seed printed by --genseed {16-64}"`
	DebugLevel     string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	LogDir         string `long:"logdir" description:"Directory to write a rotated log file to"`
	NoFileLogging  bool   `long:"nofilelogging" description:"Only log to standard error"`

	params *chaincfg.Params
	seed   []byte
	path   hdkeychain.DerivationPath
	digest []byte
}

// loadConfig initializes and parses the config using command line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Parse the passed arguments
//  3. Validate the combination of options and decode their values
func loadConfig(args []string) (*config, []string, error) {
	// Default config.
	cfg := config{
		Path:       defaultPath,
		SeedLen:    hdkeychain.RecommendedSeedLen,
		DebugLevel: defaultDebugLevel,
		LogDir:     defaultLogDir,
		params:     &chaincfg.MainNetParams,
	}

	// Parse command line options.
	parser := flags.NewParser(&cfg, flags.Default)
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		if e, ok := err.(*flags.Error); !ok || e.Type != flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
		}
		return nil, nil, err
	}

	// Nothing else is needed to show the version.
	if cfg.ShowVersion {
		return &cfg, remainingArgs, nil
	}

	funcName := "loadConfig"
	fail := func(err error) (*config, []string, error) {
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	// Multiple networks can't be selected simultaneously.  Count number of
	// network flags passed; assign active network params while we're at it.
	numNets := 0
	if cfg.TestNet3 {
		numNets++
		cfg.params = &chaincfg.TestNet3Params
	}
	if cfg.RegressionTest {
		numNets++
		cfg.params = &chaincfg.RegressionNetParams
	}
	if cfg.SimNet {
		numNets++
		cfg.params = &chaincfg.SimNetParams
	}
	if numNets > 1 {
		str := "%s: the testnet, regtest, and simnet params can't be " +
			"used together -- choose one of the three"
		return fail(fmt.Errorf(str, funcName))
	}

	// Parse, validate, and set debug log level(s).
	if err := log.ParseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return fail(fmt.Errorf("%s: %w", funcName, err))
	}

	if cfg.GenSeed {
		if cfg.SeedLen < hdkeychain.MinSeedBytes ||
			cfg.SeedLen > hdkeychain.MaxSeedBytes {

			str := "%s: the seed length must be between %d and %d " +
				"bytes -- parsed [%d]"
			return fail(fmt.Errorf(str, funcName, hdkeychain.MinSeedBytes,
				hdkeychain.MaxSeedBytes, cfg.SeedLen))
		}
		return &cfg, remainingArgs, nil
	}

	if cfg.Seed != "" && cfg.ExtendedKey != "" {
		str := "%s: the seed and xkey options can't be used together"
		return fail(fmt.Errorf(str, funcName))
	}

	if cfg.Seed != "" {
		cfg.seed, err = hex.DecodeString(cfg.Seed)
		if err != nil {
			return fail(fmt.Errorf("%s: invalid seed: %w", funcName, err))
		}
		if len(cfg.seed) < hdkeychain.MinSeedBytes ||
			len(cfg.seed) > hdkeychain.MaxSeedBytes {

			str := "%s: the seed must be between %d and %d bytes -- " +
				"parsed %d"
			return fail(fmt.Errorf(str, funcName, hdkeychain.MinSeedBytes,
				hdkeychain.MaxSeedBytes, len(cfg.seed)))
		}
	}

	cfg.path, err = hdkeychain.ParsePath(cfg.Path)
	if err != nil {
		return fail(fmt.Errorf("%s: invalid path: %w", funcName, err))
	}

	if cfg.Sign != "" {
		cfg.digest, err = hex.DecodeString(cfg.Sign)
		if err != nil || len(cfg.digest) != digestLen {
			str := "%s: the digest to sign must be %d hex encoded bytes"
			return fail(fmt.Errorf(str, funcName, digestLen))
		}
	}

	return &cfg, remainingArgs, nil
}
