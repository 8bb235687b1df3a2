// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2018 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package version houses the version of the bip32 module commands.
package version

import (
	"fmt"
	"strings"
)

// semanticAlphabet defines the allowed characters for the pre-release and
// build portions of a semantic version string.
const semanticAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-"

// These constants define the application version and follow the semantic
// versioning 2.0.0 spec (http://semver.org/).
const (
	Major uint = 0
	Minor uint = 1
	Patch uint = 0
)

var (
	// PreRelease can be overridden during the build process with:
	// '-ldflags "-X github.com/btcsuite/bip32/internal/version.PreRelease=foo"'
	PreRelease = "beta"

	// BuildMetadata can be overridden during the build process with:
	// '-ldflags "-X github.com/btcsuite/bip32/internal/version.BuildMetadata=foo"'
	// Dots separate identifiers and are kept.
	BuildMetadata = ""
)

// String returns the application version as a properly formed string per the
// semantic versioning 2.0.0 spec (http://semver.org/).  Invalid characters
// in the pre-release and build strings are dropped.
func String() string {
	version := fmt.Sprintf("%d.%d.%d", Major, Minor, Patch)

	if preRelease := normalize(PreRelease, ""); preRelease != "" {
		version += "-" + preRelease
	}
	if build := normalize(BuildMetadata, "."); build != "" {
		version += "+" + build
	}

	return version
}

// normalize returns str stripped of every character that is neither in
// semanticAlphabet nor in extra.
func normalize(str, extra string) string {
	var b strings.Builder
	for _, r := range str {
		if strings.ContainsRune(semanticAlphabet, r) ||
			strings.ContainsRune(extra, r) {

			b.WriteRune(r)
		}
	}
	return b.String()
}
