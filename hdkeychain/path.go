// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkeychain

import (
	"fmt"
	"strconv"
	"strings"
)

// DerivationPath is a sequence of child indices relative to a root key.
// Hardened indices include HardenedKeyStart.
type DerivationPath []uint32

// String returns the textual form of the path, for example m/44'/0'/0'/0/7.
func (p DerivationPath) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, index := range p {
		b.WriteByte('/')
		if index >= HardenedKeyStart {
			b.WriteString(strconv.FormatUint(uint64(index-HardenedKeyStart), 10))
			b.WriteByte('\'')
			continue
		}
		b.WriteString(strconv.FormatUint(uint64(index), 10))
	}
	return b.String()
}

// ParsePath converts a textual derivation path into its indices.  The path
// must start with m or M, optionally followed by a hardened marker which is
// ignored, and contain any number of /-separated decimal segments.  A segment
// ending in ', h or H is hardened.
//
// ErrInvalidPathFormat is returned for a bad root or an empty or non-numeric
// segment and ErrIndexOutOfRange for a segment value of 2^31 or more.
func ParsePath(path string) (DerivationPath, error) {
	segments := strings.Split(path, "/")
	switch segments[0] {
	case "m", "M", "m'", "M'":
	default:
		str := fmt.Sprintf("path %q must start with m or M", path)
		return nil, makeError(ErrInvalidPathFormat, str)
	}

	result := make(DerivationPath, 0, len(segments)-1)
	for _, segment := range segments[1:] {
		index, err := parseSegment(segment)
		if err != nil {
			return nil, err
		}
		result = append(result, index)
	}
	return result, nil
}

// parseSegment converts a single path segment into a child index.
func parseSegment(segment string) (uint32, error) {
	digits := segment
	hardened := false
	if n := len(digits); n > 1 {
		switch digits[n-1] {
		case '\'', 'h', 'H':
			hardened = true
			digits = digits[:n-1]
		}
	}

	if digits == "" {
		return 0, makeError(ErrInvalidPathFormat, "empty path segment")
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			str := fmt.Sprintf("path segment %q is not a number", segment)
			return 0, makeError(ErrInvalidPathFormat, str)
		}
	}

	// Only digits remain, so the only possible parse failure is a value
	// that does not fit in 64 bits.
	value, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || value >= HardenedKeyStart {
		str := fmt.Sprintf("path segment %q must be less than %d",
			segment, uint32(HardenedKeyStart))
		return 0, makeError(ErrIndexOutOfRange, str)
	}

	index := uint32(value)
	if hardened {
		index += HardenedKeyStart
	}
	return index, nil
}

// Derive resolves a textual derivation path such as m/44'/0'/0'/0/7 relative
// to this key.  The paths m, M, m' and M' return the extended key itself.
func (k *ExtendedKey) Derive(path string) (*ExtendedKey, error) {
	if err := k.kc.ready(); err != nil {
		return nil, err
	}

	indices, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return k.DerivePath(indices...)
}
