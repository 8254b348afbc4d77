// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package ckd

import (
	"encoding/hex"
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// RootElementAlias lists the accepted first elements of a path.
var RootElementAlias = []string{"m", "M"}

// ParsePath parses a derivation path such as "m/0/1/2", "M/44'/5'/0'" or
// "m/0x<64 hex digits>/1" into its ordered list of indices. "m" and "m/" are
// the empty path.
//
// A segment is a decimal number below 2^31 or a 0x-prefixed hex number of at
// most 256 bits (a DIP14 index), optionally followed by ', h or H to mark it
// hardened. Whether the segment values are usable from a public key is
// checked at derivation time, not here.
func ParsePath(pathStr string) ([]Index, error) {
	if pathStr == "" {
		return nil, errors.Wrap(ErrInvalidPath, "empty HD path")
	}
	parts := strings.Split(pathStr, "/")
	if !isRootAlias(parts[0]) {
		return nil, errors.Wrapf(ErrInvalidPath, "HD path %q must start with 'm' or 'M'", pathStr)
	}
	// "m/" is the root path
	if len(parts) == 2 && parts[1] == "" {
		return []Index{}, nil
	}

	indices := make([]Index, 0, len(parts)-1)
	for i := 1; i < len(parts); i++ {
		idx, err := parseSegment(parts[i])
		if err != nil {
			return nil, errors.Wrapf(err, "segment %d of %q", i, pathStr)
		}
		indices = append(indices, idx)
	}
	return indices, nil
}

// FormatPath is the inverse of ParsePath.
func FormatPath(path []Index) string {
	var sb strings.Builder
	sb.WriteString(RootElementAlias[0])
	for _, idx := range path {
		sb.WriteByte('/')
		sb.WriteString(idx.String())
	}
	return sb.String()
}

func isRootAlias(s string) bool {
	for _, alias := range RootElementAlias {
		if s == alias {
			return true
		}
	}
	return false
}

func parseSegment(seg string) (Index, error) {
	hardened := false
	if n := len(seg); n > 0 && (seg[n-1] == '\'' || seg[n-1] == 'h' || seg[n-1] == 'H') {
		hardened = true
		seg = seg[:n-1]
	}
	if seg == "" {
		return Index{}, errors.Wrap(ErrInvalidPath, "empty segment")
	}

	if strings.HasPrefix(seg, "0x") {
		digits := seg[2:]
		if digits == "" || len(digits) > index256HexDigits {
			return Index{}, errors.Wrapf(ErrInvalidPath, "256-bit segment %q must have 1 to %d hex digits", seg, index256HexDigits)
		}
		if len(digits)%2 == 1 {
			digits = "0" + digits
		}
		b, err := hex.DecodeString(digits)
		if err != nil {
			return Index{}, errors.Wrapf(ErrInvalidPath, "malformed hex segment %q", seg)
		}
		return NewIndex256(new(big.Int).SetBytes(b), hardened), nil
	}

	v, err := strconv.ParseUint(seg, 10, 31)
	if err != nil {
		return Index{}, errors.Wrapf(ErrInvalidPath, "malformed segment %q", seg)
	}
	if hardened {
		return NewHardenedIndex(uint32(v)), nil
	}
	return NewIndex(uint32(v)), nil
}
