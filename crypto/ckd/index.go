// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package ckd

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

const (
	// HardenedKeyStart hardened key starts.
	HardenedKeyStart = 0x80000000 // 2^31

	// index256HexDigits is the length of a DIP14 index written as 0x-prefixed hex.
	index256HexDigits = 64
)

var (
	hardenedKeyStartBig = big.NewInt(HardenedKeyStart)
	maxIndex256         = new(big.Int).Lsh(big.NewInt(1), 256) // 2^256
	one                 = big.NewInt(1)
)

// Mode is the child index width of an extended key.
type Mode int

const (
	// Mode32 is BIP32: 4 byte child index, no hardened byte.
	Mode32 Mode = iota
	// Mode256 is DIP14: 32 byte child index plus a hardened flag byte.
	Mode256
)

func (m Mode) String() string {
	switch m {
	case Mode32:
		return "bip32"
	case Mode256:
		return "dip14"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ChildIndexSize is the serialized size of the child index in this mode.
func (m Mode) ChildIndexSize() int {
	if m == Mode256 {
		return ChildIndexSize256
	}
	return ChildIndexSize
}

// ----- //

// ChildIndex is the position of a key among its siblings. It is either an
// Index32 or an Index256; there is no other implementation.
type ChildIndex interface {
	Mode() Mode
	// Bytes is the big-endian serialized form, 4 or 32 bytes.
	Bytes() []byte
	isChildIndex()
}

// Index32 is a BIP32 child number. Values at or above HardenedKeyStart mark
// hardened children.
type Index32 uint32

func (Index32) Mode() Mode    { return Mode32 }
func (Index32) isChildIndex() {}

func (i Index32) Bytes() []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(i))
	return b[:]
}

func (i Index32) IsHardened() bool {
	return uint32(i) >= HardenedKeyStart
}

// Index256 is a DIP14 child index with its explicit hardened flag.
type Index256 struct {
	Value    [32]byte
	Hardened bool
}

func (Index256) Mode() Mode    { return Mode256 }
func (Index256) isChildIndex() {}

func (i Index256) Bytes() []byte {
	out := make([]byte, ChildIndexSize256)
	copy(out, i.Value[:])
	return out
}

// BigInt returns the index as an integer.
func (i Index256) BigInt() *big.Int { return new(big.Int).SetBytes(i.Value[:]) }

// HardenedByte is the single flag byte written before the index.
func (i Index256) HardenedByte() byte {
	if i.Hardened {
		return 1
	}
	return 0
}

// String is the 0x-prefixed hex form used in the object representation.
func (i Index256) String() string { return "0x" + hex.EncodeToString(i.Value[:]) }

// ----- //

// IndexKind tags a derivation request.
type IndexKind int

const (
	Normal IndexKind = iota
	Hardened
	Extended256
)

func (k IndexKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Hardened:
		return "hardened"
	case Extended256:
		return "extended256"
	}
	return fmt.Sprintf("IndexKind(%d)", int(k))
}

// Index is a single derivation request: a 31-bit BIP32 index, optionally
// hardened, or a 256-bit DIP14 index with its own hardened flag. The zero
// value is the normal index 0.
type Index struct {
	wide     bool
	hardened bool
	value    *big.Int // 32-bit: the position below 2^31; 256-bit: the full index
}

// NewIndex classifies a BIP32 child number; values at or above 2^31 are
// hardened.
func NewIndex(i uint32) Index {
	if i >= HardenedKeyStart {
		return Index{hardened: true, value: big.NewInt(int64(i - HardenedKeyStart))}
	}
	return Index{value: big.NewInt(int64(i))}
}

// NewHardenedIndex returns the hardened form of the position i (i < 2^31).
func NewHardenedIndex(i uint32) Index {
	return Index{hardened: true, value: big.NewInt(int64(i &^ HardenedKeyStart))}
}

// NewIndex256 returns a DIP14 index. The value is not range checked here;
// derivation rejects anything outside [2^31, 2^256).
func NewIndex256(v *big.Int, hardened bool) Index {
	return Index{wide: true, hardened: hardened, value: new(big.Int).Set(v)}
}

func (i Index) val() *big.Int {
	if i.value == nil {
		return new(big.Int)
	}
	return i.value
}

func (i Index) Kind() IndexKind {
	switch {
	case i.wide:
		return Extended256
	case i.hardened:
		return Hardened
	}
	return Normal
}

func (i Index) IsHardened() bool { return i.hardened }

// Mode is the key mode a step with this index produces.
func (i Index) Mode() Mode {
	if i.wide {
		return Mode256
	}
	return Mode32
}

// Value returns a copy of the index value. For 32-bit indices it is the
// position below 2^31 regardless of the hardened flag.
func (i Index) Value() *big.Int { return new(big.Int).Set(i.val()) }

// Uint32 is the BIP32 child number including the hardened bit. It is only
// meaningful for 32-bit indices.
func (i Index) Uint32() uint32 {
	v := uint32(i.val().Uint64())
	if i.hardened {
		v |= HardenedKeyStart
	}
	return v
}

// Harden returns the hardened form of i.
func (i Index) Harden() Index {
	i.hardened = true
	return i
}

// Bytes is the big-endian form fed to the HMAC: 4 bytes or 32 bytes.
func (i Index) Bytes() []byte {
	if i.wide {
		out := make([]byte, ChildIndexSize256)
		i.val().FillBytes(out)
		return out
	}
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], i.Uint32())
	return b[:]
}

// ChildIndex converts the request into the index stored on the derived key.
func (i Index) ChildIndex() ChildIndex {
	if i.wide {
		var ci Index256
		i.val().FillBytes(ci.Value[:])
		ci.Hardened = i.hardened
		return ci
	}
	return Index32(i.Uint32())
}

// validate checks that the index may be used for public derivation.
func (i Index) validate() error {
	if i.hardened {
		return ErrCantDeriveHardened
	}
	v := i.val()
	if i.wide {
		if v.Cmp(hardenedKeyStartBig) < 0 || v.Cmp(maxIndex256) >= 0 {
			return errors.Wrapf(ErrInvalidPath, "256-bit index %s outside [2^31, 2^256)", i)
		}
		return nil
	}
	if v.Sign() < 0 || v.Cmp(hardenedKeyStartBig) >= 0 {
		return errors.Wrapf(ErrInvalidPath, "index %s outside [0, 2^31)", i)
	}
	return nil
}

// next is the retry candidate after i, or false when i is the last index of
// its range.
func (i Index) next() (Index, bool) {
	n := new(big.Int).Add(i.val(), one)
	if i.wide {
		if n.Cmp(maxIndex256) >= 0 {
			return i, false
		}
	} else if n.Cmp(hardenedKeyStartBig) >= 0 {
		return i, false
	}
	i.value = n
	return i, true
}

func (i Index) String() string {
	var s string
	if i.wide {
		b := make([]byte, ChildIndexSize256)
		if v := i.val(); v.Sign() >= 0 && v.BitLen() <= 256 {
			v.FillBytes(b)
		}
		s = "0x" + hex.EncodeToString(b)
	} else {
		s = i.val().String()
	}
	if i.hardened {
		s += "'"
	}
	return s
}

// ----- //

// ClassifyIndex maps a raw argument to an Index:
//  1. a *big.Int in [2^31, 2^256), or a 0x-prefixed 64 digit hex string, is a
//     256-bit index;
//  2. an integer (or a *big.Int below 2^31) is a BIP32 index, hardened at or
//     above 2^31;
//  3. an Index is returned as is.
//
// Path strings are not indices, see ParsePath.
func ClassifyIndex(arg interface{}) (Index, error) {
	switch v := arg.(type) {
	case Index:
		return v, nil
	case *big.Int:
		if v == nil {
			return Index{}, ErrInvalidDerivationArgument
		}
		if isIndex256(v) {
			return NewIndex256(v, false), nil
		}
		if v.Sign() < 0 || v.Cmp(maxIndex256) >= 0 {
			return Index{}, errors.Wrapf(ErrInvalidPath, "index %s outside [0, 2^256)", v)
		}
		return NewIndex(uint32(v.Uint64())), nil
	case string:
		if n, ok := parseIndex256Hex(v); ok {
			return NewIndex256(n, false), nil
		}
		return Index{}, errors.Wrapf(ErrInvalidDerivationArgument, "%q is not an index, derive it as a path", v)
	}
	n, ok, err := integerArg(arg)
	if err != nil {
		return Index{}, err
	}
	if !ok {
		return Index{}, errors.Wrapf(ErrInvalidDerivationArgument, "%T", arg)
	}
	return NewIndex(n), nil
}

// IsValidPath reports whether arg can be derived from a public key: a path
// whose every segment is valid, an integer in [0, 2^31), a *big.Int in
// [2^31, 2^256), or a non-hardened Index within its range.
func IsValidPath(arg interface{}) bool {
	switch v := arg.(type) {
	case string:
		path, err := ParsePath(v)
		if err != nil {
			return false
		}
		for _, idx := range path {
			if idx.validate() != nil {
				return false
			}
		}
		return true
	case *big.Int:
		return v != nil && isIndex256(v)
	case Index:
		return v.validate() == nil
	}
	n, ok, err := integerArg(arg)
	return ok && err == nil && n < HardenedKeyStart
}

func isIndex256(v *big.Int) bool {
	return v.Cmp(hardenedKeyStartBig) >= 0 && v.Cmp(maxIndex256) < 0
}

func parseIndex256Hex(s string) (*big.Int, bool) {
	if !strings.HasPrefix(s, "0x") || len(s) != 2+index256HexDigits {
		return nil, false
	}
	b, err := hex.DecodeString(s[2:])
	if err != nil {
		return nil, false
	}
	return new(big.Int).SetBytes(b), true
}

// integerArg converts the Go integer kinds to a BIP32 child number. ok is false
// when arg is not an integer at all.
func integerArg(arg interface{}) (n uint32, ok bool, err error) {
	var i64 int64
	var u64 uint64
	signed := true
	switch v := arg.(type) {
	case int:
		i64 = int64(v)
	case int8:
		i64 = int64(v)
	case int16:
		i64 = int64(v)
	case int32:
		i64 = int64(v)
	case int64:
		i64 = v
	case uint:
		u64, signed = uint64(v), false
	case uint8:
		u64, signed = uint64(v), false
	case uint16:
		u64, signed = uint64(v), false
	case uint32:
		u64, signed = uint64(v), false
	case uint64:
		u64, signed = v, false
	case Index32:
		u64, signed = uint64(v), false
	default:
		return 0, false, nil
	}
	if signed {
		if i64 < 0 {
			return 0, true, errors.Wrapf(ErrInvalidPath, "negative index %d", i64)
		}
		u64 = uint64(i64)
	}
	if u64 > 0xffffffff {
		return 0, true, errors.Wrapf(ErrInvalidPath, "index %d does not fit 32 bits", u64)
	}
	return uint32(u64), true, nil
}
