// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package ckd

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	t.Parallel()
	wide := strings.Repeat("0f", 32)

	tests := []struct {
		name    string
		path    string
		want    string
		kinds   []IndexKind
		wantErr bool
	}{
		{name: "root", path: "m", want: "m", kinds: []IndexKind{}},
		{name: "root with slash", path: "M/", want: "m", kinds: []IndexKind{}},
		{name: "normal", path: "m/44/5/0", want: "m/44/5/0", kinds: []IndexKind{Normal, Normal, Normal}},
		{name: "hardened markers", path: "m/44'/5h/0H", want: "m/44'/5'/0'", kinds: []IndexKind{Hardened, Hardened, Hardened}},
		{name: "max 31-bit", path: "m/2147483647", want: "m/2147483647", kinds: []IndexKind{Normal}},
		{name: "256-bit", path: "m/0x" + wide + "/1", want: "m/0x" + wide + "/1", kinds: []IndexKind{Extended256, Normal}},
		{name: "short hex is padded", path: "m/0x80000000'", want: "m/0x" + strings.Repeat("0", 56) + "80000000'", kinds: []IndexKind{Extended256}},

		{name: "empty", path: "", wantErr: true},
		{name: "no root", path: "44/0", wantErr: true},
		{name: "bad root", path: "x/1", wantErr: true},
		{name: "empty segment", path: "m//1", wantErr: true},
		{name: "trailing slash", path: "m/1/", wantErr: true},
		{name: "decimal 2^31", path: "m/2147483648", wantErr: true},
		{name: "negative", path: "m/-1", wantErr: true},
		{name: "only marker", path: "m/'", wantErr: true},
		{name: "hex too long", path: "m/0x" + wide + "00", wantErr: true},
		{name: "bad hex", path: "m/0xzz", wantErr: true},
		{name: "empty hex", path: "m/0x", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParsePath(tc.path)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrInvalidPath, tc.name)
			continue
		}
		require.NoError(t, err, tc.name)
		kinds := make([]IndexKind, 0, len(got))
		for _, idx := range got {
			kinds = append(kinds, idx.Kind())
		}
		assert.Equal(t, tc.kinds, kinds, tc.name)
		assert.Equal(t, tc.want, FormatPath(got), tc.name)
	}
}

func TestClassifyIndex(t *testing.T) {
	t.Parallel()
	twoTo31 := big.NewInt(HardenedKeyStart)

	tests := []struct {
		name    string
		arg     interface{}
		kind    IndexKind
		wantErr error
	}{
		{name: "int", arg: 5, kind: Normal},
		{name: "uint32 hardened", arg: uint32(HardenedKeyStart + 5), kind: Hardened},
		{name: "Index32", arg: Index32(3), kind: Normal},
		{name: "small big.Int", arg: big.NewInt(3), kind: Normal},
		{name: "big.Int at 2^31", arg: twoTo31, kind: Extended256},
		{name: "hex string", arg: "0x" + strings.Repeat("11", 32), kind: Extended256},
		{name: "Index", arg: NewHardenedIndex(2), kind: Hardened},

		{name: "negative", arg: -3, wantErr: ErrInvalidPath},
		{name: "negative big.Int", arg: big.NewInt(-3), wantErr: ErrInvalidPath},
		{name: "path string", arg: "m/1", wantErr: ErrInvalidDerivationArgument},
		{name: "short hex", arg: "0x11", wantErr: ErrInvalidDerivationArgument},
		{name: "bool", arg: true, wantErr: ErrInvalidDerivationArgument},
	}
	for _, tc := range tests {
		idx, err := ClassifyIndex(tc.arg)
		if tc.wantErr != nil {
			assert.ErrorIs(t, err, tc.wantErr, tc.name)
			continue
		}
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.kind, idx.Kind(), tc.name)
	}
}

func TestIsValidPath(t *testing.T) {
	t.Parallel()
	valid := []interface{}{
		"m", "m/0/1", "M/0x" + strings.Repeat("ff", 32),
		0, uint32(HardenedKeyStart - 1),
		big.NewInt(HardenedKeyStart),
		NewIndex(4),
	}
	invalid := []interface{}{
		"m/0'", "m/0x01", "m/a", "",
		-1, uint32(HardenedKeyStart),
		big.NewInt(4), new(big.Int).Lsh(big.NewInt(1), 256),
		NewHardenedIndex(4), NewIndex256(big.NewInt(1), false),
		3.0,
	}
	for _, arg := range valid {
		assert.True(t, IsValidPath(arg), "%v", arg)
	}
	for _, arg := range invalid {
		assert.False(t, IsValidPath(arg), "%v", arg)
	}
}

func TestIndexNext(t *testing.T) {
	t.Parallel()
	next, ok := NewIndex(7).next()
	assert.True(t, ok)
	assert.Equal(t, uint32(8), next.Uint32())

	_, ok = NewIndex(HardenedKeyStart - 1).next()
	assert.False(t, ok)

	last := new(big.Int).Sub(maxIndex256, big.NewInt(1))
	_, ok = NewIndex256(last, false).next()
	assert.False(t, ok)

	next, ok = NewIndex256(big.NewInt(HardenedKeyStart), false).next()
	assert.True(t, ok)
	assert.Equal(t, int64(HardenedKeyStart+1), next.Value().Int64())
	assert.Equal(t, Mode256, next.Mode())
}

func TestIndexChildIndex(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Index32(HardenedKeyStart|3), NewHardenedIndex(3).ChildIndex())
	assert.Equal(t, []byte{0, 0, 0, 9}, NewIndex(9).Bytes())

	ci, ok := NewIndex256(big.NewInt(HardenedKeyStart), true).ChildIndex().(Index256)
	require.True(t, ok)
	assert.True(t, ci.Hardened)
	assert.Equal(t, byte(1), ci.HardenedByte())
	assert.Equal(t, "0x"+strings.Repeat("0", 56)+"80000000", ci.String())
	assert.Len(t, ci.Bytes(), ChildIndexSize256)
}
