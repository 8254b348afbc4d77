// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common_test

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/erfan007p/dashcore-lib/common"
)

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func TestHashes(t *testing.T) {
	tests := []struct {
		name string
		hash func([]byte) []byte
		in   []byte
		want string
	}{{
		name: "sha256 abc",
		hash: SHA256,
		in:   []byte("abc"),
		want: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
	}, {
		name: "double sha256 empty",
		hash: DoubleSHA256,
		in:   []byte{},
		want: "5df6e0e2761359d30a8275058e299fcc0381534545f55cf43e41983f5d4c9456",
	}, {
		name: "hash160 of the BIP32 vector 1 master key",
		hash: Hash160,
		in:   mustHex("0339a36013301597daef41fbe593a02cc513d0b55527ec2df1050e2e8ff49c85c2"),
		want: "3442193e1bb70916e914552172cd4e2dbc9df811",
	}, {
		name: "fingerprint is the hash160 prefix",
		hash: Fingerprint,
		in:   mustHex("0339a36013301597daef41fbe593a02cc513d0b55527ec2df1050e2e8ff49c85c2"),
		want: "3442193e",
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hex.EncodeToString(tt.hash(tt.in)))
		})
	}
}

func TestHMACSHA512(t *testing.T) {
	// RFC 4231 test case 2
	got := HMACSHA512([]byte("Jefe"), []byte("what do ya want for nothing?"))
	assert.Equal(t, "164b7a7bfcf819e2e395fbe73b56e0a387bd64222e831fd610270cd7ea2505549758bf75c05a994a6d034f65f8f0e6fdcaeab1a34d4a6b4b636e070a38bce737",
		hex.EncodeToString(got))
}

func TestChecksum(t *testing.T) {
	payload := []byte("extended key payload")
	sum := Checksum(payload)
	assert.Len(t, sum, ChecksumSize)
	assert.Equal(t, DoubleSHA256(payload)[:ChecksumSize], sum)
	assert.True(t, VerifyChecksum(payload, sum))

	sum[0] ^= 0xff
	assert.False(t, VerifyChecksum(payload, sum))
	assert.False(t, VerifyChecksum(payload, sum[:3]))
}

func TestBytes(t *testing.T) {
	assert.Equal(t, []byte{0x80, 0, 0, 1}, Uint32Bytes(0x80000001))
	assert.Nil(t, CopyBytes(nil))

	in := []byte{1, 2, 3}
	out := CopyBytes(in)
	assert.Equal(t, in, out)
	out[0] = 9
	assert.Equal(t, byte(1), in[0])
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "<nil>", FormatBigInt(nil))
	assert.Equal(t, "89abcdef", FormatBigInt(new(big.Int).SetUint64(0x0123456789abcdef)))
	assert.Equal(t, "<nil>", FormatBytes(nil))
	assert.Equal(t, "3442193e", FormatBytes([]byte{0x34, 0x42, 0x19, 0x3e}))
}
