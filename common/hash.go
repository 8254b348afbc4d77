// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"hash"

	"golang.org/x/crypto/ripemd160"
)

const (
	// ChecksumSize is the length of the double-SHA256 prefix appended by Base58Check.
	ChecksumSize = 4

	// FingerprintSize is the length of a key fingerprint.
	FingerprintSize = 4
)

func calcHash(buf []byte, hasher hash.Hash) []byte {
	hasher.Write(buf)
	return hasher.Sum(nil)
}

// SHA256 returns the plain SHA-256 digest of in.
func SHA256(in []byte) []byte {
	sum := sha256.Sum256(in)
	return sum[:]
}

// DoubleSHA256 returns SHA256(SHA256(in)).
func DoubleSHA256(in []byte) []byte {
	return SHA256(SHA256(in))
}

// Hash160 returns RIPEMD160(SHA256(in)).
func Hash160(in []byte) []byte {
	return calcHash(SHA256(in), ripemd160.New())
}

// HMACSHA512 returns the 64 byte HMAC-SHA512 of data under key.
func HMACSHA512(key, data []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// Checksum is the Base58Check checksum of payload.
func Checksum(payload []byte) []byte {
	return DoubleSHA256(payload)[:ChecksumSize]
}

// VerifyChecksum compares sum against the checksum of payload in constant time.
func VerifyChecksum(payload, sum []byte) bool {
	return subtle.ConstantTimeCompare(Checksum(payload), sum) == 1
}

// Fingerprint identifies a compressed public key: the first four bytes of its hash160.
func Fingerprint(pubKey []byte) []byte {
	return Hash160(pubKey)[:FingerprintSize]
}
