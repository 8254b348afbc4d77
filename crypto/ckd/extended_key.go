// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package ckd

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/erfan007p/dashcore-lib/common"
	"github.com/erfan007p/dashcore-lib/crypto"
	"github.com/erfan007p/dashcore-lib/networks"
)

const maxDepth = 0xff

// ExtendedPublicKey is a BIP32 (or DIP14) extended public key. Values are
// immutable once built; every accessor returns a copy.
type ExtendedPublicKey struct {
	version           [VersionSize]byte
	depth             uint8
	parentFingerprint [ParentFingerprintSize]byte
	childIndex        ChildIndex
	chainCode         [ChainCodeSize]byte
	publicKey         *crypto.ECPoint

	// derived
	fingerprint [common.FingerprintSize]byte
	network     *networks.Network
	serialized  []byte // payload || checksum
	text        string
}

// newExtendedPublicKey computes the derived fields of a key whose parts are
// already known to be well formed.
func newExtendedPublicKey(version uint32, depth uint8, parentFP []byte, ci ChildIndex, chainCode []byte, pub *crypto.ECPoint) *ExtendedPublicKey {
	k := &ExtendedPublicKey{
		depth:      depth,
		childIndex: ci,
		publicKey:  pub,
	}
	binary.BigEndian.PutUint32(k.version[:], version)
	copy(k.parentFingerprint[:], parentFP)
	copy(k.chainCode[:], chainCode)

	pubBytes := pub.SerializeCompressed()
	copy(k.fingerprint[:], common.Fingerprint(pubBytes))
	if ci.Mode() == Mode256 {
		k.network = networks.GetByMagic(version, networks.XPubKey256)
	} else {
		k.network = networks.GetByMagic(version, networks.XPubKey)
	}

	payload := make([]byte, 0, DataSize256)
	payload = append(payload, k.version[:]...)
	payload = append(payload, depth)
	payload = append(payload, k.parentFingerprint[:]...)
	if idx, ok := ci.(Index256); ok {
		payload = append(payload, idx.HardenedByte())
	}
	payload = append(payload, ci.Bytes()...)
	payload = append(payload, k.chainCode[:]...)
	payload = append(payload, pubBytes...)
	k.serialized, k.text = encode(payload)
	return k
}

// buildFromBuffers is the shared builder behind every construction path. It
// checks every field size, the public key and, when one is supplied, the
// checksum.
func buildFromBuffers(b *buffers) (*ExtendedPublicKey, error) {
	if err := validateBuffers(b); err != nil {
		return nil, err
	}
	var ci ChildIndex
	if len(b.childIndex) == ChildIndexSize256 {
		// any nonzero flag byte reads as hardened and is re-encoded as 1
		idx := Index256{Hardened: len(b.hardened) == 1 && b.hardened[0] != 0}
		copy(idx.Value[:], b.childIndex)
		ci = idx
	} else {
		ci = Index32(binary.BigEndian.Uint32(b.childIndex))
	}

	pub, err := crypto.NewECPointFromCompressed(b.publicKey)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPublicKey, "%v", err)
	}
	if len(b.checksum) != 0 && !common.VerifyChecksum(b.sequence(), b.checksum) {
		return nil, ErrInvalidB58Checksum
	}
	return newExtendedPublicKey(
		binary.BigEndian.Uint32(b.version), b.depth[0], b.parentFingerprint, ci, b.chainCode, pub,
	), nil
}

// validateBuffers reports every size violation at once.
func validateBuffers(b *buffers) error {
	var result *multierror.Error
	check := func(name string, got []byte, want ...int) {
		for _, w := range want {
			if len(got) == w {
				return
			}
		}
		result = multierror.Append(result, errors.Wrapf(ErrFieldSize, "%s: %d bytes, want %v", name, len(got), want))
	}
	check("version", b.version, VersionSize)
	check("depth", b.depth, DepthSize)
	check("parentFingerprint", b.parentFingerprint, ParentFingerprintSize)
	check("childIndex", b.childIndex, ChildIndexSize, ChildIndexSize256)
	check("chainCode", b.chainCode, ChainCodeSize)
	check("publicKey", b.publicKey, PublicKeySize)
	if len(b.checksum) != 0 {
		check("checksum", b.checksum, ChecksumSize)
	}
	switch len(b.childIndex) {
	case ChildIndexSize:
		if len(b.hardened) != 0 {
			result = multierror.Append(result, errors.Wrap(ErrFieldSize, "hardened: a 32-bit index carries no hardened flag"))
		}
	case ChildIndexSize256:
		if len(b.hardened) != 0 {
			check("hardened", b.hardened, HardenedSize)
		}
	}
	return result.ErrorOrNil()
}

// ----- //

// String returns the Base58Check text form, e.g. "xpub661MyMwAqRbc...".
func (k *ExtendedPublicKey) String() string {
	return k.text
}

// Buffer returns the bytes of the text form.
func (k *ExtendedPublicKey) Buffer() []byte {
	return []byte(k.text)
}

// Serialize returns the raw 82 or 111 byte serialization, checksum included.
func (k *ExtendedPublicKey) Serialize() []byte {
	return common.CopyBytes(k.serialized)
}

func (k *ExtendedPublicKey) Inspect() string {
	return fmt.Sprintf("<HDPublicKey: %s>", k.text)
}

// Version is the 4 byte network magic as an integer.
func (k *ExtendedPublicKey) Version() uint32 {
	return binary.BigEndian.Uint32(k.version[:])
}

func (k *ExtendedPublicKey) Depth() uint8 {
	return k.depth
}

func (k *ExtendedPublicKey) ParentFingerprint() []byte {
	return common.CopyBytes(k.parentFingerprint[:])
}

func (k *ExtendedPublicKey) Fingerprint() []byte {
	return common.CopyBytes(k.fingerprint[:])
}

func (k *ExtendedPublicKey) ChildIndex() ChildIndex {
	return k.childIndex
}

// HardenedFlag returns the DIP14 hardened byte. ok is false for 32-bit keys,
// which carry no such field.
func (k *ExtendedPublicKey) HardenedFlag() (flag byte, ok bool) {
	if idx, wide := k.childIndex.(Index256); wide {
		return idx.HardenedByte(), true
	}
	return 0, false
}

func (k *ExtendedPublicKey) ChainCode() []byte {
	return common.CopyBytes(k.chainCode[:])
}

func (k *ExtendedPublicKey) PublicKey() *btcec.PublicKey {
	return k.publicKey.ToBtcecPubKey()
}

// PublicKeyBytes is the 33 byte compressed point.
func (k *ExtendedPublicKey) PublicKeyBytes() []byte {
	return k.publicKey.SerializeCompressed()
}

func (k *ExtendedPublicKey) Point() *crypto.ECPoint {
	return k.publicKey
}

func (k *ExtendedPublicKey) Checksum() []byte {
	return common.CopyBytes(k.serialized[len(k.serialized)-ChecksumSize:])
}

// Network returns the registered network the version belongs to, or nil when
// the key is unattached.
func (k *ExtendedPublicKey) Network() *networks.Network {
	return k.network
}

func (k *ExtendedPublicKey) Mode() Mode {
	return k.childIndex.Mode()
}

// ChildNumber is the child index as an integer: the BIP32 child number
// including the hardened bit, or the full DIP14 index.
func (k *ExtendedPublicKey) ChildNumber() *big.Int {
	switch idx := k.childIndex.(type) {
	case Index256:
		return idx.BigInt()
	case Index32:
		return new(big.Int).SetUint64(uint64(idx))
	}
	return new(big.Int)
}

// Equal reports whether both keys have the same serialization.
func (k *ExtendedPublicKey) Equal(other *ExtendedPublicKey) bool {
	if k == nil || other == nil {
		return k == other
	}
	return bytes.Equal(k.serialized, other.serialized)
}
