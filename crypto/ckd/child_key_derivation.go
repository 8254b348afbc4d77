// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package ckd

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/pkg/errors"

	"github.com/erfan007p/dashcore-lib/common"
	"github.com/erfan007p/dashcore-lib/crypto"
)

// For more information about child key derivation see
// https://github.com/bitcoin/bips/blob/master/bip-0032.mediawiki and
// https://github.com/dashpay/dips/blob/master/dip-0014.md .
// Only CKDpub is implemented: hardened indices need the private key.

// MaxDerivationRetries bounds the number of times a single step moves on to
// the next index when I_L is not below the curve order or the child is the
// point at infinity. Both happen with probability below 2^-127 per attempt.
var MaxDerivationRetries = 32

// hmacSHA512 is swapped in tests to force the retry path.
var hmacSHA512 = common.HMACSHA512

// Derive derives the child at arg, a path string ("m/0/1"), an integer index,
// a *big.Int or 0x-hex 256-bit index, or an Index.
func (k *ExtendedPublicKey) Derive(arg interface{}) (*ExtendedPublicKey, error) {
	return k.DeriveChild(arg, false)
}

// DeriveChild is Derive with an explicit hardened request, which always fails
// for public keys. It is rejected before any hashing.
func (k *ExtendedPublicKey) DeriveChild(arg interface{}, hardened bool) (*ExtendedPublicKey, error) {
	if s, ok := arg.(string); ok {
		if _, isIndex := parseIndex256Hex(s); !isIndex {
			if hardened {
				return nil, ErrCantDeriveHardened
			}
			return k.DerivePath(s)
		}
	}
	idx, err := ClassifyIndex(arg)
	if err != nil {
		return nil, err
	}
	if hardened {
		idx = idx.Harden()
	}
	return k.DeriveIndex(idx)
}

// DeriveIndex performs a single derivation step.
func (k *ExtendedPublicKey) DeriveIndex(idx Index) (*ExtendedPublicKey, error) {
	if err := idx.validate(); err != nil {
		return nil, err
	}
	child, _, err := deriveChildKey(idx, k)
	return child, err
}

// DerivePath parses and folds a path such as "m/0/1" or "M/0x<64 hex>/5".
func (k *ExtendedPublicKey) DerivePath(path string) (*ExtendedPublicKey, error) {
	indices, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	_, child, err := DeriveChildKeyFromHierarchy(indices, k)
	return child, err
}

// DeriveChildKeyFromHierarchy folds indices left to right starting at pk. It
// also returns the sum of every step's I_L modulo the curve order, the tweak
// that turns the parent private key into the child private key. Every index is
// checked before any hashing takes place.
func DeriveChildKeyFromHierarchy(indicesHierarchy []Index, pk *ExtendedPublicKey) ([]byte, *ExtendedPublicKey, error) {
	if pk == nil {
		return nil, nil, errors.New("pubkey cannot be nil")
	}
	for _, idx := range indicesHierarchy {
		if idx.IsHardened() {
			return nil, nil, errors.Wrapf(ErrCantDeriveHardened, "index %s", idx)
		}
	}
	for _, idx := range indicesHierarchy {
		if err := idx.validate(); err != nil {
			return nil, nil, err
		}
	}
	if int(pk.depth)+len(indicesHierarchy) > maxDepth {
		return nil, nil, errors.Wrapf(ErrMaxDepth, "%d levels from depth %d", len(indicesHierarchy), pk.depth)
	}

	var tweak btcec.ModNScalar
	k := pk
	for _, idx := range indicesHierarchy {
		childKey, il, err := deriveChildKey(idx, k)
		if err != nil {
			return nil, nil, err
		}
		tweak.Add(il)
		k = childKey
	}
	tweakBytes := tweak.Bytes()
	return tweakBytes[:], k, nil
}

// deriveChildKey derives the child of pk at index, moving to the next index
// while the candidate is invalid. It returns the child and its I_L.
func deriveChildKey(index Index, pk *ExtendedPublicKey) (*ExtendedPublicKey, *btcec.ModNScalar, error) {
	if pk == nil {
		return nil, nil, errors.New("pubkey cannot be nil")
	}
	if pk.depth == maxDepth {
		return nil, nil, ErrMaxDepth
	}
	version, err := pk.childVersion(index.Mode())
	if err != nil {
		return nil, nil, err
	}

	pkPublicKeyBytes := pk.publicKey.SerializeCompressed()
	parentFP := common.Fingerprint(pkPublicKeyBytes)

	for attempt := 0; attempt <= MaxDerivationRetries; attempt++ {
		indexBytes := index.Bytes()
		data := make([]byte, 0, len(pkPublicKeyBytes)+len(indexBytes))
		data = append(data, pkPublicKeyBytes...)
		data = append(data, indexBytes...)

		// I = HMAC-SHA512(Key = chainCode, Data = serP(K) || ser(index))
		ilr := hmacSHA512(pk.chainCode[:], data)
		il, childChainCode := ilr[:32], ilr[32:]

		childPoint, err := pk.publicKey.AddScalarBaseMult(il)
		switch {
		case err == nil:
			var ilNum btcec.ModNScalar
			ilNum.SetByteSlice(il)
			childPk := newExtendedPublicKey(version, pk.depth+1, parentFP, index.ChildIndex(), childChainCode, childPoint)
			return childPk, &ilNum, nil
		case errors.Is(err, crypto.ErrScalarOutOfRange), errors.Is(err, crypto.ErrPointAtInfinity):
			next, ok := index.next()
			if !ok {
				common.Logger.Debugf("no valid child of %s after index %s", common.FormatBytes(parentFP), common.FormatBigInt(index.Value()))
				return nil, nil, errors.Wrapf(ErrIndexOutOfRange, "after index %s", index)
			}
			common.Logger.Warnf("invalid child of %s at index %s (%v), trying the next index",
				common.FormatBytes(parentFP), common.FormatBigInt(index.Value()), err)
			index = next
		default:
			common.Logger.Error("error adding I_L*G to parent key")
			return nil, nil, err
		}
	}
	return nil, nil, errors.Wrapf(ErrIndexOutOfRange, "no valid child within %d retries", MaxDerivationRetries)
}

// childVersion is the version of a child in mode: the network's public magic
// for that mode, or the parent's own version when the parent is unattached and
// the mode does not change.
func (k *ExtendedPublicKey) childVersion(mode Mode) (uint32, error) {
	if k.network != nil {
		return k.network.PublicMagic(mode == Mode256), nil
	}
	if k.Mode() == mode {
		return k.Version(), nil
	}
	return 0, errors.Wrapf(ErrUnknownNetwork, "version 0x%08x has no %s magic", k.Version(), mode)
}
