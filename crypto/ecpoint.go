// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package crypto

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
)

const (
	// PubKeyBytesLenCompressed is the size of a compressed secp256k1 point.
	PubKeyBytesLenCompressed = 33

	pubKeyCompressed    byte = 0x2
	pubKeyCompressedOdd byte = 0x3
)

var (
	ErrPointAtInfinity  = errors.New("the point at infinity is not a valid public key")
	ErrNotCompressed    = errors.New("public key is not in compressed format")
	ErrScalarOutOfRange = errors.New("scalar is zero or not below the curve order")
)

// ECPoint is an affine secp256k1 point. It is never the point at infinity.
type ECPoint struct {
	key *btcec.PublicKey
}

// NewECPointFromCompressed parses a 33 byte compressed point and checks that it
// lies on the curve.
func NewECPointFromCompressed(b []byte) (*ECPoint, error) {
	if len(b) != PubKeyBytesLenCompressed {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrNotCompressed, PubKeyBytesLenCompressed, len(b))
	}
	if b[0] != pubKeyCompressed && b[0] != pubKeyCompressedOdd {
		return nil, fmt.Errorf("%w: bad prefix 0x%02x", ErrNotCompressed, b[0])
	}
	key, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, err
	}
	return &ECPoint{key: key}, nil
}

// ScalarBaseMult returns k*G for a private scalar k in [1, N).
func ScalarBaseMult(k []byte) (*ECPoint, error) {
	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(k); overflow || scalar.IsZero() {
		return nil, ErrScalarOutOfRange
	}
	var result btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&scalar, &result)
	return fromJacobian(&result)
}

// AddScalarBaseMult returns il*G + P. It reports ErrScalarOutOfRange when il is
// not below the curve order and ErrPointAtInfinity when the sum is the identity.
func (P *ECPoint) AddScalarBaseMult(il []byte) (*ECPoint, error) {
	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(il); overflow {
		return nil, ErrScalarOutOfRange
	}
	var ilG, parent, sum btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&scalar, &ilG)
	P.key.AsJacobian(&parent)
	btcec.AddNonConst(&ilG, &parent, &sum)
	return fromJacobian(&sum)
}

func fromJacobian(p *btcec.JacobianPoint) (*ECPoint, error) {
	if isInfinity(p) {
		return nil, ErrPointAtInfinity
	}
	p.ToAffine()
	return &ECPoint{key: btcec.NewPublicKey(&p.X, &p.Y)}, nil
}

// isInfinity checks the Jacobian z coordinate, normalized on a copy.
func isInfinity(p *btcec.JacobianPoint) bool {
	z := p.Z
	return z.Normalize().IsZero()
}

// SerializeCompressed returns the 33 byte compressed encoding.
func (P *ECPoint) SerializeCompressed() []byte {
	return P.key.SerializeCompressed()
}

func (P *ECPoint) ToBtcecPubKey() *btcec.PublicKey {
	return P.key
}

func (P *ECPoint) String() string {
	if P == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%x", P.SerializeCompressed())
}
