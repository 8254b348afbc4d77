// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package ckd

import (
	"errors"
)

// Argument shape errors.
var (
	ErrMustSupplyArgument        = errors.New("must supply an argument to create a HDPublicKey")
	ErrUnrecognizedArgument      = errors.New("invalid argument for creation, must be string, buffer, fields or private key")
	ErrInvalidDerivationArgument = errors.New("invalid derivation argument")
)

// Encoding errors.
var (
	ErrInvalidB58Char     = errors.New("invalid base58 character")
	ErrInvalidB58Checksum = errors.New("invalid base58 checksum")
	ErrInvalidLength      = errors.New("invalid length for extended key")
	ErrFieldSize          = errors.New("extended key field has an unexpected size")
	ErrInvalidPublicKey   = errors.New("invalid public key")
	ErrInvalidPrivateKey  = errors.New("invalid private key")
)

// Network errors.
var (
	ErrInvalidNetworkArgument = errors.New("invalid network argument")
	ErrInvalidNetwork         = errors.New("invalid network for extended key version")
	ErrUnknownNetwork         = errors.New("extended key version does not belong to a registered network")
)

// ErrArgumentIsPrivateExtended is a redirect signal rather than a failure: the
// bytes are a well formed extended private key, which the dispatcher neuters.
var ErrArgumentIsPrivateExtended = errors.New("argument is an extended private key")

// Derivation errors.
var (
	ErrInvalidPath        = errors.New("invalid derivation path")
	ErrCantDeriveHardened = errors.New("cannot derive a hardened index from a public key")
	ErrIndexOutOfRange    = errors.New("no valid child key before the end of the index range")
	ErrMaxDepth           = errors.New("cannot derive key beyond max depth")
)
