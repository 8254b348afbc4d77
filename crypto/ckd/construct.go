// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package ckd

import (
	"encoding/binary"
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/pkg/errors"

	"github.com/erfan007p/dashcore-lib/common"
	"github.com/erfan007p/dashcore-lib/crypto"
	"github.com/erfan007p/dashcore-lib/networks"
)

type (
	// InputKind tags the variant held by an Input.
	InputKind int

	// Input is one way of describing an extended public key to New. Build it
	// with FromText, FromBytes, FromFields, FromPrivateKey or FromKey.
	Input struct {
		kind    InputKind
		key     *ExtendedPublicKey
		text    string
		raw     []byte
		fields  Fields
		private PrivateKeyFields
		network interface{}
	}

	// Fields describes a key field by field. Every field accepts the forms
	// listed next to it; hex strings may carry a 0x prefix.
	Fields struct {
		// Network is a name, alias, magic or *networks.Network. When set it
		// takes precedence over Version.
		Network interface{}
		// Version: uint32, []byte, [4]byte or hex.
		Version interface{}
		// Depth: integer or a single byte.
		Depth interface{}
		// ParentFingerprint: uint32, []byte, [4]byte or hex.
		ParentFingerprint interface{}
		// ChildIndex: an integer, Index32 or 4 bytes for a 32-bit key; a
		// *big.Int of at least 2^31, Index256, 32 bytes or 0x-prefixed 64 digit
		// hex for a 256-bit key.
		ChildIndex interface{}
		// Hardened is the DIP14 flag, ignored for 32-bit keys.
		Hardened bool
		// ChainCode: []byte, [32]byte or hex.
		ChainCode interface{}
		// PublicKey: []byte, [33]byte, hex, *btcec.PublicKey or *crypto.ECPoint.
		PublicKey interface{}
		// Checksum is optional; when set it must match. uint32, []byte,
		// [4]byte or hex.
		Checksum interface{}
	}

	// PrivateKeyFields is an extended private key to be neutered. The private
	// scalar never reaches the built key.
	PrivateKeyFields struct {
		Version           uint32
		Depth             uint8
		ParentFingerprint [ParentFingerprintSize]byte
		ChildIndex        ChildIndex
		ChainCode         [ChainCodeSize]byte
		PrivateKey        *btcec.PrivateKey
	}
)

const (
	inputNone InputKind = iota
	InputKey
	InputText
	InputBytes
	InputFields
	InputPrivateKey
)

func (k InputKind) String() string {
	switch k {
	case InputKey:
		return "key"
	case InputText:
		return "text"
	case InputBytes:
		return "bytes"
	case InputFields:
		return "fields"
	case InputPrivateKey:
		return "private key"
	}
	return "none"
}

// FromKey wraps an already built key; New returns it unchanged.
func FromKey(k *ExtendedPublicKey) Input {
	return Input{kind: InputKey, key: k}
}

// FromText wraps the Base58Check text form. The optional network restricts
// the accepted versions.
func FromText(s string, network ...interface{}) Input {
	return Input{kind: InputText, text: s, network: optionalNetwork(network)}
}

// FromBytes wraps either the raw 82/111 byte serialization or the bytes of
// the text form.
func FromBytes(b []byte, network ...interface{}) Input {
	return Input{kind: InputBytes, raw: common.CopyBytes(b), network: optionalNetwork(network)}
}

func FromFields(f Fields) Input {
	return Input{kind: InputFields, fields: f}
}

func FromPrivateKey(p PrivateKeyFields) Input {
	return Input{kind: InputPrivateKey, private: p}
}

func optionalNetwork(network []interface{}) interface{} {
	if len(network) == 0 {
		return nil
	}
	return network[0]
}

func (in Input) Kind() InputKind {
	return in.kind
}

// ----- //

// Classify maps an arbitrary value to an Input: strings to FromText, byte
// slices to FromBytes, Fields, Object and PrivateKeyFields to their builders
// and keys to FromKey.
func Classify(arg interface{}) (Input, error) {
	switch v := arg.(type) {
	case nil:
		return Input{}, ErrMustSupplyArgument
	case Input:
		return v, nil
	case *ExtendedPublicKey:
		if v == nil {
			return Input{}, ErrMustSupplyArgument
		}
		return FromKey(v), nil
	case string:
		return FromText(v), nil
	case []byte:
		return FromBytes(v), nil
	case Fields:
		return FromFields(v), nil
	case *Fields:
		if v == nil {
			return Input{}, ErrMustSupplyArgument
		}
		return FromFields(*v), nil
	case Object:
		return FromFields(v.Fields()), nil
	case PrivateKeyFields:
		return FromPrivateKey(v), nil
	}
	return Input{}, errors.Wrapf(ErrUnrecognizedArgument, "%T", arg)
}

// NewFrom is Classify followed by New.
func NewFrom(arg interface{}) (*ExtendedPublicKey, error) {
	in, err := Classify(arg)
	if err != nil {
		return nil, err
	}
	return New(in)
}

// New builds the key described by in. A well formed extended private key,
// as text, bytes or fields, yields its public counterpart.
func New(in Input) (*ExtendedPublicKey, error) {
	switch in.kind {
	case InputKey:
		if in.key == nil {
			return nil, ErrMustSupplyArgument
		}
		return in.key, nil
	case InputText:
		return buildFromSerialized(in.text, in.network)
	case InputBytes:
		if raw, ok := rawSerialized(in.raw); ok {
			return buildFromRaw(raw, in.network)
		}
		return buildFromSerialized(string(in.raw), in.network)
	case InputFields:
		b, err := in.fields.buffers()
		if err != nil {
			return nil, err
		}
		return buildFromBuffers(b)
	case InputPrivateKey:
		return neuter(in.private)
	}
	return nil, ErrMustSupplyArgument
}

// FromString decodes the text form, optionally checking the network.
func FromString(s string, network ...interface{}) (*ExtendedPublicKey, error) {
	return New(FromText(s, network...))
}

// FromBuffer decodes raw or text bytes, optionally checking the network.
func FromBuffer(b []byte, network ...interface{}) (*ExtendedPublicKey, error) {
	return New(FromBytes(b, network...))
}

// FromObject rebuilds a key from its object form.
func FromObject(o Object) (*ExtendedPublicKey, error) {
	return New(FromFields(o.Fields()))
}

// MustFromString is FromString for package-level fixtures; it panics on error.
func MustFromString(s string, network ...interface{}) *ExtendedPublicKey {
	k, err := FromString(s, network...)
	if err != nil {
		panic(err)
	}
	return k
}

// ----- //

func buildFromSerialized(text string, network interface{}) (*ExtendedPublicKey, error) {
	serialized, err := decodeSerialized(text, network)
	return buildDecoded(serialized, err)
}

func buildFromRaw(raw []byte, network interface{}) (*ExtendedPublicKey, error) {
	return buildDecoded(raw, checkSerialized(raw, network))
}

func buildDecoded(serialized []byte, err error) (*ExtendedPublicKey, error) {
	switch {
	case err == nil:
		b, err := splitPayload(serialized)
		if err != nil {
			return nil, err
		}
		return buildFromBuffers(b)
	case errors.Is(err, ErrArgumentIsPrivateExtended):
		priv, err := parsePrivate(serialized)
		if err != nil {
			return nil, err
		}
		common.Logger.Debugf("neutering extended private key at depth %d", priv.Depth)
		return neuter(priv)
	}
	return nil, err
}

// parsePrivate reads the private layout: the key slot holds 0x00 followed by
// the 32 byte scalar.
func parsePrivate(serialized []byte) (PrivateKeyFields, error) {
	b, err := splitPayload(serialized)
	if err != nil {
		return PrivateKeyFields{}, err
	}
	if b.publicKey[0] != 0 {
		return PrivateKeyFields{}, errors.Wrapf(ErrInvalidPrivateKey, "key slot prefix 0x%02x", b.publicKey[0])
	}
	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(b.publicKey[1:]); overflow || scalar.IsZero() {
		return PrivateKeyFields{}, errors.Wrap(ErrInvalidPrivateKey, "scalar out of range")
	}
	priv, _ := btcec.PrivKeyFromBytes(b.publicKey[1:])
	p := PrivateKeyFields{
		Version:    binary.BigEndian.Uint32(b.version),
		Depth:      b.depth[0],
		PrivateKey: priv,
	}
	copy(p.ParentFingerprint[:], b.parentFingerprint)
	copy(p.ChainCode[:], b.chainCode)
	if len(b.childIndex) == ChildIndexSize256 {
		idx := Index256{Hardened: b.hardened[0] != 0}
		copy(idx.Value[:], b.childIndex)
		p.ChildIndex = idx
	} else {
		p.ChildIndex = Index32(binary.BigEndian.Uint32(b.childIndex))
	}
	return p, nil
}

// neuter drops the private scalar and switches the version to the network's
// public magic for the same index mode.
func neuter(p PrivateKeyFields) (*ExtendedPublicKey, error) {
	if p.PrivateKey == nil {
		return nil, errors.Wrap(ErrInvalidPrivateKey, "nil private key")
	}
	if p.ChildIndex == nil {
		return nil, errors.Wrap(ErrUnrecognizedArgument, "missing child index")
	}
	n := networks.GetByMagic(p.Version, networks.XPrivKey, networks.XPrivKey256)
	if n == nil {
		return nil, errors.Wrapf(ErrUnknownNetwork, "private version 0x%08x", p.Version)
	}
	scalar := p.PrivateKey.Key.Bytes()
	pub, err := crypto.ScalarBaseMult(scalar[:])
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPrivateKey, "%v", err)
	}
	b := &buffers{
		version:           common.Uint32Bytes(n.PublicMagic(p.ChildIndex.Mode() == Mode256)),
		depth:             []byte{p.Depth},
		parentFingerprint: p.ParentFingerprint[:],
		childIndex:        p.ChildIndex.Bytes(),
		chainCode:         p.ChainCode[:],
		publicKey:         pub.SerializeCompressed(),
	}
	if idx, ok := p.ChildIndex.(Index256); ok {
		b.hardened = []byte{idx.HardenedByte()}
	}
	return buildFromBuffers(b)
}

// ----- //

// buffers coerces every field into its raw form. Missing fields are left nil
// and reported by the builder's size check.
func (f Fields) buffers() (*buffers, error) {
	b := new(buffers)
	wide, err := isWideChildIndex(f.ChildIndex)
	if err != nil {
		return nil, err
	}
	if b.childIndex, err = coerceChildIndex(f.ChildIndex, wide); err != nil {
		return nil, err
	}
	if wide {
		b.hardened = []byte{0}
		if f.Hardened {
			b.hardened[0] = 1
		}
		if idx, ok := f.ChildIndex.(Index256); ok && idx.Hardened {
			b.hardened[0] = 1
		}
	}

	if !noNetwork(f.Network) {
		n := networks.Get(f.Network)
		if n == nil {
			return nil, errors.Wrapf(ErrInvalidNetworkArgument, "%v", f.Network)
		}
		b.version = common.Uint32Bytes(n.PublicMagic(wide))
	} else if b.version, err = coerceBytes("version", f.Version, VersionSize); err != nil {
		return nil, err
	}
	if b.depth, err = coerceBytes("depth", f.Depth, DepthSize); err != nil {
		return nil, err
	}
	if b.parentFingerprint, err = coerceBytes("parentFingerprint", f.ParentFingerprint, ParentFingerprintSize); err != nil {
		return nil, err
	}
	if b.chainCode, err = coerceBytes("chainCode", f.ChainCode, ChainCodeSize); err != nil {
		return nil, err
	}
	if b.publicKey, err = coerceBytes("publicKey", f.PublicKey, PublicKeySize); err != nil {
		return nil, err
	}
	if b.checksum, err = coerceBytes("checksum", f.Checksum, ChecksumSize); err != nil {
		return nil, err
	}
	return b, nil
}

// isWideChildIndex decides the index mode from the shape of the child index.
func isWideChildIndex(v interface{}) (bool, error) {
	switch ci := v.(type) {
	case nil:
		return false, errors.Wrap(ErrFieldSize, "childIndex: missing")
	case Index256:
		return true, nil
	case Index32:
		return false, nil
	case Index:
		return ci.Mode() == Mode256, nil
	case *big.Int:
		return ci != nil && isIndex256(ci), nil
	case string:
		if _, ok := parseIndex256Hex(ci); ok {
			return true, nil
		}
		return len(strings.TrimPrefix(ci, "0x")) == 2*ChildIndexSize256, nil
	case []byte:
		return len(ci) == ChildIndexSize256, nil
	case [ChildIndexSize256]byte:
		return true, nil
	}
	return false, nil
}

func coerceChildIndex(v interface{}, wide bool) ([]byte, error) {
	switch ci := v.(type) {
	case Index:
		if ci.Mode() == Mode256 {
			return ci.ChildIndex().Bytes(), nil
		}
		return Index32(ci.Uint32()).Bytes(), nil
	case *big.Int:
		if ci.Sign() < 0 || ci.Cmp(maxIndex256) >= 0 {
			return nil, errors.Wrapf(ErrInvalidPath, "childIndex %s outside [0, 2^256)", ci)
		}
		if wide {
			return ci.FillBytes(make([]byte, ChildIndexSize256)), nil
		}
		return Index32(ci.Uint64()).Bytes(), nil
	}
	size := ChildIndexSize
	if wide {
		size = ChildIndexSize256
	}
	return coerceBytes("childIndex", v, size)
}

// coerceBytes converts v to exactly size bytes. Byte input of the wrong length
// is passed through for the size check to report.
func coerceBytes(name string, v interface{}, size int) ([]byte, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return common.CopyBytes(t), nil
	case [4]byte:
		return t[:], nil
	case [32]byte:
		return t[:], nil
	case [33]byte:
		return t[:], nil
	case string:
		b, err := hex.DecodeString(strings.TrimPrefix(t, "0x"))
		if err != nil {
			return nil, errors.Wrapf(ErrUnrecognizedArgument, "%s: %v", name, err)
		}
		return b, nil
	case *btcec.PublicKey:
		return t.SerializeCompressed(), nil
	case *crypto.ECPoint:
		return t.SerializeCompressed(), nil
	case Index32:
		return t.Bytes(), nil
	case Index256:
		return t.Bytes(), nil
	}

	n, ok, err := integerArg(v)
	if !ok {
		return nil, errors.Wrapf(ErrUnrecognizedArgument, "%s: unsupported type %T", name, v)
	}
	if err != nil {
		return nil, errors.Wrapf(ErrFieldSize, "%s: %v", name, err)
	}
	switch size {
	case 1:
		if n > 0xff {
			return nil, errors.Wrapf(ErrFieldSize, "%s: %d does not fit one byte", name, n)
		}
		return []byte{byte(n)}, nil
	case 4:
		return common.Uint32Bytes(n), nil
	}
	return nil, errors.Wrapf(ErrUnrecognizedArgument, "%s: an integer cannot fill %d bytes", name, size)
}
