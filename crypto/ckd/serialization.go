// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package ckd

import (
	"encoding/binary"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"

	"github.com/erfan007p/dashcore-lib/common"
	"github.com/erfan007p/dashcore-lib/networks"
)

// Field sizes of the serialized extended key.
const (
	VersionSize           = 4
	DepthSize             = 1
	ParentFingerprintSize = 4
	HardenedSize          = 1
	ChildIndexSize        = 4
	ChildIndexSize256     = 32
	ChainCodeSize         = 32
	PublicKeySize         = 33
	ChecksumSize          = common.ChecksumSize

	// DataSize and DataSize256 are the payload lengths without the checksum.
	DataSize    = VersionSize + DepthSize + ParentFingerprintSize + ChildIndexSize + ChainCodeSize + PublicKeySize
	DataSize256 = VersionSize + DepthSize + ParentFingerprintSize + HardenedSize + ChildIndexSize256 + ChainCodeSize + PublicKeySize

	SerializedByteSize    = DataSize + ChecksumSize    // 82
	SerializedByteSize256 = DataSize256 + ChecksumSize // 111
)

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

type span struct {
	start, end int
}

func (s span) of(b []byte) []byte {
	return b[s.start:s.end]
}

// layout is the byte offset table of one serialization mode, end exclusive.
type layout struct {
	version, depth, parentFingerprint, hardened, childIndex, chainCode, publicKey, checksum span
}

var (
	// version(4) || depth(1) || parentFP(4) || childIndex(4) || chainCode(32) || key(33) || checksum(4)
	layout32 = layout{
		version:           span{0, 4},
		depth:             span{4, 5},
		parentFingerprint: span{5, 9},
		childIndex:        span{9, 13},
		chainCode:         span{13, 45},
		publicKey:         span{45, 78},
		checksum:          span{78, 82},
	}

	// version(4) || depth(1) || parentFP(4) || hardened(1) || childIndex(32) || chainCode(32) || key(33) || checksum(4)
	layout256 = layout{
		version:           span{0, 4},
		depth:             span{4, 5},
		parentFingerprint: span{5, 9},
		hardened:          span{9, 10},
		childIndex:        span{10, 42},
		chainCode:         span{42, 74},
		publicKey:         span{74, 107},
		checksum:          span{107, 111},
	}
)

func layoutFor(payloadLen int) (layout, bool) {
	switch payloadLen {
	case DataSize:
		return layout32, true
	case DataSize256:
		return layout256, true
	}
	return layout{}, false
}

// buffers is the raw field set every construction path converges on before
// the shared builder validates it.
type buffers struct {
	version           []byte
	depth             []byte
	parentFingerprint []byte
	hardened          []byte // Mode256 only
	childIndex        []byte
	chainCode         []byte
	publicKey         []byte
	checksum          []byte // optional, verified when present
}

// sequence concatenates the fields in serialization order, without checksum.
func (b *buffers) sequence() []byte {
	out := make([]byte, 0, DataSize256)
	out = append(out, b.version...)
	out = append(out, b.depth...)
	out = append(out, b.parentFingerprint...)
	if len(b.childIndex) == ChildIndexSize256 {
		if len(b.hardened) == 0 {
			out = append(out, 0)
		} else {
			out = append(out, b.hardened...)
		}
	}
	out = append(out, b.childIndex...)
	out = append(out, b.chainCode...)
	out = append(out, b.publicKey...)
	return out
}

// encode appends the checksum to the payload and Base58-encodes the result.
func encode(payload []byte) (serialized []byte, text string) {
	serialized = make([]byte, 0, len(payload)+ChecksumSize)
	serialized = append(serialized, payload...)
	serialized = append(serialized, common.Checksum(payload)...)
	return serialized, base58.Encode(serialized)
}

// splitPayload slices a checksum-verified payload (checksum included) into
// its fields according to the layout of its length.
func splitPayload(serialized []byte) (*buffers, error) {
	l, ok := layoutFor(len(serialized) - ChecksumSize)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidLength, "%d bytes", len(serialized))
	}
	b := &buffers{
		version:           l.version.of(serialized),
		depth:             l.depth.of(serialized),
		parentFingerprint: l.parentFingerprint.of(serialized),
		childIndex:        l.childIndex.of(serialized),
		chainCode:         l.chainCode.of(serialized),
		publicKey:         l.publicKey.of(serialized),
		checksum:          l.checksum.of(serialized),
	}
	if l.hardened != (span{}) {
		b.hardened = l.hardened.of(serialized)
	}
	return b, nil
}

// ----- //

// IsValidSerialized reports whether data is a well formed extended public key,
// optionally of the given network.
func IsValidSerialized(data interface{}, network ...interface{}) bool {
	return GetSerializedError(data, network...) == nil
}

// GetSerializedError returns the reason data cannot be decoded as an extended
// public key, or nil. A well formed extended private key yields
// ErrArgumentIsPrivateExtended. The optional network is a name, alias, magic
// or *networks.Network the version must belong to; a nil network means none.
//
// A private key is checked against the network's private magic, not its
// public one, so an xprv with "livenet" still yields
// ErrArgumentIsPrivateExtended while the same xprv with "testnet" yields
// ErrInvalidNetwork.
func GetSerializedError(data interface{}, network ...interface{}) error {
	_, err := decodeSerialized(data, network...)
	return err
}

// decodeSerialized runs the decoding checks in order and returns the
// checksum-verified bytes (payload followed by checksum). On the private key
// redirect the bytes are returned together with the signal.
func decodeSerialized(data interface{}, network ...interface{}) ([]byte, error) {
	if len(network) > 1 {
		return nil, errors.Wrap(ErrInvalidNetworkArgument, "expected at most one network")
	}
	var text string
	switch v := data.(type) {
	case string:
		text = v
	case []byte:
		text = string(v)
	default:
		return nil, errors.Wrapf(ErrUnrecognizedArgument, "expected []byte or string, got %T", data)
	}
	if i := strings.IndexFunc(text, func(r rune) bool {
		return !strings.ContainsRune(base58Alphabet, r)
	}); i >= 0 {
		return nil, errors.Wrapf(ErrInvalidB58Char, "character %q at %d", text[i], i)
	}
	serialized, err := checkDecode(text)
	if err != nil {
		return nil, err
	}
	return serialized, checkSerialized(serialized, network...)
}

// checkDecode is the Base58Check decode of text.
func checkDecode(text string) ([]byte, error) {
	decoded := base58.Decode(text)
	if len(decoded) < ChecksumSize {
		return nil, errors.Wrap(ErrInvalidB58Checksum, "input too short")
	}
	payload := decoded[:len(decoded)-ChecksumSize]
	if !common.VerifyChecksum(payload, decoded[len(decoded)-ChecksumSize:]) {
		return nil, ErrInvalidB58Checksum
	}
	return decoded, nil
}

// checkSerialized applies the length, network and private-version checks to
// checksum-verified bytes.
func checkSerialized(serialized []byte, network ...interface{}) error {
	payloadLen := len(serialized) - ChecksumSize
	if payloadLen != DataSize && payloadLen != DataSize256 {
		return errors.Wrapf(ErrInvalidLength, "%d bytes", len(serialized))
	}
	if len(network) == 1 && !noNetwork(network[0]) {
		if err := validateNetwork(serialized, network[0]); err != nil {
			return err
		}
	}
	if networks.IsPrivateMagic(binary.BigEndian.Uint32(serialized[:VersionSize])) {
		return ErrArgumentIsPrivateExtended
	}
	return nil
}

// noNetwork reports whether arg requests no network check, including a nil
// *networks.Network such as the Network() of an unattached key.
func noNetwork(arg interface{}) bool {
	switch n := arg.(type) {
	case nil:
		return true
	case *networks.Network:
		return n == nil
	}
	return false
}

// validateNetwork checks the version of the serialized key against the magic
// the requested network uses for the key's mode and kind.
func validateNetwork(serialized []byte, networkArg interface{}) error {
	n := networks.Get(networkArg)
	if n == nil {
		return errors.Wrapf(ErrInvalidNetworkArgument, "%v", networkArg)
	}
	version := binary.BigEndian.Uint32(serialized[:VersionSize])
	wide := len(serialized)-ChecksumSize == DataSize256
	want := n.PublicMagic(wide)
	if networks.IsPrivateMagic(version) {
		want = n.PrivateMagic(wide)
	}
	if version != want {
		return errors.Wrapf(ErrInvalidNetwork, "version 0x%08x is not %s", version, n.Name())
	}
	return nil
}

// rawSerialized returns b when it is itself a binary serialization with a
// valid checksum rather than the bytes of the Base58 text.
func rawSerialized(b []byte) ([]byte, bool) {
	if len(b) != SerializedByteSize && len(b) != SerializedByteSize256 {
		return nil, false
	}
	payload := b[:len(b)-ChecksumSize]
	if !common.VerifyChecksum(payload, b[len(b)-ChecksumSize:]) {
		return nil, false
	}
	return b, true
}
