// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package ckd

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Object is the plain field view of a key. ChildIndex is a uint32 for 32-bit
// keys and a "0x"-prefixed 64 digit hex string for 256-bit keys; Hardened is
// only present for the latter.
type Object struct {
	Network           string      `json:"network"`
	Depth             uint8       `json:"depth"`
	Fingerprint       uint32      `json:"fingerPrint"`
	ParentFingerprint uint32      `json:"parentFingerPrint"`
	Hardened          *bool       `json:"hardened,omitempty"`
	ChildIndex        interface{} `json:"childIndex"`
	ChainCode         string      `json:"chainCode"`
	PublicKey         string      `json:"publicKey"`
	Checksum          uint32      `json:"checksum"`
	XPubKey           string      `json:"xpubkey"`
}

// ToObject returns the object view. Network is empty for an unattached key.
func (k *ExtendedPublicKey) ToObject() Object {
	o := Object{
		Depth:             k.depth,
		Fingerprint:       binary.BigEndian.Uint32(k.fingerprint[:]),
		ParentFingerprint: binary.BigEndian.Uint32(k.parentFingerprint[:]),
		ChainCode:         hex.EncodeToString(k.chainCode[:]),
		PublicKey:         hex.EncodeToString(k.PublicKeyBytes()),
		Checksum:          binary.BigEndian.Uint32(k.Checksum()),
		XPubKey:           k.text,
	}
	if k.network != nil {
		o.Network = k.network.Name()
	}
	switch idx := k.childIndex.(type) {
	case Index256:
		hardened := idx.Hardened
		o.Hardened = &hardened
		o.ChildIndex = idx.String()
	case Index32:
		o.ChildIndex = uint32(idx)
	}
	return o
}

// Fields converts the object view back into builder input. The version comes
// from Network when it is set and from the xpubkey text otherwise.
func (o Object) Fields() Fields {
	f := Fields{
		Depth:             o.Depth,
		ParentFingerprint: o.ParentFingerprint,
		ChainCode:         o.ChainCode,
		PublicKey:         o.PublicKey,
	}
	// zero means absent; the builder computes the checksum itself
	if o.Checksum != 0 {
		f.Checksum = o.Checksum
	}
	if o.Hardened != nil {
		f.Hardened = *o.Hardened
	}
	if o.Network != "" {
		f.Network = o.Network
	} else if decoded, err := checkDecode(o.XPubKey); err == nil && len(decoded) >= VersionSize {
		f.Version = decoded[:VersionSize]
	}

	switch ci := o.ChildIndex.(type) {
	case string:
		if n, ok := parseIndex256Hex(ci); ok {
			idx := Index256{Hardened: f.Hardened}
			n.FillBytes(idx.Value[:])
			f.ChildIndex = idx
		} else {
			f.ChildIndex = ci
		}
	case float64:
		// encoding/json decodes numbers into float64; child numbers are exact in it
		f.ChildIndex = uint32(ci)
	case json.Number:
		if n, err := ci.Int64(); err == nil {
			f.ChildIndex = n
		} else {
			f.ChildIndex = ci.String()
		}
	default:
		f.ChildIndex = o.ChildIndex
	}
	return f
}

func (k *ExtendedPublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.ToObject())
}

// UnmarshalJSON accepts either the object form or a JSON string holding the
// Base58 text.
func (k *ExtendedPublicKey) UnmarshalJSON(data []byte) error {
	var (
		built *ExtendedPublicKey
		err   error
	)
	if trimmed := strings.TrimSpace(string(data)); strings.HasPrefix(trimmed, `"`) {
		var text string
		if err = json.Unmarshal(data, &text); err != nil {
			return err
		}
		built, err = FromString(text)
	} else {
		dec := json.NewDecoder(strings.NewReader(trimmed))
		dec.UseNumber()
		var o Object
		if err = dec.Decode(&o); err != nil {
			return errors.Wrap(err, "decode extended public key object")
		}
		built, err = FromObject(o)
	}
	if err != nil {
		return err
	}
	*k = *built
	return nil
}
