// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package crypto

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ECPoint supports various marshaling formats implemented as custom encoder/decoders.
var (
	_ json.Marshaler   = (*ECPoint)(nil)
	_ json.Unmarshaler = (*ECPoint)(nil)
)

// MarshalJSON encodes the point as its compressed form in hex.
func (P *ECPoint) MarshalJSON() ([]byte, error) {
	if P == nil || P.key == nil {
		return []byte("null"), nil
	}
	return json.Marshal(hex.EncodeToString(P.SerializeCompressed()))
}

func (P *ECPoint) UnmarshalJSON(payload []byte) error {
	var aux string
	if err := json.Unmarshal(payload, &aux); err != nil {
		return err
	}
	b, err := hex.DecodeString(aux)
	if err != nil {
		return fmt.Errorf("ECPoint.UnmarshalJSON: %w", err)
	}
	point, err := NewECPointFromCompressed(b)
	if err != nil {
		return fmt.Errorf("ECPoint.UnmarshalJSON: %w", err)
	}
	P.key = point.key
	return nil
}
