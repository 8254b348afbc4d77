// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"encoding/hex"
	"math/big"

	"github.com/ipfs/go-log"
)

// LoggerName is the go-log subsystem used by every package of this module.
const LoggerName = "hdkey"

var Logger = log.Logger(LoggerName)

// FormatBigInt renders the low 32 bits of a in hex, which is enough to tell
// indices apart in log lines without dumping 64 hex digits.
func FormatBigInt(a *big.Int) string {
	if a == nil {
		return "<nil>"
	}
	var aux = new(big.Int).SetInt64(0xFFFFFFFF)
	return func(i *big.Int) string {
		return new(big.Int).And(i, aux).Text(16)
	}(a)
}

// FormatBytes is the log form of short identifiers such as fingerprints.
func FormatBytes(b []byte) string {
	if b == nil {
		return "<nil>"
	}
	return hex.EncodeToString(b)
}
