// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erfan007p/dashcore-lib/crypto/ckd"
)

const (
	vec1MasterPub  = "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8"
	vec1MasterPriv = "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi"
	// BIP32 vector 1 m/0H/1 public key
	vec1Child = "xpub6ASuArnXKPbfEwhqN6e3mwBcDTgzisQN1wXN9BJcM47sSikHjJf3UFHKkNAWbWMiGj7Wf5uMash7SyYq527Hqck2AxYysAA7xmALppuCkwQ"
)

// run executes the root command with fresh flag state.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	networkFlag, logLevelFlag, jsonFlag, regtestFlag = "", "error", false, false
	countFlag, startFlag = 0, 0

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInspect(t *testing.T) {
	out, err := run(t, "inspect", vec1MasterPub)
	require.NoError(t, err)
	assert.Contains(t, out, "livenet")
	assert.Contains(t, out, "3442193e")
	assert.Contains(t, out, vec1MasterPub)

	out, err = run(t, "inspect", "--json", vec1MasterPub)
	require.NoError(t, err)
	var o ckd.Object
	require.NoError(t, json.Unmarshal([]byte(out), &o))
	assert.Equal(t, vec1MasterPub, o.XPubKey)
	assert.Equal(t, uint32(0x3442193e), o.Fingerprint)

	_, err = run(t, "inspect", "--network", "testnet", vec1MasterPub)
	assert.ErrorIs(t, err, ckd.ErrInvalidNetwork)
}

func TestDerive(t *testing.T) {
	out, err := run(t, "derive", "--json", vec1Child)
	require.NoError(t, err)
	var o ckd.Object
	require.NoError(t, json.Unmarshal([]byte(out), &o))
	assert.Equal(t, vec1Child, o.XPubKey)

	out, err = run(t, "derive", "--json", "--count", "3", "--start", "5", vec1MasterPub, "m/0")
	require.NoError(t, err)
	var rows []struct {
		Path      string `json:"path"`
		Index     uint32 `json:"index"`
		PublicKey string `json:"publicKey"`
		XPubKey   string `json:"xpubkey"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)

	master := ckd.MustFromString(vec1MasterPub)
	for i, r := range rows {
		assert.Equal(t, uint32(5+i), r.Index)
		want, err := master.DerivePath(r.Path)
		require.NoError(t, err)
		assert.Equal(t, want.String(), r.XPubKey)
		assert.Equal(t, want.Point().String(), r.PublicKey)
	}
	assert.Equal(t, "m/0/7", rows[2].Path)

	out, err = run(t, "derive", "--count", "2", vec1MasterPub)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "xpub"))

	_, err = run(t, "derive", vec1MasterPub, "m/0'")
	assert.ErrorIs(t, err, ckd.ErrCantDeriveHardened)
}

func TestNeuter(t *testing.T) {
	out, err := run(t, "neuter", vec1MasterPriv)
	require.NoError(t, err)
	assert.Equal(t, vec1MasterPub+"\n", out)

	_, err = run(t, "neuter", vec1MasterPub)
	assert.Error(t, err)
}
