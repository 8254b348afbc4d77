// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package networks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/erfan007p/dashcore-lib/networks"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name string
		arg  interface{}
		want *Network
	}{
		{"name", "livenet", Livenet},
		{"alias", "mainnet", Livenet},
		{"testnet", "testnet", Testnet},
		{"regtest alias", "regtest", Testnet},
		{"devnet alias", "devnet", Testnet},
		{"xpub magic", uint32(0x0488b21e), Livenet},
		{"dpms magic", uint32(0x0eecf02e), Livenet},
		{"tpub magic as int", 0x043587cf, Testnet},
		{"dptp magic as int64", int64(0x0eed270b), Testnet},
		{"network magic", uint64(0xd12bb37a), Testnet},
		{"network", Testnet, Testnet},
		{"unknown name", "nonexistent", nil},
		{"unknown magic", uint32(0xdeadbeef), nil},
		{"negative", -1, nil},
		{"too wide", uint64(1) << 32, nil},
		{"unsupported type", 1.5, nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, tt.want, Get(tt.arg))
		})
	}
	assert.Same(t, Livenet, DefaultNetwork)
}

func TestMagics(t *testing.T) {
	assert.Equal(t, uint32(0x0488b21e), Livenet.PublicMagic(false))
	assert.Equal(t, uint32(0x0eecefc5), Livenet.PublicMagic(true))
	assert.Equal(t, uint32(0x0488ade4), Livenet.PrivateMagic(false))
	assert.Equal(t, uint32(0x0eecf02e), Livenet.PrivateMagic(true))
	assert.Equal(t, uint32(0x043587cf), Testnet.Magic(XPubKey))
	assert.Equal(t, uint32(0x04358394), Testnet.Magic(XPrivKey))
	assert.Equal(t, uint32(0x0eed270b), Testnet.Magic(XPubKey256))
	assert.Equal(t, uint32(0x0eed2774), Testnet.Magic(XPrivKey256))
	assert.Panics(t, func() { Testnet.Magic(MagicKey(9)) })

	assert.Same(t, Testnet, GetByMagic(0x0eed270b, XPubKey, XPubKey256))
	assert.Nil(t, GetByMagic(0x0eed270b, XPubKey))
	assert.Nil(t, GetByMagic(0x0488b21e))

	assert.True(t, IsPrivateMagic(0x0488ade4))
	assert.True(t, IsPrivateMagic(0x0eed2774))
	assert.False(t, IsPrivateMagic(0x0488b21e))
	assert.False(t, IsPrivateMagic(0xd12bb37a))
}

func TestAddRemove(t *testing.T) {
	custom := Add(Params{
		Name:        "customnet",
		Aliases:     []string{"custom"},
		XPubKey:     0x11111111,
		XPrivKey:    0x22222222,
		XPubKey256:  0x33333333,
		XPrivKey256: 0x44444444,
		Port:        9999,
		DNSSeeds:    []string{"seed.example"},
	})
	require.NotNil(t, custom)
	assert.Equal(t, "customnet", custom.String())
	assert.Equal(t, []string{"custom"}, custom.Aliases())
	assert.Same(t, custom, Get("custom"))
	assert.Same(t, custom, Get(uint32(0x33333333)))
	assert.Same(t, custom, Get(custom))
	assert.True(t, IsPrivateMagic(0x44444444))
	assert.False(t, custom.RegtestEnabled())
	assert.Equal(t, 9999, custom.Port())

	Remove(custom)
	assert.Nil(t, Get("customnet"))
	assert.Nil(t, Get("custom"))
	assert.Nil(t, Get(uint32(0x11111111)))
	assert.Nil(t, Get(custom))
	assert.False(t, IsPrivateMagic(0x44444444))

	// built-ins are untouched
	assert.Same(t, Livenet, Get("livenet"))
	assert.Same(t, Testnet, Get("testnet"))
}

func TestRegtest(t *testing.T) {
	defer DisableRegtest()
	require.False(t, Testnet.RegtestEnabled())
	assert.Equal(t, 13455, Testnet.Port())
	assert.Equal(t, uint32(0xd12bb37a), Testnet.NetworkMagic())
	assert.NotEmpty(t, Testnet.DNSSeeds())

	EnableRegtest()
	assert.True(t, Testnet.RegtestEnabled())
	assert.Equal(t, 13565, Testnet.Port())
	assert.Equal(t, uint32(0xa1b3d57b), Testnet.NetworkMagic())
	assert.Empty(t, Testnet.DNSSeeds())
	assert.Same(t, Testnet, Get(uint32(0xa1b3d57b)))

	// extended key versions do not change
	assert.Equal(t, uint32(0x043587cf), Testnet.PublicMagic(false))
	assert.False(t, Livenet.RegtestEnabled())

	DisableRegtest()
	assert.Equal(t, 13455, Testnet.Port())
}
