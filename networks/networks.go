// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package networks is the process-wide registry of chain parameters. Every
// network carries the four extended key version magics (public/private for the
// 32-bit BIP32 mode and for the 256-bit DIP14 mode) used by the HD key codec.
//
// The registry is populated at init with livenet and testnet. Add, Remove and
// the regtest toggle are configuration-time operations: call them before keys
// are decoded or derived.
package networks

import (
	"fmt"
	"sync"
)

type (
	// Params describes a network to register with Add.
	Params struct {
		Name         string
		Aliases      []string
		PubKeyHash   byte
		PrivateKey   byte
		ScriptHash   byte
		XPubKey      uint32
		XPrivKey     uint32
		XPubKey256   uint32
		XPrivKey256  uint32
		NetworkMagic uint32
		Port         int
		DNSSeeds     []string
	}

	// Network is a registered, read-only set of chain parameters.
	Network struct {
		params  Params
		regtest *regtestParams
	}

	regtestParams struct {
		enabled bool
		port    int
		magic   uint32
		seeds   []string
	}

	registry struct {
		mtx      sync.RWMutex
		networks []*Network
		byName   map[string]*Network
		byMagic  map[uint32]*Network
	}
)

var reg = &registry{
	byName:  make(map[string]*Network),
	byMagic: make(map[uint32]*Network),
}

var (
	// Livenet is the main network ("mainnet").
	Livenet *Network

	// Testnet also serves regtest, devnet, evonet and local.
	Testnet *Network

	// DefaultNetwork is used when no network is given.
	DefaultNetwork *Network
)

const (
	testnetPort  = 13455
	testnetMagic = 0xd12bb37a
	regtestPort  = 13565
	regtestMagic = 0xa1b3d57b
)

func init() {
	Livenet = Add(Params{
		Name:         "livenet",
		Aliases:      []string{"mainnet"},
		PubKeyHash:   0x26,
		PrivateKey:   0xc6,
		ScriptHash:   0x0a,
		XPubKey:      0x0488b21e, // xpub
		XPrivKey:     0x0488ade4, // xprv
		XPubKey256:   0x0eecefc5, // dpmp
		XPrivKey256:  0x0eecf02e, // dpms
		NetworkMagic: 0x1ab2c3d4,
		Port:         12455,
		DNSSeeds: []string{
			"seed1.gobyte.network",
			"seed2.gobyte.network",
			"seed3.gobyte.network",
			"seed4.gobyte.network",
			"seed5.gobyte.network",
			"seed6.gobyte.network",
			"seed7.gobyte.network",
			"seed8.gobyte.network",
			"seed9.gobyte.network",
			"seed10.gobyte.network",
		},
	})
	Testnet = Add(Params{
		Name:         "testnet",
		Aliases:      []string{"regtest", "devnet", "evonet", "local"},
		PubKeyHash:   0x70,
		PrivateKey:   0xf0,
		ScriptHash:   0x14,
		XPubKey:      0x043587cf, // tpub
		XPrivKey:     0x04358394, // tprv
		XPubKey256:   0x0eed270b, // dptp
		XPrivKey256:  0x0eed2774, // dpts
		NetworkMagic: testnetMagic,
		Port:         testnetPort,
		DNSSeeds:     []string{"testnet-dns.gobyte.network"},
	})
	Testnet.regtest = &regtestParams{
		port:  regtestPort,
		magic: regtestMagic,
		seeds: []string{},
	}
	reg.byMagic[regtestMagic] = Testnet
	DefaultNetwork = Livenet
}

// Add registers a custom network and returns it. Names, aliases and magics
// that are already registered are re-pointed to the new network.
func Add(p Params) *Network {
	n := &Network{params: p}
	n.params.Aliases = append([]string(nil), p.Aliases...)
	n.params.DNSSeeds = append([]string(nil), p.DNSSeeds...)

	reg.mtx.Lock()
	defer reg.mtx.Unlock()
	reg.byName[p.Name] = n
	for _, alias := range p.Aliases {
		reg.byName[alias] = n
	}
	for _, magic := range []uint32{p.XPubKey, p.XPrivKey, p.XPubKey256, p.XPrivKey256, p.NetworkMagic} {
		if magic != 0 {
			reg.byMagic[magic] = n
		}
	}
	reg.networks = append(reg.networks, n)
	return n
}

// Remove unregisters a network and every name or magic pointing to it.
func Remove(n *Network) {
	reg.mtx.Lock()
	defer reg.mtx.Unlock()
	for i := 0; i < len(reg.networks); i++ {
		if reg.networks[i] == n {
			reg.networks = append(reg.networks[:i], reg.networks[i+1:]...)
			i--
		}
	}
	for k, v := range reg.byName {
		if v == n {
			delete(reg.byName, k)
		}
	}
	for k, v := range reg.byMagic {
		if v == n {
			delete(reg.byMagic, k)
		}
	}
}

// Get resolves a network from a name or alias (string), a version or network
// magic (any integer kind), or a *Network that is still registered. It returns
// nil when nothing matches. Get never changes registry state.
func Get(arg interface{}) *Network {
	reg.mtx.RLock()
	defer reg.mtx.RUnlock()
	switch v := arg.(type) {
	case *Network:
		for _, n := range reg.networks {
			if n == v {
				return n
			}
		}
		return nil
	case string:
		return reg.byName[v]
	case uint32:
		return reg.byMagic[v]
	case int:
		if v < 0 || uint64(v) > 0xffffffff {
			return nil
		}
		return reg.byMagic[uint32(v)]
	case int64:
		if v < 0 || v > 0xffffffff {
			return nil
		}
		return reg.byMagic[uint32(v)]
	case uint64:
		if v > 0xffffffff {
			return nil
		}
		return reg.byMagic[uint32(v)]
	}
	return nil
}

// MagicKey selects one of the four extended key magics of a network.
type MagicKey int

const (
	XPubKey MagicKey = iota
	XPrivKey
	XPubKey256
	XPrivKey256
)

// GetByMagic returns the network whose magic selected by one of keys equals
// magic, or nil.
func GetByMagic(magic uint32, keys ...MagicKey) *Network {
	reg.mtx.RLock()
	defer reg.mtx.RUnlock()
	for _, n := range reg.networks {
		for _, k := range keys {
			if n.Magic(k) == magic {
				return n
			}
		}
	}
	return nil
}

// IsPrivateMagic reports whether magic is a private extended key version of any
// registered network, in either index mode.
func IsPrivateMagic(magic uint32) bool {
	return GetByMagic(magic, XPrivKey, XPrivKey256) != nil
}

// EnableRegtest switches testnet's port, magic and seeds to regtest values.
func EnableRegtest() {
	reg.mtx.Lock()
	defer reg.mtx.Unlock()
	Testnet.regtest.enabled = true
}

// DisableRegtest restores testnet's own port, magic and seeds.
func DisableRegtest() {
	reg.mtx.Lock()
	defer reg.mtx.Unlock()
	Testnet.regtest.enabled = false
}

func (n *Network) Name() string      { return n.params.Name }
func (n *Network) Aliases() []string { return append([]string(nil), n.params.Aliases...) }
func (n *Network) PubKeyHash() byte  { return n.params.PubKeyHash }
func (n *Network) PrivateKey() byte  { return n.params.PrivateKey }
func (n *Network) ScriptHash() byte  { return n.params.ScriptHash }

// Magic returns the extended key version selected by k.
func (n *Network) Magic(k MagicKey) uint32 {
	switch k {
	case XPubKey:
		return n.params.XPubKey
	case XPrivKey:
		return n.params.XPrivKey
	case XPubKey256:
		return n.params.XPubKey256
	case XPrivKey256:
		return n.params.XPrivKey256
	}
	panic(fmt.Sprintf("networks: unknown magic key %d", k))
}

// PublicMagic is the public extended key version for the 32-bit or 256-bit mode.
func (n *Network) PublicMagic(wide bool) uint32 {
	if wide {
		return n.params.XPubKey256
	}
	return n.params.XPubKey
}

// PrivateMagic is the private extended key version for the 32-bit or 256-bit mode.
func (n *Network) PrivateMagic(wide bool) uint32 {
	if wide {
		return n.params.XPrivKey256
	}
	return n.params.XPrivKey
}

func (n *Network) RegtestEnabled() bool {
	if n.regtest == nil {
		return false
	}
	reg.mtx.RLock()
	defer reg.mtx.RUnlock()
	return n.regtest.enabled
}

func (n *Network) Port() int {
	if n.RegtestEnabled() {
		return n.regtest.port
	}
	return n.params.Port
}

func (n *Network) NetworkMagic() uint32 {
	if n.RegtestEnabled() {
		return n.regtest.magic
	}
	return n.params.NetworkMagic
}

func (n *Network) DNSSeeds() []string {
	if n.RegtestEnabled() {
		return append([]string(nil), n.regtest.seeds...)
	}
	return append([]string(nil), n.params.DNSSeeds...)
}

func (n *Network) String() string {
	return n.params.Name
}
