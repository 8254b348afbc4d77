// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package ckd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToObject(t *testing.T) {
	t.Parallel()
	master := MustFromString(testVec1MasterPubKey)

	o := master.ToObject()
	assert.Equal(t, "livenet", o.Network)
	assert.Equal(t, uint8(0), o.Depth)
	assert.Equal(t, uint32(0x3442193e), o.Fingerprint)
	assert.Equal(t, uint32(0), o.ParentFingerprint)
	assert.Equal(t, uint32(0), o.ChildIndex)
	assert.Nil(t, o.Hardened)
	assert.Equal(t, testVec1ChainCode, o.ChainCode)
	assert.Equal(t, testVec1PublicKey, o.PublicKey)
	assert.Equal(t, testVec1MasterPubKey, o.XPubKey)

	wide, err := master.Derive("0x" + strings.Repeat("77", 32))
	require.NoError(t, err)
	o = wide.ToObject()
	assert.Equal(t, "0x"+strings.Repeat("77", 32), o.ChildIndex)
	require.NotNil(t, o.Hardened)
	assert.False(t, *o.Hardened)
	assert.Equal(t, uint32(0x3442193e), o.ParentFingerprint)
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()
	master := MustFromString(testVec1MasterPubKey)
	wide, err := master.Derive("m/0x" + strings.Repeat("42", 32) + "/7")
	require.NoError(t, err)
	wideLeaf, err := master.Derive("0x" + strings.Repeat("42", 32))
	require.NoError(t, err)

	for _, k := range []*ExtendedPublicKey{master, wide, wideLeaf} {
		data, err := json.Marshal(k)
		require.NoError(t, err)

		var decoded ExtendedPublicKey
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, k.Equal(&decoded), string(data))

		// generic decoding turns numbers into float64
		var o Object
		require.NoError(t, json.Unmarshal(data, &o))
		fromObject, err := FromObject(o)
		require.NoError(t, err)
		assert.True(t, k.Equal(fromObject))
	}
}

func TestUnmarshalJSONText(t *testing.T) {
	t.Parallel()
	var k ExtendedPublicKey
	require.NoError(t, json.Unmarshal([]byte(`"`+testVec1MasterPrivKey+`"`), &k))
	assert.Equal(t, testVec1MasterPubKey, k.String())

	err := json.Unmarshal([]byte(`"not-a-key"`), &k)
	assert.ErrorIs(t, err, ErrInvalidB58Char)

	err = json.Unmarshal([]byte(`{"network":"livenet","depth":0,"childIndex":0,"chainCode":"00","publicKey":"`+testVec1PublicKey+`"}`), &k)
	assert.ErrorIs(t, err, ErrFieldSize)
}

func TestObjectOfUnattachedKey(t *testing.T) {
	t.Parallel()
	f := testVec1Fields()
	f.Network = nil
	f.Version = uint32(0x0badf00d)
	k, err := New(FromFields(f))
	require.NoError(t, err)

	o := k.ToObject()
	assert.Empty(t, o.Network)

	back, err := FromObject(o)
	require.NoError(t, err)
	assert.True(t, k.Equal(back))
	assert.Equal(t, uint32(0x0badf00d), back.Version())
}
