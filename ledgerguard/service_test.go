// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerguard

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting"
	"github.com/stretchr/testify/assert"
)

func TestService(t *testing.T) {
	assert := assert.New(t)
	kernel, _ := newTestKernel(t)
	service := Service{kernel: kernel}

	pool := ids.GenerateTestID()
	payload, err := formatting.Encode(formatting.Hex, packWindow(100, 200, 300))
	assert.NoError(err)

	executeReply := ExecuteReply{}
	assert.NoError(service.Execute(nil, &ExecuteArgs{
		Transition: "vault.init",
		Accounts:   []ids.ID{pool},
		Payload:    payload,
	}, &executeReply))
	assert.True(executeReply.Success)

	// Rejections surface the failure kind to the caller.
	err = service.Execute(nil, &ExecuteArgs{
		Transition: "vault.init",
		Accounts:   []ids.ID{pool},
		Payload:    payload,
	}, &ExecuteReply{})
	assert.ErrorIs(err, errAccountInUse)

	getReply := GetAccountReply{}
	assert.NoError(service.GetAccount(nil, &GetAccountArgs{Address: pool}, &getReply))
	assert.Equal(ProgramID, getReply.Owner)

	data, err := formatting.Decode(formatting.Hex, getReply.Data)
	assert.NoError(err)
	assert.NoError(CheckKind(data, KindPool))
	assert.Equal(Window{Start: 100, End: 200, ClaimOpen: 300}, UnmarshalPool(data).Window)

	// Derive matches the kernel's own derivation.
	seed, err := formatting.Encode(formatting.Hex, []byte("seed"))
	assert.NoError(err)
	deriveReply := DeriveReply{}
	assert.NoError(service.Derive(nil, &DeriveArgs{Seed: seed}, &deriveReply))
	assert.Equal(Derive([]byte("seed"), ProgramID), deriveReply.Address)
}

func TestServiceEncodeDecode(t *testing.T) {
	assert := assert.New(t)
	service := Service{}

	encodeReply := EncodeReply{}
	assert.NoError(service.Encode(nil, &EncodeArgs{
		Data:     "guard me",
		Encoding: formatting.Hex,
	}, &encodeReply))

	decodeReply := DecodeReply{}
	assert.NoError(service.Decode(nil, &DecodeArgs{
		Bytes:    encodeReply.Bytes,
		Encoding: encodeReply.Encoding,
	}, &decodeReply))
	assert.Equal("guard me", decodeReply.Data)

	err := service.Decode(nil, &DecodeArgs{
		Bytes:    "not hex",
		Encoding: formatting.Hex,
	}, &DecodeReply{})
	assert.Error(err)
}

func TestServiceSetAccount(t *testing.T) {
	assert := assert.New(t)
	kernel, clock := newTestKernel(t)
	service := Service{kernel: kernel}

	asset := ids.GenerateTestID()
	assert.NoError(kernel.Execute("oracle.init", []ids.ID{asset}, nil))

	clock.SetSlot(10)
	feedData, err := formatting.Encode(formatting.Hex, MarshalFeed(&FeedEntity{Sequence: 9, Value: 777}))
	assert.NoError(err)

	setReply := SetAccountReply{}
	assert.NoError(service.SetAccount(nil, &SetAccountArgs{
		Address: FeedAddress,
		Owner:   FeedProvider,
		Balance: 1,
		Data:    feedData,
	}, &setReply))
	assert.True(setReply.Success)

	assert.NoError(kernel.Execute("oracle.refresh", []ids.ID{FeedAddress, asset}, nil))
	assetEntity := UnmarshalAsset(mustGet(t, kernel, asset).Data)
	assert.Equal(uint64(777), assetEntity.Value)
}
