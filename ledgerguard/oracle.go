// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerguard

// oracleInit creates an asset record that tracks the canonical feed.
// Accounts: [asset].
func (k *Kernel) oracleInit(accounts []*Account, payload []byte) error {
	if len(accounts) != 1 {
		return errWrongAccountCount
	}
	if len(payload) != 0 {
		return errInvalidPayload
	}
	return k.createEntity(accounts[0], MarshalAsset(&AssetEntity{}))
}

// oracleRefresh copies the canonical feed's value into the asset record.
// Accounts: [feed, asset]. The feed is provider-owned and is only read; the
// asset's value and sequence are replaced together on success.
func (k *Kernel) oracleRefresh(accounts []*Account, payload []byte) error {
	if len(accounts) != 2 {
		return errWrongAccountCount
	}
	if len(payload) != 0 {
		return errInvalidPayload
	}
	feed, asset := accounts[0], accounts[1]

	if err := VerifyDistinct(feed, asset); err != nil {
		return err
	}
	if err := VerifyOwned(asset); err != nil {
		return err
	}
	if err := CheckKind(asset.Data, KindAsset); err != nil {
		return err
	}

	assetEntity := UnmarshalAsset(asset.Data)
	record, err := k.feedPolicy.Validate(feed, assetEntity.LastSequence, k.clock.Slot())
	if err != nil {
		return err
	}

	assetEntity.Accept(record)
	asset.Data = MarshalAsset(assetEntity)
	return k.state.PutAccount(asset)
}
