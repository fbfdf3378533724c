// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerguard

import (
	"math"
)

// stakeInit creates a stake pool. Accounts: [pool, authority]. The
// authority's address is pinned into the pool; every later movement of the
// total must present it.
func (k *Kernel) stakeInit(accounts []*Account, payload []byte) error {
	if len(accounts) != 2 {
		return errWrongAccountCount
	}
	if len(payload) != 0 {
		return errInvalidPayload
	}
	pool, authority := accounts[0], accounts[1]

	if err := VerifyDistinct(pool, authority); err != nil {
		return err
	}
	return k.createEntity(pool, MarshalStakePool(&StakePoolEntity{
		Authority: authority.Address,
	}))
}

// stakeJoin adds a member to a pool with a zero share. Accounts:
// [pool, member]. A zero share keeps the distribution invariant intact; the
// member picks up its proportion at the next deposit or withdrawal.
func (k *Kernel) stakeJoin(accounts []*Account, payload []byte) error {
	if len(accounts) != 2 {
		return errWrongAccountCount
	}
	if len(payload) != 0 {
		return errInvalidPayload
	}
	pool, member := accounts[0], accounts[1]

	if err := VerifyDistinct(pool, member); err != nil {
		return err
	}
	if err := VerifyOwned(pool); err != nil {
		return err
	}
	if err := CheckKind(pool.Data, KindStakePool); err != nil {
		return err
	}
	return k.createEntity(member, MarshalMember(&MemberEntity{}))
}

// stakeDeposit adds to the pool total and rebalances every member.
// Accounts: [pool, authority, members...]. Payload: amount.
func (k *Kernel) stakeDeposit(accounts []*Account, payload []byte) error {
	return k.stakeApply(accounts, payload, false)
}

// stakeWithdraw removes from the pool total and rebalances every member.
// Accounts: [pool, authority, members...]. Payload: amount.
func (k *Kernel) stakeWithdraw(accounts []*Account, payload []byte) error {
	return k.stakeApply(accounts, payload, true)
}

// stakeApply mutates only the pool total and then recomputes every member's
// share in full. No transition writes one member's share in isolation, so a
// caller cannot pick a withdrawal target.
func (k *Kernel) stakeApply(accounts []*Account, payload []byte, withdraw bool) error {
	if len(accounts) < 3 {
		return errWrongAccountCount
	}
	amount, err := unpackAmount(payload)
	if err != nil {
		return err
	}
	if amount > math.MaxInt64 {
		return errInvalidPayload
	}
	pool, authority, members := accounts[0], accounts[1], accounts[2:]

	if err := VerifyDistinct(accounts...); err != nil {
		return err
	}
	if err := VerifyOwned(pool); err != nil {
		return err
	}
	if err := CheckKind(pool.Data, KindStakePool); err != nil {
		return err
	}
	for _, member := range members {
		if err := VerifyOwned(member); err != nil {
			return err
		}
		if err := CheckKind(member.Data, KindMember); err != nil {
			return err
		}
	}

	poolEntity := UnmarshalStakePool(pool.Data)
	if authority.Address != poolEntity.Authority {
		return errWrongAuthority
	}

	delta := int64(amount)
	if withdraw {
		delta = -delta
	}
	newTotal, shares, err := ApplyDelta(poolEntity.TotalStake, delta, len(members))
	if err != nil {
		return err
	}

	poolEntity.TotalStake = newTotal
	pool.Data = MarshalStakePool(poolEntity)
	if err := k.state.PutAccount(pool); err != nil {
		return err
	}
	for i, member := range members {
		member.Data = MarshalMember(&MemberEntity{Share: shares[i]})
		if err := k.state.PutAccount(member); err != nil {
			return err
		}
	}
	return nil
}
