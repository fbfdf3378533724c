// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerguard

import (
	safemath "github.com/ava-labs/avalanchego/utils/math"
	"github.com/ava-labs/avalanchego/utils/wrappers"
)

// rewardScale is the fixed multiplier applied to a position's deposit when
// computing its claim.
const rewardScale = 1_000

// PoolEntity is a deposit pool with a three-timestamp phase window.
type PoolEntity struct {
	Window         Window
	TotalDeposited uint64
}

// PositionEntity is one depositor's stake in a pool.
type PositionEntity struct {
	Deposited uint64
	Claimed   bool
}

// vaultInit creates a pool. Accounts: [pool]. Payload: start, end and
// claimOpen timestamps. The window is validated once here; every later
// phase classification relies on it being well formed.
func (k *Kernel) vaultInit(accounts []*Account, payload []byte) error {
	if len(accounts) != 1 {
		return errWrongAccountCount
	}
	window, err := unpackWindow(payload)
	if err != nil {
		return err
	}
	if err := window.Verify(); err != nil {
		return err
	}
	return k.createEntity(accounts[0], MarshalPool(&PoolEntity{Window: window}))
}

// vaultOpen creates a position in a pool. Accounts: [pool, position].
func (k *Kernel) vaultOpen(accounts []*Account, payload []byte) error {
	if len(accounts) != 2 {
		return errWrongAccountCount
	}
	if len(payload) != 0 {
		return errInvalidPayload
	}
	pool, position := accounts[0], accounts[1]

	if err := VerifyDistinct(pool, position); err != nil {
		return err
	}
	if err := VerifyOwned(pool); err != nil {
		return err
	}
	if err := CheckKind(pool.Data, KindPool); err != nil {
		return err
	}
	return k.createEntity(position, MarshalPosition(&PositionEntity{}))
}

// vaultDeposit adds to a position during the deposit phase. Accounts:
// [pool, position]. Payload: amount.
func (k *Kernel) vaultDeposit(accounts []*Account, payload []byte) error {
	if len(accounts) != 2 {
		return errWrongAccountCount
	}
	amount, err := unpackAmount(payload)
	if err != nil {
		return err
	}
	pool, position := accounts[0], accounts[1]

	if err := VerifyDistinct(pool, position); err != nil {
		return err
	}
	if err := VerifyOwned(pool); err != nil {
		return err
	}
	if err := VerifyOwned(position); err != nil {
		return err
	}
	if err := CheckKind(pool.Data, KindPool); err != nil {
		return err
	}
	if err := CheckKind(position.Data, KindPosition); err != nil {
		return err
	}

	poolEntity := UnmarshalPool(pool.Data)
	if err := poolEntity.Window.Require(k.clock.Timestamp(), PhaseDeposit); err != nil {
		return err
	}

	positionEntity := UnmarshalPosition(position.Data)
	deposited, err := safemath.Add64(positionEntity.Deposited, amount)
	if err != nil {
		return err
	}
	total, err := safemath.Add64(poolEntity.TotalDeposited, amount)
	if err != nil {
		return err
	}
	positionEntity.Deposited = deposited
	poolEntity.TotalDeposited = total

	position.Data = MarshalPosition(positionEntity)
	if err := k.state.PutAccount(position); err != nil {
		return err
	}
	pool.Data = MarshalPool(poolEntity)
	return k.state.PutAccount(pool)
}

// vaultClaim pays out a position during the claim phase. Accounts:
// [pool, position, receiver]. A position claims at most once.
func (k *Kernel) vaultClaim(accounts []*Account, payload []byte) error {
	if len(accounts) != 3 {
		return errWrongAccountCount
	}
	if len(payload) != 0 {
		return errInvalidPayload
	}
	pool, position, receiver := accounts[0], accounts[1], accounts[2]

	if err := VerifyDistinct(pool, position, receiver); err != nil {
		return err
	}
	if err := VerifyOwned(pool); err != nil {
		return err
	}
	if err := VerifyOwned(position); err != nil {
		return err
	}
	if err := CheckKind(pool.Data, KindPool); err != nil {
		return err
	}
	if err := CheckKind(position.Data, KindPosition); err != nil {
		return err
	}

	poolEntity := UnmarshalPool(pool.Data)
	if err := poolEntity.Window.Require(k.clock.Timestamp(), PhaseClaim); err != nil {
		return err
	}

	positionEntity := UnmarshalPosition(position.Data)
	if positionEntity.Claimed {
		return errAlreadyClaimed
	}

	scaled, err := safemath.Mul64(positionEntity.Deposited, rewardScale)
	if err != nil {
		return err
	}
	total := poolEntity.TotalDeposited
	if total == 0 {
		total = 1
	}
	reward := scaled / total

	balance, err := safemath.Add64(receiver.Balance, reward)
	if err != nil {
		return err
	}
	receiver.Balance = balance
	positionEntity.Claimed = true

	position.Data = MarshalPosition(positionEntity)
	if err := k.state.PutAccount(position); err != nil {
		return err
	}
	return k.state.PutAccount(receiver)
}

// unpackWindow reads a payload that is exactly three 8-byte timestamps.
func unpackWindow(payload []byte) (Window, error) {
	p := wrappers.Packer{Bytes: payload}
	window := Window{
		Start:     int64(p.UnpackLong()),
		End:       int64(p.UnpackLong()),
		ClaimOpen: int64(p.UnpackLong()),
	}
	if p.Errored() || p.Offset != len(payload) {
		return Window{}, errInvalidPayload
	}
	return window, nil
}
