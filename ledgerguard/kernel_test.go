// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerguard

import (
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/stretchr/testify/assert"
)

func newTestKernel(t *testing.T) (*Kernel, *ChainClock) {
	clock := &ChainClock{}
	clock.Set(time.Unix(0, 0))
	kernel, err := NewKernel(memdb.New(), clock)
	assert.NoError(t, err)
	return kernel, clock
}

func packUint64(v uint64) []byte {
	p := wrappers.Packer{MaxSize: wrappers.LongLen}
	p.PackLong(v)
	return p.Bytes
}

func packWindow(start, end, claimOpen int64) []byte {
	p := wrappers.Packer{MaxSize: 3 * wrappers.LongLen}
	p.PackLong(uint64(start))
	p.PackLong(uint64(end))
	p.PackLong(uint64(claimOpen))
	return p.Bytes
}

func mustGet(t *testing.T, kernel *Kernel, addr ids.ID) *Account {
	acct, err := kernel.GetAccount(addr)
	assert.NoError(t, err)
	return acct
}

func TestKernelUnknownTransition(t *testing.T) {
	kernel, _ := newTestKernel(t)
	err := kernel.Execute("vault.burn", nil, nil)
	assert.ErrorIs(t, err, errUnknownTransition)
}

func TestVaultFlow(t *testing.T) {
	assert := assert.New(t)
	kernel, clock := newTestKernel(t)

	pool := ids.GenerateTestID()
	position := ids.GenerateTestID()
	receiver := ids.GenerateTestID()

	// end == claimOpen: the exact configuration the boundary attack needs.
	assert.NoError(kernel.Execute("vault.init", []ids.ID{pool}, packWindow(100, 200, 200)))
	assert.NoError(kernel.Execute("vault.open", []ids.ID{pool, position}, nil))

	// Before the window opens nothing passes.
	clock.Set(time.Unix(50, 0))
	err := kernel.Execute("vault.deposit", []ids.ID{pool, position}, packUint64(40))
	assert.ErrorIs(err, ErrPhaseViolation)

	// Inside the deposit window.
	clock.Set(time.Unix(199, 0))
	assert.NoError(kernel.Execute("vault.deposit", []ids.ID{pool, position}, packUint64(40)))
	err = kernel.Execute("vault.claim", []ids.ID{pool, position, receiver}, nil)
	assert.ErrorIs(err, ErrPhaseViolation)

	// At the boundary the deposit window is already closed.
	clock.Set(time.Unix(200, 0))
	err = kernel.Execute("vault.deposit", []ids.ID{pool, position}, packUint64(40))
	assert.ErrorIs(err, ErrPhaseViolation)

	// ... and the claim window is open.
	assert.NoError(kernel.Execute("vault.claim", []ids.ID{pool, position, receiver}, nil))

	// The reward landed on the receiver and the position cannot claim twice.
	paid := mustGet(t, kernel, receiver)
	assert.Equal(uint64(1_000), paid.Balance)

	err = kernel.Execute("vault.claim", []ids.ID{pool, position, receiver}, nil)
	assert.ErrorIs(err, errAlreadyClaimed)

	// The pool recorded exactly one deposit.
	poolEntity := UnmarshalPool(mustGet(t, kernel, pool).Data)
	assert.Equal(uint64(40), poolEntity.TotalDeposited)
}

// A rejected transition must leave no partial mutation behind.
func TestVaultAbortLeavesNoTrace(t *testing.T) {
	assert := assert.New(t)
	kernel, clock := newTestKernel(t)

	pool := ids.GenerateTestID()
	position := ids.GenerateTestID()

	assert.NoError(kernel.Execute("vault.init", []ids.ID{pool}, packWindow(100, 200, 200)))
	assert.NoError(kernel.Execute("vault.open", []ids.ID{pool, position}, nil))

	clock.Set(time.Unix(150, 0))
	assert.NoError(kernel.Execute("vault.deposit", []ids.ID{pool, position}, packUint64(10)))

	// Passing the pool where the position belongs aliases the two mutable
	// references; the transition dies before any buffer is touched.
	err := kernel.Execute("vault.deposit", []ids.ID{pool, pool}, packUint64(10))
	assert.ErrorIs(err, ErrAliasedAccounts)

	poolEntity := UnmarshalPool(mustGet(t, kernel, pool).Data)
	assert.Equal(uint64(10), poolEntity.TotalDeposited)
	positionEntity := UnmarshalPosition(mustGet(t, kernel, position).Data)
	assert.Equal(uint64(10), positionEntity.Deposited)
}

func TestOracleFlow(t *testing.T) {
	assert := assert.New(t)
	kernel, clock := newTestKernel(t)

	asset := ids.GenerateTestID()
	assert.NoError(kernel.Execute("oracle.init", []ids.ID{asset}, nil))

	publish := func(addr ids.ID, owner ids.ID, seq, value uint64) {
		assert.NoError(kernel.SetAccount(&Account{
			Address: addr,
			Owner:   owner,
			Balance: 1,
			Data:    MarshalFeed(&FeedEntity{Sequence: seq, Value: value}),
		}))
	}

	clock.SetSlot(1_000)
	publish(FeedAddress, FeedProvider, 999, 500)
	assert.NoError(kernel.Execute("oracle.refresh", []ids.ID{FeedAddress, asset}, nil))

	assetEntity := UnmarshalAsset(mustGet(t, kernel, asset).Data)
	assert.Equal(uint64(500), assetEntity.Value)
	assert.Equal(uint64(999), assetEntity.LastSequence)

	// A fresh-looking repost of an older sequence is a rollback; the stored
	// value survives untouched.
	publish(FeedAddress, FeedProvider, 999, 400)
	err := kernel.Execute("oracle.refresh", []ids.ID{FeedAddress, asset}, nil)
	assert.ErrorIs(err, ErrSequenceRollback)

	// A provider-owned feed at a different address never passes.
	shadow := ids.GenerateTestID()
	publish(shadow, FeedProvider, 1_000, 400)
	err = kernel.Execute("oracle.refresh", []ids.ID{shadow, asset}, nil)
	assert.ErrorIs(err, ErrNonCanonicalFeed)

	assetEntity = UnmarshalAsset(mustGet(t, kernel, asset).Data)
	assert.Equal(uint64(500), assetEntity.Value)
	assert.Equal(uint64(999), assetEntity.LastSequence)
}

func TestStakeFlow(t *testing.T) {
	assert := assert.New(t)
	kernel, _ := newTestKernel(t)

	pool := ids.GenerateTestID()
	authority := ids.GenerateTestID()
	members := []ids.ID{ids.GenerateTestID(), ids.GenerateTestID(), ids.GenerateTestID()}

	assert.NoError(kernel.Execute("stake.init", []ids.ID{pool, authority}, nil))
	for _, m := range members {
		assert.NoError(kernel.Execute("stake.join", []ids.ID{pool, m}, nil))
	}

	accounts := append([]ids.ID{pool, authority}, members...)

	assert.NoError(kernel.Execute("stake.deposit", accounts, packUint64(10)))

	shares := func() []uint64 {
		out := make([]uint64, len(members))
		for i, m := range members {
			out[i] = UnmarshalMember(mustGet(t, kernel, m).Data).Share
		}
		return out
	}
	assert.Equal([]uint64{4, 3, 3}, shares())

	assert.NoError(kernel.Execute("stake.withdraw", accounts, packUint64(4)))
	assert.Equal([]uint64{2, 2, 2}, shares())

	poolEntity := UnmarshalStakePool(mustGet(t, kernel, pool).Data)
	assert.Equal(uint64(6), poolEntity.TotalStake)

	// Only the pinned authority moves the total.
	intruder := append([]ids.ID{pool, ids.GenerateTestID()}, members...)
	err := kernel.Execute("stake.withdraw", intruder, packUint64(1))
	assert.ErrorIs(err, errWrongAuthority)

	// Overdraw fails whole.
	err = kernel.Execute("stake.withdraw", accounts, packUint64(7))
	assert.ErrorIs(err, ErrInsufficientTotal)
	assert.Equal([]uint64{2, 2, 2}, shares())

	// Listing one member twice is aliasing, not double weight.
	doubled := append([]ids.ID{pool, authority}, members[0], members[0], members[1])
	err = kernel.Execute("stake.deposit", doubled, packUint64(3))
	assert.ErrorIs(err, ErrAliasedAccounts)
}

func TestRegistryFlow(t *testing.T) {
	assert := assert.New(t)
	kernel, _ := newTestKernel(t)

	parent := ids.GenerateTestID()
	child := ids.GenerateTestID()
	receiver := ids.GenerateTestID()

	assert.NoError(kernel.Execute("registry.init", []ids.ID{parent}, nil))
	assert.NoError(kernel.Execute("registry.createChild", []ids.ID{parent, child}, nil))

	// The parent cannot close while the child lives.
	err := kernel.Execute("registry.closeParent", []ids.ID{parent, receiver}, nil)
	assert.ErrorIs(err, ErrDependentsExist)

	// Closing the child first unblocks the parent and refunds the balance.
	assert.NoError(kernel.Execute("registry.closeChild", []ids.ID{child, parent, receiver}, nil))
	assert.NoError(kernel.Execute("registry.closeParent", []ids.ID{parent, receiver}, nil))

	paid := mustGet(t, kernel, receiver)
	assert.Equal(2*minBalance, paid.Balance)

	// Both entity accounts are gone; a second close finds nothing, and a
	// closed parent cannot accept new dependents either.
	err = kernel.Execute("registry.closeParent", []ids.ID{parent, receiver}, nil)
	assert.ErrorIs(err, ErrParentUnavailable)
	err = kernel.Execute("registry.createChild", []ids.ID{parent, ids.GenerateTestID()}, nil)
	assert.ErrorIs(err, ErrParentUnavailable)
}

func TestRosterFlow(t *testing.T) {
	assert := assert.New(t)
	kernel, _ := newTestKernel(t)

	seed := []byte("employee-0001-profile-seed-bytes")
	assert.Len(seed, seedLen)

	person := Derive(seed, ProgramID)
	employee := ids.GenerateTestID()

	enroll := make([]byte, 0, seedLen+2*wrappers.LongLen)
	enroll = append(enroll, seed...)
	enroll = append(enroll, packUint64(30)...)
	enroll = append(enroll, packUint64(1_000)...)

	// Enrollment with a forged person address fails re-derivation.
	err := kernel.Execute("roster.enroll", []ids.ID{ids.GenerateTestID(), employee}, enroll)
	assert.ErrorIs(err, ErrInvalidDerivation)

	assert.NoError(kernel.Execute("roster.enroll", []ids.ID{person, employee}, enroll))

	// The sysvar slot is checked by address, not by shape.
	err = kernel.Execute("roster.promote", []ids.ID{ids.GenerateTestID(), person, employee}, packUint64(100))
	assert.ErrorIs(err, errWrongSysvar)

	// Swapping person and employee trips the discriminator check before any
	// field is read.
	err = kernel.Execute("roster.promote", []ids.ID{SysvarClock, employee, person}, packUint64(100))
	assert.ErrorIs(err, ErrTypeMismatch)

	// The same account cannot stand in for both roles.
	err = kernel.Execute("roster.promote", []ids.ID{SysvarClock, person, person}, packUint64(100))
	assert.ErrorIs(err, ErrAliasedAccounts)

	assert.NoError(kernel.Execute("roster.promote", []ids.ID{SysvarClock, person, employee}, packUint64(100)))

	employeeEntity := UnmarshalEmployee(mustGet(t, kernel, employee).Data)
	assert.Equal(uint64(1_100), employeeEntity.Salary)
	personEntity := UnmarshalPerson(mustGet(t, kernel, person).Data)
	assert.Equal(uint64(30), personEntity.Age)
}
