// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerguard

import (
	"errors"
	"sync"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	safemath "github.com/ava-labs/avalanchego/utils/math"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/ava-labs/avalanchego/version"
)

const (
	Name = "ledgerguard"

	// feedMaxAge is the default maximum accepted feed age in slots.
	feedMaxAge = 3

	sysvarClockSize = wrappers.LongLen * 2
)

var Version = &version.Semantic{Major: 1, Minor: 0, Patch: 0}

// Transition is one guarded state transition. It receives the
// caller-declared ordered account list and the raw instruction payload, and
// either performs its mutation through the kernel's pending state or
// returns the first failing check. It must not mutate anything before every
// check has passed.
type Transition func(accounts []*Account, payload []byte) error

// Kernel drives the load/validate/mutate/store cycle for every transition.
// Each transition executes against a private pending view of the account
// store; a rejected transition is aborted wholesale and leaves no partial
// mutation behind.
type Kernel struct {
	lock sync.Mutex

	state      State
	clock      Clock
	feedPolicy FeedPolicy

	transitions map[string]Transition
}

func NewKernel(db database.Database, clock Clock) (*Kernel, error) {
	k := &Kernel{
		state: NewState(db),
		clock: clock,
		feedPolicy: FeedPolicy{
			Canonical: FeedAddress,
			Provider:  FeedProvider,
			MaxAge:    feedMaxAge,
		},
	}
	k.transitions = map[string]Transition{
		"vault.init":           k.vaultInit,
		"vault.open":           k.vaultOpen,
		"vault.deposit":        k.vaultDeposit,
		"vault.claim":          k.vaultClaim,
		"oracle.init":          k.oracleInit,
		"oracle.refresh":       k.oracleRefresh,
		"stake.init":           k.stakeInit,
		"stake.join":           k.stakeJoin,
		"stake.deposit":        k.stakeDeposit,
		"stake.withdraw":       k.stakeWithdraw,
		"registry.init":        k.registryInit,
		"registry.createChild": k.registryCreateChild,
		"registry.closeChild":  k.registryCloseChild,
		"registry.closeParent": k.registryCloseParent,
		"roster.enroll":        k.rosterEnroll,
		"roster.promote":       k.rosterPromote,
	}

	initialized, err := k.state.IsInitialized()
	if err != nil {
		return nil, err
	}
	if !initialized {
		log.Info("initializing ledgerguard kernel", "version", Version)
		if err := k.refreshSysvar(); err != nil {
			return nil, err
		}
		if err := k.state.SetInitialized(); err != nil {
			return nil, err
		}
		if err := k.state.Commit(); err != nil {
			return nil, err
		}
	}
	return k, nil
}

// SetFeedPolicy replaces the feed policy. Call before serving transitions.
func (k *Kernel) SetFeedPolicy(policy FeedPolicy) {
	k.lock.Lock()
	defer k.lock.Unlock()

	k.feedPolicy = policy
}

// Execute runs the named transition against the accounts at [addrs] with
// the raw [payload]. On any guard failure the pending state is abandoned
// and the failure kind is returned to the caller; nothing is retried.
func (k *Kernel) Execute(name string, addrs []ids.ID, payload []byte) error {
	k.lock.Lock()
	defer k.lock.Unlock()

	transition, ok := k.transitions[name]
	if !ok {
		return errUnknownTransition
	}

	if err := k.refreshSysvar(); err != nil {
		k.state.Abort()
		return err
	}

	accounts, err := k.loadAccounts(addrs)
	if err != nil {
		k.state.Abort()
		return err
	}

	if err := transition(accounts, payload); err != nil {
		k.state.Abort()
		log.Debug("transition rejected", "transition", name, "error", err)
		return err
	}

	if err := k.state.Commit(); err != nil {
		k.state.Abort()
		return err
	}
	log.Info("transition committed", "transition", name, "accounts", len(addrs))
	return nil
}

// GetAccount returns the committed account at [addr].
func (k *Kernel) GetAccount(addr ids.ID) (*Account, error) {
	k.lock.Lock()
	defer k.lock.Unlock()

	return k.state.GetAccount(addr)
}

// SetAccount writes an account directly, standing in for the host ledger's
// own bookkeeping (funding a wallet, a provider publishing a feed). Entity
// invariants are not checked here; transitions prove everything they read.
func (k *Kernel) SetAccount(acct *Account) error {
	k.lock.Lock()
	defer k.lock.Unlock()

	if err := k.state.PutAccount(acct); err != nil {
		k.state.Abort()
		return err
	}
	return k.state.Commit()
}

// Close flushes and closes the underlying database.
func (k *Kernel) Close() error {
	k.lock.Lock()
	defer k.lock.Unlock()

	return k.state.Close()
}

// loadAccounts snapshots each declared address once. Duplicate addresses
// resolve to the same snapshot, so a transition can never observe two
// diverging copies of one account; handlers that need distinctness prove it
// with VerifyDistinct.
func (k *Kernel) loadAccounts(addrs []ids.ID) ([]*Account, error) {
	seen := make(map[ids.ID]*Account, len(addrs))
	accounts := make([]*Account, len(addrs))
	for i, addr := range addrs {
		if acct, ok := seen[addr]; ok {
			accounts[i] = acct
			continue
		}
		acct, err := k.state.GetAccount(addr)
		switch {
		case err == nil:
		case errors.Is(err, database.ErrNotFound):
			// The host ledger reclaims closed addresses; an absent account
			// is the same as a closed one.
			acct = &Account{Address: addr}
		default:
			return nil, err
		}
		seen[addr] = acct
		accounts[i] = acct
	}
	return accounts, nil
}

// refreshSysvar writes the current clock reading into the sysvar account so
// transitions read time the same way they read any other declared account.
func (k *Kernel) refreshSysvar() error {
	p := wrappers.Packer{MaxSize: sysvarClockSize}
	p.PackLong(k.clock.Slot())
	p.PackLong(uint64(k.clock.Timestamp()))
	if p.Errored() {
		return p.Err
	}
	return k.state.PutAccount(&Account{
		Address: SysvarClock,
		Owner:   SysvarOwner,
		Balance: 1,
		Data:    p.Bytes,
	})
}

// createEntity claims a fresh account for a newly initialized entity.
func (k *Kernel) createEntity(acct *Account, data []byte) error {
	if acct.Exists() || len(acct.Data) != 0 {
		return errAccountInUse
	}
	acct.Owner = ProgramID
	acct.Balance = minBalance
	acct.Data = data
	return k.state.PutAccount(acct)
}

// closeEntity destroys [acct] and moves its balance to [receiver].
func (k *Kernel) closeEntity(acct *Account, receiver *Account) error {
	balance, err := safemath.Add64(receiver.Balance, acct.Balance)
	if err != nil {
		return err
	}
	receiver.Balance = balance
	if err := k.state.PutAccount(receiver); err != nil {
		return err
	}
	return k.state.DeleteAccount(acct.Address)
}

// unpackAmount reads a payload that is exactly one 8-byte amount.
func unpackAmount(payload []byte) (uint64, error) {
	p := wrappers.Packer{Bytes: payload}
	amount := p.UnpackLong()
	if p.Errored() || p.Offset != len(payload) {
		return 0, errInvalidPayload
	}
	return amount, nil
}
