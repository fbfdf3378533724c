// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerguard

import (
	"github.com/ava-labs/avalanchego/ids"
)

// Well-known addresses. These are the only identities a handler may trust
// by constant comparison; everything else the caller supplies is proven
// before use.
var (
	// ProgramID owns every entity account this kernel manages.
	ProgramID = ids.ID{'l', 'e', 'd', 'g', 'e', 'r', 'g', 'u', 'a', 'r', 'd'}

	// SysvarClock is the host-provided clock parameter account. Handlers
	// that take it compare the address against this constant, never the
	// account's shape.
	SysvarClock = ids.ID{'s', 'y', 's', 'v', 'a', 'r', '.', 'c', 'l', 'o', 'c', 'k'}

	// SysvarOwner owns the host-provided parameter accounts.
	SysvarOwner = ids.ID{'s', 'y', 's', 'v', 'a', 'r', '.', 'o', 'w', 'n', 'e', 'r'}

	// FeedAddress is the single canonical feed account this program trusts
	// for external values. Ownership by the provider alone is not enough;
	// the address itself is pinned.
	FeedAddress = ids.ID{'f', 'e', 'e', 'd', '.', 'c', 'a', 'n', 'o', 'n', 'i', 'c', 'a', 'l'}

	// FeedProvider is the program expected to own the canonical feed.
	FeedProvider = ids.ID{'o', 'r', 'a', 'c', 'l', 'e', '.', 'p', 'r', 'o', 'v', 'i', 'd', 'e', 'r'}
)

// minBalance funds every entity account the kernel creates. An account with
// a zero balance is closed from the kernel's point of view; closing an
// entity moves its balance to the caller-designated receiver.
const minBalance uint64 = 1_000_000

// Account is the kernel's view of one caller-supplied account reference: an
// address, the identity of the program that owns it, a balance, and the raw
// data buffer. Position in the caller's list never implies a role; handlers
// prove identity, ownership, derivation, uniqueness and type before reading
// past the discriminator.
type Account struct {
	Address ids.ID
	Owner   ids.ID
	Balance uint64
	Data    []byte
}

// Exists reports whether the account holds a live entity. The host ledger
// reclaims closed addresses, so an account with no balance is
// indistinguishable from one that was never created.
func (a *Account) Exists() bool {
	return a != nil && a.Balance > 0
}
