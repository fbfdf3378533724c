// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerguard

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
)

// The identity guard set. A transition handler runs these against its raw
// account list before any domain guard sees a reference; only proven,
// typed handles reach domain logic.

// VerifySysvar returns nil iff [acct] is the system parameter account at the
// known constant address [want]. Shape is never a substitute for address
// equality here: anyone can make an account that looks like a sysvar.
func VerifySysvar(acct *Account, want ids.ID) error {
	if acct.Address != want {
		return errWrongSysvar
	}
	return nil
}

// Derive maps ([seed], [program]) to the single canonical address for that
// pair. The mapping takes no other input, so there is no caller-suppliable
// tie-breaker to grind.
func Derive(seed []byte, program ids.ID) ids.ID {
	preimage := make([]byte, 0, addressLen+len(seed))
	preimage = append(preimage, program[:]...)
	preimage = append(preimage, seed...)
	return hashing.ComputeHash256Array(preimage)
}

// VerifyDerived re-derives the canonical address for ([seed], [program]) and
// compares it against the caller-supplied account. The caller's address is
// an input to the comparison, never to the derivation.
func VerifyDerived(acct *Account, seed []byte, program ids.ID) error {
	if acct.Address != Derive(seed, program) {
		return ErrInvalidDerivation
	}
	return nil
}

// VerifyDistinct returns nil iff all the given accounts have pairwise
// distinct addresses. Handlers that take two mutable references assuming
// they denote different entities must call this before the first mutable
// access, otherwise a write through one alias silently shows up through the
// other.
func VerifyDistinct(accts ...*Account) error {
	for i := 0; i < len(accts); i++ {
		for j := i + 1; j < len(accts); j++ {
			if accts[i].Address == accts[j].Address {
				return ErrAliasedAccounts
			}
		}
	}
	return nil
}

// VerifyOwned returns nil iff [acct] is owned by this program. Data written
// by a foreign program is not entity state, whatever its discriminator
// claims.
func VerifyOwned(acct *Account) error {
	if acct.Owner != ProgramID {
		return errForeignAccount
	}
	return nil
}
