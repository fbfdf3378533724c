// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerguard

import "errors"

// Rejection kinds surfaced to callers. Every kind is terminal: the kernel
// never retries a failed transition, and the first failing check aborts the
// whole transition before any mutation is committed.
var (
	ErrPhaseViolation    = errors.New("operation not permitted in the current phase")
	ErrNonCanonicalFeed  = errors.New("feed account is not the canonical feed")
	ErrUntrustedOwner    = errors.New("feed account is not owned by the trusted provider")
	ErrStaleData         = errors.New("feed data is older than the maximum accepted age")
	ErrSequenceRollback  = errors.New("feed sequence does not exceed the last accepted sequence")
	ErrInsufficientTotal = errors.New("withdrawal exceeds the distributed total")
	ErrParentUnavailable = errors.New("parent entity is closed or missing")
	ErrDependentsExist   = errors.New("parent entity still has live dependents")
	ErrCounterUnderflow  = errors.New("dependent counter is already zero")
	ErrAliasedAccounts   = errors.New("distinct account parameters alias the same address")
	ErrTypeMismatch      = errors.New("account data does not match the expected entity kind")
	ErrInvalidDerivation = errors.New("account address does not match its canonical derivation")
)

// Supporting failures that are not part of the guard taxonomy above.
var (
	errWrongSysvar       = errors.New("account is not the expected sysvar")
	errForeignAccount    = errors.New("account is not owned by this program")
	errWrongParent       = errors.New("dependent does not reference this parent")
	errWrongAuthority    = errors.New("authority does not match the pool authority")
	errEmptyMemberSet    = errors.New("distribution requires at least one member")
	errInvalidWindow     = errors.New("phase window is not strictly ordered")
	errInvalidPayload    = errors.New("invalid instruction payload")
	errAccountInUse      = errors.New("account already holds an entity")
	errAlreadyClaimed    = errors.New("reward already claimed")
	errUnknownTransition = errors.New("unknown transition")
	errWrongAccountCount = errors.New("unexpected number of accounts")
)
