// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerguard

import (
	"github.com/ava-labs/avalanchego/ids"
	safemath "github.com/ava-labs/avalanchego/utils/math"
)

// StakePoolEntity holds the global total and the identity allowed to move it.
type StakePoolEntity struct {
	Authority  ids.ID
	TotalStake uint64
}

// MemberEntity holds one member's share of the pool total.
type MemberEntity struct {
	Share uint64
}

// ApplyDelta applies [delta] to [total] and recomputes all [n] member shares
// from scratch. Deposits and withdrawals mutate only the total and then
// invoke this full recomputation; no operation writes a single member's
// share directly, so sum(shares) == newTotal holds by construction after
// every call.
func ApplyDelta(total uint64, delta int64, n int) (uint64, []uint64, error) {
	if n <= 0 {
		return 0, nil, errEmptyMemberSet
	}

	var (
		newTotal uint64
		err      error
	)
	if delta >= 0 {
		newTotal, err = safemath.Add64(total, uint64(delta))
		if err != nil {
			return 0, nil, err
		}
	} else {
		newTotal, err = safemath.Sub(total, uint64(-delta))
		if err != nil {
			return 0, nil, ErrInsufficientTotal
		}
	}
	return newTotal, Split(newTotal, n), nil
}

// Split divides [total] into [n] shares: every member gets total/n, and the
// remainder is assigned one unit each to the lowest-indexed members. Member
// ordering is the caller's declared account order, which is stable across
// the recomputation.
func Split(total uint64, n int) []uint64 {
	base := total / uint64(n)
	remainder := total % uint64(n)

	shares := make([]uint64, n)
	for i := range shares {
		shares[i] = base
		if uint64(i) < remainder {
			shares[i]++
		}
	}
	return shares
}
