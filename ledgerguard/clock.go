// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerguard

import (
	"github.com/ava-labs/avalanchego/utils/timer/mockable"
)

// Clock is the read-only accessor for the host ledger's logical clock:
// wall time for phase windows, a slot counter for feed freshness. Guards
// read it once per transition; it never moves mid-transition.
type Clock interface {
	Timestamp() int64
	Slot() uint64
}

var _ Clock = (*ChainClock)(nil)

// ChainClock is the host-side clock. The embedded mockable.Clock lets tests
// pin wall time; the slot counter is advanced by whatever drives the chain.
type ChainClock struct {
	mockable.Clock

	slot uint64
}

func (c *ChainClock) Timestamp() int64 {
	return c.Time().Unix()
}

func (c *ChainClock) Slot() uint64 {
	return c.slot
}

// SetSlot sets the current slot. Transitions are serialized by the kernel,
// so there is no concurrent reader to synchronize with.
func (c *ChainClock) SetSlot(slot uint64) {
	c.slot = slot
}
