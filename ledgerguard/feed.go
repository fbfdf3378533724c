// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerguard

import (
	"github.com/ava-labs/avalanchego/ids"
	safemath "github.com/ava-labs/avalanchego/utils/math"
)

// FeedEntity is the provider-owned record presented to the kernel: the slot
// the value was published at and the value itself.
type FeedEntity struct {
	Sequence uint64
	Value    uint64
}

// AssetEntity is this program's record of the last accepted feed update.
// Value and LastSequence are only ever written together.
type AssetEntity struct {
	Value        uint64
	LastSequence uint64
}

// FeedPolicy pins the single feed a program trusts. Canonical is the feed
// account's address; ownership by Provider alone is explicitly insufficient,
// since the provider may own many look-alike feeds.
type FeedPolicy struct {
	Canonical ids.ID
	Provider  ids.ID
	MaxAge    uint64
}

// Validate accepts the presented feed account iff it is the canonical feed,
// owned by the trusted provider, no older than MaxAge slots, and strictly
// newer than the last accepted sequence. Freshness alone only proves the
// value was valid at some past point; monotonicity is the orthogonal
// property that makes it the latest known value. The checks run in order and
// the first failure is returned.
func (p FeedPolicy) Validate(feed *Account, lastSequence uint64, currentSlot uint64) (*FeedEntity, error) {
	if feed.Address != p.Canonical {
		return nil, ErrNonCanonicalFeed
	}
	if feed.Owner != p.Provider {
		return nil, ErrUntrustedOwner
	}
	if err := CheckKind(feed.Data, KindFeed); err != nil {
		return nil, err
	}
	record := UnmarshalFeed(feed.Data)

	// A sequence from the future fails the same way a stale one does.
	age, err := safemath.Sub(currentSlot, record.Sequence)
	if err != nil || age > p.MaxAge {
		return nil, ErrStaleData
	}
	if record.Sequence <= lastSequence {
		return nil, ErrSequenceRollback
	}
	return record, nil
}

// Accept replaces the asset's value and sequence as one operation. Callers
// must never store one field without the other.
func (a *AssetEntity) Accept(record *FeedEntity) {
	a.Value = record.Value
	a.LastSequence = record.Sequence
}
