// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerguard

// Kind is the leading discriminator byte of every entity buffer. A buffer is
// only interpreted as kind K after its discriminator and minimum length have
// been checked against K's registration.
type Kind byte

const (
	KindPool Kind = 0x01 + iota
	KindPosition
	KindFeed
	KindAsset
	KindStakePool
	KindMember
	KindParent
	KindChild
	KindPerson
	KindEmployee
)

// kindSizes maps each registered kind to the exact encoded length of its
// fixed-offset layout, discriminator byte included. All validated entities
// have fixed layouts; there are no dynamic-length fields.
var kindSizes = map[Kind]int{
	KindPool:      poolSize,
	KindPosition:  positionSize,
	KindFeed:      feedSize,
	KindAsset:     assetSize,
	KindStakePool: stakePoolSize,
	KindMember:    memberSize,
	KindParent:    parentSize,
	KindChild:     childSize,
	KindPerson:    personSize,
	KindEmployee:  employeeSize,
}

func (k Kind) String() string {
	switch k {
	case KindPool:
		return "pool"
	case KindPosition:
		return "position"
	case KindFeed:
		return "feed"
	case KindAsset:
		return "asset"
	case KindStakePool:
		return "stakePool"
	case KindMember:
		return "member"
	case KindParent:
		return "parent"
	case KindChild:
		return "child"
	case KindPerson:
		return "person"
	case KindEmployee:
		return "employee"
	default:
		return "unknown"
	}
}

// CheckKind verifies that [data] carries kind [k]'s discriminator and meets
// its minimum length. It must be called before any typed read or write of
// the bytes past the discriminator; on mismatch nothing beyond data[0] has
// been looked at.
func CheckKind(data []byte, k Kind) error {
	size, ok := kindSizes[k]
	if !ok {
		return ErrTypeMismatch
	}
	if len(data) < size {
		return ErrTypeMismatch
	}
	if Kind(data[0]) != k {
		return ErrTypeMismatch
	}
	return nil
}
