// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerguard

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
)

// Entity layouts are fixed-offset: a 1-byte discriminator, then 8-byte
// big-endian integers and 32-byte addresses. Unmarshal functions assume
// CheckKind has already accepted the buffer.
const (
	addressLen = 32 // ids.ID length

	poolSize      = 1 + wrappers.LongLen*4
	positionSize  = 1 + wrappers.LongLen + wrappers.ByteLen
	feedSize      = 1 + wrappers.LongLen*2
	assetSize     = 1 + wrappers.LongLen*2
	stakePoolSize = 1 + addressLen + wrappers.LongLen
	memberSize    = 1 + wrappers.LongLen
	parentSize    = 1 + wrappers.LongLen
	childSize     = 1 + addressLen
	personSize    = 1 + wrappers.LongLen
	employeeSize  = 1 + wrappers.LongLen
)

func newPacker(size int) wrappers.Packer {
	return wrappers.Packer{MaxSize: size, Bytes: make([]byte, 0, size)}
}

func MarshalPool(p *PoolEntity) []byte {
	pk := newPacker(poolSize)
	pk.PackByte(byte(KindPool))
	pk.PackLong(uint64(p.Window.Start))
	pk.PackLong(uint64(p.Window.End))
	pk.PackLong(uint64(p.Window.ClaimOpen))
	pk.PackLong(p.TotalDeposited)
	return pk.Bytes
}

func UnmarshalPool(raw []byte) *PoolEntity {
	pk := wrappers.Packer{Bytes: raw, Offset: 1}
	return &PoolEntity{
		Window: Window{
			Start:     int64(pk.UnpackLong()),
			End:       int64(pk.UnpackLong()),
			ClaimOpen: int64(pk.UnpackLong()),
		},
		TotalDeposited: pk.UnpackLong(),
	}
}

func MarshalPosition(p *PositionEntity) []byte {
	pk := newPacker(positionSize)
	pk.PackByte(byte(KindPosition))
	pk.PackLong(p.Deposited)
	pk.PackBool(p.Claimed)
	return pk.Bytes
}

func UnmarshalPosition(raw []byte) *PositionEntity {
	pk := wrappers.Packer{Bytes: raw, Offset: 1}
	return &PositionEntity{
		Deposited: pk.UnpackLong(),
		Claimed:   pk.UnpackBool(),
	}
}

func MarshalFeed(f *FeedEntity) []byte {
	pk := newPacker(feedSize)
	pk.PackByte(byte(KindFeed))
	pk.PackLong(f.Sequence)
	pk.PackLong(f.Value)
	return pk.Bytes
}

func UnmarshalFeed(raw []byte) *FeedEntity {
	pk := wrappers.Packer{Bytes: raw, Offset: 1}
	return &FeedEntity{
		Sequence: pk.UnpackLong(),
		Value:    pk.UnpackLong(),
	}
}

func MarshalAsset(a *AssetEntity) []byte {
	pk := newPacker(assetSize)
	pk.PackByte(byte(KindAsset))
	pk.PackLong(a.Value)
	pk.PackLong(a.LastSequence)
	return pk.Bytes
}

func UnmarshalAsset(raw []byte) *AssetEntity {
	pk := wrappers.Packer{Bytes: raw, Offset: 1}
	return &AssetEntity{
		Value:        pk.UnpackLong(),
		LastSequence: pk.UnpackLong(),
	}
}

func MarshalStakePool(s *StakePoolEntity) []byte {
	pk := newPacker(stakePoolSize)
	pk.PackByte(byte(KindStakePool))
	pk.PackFixedBytes(s.Authority[:])
	pk.PackLong(s.TotalStake)
	return pk.Bytes
}

func UnmarshalStakePool(raw []byte) *StakePoolEntity {
	pk := wrappers.Packer{Bytes: raw, Offset: 1}
	s := &StakePoolEntity{}
	copy(s.Authority[:], pk.UnpackFixedBytes(addressLen))
	s.TotalStake = pk.UnpackLong()
	return s
}

func MarshalMember(m *MemberEntity) []byte {
	pk := newPacker(memberSize)
	pk.PackByte(byte(KindMember))
	pk.PackLong(m.Share)
	return pk.Bytes
}

func UnmarshalMember(raw []byte) *MemberEntity {
	pk := wrappers.Packer{Bytes: raw, Offset: 1}
	return &MemberEntity{Share: pk.UnpackLong()}
}

func MarshalParent(p *ParentEntity) []byte {
	pk := newPacker(parentSize)
	pk.PackByte(byte(KindParent))
	pk.PackLong(p.ChildCount)
	return pk.Bytes
}

func UnmarshalParent(raw []byte) *ParentEntity {
	pk := wrappers.Packer{Bytes: raw, Offset: 1}
	return &ParentEntity{ChildCount: pk.UnpackLong()}
}

func MarshalChild(c *ChildEntity) []byte {
	pk := newPacker(childSize)
	pk.PackByte(byte(KindChild))
	pk.PackFixedBytes(c.Parent[:])
	return pk.Bytes
}

func UnmarshalChild(raw []byte) *ChildEntity {
	pk := wrappers.Packer{Bytes: raw, Offset: 1}
	c := &ChildEntity{}
	copy(c.Parent[:], pk.UnpackFixedBytes(addressLen))
	return c
}

func MarshalPerson(p *PersonEntity) []byte {
	pk := newPacker(personSize)
	pk.PackByte(byte(KindPerson))
	pk.PackLong(p.Age)
	return pk.Bytes
}

func UnmarshalPerson(raw []byte) *PersonEntity {
	pk := wrappers.Packer{Bytes: raw, Offset: 1}
	return &PersonEntity{Age: pk.UnpackLong()}
}

func MarshalEmployee(e *EmployeeEntity) []byte {
	pk := newPacker(employeeSize)
	pk.PackByte(byte(KindEmployee))
	pk.PackLong(e.Salary)
	return pk.Bytes
}

func UnmarshalEmployee(raw []byte) *EmployeeEntity {
	pk := wrappers.Packer{Bytes: raw, Offset: 1}
	return &EmployeeEntity{Salary: pk.UnpackLong()}
}
