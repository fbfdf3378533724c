// (c) 2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerguard

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/wrappers"
)

const (
	// maxAccountSize bounds an encoded account record: owner, balance and a
	// data buffer. Validated entity layouts are far smaller.
	maxAccountSize = addressLen + wrappers.LongLen + wrappers.IntLen + 1024
)

var _ AccountState = (*accountState)(nil)

// AccountState is the narrow read/write interface the kernel needs from the
// host ledger's account storage.
type AccountState interface {
	GetAccount(addr ids.ID) (*Account, error)
	PutAccount(acct *Account) error
	DeleteAccount(addr ids.ID) error
}

type accountState struct {
	accountDB database.Database
}

func NewAccountState(db database.Database) AccountState {
	return &accountState{
		accountDB: db,
	}
}

func (s *accountState) GetAccount(addr ids.ID) (*Account, error) {
	raw, err := s.accountDB.Get(addr[:])
	if err != nil {
		return nil, err
	}

	p := wrappers.Packer{Bytes: raw}
	acct := &Account{Address: addr}
	copy(acct.Owner[:], p.UnpackFixedBytes(addressLen))
	acct.Balance = p.UnpackLong()
	acct.Data = p.UnpackBytes()
	if p.Errored() {
		return nil, p.Err
	}
	return acct, nil
}

func (s *accountState) PutAccount(acct *Account) error {
	p := wrappers.Packer{MaxSize: maxAccountSize}
	p.PackFixedBytes(acct.Owner[:])
	p.PackLong(acct.Balance)
	p.PackBytes(acct.Data)
	if p.Errored() {
		return p.Err
	}
	return s.accountDB.Put(acct.Address[:], p.Bytes)
}

func (s *accountState) DeleteAccount(addr ids.ID) error {
	return s.accountDB.Delete(addr[:])
}
