// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerguard

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/database/versiondb"
)

var (
	// These are prefixes for db keys.
	// It's important to set different prefixes for each separate database objects.
	singletonStatePrefix = []byte("singleton")
	accountStatePrefix   = []byte("account")

	_ State = (*state)(nil)
)

// State wraps the account store and the singleton initialization flag behind
// a version layer. Every transition's writes are pending until Commit;
// Abort discards them, which is what makes a rejected transition leave no
// partial mutation behind.
type State interface {
	InitializedState
	AccountState

	Commit() error
	Abort()
	Close() error
}

type state struct {
	InitializedState
	AccountState

	baseDB *versiondb.Database
}

func NewState(db database.Database) State {
	// create a new baseDB
	baseDB := versiondb.New(db)

	// create a prefixed "singletonDB" from baseDB
	singletonDB := prefixdb.New(singletonStatePrefix, baseDB)
	// create a prefixed "accountDB" from baseDB
	accountDB := prefixdb.New(accountStatePrefix, baseDB)

	// return state with created sub state components
	return &state{
		InitializedState: NewInitializedState(singletonDB),
		AccountState:     NewAccountState(accountDB),
		baseDB:           baseDB,
	}
}

// Commit commits pending operations to baseDB
func (s *state) Commit() error {
	return s.baseDB.Commit()
}

// Abort discards pending operations
func (s *state) Abort() {
	s.baseDB.Abort()
}

// Close closes the underlying base database
func (s *state) Close() error {
	return s.baseDB.Close()
}
