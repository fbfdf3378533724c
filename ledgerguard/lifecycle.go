// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerguard

import (
	"github.com/ava-labs/avalanchego/ids"
	safemath "github.com/ava-labs/avalanchego/utils/math"
)

// ParentEntity tracks how many live dependents reference it. The counter,
// not a ban on address reuse, is what keeps a reclaimed address from being
// mistaken for the entity a dependent still points at: the parent cannot be
// closed while the counter is nonzero.
type ParentEntity struct {
	ChildCount uint64
}

// ChildEntity references exactly one parent by address.
type ChildEntity struct {
	Parent ids.ID
}

// CreateDependent returns the parent with its counter incremented and a new
// dependent referencing it. The caller persists both in the same transition;
// the increment and the creation are never observable separately.
func CreateDependent(parent *Account) (*ParentEntity, *ChildEntity, error) {
	if !parent.Exists() {
		return nil, nil, ErrParentUnavailable
	}
	if err := CheckKind(parent.Data, KindParent); err != nil {
		return nil, nil, err
	}

	entity := UnmarshalParent(parent.Data)
	count, err := safemath.Add64(entity.ChildCount, 1)
	if err != nil {
		return nil, nil, err
	}
	entity.ChildCount = count

	return entity, &ChildEntity{Parent: parent.Address}, nil
}

// CloseDependent validates the child's back-reference against [parent] and
// returns the parent with its counter decremented. The caller persists the
// parent and destroys the child in the same transition.
func CloseDependent(child *Account, parent *Account) (*ParentEntity, error) {
	if !parent.Exists() {
		return nil, ErrParentUnavailable
	}
	if parent.Owner != child.Owner {
		return nil, errForeignAccount
	}
	if err := CheckKind(child.Data, KindChild); err != nil {
		return nil, err
	}
	if err := CheckKind(parent.Data, KindParent); err != nil {
		return nil, err
	}
	if UnmarshalChild(child.Data).Parent != parent.Address {
		return nil, errWrongParent
	}

	entity := UnmarshalParent(parent.Data)
	if entity.ChildCount == 0 {
		// A live child referencing a zero-count parent means bookkeeping
		// was already violated somewhere; refuse to make it worse.
		return nil, ErrCounterUnderflow
	}
	entity.ChildCount--
	return entity, nil
}

// CloseParent returns nil iff [parent] may be destroyed: it must exist and
// have no live dependents.
func CloseParent(parent *Account) error {
	if !parent.Exists() {
		return ErrParentUnavailable
	}
	if err := CheckKind(parent.Data, KindParent); err != nil {
		return err
	}
	if UnmarshalParent(parent.Data).ChildCount != 0 {
		return ErrDependentsExist
	}
	return nil
}
