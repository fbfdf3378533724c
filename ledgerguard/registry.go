// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerguard

// registryInit creates a parent with no dependents. Accounts: [parent].
func (k *Kernel) registryInit(accounts []*Account, payload []byte) error {
	if len(accounts) != 1 {
		return errWrongAccountCount
	}
	if len(payload) != 0 {
		return errInvalidPayload
	}
	return k.createEntity(accounts[0], MarshalParent(&ParentEntity{}))
}

// registryCreateChild creates a dependent referencing a parent and
// increments the parent's counter in the same transition. Accounts:
// [parent, child].
func (k *Kernel) registryCreateChild(accounts []*Account, payload []byte) error {
	if len(accounts) != 2 {
		return errWrongAccountCount
	}
	if len(payload) != 0 {
		return errInvalidPayload
	}
	parent, child := accounts[0], accounts[1]

	if err := VerifyDistinct(parent, child); err != nil {
		return err
	}
	if !parent.Exists() {
		return ErrParentUnavailable
	}
	if err := VerifyOwned(parent); err != nil {
		return err
	}

	parentEntity, childEntity, err := CreateDependent(parent)
	if err != nil {
		return err
	}
	if err := k.createEntity(child, MarshalChild(childEntity)); err != nil {
		return err
	}
	parent.Data = MarshalParent(parentEntity)
	return k.state.PutAccount(parent)
}

// registryCloseChild destroys a dependent, decrementing its parent's
// counter and moving the dependent's balance to the receiver. Accounts:
// [child, parent, receiver].
func (k *Kernel) registryCloseChild(accounts []*Account, payload []byte) error {
	if len(accounts) != 3 {
		return errWrongAccountCount
	}
	if len(payload) != 0 {
		return errInvalidPayload
	}
	child, parent, receiver := accounts[0], accounts[1], accounts[2]

	if err := VerifyDistinct(child, parent, receiver); err != nil {
		return err
	}
	if err := VerifyOwned(child); err != nil {
		return err
	}

	parentEntity, err := CloseDependent(child, parent)
	if err != nil {
		return err
	}
	parent.Data = MarshalParent(parentEntity)
	if err := k.state.PutAccount(parent); err != nil {
		return err
	}
	return k.closeEntity(child, receiver)
}

// registryCloseParent destroys a parent with no live dependents, moving its
// balance to the receiver. Accounts: [parent, receiver].
func (k *Kernel) registryCloseParent(accounts []*Account, payload []byte) error {
	if len(accounts) != 2 {
		return errWrongAccountCount
	}
	if len(payload) != 0 {
		return errInvalidPayload
	}
	parent, receiver := accounts[0], accounts[1]

	if err := VerifyDistinct(parent, receiver); err != nil {
		return err
	}
	if !parent.Exists() {
		return ErrParentUnavailable
	}
	if err := VerifyOwned(parent); err != nil {
		return err
	}
	if err := CloseParent(parent); err != nil {
		return err
	}
	return k.closeEntity(parent, receiver)
}
