// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerguard

import (
	safemath "github.com/ava-labs/avalanchego/utils/math"
	"github.com/ava-labs/avalanchego/utils/wrappers"
)

// seedLen is the length of a roster enrollment seed.
const seedLen = 32

// PersonEntity and EmployeeEntity are two deliberately confusable kinds
// with identical field widths; only the discriminator tells them apart.
type PersonEntity struct {
	Age uint64
}

type EmployeeEntity struct {
	Salary uint64
}

// rosterEnroll creates a person and its employee record. Accounts:
// [person, employee]. Payload: seed, age, salary. The person's address must
// equal the canonical derivation of the seed under this program; the caller
// supplies no disambiguation input.
func (k *Kernel) rosterEnroll(accounts []*Account, payload []byte) error {
	if len(accounts) != 2 {
		return errWrongAccountCount
	}
	seed, age, salary, err := unpackEnroll(payload)
	if err != nil {
		return err
	}
	person, employee := accounts[0], accounts[1]

	if err := VerifyDistinct(person, employee); err != nil {
		return err
	}
	if err := VerifyDerived(person, seed, ProgramID); err != nil {
		return err
	}
	if err := k.createEntity(person, MarshalPerson(&PersonEntity{Age: age})); err != nil {
		return err
	}
	return k.createEntity(employee, MarshalEmployee(&EmployeeEntity{Salary: salary}))
}

// rosterPromote raises an employee's salary. Accounts:
// [clockSysvar, person, employee]. Payload: raise. The first account must
// be the clock sysvar by address, and both entity kinds are proven before
// any field past the discriminator is read.
func (k *Kernel) rosterPromote(accounts []*Account, payload []byte) error {
	if len(accounts) != 3 {
		return errWrongAccountCount
	}
	raise, err := unpackAmount(payload)
	if err != nil {
		return err
	}
	sysvar, person, employee := accounts[0], accounts[1], accounts[2]

	if err := VerifySysvar(sysvar, SysvarClock); err != nil {
		return err
	}
	if err := VerifyDistinct(person, employee); err != nil {
		return err
	}
	if err := VerifyOwned(person); err != nil {
		return err
	}
	if err := VerifyOwned(employee); err != nil {
		return err
	}
	if err := CheckKind(person.Data, KindPerson); err != nil {
		return err
	}
	if err := CheckKind(employee.Data, KindEmployee); err != nil {
		return err
	}

	employeeEntity := UnmarshalEmployee(employee.Data)
	salary, err := safemath.Add64(employeeEntity.Salary, raise)
	if err != nil {
		return err
	}
	employeeEntity.Salary = salary

	employee.Data = MarshalEmployee(employeeEntity)
	return k.state.PutAccount(employee)
}

// unpackEnroll reads a payload that is exactly a seed, an age and a salary.
func unpackEnroll(payload []byte) ([]byte, uint64, uint64, error) {
	p := wrappers.Packer{Bytes: payload}
	seed := p.UnpackFixedBytes(seedLen)
	age := p.UnpackLong()
	salary := p.UnpackLong()
	if p.Errored() || p.Offset != len(payload) {
		return nil, 0, 0, errInvalidPayload
	}
	return seed, age, salary, nil
}
