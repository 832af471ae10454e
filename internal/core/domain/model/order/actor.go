package order

import (
	"fmt"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/errs"
)

// Role identifies which kind of party performed an action on an order.
type Role int

const (
	// RoleUnknown catches uninitialized Role values.
	RoleUnknown Role = iota
	// RoleCustomer is the ordering customer.
	RoleCustomer
	// RoleStoreOwner is the merchant that owns the order's store.
	RoleStoreOwner
	// RoleRider is the delivery rider.
	RoleRider
	// RoleAdmin is a platform operator.
	RoleAdmin
	// RoleSystem marks automated actions such as sweeper jobs.
	RoleSystem
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "unknown",
		RoleCustomer:   "customer",
		RoleStoreOwner: "store_owner",
		RoleRider:      "rider",
		RoleAdmin:      "admin",
		RoleSystem:     "system",
	}
}

// RoleFromString parses the persistence form of a role.
func RoleFromString(value string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == value {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", value))
}

// Validate checks that the Role is one of the defined parties.
func (r Role) Validate() error {
	if r <= RoleUnknown || r > RoleSystem {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the lowercase snake form used in persistence and APIs.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Actor is the authenticated party performing an order operation. It is
// recorded in every status history entry.
type Actor struct {
	id   kernel.UUID
	role Role
}

// NewActor creates an Actor with a validated identity and role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// ID returns the acting party's identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the acting party's role.
func (a Actor) Role() Role {
	return a.role
}

// Validate checks the actor carries a constructed identity and role.
func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return err
	}
	return a.role.Validate()
}
