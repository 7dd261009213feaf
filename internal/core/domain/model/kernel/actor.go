package kernel

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Role is the capability class of an actor.
type Role int

const (
	RoleUnknown Role = iota
	RoleCustomer
	RoleOwner
	RoleAgent
	// RoleSystem is reserved for transitions projected by the service itself.
	RoleSystem
)

var roleNames = map[Role]string{
	RoleUnknown:  "unknown",
	RoleCustomer: "customer",
	RoleOwner:    "owner",
	RoleAgent:    "agent",
	RoleSystem:   "system",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return roleNames[RoleUnknown]
}

func (r Role) Validate() error {
	if r <= RoleUnknown || r > RoleSystem {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// ParseRole accepts the external role names. The system role cannot be
// claimed from outside.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer":
		return RoleCustomer, nil
	case "owner":
		return RoleOwner, nil
	case "agent":
		return RoleAgent, nil
	default:
		return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not an external role", s))
	}
}

var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("actor must be created via NewActor")

var systemActorID = UUID{id: [16]byte{15: 1}}

// Actor is the (id, role) pair of whoever performs an operation.
type Actor struct {
	id    UUID
	role  Role
	guard guard.ConstructorGuard
}

func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

// SystemActor performs projections driven by delivery progress.
func SystemActor() Actor {
	return Actor{id: systemActorID, role: RoleSystem, guard: guard.NewConstructorGuard()}
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) IsSystem() bool {
	return a.role == RoleSystem
}

// Is reports whether a has the given role and identity.
func (a Actor) Is(role Role, id UUID) bool {
	return a.role == role && a.id.IsEqual(id)
}

func (a Actor) String() string {
	return a.role.String() + " " + a.id.String()
}
