package kernel

import (
	"fmt"

	"pedidos/internal/pkg/errs"
)

// Role is the coarse permission class of an authenticated caller.
// The boundary extracts it from the bearer credential; the core only
// consults it for authorization decisions.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer identifies a customer placing and cancelling orders.
	RoleCustomer

	// RoleDriver identifies a driver claiming and progressing orders.
	RoleDriver

	// RoleSystem identifies internal automation with full transition rights.
	RoleSystem
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "UNKNOWN",
		RoleCustomer: "CUSTOMER",
		RoleDriver:   "DRIVER",
		RoleSystem:   "SYSTEM",
	}
}

// ParseRole converts the wire representation ("CUSTOMER", "DRIVER", "SYSTEM")
// into a Role. Returns an error for unrecognized input.
func ParseRole(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// String returns the wire name of the role, or "UNKNOWN" for invalid values.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate reports an error for any role outside the defined set.
func (r Role) Validate() error {
	if r != RoleCustomer && r != RoleDriver && r != RoleSystem {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Caller is the authenticated identity an operation runs on behalf of.
// It carries only what the core needs for authorization: who the caller is
// and which role class they belong to. Token verification happens at the
// boundary; the core never sees the credential itself.
//
// Caller is immutable; construct instances via NewCaller.
type Caller struct {
	id   UUID
	role Role
}

// NewCaller creates a Caller after validating both the identity and the role.
func NewCaller(id UUID, role Role) (Caller, error) {
	if err := id.Validate(); err != nil {
		return Caller{}, err
	}
	if err := role.Validate(); err != nil {
		return Caller{}, err
	}

	return Caller{id: id, role: role}, nil
}

// NewSystemCaller creates a Caller for internal automation.
func NewSystemCaller() Caller {
	return Caller{id: NewUUID(), role: RoleSystem}
}

// ID returns the caller's identity.
func (c Caller) ID() UUID {
	return c.id
}

// Role returns the caller's permission class.
func (c Caller) Role() Role {
	return c.role
}

// IsSystem reports whether the caller is internal automation.
func (c Caller) IsSystem() bool {
	return c.role == RoleSystem
}

// IsDriver reports whether the caller is a driver.
func (c Caller) IsDriver() bool {
	return c.role == RoleDriver
}

// IsCustomer reports whether the caller is a customer.
func (c Caller) IsCustomer() bool {
	return c.role == RoleCustomer
}

// Validate reports an error for a zero-value or otherwise malformed caller.
func (c Caller) Validate() error {
	if err := c.id.Validate(); err != nil {
		return err
	}
	return c.role.Validate()
}
