// Package identity models the platform users the fulfillment core acts for:
// customers placing orders and staff moving them through their lifecycle.
// Authentication lives outside the core; this package only carries the
// resolved identity and its privileges.
package identity

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Role is a privilege held by a user.
type Role int

const (
	RoleUnknown Role = iota
	RoleUser
	RoleAdmin
	RoleSuperAdmin
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	case RoleSuperAdmin:
		return "super_admin"
	case RoleUnknown:
		return "unknown"
	}
	return "unknown"
}

// ParseRole maps the stored role name back to a Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, nil
	case "admin":
		return RoleAdmin, nil
	case "super_admin":
		return RoleSuperAdmin, nil
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

// User is the identity consumed by the core. Region is the staff member's
// zone (or the customer's commune) used for order scoping and shipments.
type User struct {
	id       kernel.UUID
	fullName string
	email    string
	phone    string
	region   string
	roles    []Role
}

// NewUser validates the identifier and roles. A user without roles is a
// plain customer.
func NewUser(id kernel.UUID, fullName, email, phone, region string, roles ...Role) (*User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	for _, r := range roles {
		if r == RoleUnknown {
			return nil, errs.NewValueIsInvalidErrorWithCause("roles", errors.New("unknown role"))
		}
	}
	if len(roles) == 0 {
		roles = []Role{RoleUser}
	}

	return &User{
		id:       id,
		fullName: strings.TrimSpace(fullName),
		email:    strings.TrimSpace(email),
		phone:    strings.TrimSpace(phone),
		region:   strings.TrimSpace(region),
		roles:    slices.Clone(roles),
	}, nil
}

func (u *User) ID() kernel.UUID  { return u.id }
func (u *User) FullName() string { return u.fullName }
func (u *User) Email() string    { return u.email }
func (u *User) Phone() string    { return u.phone }
func (u *User) Region() string   { return u.region }
func (u *User) Roles() []Role    { return slices.Clone(u.roles) }

// HasRole reports whether the user holds r.
func (u *User) HasRole(r Role) bool {
	return u != nil && slices.Contains(u.roles, r)
}

// IsStaff reports whether the user may act on orders.
func (u *User) IsStaff() bool {
	return u.HasRole(RoleAdmin) || u.HasRole(RoleSuperAdmin)
}

// IsSuperAdmin reports whether the user sees orders across all regions.
func (u *User) IsSuperAdmin() bool {
	return u.HasRole(RoleSuperAdmin)
}
