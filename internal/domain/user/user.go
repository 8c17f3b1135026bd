// Package user is the account aggregate: identity, credentials, tenant
// membership, and role assignments.
package user

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/orris-inc/servicedesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/biztime"
)

const maxNameLength = 100

type User struct {
	id           uint
	tenantID     *uint
	email        vo.Email
	name         string
	passwordHash string
	active       bool
	roles        authorization.Roles
	lastLoginAt  *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(email vo.Email, name, passwordHash string, tenantID *uint, roles authorization.Roles) (*User, error) {
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	now := biztime.NowUTC()
	u := &User{
		tenantID:     tenantID,
		email:        email,
		passwordHash: passwordHash,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}
	if err := u.setName(name); err != nil {
		return nil, err
	}
	if err := u.SetRoles(roles); err != nil {
		return nil, err
	}
	return u, nil
}

func ReconstructUser(
	id uint,
	tenantID *uint,
	email vo.Email,
	name, passwordHash string,
	active bool,
	roles authorization.Roles,
	lastLoginAt *time.Time,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		tenantID:     tenantID,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		active:       active,
		roles:        roles,
		lastLoginAt:  lastLoginAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uint                   { return u.id }
func (u *User) TenantID() *uint            { return u.tenantID }
func (u *User) Email() vo.Email            { return u.email }
func (u *User) Name() string               { return u.name }
func (u *User) PasswordHash() string       { return u.passwordHash }
func (u *User) IsActive() bool             { return u.active }
func (u *User) Roles() authorization.Roles { return append(authorization.Roles(nil), u.roles...) }
func (u *User) LastLoginAt() *time.Time    { return u.lastLoginAt }
func (u *User) CreatedAt() time.Time       { return u.createdAt }
func (u *User) UpdatedAt() time.Time       { return u.updatedAt }

func (u *User) SetID(id uint) { u.id = id }

func (u *User) HasRole(r authorization.Role) bool { return u.roles.Has(r) }

// Actor is the authorization view of the user.
func (u *User) Actor() authorization.Actor {
	return authorization.Actor{UserID: u.id, TenantID: u.tenantID, Roles: u.Roles()}
}

// SetRoles replaces all role assignments. Only GLOBAL_ADMIN may lack a tenant.
func (u *User) SetRoles(roles authorization.Roles) error {
	if len(roles) == 0 {
		return fmt.Errorf("at least one role is required")
	}
	seen := make(authorization.Roles, 0, len(roles))
	for _, r := range roles {
		if !r.IsValid() {
			return fmt.Errorf("invalid role: %s", r)
		}
		if !seen.Has(r) {
			seen = append(seen, r)
		}
	}
	if u.tenantID == nil && !seen.Has(authorization.RoleGlobalAdmin) {
		return fmt.Errorf("tenant is required unless the user is a global admin")
	}
	u.roles = seen
	u.touch()
	return nil
}

func (u *User) UpdateProfile(name string, email vo.Email) error {
	if err := u.setName(name); err != nil {
		return err
	}
	u.email = email
	u.touch()
	return nil
}

func (u *User) ChangePasswordHash(hash string) error {
	if hash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = hash
	u.touch()
	return nil
}

func (u *User) Activate() {
	u.active = true
	u.touch()
}

func (u *User) Deactivate() {
	u.active = false
	u.touch()
}

func (u *User) RecordLogin(at time.Time) {
	u.lastLoginAt = &at
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len([]rune(name)) > maxNameLength {
		return fmt.Errorf("name exceeds maximum length of %d characters", maxNameLength)
	}
	u.name = name
	return nil
}

func (u *User) touch() {
	u.updatedAt = biztime.NowUTC()
}
