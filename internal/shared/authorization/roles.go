// Package authorization defines roles and the authenticated actor that use
// cases receive for access and tenant checks.
package authorization

import (
	"slices"
	"strings"
)

type Role string

const (
	RoleEndUser     Role = "END_USER"
	RoleAgent       Role = "AGENT"
	RoleITManager   Role = "IT_MANAGER"
	RoleAdmin       Role = "ADMIN"
	RoleGlobalAdmin Role = "GLOBAL_ADMIN"
)

var allRoles = []Role{RoleEndUser, RoleAgent, RoleITManager, RoleAdmin, RoleGlobalAdmin}

// StaffRoles may work tickets.
var StaffRoles = []Role{RoleAgent, RoleITManager, RoleAdmin, RoleGlobalAdmin}

// ManagerRoles may read reports and manage SLA policies.
var ManagerRoles = []Role{RoleITManager, RoleAdmin, RoleGlobalAdmin}

// AssignableRoles may be picked as ticket assignee.
var AssignableRoles = []Role{RoleAgent, RoleITManager, RoleAdmin}

// AdminRoles may manage users and configuration.
var AdminRoles = []Role{RoleAdmin, RoleGlobalAdmin}

func AllRoles() []Role {
	return slices.Clone(allRoles)
}

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	return slices.Contains(allRoles, r)
}

// ParseRole normalizes case and reports whether s names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.IsValid()
}

// Roles is a set-membership view over a user's role assignments.
type Roles []Role

func RolesFromStrings(ss []string) Roles {
	out := make(Roles, 0, len(ss))
	for _, s := range ss {
		if r, ok := ParseRole(s); ok && !slices.Contains(out, r) {
			out = append(out, r)
		}
	}
	return out
}

func (rs Roles) Has(r Role) bool {
	return slices.Contains(rs, r)
}

func (rs Roles) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if rs.Has(r) {
			return true
		}
	}
	return false
}

func (rs Roles) Strings() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}
