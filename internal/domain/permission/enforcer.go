// Package permission describes the role → resource → action policy model
// used by the HTTP route gates.
package permission

import vo "github.com/orris-inc/servicedesk/internal/domain/permission/value_objects"

// Policy grants a role an action on a resource.
type Policy struct {
	Role     string
	Resource vo.Resource
	Action   vo.Action
}

// Enforcer answers whether any of the given roles may act on a resource.
type Enforcer interface {
	Enforce(roles []string, resource vo.Resource, action vo.Action) (bool, error)
	AddPolicies(policies []Policy) error
	RemovePolicy(p Policy) error
	Policies() ([]Policy, error)
	LoadPolicy() error
}
