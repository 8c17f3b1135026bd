package permission

import (
	"fmt"

	"github.com/orris-inc/servicedesk/internal/domain/permission"
	vo "github.com/orris-inc/servicedesk/internal/domain/permission/value_objects"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
)

var (
	everyone    = authorization.AllRoles()
	staff       = authorization.StaffRoles
	managers    = authorization.ManagerRoles
	admins      = authorization.AdminRoles
	globalAdmin = []authorization.Role{authorization.RoleGlobalAdmin}
)

type grant struct {
	resource vo.Resource
	action   vo.Action
	roles    []authorization.Role
}

// defaultGrants mirrors the route gates. Finer checks (own tenant, own
// tickets, requester-only transitions) stay in the use cases.
var defaultGrants = []grant{
	{vo.ResourceUsers, vo.ActionRead, managers},
	{vo.ResourceUsers, vo.ActionWrite, admins},
	{vo.ResourceUsers, vo.ActionDelete, admins},
	{vo.ResourceAgents, vo.ActionRead, staff},

	{vo.ResourceTickets, vo.ActionRead, everyone},
	{vo.ResourceTickets, vo.ActionWrite, everyone},
	{vo.ResourceTickets, vo.ActionAssign, staff},
	{vo.ResourceTickets, vo.ActionDelete, admins},

	{vo.ResourceSLAPolicies, vo.ActionRead, managers},
	{vo.ResourceSLAPolicies, vo.ActionWrite, managers},
	{vo.ResourceSLAPolicies, vo.ActionDelete, managers},

	{vo.ResourceAssets, vo.ActionRead, staff},
	{vo.ResourceAssets, vo.ActionWrite, staff},
	{vo.ResourceAssets, vo.ActionAssign, staff},
	{vo.ResourceAssets, vo.ActionDelete, admins},

	{vo.ResourceArticles, vo.ActionRead, everyone},
	{vo.ResourceArticles, vo.ActionWrite, staff},
	{vo.ResourceArticles, vo.ActionDelete, managers},

	{vo.ResourceNotifications, vo.ActionAll, everyone},

	{vo.ResourceAnalytics, vo.ActionRead, staff},
	{vo.ResourceAnalytics, vo.ActionExport, managers},

	{vo.ResourceOrganizations, vo.ActionAll, globalAdmin},
	{vo.ResourceTenants, vo.ActionRead, admins},
	{vo.ResourceTenants, vo.ActionWrite, admins},
	{vo.ResourceTenants, vo.ActionDelete, globalAdmin},

	{vo.ResourceTicketTypes, vo.ActionRead, everyone},
	{vo.ResourceTicketTypes, vo.ActionWrite, admins},
	{vo.ResourceCustomFields, vo.ActionRead, everyone},
	{vo.ResourceCustomFields, vo.ActionWrite, admins},
}

// DefaultPolicies expands the grant table into one row per role.
func DefaultPolicies() []permission.Policy {
	var out []permission.Policy
	for _, g := range defaultGrants {
		for _, r := range g.roles {
			out = append(out, permission.Policy{Role: r.String(), Resource: g.resource, Action: g.action})
		}
	}
	return out
}

// InitDefaultPermissions makes sure every default row exists.
func InitDefaultPermissions(e permission.Enforcer) error {
	if err := e.AddPolicies(DefaultPolicies()); err != nil {
		return fmt.Errorf("failed to initialize default permissions: %w", err)
	}
	return nil
}
