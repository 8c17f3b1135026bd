package usecases

import (
	"context"

	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

// loadUser returns the target user when the actor's tenant can see it.
// Users of other tenants are reported as not found.
func loadUser(ctx context.Context, repo user.Repository, log logger.Interface, actor authorization.Actor, id uint) (*user.User, error) {
	u, err := repo.GetByID(ctx, id)
	if err != nil {
		log.Errorw("failed to get user", "user_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get user")
	}
	if u == nil || !actor.CanAccessTenant(u.TenantID()) {
		return nil, errors.NewNotFoundError("user not found")
	}
	// a tenant admin cannot reach a global admin account
	if u.HasRole(authorization.RoleGlobalAdmin) && !actor.IsGlobalAdmin() {
		return nil, errors.NewNotFoundError("user not found")
	}
	return u, nil
}

func parseRoles(raw []string) (authorization.Roles, error) {
	roles := make(authorization.Roles, 0, len(raw))
	for _, s := range raw {
		r, ok := authorization.ParseRole(s)
		if !ok {
			return nil, errors.NewValidationError("invalid role: " + s)
		}
		if !roles.Has(r) {
			roles = append(roles, r)
		}
	}
	if len(roles) == 0 {
		return nil, errors.NewValidationError("at least one role is required")
	}
	return roles, nil
}

func checkGrant(actor authorization.Actor, roles authorization.Roles) error {
	if roles.Has(authorization.RoleGlobalAdmin) && !actor.IsGlobalAdmin() {
		return errors.NewForbiddenError("only a global admin may grant GLOBAL_ADMIN")
	}
	return nil
}
