package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/servicedesk/internal/domain/permission"
	vo "github.com/orris-inc/servicedesk/internal/domain/permission/value_objects"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

type PermissionMiddleware struct {
	enforcer permission.Enforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer permission.Enforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// RequirePermission checks the caller's roles against the casbin policy.
func (m *PermissionMiddleware) RequirePermission(resource vo.Resource, action vo.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := utils.CurrentActor(c)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		allowed, err := m.enforcer.Enforce(actor.Roles.Strings(), resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "user_id", actor.UserID, "resource", resource, "action", action)
			utils.ErrorResponseWithError(c, errors.NewInternalError("permission check failed"))
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied", "user_id", actor.UserID, "roles", actor.Roles.Strings(), "resource", resource, "action", action)
			utils.ErrorResponseWithError(c, errors.NewInsufficientPermissionsError())
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAnyRole passes when the caller holds at least one of roles.
func RequireAnyRole(roles ...authorization.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := utils.CurrentActor(c)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		if !actor.Roles.HasAny(roles...) {
			utils.ErrorResponseWithError(c, errors.NewInsufficientPermissionsError())
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireRole passes when the caller holds role.
func RequireRole(role authorization.Role) gin.HandlerFunc {
	return RequireAnyRole(role)
}
