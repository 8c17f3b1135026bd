package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/constants"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
)

// SetActor stores the authenticated caller on the request context.
func SetActor(c *gin.Context, actor authorization.Actor) {
	c.Set(constants.ContextKeyActor, actor)
	c.Set(constants.ContextKeyUserID, actor.UserID)
	c.Set(constants.ContextKeyRoles, actor.Roles.Strings())
	if actor.TenantID != nil {
		c.Set(constants.ContextKeyTenantID, *actor.TenantID)
	}
}

// CurrentActor returns the caller set by the auth middleware.
func CurrentActor(c *gin.Context) (authorization.Actor, error) {
	v, ok := c.Get(constants.ContextKeyActor)
	if !ok {
		return authorization.Actor{}, errors.NewUnauthorizedError("User not authenticated")
	}
	actor, ok := v.(authorization.Actor)
	if !ok || actor.UserID == 0 {
		return authorization.Actor{}, errors.NewUnauthorizedError("User not authenticated")
	}
	return actor, nil
}
