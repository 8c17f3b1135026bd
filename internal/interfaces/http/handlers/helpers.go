package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

// actorAndID resolves the caller and a numeric path parameter, writing the
// error response when either is missing.
func actorAndID(c *gin.Context, param, entity string) (authorization.Actor, uint, bool) {
	actor, err := utils.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return authorization.Actor{}, 0, false
	}
	id, err := utils.ParseIDParam(c, param, entity)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return authorization.Actor{}, 0, false
	}
	return actor, id, true
}

// currentActor writes the 401 itself when there is no caller.
func currentActor(c *gin.Context) (authorization.Actor, bool) {
	actor, err := utils.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return authorization.Actor{}, false
	}
	return actor, true
}

// bindJSON writes the validation error itself when the body does not bind.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return false
	}
	return true
}
