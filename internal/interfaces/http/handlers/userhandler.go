package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/servicedesk/internal/application/user/dto"
	"github.com/orris-inc/servicedesk/internal/application/user/usecases"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

type listUsersUseCase interface {
	Execute(ctx context.Context, q usecases.ListUsersQuery) (*usecases.ListUsersResult, error)
}

type createUserUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateUserCommand) (*dto.UserDTO, error)
}

type getUserUseCase interface {
	Execute(ctx context.Context, actor authorization.Actor, userID uint) (*dto.UserDTO, error)
}

type updateUserUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateUserCommand) (*dto.UserDTO, error)
}

type setUserActiveUseCase interface {
	Execute(ctx context.Context, cmd usecases.SetUserActiveCommand) (*dto.UserDTO, error)
}

type setUserRolesUseCase interface {
	Execute(ctx context.Context, cmd usecases.SetUserRolesCommand) (*dto.UserDTO, error)
}

type deleteUserUseCase interface {
	Execute(ctx context.Context, actor authorization.Actor, userID uint) error
}

type listAgentsUseCase interface {
	Execute(ctx context.Context, actor authorization.Actor, tenantID *uint) ([]*dto.UserSummaryDTO, error)
}

// UserUseCases groups the use cases UserHandler depends on.
type UserUseCases struct {
	List      listUsersUseCase
	Create    createUserUseCase
	Get       getUserUseCase
	Update    updateUserUseCase
	SetActive setUserActiveUseCase
	SetRoles  setUserRolesUseCase
	Delete    deleteUserUseCase
	Agents    listAgentsUseCase
}

type UserHandler struct {
	uc     UserUseCases
	logger logger.Interface
}

func NewUserHandler(uc UserUseCases, logger logger.Interface) *UserHandler {
	return &UserHandler{uc: uc, logger: logger}
}

type CreateUserRequest struct {
	Email    string   `json:"email" binding:"required,email"`
	Name     string   `json:"name" binding:"required,max=100"`
	Password string   `json:"password" binding:"required,min=8,max=72"`
	Roles    []string `json:"roles" binding:"required,min=1"`
	TenantID *uint    `json:"tenant_id"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type SetRolesRequest struct {
	Roles []string `json:"roles" binding:"required,min=1"`
}

// ListUsers godoc
// @Summary List users
// @Security Bearer
// @Tags users
// @Produce json
// @Param role query string false "Role filter"
// @Param active query bool false "Active filter"
// @Param search query string false "Name or email"
// @Param tenant_id query int false "Tenant (global admins)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, err := utils.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	active, err := utils.ParseOptionalBoolQuery(c, "active")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	tenantID, err := utils.ParseOptionalUintQuery(c, "tenant_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	p := utils.ParsePagination(c)

	result, err := h.uc.List.Execute(c.Request.Context(), usecases.ListUsersQuery{
		Actor:    actor,
		TenantID: tenantID,
		Role:     c.Query("role"),
		Active:   active,
		Search:   c.Query("search"),
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Users, result.Total, result.Page, result.PageSize)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	actor, err := utils.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create user", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.uc.Create.Execute(c.Request.Context(), usecases.CreateUserCommand{
		Actor:    actor,
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Roles:    req.Roles,
		TenantID: req.TenantID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "User created successfully")
}

func (h *UserHandler) GetUser(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "user")
	if !ok {
		return
	}

	result, err := h.uc.Get.Execute(c.Request.Context(), actor, id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "user")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.uc.Update.Execute(c.Request.Context(), usecases.UpdateUserCommand{
		Actor:  actor,
		UserID: id,
		Name:   req.Name,
		Email:  req.Email,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User updated successfully", result)
}

func (h *UserHandler) ActivateUser(c *gin.Context) {
	h.setActive(c, true)
}

func (h *UserHandler) DeactivateUser(c *gin.Context) {
	h.setActive(c, false)
}

func (h *UserHandler) setActive(c *gin.Context, active bool) {
	actor, id, ok := actorAndID(c, "id", "user")
	if !ok {
		return
	}

	result, err := h.uc.SetActive.Execute(c.Request.Context(), usecases.SetUserActiveCommand{
		Actor:  actor,
		UserID: id,
		Active: active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	msg := "User deactivated"
	if active {
		msg = "User activated"
	}
	utils.SuccessResponse(c, http.StatusOK, msg, result)
}

func (h *UserHandler) SetRoles(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "user")
	if !ok {
		return
	}

	var req SetRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.uc.SetRoles.Execute(c.Request.Context(), usecases.SetUserRolesCommand{
		Actor:  actor,
		UserID: id,
		Roles:  req.Roles,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Roles updated", result)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "user")
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), actor, id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ListAgents serves the assignee picker.
func (h *UserHandler) ListAgents(c *gin.Context) {
	actor, err := utils.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	tenantID, err := utils.ParseOptionalUintQuery(c, "tenant_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Agents.Execute(c.Request.Context(), actor, tenantID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
