package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/servicedesk/internal/application/sla/dto"
	"github.com/orris-inc/servicedesk/internal/application/sla/usecases"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

type slaPolicyService interface {
	List(ctx context.Context, actor authorization.Actor, tenantID *uint) ([]*dto.PolicyDTO, error)
	Create(ctx context.Context, cmd usecases.PolicyCommand) (*dto.PolicyDTO, error)
	Update(ctx context.Context, id uint, cmd usecases.PolicyCommand) (*dto.PolicyDTO, error)
	Delete(ctx context.Context, actor authorization.Actor, id uint) error
}

type SLAPolicyRequest struct {
	Name                 string `json:"name" binding:"required,max=100"`
	Priority             string `json:"priority" binding:"required,ticket_priority"`
	FirstResponseMinutes int    `json:"first_response_minutes" binding:"required,gt=0"`
	ResolutionMinutes    int    `json:"resolution_minutes" binding:"required,gt=0"`
	Active               *bool  `json:"active"`
	Default              bool   `json:"default"`
	TenantID             *uint  `json:"tenant_id"`
}

func (r *SLAPolicyRequest) toCommand(actor authorization.Actor) usecases.PolicyCommand {
	return usecases.PolicyCommand{
		Actor:                actor,
		Name:                 r.Name,
		Priority:             r.Priority,
		FirstResponseMinutes: r.FirstResponseMinutes,
		ResolutionMinutes:    r.ResolutionMinutes,
		Active:               r.Active,
		Default:              r.Default,
		TenantID:             r.TenantID,
	}
}

type SLAHandler struct {
	policies slaPolicyService
	logger   logger.Interface
}

func NewSLAHandler(policies slaPolicyService, logger logger.Interface) *SLAHandler {
	return &SLAHandler{policies: policies, logger: logger}
}

// ListPolicies returns the tenant's policies followed by the defaults.
func (h *SLAHandler) ListPolicies(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	tenantID, err := utils.ParseOptionalUintQuery(c, "tenant_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.policies.List(c.Request.Context(), actor, tenantID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreatePolicy godoc
// @Summary Create an SLA policy
// @Security Bearer
// @Tags sla
// @Accept json
// @Produce json
// @Param request body SLAPolicyRequest true "Policy"
// @Success 201 {object} utils.APIResponse{data=dto.PolicyDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse "Priority already covered"
// @Router /sla-policies [post]
func (h *SLAHandler) CreatePolicy(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req SLAPolicyRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.policies.Create(c.Request.Context(), req.toCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "SLA policy created successfully")
}

func (h *SLAHandler) UpdatePolicy(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "SLA policy")
	if !ok {
		return
	}
	var req SLAPolicyRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.policies.Update(c.Request.Context(), id, req.toCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "SLA policy updated successfully", result)
}

func (h *SLAHandler) DeletePolicy(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "SLA policy")
	if !ok {
		return
	}
	if err := h.policies.Delete(c.Request.Context(), actor, id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
