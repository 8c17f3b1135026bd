package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/servicedesk/internal/application/tenant/dto"
	"github.com/orris-inc/servicedesk/internal/application/tenant/usecases"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

type organizationService interface {
	Create(ctx context.Context, cmd usecases.OrganizationCommand) (*dto.OrganizationDTO, error)
	List(ctx context.Context, page, pageSize int) ([]*dto.OrganizationDTO, int64, error)
	Get(ctx context.Context, id uint) (*dto.OrganizationDTO, error)
	Update(ctx context.Context, id uint, cmd usecases.OrganizationCommand) (*dto.OrganizationDTO, error)
	Delete(ctx context.Context, id uint) error
}

type tenantService interface {
	Create(ctx context.Context, cmd usecases.CreateTenantCommand) (*dto.TenantDTO, error)
	List(ctx context.Context, q usecases.ListTenantsQuery) ([]*dto.TenantDTO, int64, error)
	Get(ctx context.Context, actor authorization.Actor, id uint) (*dto.TenantDTO, error)
	Rename(ctx context.Context, actor authorization.Actor, id uint, name string) (*dto.TenantDTO, error)
	SetActive(ctx context.Context, actor authorization.Actor, id uint, active bool) (*dto.TenantDTO, error)
}

// TenantHandler serves organizations and tenants.
type TenantHandler struct {
	organizations organizationService
	tenants       tenantService
	logger        logger.Interface
}

func NewTenantHandler(organizations organizationService, tenants tenantService, logger logger.Interface) *TenantHandler {
	return &TenantHandler{organizations: organizations, tenants: tenants, logger: logger}
}

type OrganizationRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
	Active      *bool  `json:"active"`
}

type CreateTenantRequest struct {
	OrganizationID uint   `json:"organization_id" binding:"required"`
	Code           string `json:"code" binding:"required,min=2,max=50"`
	Name           string `json:"name" binding:"required,max=100"`
}

type UpdateTenantRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

func (h *TenantHandler) ListOrganizations(c *gin.Context) {
	p := utils.ParsePagination(c)
	items, total, err := h.organizations.List(c.Request.Context(), p.Page, p.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, items, total, p.Page, p.PageSize)
}

func (h *TenantHandler) CreateOrganization(c *gin.Context) {
	var req OrganizationRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.organizations.Create(c.Request.Context(), usecases.OrganizationCommand{
		Name: req.Name, Description: req.Description, Active: req.Active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Organization created successfully")
}

func (h *TenantHandler) GetOrganization(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "organization")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.organizations.Get(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *TenantHandler) UpdateOrganization(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "organization")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req OrganizationRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.organizations.Update(c.Request.Context(), id, usecases.OrganizationCommand{
		Name: req.Name, Description: req.Description, Active: req.Active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Organization updated successfully", result)
}

func (h *TenantHandler) DeleteOrganization(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "organization")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.organizations.Delete(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// ListTenants returns the caller's own tenant unless it is a global admin.
func (h *TenantHandler) ListTenants(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	orgID, err := utils.ParseOptionalUintQuery(c, "organization_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	active, err := utils.ParseOptionalBoolQuery(c, "active")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	p := utils.ParsePagination(c)

	items, total, err := h.tenants.List(c.Request.Context(), usecases.ListTenantsQuery{
		Actor:          actor,
		OrganizationID: orgID,
		Active:         active,
		Search:         c.Query("search"),
		Page:           p.Page,
		PageSize:       p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, items, total, p.Page, p.PageSize)
}

func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var req CreateTenantRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.tenants.Create(c.Request.Context(), usecases.CreateTenantCommand{
		OrganizationID: req.OrganizationID,
		Code:           req.Code,
		Name:           req.Name,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Tenant created successfully")
}

func (h *TenantHandler) GetTenant(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "tenant")
	if !ok {
		return
	}
	result, err := h.tenants.Get(c.Request.Context(), actor, id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "tenant")
	if !ok {
		return
	}
	var req UpdateTenantRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.tenants.Rename(c.Request.Context(), actor, id, req.Name)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Tenant updated successfully", result)
}

func (h *TenantHandler) ActivateTenant(c *gin.Context) {
	h.setTenantActive(c, true)
}

func (h *TenantHandler) DeactivateTenant(c *gin.Context) {
	h.setTenantActive(c, false)
}

func (h *TenantHandler) setTenantActive(c *gin.Context, active bool) {
	actor, id, ok := actorAndID(c, "id", "tenant")
	if !ok {
		return
	}
	result, err := h.tenants.SetActive(c.Request.Context(), actor, id, active)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	h.logger.Infow("tenant active flag changed", "tenant_id", id, "active", active, "user_id", actor.UserID)
	utils.SuccessResponse(c, http.StatusOK, "Tenant updated successfully", result)
}
