package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/servicedesk/internal/application/asset/dto"
	"github.com/orris-inc/servicedesk/internal/application/asset/usecases"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/constants"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

type assetService interface {
	List(ctx context.Context, q usecases.ListAssetsQuery) (*usecases.ListAssetsResult, error)
	ListMine(ctx context.Context, actor authorization.Actor) ([]*dto.AssetDTO, error)
	Create(ctx context.Context, cmd usecases.AssetCommand) (*dto.AssetDTO, error)
	Get(ctx context.Context, actor authorization.Actor, id uint) (*dto.AssetDTO, error)
	Update(ctx context.Context, id uint, cmd usecases.AssetCommand) (*dto.AssetDTO, error)
	Delete(ctx context.Context, actor authorization.Actor, id uint) error
	Assign(ctx context.Context, actor authorization.Actor, id, userID uint) (*dto.AssetDTO, error)
	Unassign(ctx context.Context, actor authorization.Actor, id uint) (*dto.AssetDTO, error)
	Visible(ctx context.Context, actor authorization.Actor, id uint) error
}

// AssetRequest carries dates as YYYY-MM-DD.
type AssetRequest struct {
	AssetTag          string `json:"asset_tag" binding:"required,max=50"`
	Name              string `json:"name" binding:"required,max=200"`
	Type              string `json:"asset_type" binding:"required,max=50"`
	Status            string `json:"status" binding:"omitempty,oneof=IN_STOCK IN_USE MAINTENANCE RETIRED"`
	SerialNumber      string `json:"serial_number" binding:"max=100"`
	Manufacturer      string `json:"manufacturer" binding:"max=100"`
	Model             string `json:"model" binding:"max=100"`
	Location          string `json:"location" binding:"max=200"`
	Notes             string `json:"notes" binding:"max=5000"`
	PurchaseDate      string `json:"purchase_date"`
	WarrantyExpiresAt string `json:"warranty_expires_at"`
	TenantID          *uint  `json:"tenant_id"`
}

func (r *AssetRequest) toCommand(actor authorization.Actor) (usecases.AssetCommand, error) {
	purchased, err := parseDate("purchase_date", r.PurchaseDate)
	if err != nil {
		return usecases.AssetCommand{}, err
	}
	warranty, err := parseDate("warranty_expires_at", r.WarrantyExpiresAt)
	if err != nil {
		return usecases.AssetCommand{}, err
	}
	return usecases.AssetCommand{
		Actor:             actor,
		AssetTag:          r.AssetTag,
		Name:              r.Name,
		Type:              r.Type,
		Status:            r.Status,
		SerialNumber:      r.SerialNumber,
		Manufacturer:      r.Manufacturer,
		Model:             r.Model,
		Location:          r.Location,
		Notes:             r.Notes,
		PurchaseDate:      purchased,
		WarrantyExpiresAt: warranty,
		TenantID:          r.TenantID,
	}, nil
}

func parseDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(constants.DateLayout, raw)
	if err != nil {
		return nil, errors.NewValidationError("invalid "+field+", expected YYYY-MM-DD", raw)
	}
	return &t, nil
}

type AssignAssetRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

type AssetHandler struct {
	assets assetService
	logger logger.Interface
}

func NewAssetHandler(assets assetService, logger logger.Interface) *AssetHandler {
	return &AssetHandler{assets: assets, logger: logger}
}

// ListAssets godoc
// @Summary List configuration items
// @Security Bearer
// @Tags assets
// @Produce json
// @Param asset_type query string false "Type"
// @Param status query string false "IN_STOCK|IN_USE|MAINTENANCE|RETIRED"
// @Param assignee_id query int false "Assigned user"
// @Param search query string false "Tag, name or serial number"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router /assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	assigneeID, err := utils.ParseOptionalUintQuery(c, "assignee_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	assetType := c.Query("asset_type")
	if assetType == "" {
		assetType = c.Query("type")
	}
	p := utils.ParsePagination(c)

	result, err := h.assets.List(c.Request.Context(), usecases.ListAssetsQuery{
		Actor:      actor,
		Type:       assetType,
		Status:     c.Query("status"),
		AssigneeID: assigneeID,
		Search:     c.Query("search"),
		Page:       p.Page,
		PageSize:   p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Assets, result.Total, result.Page, result.PageSize)
}

func (h *AssetHandler) ListMyAssets(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	result, err := h.assets.ListMine(c.Request.Context(), actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req AssetRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd, err := req.toCommand(actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.assets.Create(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Asset created successfully")
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "asset")
	if !ok {
		return
	}
	result, err := h.assets.Get(c.Request.Context(), actor, id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "asset")
	if !ok {
		return
	}
	var req AssetRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd, err := req.toCommand(actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.assets.Update(c.Request.Context(), id, cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Asset updated successfully", result)
}

func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "asset")
	if !ok {
		return
	}
	if err := h.assets.Delete(c.Request.Context(), actor, id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

func (h *AssetHandler) AssignAsset(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "asset")
	if !ok {
		return
	}
	var req AssignAssetRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.assets.Assign(c.Request.Context(), actor, id, req.UserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Asset assigned successfully", result)
}

func (h *AssetHandler) UnassignAsset(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "asset")
	if !ok {
		return
	}
	result, err := h.assets.Unassign(c.Request.Context(), actor, id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Asset unassigned successfully", result)
}

// RequireVisibleAsset aborts unless the caller can see the asset named by
// :id. It guards GET /assets/:id/tickets ahead of the ticket listing.
func (h *AssetHandler) RequireVisibleAsset(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "asset")
	if !ok {
		c.Abort()
		return
	}
	if err := h.assets.Visible(c.Request.Context(), actor, id); err != nil {
		utils.ErrorResponseWithError(c, err)
		c.Abort()
		return
	}
	c.Next()
}
