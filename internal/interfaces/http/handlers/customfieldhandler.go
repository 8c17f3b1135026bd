package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/servicedesk/internal/application/customfield/dto"
	"github.com/orris-inc/servicedesk/internal/application/customfield/usecases"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

type ticketTypeService interface {
	List(ctx context.Context, actor authorization.Actor, includeInactive bool) ([]*dto.TicketTypeDTO, error)
	Create(ctx context.Context, cmd usecases.TicketTypeCommand) (*dto.TicketTypeDTO, error)
	Update(ctx context.Context, id uint, cmd usecases.TicketTypeCommand) (*dto.TicketTypeDTO, error)
	Delete(ctx context.Context, actor authorization.Actor, id uint) error
}

type customFieldService interface {
	List(ctx context.Context, actor authorization.Actor, ticketTypeID *uint) ([]*dto.CustomFieldDTO, error)
	Create(ctx context.Context, cmd usecases.FieldCommand) (*dto.CustomFieldDTO, error)
	Update(ctx context.Context, id uint, cmd usecases.FieldCommand) (*dto.CustomFieldDTO, error)
	Delete(ctx context.Context, actor authorization.Actor, id uint) error
}

type TicketTypeRequest struct {
	Name            string `json:"name" binding:"required,max=100"`
	Description     string `json:"description" binding:"max=1000"`
	DefaultPriority string `json:"default_priority" binding:"omitempty,ticket_priority"`
	Active          *bool  `json:"active"`
	Global          bool   `json:"global"`
}

func (r *TicketTypeRequest) toCommand(actor authorization.Actor) usecases.TicketTypeCommand {
	return usecases.TicketTypeCommand{
		Actor:           actor,
		Name:            r.Name,
		Description:     r.Description,
		DefaultPriority: r.DefaultPriority,
		Active:          r.Active,
		Global:          r.Global,
	}
}

type CustomFieldRequest struct {
	TicketTypeID *uint    `json:"ticket_type_id"`
	Key          string   `json:"key" binding:"required,max=50"`
	Label        string   `json:"label" binding:"required,max=100"`
	FieldType    string   `json:"field_type" binding:"required,oneof=TEXT NUMBER BOOLEAN DATE SELECT"`
	Options      []string `json:"options" binding:"max=100,dive,max=100"`
	Required     bool     `json:"required"`
	SortOrder    int      `json:"sort_order"`
	Active       *bool    `json:"active"`
}

func (r *CustomFieldRequest) toCommand(actor authorization.Actor) usecases.FieldCommand {
	return usecases.FieldCommand{
		Actor:        actor,
		TicketTypeID: r.TicketTypeID,
		Key:          r.Key,
		Label:        r.Label,
		FieldType:    r.FieldType,
		Options:      r.Options,
		Required:     r.Required,
		SortOrder:    r.SortOrder,
		Active:       r.Active,
	}
}

type CustomFieldHandler struct {
	types  ticketTypeService
	fields customFieldService
	logger logger.Interface
}

func NewCustomFieldHandler(types ticketTypeService, fields customFieldService, logger logger.Interface) *CustomFieldHandler {
	return &CustomFieldHandler{types: types, fields: fields, logger: logger}
}

// ListTicketTypes hides inactive types unless include_inactive=true.
func (h *CustomFieldHandler) ListTicketTypes(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	includeInactive, err := utils.ParseOptionalBoolQuery(c, "include_inactive")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.types.List(c.Request.Context(), actor, includeInactive != nil && *includeInactive)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *CustomFieldHandler) CreateTicketType(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req TicketTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.types.Create(c.Request.Context(), req.toCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Ticket type created successfully")
}

func (h *CustomFieldHandler) UpdateTicketType(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "ticket type")
	if !ok {
		return
	}
	var req TicketTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.types.Update(c.Request.Context(), id, req.toCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Ticket type updated successfully", result)
}

func (h *CustomFieldHandler) DeleteTicketType(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "ticket type")
	if !ok {
		return
	}
	if err := h.types.Delete(c.Request.Context(), actor, id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// ListCustomFields godoc
// @Summary List custom field definitions
// @Security Bearer
// @Tags custom-fields
// @Produce json
// @Param ticket_type_id query int false "Limit to one ticket type"
// @Success 200 {object} utils.APIResponse{data=[]dto.CustomFieldDTO}
// @Router /custom-fields [get]
func (h *CustomFieldHandler) ListCustomFields(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	ticketTypeID, err := utils.ParseOptionalUintQuery(c, "ticket_type_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.fields.List(c.Request.Context(), actor, ticketTypeID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *CustomFieldHandler) CreateCustomField(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req CustomFieldRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.fields.Create(c.Request.Context(), req.toCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Custom field created successfully")
}

func (h *CustomFieldHandler) UpdateCustomField(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "custom field")
	if !ok {
		return
	}
	var req CustomFieldRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.fields.Update(c.Request.Context(), id, req.toCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Custom field updated successfully", result)
}

func (h *CustomFieldHandler) DeleteCustomField(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "custom field")
	if !ok {
		return
	}
	if err := h.fields.Delete(c.Request.Context(), actor, id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
