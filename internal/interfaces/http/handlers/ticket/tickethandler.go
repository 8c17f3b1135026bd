package ticket

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	sladto "github.com/orris-inc/servicedesk/internal/application/sla/dto"
	"github.com/orris-inc/servicedesk/internal/application/ticket/dto"
	"github.com/orris-inc/servicedesk/internal/application/ticket/usecases"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, q usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, actor authorization.Actor, ticketID uint) (*dto.TicketDTO, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.UpdateTicketCommand) (*dto.TicketDTO, error)
}

type AssignTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.AssignTicketCommand) (*dto.TicketDTO, error)
}

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd usecases.ChangeStatusCommand) (*dto.TicketDTO, error)
}

type AddCommentExecutor interface {
	Execute(ctx context.Context, cmd usecases.AddCommentCommand) (*dto.CommentDTO, error)
}

type GetHistoryExecutor interface {
	Execute(ctx context.Context, actor authorization.Actor, ticketID uint) ([]*dto.HistoryDTO, error)
}

type GetTicketSLAExecutor interface {
	Execute(ctx context.Context, actor authorization.Actor, ticketID uint) (*sladto.TrackingDTO, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, actor authorization.Actor, ticketID uint) error
}

// UseCases groups the executors TicketHandler depends on.
type UseCases struct {
	Create       CreateTicketExecutor
	List         ListTicketsExecutor
	Get          GetTicketExecutor
	Update       UpdateTicketExecutor
	Assign       AssignTicketExecutor
	ChangeStatus ChangeStatusExecutor
	AddComment   AddCommentExecutor
	History      GetHistoryExecutor
	SLA          GetTicketSLAExecutor
	Delete       DeleteTicketExecutor
}

type TicketHandler struct {
	uc     UseCases
	logger logger.Interface
}

func NewTicketHandler(uc UseCases, logger logger.Interface) *TicketHandler {
	return &TicketHandler{uc: uc, logger: logger}
}

// CreateTicket godoc
// @Summary Open a ticket
// @Security Bearer
// @Tags tickets
// @Accept json
// @Produce json
// @Param request body CreateTicketRequest true "Ticket"
// @Success 201 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	actor, err := utils.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.uc.Create.Execute(c.Request.Context(), req.ToCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// ListTickets godoc
// @Summary List tickets visible to the caller
// @Security Bearer
// @Tags tickets
// @Produce json
// @Param status query string false "Comma-separated statuses"
// @Param priority query string false "Priority"
// @Param assignee_id query int false "Assignee"
// @Param requester_id query int false "Requester"
// @Param category query string false "Category"
// @Param ticket_type_id query int false "Ticket type"
// @Param search query string false "Number, subject or description"
// @Param from query string false "Created from (RFC3339 or YYYY-MM-DD)"
// @Param to query string false "Created to (RFC3339 or YYYY-MM-DD)"
// @Param sort_by query string false "created_at|updated_at|priority|status"
// @Param sort_order query string false "asc|desc"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	actor, err := utils.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	q, err := ParseListTicketsQuery(c, actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.list(c, q)
}

// ListAssetTickets serves GET /assets/:id/tickets.
func (h *TicketHandler) ListAssetTickets(c *gin.Context) {
	actor, err := utils.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	assetID, err := utils.ParseIDParam(c, "id", "asset")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	q, err := ParseListTicketsQuery(c, actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	q.AssetID = &assetID

	h.list(c, q)
}

func (h *TicketHandler) list(c *gin.Context, q usecases.ListTicketsQuery) {
	result, err := h.uc.List.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

func (h *TicketHandler) GetTicket(c *gin.Context) {
	actor, ticketID, ok := h.actorAndTicket(c)
	if !ok {
		return
	}

	result, err := h.uc.Get.Execute(c.Request.Context(), actor, ticketID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	actor, ticketID, ok := h.actorAndTicket(c)
	if !ok {
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update ticket", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.uc.Update.Execute(c.Request.Context(), req.ToCommand(actor, ticketID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

func (h *TicketHandler) AssignTicket(c *gin.Context) {
	actor, ticketID, ok := h.actorAndTicket(c)
	if !ok {
		return
	}

	var req AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.uc.Assign.Execute(c.Request.Context(), usecases.AssignTicketCommand{
		Actor:      actor,
		TicketID:   ticketID,
		AssigneeID: req.AssigneeID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket assigned successfully", result)
}

// ChangeStatus godoc
// @Summary Move a ticket through its status workflow
// @Security Bearer
// @Tags tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param request body ChangeStatusRequest true "Target status"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse "Transition not allowed"
// @Router /tickets/{id}/status [post]
func (h *TicketHandler) ChangeStatus(c *gin.Context) {
	actor, ticketID, ok := h.actorAndTicket(c)
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.uc.ChangeStatus.Execute(c.Request.Context(), usecases.ChangeStatusCommand{
		Actor:    actor,
		TicketID: ticketID,
		Status:   req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket status updated", result)
}

func (h *TicketHandler) AddComment(c *gin.Context) {
	actor, ticketID, ok := h.actorAndTicket(c)
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.uc.AddComment.Execute(c.Request.Context(), usecases.AddCommentCommand{
		Actor:    actor,
		TicketID: ticketID,
		Body:     req.Body,
		Internal: req.Internal,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}

func (h *TicketHandler) GetHistory(c *gin.Context) {
	actor, ticketID, ok := h.actorAndTicket(c)
	if !ok {
		return
	}

	result, err := h.uc.History.Execute(c.Request.Context(), actor, ticketID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *TicketHandler) GetSLA(c *gin.Context) {
	actor, ticketID, ok := h.actorAndTicket(c)
	if !ok {
		return
	}

	result, err := h.uc.SLA.Execute(c.Request.Context(), actor, ticketID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	actor, ticketID, ok := h.actorAndTicket(c)
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), actor, ticketID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *TicketHandler) actorAndTicket(c *gin.Context) (authorization.Actor, uint, bool) {
	actor, err := utils.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return authorization.Actor{}, 0, false
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return authorization.Actor{}, 0, false
	}
	return actor, ticketID, true
}
