package ticket

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/servicedesk/internal/application/ticket/usecases"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

type CreateTicketRequest struct {
	Subject      string         `json:"subject" binding:"required,max=200"`
	Description  string         `json:"description" binding:"required,max=10000"`
	Priority     string         `json:"priority" binding:"omitempty,ticket_priority"`
	Category     string         `json:"category" binding:"max=100"`
	TicketTypeID *uint          `json:"ticket_type_id"`
	AssetID      *uint          `json:"asset_id"`
	Tags         []string       `json:"tags" binding:"max=20,dive,max=50"`
	CustomFields map[string]any `json:"custom_fields"`
}

func (r *CreateTicketRequest) ToCommand(actor authorization.Actor) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Actor:        actor,
		Subject:      r.Subject,
		Description:  r.Description,
		Priority:     r.Priority,
		Category:     r.Category,
		TicketTypeID: r.TicketTypeID,
		AssetID:      r.AssetID,
		Tags:         r.Tags,
		CustomFields: r.CustomFields,
	}
}

type UpdateTicketRequest struct {
	Subject      *string        `json:"subject" binding:"omitempty,max=200"`
	Description  *string        `json:"description" binding:"omitempty,max=10000"`
	Category     *string        `json:"category" binding:"omitempty,max=100"`
	Priority     *string        `json:"priority" binding:"omitempty,ticket_priority"`
	Tags         []string       `json:"tags" binding:"omitempty,max=20,dive,max=50"`
	CustomFields map[string]any `json:"custom_fields"`
}

func (r *UpdateTicketRequest) ToCommand(actor authorization.Actor, ticketID uint) usecases.UpdateTicketCommand {
	return usecases.UpdateTicketCommand{
		Actor:        actor,
		TicketID:     ticketID,
		Subject:      r.Subject,
		Description:  r.Description,
		Category:     r.Category,
		Priority:     r.Priority,
		Tags:         r.Tags,
		CustomFields: r.CustomFields,
	}
}

type AssignTicketRequest struct {
	AssigneeID uint `json:"assignee_id" binding:"required"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,ticket_status"`
}

type AddCommentRequest struct {
	Body     string `json:"body" binding:"required,max=10000"`
	Internal bool   `json:"internal"`
}

func parseTicketID(c *gin.Context) (uint, error) {
	return utils.ParseIDParam(c, "id", "ticket")
}

// ParseListTicketsQuery reads the listing filters. status accepts a
// comma-separated list.
func ParseListTicketsQuery(c *gin.Context, actor authorization.Actor) (usecases.ListTicketsQuery, error) {
	q := usecases.ListTicketsQuery{
		Actor:     actor,
		Priority:  c.Query("priority"),
		Category:  c.Query("category"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				q.Statuses = append(q.Statuses, s)
			}
		}
	}

	var err error
	if q.AssigneeID, err = utils.ParseOptionalUintQuery(c, "assignee_id"); err != nil {
		return q, err
	}
	if q.RequesterID, err = utils.ParseOptionalUintQuery(c, "requester_id"); err != nil {
		return q, err
	}
	if q.TicketTypeID, err = utils.ParseOptionalUintQuery(c, "ticket_type_id"); err != nil {
		return q, err
	}
	if q.TenantID, err = utils.ParseOptionalUintQuery(c, "tenant_id"); err != nil {
		return q, err
	}
	if q.From, err = utils.ParseTimeQuery(c, "from", false); err != nil {
		return q, err
	}
	if q.To, err = utils.ParseTimeQuery(c, "to", true); err != nil {
		return q, err
	}

	p := utils.ParsePagination(c)
	q.Page, q.PageSize = p.Page, p.PageSize
	return q, nil
}
