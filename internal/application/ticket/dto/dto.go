package dto

import (
	"time"

	sladto "github.com/orris-inc/servicedesk/internal/application/sla/dto"
	userdto "github.com/orris-inc/servicedesk/internal/application/user/dto"
	"github.com/orris-inc/servicedesk/internal/domain/sla"
	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	"github.com/orris-inc/servicedesk/internal/domain/user"
)

type TicketDTO struct {
	ID           uint                    `json:"id"`
	Number       string                  `json:"number"`
	TenantID     *uint                   `json:"tenant_id"`
	Subject      string                  `json:"subject"`
	Description  string                  `json:"description"`
	Status       string                  `json:"status"`
	Priority     string                  `json:"priority"`
	Category     string                  `json:"category"`
	TicketTypeID *uint                   `json:"ticket_type_id"`
	RequesterID  uint                    `json:"requester_id"`
	AssigneeID   *uint                   `json:"assignee_id"`
	AssetID      *uint                   `json:"asset_id"`
	Tags         []string                `json:"tags"`
	CustomFields map[string]any          `json:"custom_fields"`
	ResolvedAt   *time.Time              `json:"resolved_at"`
	ClosedAt     *time.Time              `json:"closed_at"`
	Version      int                     `json:"version"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
	Requester    *userdto.UserSummaryDTO `json:"requester,omitempty"`
	Assignee     *userdto.UserSummaryDTO `json:"assignee,omitempty"`
	SLA          *sladto.TrackingDTO     `json:"sla,omitempty"`
	Comments     []*CommentDTO           `json:"comments,omitempty"`
}

type CommentDTO struct {
	ID        uint                    `json:"id"`
	TicketID  uint                    `json:"ticket_id"`
	AuthorID  uint                    `json:"author_id"`
	Author    *userdto.UserSummaryDTO `json:"author,omitempty"`
	Body      string                  `json:"body"`
	Internal  bool                    `json:"internal"`
	CreatedAt time.Time               `json:"created_at"`
}

type HistoryDTO struct {
	ID        uint      `json:"id"`
	ActorID   uint      `json:"actor_id"`
	Field     string    `json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	CreatedAt time.Time `json:"created_at"`
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	return &TicketDTO{
		ID:           t.ID(),
		Number:       t.Number(),
		TenantID:     t.TenantID(),
		Subject:      t.Subject(),
		Description:  t.Description(),
		Status:       t.Status().String(),
		Priority:     t.Priority().String(),
		Category:     t.Category(),
		TicketTypeID: t.TicketTypeID(),
		RequesterID:  t.RequesterID(),
		AssigneeID:   t.AssigneeID(),
		AssetID:      t.AssetID(),
		Tags:         t.Tags(),
		CustomFields: t.CustomFields(),
		ResolvedAt:   t.ResolvedAt(),
		ClosedAt:     t.ClosedAt(),
		Version:      t.Version(),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
	}
}

// Enrich attaches requester, assignee and SLA data looked up in bulk.
func (d *TicketDTO) Enrich(users map[uint]*user.User, tracking *sla.Tracking) *TicketDTO {
	if u, ok := users[d.RequesterID]; ok {
		d.Requester = userdto.ToUserSummary(u)
	}
	if d.AssigneeID != nil {
		if u, ok := users[*d.AssigneeID]; ok {
			d.Assignee = userdto.ToUserSummary(u)
		}
	}
	d.SLA = sladto.ToTrackingDTO(tracking)
	return d
}

func ToCommentDTO(c *ticket.Comment, users map[uint]*user.User) *CommentDTO {
	out := &CommentDTO{
		ID:        c.ID(),
		TicketID:  c.TicketID(),
		AuthorID:  c.AuthorID(),
		Body:      c.Body(),
		Internal:  c.IsInternal(),
		CreatedAt: c.CreatedAt(),
	}
	if u, ok := users[c.AuthorID()]; ok {
		out.Author = userdto.ToUserSummary(u)
	}
	return out
}

func ToHistoryDTO(h *ticket.HistoryEntry) *HistoryDTO {
	return &HistoryDTO{
		ID:        h.ID,
		ActorID:   h.ActorID,
		Field:     h.Field,
		OldValue:  h.OldValue,
		NewValue:  h.NewValue,
		CreatedAt: h.CreatedAt,
	}
}
