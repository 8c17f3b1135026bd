package mappers

import (
	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	ToDomainList(list []models.TicketModel) ([]*ticket.Ticket, error)
	CommentToModel(c *ticket.Comment) *models.CommentModel
	CommentToDomain(model *models.CommentModel) *ticket.Comment
	HistoryToModel(h *ticket.HistoryEntry) *models.HistoryModel
	HistoryToDomain(model *models.HistoryModel) *ticket.HistoryEntry
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:           t.ID(),
		Number:       t.Number(),
		TenantID:     t.TenantID(),
		Subject:      t.Subject(),
		Description:  t.Description(),
		Category:     t.Category(),
		Priority:     t.Priority().String(),
		Status:       t.Status().String(),
		TicketTypeID: t.TicketTypeID(),
		RequesterID:  t.RequesterID(),
		AssigneeID:   t.AssigneeID(),
		AssetID:      t.AssetID(),
		Tags:         marshalJSON(t.Tags()),
		CustomFields: marshalJSON(t.CustomFields()),
		ResolvedAt:   t.ResolvedAt(),
		ClosedAt:     t.ClosedAt(),
		Version:      t.Version(),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
	}
}

// ToDomain converts only the ticket row. Comments are loaded separately.
func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	var tags []string
	if err := unmarshalJSON(model.Tags, &tags, "ticket tags", model.ID); err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := unmarshalJSON(model.CustomFields, &fields, "ticket custom fields", model.ID); err != nil {
		return nil, err
	}

	return ticket.ReconstructTicket(ticket.State{
		ID:           model.ID,
		Number:       model.Number,
		TenantID:     model.TenantID,
		Subject:      model.Subject,
		Description:  model.Description,
		Category:     model.Category,
		Priority:     vo.Priority(model.Priority),
		Status:       vo.TicketStatus(model.Status),
		TicketTypeID: model.TicketTypeID,
		RequesterID:  model.RequesterID,
		AssigneeID:   model.AssigneeID,
		AssetID:      model.AssetID,
		Tags:         tags,
		CustomFields: fields,
		ResolvedAt:   utcPtr(model.ResolvedAt),
		ClosedAt:     utcPtr(model.ClosedAt),
		Version:      model.Version,
		CreatedAt:    model.CreatedAt.UTC(),
		UpdatedAt:    model.UpdatedAt.UTC(),
	})
}

func (m *TicketMapperImpl) ToDomainList(list []models.TicketModel) ([]*ticket.Ticket, error) {
	out := make([]*ticket.Ticket, 0, len(list))
	for i := range list {
		t, err := m.ToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *TicketMapperImpl) CommentToModel(c *ticket.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:        c.ID(),
		TicketID:  c.TicketID(),
		AuthorID:  c.AuthorID(),
		Body:      c.Body(),
		Internal:  c.IsInternal(),
		CreatedAt: c.CreatedAt(),
	}
}

func (m *TicketMapperImpl) CommentToDomain(model *models.CommentModel) *ticket.Comment {
	return ticket.ReconstructComment(model.ID, model.TicketID, model.AuthorID, model.Body, model.Internal, model.CreatedAt.UTC())
}

func (m *TicketMapperImpl) HistoryToModel(h *ticket.HistoryEntry) *models.HistoryModel {
	return &models.HistoryModel{
		ID:        h.ID,
		TicketID:  h.TicketID,
		ActorID:   h.ActorID,
		Field:     h.Field,
		OldValue:  h.OldValue,
		NewValue:  h.NewValue,
		CreatedAt: h.CreatedAt,
	}
}

func (m *TicketMapperImpl) HistoryToDomain(model *models.HistoryModel) *ticket.HistoryEntry {
	return &ticket.HistoryEntry{
		ID:        model.ID,
		TicketID:  model.TicketID,
		ActorID:   model.ActorID,
		Field:     model.Field,
		OldValue:  model.OldValue,
		NewValue:  model.NewValue,
		CreatedAt: model.CreatedAt.UTC(),
	}
}
