package usecases

import (
	"context"
	"slices"

	"github.com/orris-inc/servicedesk/internal/application/notification"
	"github.com/orris-inc/servicedesk/internal/application/ticket/dto"
	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/biztime"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/hubprotocol"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

// CanView reports whether actor may see t: same tenant, and for end users
// only tickets they requested.
func CanView(actor authorization.Actor, t *ticket.Ticket) bool {
	if !actor.CanAccessTenant(t.TenantID()) {
		return false
	}
	if actor.IsEndUserOnly() {
		return t.RequesterID() == actor.UserID
	}
	return true
}

// TicketAccess answers visibility questions for connections outside the
// request cycle, such as WebSocket subscriptions.
type TicketAccess struct {
	tickets ticket.Repository
}

func NewTicketAccess(tickets ticket.Repository) *TicketAccess {
	return &TicketAccess{tickets: tickets}
}

func (a *TicketAccess) CanView(ctx context.Context, actor authorization.Actor, ticketID uint) (bool, error) {
	t, err := a.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return false, err
	}
	return t != nil && CanView(actor, t), nil
}

// loadTicket hides tickets the actor cannot view behind a not found error.
func loadTicket(ctx context.Context, repo ticket.Repository, log logger.Interface, actor authorization.Actor, id uint) (*ticket.Ticket, error) {
	t, err := repo.GetByID(ctx, id)
	if err != nil {
		log.Errorw("failed to get ticket", "ticket_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get ticket")
	}
	if t == nil || !CanView(actor, t) {
		return nil, errors.NewNotFoundError("ticket not found")
	}
	return t, nil
}

func recordHistory(ctx context.Context, repo ticket.HistoryRepository, t *ticket.Ticket, actorID uint) error {
	changes := t.PullChanges()
	if len(changes) == 0 {
		return nil
	}
	return repo.CreateBatch(ctx, ticket.HistoryFromChanges(t.ID(), actorID, changes, biztime.NowUTC()))
}

// participants are the requester and assignee of t.
func participants(t *ticket.Ticket) []uint {
	ids := []uint{t.RequesterID()}
	if a := t.AssigneeID(); a != nil && !slices.Contains(ids, *a) {
		ids = append(ids, *a)
	}
	return ids
}

func publishTicketUpdated(ctx context.Context, pub notification.RealtimePublisher, log logger.Interface, t *ticket.Ticket) {
	if pub == nil {
		return
	}
	if err := pub.PublishEvent(ctx, hubprotocol.TicketTopic(t.ID()), hubprotocol.EventTicketUpdated, dto.ToTicketDTO(t)); err != nil {
		log.Warnw("failed to publish ticket update", "ticket_id", t.ID(), "error", err)
	}
}

func ticketRef(t *ticket.Ticket) *uint {
	id := t.ID()
	return &id
}
