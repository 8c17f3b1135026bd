package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/servicedesk/internal/application/notification"
	"github.com/orris-inc/servicedesk/internal/application/ticket/dto"
	notif "github.com/orris-inc/servicedesk/internal/domain/notification"
	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

type AssignTicketCommand struct {
	Actor      authorization.Actor
	TicketID   uint
	AssigneeID uint
}

type AssignTicketUseCase struct {
	ticketRepo  ticket.Repository
	historyRepo ticket.HistoryRepository
	userRepo    user.Repository
	notifier    notification.Sender
	realtime    notification.RealtimePublisher
	txManager   TransactionManager
	logger      logger.Interface
}

func NewAssignTicketUseCase(
	ticketRepo ticket.Repository,
	historyRepo ticket.HistoryRepository,
	userRepo user.Repository,
	notifier notification.Sender,
	realtime notification.RealtimePublisher,
	txManager TransactionManager,
	logger logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		ticketRepo:  ticketRepo,
		historyRepo: historyRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		realtime:    realtime,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing assign ticket use case", "ticket_id", cmd.TicketID, "assignee_id", cmd.AssigneeID)

	if cmd.AssigneeID == 0 {
		return nil, errors.NewValidationError("assignee ID is required")
	}
	t, err := loadTicket(ctx, uc.ticketRepo, uc.logger, cmd.Actor, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	assignee, err := uc.userRepo.GetByID(ctx, cmd.AssigneeID)
	if err != nil {
		uc.logger.Errorw("failed to get assignee", "assignee_id", cmd.AssigneeID, "error", err)
		return nil, errors.NewInternalError("failed to assign ticket")
	}
	if err := checkAssignee(assignee, t); err != nil {
		return nil, err
	}

	if err := t.AssignTo(assignee.ID()); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.ticketRepo.Update(ctx, t); err != nil {
			return err
		}
		return recordHistory(ctx, uc.historyRepo, t, cmd.Actor.UserID)
	})
	if err != nil {
		uc.logger.Errorw("failed to assign ticket", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to assign ticket")
	}

	uc.logger.Infow("ticket assigned successfully", "ticket_id", t.ID(), "assignee_id", assignee.ID(), "actor_id", cmd.Actor.UserID)

	uc.notifier.Notify(ctx, notification.Event{
		Type:       notif.EventTicketAssigned,
		ActorID:    cmd.Actor.UserID,
		Recipients: []uint{assignee.ID()},
		Title:      "Ticket assigned to you",
		Message:    fmt.Sprintf("%s [%s] %s", t.Number(), t.Priority(), t.Subject()),
		TicketID:   ticketRef(t),
		Reference:  t.Number(),
	})
	publishTicketUpdated(ctx, uc.realtime, uc.logger, t)

	return dto.ToTicketDTO(t), nil
}

// checkAssignee requires an active agent of the ticket's tenant.
func checkAssignee(assignee *user.User, t *ticket.Ticket) error {
	if assignee == nil || !assignee.IsActive() {
		return errors.NewValidationError("assignee must be an active user")
	}
	if !assignee.Roles().HasAny(authorization.AssignableRoles...) {
		return errors.NewValidationError("assignee must be an agent")
	}
	if t.TenantID() != nil && (assignee.TenantID() == nil || *assignee.TenantID() != *t.TenantID()) {
		return errors.NewValidationError("assignee must belong to the ticket's tenant")
	}
	return nil
}
