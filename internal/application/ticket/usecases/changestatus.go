package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/orris-inc/servicedesk/internal/application/notification"
	"github.com/orris-inc/servicedesk/internal/application/ticket/dto"
	notif "github.com/orris-inc/servicedesk/internal/domain/notification"
	"github.com/orris-inc/servicedesk/internal/domain/sla"
	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/biztime"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/labels"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

type ChangeStatusCommand struct {
	Actor    authorization.Actor
	TicketID uint
	Status   string
}

type ChangeStatusUseCase struct {
	ticketRepo   ticket.Repository
	historyRepo  ticket.HistoryRepository
	trackingRepo sla.TrackingRepository
	notifier     notification.Sender
	realtime     notification.RealtimePublisher
	txManager    TransactionManager
	logger       logger.Interface
}

func NewChangeStatusUseCase(
	ticketRepo ticket.Repository,
	historyRepo ticket.HistoryRepository,
	trackingRepo sla.TrackingRepository,
	notifier notification.Sender,
	realtime notification.RealtimePublisher,
	txManager TransactionManager,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		ticketRepo:   ticketRepo,
		historyRepo:  historyRepo,
		trackingRepo: trackingRepo,
		notifier:     notifier,
		realtime:     realtime,
		txManager:    txManager,
		logger:       logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*dto.TicketDTO, error) {
	next := vo.TicketStatus(strings.ToUpper(strings.TrimSpace(cmd.Status)))
	if !next.IsValid() {
		return nil, errors.NewValidationError("invalid status: " + cmd.Status)
	}

	t, err := loadTicket(ctx, uc.ticketRepo, uc.logger, cmd.Actor, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if !cmd.Actor.IsStaff() && next != vo.StatusClosed && next != vo.StatusReopened {
		return nil, errors.NewForbiddenError("requesters may only close or reopen their tickets")
	}

	previous := t.Status()
	if previous == next {
		return dto.ToTicketDTO(t), nil
	}
	if err := t.ChangeStatus(next); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.ticketRepo.Update(ctx, t); err != nil {
			return err
		}
		if err := uc.syncTracking(ctx, t); err != nil {
			return err
		}
		return recordHistory(ctx, uc.historyRepo, t, cmd.Actor.UserID)
	})
	if err != nil {
		uc.logger.Errorw("failed to change ticket status", "ticket_id", t.ID(), "status", next, "error", err)
		return nil, errors.NewInternalError("failed to change ticket status")
	}

	uc.logger.Infow("ticket status changed successfully",
		"ticket_id", t.ID(),
		"from", previous,
		"to", next,
		"actor_id", cmd.Actor.UserID,
	)

	uc.notifier.Notify(ctx, notification.Event{
		Type:       notif.EventTicketStatusChanged,
		ActorID:    cmd.Actor.UserID,
		Recipients: participants(t),
		Title:      "Ticket status changed",
		Message:    fmt.Sprintf("%s moved from %s to %s", t.Number(), labels.Humanize(string(previous)), labels.Humanize(string(next))),
		TicketID:   ticketRef(t),
		Reference:  t.Number(),
	})
	publishTicketUpdated(ctx, uc.realtime, uc.logger, t)

	return dto.ToTicketDTO(t), nil
}

func (uc *ChangeStatusUseCase) syncTracking(ctx context.Context, t *ticket.Ticket) error {
	tracking, err := uc.trackingRepo.GetByTicketID(ctx, t.ID())
	if err != nil {
		return fmt.Errorf("failed to get SLA tracking: %w", err)
	}
	if tracking == nil {
		return nil
	}
	switch {
	case t.Status().IsDone():
		tracking.RecordResolution(*t.ResolvedAt())
	case t.Status().IsReopened():
		tracking.ClearResolution(biztime.NowUTC())
	default:
		return nil
	}
	return uc.trackingRepo.Update(ctx, tracking)
}
