package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/orris-inc/servicedesk/internal/application/notification"
	"github.com/orris-inc/servicedesk/internal/application/ticket/dto"
	"github.com/orris-inc/servicedesk/internal/domain/customfield"
	notif "github.com/orris-inc/servicedesk/internal/domain/notification"
	"github.com/orris-inc/servicedesk/internal/domain/sla"
	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/biztime"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

type UpdateTicketCommand struct {
	Actor        authorization.Actor
	TicketID     uint
	Subject      *string
	Description  *string
	Category     *string
	Priority     *string
	Tags         []string
	CustomFields map[string]any
}

type UpdateTicketUseCase struct {
	ticketRepo   ticket.Repository
	historyRepo  ticket.HistoryRepository
	fieldRepo    customfield.FieldRepository
	trackingRepo sla.TrackingRepository
	resolver     SLAResolver
	notifier     notification.Sender
	realtime     notification.RealtimePublisher
	txManager    TransactionManager
	logger       logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.Repository,
	historyRepo ticket.HistoryRepository,
	fieldRepo customfield.FieldRepository,
	trackingRepo sla.TrackingRepository,
	resolver SLAResolver,
	notifier notification.Sender,
	realtime notification.RealtimePublisher,
	txManager TransactionManager,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo:   ticketRepo,
		historyRepo:  historyRepo,
		fieldRepo:    fieldRepo,
		trackingRepo: trackingRepo,
		resolver:     resolver,
		notifier:     notifier,
		realtime:     realtime,
		txManager:    txManager,
		logger:       logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error) {
	if cmd.Priority != nil && cmd.Actor.IsEndUserOnly() {
		return nil, errors.NewForbiddenError("only staff can change ticket priority")
	}

	t, err := loadTicket(ctx, uc.ticketRepo, uc.logger, cmd.Actor, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if t.Status().IsClosed() {
		return nil, errors.NewValidationError("closed tickets cannot be edited")
	}

	if cmd.Subject != nil {
		if err := t.UpdateSubject(*cmd.Subject); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Description != nil {
		if err := t.UpdateDescription(*cmd.Description); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Category != nil {
		if err := t.ChangeCategory(*cmd.Category); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Tags != nil {
		if err := t.SetTags(cmd.Tags); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.CustomFields != nil {
		fields, err := uc.fieldRepo.ListForType(ctx, t.TicketTypeID(), true)
		if err != nil {
			uc.logger.Errorw("failed to list custom fields", "ticket_id", t.ID(), "error", err)
			return nil, errors.NewInternalError("failed to update ticket")
		}
		values, err := customfield.ValidateValues(fields, cmd.CustomFields)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		t.SetCustomFields(values)
	}

	priorityChanged := false
	if cmd.Priority != nil {
		priorityChanged, err = t.ChangePriority(vo.Priority(strings.ToUpper(strings.TrimSpace(*cmd.Priority))))
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.ticketRepo.Update(ctx, t); err != nil {
			return err
		}
		if priorityChanged {
			if err := uc.retarget(ctx, t); err != nil {
				return err
			}
		}
		return recordHistory(ctx, uc.historyRepo, t, cmd.Actor.UserID)
	})
	if err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update ticket")
	}

	uc.logger.Infow("ticket updated successfully", "ticket_id", t.ID(), "actor_id", cmd.Actor.UserID)

	uc.notifier.Notify(ctx, notification.Event{
		Type:       notif.EventTicketUpdated,
		ActorID:    cmd.Actor.UserID,
		Recipients: participants(t),
		Title:      "Ticket updated",
		Message:    fmt.Sprintf("%s was updated: %s", t.Number(), t.Subject()),
		TicketID:   ticketRef(t),
		Reference:  t.Number(),
	})
	publishTicketUpdated(ctx, uc.realtime, uc.logger, t)

	return dto.ToTicketDTO(t), nil
}

// retarget recomputes the unrecorded SLA targets from the creation time.
func (uc *UpdateTicketUseCase) retarget(ctx context.Context, t *ticket.Ticket) error {
	tracking, err := uc.trackingRepo.GetByTicketID(ctx, t.ID())
	if err != nil {
		return fmt.Errorf("failed to get SLA tracking: %w", err)
	}
	policyID, targets, err := uc.resolver.Resolve(ctx, t.TenantID(), t.Priority())
	if err != nil {
		return err
	}
	if tracking == nil {
		return uc.trackingRepo.Create(ctx, sla.NewTracking(t.ID(), policyID, t.CreatedAt(), targets))
	}
	tracking.Retarget(policyID, t.CreatedAt(), targets, biztime.NowUTC())
	return uc.trackingRepo.Update(ctx, tracking)
}
