package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/servicedesk/internal/application/notification"
	"github.com/orris-inc/servicedesk/internal/application/ticket/dto"
	notif "github.com/orris-inc/servicedesk/internal/domain/notification"
	"github.com/orris-inc/servicedesk/internal/domain/sla"
	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/hubprotocol"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

type AddCommentCommand struct {
	Actor    authorization.Actor
	TicketID uint
	Body     string
	Internal bool
}

type AddCommentUseCase struct {
	ticketRepo   ticket.Repository
	commentRepo  ticket.CommentRepository
	trackingRepo sla.TrackingRepository
	userRepo     user.Repository
	notifier     notification.Sender
	realtime     notification.RealtimePublisher
	txManager    TransactionManager
	logger       logger.Interface
}

func NewAddCommentUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	trackingRepo sla.TrackingRepository,
	userRepo user.Repository,
	notifier notification.Sender,
	realtime notification.RealtimePublisher,
	txManager TransactionManager,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo:   ticketRepo,
		commentRepo:  commentRepo,
		trackingRepo: trackingRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		realtime:     realtime,
		txManager:    txManager,
		logger:       logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*dto.CommentDTO, error) {
	if cmd.Internal && !cmd.Actor.IsStaff() {
		return nil, errors.NewForbiddenError("only staff can post internal comments")
	}

	t, err := loadTicket(ctx, uc.ticketRepo, uc.logger, cmd.Actor, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	c, err := ticket.NewComment(t.ID(), cmd.Actor.UserID, cmd.Body, cmd.Internal)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.commentRepo.Create(ctx, c); err != nil {
			return err
		}
		if !c.CountsAsFirstResponse(t.RequesterID()) {
			return nil
		}
		tracking, err := uc.trackingRepo.GetByTicketID(ctx, t.ID())
		if err != nil {
			return fmt.Errorf("failed to get SLA tracking: %w", err)
		}
		if tracking == nil || !tracking.RecordFirstResponse(c.CreatedAt()) {
			return nil
		}
		return uc.trackingRepo.Update(ctx, tracking)
	})
	if err != nil {
		uc.logger.Errorw("failed to add comment", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to add comment")
	}

	uc.logger.Infow("comment added successfully",
		"ticket_id", t.ID(),
		"comment_id", c.ID(),
		"internal", c.IsInternal(),
		"actor_id", cmd.Actor.UserID,
	)

	users, err := uc.userRepo.GetByIDs(ctx, []uint{c.AuthorID()})
	if err != nil {
		uc.logger.Warnw("failed to load comment author", "user_id", c.AuthorID(), "error", err)
	}
	out := dto.ToCommentDTO(c, users)

	recipients := participants(t)
	if c.IsInternal() {
		// the requester never learns about internal notes
		recipients = excludeRequester(t, recipients)
	}
	uc.notifier.Notify(ctx, notification.Event{
		Type:       notif.EventTicketCommented,
		ActorID:    cmd.Actor.UserID,
		Recipients: recipients,
		Title:      "New comment",
		Message:    fmt.Sprintf("New comment on %s: %s", t.Number(), t.Subject()),
		TicketID:   ticketRef(t),
		Reference:  t.Number(),
	})

	if !c.IsInternal() && uc.realtime != nil {
		if err := uc.realtime.PublishEvent(ctx, hubprotocol.TicketTopic(t.ID()), hubprotocol.EventTicketComment, out); err != nil {
			uc.logger.Warnw("failed to publish comment", "ticket_id", t.ID(), "error", err)
		}
	}

	return out, nil
}

func excludeRequester(t *ticket.Ticket, ids []uint) []uint {
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id != t.RequesterID() {
			out = append(out, id)
		}
	}
	return out
}
