package usecases

import (
	"context"

	"github.com/orris-inc/servicedesk/internal/application/ticket/dto"
	"github.com/orris-inc/servicedesk/internal/domain/sla"
	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

type GetTicketUseCase struct {
	ticketRepo   ticket.Repository
	commentRepo  ticket.CommentRepository
	trackingRepo sla.TrackingRepository
	userRepo     user.Repository
	logger       logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	trackingRepo sla.TrackingRepository,
	userRepo user.Repository,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:   ticketRepo,
		commentRepo:  commentRepo,
		trackingRepo: trackingRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// Execute returns the ticket with comments and SLA tracking. Internal
// comments are only shown to staff.
func (uc *GetTicketUseCase) Execute(ctx context.Context, actor authorization.Actor, ticketID uint) (*dto.TicketDTO, error) {
	t, err := loadTicket(ctx, uc.ticketRepo, uc.logger, actor, ticketID)
	if err != nil {
		return nil, err
	}

	comments, err := uc.commentRepo.ListByTicket(ctx, t.ID(), actor.IsStaff())
	if err != nil {
		uc.logger.Errorw("failed to list comments", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to get ticket")
	}
	tracking, err := uc.trackingRepo.GetByTicketID(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to get SLA tracking", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to get ticket")
	}

	userIDs := participants(t)
	for _, c := range comments {
		userIDs = append(userIDs, c.AuthorID())
	}
	users, err := uc.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		uc.logger.Errorw("failed to load ticket participants", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to get ticket")
	}

	out := dto.ToTicketDTO(t).Enrich(users, tracking)
	out.Comments = make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		out.Comments = append(out.Comments, dto.ToCommentDTO(c, users))
	}
	return out, nil
}
