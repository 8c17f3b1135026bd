package usecases

import (
	"context"

	sladto "github.com/orris-inc/servicedesk/internal/application/sla/dto"
	"github.com/orris-inc/servicedesk/internal/domain/sla"
	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

type GetTicketSLAUseCase struct {
	ticketRepo   ticket.Repository
	trackingRepo sla.TrackingRepository
	logger       logger.Interface
}

func NewGetTicketSLAUseCase(ticketRepo ticket.Repository, trackingRepo sla.TrackingRepository, logger logger.Interface) *GetTicketSLAUseCase {
	return &GetTicketSLAUseCase{ticketRepo: ticketRepo, trackingRepo: trackingRepo, logger: logger}
}

func (uc *GetTicketSLAUseCase) Execute(ctx context.Context, actor authorization.Actor, ticketID uint) (*sladto.TrackingDTO, error) {
	t, err := loadTicket(ctx, uc.ticketRepo, uc.logger, actor, ticketID)
	if err != nil {
		return nil, err
	}

	tracking, err := uc.trackingRepo.GetByTicketID(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to get SLA tracking", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to get SLA tracking")
	}
	if tracking == nil {
		return nil, errors.NewNotFoundError("SLA tracking not found")
	}
	return sladto.ToTrackingDTO(tracking), nil
}
