package usecases

import (
	"context"

	"github.com/orris-inc/servicedesk/internal/application/ticket/dto"
	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

type GetHistoryUseCase struct {
	ticketRepo  ticket.Repository
	historyRepo ticket.HistoryRepository
	logger      logger.Interface
}

func NewGetHistoryUseCase(ticketRepo ticket.Repository, historyRepo ticket.HistoryRepository, logger logger.Interface) *GetHistoryUseCase {
	return &GetHistoryUseCase{ticketRepo: ticketRepo, historyRepo: historyRepo, logger: logger}
}

func (uc *GetHistoryUseCase) Execute(ctx context.Context, actor authorization.Actor, ticketID uint) ([]*dto.HistoryDTO, error) {
	t, err := loadTicket(ctx, uc.ticketRepo, uc.logger, actor, ticketID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.historyRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to list ticket history", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to get ticket history")
	}

	out := make([]*dto.HistoryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ToHistoryDTO(e))
	}
	return out, nil
}
