package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/orris-inc/servicedesk/internal/application/ticket/dto"
	"github.com/orris-inc/servicedesk/internal/domain/sla"
	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

type ListTicketsQuery struct {
	Actor        authorization.Actor
	Statuses     []string
	Priority     string
	Category     string
	AssigneeID   *uint
	RequesterID  *uint
	TicketTypeID *uint
	AssetID      *uint
	TenantID     *uint
	Search       string
	From         *time.Time
	To           *time.Time
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

type ListTicketsResult struct {
	Tickets  []*dto.TicketDTO
	Total    int64
	Page     int
	PageSize int
}

type ListTicketsUseCase struct {
	ticketRepo   ticket.Repository
	trackingRepo sla.TrackingRepository
	userRepo     user.Repository
	logger       logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.Repository,
	trackingRepo sla.TrackingRepository,
	userRepo user.Repository,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo:   ticketRepo,
		trackingRepo: trackingRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, q ListTicketsQuery) (*ListTicketsResult, error) {
	filter, err := buildFilter(q)
	if err != nil {
		return nil, err
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}

	items, err := uc.enrich(ctx, tickets)
	if err != nil {
		return nil, err
	}
	return &ListTicketsResult{Tickets: items, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
}

func (uc *ListTicketsUseCase) enrich(ctx context.Context, tickets []*ticket.Ticket) ([]*dto.TicketDTO, error) {
	if len(tickets) == 0 {
		return []*dto.TicketDTO{}, nil
	}
	ticketIDs := make([]uint, 0, len(tickets))
	userIDs := make([]uint, 0, len(tickets)*2)
	for _, t := range tickets {
		ticketIDs = append(ticketIDs, t.ID())
		userIDs = append(userIDs, participants(t)...)
	}

	users, err := uc.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		uc.logger.Errorw("failed to load ticket participants", "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}
	trackings, err := uc.trackingRepo.ListByTicketIDs(ctx, ticketIDs)
	if err != nil {
		uc.logger.Errorw("failed to load SLA trackings", "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}

	out := make([]*dto.TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, dto.ToTicketDTO(t).Enrich(users, trackings[t.ID()]))
	}
	return out, nil
}

func buildFilter(q ListTicketsQuery) (ticket.Filter, error) {
	p := utils.ValidatePagination(q.Page, q.PageSize)
	filter := ticket.Filter{
		TenantID:     q.Actor.TenantFilter(),
		Category:     strings.TrimSpace(q.Category),
		RequesterID:  q.RequesterID,
		AssigneeID:   q.AssigneeID,
		TicketTypeID: q.TicketTypeID,
		AssetID:      q.AssetID,
		Search:       strings.TrimSpace(q.Search),
		CreatedFrom:  q.From,
		CreatedTo:    q.To,
		Page:         p.Page,
		PageSize:     p.PageSize,
		SortBy:       q.SortBy,
		SortOrder:    q.SortOrder,
	}
	if q.Actor.IsGlobalAdmin() && q.TenantID != nil {
		filter.TenantID = q.TenantID
	}
	if q.Actor.IsEndUserOnly() {
		// end users only ever see their own requests
		id := q.Actor.UserID
		filter.RequesterID = &id
	}
	if filter.Category != "" {
		cat, err := vo.NormalizeCategory(filter.Category)
		if err != nil {
			return filter, errors.NewValidationError(err.Error())
		}
		filter.Category = cat
	}

	for _, s := range q.Statuses {
		status := vo.TicketStatus(strings.ToUpper(strings.TrimSpace(s)))
		if !status.IsValid() {
			return filter, errors.NewValidationError("invalid status: " + s)
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	if q.Priority != "" {
		pr := vo.Priority(strings.ToUpper(q.Priority))
		if !pr.IsValid() {
			return filter, errors.NewValidationError("invalid priority: " + q.Priority)
		}
		filter.Priority = &pr
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		return filter, errors.NewValidationError("to must not be before from")
	}
	return filter, nil
}
