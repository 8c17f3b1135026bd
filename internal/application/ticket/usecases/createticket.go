package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/orris-inc/servicedesk/internal/application/notification"
	"github.com/orris-inc/servicedesk/internal/application/ticket/dto"
	"github.com/orris-inc/servicedesk/internal/domain/asset"
	"github.com/orris-inc/servicedesk/internal/domain/customfield"
	notif "github.com/orris-inc/servicedesk/internal/domain/notification"
	"github.com/orris-inc/servicedesk/internal/domain/sla"
	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/biztime"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

type CreateTicketCommand struct {
	Actor        authorization.Actor
	Subject      string
	Description  string
	Priority     string
	Category     string
	TicketTypeID *uint
	AssetID      *uint
	Tags         []string
	CustomFields map[string]any
}

type CreateTicketUseCase struct {
	ticketRepo   ticket.Repository
	historyRepo  ticket.HistoryRepository
	numbers      ticket.NumberGenerator
	typeRepo     customfield.TicketTypeRepository
	fieldRepo    customfield.FieldRepository
	assetRepo    asset.Repository
	trackingRepo sla.TrackingRepository
	resolver     SLAResolver
	userRepo     user.Repository
	notifier     notification.Sender
	txManager    TransactionManager
	logger       logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.Repository,
	historyRepo ticket.HistoryRepository,
	numbers ticket.NumberGenerator,
	typeRepo customfield.TicketTypeRepository,
	fieldRepo customfield.FieldRepository,
	assetRepo asset.Repository,
	trackingRepo sla.TrackingRepository,
	resolver SLAResolver,
	userRepo user.Repository,
	notifier notification.Sender,
	txManager TransactionManager,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo:   ticketRepo,
		historyRepo:  historyRepo,
		numbers:      numbers,
		typeRepo:     typeRepo,
		fieldRepo:    fieldRepo,
		assetRepo:    assetRepo,
		trackingRepo: trackingRepo,
		resolver:     resolver,
		userRepo:     userRepo,
		notifier:     notifier,
		txManager:    txManager,
		logger:       logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing create ticket use case", "requester_id", cmd.Actor.UserID)

	tenantID := cmd.Actor.TenantID

	priority := vo.PriorityMedium
	var tt *customfield.TicketType
	if cmd.TicketTypeID != nil {
		var err error
		tt, err = uc.typeRepo.GetByID(ctx, *cmd.TicketTypeID)
		if err != nil {
			uc.logger.Errorw("failed to get ticket type", "ticket_type_id", *cmd.TicketTypeID, "error", err)
			return nil, errors.NewInternalError("failed to create ticket")
		}
		if tt == nil || !tt.IsActive() || !cmd.Actor.CanAccessTenant(tt.TenantID()) {
			return nil, errors.NewValidationError("ticket type not found")
		}
		priority = tt.DefaultPriority()
	}
	if cmd.Priority != "" {
		priority = vo.Priority(strings.ToUpper(strings.TrimSpace(cmd.Priority)))
	}

	newTicket, err := ticket.NewTicket(cmd.Subject, cmd.Description, cmd.Category, priority, cmd.Actor.UserID, tenantID)
	if err != nil {
		uc.logger.Errorw("failed to create ticket entity", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}
	if err := newTicket.SetTags(cmd.Tags); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	fields, err := uc.fieldRepo.ListForType(ctx, cmd.TicketTypeID, true)
	if err != nil {
		uc.logger.Errorw("failed to list custom fields", "error", err)
		return nil, errors.NewInternalError("failed to create ticket")
	}
	values, err := customfield.ValidateValues(fields, cmd.CustomFields)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	newTicket.SetCustomFields(values)

	if cmd.AssetID != nil {
		a, err := uc.assetRepo.GetByID(ctx, *cmd.AssetID)
		if err != nil {
			uc.logger.Errorw("failed to get asset", "asset_id", *cmd.AssetID, "error", err)
			return nil, errors.NewInternalError("failed to create ticket")
		}
		if a == nil || !cmd.Actor.CanAccessTenant(a.TenantID()) {
			return nil, errors.NewValidationError("asset not found")
		}
	}
	newTicket.SetClassification(cmd.TicketTypeID, cmd.AssetID)

	policyID, targets, err := uc.resolver.Resolve(ctx, tenantID, newTicket.Priority())
	if err != nil {
		uc.logger.Errorw("failed to resolve SLA policy", "error", err)
		return nil, errors.NewInternalError("failed to create ticket")
	}

	number, err := uc.numbers.Generate(ctx)
	if err != nil {
		uc.logger.Errorw("failed to generate ticket number", "error", err)
		return nil, errors.NewInternalError("failed to create ticket")
	}
	if err := newTicket.SetNumber(number); err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	var tracking *sla.Tracking
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.ticketRepo.Create(ctx, newTicket); err != nil {
			return fmt.Errorf("failed to save ticket: %w", err)
		}
		tracking = sla.NewTracking(newTicket.ID(), policyID, newTicket.CreatedAt(), targets)
		if err := uc.trackingRepo.Create(ctx, tracking); err != nil {
			return fmt.Errorf("failed to save SLA tracking: %w", err)
		}
		return uc.historyRepo.CreateBatch(ctx, []*ticket.HistoryEntry{{
			TicketID:  newTicket.ID(),
			ActorID:   cmd.Actor.UserID,
			Field:     "status",
			NewValue:  string(vo.StatusNew),
			CreatedAt: biztime.NowUTC(),
		}})
	})
	if err != nil {
		uc.logger.Errorw("failed to create ticket", "error", err)
		return nil, errors.NewInternalError("failed to create ticket")
	}

	uc.logger.Infow("ticket created successfully", "ticket_id", newTicket.ID(), "number", newTicket.Number(), "priority", newTicket.Priority())

	uc.notifyAgents(ctx, cmd.Actor, newTicket)

	return dto.ToTicketDTO(newTicket).Enrich(nil, tracking), nil
}

func (uc *CreateTicketUseCase) notifyAgents(ctx context.Context, actor authorization.Actor, t *ticket.Ticket) {
	agents, err := uc.userRepo.ListByRoles(ctx, t.TenantID(), authorization.AssignableRoles)
	if err != nil {
		uc.logger.Warnw("failed to list agents for new ticket", "ticket_id", t.ID(), "error", err)
		return
	}
	recipients := make([]uint, 0, len(agents))
	for _, a := range agents {
		if a.IsActive() {
			recipients = append(recipients, a.ID())
		}
	}
	uc.notifier.Notify(ctx, notification.Event{
		Type:       notif.EventTicketCreated,
		ActorID:    actor.UserID,
		Recipients: recipients,
		Title:      "New ticket",
		Message:    fmt.Sprintf("%s [%s] %s", t.Number(), t.Priority(), t.Subject()),
		TicketID:   ticketRef(t),
		Reference:  t.Number(),
	})
}
