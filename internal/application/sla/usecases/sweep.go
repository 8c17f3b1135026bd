package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/servicedesk/internal/application/notification"
	notif "github.com/orris-inc/servicedesk/internal/domain/notification"
	"github.com/orris-inc/servicedesk/internal/domain/sla"
	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/biztime"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

const (
	sweepBatchSize = 200
	maxSweepRounds = 50
)

type SweepResult struct {
	Checked               int
	Breached              int
	FirstResponseBreaches int
	ResolutionBreaches    int
}

// SweepBreachesUseCase flags SLA targets that passed without being met and
// notifies the assignee, or the tenant's managers when unassigned.
type SweepBreachesUseCase struct {
	trackings sla.TrackingRepository
	tickets   ticket.Repository
	users     user.Repository
	notifier  notification.Sender
	logger    logger.Interface
}

func NewSweepBreachesUseCase(
	trackings sla.TrackingRepository,
	tickets ticket.Repository,
	users user.Repository,
	notifier notification.Sender,
	logger logger.Interface,
) *SweepBreachesUseCase {
	return &SweepBreachesUseCase{
		trackings: trackings,
		tickets:   tickets,
		users:     users,
		notifier:  notifier,
		logger:    logger,
	}
}

func (uc *SweepBreachesUseCase) Execute(ctx context.Context) (*SweepResult, error) {
	now := biztime.NowUTC()
	result := &SweepResult{}

	for round := 0; round < maxSweepRounds; round++ {
		due, err := uc.trackings.ListPendingDue(ctx, now, sweepBatchSize)
		if err != nil {
			uc.logger.Errorw("failed to list pending SLA trackings", "error", err)
			return result, fmt.Errorf("failed to list pending SLA trackings: %w", err)
		}

		for _, tr := range due {
			result.Checked++
			breaches := tr.Evaluate(now)
			if !breaches.Any() {
				continue
			}
			if err := uc.trackings.Update(ctx, tr); err != nil {
				uc.logger.Errorw("failed to update SLA tracking", "ticket_id", tr.TicketID(), "error", err)
				continue
			}
			result.Breached++
			if breaches.FirstResponse {
				result.FirstResponseBreaches++
			}
			if breaches.Resolution {
				result.ResolutionBreaches++
			}
			uc.notify(ctx, tr, breaches)
		}

		if len(due) < sweepBatchSize {
			break
		}
	}

	if result.Breached > 0 {
		uc.logger.Infow("SLA sweep flagged breaches", "checked", result.Checked, "breached", result.Breached)
	}
	return result, nil
}

func (uc *SweepBreachesUseCase) notify(ctx context.Context, tr *sla.Tracking, b sla.Breaches) {
	t, err := uc.tickets.GetByID(ctx, tr.TicketID())
	if err != nil || t == nil {
		uc.logger.Warnw("breached SLA tracking without ticket", "ticket_id", tr.TicketID(), "error", err)
		return
	}

	var recipients []uint
	if t.AssigneeID() != nil {
		recipients = []uint{*t.AssigneeID()}
	} else {
		managers, err := uc.users.ListByRoles(ctx, t.TenantID(), authorization.ManagerRoles)
		if err != nil {
			uc.logger.Warnw("failed to list managers for SLA breach", "ticket_id", t.ID(), "error", err)
			return
		}
		for _, m := range managers {
			if m.IsActive() {
				recipients = append(recipients, m.ID())
			}
		}
	}

	target := "resolution"
	if b.FirstResponse && b.Resolution {
		target = "first response and resolution"
	} else if b.FirstResponse {
		target = "first response"
	}
	ticketID := t.ID()
	uc.notifier.Notify(ctx, notification.Event{
		Type:       notif.EventSLABreached,
		Recipients: recipients,
		Title:      "SLA breached",
		Message:    fmt.Sprintf("%s missed its %s target: %s", t.Number(), target, t.Subject()),
		TicketID:   &ticketID,
		Reference:  t.Number(),
	})
}
