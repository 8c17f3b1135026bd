package mappers

import (
	"github.com/orris-inc/servicedesk/internal/domain/sla"
	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/models"
)

func PolicyToModel(p *sla.Policy) *models.SLAPolicyModel {
	return &models.SLAPolicyModel{
		ID:                   p.ID(),
		TenantID:             p.TenantID(),
		Name:                 p.Name(),
		Priority:             p.Priority().String(),
		FirstResponseMinutes: p.FirstResponseMinutes(),
		ResolutionMinutes:    p.ResolutionMinutes(),
		Active:               p.IsActive(),
		CreatedAt:            p.CreatedAt(),
		UpdatedAt:            p.UpdatedAt(),
	}
}

func PolicyToDomain(m *models.SLAPolicyModel) *sla.Policy {
	return sla.ReconstructPolicy(
		m.ID, m.TenantID, m.Name, vo.Priority(m.Priority),
		m.FirstResponseMinutes, m.ResolutionMinutes, m.Active,
		m.CreatedAt.UTC(), m.UpdatedAt.UTC(),
	)
}

func TrackingToModel(t *sla.Tracking) *models.SLATrackingModel {
	return &models.SLATrackingModel{
		ID:                    t.ID(),
		TicketID:              t.TicketID(),
		PolicyID:              t.PolicyID(),
		FirstResponseTarget:   t.FirstResponseTarget(),
		FirstResponseAt:       t.FirstResponseAt(),
		FirstResponseBreached: t.FirstResponseBreached(),
		ResolutionTarget:      t.ResolutionTarget(),
		ResolvedAt:            t.ResolvedAt(),
		ResolutionBreached:    t.ResolutionBreached(),
	}
}

func TrackingToDomain(m *models.SLATrackingModel) *sla.Tracking {
	return sla.ReconstructTracking(
		m.ID, m.TicketID, m.PolicyID,
		m.FirstResponseTarget.UTC(), utcPtr(m.FirstResponseAt), m.FirstResponseBreached,
		m.ResolutionTarget.UTC(), utcPtr(m.ResolvedAt), m.ResolutionBreached,
	)
}
