package dto

import (
	"time"

	"github.com/orris-inc/servicedesk/internal/domain/sla"
)

type PolicyDTO struct {
	ID                   uint      `json:"id"`
	TenantID             *uint     `json:"tenant_id"`
	Name                 string    `json:"name"`
	Priority             string    `json:"priority"`
	FirstResponseMinutes int       `json:"first_response_minutes"`
	ResolutionMinutes    int       `json:"resolution_minutes"`
	Active               bool      `json:"active"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type TrackingDTO struct {
	TicketID              uint       `json:"ticket_id"`
	PolicyID              *uint      `json:"policy_id"`
	FirstResponseTarget   time.Time  `json:"first_response_target"`
	FirstResponseAt       *time.Time `json:"first_response_at"`
	FirstResponseBreached bool       `json:"first_response_breached"`
	ResolutionTarget      time.Time  `json:"resolution_target"`
	ResolvedAt            *time.Time `json:"resolved_at"`
	ResolutionBreached    bool       `json:"resolution_breached"`
}

func ToPolicyDTO(p *sla.Policy) *PolicyDTO {
	return &PolicyDTO{
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

func ToTrackingDTO(t *sla.Tracking) *TrackingDTO {
	if t == nil {
		return nil
	}
	return &TrackingDTO{
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
