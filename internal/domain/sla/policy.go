// Package sla holds SLA policies and the per-ticket tracking record whose
// breach flags are derived from target vs. actual timestamps.
package sla

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/servicedesk/internal/shared/biztime"
)

type Policy struct {
	id                   uint
	tenantID             *uint
	name                 string
	priority             vo.Priority
	firstResponseMinutes int
	resolutionMinutes    int
	active               bool
	createdAt            time.Time
	updatedAt            time.Time
}

func NewPolicy(tenantID *uint, name string, priority vo.Priority, firstResponseMinutes, resolutionMinutes int) (*Policy, error) {
	p := &Policy{tenantID: tenantID, active: true}
	if err := p.Update(name, priority, firstResponseMinutes, resolutionMinutes); err != nil {
		return nil, err
	}
	p.createdAt = p.updatedAt
	return p, nil
}

func ReconstructPolicy(id uint, tenantID *uint, name string, priority vo.Priority, firstResponseMinutes, resolutionMinutes int, active bool, createdAt, updatedAt time.Time) *Policy {
	return &Policy{
		id:                   id,
		tenantID:             tenantID,
		name:                 name,
		priority:             priority,
		firstResponseMinutes: firstResponseMinutes,
		resolutionMinutes:    resolutionMinutes,
		active:               active,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}
}

func (p *Policy) ID() uint                  { return p.id }
func (p *Policy) TenantID() *uint           { return p.tenantID }
func (p *Policy) Name() string              { return p.name }
func (p *Policy) Priority() vo.Priority     { return p.priority }
func (p *Policy) FirstResponseMinutes() int { return p.firstResponseMinutes }
func (p *Policy) ResolutionMinutes() int    { return p.resolutionMinutes }
func (p *Policy) IsActive() bool            { return p.active }
func (p *Policy) CreatedAt() time.Time      { return p.createdAt }
func (p *Policy) UpdatedAt() time.Time      { return p.updatedAt }

func (p *Policy) SetID(id uint) { p.id = id }

func (p *Policy) Update(name string, priority vo.Priority, firstResponseMinutes, resolutionMinutes int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("policy name is required")
	}
	if !priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", priority)
	}
	if firstResponseMinutes <= 0 || resolutionMinutes <= 0 {
		return fmt.Errorf("response and resolution minutes must be positive")
	}
	if resolutionMinutes < firstResponseMinutes {
		return fmt.Errorf("resolution time cannot be shorter than first response time")
	}
	p.name = name
	p.priority = priority
	p.firstResponseMinutes = firstResponseMinutes
	p.resolutionMinutes = resolutionMinutes
	p.updatedAt = biztime.NowUTC()
	return nil
}

func (p *Policy) SetActive(active bool) {
	p.active = active
	p.updatedAt = biztime.NowUTC()
}

func (p *Policy) Targets() vo.SLATargets {
	return vo.SLATargets{
		FirstResponse: time.Duration(p.firstResponseMinutes) * time.Minute,
		Resolution:    time.Duration(p.resolutionMinutes) * time.Minute,
	}
}
