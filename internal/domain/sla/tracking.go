package sla

import (
	"time"

	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
)

// Tracking is the SLA record of one ticket.
type Tracking struct {
	id                    uint
	ticketID              uint
	policyID              *uint
	firstResponseTarget   time.Time
	firstResponseAt       *time.Time
	firstResponseBreached bool
	resolutionTarget      time.Time
	resolvedAt            *time.Time
	resolutionBreached    bool
}

// Breaches lists the flags that flipped to breached in one evaluation.
type Breaches struct {
	FirstResponse bool
	Resolution    bool
}

func (b Breaches) Any() bool { return b.FirstResponse || b.Resolution }

func NewTracking(ticketID uint, policyID *uint, createdAt time.Time, targets vo.SLATargets) *Tracking {
	return &Tracking{
		ticketID:            ticketID,
		policyID:            policyID,
		firstResponseTarget: createdAt.Add(targets.FirstResponse),
		resolutionTarget:    createdAt.Add(targets.Resolution),
	}
}

func ReconstructTracking(
	id, ticketID uint,
	policyID *uint,
	firstResponseTarget time.Time,
	firstResponseAt *time.Time,
	firstResponseBreached bool,
	resolutionTarget time.Time,
	resolvedAt *time.Time,
	resolutionBreached bool,
) *Tracking {
	return &Tracking{
		id:                    id,
		ticketID:              ticketID,
		policyID:              policyID,
		firstResponseTarget:   firstResponseTarget,
		firstResponseAt:       firstResponseAt,
		firstResponseBreached: firstResponseBreached,
		resolutionTarget:      resolutionTarget,
		resolvedAt:            resolvedAt,
		resolutionBreached:    resolutionBreached,
	}
}

func (t *Tracking) ID() uint                       { return t.id }
func (t *Tracking) TicketID() uint                 { return t.ticketID }
func (t *Tracking) PolicyID() *uint                { return t.policyID }
func (t *Tracking) FirstResponseTarget() time.Time { return t.firstResponseTarget }
func (t *Tracking) FirstResponseAt() *time.Time    { return t.firstResponseAt }
func (t *Tracking) FirstResponseBreached() bool    { return t.firstResponseBreached }
func (t *Tracking) ResolutionTarget() time.Time    { return t.resolutionTarget }
func (t *Tracking) ResolvedAt() *time.Time         { return t.resolvedAt }
func (t *Tracking) ResolutionBreached() bool       { return t.resolutionBreached }

func (t *Tracking) SetID(id uint) { t.id = id }

// IsCompliant is true when neither flag is breached.
func (t *Tracking) IsCompliant() bool {
	return !t.firstResponseBreached && !t.resolutionBreached
}

// RecordFirstResponse only registers the first call.
func (t *Tracking) RecordFirstResponse(at time.Time) bool {
	if t.firstResponseAt != nil {
		return false
	}
	t.firstResponseAt = &at
	t.firstResponseBreached = at.After(t.firstResponseTarget)
	return true
}

// RecordResolution also counts as first response when none was recorded.
func (t *Tracking) RecordResolution(at time.Time) {
	t.RecordFirstResponse(at)
	if t.resolvedAt != nil {
		return
	}
	t.resolvedAt = &at
	t.resolutionBreached = at.After(t.resolutionTarget)
}

// ClearResolution reopens the resolution clock against the original target.
// A pending target is only ever flagged by Evaluate, so the breach sweep
// sees it and notifies. A flag already set stays set while the target is
// still past.
func (t *Tracking) ClearResolution(now time.Time) {
	t.resolvedAt = nil
	t.resolutionBreached = t.resolutionBreached && now.After(t.resolutionTarget)
}

// Retarget moves the targets that are still pending, e.g. after a priority
// change. Flags follow the same rule as ClearResolution.
func (t *Tracking) Retarget(policyID *uint, createdAt time.Time, targets vo.SLATargets, now time.Time) {
	t.policyID = policyID
	if t.firstResponseAt == nil {
		t.firstResponseTarget = createdAt.Add(targets.FirstResponse)
		t.firstResponseBreached = t.firstResponseBreached && now.After(t.firstResponseTarget)
	}
	if t.resolvedAt == nil {
		t.resolutionTarget = createdAt.Add(targets.Resolution)
		t.resolutionBreached = t.resolutionBreached && now.After(t.resolutionTarget)
	}
}

// Evaluate flags pending targets that now has passed and reports which
// flags changed.
func (t *Tracking) Evaluate(now time.Time) Breaches {
	var b Breaches
	if t.firstResponseAt == nil && !t.firstResponseBreached && now.After(t.firstResponseTarget) {
		t.firstResponseBreached = true
		b.FirstResponse = true
	}
	if t.resolvedAt == nil && !t.resolutionBreached && now.After(t.resolutionTarget) {
		t.resolutionBreached = true
		b.Resolution = true
	}
	return b
}
