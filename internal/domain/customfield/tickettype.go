// Package customfield holds ticket types and the custom field definitions
// that extend tickets of a type.
package customfield

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/servicedesk/internal/shared/biztime"
)

type TicketType struct {
	id              uint
	tenantID        *uint
	name            string
	description     string
	defaultPriority vo.Priority
	active          bool
	createdAt       time.Time
	updatedAt       time.Time
}

func NewTicketType(tenantID *uint, name, description string, defaultPriority vo.Priority) (*TicketType, error) {
	tt := &TicketType{tenantID: tenantID, active: true, createdAt: biztime.NowUTC()}
	if err := tt.Update(name, description, defaultPriority); err != nil {
		return nil, err
	}
	return tt, nil
}

func ReconstructTicketType(id uint, tenantID *uint, name, description string, defaultPriority vo.Priority, active bool, createdAt, updatedAt time.Time) *TicketType {
	return &TicketType{
		id:              id,
		tenantID:        tenantID,
		name:            name,
		description:     description,
		defaultPriority: defaultPriority,
		active:          active,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (t *TicketType) ID() uint                     { return t.id }
func (t *TicketType) TenantID() *uint              { return t.tenantID }
func (t *TicketType) Name() string                 { return t.name }
func (t *TicketType) Description() string          { return t.description }
func (t *TicketType) DefaultPriority() vo.Priority { return t.defaultPriority }
func (t *TicketType) IsActive() bool               { return t.active }
func (t *TicketType) CreatedAt() time.Time         { return t.createdAt }
func (t *TicketType) UpdatedAt() time.Time         { return t.updatedAt }

func (t *TicketType) SetID(id uint) { t.id = id }

func (t *TicketType) Update(name, description string, defaultPriority vo.Priority) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("ticket type name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("ticket type name exceeds maximum length of 100 characters")
	}
	if defaultPriority == "" {
		defaultPriority = vo.PriorityMedium
	}
	if !defaultPriority.IsValid() {
		return fmt.Errorf("invalid priority: %s", defaultPriority)
	}
	t.name = name
	t.description = strings.TrimSpace(description)
	t.defaultPriority = defaultPriority
	t.updatedAt = biztime.NowUTC()
	return nil
}

func (t *TicketType) SetActive(active bool) {
	t.active = active
	t.updatedAt = biztime.NowUTC()
}
