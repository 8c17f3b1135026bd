// Package tenant models the parent organizations and the tenants that scope
// users and tickets within them.
package tenant

import (
	"fmt"
	"strings"
	"time"

	"github.com/orris-inc/servicedesk/internal/shared/biztime"
)

type Organization struct {
	id          uint
	name        string
	description string
	active      bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewOrganization(name, description string) (*Organization, error) {
	now := biztime.NowUTC()
	o := &Organization{active: true, createdAt: now, updatedAt: now}
	if err := o.Update(name, description); err != nil {
		return nil, err
	}
	return o, nil
}

func ReconstructOrganization(id uint, name, description string, active bool, createdAt, updatedAt time.Time) *Organization {
	return &Organization{id: id, name: name, description: description, active: active, createdAt: createdAt, updatedAt: updatedAt}
}

func (o *Organization) ID() uint             { return o.id }
func (o *Organization) Name() string         { return o.name }
func (o *Organization) Description() string  { return o.description }
func (o *Organization) IsActive() bool       { return o.active }
func (o *Organization) CreatedAt() time.Time { return o.createdAt }
func (o *Organization) UpdatedAt() time.Time { return o.updatedAt }

func (o *Organization) SetID(id uint) { o.id = id }

func (o *Organization) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("organization name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("organization name exceeds maximum length of 100 characters")
	}
	o.name = name
	o.description = strings.TrimSpace(description)
	o.updatedAt = biztime.NowUTC()
	return nil
}

func (o *Organization) SetActive(active bool) {
	o.active = active
	o.updatedAt = biztime.NowUTC()
}
