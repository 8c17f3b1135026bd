package tenant

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/orris-inc/servicedesk/internal/shared/biztime"
)

var codeRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,49}$`)

type Tenant struct {
	id             uint
	organizationID uint
	code           string
	name           string
	active         bool
	createdAt      time.Time
	updatedAt      time.Time
}

func NewTenant(organizationID uint, code, name string) (*Tenant, error) {
	if organizationID == 0 {
		return nil, fmt.Errorf("organization ID is required")
	}
	code, err := NormalizeCode(code)
	if err != nil {
		return nil, err
	}
	now := biztime.NowUTC()
	t := &Tenant{organizationID: organizationID, code: code, active: true, createdAt: now, updatedAt: now}
	if err := t.Rename(name); err != nil {
		return nil, err
	}
	return t, nil
}

func ReconstructTenant(id, organizationID uint, code, name string, active bool, createdAt, updatedAt time.Time) *Tenant {
	return &Tenant{id: id, organizationID: organizationID, code: code, name: name, active: active, createdAt: createdAt, updatedAt: updatedAt}
}

// NormalizeCode lower-cases a tenant code and checks it is a 2-50 char slug.
func NormalizeCode(code string) (string, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if !codeRegex.MatchString(code) {
		return "", fmt.Errorf("tenant code must be 2-50 characters of a-z, 0-9 or '-'")
	}
	return code, nil
}

func (t *Tenant) ID() uint             { return t.id }
func (t *Tenant) OrganizationID() uint { return t.organizationID }
func (t *Tenant) Code() string         { return t.code }
func (t *Tenant) Name() string         { return t.name }
func (t *Tenant) IsActive() bool       { return t.active }
func (t *Tenant) CreatedAt() time.Time { return t.createdAt }
func (t *Tenant) UpdatedAt() time.Time { return t.updatedAt }

func (t *Tenant) SetID(id uint) { t.id = id }

func (t *Tenant) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("tenant name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("tenant name exceeds maximum length of 100 characters")
	}
	t.name = name
	t.updatedAt = biztime.NowUTC()
	return nil
}

func (t *Tenant) Deactivate() {
	t.active = false
	t.updatedAt = biztime.NowUTC()
}

func (t *Tenant) Activate() {
	t.active = true
	t.updatedAt = biztime.NowUTC()
}
