package dto

import (
	"time"

	"github.com/orris-inc/servicedesk/internal/domain/tenant"
)

type OrganizationDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TenantDTO struct {
	ID             uint      `json:"id"`
	OrganizationID uint      `json:"organization_id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToOrganizationDTO(o *tenant.Organization) *OrganizationDTO {
	return &OrganizationDTO{
		ID:          o.ID(),
		Name:        o.Name(),
		Description: o.Description(),
		Active:      o.IsActive(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}
}

func ToTenantDTO(t *tenant.Tenant) *TenantDTO {
	return &TenantDTO{
		ID:             t.ID(),
		OrganizationID: t.OrganizationID(),
		Code:           t.Code(),
		Name:           t.Name(),
		Active:         t.IsActive(),
		CreatedAt:      t.CreatedAt(),
		UpdatedAt:      t.UpdatedAt(),
	}
}
