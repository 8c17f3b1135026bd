package mappers

import (
	"github.com/orris-inc/servicedesk/internal/domain/tenant"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/models"
)

func OrganizationToModel(o *tenant.Organization) *models.OrganizationModel {
	return &models.OrganizationModel{
		ID:          o.ID(),
		Name:        o.Name(),
		Description: o.Description(),
		Active:      o.IsActive(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}
}

func OrganizationToDomain(m *models.OrganizationModel) *tenant.Organization {
	return tenant.ReconstructOrganization(m.ID, m.Name, m.Description, m.Active, m.CreatedAt.UTC(), m.UpdatedAt.UTC())
}

func TenantToModel(t *tenant.Tenant) *models.TenantModel {
	return &models.TenantModel{
		ID:             t.ID(),
		OrganizationID: t.OrganizationID(),
		Code:           t.Code(),
		Name:           t.Name(),
		Active:         t.IsActive(),
		CreatedAt:      t.CreatedAt(),
		UpdatedAt:      t.UpdatedAt(),
	}
}

func TenantToDomain(m *models.TenantModel) *tenant.Tenant {
	return tenant.ReconstructTenant(m.ID, m.OrganizationID, m.Code, m.Name, m.Active, m.CreatedAt.UTC(), m.UpdatedAt.UTC())
}
