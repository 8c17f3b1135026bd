package mappers

import (
	"github.com/orris-inc/servicedesk/internal/domain/customfield"
	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/models"
)

func TicketTypeToModel(t *customfield.TicketType) *models.TicketTypeModel {
	return &models.TicketTypeModel{
		ID:              t.ID(),
		TenantID:        t.TenantID(),
		Name:            t.Name(),
		Description:     t.Description(),
		DefaultPriority: t.DefaultPriority().String(),
		Active:          t.IsActive(),
		CreatedAt:       t.CreatedAt(),
		UpdatedAt:       t.UpdatedAt(),
	}
}

func TicketTypeToDomain(m *models.TicketTypeModel) *customfield.TicketType {
	return customfield.ReconstructTicketType(
		m.ID, m.TenantID, m.Name, m.Description, vo.Priority(m.DefaultPriority),
		m.Active, m.CreatedAt.UTC(), m.UpdatedAt.UTC(),
	)
}

func CustomFieldToModel(f *customfield.CustomField) *models.CustomFieldModel {
	return &models.CustomFieldModel{
		ID:           f.ID(),
		TicketTypeID: f.TicketTypeID(),
		Key:          f.Key(),
		Label:        f.Label(),
		FieldType:    string(f.FieldType()),
		Options:      marshalJSON(f.Options()),
		Required:     f.IsRequired(),
		Active:       f.IsActive(),
		SortOrder:    f.SortOrder(),
		CreatedAt:    f.CreatedAt(),
		UpdatedAt:    f.UpdatedAt(),
	}
}

func CustomFieldToDomain(m *models.CustomFieldModel) (*customfield.CustomField, error) {
	var options []string
	if err := unmarshalJSON(m.Options, &options, "custom field options", m.ID); err != nil {
		return nil, err
	}
	return customfield.ReconstructCustomField(
		m.ID, m.TicketTypeID, m.Key, m.Label, customfield.FieldType(m.FieldType), options,
		m.Required, m.Active, m.SortOrder, m.CreatedAt.UTC(), m.UpdatedAt.UTC(),
	), nil
}
