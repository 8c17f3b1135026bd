package dto

import (
	"time"

	"github.com/orris-inc/servicedesk/internal/domain/customfield"
)

type TicketTypeDTO struct {
	ID              uint      `json:"id"`
	TenantID        *uint     `json:"tenant_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DefaultPriority string    `json:"default_priority"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CustomFieldDTO struct {
	ID           uint      `json:"id"`
	TicketTypeID *uint     `json:"ticket_type_id"`
	Key          string    `json:"key"`
	Label        string    `json:"label"`
	FieldType    string    `json:"field_type"`
	Options      []string  `json:"options"`
	Required     bool      `json:"required"`
	Active       bool      `json:"active"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToTicketTypeDTO(t *customfield.TicketType) *TicketTypeDTO {
	return &TicketTypeDTO{
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

func ToCustomFieldDTO(f *customfield.CustomField) *CustomFieldDTO {
	return &CustomFieldDTO{
		ID:           f.ID(),
		TicketTypeID: f.TicketTypeID(),
		Key:          f.Key(),
		Label:        f.Label(),
		FieldType:    string(f.FieldType()),
		Options:      f.Options(),
		Required:     f.IsRequired(),
		Active:       f.IsActive(),
		SortOrder:    f.SortOrder(),
		CreatedAt:    f.CreatedAt(),
		UpdatedAt:    f.UpdatedAt(),
	}
}
