package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/servicedesk/internal/domain/sla"
	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/servicedesk/internal/shared/db"
)

type SLAPolicyRepository struct {
	db *gorm.DB
}

func NewSLAPolicyRepository(gdb *gorm.DB) *SLAPolicyRepository {
	return &SLAPolicyRepository{db: gdb}
}

func (r *SLAPolicyRepository) Create(ctx context.Context, p *sla.Policy) error {
	model := mappers.PolicyToModel(p)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create SLA policy: %w", err)
	}
	p.SetID(model.ID)
	return nil
}

func (r *SLAPolicyRepository) Update(ctx context.Context, p *sla.Policy) error {
	model := mappers.PolicyToModel(p)
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.SLAPolicyModel{}).
		Where("id = ?", model.ID).
		Select("name", "priority", "first_response_minutes", "resolution_minutes", "active", "updated_at").
		Updates(model).Error; err != nil {
		return fmt.Errorf("failed to update SLA policy: %w", err)
	}
	return nil
}

func (r *SLAPolicyRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.SLAPolicyModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete SLA policy: %w", err)
	}
	return nil
}

func (r *SLAPolicyRepository) GetByID(ctx context.Context, id uint) (*sla.Policy, error) {
	var model models.SLAPolicyModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get SLA policy: %w", err)
	}
	return mappers.PolicyToDomain(&model), nil
}

func (r *SLAPolicyRepository) List(ctx context.Context, tenantID *uint) ([]*sla.Policy, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.SLAPolicyModel{})
	if tenantID != nil {
		query = query.Where("(tenant_id = ? OR tenant_id IS NULL)", *tenantID)
	}
	var list []models.SLAPolicyModel
	if err := query.Order("tenant_id ASC, " + priorityRank + " DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list SLA policies: %w", err)
	}
	out := make([]*sla.Policy, 0, len(list))
	for i := range list {
		out = append(out, mappers.PolicyToDomain(&list[i]))
	}
	return out, nil
}

// FindActive matches tenantID exactly; a nil tenantID selects the default policy.
func (r *SLAPolicyRepository) FindActive(ctx context.Context, tenantID *uint, priority vo.Priority) (*sla.Policy, error) {
	where, args := nullableEq("tenant_id", tenantID)
	var model models.SLAPolicyModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where(where, args...).
		Where("priority = ? AND active = ?", priority.String(), true).
		Order("id ASC").
		First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find SLA policy: %w", err)
	}
	return mappers.PolicyToDomain(&model), nil
}

type SLATrackingRepository struct {
	db *gorm.DB
}

func NewSLATrackingRepository(gdb *gorm.DB) *SLATrackingRepository {
	return &SLATrackingRepository{db: gdb}
}

func (r *SLATrackingRepository) Create(ctx context.Context, t *sla.Tracking) error {
	model := mappers.TrackingToModel(t)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create SLA tracking: %w", err)
	}
	t.SetID(model.ID)
	return nil
}

func (r *SLATrackingRepository) Update(ctx context.Context, t *sla.Tracking) error {
	model := mappers.TrackingToModel(t)
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.SLATrackingModel{}).
		Where("id = ?", model.ID).
		Select("policy_id", "first_response_target", "first_response_at", "first_response_breached",
			"resolution_target", "resolved_at", "resolution_breached", "updated_at").
		Updates(model).Error; err != nil {
		return fmt.Errorf("failed to update SLA tracking: %w", err)
	}
	return nil
}

func (r *SLATrackingRepository) GetByTicketID(ctx context.Context, ticketID uint) (*sla.Tracking, error) {
	var model models.SLATrackingModel
	if err := db.GetTxFromContext(ctx, r.db).Where("ticket_id = ?", ticketID).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get SLA tracking: %w", err)
	}
	return mappers.TrackingToDomain(&model), nil
}

func (r *SLATrackingRepository) ListByTicketIDs(ctx context.Context, ticketIDs []uint) (map[uint]*sla.Tracking, error) {
	out := make(map[uint]*sla.Tracking, len(ticketIDs))
	if len(ticketIDs) == 0 {
		return out, nil
	}
	var list []models.SLATrackingModel
	if err := db.GetTxFromContext(ctx, r.db).Where("ticket_id IN ?", ticketIDs).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list SLA trackings: %w", err)
	}
	for i := range list {
		out[list[i].TicketID] = mappers.TrackingToDomain(&list[i])
	}
	return out, nil
}

// ListPendingDue skips trackings whose ticket was deleted.
func (r *SLATrackingRepository) ListPendingDue(ctx context.Context, now time.Time, limit int) ([]*sla.Tracking, error) {
	var list []models.SLATrackingModel
	if err := db.GetTxFromContext(ctx, r.db).
		Table(models.SLATrackingModel{}.TableName()+" AS s").
		Select("s.*").
		Joins("JOIN tickets t ON t.id = s.ticket_id AND t.deleted_at IS NULL").
		Where("(s.first_response_at IS NULL AND s.first_response_breached = ? AND s.first_response_target < ?) OR "+
			"(s.resolved_at IS NULL AND s.resolution_breached = ? AND s.resolution_target < ?)",
			false, now, false, now).
		Order("s.id ASC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending SLA trackings: %w", err)
	}
	out := make([]*sla.Tracking, 0, len(list))
	for i := range list {
		out = append(out, mappers.TrackingToDomain(&list[i]))
	}
	return out, nil
}
