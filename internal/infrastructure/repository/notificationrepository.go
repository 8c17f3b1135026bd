package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/servicedesk/internal/domain/notification"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/servicedesk/internal/shared/biztime"
	"github.com/orris-inc/servicedesk/internal/shared/db"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(gdb *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: gdb}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	model := mappers.NotificationToModel(n)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	n.SetID(model.ID)
	return nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, id uint) (*notification.Notification, error) {
	var model models.NotificationModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return mappers.NotificationToDomain(&model), nil
}

func (r *NotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	model := mappers.NotificationToModel(n)
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.NotificationModel{}).
		Where("id = ?", model.ID).
		Select("is_read", "read_at", "updated_at").
		Updates(model).Error; err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.NotificationModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint, unreadOnly bool, page, pageSize int) ([]*notification.Notification, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.NotificationModel{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	var list []models.NotificationModel
	if err := query.Order("created_at DESC, id DESC").Scopes(db.Paginate(page, pageSize)).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	out := make([]*notification.Notification, 0, len(list))
	for i := range list {
		out = append(out, mappers.NotificationToDomain(&list[i]))
	}
	return out, total, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{"is_read": true, "read_at": biztime.NowUTC()})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

type NotificationPreferenceRepository struct {
	db *gorm.DB
}

func NewNotificationPreferenceRepository(gdb *gorm.DB) *NotificationPreferenceRepository {
	return &NotificationPreferenceRepository{db: gdb}
}

func (r *NotificationPreferenceRepository) ListByUser(ctx context.Context, userID uint) ([]*notification.Preference, error) {
	var list []models.NotificationPreferenceModel
	if err := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID).Order("event_type ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list notification preferences: %w", err)
	}
	out := make([]*notification.Preference, 0, len(list))
	for i := range list {
		out = append(out, mappers.PreferenceToDomain(&list[i]))
	}
	return out, nil
}

func (r *NotificationPreferenceRepository) Get(ctx context.Context, userID uint, eventType notification.EventType) (*notification.Preference, error) {
	var model models.NotificationPreferenceModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND event_type = ?", userID, eventType.String()).
		First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification preference: %w", err)
	}
	return mappers.PreferenceToDomain(&model), nil
}

func (r *NotificationPreferenceRepository) Upsert(ctx context.Context, prefs []*notification.Preference) error {
	if len(prefs) == 0 {
		return nil
	}
	rows := make([]*models.NotificationPreferenceModel, 0, len(prefs))
	for _, p := range prefs {
		row := mappers.PreferenceToModel(p)
		row.ID = 0
		rows = append(rows, row)
	}
	if err := db.GetTxFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "event_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"in_app", "email", "realtime", "updated_at"}),
	}).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to save notification preferences: %w", err)
	}
	return nil
}
