package usecases

import (
	"context"

	"github.com/orris-inc/servicedesk/internal/application/notification/dto"
	"github.com/orris-inc/servicedesk/internal/domain/notification"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/mapper"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

type ListNotificationsQuery struct {
	UserID     uint
	UnreadOnly bool
	Page       int
	PageSize   int
}

type ListNotificationsResult struct {
	Notifications []*dto.NotificationDTO
	Total         int64
	Page          int
	PageSize      int
}

// NotificationUseCases serves the caller's own inbox.
type NotificationUseCases struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewNotificationUseCases(repo notification.Repository, logger logger.Interface) *NotificationUseCases {
	return &NotificationUseCases{repo: repo, logger: logger}
}

func (uc *NotificationUseCases) List(ctx context.Context, q ListNotificationsQuery) (*ListNotificationsResult, error) {
	p := utils.ValidatePagination(q.Page, q.PageSize)
	items, total, err := uc.repo.ListByUser(ctx, q.UserID, q.UnreadOnly, p.Page, p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list notifications", "user_id", q.UserID, "error", err)
		return nil, errors.NewInternalError("failed to list notifications")
	}
	return &ListNotificationsResult{
		Notifications: mapper.MapSlice(items, dto.ToNotificationDTO),
		Total:         total,
		Page:          p.Page,
		PageSize:      p.PageSize,
	}, nil
}

func (uc *NotificationUseCases) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	count, err := uc.repo.CountUnread(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to count unread notifications", "user_id", userID, "error", err)
		return 0, errors.NewInternalError("failed to count notifications")
	}
	return count, nil
}

func (uc *NotificationUseCases) MarkRead(ctx context.Context, userID, id uint) (*dto.NotificationDTO, error) {
	n, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if n.IsRead() {
		return dto.ToNotificationDTO(n), nil
	}
	n.MarkRead()
	if err := uc.repo.Update(ctx, n); err != nil {
		uc.logger.Errorw("failed to mark notification read", "notification_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update notification")
	}
	return dto.ToNotificationDTO(n), nil
}

func (uc *NotificationUseCases) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	updated, err := uc.repo.MarkAllRead(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to mark all notifications read", "user_id", userID, "error", err)
		return 0, errors.NewInternalError("failed to update notifications")
	}
	uc.logger.Infow("notifications marked read", "user_id", userID, "count", updated)
	return updated, nil
}

func (uc *NotificationUseCases) Delete(ctx context.Context, userID, id uint) error {
	if _, err := uc.load(ctx, userID, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Errorw("failed to delete notification", "notification_id", id, "error", err)
		return errors.NewInternalError("failed to delete notification")
	}
	return nil
}

// load hides notifications addressed to other users.
func (uc *NotificationUseCases) load(ctx context.Context, userID, id uint) (*notification.Notification, error) {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get notification", "notification_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get notification")
	}
	if n == nil || n.UserID() != userID {
		return nil, errors.NewNotFoundError("notification not found")
	}
	return n, nil
}
