package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id uint) (*Notification, error)
	Update(ctx context.Context, n *Notification) error
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint, unreadOnly bool, page, pageSize int) ([]*Notification, int64, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
}

type PreferenceRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]*Preference, error)
	Get(ctx context.Context, userID uint, eventType EventType) (*Preference, error)
	Upsert(ctx context.Context, prefs []*Preference) error
}
