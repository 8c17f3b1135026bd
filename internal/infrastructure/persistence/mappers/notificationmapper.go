package mappers

import (
	"github.com/orris-inc/servicedesk/internal/domain/notification"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/models"
)

func NotificationToModel(n *notification.Notification) *models.NotificationModel {
	return &models.NotificationModel{
		ID:        n.ID(),
		UserID:    n.UserID(),
		EventType: n.EventType().String(),
		Title:     n.Title(),
		Message:   n.Message(),
		TicketID:  n.TicketID(),
		Read:      n.IsRead(),
		ReadAt:    n.ReadAt(),
		CreatedAt: n.CreatedAt(),
	}
}

func NotificationToDomain(m *models.NotificationModel) *notification.Notification {
	return notification.ReconstructNotification(
		m.ID, m.UserID, notification.EventType(m.EventType), m.Title, m.Message,
		m.TicketID, m.Read, utcPtr(m.ReadAt), m.CreatedAt.UTC(),
	)
}

func PreferenceToModel(p *notification.Preference) *models.NotificationPreferenceModel {
	return &models.NotificationPreferenceModel{
		ID:        p.ID(),
		UserID:    p.UserID(),
		EventType: p.EventType().String(),
		InApp:     p.InApp(),
		Email:     p.Email(),
		Realtime:  p.Realtime(),
	}
}

func PreferenceToDomain(m *models.NotificationPreferenceModel) *notification.Preference {
	return notification.ReconstructPreference(m.ID, m.UserID, notification.EventType(m.EventType), m.InApp, m.Email, m.Realtime)
}
