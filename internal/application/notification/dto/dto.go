package dto

import (
	"time"

	"github.com/orris-inc/servicedesk/internal/domain/notification"
)

type NotificationDTO struct {
	ID        uint       `json:"id"`
	EventType string     `json:"event_type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	TicketID  *uint      `json:"ticket_id"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}

type PreferenceDTO struct {
	EventType string `json:"event_type"`
	InApp     bool   `json:"in_app"`
	Email     bool   `json:"email"`
	Realtime  bool   `json:"realtime"`
}

func ToNotificationDTO(n *notification.Notification) *NotificationDTO {
	return &NotificationDTO{
		ID:        n.ID(),
		EventType: n.EventType().String(),
		Title:     n.Title(),
		Message:   n.Message(),
		TicketID:  n.TicketID(),
		Read:      n.IsRead(),
		ReadAt:    n.ReadAt(),
		CreatedAt: n.CreatedAt(),
	}
}

func ToPreferenceDTO(p *notification.Preference) *PreferenceDTO {
	return &PreferenceDTO{
		EventType: p.EventType().String(),
		InApp:     p.InApp(),
		Email:     p.Email(),
		Realtime:  p.Realtime(),
	}
}
