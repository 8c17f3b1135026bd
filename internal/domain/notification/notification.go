package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/orris-inc/servicedesk/internal/shared/biztime"
)

type Notification struct {
	id        uint
	userID    uint
	eventType EventType
	title     string
	message   string
	ticketID  *uint
	read      bool
	readAt    *time.Time
	createdAt time.Time
}

func NewNotification(userID uint, eventType EventType, title, message string, ticketID *uint) (*Notification, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !eventType.IsValid() {
		return nil, fmt.Errorf("invalid event type: %s", eventType)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	return &Notification{
		userID:    userID,
		eventType: eventType,
		title:     title,
		message:   strings.TrimSpace(message),
		ticketID:  ticketID,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructNotification(id, userID uint, eventType EventType, title, message string, ticketID *uint, read bool, readAt *time.Time, createdAt time.Time) *Notification {
	return &Notification{
		id:        id,
		userID:    userID,
		eventType: eventType,
		title:     title,
		message:   message,
		ticketID:  ticketID,
		read:      read,
		readAt:    readAt,
		createdAt: createdAt,
	}
}

func (n *Notification) ID() uint             { return n.id }
func (n *Notification) UserID() uint         { return n.userID }
func (n *Notification) EventType() EventType { return n.eventType }
func (n *Notification) Title() string        { return n.title }
func (n *Notification) Message() string      { return n.message }
func (n *Notification) TicketID() *uint      { return n.ticketID }
func (n *Notification) IsRead() bool         { return n.read }
func (n *Notification) ReadAt() *time.Time   { return n.readAt }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

func (n *Notification) SetID(id uint) { n.id = id }

func (n *Notification) MarkRead() {
	if n.read {
		return
	}
	now := biztime.NowUTC()
	n.read = true
	n.readAt = &now
}
