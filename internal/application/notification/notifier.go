// Package notification fans ticket events out to recipients over the in-app,
// realtime and email channels according to each user's preferences.
package notification

import (
	"context"
	"fmt"
	"slices"

	"github.com/orris-inc/servicedesk/internal/application/notification/dto"
	notif "github.com/orris-inc/servicedesk/internal/domain/notification"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/shared/biztime"
	"github.com/orris-inc/servicedesk/internal/shared/goroutine"
	"github.com/orris-inc/servicedesk/internal/shared/hubprotocol"
	"github.com/orris-inc/servicedesk/internal/shared/labels"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

const (
	ChannelInApp    = "in_app"
	ChannelRealtime = "realtime"
	ChannelEmail    = "email"
)

// RealtimePublisher pushes a hub event to every subscriber of a topic.
type RealtimePublisher interface {
	PublishEvent(ctx context.Context, topic, event string, data any) error
}

type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// DeliveryRecorder counts deliveries per channel.
type DeliveryRecorder interface {
	RecordDelivery(channel string)
}

// Sender is what use cases depend on to emit notifications.
type Sender interface {
	Notify(ctx context.Context, evt Event)
}

type Event struct {
	Type       notif.EventType
	ActorID    uint
	Recipients []uint
	Title      string
	Message    string
	TicketID   *uint
	// Subject prefix for email, usually the ticket number.
	Reference string
}

type Notifier struct {
	notifications notif.Repository
	preferences   notif.PreferenceRepository
	users         user.Repository
	realtime      RealtimePublisher
	email         EmailSender
	recorder      DeliveryRecorder
	logger        logger.Interface
	dispatch      func(name string, fn func())
}

// NewNotifier builds a notifier. email and recorder may be nil.
func NewNotifier(
	notifications notif.Repository,
	preferences notif.PreferenceRepository,
	users user.Repository,
	realtime RealtimePublisher,
	email EmailSender,
	recorder DeliveryRecorder,
	log logger.Interface,
) *Notifier {
	return &Notifier{
		notifications: notifications,
		preferences:   preferences,
		users:         users,
		realtime:      realtime,
		email:         email,
		recorder:      recorder,
		logger:        log,
		dispatch: func(name string, fn func()) {
			goroutine.SafeGo(log, name, fn)
		},
	}
}

// Notify delivers evt to each distinct recipient except the actor. Channel
// failures are logged and do not fail the caller.
func (n *Notifier) Notify(ctx context.Context, evt Event) {
	recipients := make([]uint, 0, len(evt.Recipients))
	for _, id := range evt.Recipients {
		if id == 0 || id == evt.ActorID || slices.Contains(recipients, id) {
			continue
		}
		recipients = append(recipients, id)
	}
	if len(recipients) == 0 {
		return
	}

	var emailTargets []uint
	for _, userID := range recipients {
		pref, err := n.preferences.Get(ctx, userID, evt.Type)
		if err != nil {
			n.logger.Warnw("failed to load notification preference, using defaults", "user_id", userID, "error", err)
		}
		if pref == nil {
			pref = notif.DefaultPreference(userID, evt.Type)
		}

		payload := n.deliverInApp(ctx, userID, evt, pref.InApp())
		if pref.Realtime() && n.realtime != nil {
			if err := n.realtime.PublishEvent(ctx, hubprotocol.UserTopic(userID), hubprotocol.EventNotification, payload); err != nil {
				n.logger.Warnw("failed to publish realtime notification", "user_id", userID, "error", err)
			} else {
				n.record(ChannelRealtime)
			}
		}
		if pref.Email() && n.email != nil {
			emailTargets = append(emailTargets, userID)
		}
	}

	if len(emailTargets) > 0 {
		n.sendEmails(ctx, emailTargets, evt)
	}
}

func (n *Notifier) deliverInApp(ctx context.Context, userID uint, evt Event, persist bool) *dto.NotificationDTO {
	note, err := notif.NewNotification(userID, evt.Type, evt.Title, evt.Message, evt.TicketID)
	if err != nil {
		n.logger.Errorw("invalid notification", "user_id", userID, "event_type", evt.Type, "error", err)
		return &dto.NotificationDTO{EventType: evt.Type.String(), Title: evt.Title, Message: evt.Message, TicketID: evt.TicketID, CreatedAt: biztime.NowUTC()}
	}
	if persist {
		if err := n.notifications.Create(ctx, note); err != nil {
			n.logger.Errorw("failed to persist notification", "user_id", userID, "event_type", evt.Type, "error", err)
		} else {
			n.record(ChannelInApp)
		}
	}
	return dto.ToNotificationDTO(note)
}

func (n *Notifier) sendEmails(ctx context.Context, userIDs []uint, evt Event) {
	users, err := n.users.GetByIDs(ctx, userIDs)
	if err != nil {
		n.logger.Errorw("failed to load email recipients", "error", err)
		return
	}
	subject := fmt.Sprintf("[%s] %s", labels.Humanize(evt.Type.String()), evt.Title)
	if evt.Reference != "" {
		subject = fmt.Sprintf("[%s] %s: %s", evt.Reference, labels.Humanize(evt.Type.String()), evt.Title)
	}

	for _, id := range userIDs {
		u, ok := users[id]
		if !ok || !u.IsActive() {
			continue
		}
		to := u.Email().String()
		n.dispatch("notification-email", func() {
			// detached from the request so a finished request does not cancel delivery
			if err := n.email.Send(context.WithoutCancel(ctx), to, subject, evt.Message); err != nil {
				n.logger.Warnw("failed to send notification email", "user_id", id, "error", err)
				return
			}
			n.record(ChannelEmail)
		})
	}
}

func (n *Notifier) record(channel string) {
	if n.recorder != nil {
		n.recorder.RecordDelivery(channel)
	}
}
