// Package notification holds in-app notifications and per-user delivery
// preferences.
package notification

type EventType string

const (
	EventTicketCreated       EventType = "TICKET_CREATED"
	EventTicketAssigned      EventType = "TICKET_ASSIGNED"
	EventTicketStatusChanged EventType = "TICKET_STATUS_CHANGED"
	EventTicketCommented     EventType = "TICKET_COMMENTED"
	EventTicketUpdated       EventType = "TICKET_UPDATED"
	EventSLABreached         EventType = "SLA_BREACHED"
)

var AllEventTypes = []EventType{
	EventTicketCreated,
	EventTicketAssigned,
	EventTicketStatusChanged,
	EventTicketCommented,
	EventTicketUpdated,
	EventSLABreached,
}

func (e EventType) IsValid() bool {
	for _, t := range AllEventTypes {
		if t == e {
			return true
		}
	}
	return false
}

func (e EventType) String() string { return string(e) }
