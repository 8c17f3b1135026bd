package ticket

import "time"

// HistoryEntry is an audit row for a ticket field change.
type HistoryEntry struct {
	ID        uint
	TicketID  uint
	ActorID   uint
	Field     string
	OldValue  string
	NewValue  string
	CreatedAt time.Time
}

// HistoryFromChanges stamps the pending changes with the acting user.
func HistoryFromChanges(ticketID, actorID uint, changes []FieldChange, at time.Time) []*HistoryEntry {
	out := make([]*HistoryEntry, 0, len(changes))
	for _, c := range changes {
		out = append(out, &HistoryEntry{
			TicketID:  ticketID,
			ActorID:   actorID,
			Field:     c.Field,
			OldValue:  c.OldValue,
			NewValue:  c.NewValue,
			CreatedAt: at,
		})
	}
	return out
}
