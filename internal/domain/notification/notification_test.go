package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	ticketID := uint(4)
	n, err := NewNotification(1, EventTicketAssigned, "Ticket assigned", "INC-1 was assigned to you", &ticketID)
	require.NoError(t, err)
	assert.False(t, n.IsRead())

	n.MarkRead()
	assert.True(t, n.IsRead())
	first := n.ReadAt()
	n.MarkRead()
	assert.Equal(t, first, n.ReadAt())

	_, err = NewNotification(0, EventTicketAssigned, "t", "", nil)
	assert.Error(t, err)
	_, err = NewNotification(1, EventType("PAGE"), "t", "", nil)
	assert.Error(t, err)
	_, err = NewNotification(1, EventSLABreached, " ", "", nil)
	assert.Error(t, err)
}

func TestPreferences(t *testing.T) {
	d := DefaultPreference(1, EventTicketCreated)
	assert.True(t, d.InApp())
	assert.True(t, d.Email())
	assert.True(t, d.Realtime())

	p, err := NewPreference(1, EventTicketCreated, false, false, false)
	require.NoError(t, err)
	assert.True(t, p.Mute())

	_, err = NewPreference(1, EventType("X"), true, true, true)
	assert.Error(t, err)
}
