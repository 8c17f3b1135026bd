package notification

import "fmt"

// Preference controls which channels deliver one event type to one user.
type Preference struct {
	id        uint
	userID    uint
	eventType EventType
	inApp     bool
	email     bool
	realtime  bool
}

func NewPreference(userID uint, eventType EventType, inApp, email, realtime bool) (*Preference, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !eventType.IsValid() {
		return nil, fmt.Errorf("invalid event type: %s", eventType)
	}
	return &Preference{userID: userID, eventType: eventType, inApp: inApp, email: email, realtime: realtime}, nil
}

// DefaultPreference is used when the user never saved one: every channel on.
func DefaultPreference(userID uint, eventType EventType) *Preference {
	return &Preference{userID: userID, eventType: eventType, inApp: true, email: true, realtime: true}
}

func ReconstructPreference(id, userID uint, eventType EventType, inApp, email, realtime bool) *Preference {
	return &Preference{id: id, userID: userID, eventType: eventType, inApp: inApp, email: email, realtime: realtime}
}

func (p *Preference) ID() uint             { return p.id }
func (p *Preference) UserID() uint         { return p.userID }
func (p *Preference) EventType() EventType { return p.eventType }
func (p *Preference) InApp() bool          { return p.inApp }
func (p *Preference) Email() bool          { return p.email }
func (p *Preference) Realtime() bool       { return p.realtime }

// Mute reports whether no channel is enabled.
func (p *Preference) Mute() bool {
	return !p.inApp && !p.email && !p.realtime
}
