package mappers

import "time"

// utcPtr normalizes driver-returned times, which come back in the session zone.
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
