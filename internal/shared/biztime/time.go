// Package biztime keeps time handling in one place. Storage and transport use
// UTC; the business location only decides day boundaries for reports.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const DefaultTimezone = "UTC"

var (
	mu  sync.RWMutex
	loc = time.UTC

	// now is replaced in tests.
	now = time.Now
)

// Init sets the business location. Empty means UTC.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	l, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", tz, err)
	}
	mu.Lock()
	loc = l
	mu.Unlock()
	return nil
}

func Location() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	return loc
}

func NowUTC() time.Time {
	return now().UTC()
}

// StartOfDayUTC returns midnight of t's business day, in UTC.
func StartOfDayUTC(t time.Time) time.Time {
	b := t.In(Location())
	return time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, Location()).UTC()
}

// DayKey formats t as the business-day date string.
func DayKey(t time.Time) string {
	return t.In(Location()).Format("2006-01-02")
}

// DaysBetween lists each business day from from to to inclusive.
func DaysBetween(from, to time.Time) []string {
	if to.Before(from) {
		return nil
	}
	var days []string
	start := from.In(Location())
	end := to.In(Location())
	d := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, Location())
	for !d.After(end) {
		days = append(days, d.Format("2006-01-02"))
		d = d.AddDate(0, 0, 1)
	}
	return days
}

// MinutesBetween is the elapsed minutes from a to b.
func MinutesBetween(a, b time.Time) float64 {
	return b.Sub(a).Minutes()
}

// SetNowForTest freezes the clock and returns the restore func.
func SetNowForTest(t time.Time) func() {
	prev := now
	now = func() time.Time { return t }
	return func() { now = prev }
}
