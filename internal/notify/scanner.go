// Package notify watches the schedule for imminent occurrences and raises at
// most one ten-minute and one one-minute alert per occurrence per session.
package notify

import (
	"fmt"
	"time"

	"hourglass/internal/logger"
	"hourglass/internal/models"
	"hourglass/internal/schedule"
)

const (
	tenMinuteWindow = 10 * time.Minute
	oneMinuteWindow = time.Minute
)

// AlertFunc receives one rendered alert message per triggered notification.
type AlertFunc func(message string)

// Scanner inspects events on the current and next calendar day on every
// pass. The store's per-occurrence guards make each alert single-fire for
// the process lifetime.
type Scanner struct {
	store *schedule.Store
	alert AlertFunc

	// now is swappable for tests.
	now func() time.Time
}

func NewScanner(store *schedule.Store, alert AlertFunc) *Scanner {
	return &Scanner{
		store: store,
		alert: alert,
		now:   time.Now,
	}
}

// Scan runs one notification pass. Failures are deliberately swallowed: a
// missed notification is not worth crashing the poll loop, and the next tick
// gets a clean retry.
func (s *Scanner) Scan() {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("notification scan recovered", "panic", r)
		}
	}()

	now := s.now()

	for i := 0; i < 2; i++ {
		date := models.DateKeyFor(now.AddDate(0, 0, i))
		for id, event := range s.store.Get(date) {
			start := time.Date(date.Year, time.Month(date.Month), date.Day,
				event.StartHour, event.StartMinute, 0, 0, now.Location())
			delta := start.Sub(now)

			switch {
			case delta > oneMinuteWindow && delta < tenMinuteWindow && !event.TenMinuteNotified:
				s.store.MarkTenMinuteNotified(date, id)
				s.alert(fmt.Sprintf("in %d minutes:\n%s", minuteEstimate(delta), event.Description))
			case delta > 0 && delta < oneMinuteWindow && !event.OneMinuteNotified:
				s.store.MarkOneMinuteNotified(date, id)
				s.alert("in 1 minute:\n" + event.Description)
			}
		}
	}
}

// minuteEstimate floors the remaining time to whole minutes, with a minimum
// of two: inside the ten-minute window "in 1 minutes" would contradict the
// upcoming one-minute alert.
func minuteEstimate(delta time.Duration) int {
	minutes := int(delta / time.Minute)
	if minutes < 2 {
		return 2
	}
	return minutes
}
