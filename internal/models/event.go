package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Frequency is the recurrence frequency of an event.
type Frequency string

const (
	FrequencyNone    Frequency = "none"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// MaxAmount is the largest recurrence occurrence count. The persisted amount
// field is three digits wide, so anything above it would shift every later
// field in the record.
const MaxAmount = 365

// ParseFrequency parses a frequency name, tolerating the padding used by the
// fixed-width record format.
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(strings.TrimSpace(s)); f {
	case FrequencyNone, FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return f, nil
	default:
		return "", fmt.Errorf("invalid frequency: %q", s)
	}
}

// StepDays returns the day step between consecutive occurrences. The monthly
// step is a flat 30 days and the yearly step a flat 365, matching the
// persisted recurrence semantics. ok is false for FrequencyNone.
func (f Frequency) StepDays() (days int, ok bool) {
	switch f {
	case FrequencyDaily:
		return 1, true
	case FrequencyWeekly:
		return 7, true
	case FrequencyMonthly:
		return 30, true
	case FrequencyYearly:
		return 365, true
	default:
		return 0, false
	}
}

var colorPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

// ValidColor reports whether s is a lowercase #rrggbb hex color.
func ValidColor(s string) bool {
	return colorPattern.MatchString(s)
}

// Event is one scheduled occurrence on a specific day.
//
// ID is unique per occurrence and never persisted; it is regenerated on every
// load. RecurrenceID is shared by all occurrences created together by one add
// and is persisted so group edits and removals survive restarts.
type Event struct {
	ID             string
	StartHour      int
	StartMinute    int
	DurationHour   int
	DurationMinute int
	Color          string // #rrggbb
	RecurrenceID   string // UUID string, 36 characters
	Frequency      Frequency
	Amount         int // total occurrences in the recurrence group
	Description    string

	// Session-local notification guards, never persisted.
	TenMinuteNotified bool
	OneMinuteNotified bool
}

// Validate checks the persisted fields' ranges.
func (e Event) Validate() error {
	if e.StartHour < 0 || e.StartHour > 23 {
		return fmt.Errorf("start hour out of range: %d", e.StartHour)
	}
	if e.StartMinute < 0 || e.StartMinute > 59 {
		return fmt.Errorf("start minute out of range: %d", e.StartMinute)
	}
	if e.DurationHour < 0 || e.DurationHour > 23 {
		return fmt.Errorf("duration hour out of range: %d", e.DurationHour)
	}
	if e.DurationMinute < 0 || e.DurationMinute > 59 {
		return fmt.Errorf("duration minute out of range: %d", e.DurationMinute)
	}
	if !ValidColor(e.Color) {
		return fmt.Errorf("invalid color %q (expected #rrggbb)", e.Color)
	}
	if _, err := ParseFrequency(string(e.Frequency)); err != nil {
		return err
	}
	if e.Amount < 1 || e.Amount > MaxAmount {
		return fmt.Errorf("recurrence amount must be between 1 and %d, got %d", MaxAmount, e.Amount)
	}
	if strings.ContainsAny(e.Description, "\n\r") {
		return fmt.Errorf("description must not contain line breaks")
	}
	return nil
}

// HasDuration reports whether the event occupies a time block rather than
// being a point-in-time marker.
func (e Event) HasDuration() bool {
	return e.DurationHour != 0 || e.DurationMinute != 0
}

// StartTimeString returns the start time as HH:MM.
func (e Event) StartTimeString() string {
	return fmt.Sprintf("%02d:%02d", e.StartHour, e.StartMinute)
}
