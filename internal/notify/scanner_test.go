package notify

import (
	"strings"
	"testing"
	"time"

	"hourglass/internal/models"
	"hourglass/internal/schedule"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func addEventAt(t *testing.T, store *schedule.Store, start time.Time) {
	t.Helper()
	err := store.Add(schedule.AddRequest{
		Date:        models.DateKeyFor(start),
		StartHour:   start.Hour(),
		StartMinute: start.Minute(),
		Color:       "#838383",
		Description: "call mom",
		Frequency:   models.FrequencyNone,
		Amount:      1,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
}

func TestScanTenMinuteAlert(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.Local)
	store := schedule.NewStore()
	addEventAt(t, store, now.Add(5*time.Minute))

	var alerts []string
	s := NewScanner(store, func(msg string) { alerts = append(alerts, msg) })
	s.now = fixedClock(now)

	s.Scan()
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1", len(alerts))
	}
	if alerts[0] != "in 5 minutes:\ncall mom" {
		t.Errorf("alert = %q", alerts[0])
	}

	// The guard makes the alert single-fire.
	s.Scan()
	s.Scan()
	if len(alerts) != 1 {
		t.Errorf("repeated scans produced %d alerts, want 1", len(alerts))
	}
}

func TestScanOneMinuteAlert(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.Local)
	store := schedule.NewStore()
	addEventAt(t, store, now.Add(30*time.Second))

	var alerts []string
	s := NewScanner(store, func(msg string) { alerts = append(alerts, msg) })
	s.now = fixedClock(now)

	s.Scan()
	s.Scan()
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1", len(alerts))
	}
	if alerts[0] != "in 1 minute:\ncall mom" {
		t.Errorf("alert = %q", alerts[0])
	}
}

func TestScanWindowBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		offset     time.Duration
		wantAlerts int
	}{
		{"already started", -time.Minute, 0},
		{"starting now", 0, 0},
		{"exactly one minute", time.Minute, 0},
		{"just inside one-minute window", 59 * time.Second, 1},
		{"just inside ten-minute window", 9*time.Minute + 59*time.Second, 1},
		{"exactly ten minutes", 10 * time.Minute, 0},
		{"well beyond the window", time.Hour, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.Local)
			store := schedule.NewStore()
			addEventAt(t, store, now.Add(tt.offset))

			count := 0
			s := NewScanner(store, func(string) { count++ })
			s.now = fixedClock(now)
			s.Scan()

			if count != tt.wantAlerts {
				t.Errorf("got %d alerts, want %d", count, tt.wantAlerts)
			}
		})
	}
}

func TestScanCrossesMidnight(t *testing.T) {
	// 23:55 today, event at 00:03 tomorrow: the two-day scan picks it up.
	now := time.Date(2026, time.September, 1, 23, 55, 0, 0, time.Local)
	store := schedule.NewStore()
	addEventAt(t, store, now.Add(8*time.Minute))

	var alerts []string
	s := NewScanner(store, func(msg string) { alerts = append(alerts, msg) })
	s.now = fixedClock(now)
	s.Scan()

	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1", len(alerts))
	}
	if !strings.HasPrefix(alerts[0], "in 8 minutes:") {
		t.Errorf("alert = %q", alerts[0])
	}
}

func TestScanEscalatesToOneMinute(t *testing.T) {
	start := time.Date(2026, time.September, 1, 12, 10, 0, 0, time.Local)
	store := schedule.NewStore()
	addEventAt(t, store, start)

	var alerts []string
	s := NewScanner(store, func(msg string) { alerts = append(alerts, msg) })

	s.now = fixedClock(start.Add(-5 * time.Minute))
	s.Scan()
	s.now = fixedClock(start.Add(-30 * time.Second))
	s.Scan()

	if len(alerts) != 2 {
		t.Fatalf("got %d alerts, want 2", len(alerts))
	}
	if !strings.HasPrefix(alerts[0], "in 5 minutes:") || !strings.HasPrefix(alerts[1], "in 1 minute:") {
		t.Errorf("alerts = %q", alerts)
	}
}

func TestScanSurvivesPanickingAlert(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.Local)
	store := schedule.NewStore()
	addEventAt(t, store, now.Add(5*time.Minute))

	s := NewScanner(store, func(string) { panic("notifier exploded") })
	s.now = fixedClock(now)

	// Must not propagate the panic.
	s.Scan()
}

func TestMinuteEstimate(t *testing.T) {
	tests := []struct {
		delta time.Duration
		want  int
	}{
		{9*time.Minute + 59*time.Second, 9},
		{5 * time.Minute, 5},
		{2*time.Minute + 30*time.Second, 2},
		{90 * time.Second, 2},
		{61 * time.Second, 2},
	}
	for _, tt := range tests {
		if got := minuteEstimate(tt.delta); got != tt.want {
			t.Errorf("minuteEstimate(%s) = %d, want %d", tt.delta, got, tt.want)
		}
	}
}
