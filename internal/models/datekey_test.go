package models

import (
	"testing"
	"time"
)

func TestDateKeyValid(t *testing.T) {
	tests := []struct {
		name string
		key  DateKey
		want bool
	}{
		{"ordinary day", DateKey{2026, 3, 15}, true},
		{"leap day in leap year", DateKey{2024, 2, 29}, true},
		{"leap day in non-leap year", DateKey{2025, 2, 29}, false},
		{"century non-leap year", DateKey{2100, 2, 29}, false},
		{"month thirteen", DateKey{2026, 13, 1}, false},
		{"day zero", DateKey{2026, 1, 0}, false},
		{"day overflow", DateKey{2026, 4, 31}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.Valid(); got != tt.want {
				t.Errorf("Valid(%s) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestParseDateKey(t *testing.T) {
	key, err := ParseDateKey("2026-08-28")
	if err != nil {
		t.Fatalf("ParseDateKey: %v", err)
	}
	if key != (DateKey{2026, 8, 28}) {
		t.Errorf("got %v", key)
	}

	for _, bad := range []string{"", "2026/08/28", "28-08-2026", "2026-13-01", "today"} {
		if _, err := ParseDateKey(bad); err == nil {
			t.Errorf("ParseDateKey(%q) succeeded, want error", bad)
		}
	}
}

func TestDateKeyAddDays(t *testing.T) {
	tests := []struct {
		start DateKey
		days  int
		want  DateKey
	}{
		{DateKey{2026, 1, 31}, 1, DateKey{2026, 2, 1}},
		{DateKey{2026, 12, 31}, 1, DateKey{2027, 1, 1}},
		{DateKey{2024, 2, 28}, 1, DateKey{2024, 2, 29}},
		{DateKey{2026, 3, 1}, -1, DateKey{2026, 2, 28}},
		{DateKey{2026, 1, 1}, 30, DateKey{2026, 1, 31}},
	}
	for _, tt := range tests {
		if got := tt.start.AddDays(tt.days); got != tt.want {
			t.Errorf("%s.AddDays(%d) = %s, want %s", tt.start, tt.days, got, tt.want)
		}
	}
}

func TestDateKeyBefore(t *testing.T) {
	a := DateKey{2026, 5, 10}
	for _, later := range []DateKey{{2027, 1, 1}, {2026, 6, 1}, {2026, 5, 11}} {
		if !a.Before(later) {
			t.Errorf("%s.Before(%s) = false, want true", a, later)
		}
		if later.Before(a) {
			t.Errorf("%s.Before(%s) = true, want false", later, a)
		}
	}
	if a.Before(a) {
		t.Error("date compares before itself")
	}
}

func TestDateKeyFor(t *testing.T) {
	ts := time.Date(2026, time.August, 28, 23, 59, 59, 0, time.Local)
	if got := DateKeyFor(ts); got != (DateKey{2026, 8, 28}) {
		t.Errorf("DateKeyFor = %v", got)
	}
}

func TestDateKeyString(t *testing.T) {
	if got := (DateKey{2026, 1, 5}).String(); got != "2026-01-05" {
		t.Errorf("String() = %q, want %q", got, "2026-01-05")
	}
}
