package models

import (
	"fmt"
	"time"
)

// DateKey identifies a calendar day. It is the grouping key for scheduled
// events and orders by calendar date.
type DateKey struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// DateKeyFor returns the DateKey for the calendar day containing t.
func DateKeyFor(t time.Time) DateKey {
	return DateKey{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// ParseDateKey parses a YYYY-MM-DD date string.
func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return DateKey{}, fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
	}
	return DateKeyFor(t), nil
}

// Valid reports whether the key names a real calendar date. Normalization by
// the time package shifts impossible dates (e.g. Feb 29 in a non-leap year),
// so a round-trip comparison catches them.
func (k DateKey) Valid() bool {
	if k.Month < 1 || k.Month > 12 || k.Day < 1 {
		return false
	}
	t := k.Time()
	return t.Year() == k.Year && int(t.Month()) == k.Month && t.Day() == k.Day
}

// Time returns midnight local time on the keyed day.
func (k DateKey) Time() time.Time {
	return time.Date(k.Year, time.Month(k.Month), k.Day, 0, 0, 0, 0, time.Local)
}

// AddDays returns the key n calendar days after k.
func (k DateKey) AddDays(n int) DateKey {
	return DateKeyFor(k.Time().AddDate(0, 0, n))
}

// Before reports whether k is an earlier calendar day than other.
func (k DateKey) Before(other DateKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	if k.Month != other.Month {
		return k.Month < other.Month
	}
	return k.Day < other.Day
}

func (k DateKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, k.Month, k.Day)
}
