// Package codec maps schedule events to and from the fixed-width text record
// format. Each occurrence is one line; fields live at fixed character
// offsets, with no delimiters and no escaping. The layout is byte-for-byte
// compatible with existing schedule files and must not change.
package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"hourglass/internal/models"
)

// Field offsets within one record, in characters.
const (
	offYear           = 0
	offMonth          = 4
	offDay            = 6
	offStartHour      = 8
	offStartMinute    = 10
	offDurationHour   = 12
	offDurationMinute = 14
	offColor          = 16
	offRecurrenceID   = 23
	offFrequency      = 59
	offAmount         = 66
	offDescription    = 69

	// MinRecordLen is the shortest decodable record: every fixed-width field
	// present, description possibly empty.
	MinRecordLen = offDescription
)

// ErrShortRecord indicates a schedule file line shorter than the fixed-width
// header. It is fatal at load time; there is no partial-schedule recovery.
var ErrShortRecord = errors.New("schedule record too short")

// EncodeLine renders one occurrence as a complete record line, terminator
// included. Numeric fields are zero-padded, the frequency is right-justified
// in its 7-character field, and trailing whitespace is stripped from the
// description so the line re-parses to an identical event.
func EncodeLine(date models.DateKey, event models.Event) string {
	return fmt.Sprintf("%04d%02d%02d%02d%02d%02d%02d%s%s%7s%03d%s\n",
		date.Year, date.Month, date.Day,
		event.StartHour, event.StartMinute,
		event.DurationHour, event.DurationMinute,
		event.Color,
		event.RecurrenceID,
		string(event.Frequency),
		event.Amount,
		strings.TrimSpace(event.Description),
	)
}

// DecodeLine parses one record line into its date key and event. The event
// gets no id (ids are not persisted; the store assigns a fresh one) and both
// notification guards reset to false.
func DecodeLine(line string) (models.DateKey, models.Event, error) {
	line = strings.TrimRight(line, "\r\n")
	if len(line) < MinRecordLen {
		return models.DateKey{}, models.Event{}, fmt.Errorf("%w: %d chars, want at least %d", ErrShortRecord, len(line), MinRecordLen)
	}

	date := models.DateKey{}
	event := models.Event{}

	fields := []struct {
		name string
		from int
		to   int
		dst  *int
	}{
		{"year", offYear, offMonth, &date.Year},
		{"month", offMonth, offDay, &date.Month},
		{"day", offDay, offStartHour, &date.Day},
		{"start hour", offStartHour, offStartMinute, &event.StartHour},
		{"start minute", offStartMinute, offDurationHour, &event.StartMinute},
		{"duration hour", offDurationHour, offDurationMinute, &event.DurationHour},
		{"duration minute", offDurationMinute, offColor, &event.DurationMinute},
		{"amount", offAmount, offDescription, &event.Amount},
	}
	for _, f := range fields {
		n, err := strconv.Atoi(line[f.from:f.to])
		if err != nil {
			return models.DateKey{}, models.Event{}, fmt.Errorf("invalid %s field %q: %w", f.name, line[f.from:f.to], err)
		}
		*f.dst = n
	}

	frequency, err := models.ParseFrequency(line[offFrequency:offAmount])
	if err != nil {
		return models.DateKey{}, models.Event{}, err
	}

	event.Color = line[offColor:offRecurrenceID]
	event.RecurrenceID = line[offRecurrenceID:offFrequency]
	event.Frequency = frequency
	event.Description = strings.TrimSpace(line[offDescription:])

	return date, event, nil
}
