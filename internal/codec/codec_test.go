package codec

import (
	"errors"
	"strings"
	"testing"

	"hourglass/internal/models"
)

const testRecurrenceID = "3b241101-e2bb-4255-8caf-4136c566a962"

func testEvent() (models.DateKey, models.Event) {
	return models.DateKey{Year: 2026, Month: 9, Day: 1}, models.Event{
		StartHour:      14,
		StartMinute:    30,
		DurationHour:   1,
		DurationMinute: 15,
		Color:          "#838383",
		RecurrenceID:   testRecurrenceID,
		Frequency:      models.FrequencyWeekly,
		Amount:         4,
		Description:    "team meeting",
	}
}

func TestEncodeLineLayout(t *testing.T) {
	date, event := testEvent()
	line := EncodeLine(date, event)

	want := "20260901" + "1430" + "0115" + "#838383" + testRecurrenceID + " weekly" + "004" + "team meeting\n"
	if line != want {
		t.Fatalf("EncodeLine =\n%q\nwant\n%q", line, want)
	}

	body := strings.TrimSuffix(line, "\n")
	checks := []struct {
		name string
		from int
		to   int
		want string
	}{
		{"year", offYear, offMonth, "2026"},
		{"month", offMonth, offDay, "09"},
		{"day", offDay, offStartHour, "01"},
		{"start", offStartHour, offDurationHour, "1430"},
		{"duration", offDurationHour, offColor, "0115"},
		{"color", offColor, offRecurrenceID, "#838383"},
		{"recurrence id", offRecurrenceID, offFrequency, testRecurrenceID},
		{"frequency", offFrequency, offAmount, " weekly"},
		{"amount", offAmount, offDescription, "004"},
		{"description", offDescription, len(body), "team meeting"},
	}
	for _, c := range checks {
		if got := body[c.from:c.to]; got != c.want {
			t.Errorf("%s field = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestDecodeLineRoundTrip(t *testing.T) {
	date, event := testEvent()
	gotDate, gotEvent, err := DecodeLine(EncodeLine(date, event))
	if err != nil {
		t.Fatalf("DecodeLine: %v", err)
	}
	if gotDate != date {
		t.Errorf("date = %v, want %v", gotDate, date)
	}

	// Ids are never persisted and guards always reset.
	if gotEvent.ID != "" {
		t.Errorf("decoded event has id %q", gotEvent.ID)
	}
	if gotEvent.TenMinuteNotified || gotEvent.OneMinuteNotified {
		t.Error("decoded event has notification guards set")
	}

	event.ID = ""
	if gotEvent != event {
		t.Errorf("event = %+v, want %+v", gotEvent, event)
	}
}

func TestDecodeLineShortRecord(t *testing.T) {
	for _, line := range []string{"", "2026", strings.Repeat("x", MinRecordLen-1)} {
		_, _, err := DecodeLine(line)
		if !errors.Is(err, ErrShortRecord) {
			t.Errorf("DecodeLine(%d chars) error = %v, want ErrShortRecord", len(line), err)
		}
	}

	// Exactly MinRecordLen is decodable: the description may be empty.
	date, event := testEvent()
	event.Description = ""
	line := EncodeLine(date, event)
	if len(strings.TrimSuffix(line, "\n")) != MinRecordLen {
		t.Fatalf("empty-description record is %d chars, want %d", len(line)-1, MinRecordLen)
	}
	if _, _, err := DecodeLine(line); err != nil {
		t.Errorf("DecodeLine(minimal record): %v", err)
	}
}

func TestDecodeLineBadFields(t *testing.T) {
	date, event := testEvent()
	good := strings.TrimSuffix(EncodeLine(date, event), "\n")

	corrupt := func(from int, replacement string) string {
		return good[:from] + replacement + good[from+len(replacement):]
	}

	tests := []struct {
		name string
		line string
	}{
		{"letters in year", corrupt(offYear, "20XX")},
		{"letters in start hour", corrupt(offStartHour, "ab")},
		{"unknown frequency", corrupt(offFrequency, "monthsy")},
		{"letters in amount", corrupt(offAmount, "0x4")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := DecodeLine(tt.line); err == nil {
				t.Errorf("DecodeLine(%q) succeeded, want error", tt.line)
			}
		})
	}
}

func TestEncodeLineMaxAmountKeepsFieldWidths(t *testing.T) {
	// The amount field is three digits; the largest valid amount must not
	// widen it and shift the description.
	date, event := testEvent()
	event.Amount = models.MaxAmount

	gotDate, gotEvent, err := DecodeLine(EncodeLine(date, event))
	if err != nil {
		t.Fatalf("DecodeLine: %v", err)
	}
	if gotDate != date {
		t.Errorf("date = %v, want %v", gotDate, date)
	}
	if gotEvent.Amount != models.MaxAmount {
		t.Errorf("amount = %d, want %d", gotEvent.Amount, models.MaxAmount)
	}
	if gotEvent.Description != event.Description {
		t.Errorf("description = %q, want %q", gotEvent.Description, event.Description)
	}
}

func TestDecodeLineTrimsTerminatorsAndPadding(t *testing.T) {
	date, event := testEvent()
	event.Description = "  padded  "
	line := strings.TrimSuffix(EncodeLine(date, event), "\n") + "\r\n"

	_, got, err := DecodeLine(line)
	if err != nil {
		t.Fatalf("DecodeLine: %v", err)
	}
	if got.Description != "padded" {
		t.Errorf("description = %q, want %q", got.Description, "padded")
	}
}
