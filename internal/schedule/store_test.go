package schedule

import (
	"errors"
	"testing"

	"hourglass/internal/models"
)

func baseRequest() AddRequest {
	return AddRequest{
		Date:        models.DateKey{Year: 2026, Month: 9, Day: 1},
		StartHour:   10,
		StartMinute: 0,
		Color:       "#838383",
		Description: "standup",
		Frequency:   models.FrequencyNone,
		Amount:      1,
	}
}

func singleEvent(t *testing.T, s *Store, date models.DateKey) (string, models.Event) {
	t.Helper()
	events := s.Get(date)
	if len(events) != 1 {
		t.Fatalf("expected 1 event on %s, got %d", date, len(events))
	}
	for id, ev := range events {
		return id, ev
	}
	return "", models.Event{}
}

func TestAddSingleEvent(t *testing.T) {
	s := NewStore()
	req := baseRequest()
	if err := s.Add(req); err != nil {
		t.Fatalf("Add: %v", err)
	}

	id, ev := singleEvent(t, s, req.Date)
	if id == "" || ev.ID != id {
		t.Errorf("event id not assigned: key %q, field %q", id, ev.ID)
	}
	if ev.RecurrenceID == "" {
		t.Error("recurrence id not assigned")
	}
	if ev.Amount != 1 {
		t.Errorf("amount = %d, want 1", ev.Amount)
	}
	if ev.TenMinuteNotified || ev.OneMinuteNotified {
		t.Error("notification guards not reset on insert")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestAddWeeklyRecurrence(t *testing.T) {
	s := NewStore()
	req := baseRequest()
	req.Frequency = models.FrequencyWeekly
	req.Amount = 4
	if err := s.Add(req); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}

	var recurrenceID string
	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		date := req.Date.AddDays(i * 7)
		id, ev := singleEvent(t, s, date)
		if seen[id] {
			t.Errorf("duplicate event id %s", id)
		}
		seen[id] = true
		if recurrenceID == "" {
			recurrenceID = ev.RecurrenceID
		} else if ev.RecurrenceID != recurrenceID {
			t.Errorf("occurrence on %s has recurrence id %s, want %s", date, ev.RecurrenceID, recurrenceID)
		}
		if ev.Amount != 4 {
			t.Errorf("occurrence on %s has amount %d, want 4", date, ev.Amount)
		}
	}
}

func TestAddMonthlyUsesFlatThirtyDays(t *testing.T) {
	s := NewStore()
	req := baseRequest()
	req.Date = models.DateKey{Year: 2026, Month: 1, Day: 31}
	req.Frequency = models.FrequencyMonthly
	req.Amount = 2
	if err := s.Add(req); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// 30 days after Jan 31 is Mar 2 in a non-leap year, not Feb 28.
	second := models.DateKey{Year: 2026, Month: 3, Day: 2}
	if len(s.Get(second)) != 1 {
		t.Errorf("expected second occurrence on %s, got dates %v", second, s.Dates())
	}
}

func TestAddYearlyHonorLeapYears(t *testing.T) {
	s := NewStore()
	req := baseRequest()
	req.Date = models.DateKey{Year: 2024, Month: 2, Day: 29}
	req.Frequency = models.FrequencyYearly
	req.Amount = 5
	req.HonorLeapYears = true
	if err := s.Add(req); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// 2025-2027 have no Feb 29, so only the leap years survive.
	wantDates := []models.DateKey{
		{Year: 2024, Month: 2, Day: 29},
		{Year: 2028, Month: 2, Day: 29},
	}
	got := s.Dates()
	if len(got) != len(wantDates) {
		t.Fatalf("Dates() = %v, want %v", got, wantDates)
	}
	for i := range wantDates {
		if got[i] != wantDates[i] {
			t.Errorf("Dates()[%d] = %s, want %s", i, got[i], wantDates[i])
		}
	}
}

func TestAddYearlyFlatStep(t *testing.T) {
	s := NewStore()
	req := baseRequest()
	req.Date = models.DateKey{Year: 2024, Month: 2, Day: 29}
	req.Frequency = models.FrequencyYearly
	req.Amount = 2
	req.HonorLeapYears = false
	if err := s.Add(req); err != nil {
		t.Fatalf("Add: %v", err)
	}

	second := req.Date.AddDays(365)
	if len(s.Get(second)) != 1 {
		t.Errorf("expected flat-step occurrence on %s, got dates %v", second, s.Dates())
	}
}

func TestAddNonRecurringIgnoresAmount(t *testing.T) {
	s := NewStore()
	req := baseRequest()
	req.Amount = 7
	if err := s.Add(req); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	_, ev := singleEvent(t, s, req.Date)
	if ev.Amount != 1 {
		t.Errorf("amount = %d, want 1", ev.Amount)
	}
}

func TestAddInvalidRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AddRequest)
	}{
		{"invalid date", func(r *AddRequest) { r.Date = models.DateKey{Year: 2025, Month: 2, Day: 29} }},
		{"hour out of range", func(r *AddRequest) { r.StartHour = 24 }},
		{"bad color", func(r *AddRequest) { r.Color = "red" }},
		{"recurring with zero amount", func(r *AddRequest) { r.Frequency = models.FrequencyDaily; r.Amount = 0 }},
		{"amount beyond record field", func(r *AddRequest) { r.Frequency = models.FrequencyDaily; r.Amount = models.MaxAmount + 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			req := baseRequest()
			tt.mutate(&req)
			err := s.Add(req)
			if !errors.Is(err, ErrInvalidEvent) {
				t.Fatalf("Add error = %v, want ErrInvalidEvent", err)
			}
			if s.Len() != 0 {
				t.Errorf("store mutated by rejected add: Len() = %d", s.Len())
			}
		})
	}
}

func TestEditSingleOccurrence(t *testing.T) {
	s := NewStore()
	req := baseRequest()
	req.Frequency = models.FrequencyDaily
	req.Amount = 3
	if err := s.Add(req); err != nil {
		t.Fatalf("Add: %v", err)
	}

	id, _ := singleEvent(t, s, req.Date)
	update := Update{
		StartHour:   11,
		StartMinute: 15,
		Color:       "#ff0000",
		Description: "moved standup",
	}
	if err := s.EditOrRemove(req.Date, id, ActionEdit, &update); err != nil {
		t.Fatalf("EditOrRemove: %v", err)
	}

	_, edited := singleEvent(t, s, req.Date)
	if edited.StartHour != 11 || edited.Color != "#ff0000" || edited.Description != "moved standup" {
		t.Errorf("edit not applied: %+v", edited)
	}

	// Other occurrences keep the original fields.
	_, untouched := singleEvent(t, s, req.Date.AddDays(1))
	if untouched.StartHour != 10 || untouched.Color != "#838383" {
		t.Errorf("single edit leaked into group: %+v", untouched)
	}
}

func TestEditAllOccurrences(t *testing.T) {
	s := NewStore()
	req := baseRequest()
	req.Frequency = models.FrequencyDaily
	req.Amount = 3
	if err := s.Add(req); err != nil {
		t.Fatalf("Add: %v", err)
	}

	id, _ := singleEvent(t, s, req.Date.AddDays(1))
	update := Update{StartHour: 8, StartMinute: 45, Color: "#00ff00", Description: "early standup"}
	if err := s.EditOrRemove(req.Date.AddDays(1), id, ActionEditAll, &update); err != nil {
		t.Fatalf("EditOrRemove: %v", err)
	}

	for i := 0; i < 3; i++ {
		_, ev := singleEvent(t, s, req.Date.AddDays(i))
		if ev.StartHour != 8 || ev.Description != "early standup" {
			t.Errorf("occurrence %d not updated: %+v", i, ev)
		}
	}
}

func TestRemoveSingleAndGroup(t *testing.T) {
	s := NewStore()
	req := baseRequest()
	req.Frequency = models.FrequencyWeekly
	req.Amount = 3
	if err := s.Add(req); err != nil {
		t.Fatalf("Add: %v", err)
	}

	id, _ := singleEvent(t, s, req.Date)
	if err := s.EditOrRemove(req.Date, id, ActionRemove, nil); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() after remove = %d, want 2", s.Len())
	}
	if len(s.Get(req.Date)) != 0 {
		t.Error("removed occurrence still present")
	}

	id2, _ := singleEvent(t, s, req.Date.AddDays(7))
	if err := s.EditOrRemove(req.Date.AddDays(7), id2, ActionRemoveAll, nil); err != nil {
		t.Fatalf("remove_all: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() after remove_all = %d, want 0", s.Len())
	}
	if len(s.Dates()) != 0 {
		t.Errorf("empty dates not pruned: %v", s.Dates())
	}
}

func TestEditOrRemoveNotFound(t *testing.T) {
	s := NewStore()
	req := baseRequest()
	if err := s.Add(req); err != nil {
		t.Fatalf("Add: %v", err)
	}

	err := s.EditOrRemove(req.Date, "no-such-id", ActionRemove, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	err = s.EditOrRemove(models.DateKey{Year: 2030, Month: 1, Day: 1}, "x", ActionRemove, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if s.Len() != 1 {
		t.Errorf("store mutated by failed operation: Len() = %d", s.Len())
	}
}

func TestEditInvalidUpdateLeavesStoreUntouched(t *testing.T) {
	s := NewStore()
	req := baseRequest()
	if err := s.Add(req); err != nil {
		t.Fatalf("Add: %v", err)
	}
	id, before := singleEvent(t, s, req.Date)

	update := Update{StartHour: 99, Color: "#ffffff", Description: "x"}
	err := s.EditOrRemove(req.Date, id, ActionEdit, &update)
	if !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("error = %v, want ErrInvalidEvent", err)
	}

	_, after := singleEvent(t, s, req.Date)
	if after != before {
		t.Errorf("rejected edit changed the event: %+v -> %+v", before, after)
	}
}

func TestNotificationGuards(t *testing.T) {
	s := NewStore()
	req := baseRequest()
	if err := s.Add(req); err != nil {
		t.Fatalf("Add: %v", err)
	}
	id, _ := singleEvent(t, s, req.Date)

	s.MarkTenMinuteNotified(req.Date, id)
	_, ev := singleEvent(t, s, req.Date)
	if !ev.TenMinuteNotified || ev.OneMinuteNotified {
		t.Errorf("guards = %v/%v after ten-minute mark", ev.TenMinuteNotified, ev.OneMinuteNotified)
	}

	s.MarkOneMinuteNotified(req.Date, id)
	_, ev = singleEvent(t, s, req.Date)
	if !ev.OneMinuteNotified {
		t.Error("one-minute guard not set")
	}

	// Unknown targets are a no-op.
	s.MarkTenMinuteNotified(req.Date, "missing")
	s.MarkOneMinuteNotified(models.DateKey{Year: 2030, Month: 1, Day: 1}, "missing")
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewStore()
	req := baseRequest()
	if err := s.Add(req); err != nil {
		t.Fatalf("Add: %v", err)
	}

	events := s.Get(req.Date)
	for id := range events {
		delete(events, id)
	}
	if s.Len() != 1 {
		t.Error("mutating Get result changed the store")
	}
}
