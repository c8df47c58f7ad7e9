package schedule

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"hourglass/internal/models"
)

// Store owns the in-memory schedule: every mutation of the date-to-events
// mapping goes through it. It is not safe for concurrent use; hourglass is a
// single-process, single-goroutine-per-mutation application.
type Store struct {
	events map[models.DateKey]map[string]models.Event
}

func NewStore() *Store {
	return &Store{
		events: make(map[models.DateKey]map[string]models.Event),
	}
}

// AddRequest describes one add operation, before recurrence expansion.
type AddRequest struct {
	Date           models.DateKey
	StartHour      int
	StartMinute    int
	DurationHour   int
	DurationMinute int
	Color          string
	Description    string
	Frequency      models.Frequency
	Amount         int
	HonorLeapYears bool
}

// Validate rejects malformed requests before any mutation happens.
func (r AddRequest) Validate() error {
	if !r.Date.Valid() {
		return fmt.Errorf("%w: invalid date %s", ErrInvalidEvent, r.Date)
	}
	probe := models.Event{
		StartHour:      r.StartHour,
		StartMinute:    r.StartMinute,
		DurationHour:   r.DurationHour,
		DurationMinute: r.DurationMinute,
		Color:          r.Color,
		Frequency:      r.Frequency,
		Amount:         r.amount(),
		Description:    r.Description,
	}
	if err := probe.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return nil
}

// amount is the effective occurrence count: non-recurring events always
// collapse to a single occurrence.
func (r AddRequest) amount() int {
	if r.Frequency == models.FrequencyNone {
		return 1
	}
	return r.Amount
}

// Add inserts a new event and, for recurring frequencies, its amount-1
// follow-up occurrences. All occurrences are independent copies sharing one
// fresh recurrence id; each gets its own event id.
//
// Yearly recurrence with HonorLeapYears advances the year component directly
// and silently drops occurrences that land on a nonexistent date (Feb 29 in
// a non-leap year). All other frequencies advance by a flat day step.
func (s *Store) Add(req AddRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	recurrenceID := uuid.New().String()
	amount := req.amount()

	event := models.Event{
		StartHour:      req.StartHour,
		StartMinute:    req.StartMinute,
		DurationHour:   req.DurationHour,
		DurationMinute: req.DurationMinute,
		Color:          req.Color,
		RecurrenceID:   recurrenceID,
		Frequency:      req.Frequency,
		Amount:         amount,
		Description:    strings.TrimSpace(req.Description),
	}

	s.insert(req.Date, event)

	step, recurring := req.Frequency.StepDays()
	if !recurring {
		return nil
	}

	for i := 1; i < amount; i++ {
		var date models.DateKey
		if req.Frequency == models.FrequencyYearly && req.HonorLeapYears {
			date = models.DateKey{Year: req.Date.Year + i, Month: req.Date.Month, Day: req.Date.Day}
			if !date.Valid() {
				continue
			}
		} else {
			date = req.Date.AddDays(i * step)
		}
		s.insert(date, event)
	}

	return nil
}

func (s *Store) insert(date models.DateKey, event models.Event) {
	event.ID = uuid.New().String()
	event.TenMinuteNotified = false
	event.OneMinuteNotified = false

	day, ok := s.events[date]
	if !ok {
		day = make(map[string]models.Event)
		s.events[date] = day
	}
	day[event.ID] = event
}

// Put places an already-built event under the given date, assigning a fresh
// event id. It is the codec's entry point when rebuilding a store from disk.
func (s *Store) Put(date models.DateKey, event models.Event) {
	s.insert(date, event)
}

// Get returns the events scheduled on a date, keyed by event id. The result
// is a copy; mutating it does not change the store.
func (s *Store) Get(date models.DateKey) map[string]models.Event {
	day := s.events[date]
	out := make(map[string]models.Event, len(day))
	for id, ev := range day {
		out[id] = ev
	}
	return out
}

// Dates returns every date with at least one event, in calendar order.
func (s *Store) Dates() []models.DateKey {
	dates := make([]models.DateKey, 0, len(s.events))
	for date := range s.events {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Len returns the total number of occurrences in the store.
func (s *Store) Len() int {
	n := 0
	for _, day := range s.events {
		n += len(day)
	}
	return n
}

// Action selects the edit/remove behavior for one occurrence or its whole
// recurrence group.
type Action string

const (
	ActionRemove    Action = "remove"
	ActionRemoveAll Action = "remove_all"
	ActionEdit      Action = "edit"
	ActionEditAll   Action = "edit_all"
)

// Update holds the mutable occurrence fields for edit actions. An edit never
// moves an occurrence to a different date.
type Update struct {
	StartHour      int
	StartMinute    int
	DurationHour   int
	DurationMinute int
	Color          string
	Description    string
}

// EditOrRemove applies action to the occurrence at date/eventID. Group
// actions follow the occurrence's recurrence id across all dates. The store
// is left untouched when the target does not exist or the update is invalid.
func (s *Store) EditOrRemove(date models.DateKey, eventID string, action Action, update *Update) error {
	day, ok := s.events[date]
	if !ok {
		return fmt.Errorf("%w: no events on %s", ErrNotFound, date)
	}
	target, ok := day[eventID]
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrNotFound, eventID, date)
	}

	switch action {
	case ActionRemove:
		s.remove(date, eventID)
		return nil

	case ActionRemoveAll:
		for _, ref := range s.group(target.RecurrenceID) {
			s.remove(ref.date, ref.id)
		}
		return nil

	case ActionEdit, ActionEditAll:
		if update == nil {
			return fmt.Errorf("%w: edit without updated fields", ErrInvalidEvent)
		}
		if err := s.validateUpdate(target, *update); err != nil {
			return err
		}
		if action == ActionEdit {
			day[eventID] = applyUpdate(target, *update)
			return nil
		}
		for _, ref := range s.group(target.RecurrenceID) {
			s.events[ref.date][ref.id] = applyUpdate(s.events[ref.date][ref.id], *update)
		}
		return nil

	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidEvent, action)
	}
}

func (s *Store) validateUpdate(target models.Event, update Update) error {
	probe := applyUpdate(target, update)
	if err := probe.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return nil
}

func applyUpdate(event models.Event, update Update) models.Event {
	event.StartHour = update.StartHour
	event.StartMinute = update.StartMinute
	event.DurationHour = update.DurationHour
	event.DurationMinute = update.DurationMinute
	event.Color = update.Color
	event.Description = strings.TrimSpace(update.Description)
	return event
}

type occurrenceRef struct {
	date models.DateKey
	id   string
}

// group collects every occurrence sharing a recurrence id. Collected first,
// mutated after, so map iteration never races its own deletes.
func (s *Store) group(recurrenceID string) []occurrenceRef {
	var refs []occurrenceRef
	for date, day := range s.events {
		for id, ev := range day {
			if ev.RecurrenceID == recurrenceID {
				refs = append(refs, occurrenceRef{date: date, id: id})
			}
		}
	}
	return refs
}

func (s *Store) remove(date models.DateKey, eventID string) {
	day, ok := s.events[date]
	if !ok {
		return
	}
	delete(day, eventID)
	if len(day) == 0 {
		delete(s.events, date)
	}
}

// MarkTenMinuteNotified flips the occurrence's ten-minute guard. Missing
// occurrences are ignored; notification bookkeeping never fails.
func (s *Store) MarkTenMinuteNotified(date models.DateKey, eventID string) {
	if ev, ok := s.events[date][eventID]; ok {
		ev.TenMinuteNotified = true
		s.events[date][eventID] = ev
	}
}

// MarkOneMinuteNotified flips the occurrence's one-minute guard.
func (s *Store) MarkOneMinuteNotified(date models.DateKey, eventID string) {
	if ev, ok := s.events[date][eventID]; ok {
		ev.OneMinuteNotified = true
		s.events[date][eventID] = ev
	}
}
