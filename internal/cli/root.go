package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"hourglass/internal/codec"
	"hourglass/internal/config"
	"hourglass/internal/models"
	"hourglass/internal/schedule"
	"hourglass/internal/todo"
)

// Context is shared by every command.
type Context struct {
	Config     *config.Config
	ConfigPath string
}

func (ctx *Context) loadSchedule() (*schedule.Store, error) {
	return codec.Load(ctx.Config.SchedulePath())
}

func (ctx *Context) saveSchedule(store *schedule.Store) error {
	return codec.Save(ctx.Config.SchedulePath(), store)
}

func (ctx *Context) loadToDo() (*todo.List, error) {
	return todo.Load(ctx.Config.ToDoPath())
}

func (ctx *Context) saveToDo(list *todo.List) error {
	return todo.Save(ctx.Config.ToDoPath(), list)
}

// parseDate accepts YYYY-MM-DD or "today".
func parseDate(s string) (models.DateKey, error) {
	if s == "" || s == "today" {
		return models.DateKeyFor(time.Now()), nil
	}
	return models.ParseDateKey(s)
}

// parseClock parses HH:MM into its two components.
func parseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time format: %q (expected HH:MM)", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	return hour, minute, nil
}

type listedEvent struct {
	id    string
	event models.Event
}

// listEvents returns a date's events in a stable display order: start time,
// then event id. CLI commands address events by their position in this list.
func listEvents(store *schedule.Store, date models.DateKey) []listedEvent {
	events := store.Get(date)
	listed := make([]listedEvent, 0, len(events))
	for id, ev := range events {
		listed = append(listed, listedEvent{id: id, event: ev})
	}
	sort.Slice(listed, func(i, j int) bool {
		a, b := listed[i].event, listed[j].event
		if a.StartHour != b.StartHour {
			return a.StartHour < b.StartHour
		}
		if a.StartMinute != b.StartMinute {
			return a.StartMinute < b.StartMinute
		}
		return listed[i].id < listed[j].id
	})
	return listed
}

// resolveEvent maps a 1-based position from a day listing back to the event.
func resolveEvent(store *schedule.Store, date models.DateKey, position int) (listedEvent, error) {
	listed := listEvents(store, date)
	if position < 1 || position > len(listed) {
		return listedEvent{}, fmt.Errorf("no event #%d on %s (%d events)", position, date, len(listed))
	}
	return listed[position-1], nil
}

func formatEventLine(position int, ev models.Event) string {
	recurrence := ""
	if ev.Frequency != models.FrequencyNone {
		recurrence = fmt.Sprintf("  [%s, %d times]", ev.Frequency, ev.Amount)
	}
	duration := ""
	if ev.HasDuration() {
		duration = fmt.Sprintf(" (%02d:%02d)", ev.DurationHour, ev.DurationMinute)
	}
	return fmt.Sprintf("%2d. %s%s  %s%s", position, ev.StartTimeString(), duration, ev.Description, recurrence)
}
