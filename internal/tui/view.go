package tui

import (
	"fmt"
	"sort"
	"strings"

	"hourglass/internal/models"
)

type listedEvent struct {
	id    string
	event models.Event
}

// dayEvents returns the date's events ordered by start time, then id, so
// the cursor is stable across redraws.
func (m Model) dayEvents(date models.DateKey) []listedEvent {
	events := m.store.Get(date)
	listed := make([]listedEvent, 0, len(events))
	for id, event := range events {
		listed = append(listed, listedEvent{id: id, event: event})
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

func (m Model) selectedDayEvents() []listedEvent {
	return m.dayEvents(m.sunday.AddDays(m.dayIndex))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateEventForm, stateToDoForm:
		return m.form.View()
	case stateToDo:
		return m.todoView()
	default:
		return m.weekView()
	}
}

func (m Model) weekView() string {
	var b strings.Builder

	anchor := m.sunday.AddDays(m.dayIndex).Time()
	title := strings.ToLower(anchor.Format("hourglass - January 2006"))
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")

	if len(m.alerts) > 0 {
		b.WriteString(m.styles.Alert.Render(m.alerts[0]))
		b.WriteString("\n\n")
	}

	today := models.DateKeyFor(m.now)
	for i := 0; i < 7; i++ {
		date := m.sunday.AddDays(i)
		header := fmt.Sprintf("%s %s", date.Time().Format("Mon"), date.String())
		if date == today {
			header += " (today)"
		}

		switch {
		case i == m.dayIndex:
			b.WriteString(m.styles.SelectedDay.Render(header))
		default:
			b.WriteString(m.styles.DayHeader.Render(header))
		}
		b.WriteString("\n")

		listed := m.dayEvents(date)
		if len(listed) == 0 {
			b.WriteString(m.styles.Faint.Render("  no events"))
			b.WriteString("\n")
		}
		for j, entry := range listed {
			line := "  " + formatEvent(entry.event)
			rendered := eventStyle(entry.event.Color).Render(line)
			if i == m.dayIndex && j == m.eventIndex {
				rendered = m.styles.Selected.Render(line)
			}
			b.WriteString(rendered)
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) todoView() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("hourglass - to-do"))
	b.WriteString("\n\n")

	items := m.todos.Items()
	if len(items) == 0 {
		b.WriteString(m.styles.Faint.Render("  nothing to do"))
		b.WriteString("\n")
	}
	for i, item := range items {
		marker := "[ ]"
		if item.Done {
			marker = "[x]"
		}
		line := fmt.Sprintf("  %s %s", marker, item.Description)

		switch {
		case i == m.todoIndex:
			b.WriteString(m.styles.Selected.Render(line))
		case item.Done:
			b.WriteString(m.styles.Done.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func formatEvent(event models.Event) string {
	var b strings.Builder
	b.WriteString(event.StartTimeString())
	if event.HasDuration() {
		b.WriteString(fmt.Sprintf(" (%02d:%02d)", event.DurationHour, event.DurationMinute))
	}
	b.WriteString("  ")
	b.WriteString(event.Description)
	if event.Frequency != models.FrequencyNone {
		b.WriteString(fmt.Sprintf("  [%s]", event.Frequency))
	}
	return b.String()
}
