package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"hourglass/internal/models"
)

// newEventForm builds the add or edit form. Editing never changes date or
// recurrence, so those fields only appear when adding.
func newEventForm(data *eventForm, adding bool) *huh.Form {
	fields := []huh.Field{}

	if adding {
		fields = append(fields, huh.NewInput().
			Title("date").
			Description("YYYY-MM-DD").
			Value(&data.Date).
			Validate(validateDate))
	}

	fields = append(fields,
		huh.NewInput().
			Title("start").
			Description("HH:MM").
			Value(&data.Time).
			Validate(validateClock),
		huh.NewInput().
			Title("duration").
			Description("HH:MM, 00:00 for none").
			Value(&data.Duration).
			Validate(validateClock),
		huh.NewInput().
			Title("color").
			Description("#rrggbb").
			Value(&data.Color).
			Validate(validateColor),
		huh.NewInput().
			Title("description").
			Value(&data.Description).
			Validate(validateDescription),
	)

	if adding {
		fields = append(fields,
			huh.NewSelect[models.Frequency]().
				Title("repeat").
				Options(
					huh.NewOption("none", models.FrequencyNone),
					huh.NewOption("daily", models.FrequencyDaily),
					huh.NewOption("weekly", models.FrequencyWeekly),
					huh.NewOption("monthly", models.FrequencyMonthly),
					huh.NewOption("yearly", models.FrequencyYearly),
				).
				Value(&data.Frequency),
			huh.NewInput().
				Title("times").
				Description("occurrences, including the first").
				Value(&data.Times).
				Validate(validateTimes),
			huh.NewConfirm().
				Title("honor leap years?").
				Description("yearly repeats keep the calendar date").
				Value(&data.LeapYears),
		)
	}

	return huh.NewForm(huh.NewGroup(fields...))
}

func newToDoForm(text *string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("to-do").
			Value(text).
			Validate(validateDescription),
	))
}

func validateDate(s string) error {
	if _, err := models.ParseDateKey(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD")
	}
	return nil
}

func validateClock(s string) error {
	hour, minute, err := splitClock(s)
	if err != nil {
		return fmt.Errorf("expected HH:MM")
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("out of range")
	}
	return nil
}

func validateColor(s string) error {
	if !models.ValidColor(strings.ToLower(strings.TrimSpace(s))) {
		return fmt.Errorf("expected #rrggbb")
	}
	return nil
}

func validateDescription(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be empty")
	}
	if strings.ContainsAny(s, "\n\r") {
		return fmt.Errorf("cannot span lines")
	}
	return nil
}

func validateTimes(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > models.MaxAmount {
		return fmt.Errorf("expected a number between 1 and %d", models.MaxAmount)
	}
	return nil
}
