package cli

import (
	"errors"
	"fmt"
	"strings"

	"hourglass/internal/models"
	"hourglass/internal/schedule"
)

type AddCmd struct {
	Description []string `arg:"" help:"Event description."`
	Date        string   `short:"d" help:"Event date (YYYY-MM-DD or 'today')." default:"today"`
	Time        string   `short:"t" help:"Start time (HH:MM)." required:""`
	Duration    string   `short:"D" help:"Duration (HH:MM)." default:"00:00"`
	Color       string   `short:"c" help:"Event color (#rrggbb)." default:"#838383"`
	Recur       string   `short:"r" help:"Recurrence frequency (none|daily|weekly|monthly|yearly)." default:"none"`
	Times       int      `short:"n" help:"Total occurrences, first included (1-365)." default:"1"`
	FlatYearly  bool     `help:"Step yearly recurrences a flat 365 days instead of honoring leap years."`
}

func (c *AddCmd) Run(ctx *Context) error {
	date, err := parseDate(c.Date)
	if err != nil {
		return err
	}
	startHour, startMinute, err := parseClock(c.Time)
	if err != nil {
		return err
	}
	durationHour, durationMinute, err := parseClock(c.Duration)
	if err != nil {
		return err
	}
	frequency, err := models.ParseFrequency(c.Recur)
	if err != nil {
		return err
	}

	store, err := ctx.loadSchedule()
	if err != nil {
		return err
	}

	req := schedule.AddRequest{
		Date:           date,
		StartHour:      startHour,
		StartMinute:    startMinute,
		DurationHour:   durationHour,
		DurationMinute: durationMinute,
		Color:          strings.ToLower(c.Color),
		Description:    strings.Join(c.Description, " "),
		Frequency:      frequency,
		Amount:         c.Times,
		HonorLeapYears: ctx.Config.HonorLeapYears && !c.FlatYearly,
	}
	if err := store.Add(req); err != nil {
		if errors.Is(err, schedule.ErrInvalidEvent) {
			return fmt.Errorf("cannot add event: %w", err)
		}
		return err
	}

	if err := ctx.saveSchedule(store); err != nil {
		return err
	}

	if frequency == models.FrequencyNone {
		fmt.Printf("Added event on %s at %02d:%02d\n", date, startHour, startMinute)
	} else {
		fmt.Printf("Added %s event, %d occurrences starting %s at %02d:%02d\n",
			frequency, c.Times, date, startHour, startMinute)
	}
	return nil
}
