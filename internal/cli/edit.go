package cli

import (
	"errors"
	"fmt"
	"strings"

	"hourglass/internal/schedule"
)

type EditCmd struct {
	Date     string  `arg:"" help:"Event date (YYYY-MM-DD or 'today')."`
	Position int     `arg:"" help:"Event position from 'hourglass day'."`
	All      bool    `short:"a" help:"Apply to every occurrence in the recurrence group."`
	Time     *string `short:"t" help:"New start time (HH:MM)."`
	Duration *string `short:"D" help:"New duration (HH:MM)."`
	Color    *string `short:"c" help:"New color (#rrggbb)."`
	Text     *string `short:"m" help:"New description."`
}

func (c *EditCmd) Run(ctx *Context) error {
	date, err := parseDate(c.Date)
	if err != nil {
		return err
	}

	store, err := ctx.loadSchedule()
	if err != nil {
		return err
	}

	target, err := resolveEvent(store, date, c.Position)
	if err != nil {
		return err
	}

	// Start from the event's current fields; flags override selectively.
	update := schedule.Update{
		StartHour:      target.event.StartHour,
		StartMinute:    target.event.StartMinute,
		DurationHour:   target.event.DurationHour,
		DurationMinute: target.event.DurationMinute,
		Color:          target.event.Color,
		Description:    target.event.Description,
	}
	if c.Time != nil {
		if update.StartHour, update.StartMinute, err = parseClock(*c.Time); err != nil {
			return err
		}
	}
	if c.Duration != nil {
		if update.DurationHour, update.DurationMinute, err = parseClock(*c.Duration); err != nil {
			return err
		}
	}
	if c.Color != nil {
		update.Color = strings.ToLower(*c.Color)
	}
	if c.Text != nil {
		update.Description = *c.Text
	}

	action := schedule.ActionEdit
	if c.All {
		action = schedule.ActionEditAll
	}
	if err := store.EditOrRemove(date, target.id, action, &update); err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			return fmt.Errorf("no such scheduled event: %w", err)
		}
		return err
	}

	if err := ctx.saveSchedule(store); err != nil {
		return err
	}

	if c.All {
		fmt.Println("Updated all occurrences in the recurrence group")
	} else {
		fmt.Printf("Updated event on %s\n", date)
	}
	return nil
}
