package cli

import (
	"errors"
	"fmt"

	"hourglass/internal/schedule"
)

type RemoveCmd struct {
	Date     string `arg:"" help:"Event date (YYYY-MM-DD or 'today')."`
	Position int    `arg:"" help:"Event position from 'hourglass day'."`
	All      bool   `short:"a" help:"Remove every occurrence in the recurrence group."`
}

func (c *RemoveCmd) Run(ctx *Context) error {
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

	action := schedule.ActionRemove
	if c.All {
		action = schedule.ActionRemoveAll
	}
	if err := store.EditOrRemove(date, target.id, action, nil); err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			return fmt.Errorf("no such scheduled event: %w", err)
		}
		return err
	}

	if err := ctx.saveSchedule(store); err != nil {
		return err
	}

	if c.All {
		fmt.Println("Removed all occurrences in the recurrence group")
	} else {
		fmt.Printf("Removed event on %s\n", date)
	}
	return nil
}
