package cli

import (
	"fmt"
)

type DayCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	date, err := parseDate(c.Date)
	if err != nil {
		return err
	}

	store, err := ctx.loadSchedule()
	if err != nil {
		return err
	}

	listed := listEvents(store, date)
	fmt.Printf("Events on %s:\n\n", date)
	if len(listed) == 0 {
		fmt.Println("  No events scheduled")
		return nil
	}
	for i, le := range listed {
		fmt.Println(formatEventLine(i+1, le.event))
	}
	return nil
}
