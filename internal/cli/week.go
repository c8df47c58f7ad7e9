package cli

import (
	"fmt"
	"time"
)

type WeekCmd struct {
	Date string `arg:"" help:"Any date within the week (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *WeekCmd) Run(ctx *Context) error {
	date, err := parseDate(c.Date)
	if err != nil {
		return err
	}

	store, err := ctx.loadSchedule()
	if err != nil {
		return err
	}

	// Weeks display Sunday through Saturday.
	sunday := date.AddDays(-int(date.Time().Weekday()))

	for i := 0; i < 7; i++ {
		day := sunday.AddDays(i)
		weekday := time.Weekday(i)
		fmt.Printf("%s  %s\n", weekday.String()[:3], day)

		listed := listEvents(store, day)
		if len(listed) == 0 {
			fmt.Println("     -")
		}
		for j, le := range listed {
			fmt.Printf("   %s\n", formatEventLine(j+1, le.event))
		}
	}
	return nil
}
