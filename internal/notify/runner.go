package notify

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Runner drives a Scanner on a once-per-second cron schedule. One second is
// far finer than the one-minute alert window, so both thresholds are
// reliably observed.
type Runner struct {
	cron *cron.Cron
}

func NewRunner(scanner *Scanner) (*Runner, error) {
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc("* * * * * *", scanner.Scan); err != nil {
		return nil, fmt.Errorf("failed to schedule notification scan: %w", err)
	}
	return &Runner{cron: c}, nil
}

// Start begins scanning in the cron's own goroutine.
func (r *Runner) Start() {
	r.cron.Start()
}

// Stop halts scanning and waits for an in-flight pass to finish.
func (r *Runner) Stop() {
	<-r.cron.Stop().Done()
}
