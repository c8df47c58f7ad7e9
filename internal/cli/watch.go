package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hourglass/internal/logger"
	"hourglass/internal/notify"
)

// WatchCmd runs the notification scanner in the foreground, printing each
// alert to stdout until interrupted.
type WatchCmd struct{}

func (c *WatchCmd) Run(ctx *Context) error {
	if !ctx.Config.Notify {
		fmt.Println("Notifications are disabled in the config file (notify: false)")
		return nil
	}

	store, err := ctx.loadSchedule()
	if err != nil {
		return err
	}

	scanner := notify.NewScanner(store, func(message string) {
		fmt.Printf("\n--- hourglass notification ---\n%s\n", message)
	})
	runner, err := notify.NewRunner(scanner)
	if err != nil {
		return err
	}

	logger.Info("notification watch started", "events", store.Len())
	fmt.Printf("Watching %d scheduled events, Ctrl-C to stop\n", store.Len())

	runner.Start()
	defer runner.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	fmt.Println("\nStopped")
	return nil
}
