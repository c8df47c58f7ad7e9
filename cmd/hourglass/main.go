package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"hourglass/internal/cli"
	"hourglass/internal/config"
	"hourglass/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path"`
	Debug   bool   `help:"Enable debug logging."`

	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive weekly view." default:"1"`
	Add      cli.AddCmd      `cmd:"" help:"Add an event."`
	Day      cli.DayCmd      `cmd:"" help:"List a day's events."`
	Week     cli.WeekCmd     `cmd:"" help:"List a week's events."`
	Edit     cli.EditCmd     `cmd:"" help:"Edit an event."`
	Remove   cli.RemoveCmd   `cmd:"" help:"Remove an event."`
	Snapshot cli.SnapshotCmd `cmd:"" help:"Snapshot the schedule and to-do files."`
	Watch    cli.WatchCmd    `cmd:"" help:"Run the notification watcher in the foreground."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Check the installation for common problems."`
	Todo     struct {
		Add    cli.ToDoAddCmd    `cmd:"" help:"Add a to-do item."`
		List   cli.ToDoListCmd   `cmd:"" help:"List to-do items."`
		Done   cli.ToDoDoneCmd   `cmd:"" help:"Mark a to-do item done."`
		Remove cli.ToDoRemoveCmd `cmd:"" help:"Remove a to-do item."`
		Move   cli.ToDoMoveCmd   `cmd:"" help:"Reorder a to-do item."`
	} `cmd:"" help:"Manage the to-do list."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup."`
		List    cli.BackupListCmd    `cmd:"" help:"List backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore a backup."`
	} `cmd:"" help:"Manage backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("hourglass"),
		kong.Description("Personal calendar and to-do list"),
		kong.UsageOnError(),
		kong.Vars{"version": "v1.0.0"},
	)

	configPath := CLI.Config
	if configPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		configPath = path
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, DataDir: cfg.DataDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{
		Config:     cfg,
		ConfigPath: configPath,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Fatal("command failed", "err", err)
	}
}
