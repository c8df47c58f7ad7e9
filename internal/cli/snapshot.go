package cli

import (
	"fmt"

	"hourglass/internal/backup"
)

// SnapshotCmd is the manual "save": it copies the live schedule and to-do
// files to their snapshot twins, overwriting the previous snapshot.
type SnapshotCmd struct{}

func (c *SnapshotCmd) Run(ctx *Context) error {
	// Touch both files so a snapshot works on a fresh data dir too.
	if _, err := ctx.loadSchedule(); err != nil {
		return err
	}
	if _, err := ctx.loadToDo(); err != nil {
		return err
	}

	manager := backup.NewManager(ctx.Config.SchedulePath(), ctx.Config.ToDoPath())
	if err := manager.Snapshot(ctx.Config.ScheduleSnapshotPath(), ctx.Config.ToDoSnapshotPath()); err != nil {
		return err
	}

	fmt.Printf("Saved snapshot to %s and %s\n", ctx.Config.ScheduleSnapshotPath(), ctx.Config.ToDoSnapshotPath())
	return nil
}
