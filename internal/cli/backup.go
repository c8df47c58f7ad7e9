package cli

import (
	"fmt"
	"path/filepath"

	"hourglass/internal/backup"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	if _, err := ctx.loadSchedule(); err != nil {
		return err
	}
	if _, err := ctx.loadToDo(); err != nil {
		return err
	}

	manager := backup.NewManager(ctx.Config.SchedulePath(), ctx.Config.ToDoPath())
	path, err := manager.CreateBackup()
	if err != nil {
		return err
	}
	fmt.Printf("Created backup: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	manager := backup.NewManager(ctx.Config.SchedulePath(), ctx.Config.ToDoPath())
	backups, err := manager.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups found")
		return nil
	}
	for _, b := range backups {
		fmt.Printf("%s  %s\n", b.Timestamp.Format("2006-01-02 15:04"), filepath.Base(b.Path))
	}
	return nil
}

type BackupRestoreCmd struct {
	Name string `arg:"" help:"Backup name from 'hourglass backup list'."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	manager := backup.NewManager(ctx.Config.SchedulePath(), ctx.Config.ToDoPath())
	if err := manager.RestoreBackup(filepath.Join(manager.BackupDir(), c.Name)); err != nil {
		return err
	}
	fmt.Printf("Restored backup: %s\n", c.Name)
	return nil
}
