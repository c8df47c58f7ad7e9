package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"hourglass/internal/backup"
	"hourglass/internal/codec"
	"hourglass/internal/todo"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: data directory writable
	if err := checkDataDirWritable(ctx); err != nil {
		fmt.Printf("FAIL  data directory writable\n      %v\n", err)
		hasError = true
	} else {
		fmt.Printf("ok    data directory writable\n")
	}

	// Check 2: schedule file decodes
	if store, err := ctx.loadSchedule(); err != nil {
		fmt.Printf("FAIL  schedule file decodes\n      %v\n", err)
		hasError = true
	} else {
		fmt.Printf("ok    schedule file decodes (%d events)\n", store.Len())
	}

	// Check 3: to-do file parses
	if list, err := todo.Load(ctx.Config.ToDoPath()); err != nil {
		fmt.Printf("FAIL  to-do file parses\n      %v\n", err)
		hasError = true
	} else {
		fmt.Printf("ok    to-do file parses (%d items)\n", list.Len())
	}

	// Check 4: snapshot decodes (warning only)
	if err := checkSnapshot(ctx); err != nil {
		fmt.Printf("warn  snapshot\n      %v\n", err)
	} else {
		fmt.Printf("ok    snapshot decodes\n")
	}

	// Check 5: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("warn  backups\n      %v\n", err)
	} else {
		fmt.Printf("ok    backups present\n")
	}

	// Check 6: no other hourglass process
	if err := checkSingleProcess(); err != nil {
		fmt.Printf("FAIL  single process\n      %v\n", err)
		hasError = true
	} else {
		fmt.Printf("ok    single process\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed")
	return nil
}

func checkDataDirWritable(ctx *Context) error {
	if err := os.MkdirAll(ctx.Config.DataDir, 0700); err != nil {
		return fmt.Errorf("cannot create data directory: %w", err)
	}
	probe := filepath.Join(ctx.Config.DataDir, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0600); err != nil {
		return fmt.Errorf("cannot write to data directory: %w", err)
	}
	return os.Remove(probe)
}

func checkSnapshot(ctx *Context) error {
	path := ctx.Config.ScheduleSnapshotPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("no snapshot yet, run 'hourglass snapshot'")
	}
	if _, err := codec.Load(path); err != nil {
		return fmt.Errorf("snapshot does not decode: %w", err)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	manager := backup.NewManager(ctx.Config.SchedulePath(), ctx.Config.ToDoPath())
	backups, err := manager.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups yet, run 'hourglass backup create'")
	}
	return nil
}

// checkSingleProcess enforces the single-process model: two hourglass
// processes rewriting the same flat files would silently lose each other's
// edits at save time.
func checkSingleProcess() error {
	processes, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("cannot list processes: %w", err)
	}

	self := os.Getpid()
	for _, p := range processes {
		if p.Pid() == self {
			continue
		}
		if strings.HasPrefix(p.Executable(), "hourglass") {
			return fmt.Errorf("another hourglass process is running (pid %d)", p.Pid())
		}
	}
	return nil
}
