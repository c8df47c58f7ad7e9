// Package backup handles snapshot and backup copies of the schedule and
// to-do files.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"hourglass/internal/codec"
)

const (
	// MaxBackups is the maximum number of timestamped backups to keep.
	MaxBackups = 14
	// BackupDirName is the name of the backup directory.
	BackupDirName = "backups"
	// BackupPrefix is the prefix of timestamped backup directories.
	BackupPrefix = "hourglass-"

	scheduleFileName = "schedule.txt"
	todoFileName     = "tasks.txt"
)

// Info describes one timestamped backup.
type Info struct {
	Path      string
	Timestamp time.Time
}

// Manager copies the two data files into snapshots and timestamped backups.
type Manager struct {
	schedulePath string
	todoPath     string
	backupDir    string
}

// NewManager creates a manager for the given data files. Backups live in a
// "backups" directory next to the schedule file.
func NewManager(schedulePath, todoPath string) *Manager {
	return &Manager{
		schedulePath: schedulePath,
		todoPath:     todoPath,
		backupDir:    filepath.Join(filepath.Dir(schedulePath), BackupDirName),
	}
}

// BackupDir returns the backup directory path.
func (m *Manager) BackupDir() string {
	return m.backupDir
}

// Snapshot copies the data files to their snapshot twins. This is the manual
// "save" operation: one snapshot slot, overwritten on every save, with no
// versioning.
func (m *Manager) Snapshot(scheduleDst, todoDst string) error {
	if err := copyFile(m.schedulePath, scheduleDst); err != nil {
		return fmt.Errorf("failed to snapshot schedule file: %w", err)
	}
	if err := copyFile(m.todoPath, todoDst); err != nil {
		return fmt.Errorf("failed to snapshot to-do file: %w", err)
	}
	return nil
}

// CreateBackup copies both data files into a new timestamped backup
// directory and rotates old backups past the retention limit.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// createBackup makes the backup; skipRotation prevents recursive rotation
// while backing up the current state during a restore.
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if _, err := os.Stat(m.schedulePath); os.IsNotExist(err) {
		return "", fmt.Errorf("schedule file does not exist: %s", m.schedulePath)
	}

	dir, err := m.newBackupPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	if err := copyFile(m.schedulePath, filepath.Join(dir, scheduleFileName)); err != nil {
		return "", fmt.Errorf("failed to back up schedule file: %w", err)
	}
	if err := copyFile(m.todoPath, filepath.Join(dir, todoFileName)); err != nil {
		return "", fmt.Errorf("failed to back up to-do file: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
		}
	}

	return dir, nil
}

// newBackupPath picks an unused timestamped directory name, adding seconds
// and then a counter when backups collide within the same minute.
func (m *Manager) newBackupPath() (string, error) {
	timestamp := time.Now().Format("20060102-1504")
	path := filepath.Join(m.backupDir, BackupPrefix+timestamp)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	timestamp = time.Now().Format("20060102-150405")
	path = filepath.Join(m.backupDir, BackupPrefix+timestamp)
	counter := 1
	for {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d", BackupPrefix, timestamp, counter))
		counter++
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup name")
		}
	}
}

// ListBackups returns all backups, newest first.
func (m *Manager) ListBackups() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), BackupPrefix) {
			continue
		}

		timestampStr := strings.TrimPrefix(entry.Name(), BackupPrefix)
		// Strip a collision counter suffix if present.
		if parts := strings.Split(timestampStr, "-"); len(parts) > 2 {
			last := parts[len(parts)-1]
			if len(last) != 4 && len(last) != 6 {
				timestampStr = strings.Join(parts[:len(parts)-1], "-")
			}
		}

		timestamp, err := time.Parse("20060102-1504", timestampStr)
		if err != nil {
			timestamp, err = time.Parse("20060102-150405", timestampStr)
			if err != nil {
				continue
			}
		}

		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: timestamp,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// rotateBackups removes backups beyond the retention limit.
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := MaxBackups; i < len(backups); i++ {
		if err := os.RemoveAll(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the data files with the contents of a backup
// directory. The current files are backed up first, and the incoming
// schedule file must decode cleanly before anything is overwritten.
func (m *Manager) RestoreBackup(backupPath string) error {
	backupSchedule := filepath.Join(backupPath, scheduleFileName)
	backupTodo := filepath.Join(backupPath, todoFileName)

	if _, err := os.Stat(backupSchedule); os.IsNotExist(err) {
		return fmt.Errorf("backup does not contain a schedule file: %s", backupPath)
	}
	if _, err := codec.Load(backupSchedule); err != nil {
		return fmt.Errorf("backup schedule file is corrupted: %w", err)
	}

	if _, err := os.Stat(m.schedulePath); err == nil {
		current, err := m.createBackup(true)
		if err != nil {
			return fmt.Errorf("failed to back up current files before restore: %w", err)
		}
		fmt.Printf("Created backup of current files: %s\n", filepath.Base(current))
	}

	if err := restoreFile(backupSchedule, m.schedulePath); err != nil {
		return err
	}
	if _, err := os.Stat(backupTodo); err == nil {
		if err := restoreFile(backupTodo, m.todoPath); err != nil {
			return err
		}
	}
	return nil
}

// restoreFile replaces dst with src through a temp file and atomic rename.
func restoreFile(src, dst string) error {
	tempPath := dst + ".restore.tmp"
	if err := copyFile(src, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, dst); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove temporary file %s: %v\n", tempPath, removeErr)
		}
		return fmt.Errorf("failed to restore %s: %w", dst, err)
	}
	return nil
}

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}
