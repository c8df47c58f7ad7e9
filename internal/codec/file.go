package codec

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"hourglass/internal/schedule"
)

// Load reads a schedule file into a fresh store, creating the file (and its
// directory) empty when it does not exist yet. Any open, read, or decode
// failure is returned to the caller, which treats it as fatal: there is no
// meaningful partial schedule to run with.
func Load(path string) (*schedule.Store, error) {
	if err := ensureFile(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule file: %w", err)
	}

	store := schedule.NewStore()
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimRight(line, "\r") == "" {
			continue
		}
		date, event, err := DecodeLine(line)
		if err != nil {
			return nil, fmt.Errorf("schedule file line %d: %w", i+1, err)
		}
		store.Put(date, event)
	}

	return store, nil
}

// Save truncates and rewrites the whole schedule file from the store. Dates
// are written in calendar order and events within a date in id order, so a
// save is deterministic for a given store state.
func Save(path string, store *schedule.Store) error {
	if err := ensureFile(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open schedule file for writing: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, date := range store.Dates() {
		events := store.Get(date)
		ids := make([]string, 0, len(events))
		for id := range events {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			if _, err := w.WriteString(EncodeLine(date, events[id])); err != nil {
				f.Close()
				return fmt.Errorf("failed to write schedule file: %w", err)
			}
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write schedule file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close schedule file: %w", err)
	}
	return nil
}

func ensureFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to create schedule file: %w", err)
	}
	return f.Close()
}
