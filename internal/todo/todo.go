// Package todo holds the ordered to-do list and its one-line-per-item file
// format: a single completion flag character ('0' or '1') followed by the
// item description.
package todo

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"hourglass/internal/models"
)

const (
	flagPending = '0'
	flagDone    = '1'
)

// List is the ordered to-do list. Order is user-significant: items keep the
// position they were added at until explicitly moved.
type List struct {
	items []models.ToDoItem
}

func NewList() *List {
	return &List{}
}

// Items returns a copy of the list in display order.
func (l *List) Items() []models.ToDoItem {
	out := make([]models.ToDoItem, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List) Len() int {
	return len(l.items)
}

// Add appends a new pending item and returns it.
func (l *List) Add(description string) models.ToDoItem {
	item := models.ToDoItem{
		ID:          uuid.New().String(),
		Description: strings.TrimSpace(description),
	}
	l.items = append(l.items, item)
	return item
}

// SetDone sets the completion flag of the identified item.
func (l *List) SetDone(id string, done bool) error {
	for i := range l.items {
		if l.items[i].ID == id {
			l.items[i].Done = done
			return nil
		}
	}
	return fmt.Errorf("to-do item not found: %s", id)
}

// Remove deletes the identified item.
func (l *List) Remove(id string) error {
	for i := range l.items {
		if l.items[i].ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("to-do item not found: %s", id)
}

// Move reorders the identified item to the given zero-based position,
// clamped to the list bounds.
func (l *List) Move(id string, to int) error {
	from := -1
	for i := range l.items {
		if l.items[i].ID == id {
			from = i
			break
		}
	}
	if from == -1 {
		return fmt.Errorf("to-do item not found: %s", id)
	}

	item := l.items[from]
	l.items = append(l.items[:from], l.items[from+1:]...)

	if to < 0 {
		to = 0
	}
	if to > len(l.items) {
		to = len(l.items)
	}
	l.items = append(l.items[:to], append([]models.ToDoItem{item}, l.items[to:]...)...)
	return nil
}

// Load reads a to-do file into a fresh list, creating the file empty when
// absent. Item ids are not persisted and are regenerated on every load.
func Load(path string) (*List, error) {
	if err := ensureFile(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read to-do file: %w", err)
	}

	list := NewList()
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		list.items = append(list.items, models.ToDoItem{
			ID:          uuid.New().String(),
			Done:        line[0] == flagDone,
			Description: line[1:],
		})
	}
	return list, nil
}

// Save truncates and rewrites the to-do file in list order.
func Save(path string, list *List) error {
	if err := ensureFile(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open to-do file for writing: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, item := range list.items {
		flag := byte(flagPending)
		if item.Done {
			flag = flagDone
		}
		if _, err := fmt.Fprintf(w, "%c%s\n", flag, strings.TrimSpace(item.Description)); err != nil {
			f.Close()
			return fmt.Errorf("failed to write to-do file: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write to-do file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close to-do file: %w", err)
	}
	return nil
}

func ensureFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to create to-do file: %w", err)
	}
	return f.Close()
}
