package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"hourglass/internal/schedule"
	"hourglass/internal/todo"
	"hourglass/internal/tui"
)

// TuiCmd runs the interactive weekly view. It is the default command.
type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	store, err := ctx.loadSchedule()
	if err != nil {
		return err
	}
	list, err := ctx.loadToDo()
	if err != nil {
		return err
	}

	save := func(store *schedule.Store, list *todo.List) error {
		if err := ctx.saveSchedule(store); err != nil {
			return err
		}
		return ctx.saveToDo(list)
	}

	model := tui.NewModel(store, list, ctx.Config, save)
	program := tea.NewProgram(model, tea.WithAltScreen())

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("running interface: %w", err)
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		return fmt.Errorf("saving on exit: %w", m.Err())
	}
	return nil
}
