package cli

import (
	"fmt"
	"strings"

	"hourglass/internal/models"
)

type ToDoAddCmd struct {
	Description []string `arg:"" help:"Item description."`
}

func (c *ToDoAddCmd) Run(ctx *Context) error {
	list, err := ctx.loadToDo()
	if err != nil {
		return err
	}
	item := list.Add(strings.Join(c.Description, " "))
	if err := ctx.saveToDo(list); err != nil {
		return err
	}
	fmt.Printf("Added to-do item: %s\n", item.Description)
	return nil
}

type ToDoListCmd struct{}

func (c *ToDoListCmd) Run(ctx *Context) error {
	list, err := ctx.loadToDo()
	if err != nil {
		return err
	}
	items := list.Items()
	if len(items) == 0 {
		fmt.Println("No to-do items")
		return nil
	}
	for i, item := range items {
		mark := " "
		if item.Done {
			mark = "x"
		}
		fmt.Printf("%2d. [%s] %s\n", i+1, mark, item.Description)
	}
	return nil
}

type ToDoDoneCmd struct {
	Position int  `arg:"" help:"Item position from 'hourglass todo list'."`
	Undo     bool `short:"u" help:"Mark the item pending again."`
}

func (c *ToDoDoneCmd) Run(ctx *Context) error {
	list, err := ctx.loadToDo()
	if err != nil {
		return err
	}
	item, err := itemAt(list.Items(), c.Position)
	if err != nil {
		return err
	}
	if err := list.SetDone(item.ID, !c.Undo); err != nil {
		return err
	}
	if err := ctx.saveToDo(list); err != nil {
		return err
	}
	if c.Undo {
		fmt.Printf("Marked pending: %s\n", item.Description)
	} else {
		fmt.Printf("Marked done: %s\n", item.Description)
	}
	return nil
}

type ToDoRemoveCmd struct {
	Position int `arg:"" help:"Item position from 'hourglass todo list'."`
}

func (c *ToDoRemoveCmd) Run(ctx *Context) error {
	list, err := ctx.loadToDo()
	if err != nil {
		return err
	}
	item, err := itemAt(list.Items(), c.Position)
	if err != nil {
		return err
	}
	if err := list.Remove(item.ID); err != nil {
		return err
	}
	if err := ctx.saveToDo(list); err != nil {
		return err
	}
	fmt.Printf("Removed to-do item: %s\n", item.Description)
	return nil
}

type ToDoMoveCmd struct {
	Position int `arg:"" help:"Item position from 'hourglass todo list'."`
	To       int `arg:"" help:"New position."`
}

func (c *ToDoMoveCmd) Run(ctx *Context) error {
	list, err := ctx.loadToDo()
	if err != nil {
		return err
	}
	item, err := itemAt(list.Items(), c.Position)
	if err != nil {
		return err
	}
	if err := list.Move(item.ID, c.To-1); err != nil {
		return err
	}
	if err := ctx.saveToDo(list); err != nil {
		return err
	}
	fmt.Printf("Moved to-do item to position %d\n", c.To)
	return nil
}

func itemAt(items []models.ToDoItem, position int) (models.ToDoItem, error) {
	if position < 1 || position > len(items) {
		return models.ToDoItem{}, fmt.Errorf("no to-do item #%d (%d items)", position, len(items))
	}
	return items[position-1], nil
}
