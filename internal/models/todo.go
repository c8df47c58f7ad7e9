package models

// ToDoItem is one entry in the to-do list. Item order is user-significant and
// maintained by the list itself, not by the item.
type ToDoItem struct {
	ID          string
	Done        bool
	Description string
}
