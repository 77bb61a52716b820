package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for TodoItem
var (
	ErrEmptyTodoItemID     = errors.New("todo item ID cannot be empty")
	ErrEmptyTodoItemListID = errors.New("todo item list ID cannot be empty")
)

// TodoItem is a single entry of a TodoList. Its owner is the owner of the list.
type TodoItem struct {
	ID          uuid.UUID `json:"id"`
	ListID      uuid.UUID `json:"todo_list_id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTodoItem creates an incomplete item in the given list.
func NewTodoItem(listID uuid.UUID, description string) (*TodoItem, error) {
	now := time.Now().UTC()
	item := &TodoItem{
		ID:          uuid.New(),
		ListID:      listID,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the TodoItem has valid data.
func (i *TodoItem) Validate() error {
	if i.ID == uuid.Nil {
		return ErrEmptyTodoItemID
	}
	if i.ListID == uuid.Nil {
		return ErrEmptyTodoItemListID
	}
	return validateText("description", i.Description)
}

// ItemPatch is a partial update addressed to one item. Nil fields are left untouched.
type ItemPatch struct {
	ID          uuid.UUID
	Description *string
	Completed   *bool
}

// HasChanges reports whether the patch sets at least one field.
func (p ItemPatch) HasChanges() bool {
	return p.Description != nil || p.Completed != nil
}

// Validate checks the fields the patch sets.
func (p ItemPatch) Validate() error {
	if p.ID == uuid.Nil {
		return NewValidationError("id", "is required", ErrInvalidID)
	}
	if p.Description != nil {
		return validateText("description", *p.Description)
	}
	return nil
}

// Apply overwrites the fields present in the patch.
func (i *TodoItem) Apply(p ItemPatch) {
	if p.Description != nil {
		i.Description = *p.Description
	}
	if p.Completed != nil {
		i.Completed = *p.Completed
	}
	i.UpdatedAt = time.Now().UTC()
}
