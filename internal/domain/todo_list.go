package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for TodoList
var (
	ErrEmptyTodoListID     = errors.New("todo list ID cannot be empty")
	ErrEmptyTodoListUserID = errors.New("todo list user ID cannot be empty")
)

// Owned is implemented by every resource that belongs to exactly one user.
type Owned interface {
	OwnerID() uuid.UUID
}

// TodoList is a titled container of TodoItems owned by a single user.
type TodoList struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTodoList creates a new TodoList for the given owner.
func NewTodoList(userID uuid.UUID, title string) (*TodoList, error) {
	now := time.Now().UTC()
	list := &TodoList{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := list.Validate(); err != nil {
		return nil, err
	}

	return list, nil
}

// OwnerID implements Owned.
func (l *TodoList) OwnerID() uuid.UUID {
	return l.UserID
}

// Validate checks if the TodoList has valid data.
func (l *TodoList) Validate() error {
	if l.ID == uuid.Nil {
		return ErrEmptyTodoListID
	}
	if l.UserID == uuid.Nil {
		return ErrEmptyTodoListUserID
	}
	return validateText("title", l.Title)
}

// Rename changes the title. The owner never changes.
func (l *TodoList) Rename(title string) error {
	if err := validateText("title", title); err != nil {
		return err
	}
	l.Title = title
	l.UpdatedAt = time.Now().UTC()
	return nil
}
