package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Designation
var (
	ErrEmptyDesignationID     = errors.New("designation ID cannot be empty")
	ErrEmptyDesignationUserID = errors.New("designation user ID cannot be empty")
)

// Designation is a flat, user-owned label with no children.
type Designation struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDesignation creates a new Designation for the given owner.
func NewDesignation(userID uuid.UUID, name string) (*Designation, error) {
	now := time.Now().UTC()
	d := &Designation{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// OwnerID implements Owned.
func (d *Designation) OwnerID() uuid.UUID {
	return d.UserID
}

// Validate checks if the Designation has valid data.
func (d *Designation) Validate() error {
	if d.ID == uuid.Nil {
		return ErrEmptyDesignationID
	}
	if d.UserID == uuid.Nil {
		return ErrEmptyDesignationUserID
	}
	return validateText("name", d.Name)
}

// Rename changes the name.
func (d *Designation) Rename(name string) error {
	if err := validateText("name", name); err != nil {
		return err
	}
	d.Name = name
	d.UpdatedAt = time.Now().UTC()
	return nil
}
