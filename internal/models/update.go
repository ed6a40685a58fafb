package models

import (
	"errors"
	"strings"
)

// Errors reported by update validation.
var (
	ErrEmptyUpdate = errors.New("at least one field must be provided for update")
	ErrEmptyName   = errors.New("name cannot be empty")
	ErrEmptyEmail  = errors.New("email cannot be empty")
)

// UserUpdate represents the JSON body for a partial user update.
// Only the supplied fields are applied; absent fields are left untouched.
// swagger:model UserUpdate
type UserUpdate struct {
	// Name
	// example: Jane Doe
	Name *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`

	// Email
	// example: jane.doe@example.com
	Email *string `json:"email,omitempty" validate:"omitempty,email"`

	// Address
	// example: 456 Oak St, City, Country
	Address *string `json:"address,omitempty"`

	// Phone
	// example: +0987654321
	Phone *string `json:"phone,omitempty"`
}

// Validate trims the name if supplied and checks field constraints.
// An update with zero supplied fields is rejected. Supplied-but-blank
// name/email are rejected explicitly because omitempty would skip them.
func (u *UserUpdate) Validate() error {
	if u.Name == nil && u.Email == nil && u.Address == nil && u.Phone == nil {
		return ErrEmptyUpdate
	}
	if u.Name != nil {
		trimmed := strings.TrimSpace(*u.Name)
		if trimmed == "" {
			return ErrEmptyName
		}
		u.Name = &trimmed
	}
	if u.Email != nil && *u.Email == "" {
		return ErrEmptyEmail
	}
	return validate.Struct(u)
}
