package models

import "strings"

// UserCreate represents the JSON body for creating a user
// swagger:model UserCreate
type UserCreate struct {
	// Name
	// required: true
	// example: John Doe
	Name string `json:"name" validate:"required,min=2,max=100"`

	// Email
	// required: true
	// example: john.doe@example.com
	Email string `json:"email" validate:"required,email"`

	// Address
	// example: 123 Main St, City, Country
	Address *string `json:"address,omitempty"`

	// Phone
	// example: +1234567890
	Phone *string `json:"phone,omitempty"`
}

// Validate trims the name and checks field constraints.
func (u *UserCreate) Validate() error {
	u.Name = strings.TrimSpace(u.Name)
	return validate.Struct(u)
}
