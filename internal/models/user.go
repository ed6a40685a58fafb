package models

import "time"

// UserDB represents a user record in the database
type UserDB struct {
	ID        int64      `json:"id" db:"id"`                 // Primary key, assigned by the database
	Name      string     `json:"name" db:"name"`             // Display name
	Email     string     `json:"email" db:"email"`           // Unique email (case-sensitive)
	Address   *string    `json:"address" db:"address"`       // Optional address
	Phone     *string    `json:"phone" db:"phone"`           // Optional phone number
	CreatedAt time.Time  `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"` // Set on every update, nil until then
}
