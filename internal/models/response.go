package models

// UserListResponse represents a page of users plus the total row count
// swagger:model UserListResponse
type UserListResponse struct {
	// Users in the requested page
	Users []UserDB `json:"users"`

	// Total number of users, independent of the page
	// example: 42
	Count int64 `json:"count"`
}

// DeleteResponse represents a successful deletion
// swagger:model DeleteResponse
type DeleteResponse struct {
	// Success message
	// example: User with ID 1 deleted successfully
	Message string `json:"message"`
}

// ErrorResponse represents an error payload
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: User with ID 1 not found
	Error string `json:"error"`
}
