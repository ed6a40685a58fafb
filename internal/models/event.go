package models

// UserEvent is the payload published to Kafka on every successful mutation.
type UserEvent struct {
	Event     string `json:"event"`     // user.created, user.updated, user.deleted
	UserID    int64  `json:"user_id"`   // Affected user id
	Email     string `json:"email"`     // Email at the time of the event
	Timestamp int64  `json:"timestamp"` // Unix seconds
}
