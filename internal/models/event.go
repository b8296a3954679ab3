package models

import "time"

// Event represents an entry in a user's activity feed.
type Event struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`  // e.g., "transaction.create", "budget.delete"
	Level     string    `json:"level"` // e.g., "info", "warn"
	Message   string    `json:"message"`
	EntityID  *string   `json:"entityId,omitempty"` // Nullable for account-wide events
	CreatedAt time.Time `json:"createdAt"`
}
