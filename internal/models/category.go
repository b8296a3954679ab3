package models

import "time"

// Category is a user-defined label for transactions. Names are unique per
// owner, not globally.
type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Type      string    `json:"type,omitempty"` // Free-form, e.g. "expense" or "income"
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryCreate carries the client-supplied fields for a new category.
type CategoryCreate struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CategoryUpdate is a partial update. Nil fields are left unchanged.
type CategoryUpdate struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
}
