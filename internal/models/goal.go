package models

import "time"

// Goal is a savings target. Amount and date are both optional.
type Goal struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	TargetAmount *float64  `json:"targetAmount"`
	TargetDate   *string   `json:"targetDate"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GoalCreate carries the client-supplied fields for a new goal.
type GoalCreate struct {
	Name         string   `json:"name"`
	TargetAmount *float64 `json:"targetAmount"`
	TargetDate   *string  `json:"targetDate"`
}

// GoalUpdate is a partial update. Nil fields are left unchanged.
type GoalUpdate struct {
	Name         *string  `json:"name"`
	TargetAmount *float64 `json:"targetAmount"`
	TargetDate   *string  `json:"targetDate"`
}
