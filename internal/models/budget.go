package models

import "time"

// Budget is a named spending period. start_date <= end_date holds for every
// persisted row once the budget has been through an update.
type Budget struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name,omitempty"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
}

// BudgetCreate carries the client-supplied fields for a new budget.
// StartDate defaults to today when empty.
type BudgetCreate struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// BudgetUpdate is a partial update. Nil fields are left unchanged.
type BudgetUpdate struct {
	Name      *string `json:"name"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}
