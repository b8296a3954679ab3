package models

import "time"

// Transaction represents a single dated money movement for a user.
// Amounts are signed: positive for income, negative for expenses.
type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	CategoryID  *string   `json:"categoryId"` // Nullable for uncategorized transactions
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TransactionCreate carries the client-supplied fields for a new transaction.
// The owner is never taken from the payload.
type TransactionCreate struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	CategoryID  *string `json:"categoryId"`
}

// TransactionUpdate is a partial update. Nil fields are left unchanged.
type TransactionUpdate struct {
	Date        *string  `json:"date"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	CategoryID  *string  `json:"categoryId"`
}
