package models

// CategorySpend is one slice of the spending breakdown.
type CategorySpend struct {
	CategoryID *string `json:"categoryId"` // Nil groups the uncategorized transactions
	Name       string  `json:"name"`
	Total      float64 `json:"total"`
}

// Summary aggregates a user's transactions over a date range.
type Summary struct {
	StartDate    string          `json:"startDate,omitempty"`
	EndDate      string          `json:"endDate,omitempty"`
	TotalIncome  float64         `json:"totalIncome"`
	TotalExpense float64         `json:"totalExpense"`
	Net          float64         `json:"net"`
	ByCategory   []CategorySpend `json:"byCategory"`
}
