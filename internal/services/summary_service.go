package services

import (
	"database/sql"
	"fmt"

	"github.com/finbook/finbook-be/internal/models"
)

// SummaryServiceProvider defines the interface for dashboard aggregates.
type SummaryServiceProvider interface {
	Overview(ownerID, startDate, endDate string) (models.Summary, error)
}

// SummaryService aggregates a user's transactions for the dashboard.
type SummaryService struct {
	db *sql.DB
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(db *sql.DB) *SummaryService {
	return &SummaryService{db: db}
}

// Overview computes income, expense and per-category totals over an optional
// date range. Empty bounds mean no bound on that side.
func (s *SummaryService) Overview(ownerID, startDate, endDate string) (models.Summary, error) {
	if startDate != "" && !models.ValidDate(startDate) {
		return models.Summary{}, fmt.Errorf("%w: invalid start date %q", ErrValidation, startDate)
	}
	if endDate != "" && !models.ValidDate(endDate) {
		return models.Summary{}, fmt.Errorf("%w: invalid end date %q", ErrValidation, endDate)
	}

	where := "t.user_id = ?"
	args := []interface{}{ownerID}
	if startDate != "" {
		where += " AND t.date >= ?"
		args = append(args, startDate)
	}
	if endDate != "" {
		where += " AND t.date <= ?"
		args = append(args, endDate)
	}

	summary := models.Summary{StartDate: startDate, EndDate: endDate}

	row := s.db.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN t.amount > 0 THEN t.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN t.amount < 0 THEN -t.amount ELSE 0 END), 0),
			COALESCE(SUM(t.amount), 0)
		FROM transactions t WHERE `+where, args...)
	if err := row.Scan(&summary.TotalIncome, &summary.TotalExpense, &summary.Net); err != nil {
		return models.Summary{}, err
	}

	rows, err := s.db.Query(`
		SELECT t.category_id, COALESCE(c.name, ''), SUM(t.amount)
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE `+where+`
		GROUP BY t.category_id, c.name
		ORDER BY SUM(t.amount)`, args...)
	if err != nil {
		return models.Summary{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var spend models.CategorySpend
		var categoryID sql.NullString
		if err := rows.Scan(&categoryID, &spend.Name, &spend.Total); err != nil {
			return models.Summary{}, err
		}
		if categoryID.Valid {
			spend.CategoryID = &categoryID.String
		}
		summary.ByCategory = append(summary.ByCategory, spend)
	}
	return summary, rows.Err()
}
