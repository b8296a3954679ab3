package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finbook/finbook-be/internal/models"
)

// BudgetServiceProvider defines the interface for budget services.
type BudgetServiceProvider interface {
	Create(ownerID string, in models.BudgetCreate) (models.Budget, error)
	GetByID(ownerID, id string) (models.Budget, error)
	List(ownerID string, skip, limit int) ([]models.Budget, error)
	ListActive(ownerID string) ([]models.Budget, error)
	Update(ownerID, id string, upd models.BudgetUpdate) (models.Budget, error)
	Delete(ownerID, id string) error
}

// BudgetService provides business logic for budget management. Every query
// is scoped to the owning user.
type BudgetService struct {
	db       *sql.DB
	eventSvc EventServiceProvider
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(db *sql.DB, eventSvc EventServiceProvider) *BudgetService {
	return &BudgetService{db: db, eventSvc: eventSvc}
}

// Create inserts a new budget for the owner. The start date defaults to
// today when omitted. Date ordering is only enforced on update, matching the
// create contract's server-side default behavior.
func (s *BudgetService) Create(ownerID string, in models.BudgetCreate) (models.Budget, error) {
	if in.StartDate == "" {
		in.StartDate = models.Today()
	}
	if !models.ValidDate(in.StartDate) {
		return models.Budget{}, fmt.Errorf("%w: invalid start date %q", ErrValidation, in.StartDate)
	}
	if !models.ValidDate(in.EndDate) {
		return models.Budget{}, fmt.Errorf("%w: invalid end date %q", ErrValidation, in.EndDate)
	}

	id := uuid.New().String()
	if _, err := s.db.Exec(
		"INSERT INTO budgets (id, user_id, name, start_date, end_date) VALUES (?, ?, ?, ?, ?)",
		id, ownerID, in.Name, in.StartDate, in.EndDate,
	); err != nil {
		return models.Budget{}, err
	}

	s.eventSvc.Record(ownerID, "budget.create", "info", fmt.Sprintf("Budget %q created.", in.Name), &id)
	return s.GetByID(ownerID, id)
}

// GetByID retrieves a single budget owned by the given user.
func (s *BudgetService) GetByID(ownerID, id string) (models.Budget, error) {
	row := s.db.QueryRow("SELECT id, user_id, name, start_date, end_date, created_at FROM budgets WHERE id = ? AND user_id = ?", id, ownerID)
	return s.scanBudget(row)
}

// List retrieves the owner's budgets in insertion order.
func (s *BudgetService) List(ownerID string, skip, limit int) ([]models.Budget, error) {
	skip, limit = normalizePage(skip, limit)
	rows, err := s.db.Query("SELECT id, user_id, name, start_date, end_date, created_at FROM budgets WHERE user_id = ? ORDER BY rowid LIMIT ? OFFSET ?", ownerID, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.scanBudgets(rows)
}

// ListActive retrieves the owner's budgets whose period covers today,
// boundaries included.
func (s *BudgetService) ListActive(ownerID string) ([]models.Budget, error) {
	today := models.Today()
	rows, err := s.db.Query("SELECT id, user_id, name, start_date, end_date, created_at FROM budgets WHERE user_id = ? AND start_date <= ? AND end_date >= ? ORDER BY rowid", ownerID, today, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.scanBudgets(rows)
}

// Update applies a partial update, then re-checks that the merged period
// still has start <= end. A violation rolls the whole update back.
func (s *BudgetService) Update(ownerID, id string, upd models.BudgetUpdate) (models.Budget, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.Budget{}, err
	}
	defer tx.Rollback()

	row := tx.QueryRow("SELECT id, user_id, name, start_date, end_date, created_at FROM budgets WHERE id = ? AND user_id = ?", id, ownerID)
	budget, err := s.scanBudget(row)
	if err != nil {
		return models.Budget{}, err
	}

	if upd.Name != nil {
		budget.Name = *upd.Name
	}
	if upd.StartDate != nil {
		if !models.ValidDate(*upd.StartDate) {
			return models.Budget{}, fmt.Errorf("%w: invalid start date %q", ErrValidation, *upd.StartDate)
		}
		budget.StartDate = *upd.StartDate
	}
	if upd.EndDate != nil {
		if !models.ValidDate(*upd.EndDate) {
			return models.Budget{}, fmt.Errorf("%w: invalid end date %q", ErrValidation, *upd.EndDate)
		}
		budget.EndDate = *upd.EndDate
	}

	// ISO dates compare lexically.
	if budget.StartDate > budget.EndDate {
		return models.Budget{}, fmt.Errorf("%w: start date %s is after end date %s", ErrInvalidState, budget.StartDate, budget.EndDate)
	}

	if _, err := tx.Exec(
		"UPDATE budgets SET name = ?, start_date = ?, end_date = ? WHERE id = ? AND user_id = ?",
		budget.Name, budget.StartDate, budget.EndDate, id, ownerID,
	); err != nil {
		return models.Budget{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Budget{}, err
	}

	s.eventSvc.Record(ownerID, "budget.update", "info", fmt.Sprintf("Budget %q updated.", budget.Name), &id)
	return s.GetByID(ownerID, id)
}

// Delete removes a budget owned by the given user.
func (s *BudgetService) Delete(ownerID, id string) error {
	res, err := s.db.Exec("DELETE FROM budgets WHERE id = ? AND user_id = ?", id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("budget %s %w", id, ErrNotFound)
	}

	s.eventSvc.Record(ownerID, "budget.delete", "warn", "Budget was deleted.", &id)
	return nil
}

// scanBudgets is a helper to scan multiple rows into a slice of Budgets.
func (s *BudgetService) scanBudgets(rows *sql.Rows) ([]models.Budget, error) {
	var budgets []models.Budget
	for rows.Next() {
		budget, err := s.scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

// scanBudget scans a single row into a Budget struct.
func (s *BudgetService) scanBudget(scanner interface{ Scan(...interface{}) error }) (models.Budget, error) {
	var budget models.Budget
	var name sql.NullString
	err := scanner.Scan(&budget.ID, &budget.UserID, &name, &budget.StartDate, &budget.EndDate, &budget.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Budget{}, fmt.Errorf("budget %w", ErrNotFound)
		}
		return models.Budget{}, err
	}
	if name.Valid {
		budget.Name = name.String
	}
	return budget, nil
}
