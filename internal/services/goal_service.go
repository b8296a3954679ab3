package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finbook/finbook-be/internal/models"
)

// GoalServiceProvider defines the interface for savings goal services.
type GoalServiceProvider interface {
	Create(ownerID string, in models.GoalCreate) (models.Goal, error)
	GetByID(ownerID, id string) (models.Goal, error)
	List(ownerID string, skip, limit int) ([]models.Goal, error)
	Update(ownerID, id string, upd models.GoalUpdate) (models.Goal, error)
	Delete(ownerID, id string) error
}

// GoalService provides business logic for savings goal management. Every
// query is scoped to the owning user.
type GoalService struct {
	db       *sql.DB
	eventSvc EventServiceProvider
}

// NewGoalService creates a new GoalService.
func NewGoalService(db *sql.DB, eventSvc EventServiceProvider) *GoalService {
	return &GoalService{db: db, eventSvc: eventSvc}
}

// Create inserts a new goal for the owner.
func (s *GoalService) Create(ownerID string, in models.GoalCreate) (models.Goal, error) {
	if in.Name == "" {
		return models.Goal{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.TargetDate != nil && !models.ValidDate(*in.TargetDate) {
		return models.Goal{}, fmt.Errorf("%w: invalid target date %q", ErrValidation, *in.TargetDate)
	}
	if in.TargetAmount != nil {
		rounded := round2(*in.TargetAmount)
		in.TargetAmount = &rounded
	}

	id := uuid.New().String()
	if _, err := s.db.Exec(
		"INSERT INTO goals (id, user_id, name, target_amount, target_date) VALUES (?, ?, ?, ?, ?)",
		id, ownerID, in.Name, in.TargetAmount, in.TargetDate,
	); err != nil {
		return models.Goal{}, err
	}

	s.eventSvc.Record(ownerID, "goal.create", "info", fmt.Sprintf("Goal %q created.", in.Name), &id)
	return s.GetByID(ownerID, id)
}

// GetByID retrieves a single goal owned by the given user.
func (s *GoalService) GetByID(ownerID, id string) (models.Goal, error) {
	row := s.db.QueryRow("SELECT id, user_id, name, target_amount, target_date, created_at FROM goals WHERE id = ? AND user_id = ?", id, ownerID)
	return s.scanGoal(row)
}

// List retrieves the owner's goals in insertion order.
func (s *GoalService) List(ownerID string, skip, limit int) ([]models.Goal, error) {
	skip, limit = normalizePage(skip, limit)
	rows, err := s.db.Query("SELECT id, user_id, name, target_amount, target_date, created_at FROM goals WHERE user_id = ? ORDER BY rowid LIMIT ? OFFSET ?", ownerID, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		goal, err := s.scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// Update applies a partial update. Absent fields keep their prior values.
func (s *GoalService) Update(ownerID, id string, upd models.GoalUpdate) (models.Goal, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.Goal{}, err
	}
	defer tx.Rollback()

	row := tx.QueryRow("SELECT id, user_id, name, target_amount, target_date, created_at FROM goals WHERE id = ? AND user_id = ?", id, ownerID)
	goal, err := s.scanGoal(row)
	if err != nil {
		return models.Goal{}, err
	}

	if upd.Name != nil {
		if *upd.Name == "" {
			return models.Goal{}, fmt.Errorf("%w: name is required", ErrValidation)
		}
		goal.Name = *upd.Name
	}
	if upd.TargetAmount != nil {
		rounded := round2(*upd.TargetAmount)
		goal.TargetAmount = &rounded
	}
	if upd.TargetDate != nil {
		if !models.ValidDate(*upd.TargetDate) {
			return models.Goal{}, fmt.Errorf("%w: invalid target date %q", ErrValidation, *upd.TargetDate)
		}
		goal.TargetDate = upd.TargetDate
	}

	if _, err := tx.Exec(
		"UPDATE goals SET name = ?, target_amount = ?, target_date = ? WHERE id = ? AND user_id = ?",
		goal.Name, goal.TargetAmount, goal.TargetDate, id, ownerID,
	); err != nil {
		return models.Goal{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Goal{}, err
	}

	s.eventSvc.Record(ownerID, "goal.update", "info", fmt.Sprintf("Goal %q updated.", goal.Name), &id)
	return s.GetByID(ownerID, id)
}

// Delete removes a goal owned by the given user.
func (s *GoalService) Delete(ownerID, id string) error {
	res, err := s.db.Exec("DELETE FROM goals WHERE id = ? AND user_id = ?", id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("goal %s %w", id, ErrNotFound)
	}

	s.eventSvc.Record(ownerID, "goal.delete", "warn", "Goal was deleted.", &id)
	return nil
}

// scanGoal scans a single row into a Goal struct.
func (s *GoalService) scanGoal(scanner interface{ Scan(...interface{}) error }) (models.Goal, error) {
	var goal models.Goal
	var amount sql.NullFloat64
	var date sql.NullString
	err := scanner.Scan(&goal.ID, &goal.UserID, &goal.Name, &amount, &date, &goal.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Goal{}, fmt.Errorf("goal %w", ErrNotFound)
		}
		return models.Goal{}, err
	}
	if amount.Valid {
		goal.TargetAmount = &amount.Float64
	}
	if date.Valid {
		goal.TargetDate = &date.String
	}
	return goal, nil
}
