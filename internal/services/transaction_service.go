package services

import (
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/finbook/finbook-be/internal/models"
)

// TransactionServiceProvider defines the interface for transaction services.
type TransactionServiceProvider interface {
	Create(ownerID string, in models.TransactionCreate) (models.Transaction, error)
	GetByID(ownerID, id string) (models.Transaction, error)
	List(ownerID string, skip, limit int) ([]models.Transaction, error)
	ListByCategory(ownerID, categoryID string, skip, limit int) ([]models.Transaction, error)
	Update(ownerID, id string, upd models.TransactionUpdate) (models.Transaction, error)
	Delete(ownerID, id string) error
}

// TransactionService provides business logic for transaction management.
// Every query is scoped to the owning user.
type TransactionService struct {
	db       *sql.DB
	eventSvc EventServiceProvider
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(db *sql.DB, eventSvc EventServiceProvider) *TransactionService {
	return &TransactionService{db: db, eventSvc: eventSvc}
}

// Create inserts a new transaction for the owner. A supplied category
// reference must resolve under the same owner; another user's category is
// treated as if it does not exist.
func (s *TransactionService) Create(ownerID string, in models.TransactionCreate) (models.Transaction, error) {
	if in.Description == "" {
		return models.Transaction{}, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if !models.ValidDate(in.Date) {
		return models.Transaction{}, fmt.Errorf("%w: invalid date %q", ErrValidation, in.Date)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Transaction{}, err
	}
	defer tx.Rollback()

	if in.CategoryID != nil {
		if err := categoryOwned(tx, ownerID, *in.CategoryID); err != nil {
			return models.Transaction{}, err
		}
	}

	id := uuid.New().String()
	if _, err := tx.Exec(
		"INSERT INTO transactions (id, user_id, category_id, date, description, amount) VALUES (?, ?, ?, ?, ?, ?)",
		id, ownerID, in.CategoryID, in.Date, in.Description, round2(in.Amount),
	); err != nil {
		return models.Transaction{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Transaction{}, err
	}

	s.eventSvc.Record(ownerID, "transaction.create", "info", fmt.Sprintf("Transaction %q recorded.", in.Description), &id)
	return s.GetByID(ownerID, id)
}

// GetByID retrieves a single transaction owned by the given user.
func (s *TransactionService) GetByID(ownerID, id string) (models.Transaction, error) {
	row := s.db.QueryRow("SELECT id, user_id, category_id, date, description, amount, created_at FROM transactions WHERE id = ? AND user_id = ?", id, ownerID)
	return s.scanTransaction(row)
}

// List retrieves the owner's transactions in insertion order.
func (s *TransactionService) List(ownerID string, skip, limit int) ([]models.Transaction, error) {
	skip, limit = normalizePage(skip, limit)
	rows, err := s.db.Query("SELECT id, user_id, category_id, date, description, amount, created_at FROM transactions WHERE user_id = ? ORDER BY rowid LIMIT ? OFFSET ?", ownerID, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.scanTransactions(rows)
}

// ListByCategory retrieves the owner's transactions in a given category.
func (s *TransactionService) ListByCategory(ownerID, categoryID string, skip, limit int) ([]models.Transaction, error) {
	skip, limit = normalizePage(skip, limit)
	rows, err := s.db.Query("SELECT id, user_id, category_id, date, description, amount, created_at FROM transactions WHERE user_id = ? AND category_id = ? ORDER BY rowid LIMIT ? OFFSET ?", ownerID, categoryID, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.scanTransactions(rows)
}

// Update applies a partial update. Absent fields keep their prior values.
func (s *TransactionService) Update(ownerID, id string, upd models.TransactionUpdate) (models.Transaction, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.Transaction{}, err
	}
	defer tx.Rollback()

	row := tx.QueryRow("SELECT id, user_id, category_id, date, description, amount, created_at FROM transactions WHERE id = ? AND user_id = ?", id, ownerID)
	txn, err := s.scanTransaction(row)
	if err != nil {
		return models.Transaction{}, err
	}

	if upd.Date != nil {
		if !models.ValidDate(*upd.Date) {
			return models.Transaction{}, fmt.Errorf("%w: invalid date %q", ErrValidation, *upd.Date)
		}
		txn.Date = *upd.Date
	}
	if upd.Description != nil {
		if *upd.Description == "" {
			return models.Transaction{}, fmt.Errorf("%w: description is required", ErrValidation)
		}
		txn.Description = *upd.Description
	}
	if upd.Amount != nil {
		txn.Amount = round2(*upd.Amount)
	}
	if upd.CategoryID != nil {
		if err := categoryOwned(tx, ownerID, *upd.CategoryID); err != nil {
			return models.Transaction{}, err
		}
		txn.CategoryID = upd.CategoryID
	}

	if _, err := tx.Exec(
		"UPDATE transactions SET category_id = ?, date = ?, description = ?, amount = ? WHERE id = ? AND user_id = ?",
		txn.CategoryID, txn.Date, txn.Description, txn.Amount, id, ownerID,
	); err != nil {
		return models.Transaction{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Transaction{}, err
	}

	s.eventSvc.Record(ownerID, "transaction.update", "info", fmt.Sprintf("Transaction %q updated.", txn.Description), &id)
	return s.GetByID(ownerID, id)
}

// Delete removes a transaction owned by the given user. A repeated delete
// reports NotFound.
func (s *TransactionService) Delete(ownerID, id string) error {
	res, err := s.db.Exec("DELETE FROM transactions WHERE id = ? AND user_id = ?", id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("transaction %s %w", id, ErrNotFound)
	}

	s.eventSvc.Record(ownerID, "transaction.delete", "warn", "Transaction was deleted.", &id)
	return nil
}

// categoryOwned verifies that a category exists and belongs to the owner.
func categoryOwned(tx *sql.Tx, ownerID, categoryID string) error {
	var ok bool
	if err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM categories WHERE id = ? AND user_id = ?)", categoryID, ownerID).Scan(&ok); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("category %s %w", categoryID, ErrNotFound)
	}
	return nil
}

// scanTransactions is a helper to scan multiple rows into a slice.
func (s *TransactionService) scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	var txns []models.Transaction
	for rows.Next() {
		txn, err := s.scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

// scanTransaction scans a single row into a Transaction struct.
func (s *TransactionService) scanTransaction(scanner interface{ Scan(...interface{}) error }) (models.Transaction, error) {
	var txn models.Transaction
	var categoryID sql.NullString
	err := scanner.Scan(&txn.ID, &txn.UserID, &categoryID, &txn.Date, &txn.Description, &txn.Amount, &txn.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Transaction{}, fmt.Errorf("transaction %w", ErrNotFound)
		}
		return models.Transaction{}, err
	}
	if categoryID.Valid {
		txn.CategoryID = &categoryID.String
	}
	return txn, nil
}

// round2 rounds a monetary amount to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
