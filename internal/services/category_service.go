package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finbook/finbook-be/internal/models"
)

// CategoryServiceProvider defines the interface for category services.
type CategoryServiceProvider interface {
	Create(ownerID string, in models.CategoryCreate) (models.Category, error)
	GetByID(ownerID, id string) (models.Category, error)
	List(ownerID string, skip, limit int) ([]models.Category, error)
	ListByType(ownerID, categoryType string) ([]models.Category, error)
	Update(ownerID, id string, upd models.CategoryUpdate) (models.Category, error)
	Delete(ownerID, id string) error
}

// CategoryService provides business logic for category management. Every
// query is scoped to the owning user.
type CategoryService struct {
	db       *sql.DB
	eventSvc EventServiceProvider
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(db *sql.DB, eventSvc EventServiceProvider) *CategoryService {
	return &CategoryService{db: db, eventSvc: eventSvc}
}

// Create inserts a new category for the owner. Names are unique per owner.
func (s *CategoryService) Create(ownerID string, in models.CategoryCreate) (models.Category, error) {
	if in.Name == "" {
		return models.Category{}, fmt.Errorf("%w: name is required", ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Category{}, err
	}
	defer tx.Rollback()

	var taken bool
	if err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM categories WHERE user_id = ? AND name = ?)", ownerID, in.Name).Scan(&taken); err != nil {
		return models.Category{}, err
	}
	if taken {
		return models.Category{}, fmt.Errorf("category %q %w", in.Name, ErrConflict)
	}

	id := uuid.New().String()
	if _, err := tx.Exec("INSERT INTO categories (id, user_id, name, type) VALUES (?, ?, ?, ?)", id, ownerID, in.Name, in.Type); err != nil {
		return models.Category{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Category{}, err
	}

	s.eventSvc.Record(ownerID, "category.create", "info", fmt.Sprintf("Category %q created.", in.Name), &id)
	return s.GetByID(ownerID, id)
}

// GetByID retrieves a single category owned by the given user.
func (s *CategoryService) GetByID(ownerID, id string) (models.Category, error) {
	row := s.db.QueryRow("SELECT id, user_id, name, type, created_at FROM categories WHERE id = ? AND user_id = ?", id, ownerID)
	return s.scanCategory(row)
}

// List retrieves the owner's categories in insertion order.
func (s *CategoryService) List(ownerID string, skip, limit int) ([]models.Category, error) {
	skip, limit = normalizePage(skip, limit)
	rows, err := s.db.Query("SELECT id, user_id, name, type, created_at FROM categories WHERE user_id = ? ORDER BY rowid LIMIT ? OFFSET ?", ownerID, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.scanCategories(rows)
}

// ListByType retrieves the owner's categories with the given type tag.
func (s *CategoryService) ListByType(ownerID, categoryType string) ([]models.Category, error) {
	rows, err := s.db.Query("SELECT id, user_id, name, type, created_at FROM categories WHERE user_id = ? AND type = ? ORDER BY rowid", ownerID, categoryType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.scanCategories(rows)
}

// Update applies a partial update. A renamed category must keep the per-owner
// uniqueness of names.
func (s *CategoryService) Update(ownerID, id string, upd models.CategoryUpdate) (models.Category, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.Category{}, err
	}
	defer tx.Rollback()

	row := tx.QueryRow("SELECT id, user_id, name, type, created_at FROM categories WHERE id = ? AND user_id = ?", id, ownerID)
	category, err := s.scanCategory(row)
	if err != nil {
		return models.Category{}, err
	}

	if upd.Name != nil && *upd.Name != category.Name {
		if *upd.Name == "" {
			return models.Category{}, fmt.Errorf("%w: name is required", ErrValidation)
		}
		var taken bool
		if err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM categories WHERE user_id = ? AND name = ? AND id != ?)", ownerID, *upd.Name, id).Scan(&taken); err != nil {
			return models.Category{}, err
		}
		if taken {
			return models.Category{}, fmt.Errorf("category %q %w", *upd.Name, ErrConflict)
		}
		category.Name = *upd.Name
	}
	if upd.Type != nil {
		category.Type = *upd.Type
	}

	if _, err := tx.Exec("UPDATE categories SET name = ?, type = ? WHERE id = ? AND user_id = ?", category.Name, category.Type, id, ownerID); err != nil {
		return models.Category{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Category{}, err
	}

	s.eventSvc.Record(ownerID, "category.update", "info", fmt.Sprintf("Category %q updated.", category.Name), &id)
	return s.GetByID(ownerID, id)
}

// Delete removes a category owned by the given user. Transactions that
// referenced it fall back to uncategorized via the schema's ON DELETE SET
// NULL.
func (s *CategoryService) Delete(ownerID, id string) error {
	res, err := s.db.Exec("DELETE FROM categories WHERE id = ? AND user_id = ?", id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("category %s %w", id, ErrNotFound)
	}

	s.eventSvc.Record(ownerID, "category.delete", "warn", "Category was deleted.", &id)
	return nil
}

// scanCategories is a helper to scan multiple rows into a slice of Categories.
func (s *CategoryService) scanCategories(rows *sql.Rows) ([]models.Category, error) {
	var categories []models.Category
	for rows.Next() {
		category, err := s.scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// scanCategory scans a single row into a Category struct.
func (s *CategoryService) scanCategory(scanner interface{ Scan(...interface{}) error }) (models.Category, error) {
	var category models.Category
	var categoryType sql.NullString
	err := scanner.Scan(&category.ID, &category.UserID, &category.Name, &categoryType, &category.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, fmt.Errorf("category %w", ErrNotFound)
		}
		return models.Category{}, err
	}
	if categoryType.Valid {
		category.Type = categoryType.String
	}
	return category, nil
}

// normalizePage clamps pagination parameters to the fixed page policy.
func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return skip, limit
}
