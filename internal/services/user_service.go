package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finbook/finbook-be/internal/auth"
	"github.com/finbook/finbook-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(email, name, password string) (models.User, error)
	Authenticate(email, password string) (models.User, error)
	GetByID(id string) (models.User, error)
	UpdateProfile(id string, upd models.UserUpdate) (models.User, error)
	ChangePassword(id, currentPassword, newPassword string) error
	Delete(id string) error
}

// UserService provides business logic for account management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new user, hashing their password. Email addresses are
// unique across the system.
func (s *UserService) Register(email, name, password string) (models.User, error) {
	if email == "" {
		return models.User{}, fmt.Errorf("%w: email is required", ErrValidation)
	}

	var exists bool
	if err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", email).Scan(&exists); err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, fmt.Errorf("user with email %s %w", email, ErrConflict)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, email, name, password_hash) VALUES(?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(user.ID, user.Email, user.Name, user.PasswordHash); err != nil {
		return models.User{}, err
	}

	return s.GetByID(user.ID)
}

// Authenticate verifies a user's credentials. The same error is returned for
// an unknown email and a wrong password.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, email, name, password_hash, created_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := auth.CheckPassword(password, user.PasswordHash); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// GetByID retrieves a single user by their ID.
func (s *UserService) GetByID(id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, email, name, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("user %s %w", id, ErrNotFound)
		}
		return models.User{}, err
	}
	return user, nil
}

// UpdateProfile applies a partial update to a user's non-sensitive fields.
func (s *UserService) UpdateProfile(id string, upd models.UserUpdate) (models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return models.User{}, err
	}

	if upd.Email != nil && *upd.Email != user.Email {
		if *upd.Email == "" {
			return models.User{}, fmt.Errorf("%w: email is required", ErrValidation)
		}
		var taken bool
		if err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = ? AND id != ?)", *upd.Email, id).Scan(&taken); err != nil {
			return models.User{}, err
		}
		if taken {
			return models.User{}, fmt.Errorf("email %s %w", *upd.Email, ErrConflict)
		}
		user.Email = *upd.Email
	}
	if upd.Name != nil {
		user.Name = *upd.Name
	}

	if _, err := s.db.Exec("UPDATE users SET email = ?, name = ? WHERE id = ?", user.Email, user.Name, id); err != nil {
		return models.User{}, err
	}
	return s.GetByID(id)
}

// ChangePassword verifies the current password, then hashes and sets a new one.
func (s *UserService) ChangePassword(id, currentPassword, newPassword string) error {
	var hash string
	err := s.db.QueryRow("SELECT password_hash FROM users WHERE id = ?", id).Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("user %s %w", id, ErrNotFound)
		}
		return err
	}

	if err := auth.CheckPassword(currentPassword, hash); err != nil {
		return ErrInvalidCredentials
	}

	newHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	_, err = s.db.Exec("UPDATE users SET password_hash = ? WHERE id = ?", newHash, id)
	return err
}

// Delete removes a user. Owned rows go with it via foreign key cascade.
func (s *UserService) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s %w", id, ErrNotFound)
	}
	return nil
}
