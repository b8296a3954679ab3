package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook/finbook-be/internal/models"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Register("alice@example.com", "Alice", "pw123")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Empty(t, user.PasswordHash, "hash must not leave the service")

	authed, err := svc.Authenticate("alice@example.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	_, err := svc.Register("alice@example.com", "Alice", "pw123")
	require.NoError(t, err)

	_, err = svc.Register("alice@example.com", "Other Alice", "different")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthenticateUniformFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	_, err := svc.Register("alice@example.com", "Alice", "pw123")
	require.NoError(t, err)

	// Unknown email and wrong password are indistinguishable.
	_, unknownErr := svc.Authenticate("nobody@example.com", "pw123")
	_, wrongErr := svc.Authenticate("alice@example.com", "nope")
	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
}

func TestUpdateProfilePartial(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Register("alice@example.com", "Alice", "pw123")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(user.ID, models.UserUpdate{Name: strPtr("Alice B.")})
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email, "email untouched by partial update")
}

func TestUpdateProfileEmailTaken(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	_, err := svc.Register("alice@example.com", "Alice", "pw123")
	require.NoError(t, err)
	bob, err := svc.Register("bob@example.com", "Bob", "pw456")
	require.NoError(t, err)

	_, err = svc.UpdateProfile(bob.ID, models.UserUpdate{Email: strPtr("alice@example.com")})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Register("alice@example.com", "Alice", "pw123")
	require.NoError(t, err)

	require.ErrorIs(t, svc.ChangePassword(user.ID, "wrong", "new-pw"), ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(user.ID, "pw123", "new-pw"))
	_, err = svc.Authenticate("alice@example.com", "new-pw")
	assert.NoError(t, err)
	_, err = svc.Authenticate("alice@example.com", "pw123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDeleteUserCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	events := newTestEvents(db)
	categories := NewCategoryService(db, events)

	user, err := svc.Register("alice@example.com", "Alice", "pw123")
	require.NoError(t, err)
	_, err = categories.Create(user.ID, models.CategoryCreate{Name: "Food"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(user.ID))
	assert.ErrorIs(t, svc.Delete(user.ID), ErrNotFound)

	var remaining int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&remaining))
	assert.Zero(t, remaining, "owned rows removed with the account")
}
