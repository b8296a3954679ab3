package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/finbook/finbook-be/internal/database"
	"github.com/finbook/finbook-be/internal/models"
)

// newTestDB opens a migrated in-memory database. A single connection keeps
// every statement on the same in-memory instance.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestUser(t *testing.T, db *sql.DB, email string) models.User {
	t.Helper()
	user, err := NewUserService(db).Register(email, "Test User", "pw123")
	require.NoError(t, err)
	return user
}

// newTestEvents builds an event service that only persists, with no live
// feed attached.
func newTestEvents(db *sql.DB) *EventService {
	return NewEventService(db, nil)
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
