package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook/finbook-be/internal/models"
)

func TestBudgetCreateDefaultsStartDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewBudgetService(db, newTestEvents(db))
	alice := newTestUser(t, db, "alice@example.com")

	budget, err := svc.Create(alice.ID, models.BudgetCreate{Name: "March", EndDate: "2999-12-31"})
	require.NoError(t, err)
	assert.Equal(t, models.Today(), budget.StartDate)
}

func TestBudgetUpdateEnforcesDateOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewBudgetService(db, newTestEvents(db))
	alice := newTestUser(t, db, "alice@example.com")

	budget, err := svc.Create(alice.ID, models.BudgetCreate{
		Name:      "January",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
	})
	require.NoError(t, err)

	// Moving only the start past the unchanged end violates the invariant.
	_, err = svc.Update(alice.ID, budget.ID, models.BudgetUpdate{StartDate: strPtr("2024-02-01")})
	assert.ErrorIs(t, err, ErrInvalidState)

	// The failed update changed nothing.
	got, err := svc.GetByID(alice.ID, budget.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", got.StartDate)
	assert.Equal(t, "2024-01-31", got.EndDate)

	// Moving both together is fine.
	updated, err := svc.Update(alice.ID, budget.ID, models.BudgetUpdate{
		StartDate: strPtr("2024-02-01"),
		EndDate:   strPtr("2024-02-29"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", updated.StartDate)
	assert.Equal(t, "2024-02-29", updated.EndDate)
}

func TestBudgetPartialUpdateKeepsName(t *testing.T) {
	db := newTestDB(t)
	svc := NewBudgetService(db, newTestEvents(db))
	alice := newTestUser(t, db, "alice@example.com")

	budget, err := svc.Create(alice.ID, models.BudgetCreate{Name: "Groceries", StartDate: "2024-01-01", EndDate: "2024-12-31"})
	require.NoError(t, err)

	updated, err := svc.Update(alice.ID, budget.ID, models.BudgetUpdate{EndDate: strPtr("2024-06-30")})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", updated.Name)
	assert.Equal(t, "2024-01-01", updated.StartDate)
}

func TestBudgetOwnershipIsolation(t *testing.T) {
	db := newTestDB(t)
	svc := NewBudgetService(db, newTestEvents(db))
	alice := newTestUser(t, db, "alice@example.com")
	bob := newTestUser(t, db, "bob@example.com")

	budget, err := svc.Create(alice.ID, models.BudgetCreate{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.NoError(t, err)

	_, err = svc.GetByID(bob.ID, budget.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(bob.ID, budget.ID), ErrNotFound)
}

func TestBudgetListActive(t *testing.T) {
	db := newTestDB(t)
	svc := NewBudgetService(db, newTestEvents(db))
	alice := newTestUser(t, db, "alice@example.com")

	_, err := svc.Create(alice.ID, models.BudgetCreate{Name: "Old", StartDate: "2000-01-01", EndDate: "2000-12-31"})
	require.NoError(t, err)
	_, err = svc.Create(alice.ID, models.BudgetCreate{Name: "Current", StartDate: "2000-01-01", EndDate: "2999-12-31"})
	require.NoError(t, err)

	active, err := svc.ListActive(alice.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Current", active[0].Name)
}
