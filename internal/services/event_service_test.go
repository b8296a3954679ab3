package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook/finbook-be/internal/models"
)

// captureNotifier records broadcast calls for assertions.
type captureNotifier struct {
	userIDs  []string
	payloads [][]byte
}

func (c *captureNotifier) BroadcastTo(userID string, message []byte) {
	c.userIDs = append(c.userIDs, userID)
	c.payloads = append(c.payloads, message)
}

func TestMutationsProduceFeedEntries(t *testing.T) {
	db := newTestDB(t)
	events := newTestEvents(db)
	svc := NewCategoryService(db, events)
	alice := newTestUser(t, db, "alice@example.com")

	cat, err := svc.Create(alice.ID, models.CategoryCreate{Name: "Food"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(alice.ID, cat.ID))

	recent, err := events.Recent(alice.ID, 20)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	// Most recent first.
	assert.Equal(t, "category.delete", recent[0].Type)
	assert.Equal(t, "category.create", recent[1].Type)
}

func TestFeedIsOwnerScoped(t *testing.T) {
	db := newTestDB(t)
	events := newTestEvents(db)
	svc := NewGoalService(db, events)
	alice := newTestUser(t, db, "alice@example.com")
	bob := newTestUser(t, db, "bob@example.com")

	_, err := svc.Create(alice.ID, models.GoalCreate{Name: "Emergency fund"})
	require.NoError(t, err)

	bobFeed, err := events.Recent(bob.ID, 20)
	require.NoError(t, err)
	assert.Empty(t, bobFeed)
}

func TestRecordBroadcastsToOwner(t *testing.T) {
	db := newTestDB(t)
	notifier := &captureNotifier{}
	events := NewEventService(db, notifier)
	alice := newTestUser(t, db, "alice@example.com")

	require.NoError(t, events.Record(alice.ID, "transaction.create", "info", "Transaction recorded.", nil))

	require.Len(t, notifier.userIDs, 1)
	assert.Equal(t, alice.ID, notifier.userIDs[0])

	var msg struct {
		Action  string       `json:"action"`
		Payload models.Event `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(notifier.payloads[0], &msg))
	assert.Equal(t, "event", msg.Action)
	assert.Equal(t, "transaction.create", msg.Payload.Type)
}

func TestPruneOlderThan(t *testing.T) {
	db := newTestDB(t)
	events := newTestEvents(db)
	alice := newTestUser(t, db, "alice@example.com")

	require.NoError(t, events.Record(alice.ID, "goal.create", "info", "Fresh entry.", nil))
	// Backdate one entry past the retention window.
	_, err := db.Exec("INSERT INTO events (id, user_id, type, level, message, created_at) VALUES ('old', ?, 'goal.create', 'info', 'Ancient entry.', datetime('now', '-120 days'))", alice.ID)
	require.NoError(t, err)

	removed, err := events.PruneOlderThan(90)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	recent, err := events.Recent(alice.ID, 20)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "Fresh entry.", recent[0].Message)
}
