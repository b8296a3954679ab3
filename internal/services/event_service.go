package services

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/finbook/finbook-be/internal/models"
	ws "github.com/finbook/finbook-be/internal/websocket"
)

// Notifier pushes a message to every connected client of one user. The
// websocket hub satisfies this.
type Notifier interface {
	BroadcastTo(userID string, message []byte)
}

// EventServiceProvider defines the interface for activity feed services.
type EventServiceProvider interface {
	Record(userID, eventType, level, message string, entityID *string) error
	Recent(userID string, limit int) ([]models.Event, error)
	PruneOlderThan(days int) (int64, error)
}

// EventService records activity feed entries and pushes them to the owner's
// live feed.
type EventService struct {
	db       *sql.DB
	notifier Notifier
}

// NewEventService creates a new EventService. notifier may be nil, in which
// case events are only persisted.
func NewEventService(db *sql.DB, notifier Notifier) *EventService {
	return &EventService{db: db, notifier: notifier}
}

// Record persists a new activity entry for a user and broadcasts it to the
// user's connected clients.
func (s *EventService) Record(userID, eventType, level, message string, entityID *string) error {
	event := models.Event{
		ID:       uuid.New().String(),
		UserID:   userID,
		Type:     eventType,
		Level:    level,
		Message:  message,
		EntityID: entityID,
	}

	stmt, err := s.db.Prepare("INSERT INTO events (id, user_id, type, level, message, entity_id) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(event.ID, event.UserID, event.Type, event.Level, event.Message, event.EntityID); err != nil {
		return err
	}

	if s.notifier != nil {
		payload, err := json.Marshal(ws.Message{Action: "event", Payload: event})
		if err != nil {
			log.Error().Err(err).Str("event_id", event.ID).Msg("Failed to encode feed message")
			return nil
		}
		s.notifier.BroadcastTo(userID, payload)
	}
	return nil
}

// Recent retrieves the most recent activity entries for a user.
func (s *EventService) Recent(userID string, limit int) ([]models.Event, error) {
	rows, err := s.db.Query("SELECT id, user_id, type, level, message, entity_id, created_at FROM events WHERE user_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?", userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.UserID, &event.Type, &event.Level, &event.Message, &event.EntityID, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// PruneOlderThan deletes activity entries older than the given number of
// days and returns how many rows were removed.
func (s *EventService) PruneOlderThan(days int) (int64, error) {
	res, err := s.db.Exec("DELETE FROM events WHERE created_at < datetime('now', ?)", fmt.Sprintf("-%d days", days))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
