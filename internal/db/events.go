package db

import (
	"database/sql"
	"time"

	"github.com/dori/desktimer/internal/model"
	"github.com/google/uuid"
)

func recordEvent(tx *sql.Tx, timerID string, kind model.EventKind, at time.Time) error {
	_, err := tx.Exec(`
		INSERT INTO timer_events (id, timer_id, kind, at) VALUES (?, ?, ?, ?)
	`, uuid.New().String(), timerID, string(kind), at.UTC())
	return err
}

// GetEvents returns the history of a timer, oldest first
func (db *DB) GetEvents(timerID string) ([]model.Event, error) {
	rows, err := db.Query(`
		SELECT id, timer_id, kind, at
		FROM timer_events
		WHERE timer_id = ?
		ORDER BY at, rowid
	`, timerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		var kind string
		if err := rows.Scan(&e.ID, &e.TimerID, &kind, &e.At); err != nil {
			return nil, err
		}
		e.Kind = model.EventKind(kind)
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountCompletedSince counts completions at or after since, including those
// of timers deleted afterwards
func (db *DB) CountCompletedSince(since time.Time) (int, error) {
	var n int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM timer_events WHERE kind = 'completed' AND at >= ?
	`, since.UTC()).Scan(&n)
	return n, err
}
