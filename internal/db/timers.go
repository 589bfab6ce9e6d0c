package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dori/desktimer/internal/model"
	"github.com/google/uuid"
)

// ErrTimerNotFound is returned when a timer row does not exist
var ErrTimerNotFound = errors.New("timer not found in database")

// NewTimer describes a timer to be inserted
type NewTimer struct {
	Label           string
	Color           model.Color
	DurationSeconds int
	SnoozeMinutes   int
	StartedAt       time.Time
}

// GetTimers returns all timers in creation order
func (db *DB) GetTimers() ([]model.Timer, error) {
	rows, err := db.Query(`
		SELECT id, label, color, duration_seconds, snooze_minutes,
		       started_at, complete, created_at, updated_at
		FROM timers
		ORDER BY created_at, rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var timers []model.Timer
	for rows.Next() {
		t, err := scanTimer(rows)
		if err != nil {
			return nil, err
		}
		timers = append(timers, *t)
	}

	return timers, rows.Err()
}

// GetTimer returns a single timer by ID
func (db *DB) GetTimer(id string) (*model.Timer, error) {
	row := db.QueryRow(`
		SELECT id, label, color, duration_seconds, snooze_minutes,
		       started_at, complete, created_at, updated_at
		FROM timers WHERE id = ?
	`, id)

	t, err := scanTimer(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("timer %s: %w", id, ErrTimerNotFound)
	}
	return t, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTimer(s scanner) (*model.Timer, error) {
	var t model.Timer
	var color string
	var complete int
	err := s.Scan(
		&t.ID, &t.Label, &color, &t.DurationSeconds, &t.SnoozeMinutes,
		&t.StartedAt, &complete, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Color = model.Color(color)
	t.Complete = complete == 1
	return &t, nil
}

// CreateTimer inserts a new running timer and records its creation. The
// timer is created at the instant it starts.
func (db *DB) CreateTimer(nt NewTimer) (*model.Timer, error) {
	now := nt.StartedAt.UTC()
	t := &model.Timer{
		ID:              uuid.New().String(),
		Label:           nt.Label,
		Color:           nt.Color,
		DurationSeconds: nt.DurationSeconds,
		SnoozeMinutes:   nt.SnoozeMinutes,
		StartedAt:       now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := db.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO timers (id, label, color, duration_seconds, snooze_minutes,
			                    started_at, complete, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?)
		`, t.ID, t.Label, string(t.Color), t.DurationSeconds, t.SnoozeMinutes,
			t.StartedAt, t.CreatedAt, t.UpdatedAt)
		if err != nil {
			return err
		}
		return recordEvent(tx, t.ID, model.EventCreated, now)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create timer: %w", err)
	}

	return t, nil
}

// SnoozeTimer restarts a timer at startedAt with a new duration
func (db *DB) SnoozeTimer(id string, durationSeconds int, startedAt time.Time) error {
	return db.Transaction(func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			UPDATE timers
			SET duration_seconds = ?, started_at = ?, complete = 0, updated_at = ?
			WHERE id = ?
		`, durationSeconds, startedAt.UTC(), startedAt.UTC(), id)
		if err != nil {
			return err
		}
		if err := requireRow(res, id); err != nil {
			return err
		}
		return recordEvent(tx, id, model.EventSnoozed, startedAt)
	})
}

// MarkComplete flags a timer as complete
func (db *DB) MarkComplete(id string, at time.Time) error {
	return db.Transaction(func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			UPDATE timers SET complete = 1, updated_at = ? WHERE id = ? AND complete = 0
		`, at.UTC(), id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			// already complete, or gone
			return nil
		}
		return recordEvent(tx, id, model.EventCompleted, at)
	})
}

// DeleteTimer removes a timer row, recording the deletion at at. Deleting an
// unknown id is a no-op.
func (db *DB) DeleteTimer(id string, at time.Time) error {
	return db.Transaction(func(tx *sql.Tx) error {
		res, err := tx.Exec(`DELETE FROM timers WHERE id = ?`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil || n == 0 {
			return err
		}
		return recordEvent(tx, id, model.EventDeleted, at)
	})
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("timer %s: %w", id, ErrTimerNotFound)
	}
	return nil
}
