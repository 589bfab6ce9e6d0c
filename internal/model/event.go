package model

import (
	"time"
)

// EventKind classifies a timer lifecycle event
type EventKind string

const (
	EventCreated   EventKind = "created"
	EventCompleted EventKind = "completed"
	EventSnoozed   EventKind = "snoozed"
	EventDeleted   EventKind = "deleted"
)

// Event is one recorded lifecycle transition of a timer
type Event struct {
	ID      string    `json:"id"`
	TimerID string    `json:"timer_id"`
	Kind    EventKind `json:"kind"`
	At      time.Time `json:"at"`
}
