// Package registry owns the live countdown records and the display state
// published for each of them.
package registry

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dori/desktimer/internal/countdown"
	"github.com/dori/desktimer/internal/model"
)

var (
	// ErrNotFound is returned when an operation names an unknown timer
	ErrNotFound = errors.New("timer not found")
	// ErrAlreadyExists is returned by Create for a duplicate id
	ErrAlreadyExists = errors.New("timer already exists")
	// ErrInvalidDuration is returned for negative durations
	ErrInvalidDuration = errors.New("invalid duration")
)

// Record is the authoritative state of one countdown
type Record struct {
	ID           string
	TotalSeconds int
	StartedAt    time.Time
	Complete     bool
}

// Completion is emitted once when a record's countdown runs out
type Completion struct {
	ID string
	At time.Time
}

// CompletionHandler receives completions after a tick pass
type CompletionHandler func(Completion)

type entry struct {
	record  Record
	display model.DisplayState
}

// Registry maps timer ids to their records and published display state.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	entries  map[string]*entry
	order    []string
	handlers []CompletionHandler
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		entries: make(map[string]*entry),
	}
}

// OnComplete registers a handler invoked for every completion, in order,
// after the tick that produced it has released the registry lock.
func (r *Registry) OnComplete(h CompletionHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, h)
}

// Create inserts a new running countdown and publishes its initial state
func (r *Registry) Create(id string, totalSeconds int, startedAt time.Time) error {
	return r.insert(Record{ID: id, TotalSeconds: totalSeconds, StartedAt: startedAt})
}

// Restore inserts a record whose completion flag is already known, such as
// one loaded from storage. A complete record never completes again until
// it is snoozed.
func (r *Registry) Restore(rec Record) error {
	return r.insert(rec)
}

func (r *Registry) insert(rec Record) error {
	if rec.TotalSeconds < 0 {
		return fmt.Errorf("create %q: %w", rec.ID, ErrInvalidDuration)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[rec.ID]; ok {
		return fmt.Errorf("create %q: %w", rec.ID, ErrAlreadyExists)
	}

	e := &entry{record: rec}
	h, m, s := countdown.Decompose(rec.TotalSeconds)
	e.display = model.DisplayState{
		TotalSeconds: rec.TotalSeconds,
		Hours:        h,
		Minutes:      m,
		Seconds:      s,
		Complete:     rec.Complete,
	}
	if rec.Complete {
		e.display.Hours, e.display.Minutes, e.display.Seconds = 0, 0, 0
	}

	r.entries[rec.ID] = e
	r.order = append(r.order, rec.ID)
	return nil
}

// Tick evaluates every record against now, publishes fresh display state,
// and returns the completions produced by this pass in creation order.
func (r *Registry) Tick(now time.Time) []Completion {
	r.mu.Lock()
	var completions []Completion
	for _, id := range r.order {
		e := r.entries[id]
		res := countdown.Evaluate(e.record.StartedAt, e.record.TotalSeconds, now, e.record.Complete)
		if res.JustCompleted {
			e.record.Complete = true
			completions = append(completions, Completion{ID: id, At: now})
		}
		e.display = displayFor(e.record, res)
	}
	handlers := r.handlers
	r.mu.Unlock()

	for _, c := range completions {
		for _, h := range handlers {
			h(c)
		}
	}
	return completions
}

// Snooze restarts the countdown of id with a new duration starting at now.
// The display state is recomputed immediately.
func (r *Registry) Snooze(id string, totalSeconds int, now time.Time) error {
	if totalSeconds < 0 {
		return fmt.Errorf("snooze %q: %w", id, ErrInvalidDuration)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return fmt.Errorf("snooze %q: %w", id, ErrNotFound)
	}

	e.record.StartedAt = now
	e.record.TotalSeconds = totalSeconds
	e.record.Complete = false

	// Recompute without consuming the completion edge; a zero-length snooze
	// still completes on the next tick.
	res := countdown.Evaluate(now, totalSeconds, now, false)
	e.display = displayFor(e.record, res)
	return nil
}

// Remove deletes id and its display state. Removing an unknown id is a no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return
	}
	delete(r.entries, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Read returns the last published display state of id
func (r *Registry) Read(id string) (model.DisplayState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return model.DisplayState{}, fmt.Errorf("read %q: %w", id, ErrNotFound)
	}
	return e.display, nil
}

// Get returns a copy of the record for id
func (r *Registry) Get(id string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return Record{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	return e.record, nil
}

// IDs returns the live timer ids in creation order
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Len returns the number of live timers
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func displayFor(rec Record, res countdown.Result) model.DisplayState {
	return model.DisplayState{
		TotalSeconds: rec.TotalSeconds,
		Hours:        res.Hours,
		Minutes:      res.Minutes,
		Seconds:      res.Seconds,
		Complete:     rec.Complete,
	}
}
