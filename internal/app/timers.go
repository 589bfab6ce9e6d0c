package app

import (
	"fmt"
	"time"

	"github.com/dori/desktimer/internal/db"
	"github.com/dori/desktimer/internal/menu"
	"github.com/dori/desktimer/internal/model"
	"github.com/dori/desktimer/internal/registry"
)

// Restore loads persisted timers into the registry. Timers that ran out
// while the app was closed complete on the next tick.
func (a *App) Restore() error {
	timers, err := a.DB.GetTimers()
	if err != nil {
		return fmt.Errorf("failed to load timers: %w", err)
	}

	for _, t := range timers {
		err := a.Registry.Restore(registry.Record{
			ID:           t.ID,
			TotalSeconds: t.DurationSeconds,
			StartedAt:    t.StartedAt,
			Complete:     t.Complete,
		})
		if err != nil {
			return fmt.Errorf("failed to restore timer %s: %w", t.ID, err)
		}
		a.mu.Lock()
		a.timers[t.ID] = t
		a.mu.Unlock()
	}
	return nil
}

// StartTimer persists and starts a timer configured by sel
func (a *App) StartTimer(sel menu.Selection, label string) (*model.Timer, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	a.opMu.Lock()
	defer a.opMu.Unlock()

	start := a.Now()
	t, err := a.DB.CreateTimer(db.NewTimer{
		Label:           label,
		Color:           sel.Color,
		DurationSeconds: sel.TotalSeconds(),
		SnoozeMinutes:   sel.SnoozeMinutes,
		StartedAt:       start,
	})
	if err != nil {
		return nil, err
	}

	// visible to the completion handler before a pass can see the record
	a.mu.Lock()
	a.timers[t.ID] = *t
	a.mu.Unlock()

	if err := a.Registry.Create(t.ID, t.DurationSeconds, t.StartedAt); err != nil {
		// uuid collision; keep storage in step with the registry
		a.mu.Lock()
		delete(a.timers, t.ID)
		a.mu.Unlock()
		_ = a.DB.DeleteTimer(t.ID, start)
		return nil, err
	}

	a.Log.Infow("timer started", "timer_id", t.ID, "duration_seconds", t.DurationSeconds, "color", t.Color)
	return t, nil
}

// Snooze restarts timer id for its configured snooze length and silences it.
// Nothing changes when the snooze cannot be persisted.
func (a *App) Snooze(id string) error {
	a.opMu.Lock()
	defer a.opMu.Unlock()

	t, ok := a.Timer(id)
	if !ok {
		return fmt.Errorf("snooze %q: %w", id, registry.ErrNotFound)
	}

	now := a.Now()
	seconds := t.SnoozeSeconds()
	if err := a.DB.SnoozeTimer(id, seconds, now); err != nil {
		a.Log.Errorw("failed to persist snooze", "timer_id", id, "error", err)
		return fmt.Errorf("failed to snooze timer: %w", err)
	}
	if err := a.Registry.Snooze(id, seconds, now); err != nil {
		return err
	}
	a.Alarm.Stop(id)

	a.mu.Lock()
	t.DurationSeconds = seconds
	t.StartedAt = now
	t.Complete = false
	a.timers[id] = t
	a.mu.Unlock()

	if err := a.Notifier.SendSnoozed(t.DisplayName(), t.SnoozeMinutes); err != nil {
		a.Log.Debugw("snooze notification failed", "error", err)
	}
	a.Log.Infow("timer snoozed", "timer_id", id, "minutes", t.SnoozeMinutes)
	return nil
}

// Delete removes timer id everywhere. Deleting an unknown id is a no-op.
func (a *App) Delete(id string) error {
	a.opMu.Lock()
	defer a.opMu.Unlock()

	a.Registry.Remove(id)
	a.Alarm.Stop(id)

	a.mu.Lock()
	delete(a.timers, id)
	a.mu.Unlock()

	if err := a.DB.DeleteTimer(id, a.Now()); err != nil {
		a.Log.Errorw("failed to delete timer", "timer_id", id, "error", err)
		return fmt.Errorf("failed to delete timer: %w", err)
	}
	a.Log.Infow("timer deleted", "timer_id", id)
	return nil
}

// Tick runs one throttled evaluation pass at the application clock's now
func (a *App) Tick() []registry.Completion {
	completions, _ := a.Driver.Step(a.Now())
	return completions
}

// handleCompletion runs after the registry pass has released its lock, so
// holding opMu here cannot deadlock against Delete
func (a *App) handleCompletion(c registry.Completion) {
	a.opMu.Lock()
	defer a.opMu.Unlock()

	// deleted or snoozed between the pass and this callback
	if rec, err := a.Registry.Get(c.ID); err != nil || !rec.Complete {
		return
	}
	a.mu.Lock()
	t, ok := a.timers[c.ID]
	if ok {
		t.Complete = true
		a.timers[c.ID] = t
	}
	a.mu.Unlock()
	if !ok {
		return
	}

	if err := a.DB.MarkComplete(c.ID, c.At); err != nil {
		a.Log.Errorw("failed to persist completion", "timer_id", c.ID, "error", err)
	}
	a.Alarm.Ring(c.ID, t.DisplayName())
}

// Timer returns the stored configuration of id
func (a *App) Timer(id string) (model.Timer, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	t, ok := a.timers[id]
	return t, ok
}

// Timers returns every live timer with its published display state, in
// creation order
func (a *App) Timers() []TimerView {
	ids := a.Registry.IDs()
	views := make([]TimerView, 0, len(ids))
	for _, id := range ids {
		ds, err := a.Registry.Read(id)
		if err != nil {
			continue
		}
		t, ok := a.Timer(id)
		if !ok {
			continue
		}
		views = append(views, TimerView{Timer: t, Display: ds, Ringing: a.Alarm.Ringing(id)})
	}
	return views
}

// CompletedToday counts completions since local midnight
func (a *App) CompletedToday() (int, error) {
	now := a.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return a.DB.CountCompletedSince(midnight)
}
