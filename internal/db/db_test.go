package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dori/desktimer/internal/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateAndGetTimers(t *testing.T) {
	db := openTestDB(t)
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	first, err := db.CreateTimer(NewTimer{Label: "Tea", Color: model.ColorRed, DurationSeconds: 180, SnoozeMinutes: 2, StartedAt: start})
	if err != nil {
		t.Fatalf("CreateTimer failed: %v", err)
	}
	second, err := db.CreateTimer(NewTimer{Color: model.ColorCyan, DurationSeconds: 600, SnoozeMinutes: 5, StartedAt: start.Add(time.Second)})
	if err != nil {
		t.Fatalf("CreateTimer failed: %v", err)
	}

	timers, err := db.GetTimers()
	if err != nil {
		t.Fatalf("GetTimers failed: %v", err)
	}
	if len(timers) != 2 {
		t.Fatalf("expected 2 timers, got %d", len(timers))
	}
	if timers[0].ID != first.ID || timers[1].ID != second.ID {
		t.Errorf("timers not in creation order: %s, %s", timers[0].ID, timers[1].ID)
	}

	got := timers[0]
	if got.Label != "Tea" || got.Color != model.ColorRed || got.DurationSeconds != 180 || got.SnoozeMinutes != 2 {
		t.Errorf("unexpected timer %+v", got)
	}
	if !got.StartedAt.Equal(start) {
		t.Errorf("expected started_at %v, got %v", start, got.StartedAt)
	}
	if got.Complete {
		t.Error("new timer must not be complete")
	}
}

func TestSnoozeAndCompleteLifecycle(t *testing.T) {
	db := openTestDB(t)
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	timer, err := db.CreateTimer(NewTimer{Color: model.ColorPeach, DurationSeconds: 5, SnoozeMinutes: 5, StartedAt: start})
	if err != nil {
		t.Fatalf("CreateTimer failed: %v", err)
	}

	doneAt := start.Add(6 * time.Second)
	if err := db.MarkComplete(timer.ID, doneAt); err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	// second mark is ignored and records nothing
	if err := db.MarkComplete(timer.ID, doneAt.Add(time.Second)); err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}

	got, err := db.GetTimer(timer.ID)
	if err != nil {
		t.Fatalf("GetTimer failed: %v", err)
	}
	if !got.Complete {
		t.Error("expected timer to be complete")
	}

	snoozeAt := start.Add(time.Minute)
	if err := db.SnoozeTimer(timer.ID, 300, snoozeAt); err != nil {
		t.Fatalf("SnoozeTimer failed: %v", err)
	}
	got, _ = db.GetTimer(timer.ID)
	if got.Complete || got.DurationSeconds != 300 || !got.StartedAt.Equal(snoozeAt) {
		t.Errorf("snooze not applied: %+v", got)
	}

	events, err := db.GetEvents(timer.ID)
	if err != nil {
		t.Fatalf("GetEvents failed: %v", err)
	}
	counts := map[model.EventKind]int{}
	for _, e := range events {
		counts[e.Kind]++
	}
	for _, kind := range []model.EventKind{model.EventCreated, model.EventCompleted, model.EventSnoozed} {
		if counts[kind] != 1 {
			t.Errorf("expected one %s event, got %d (%v)", kind, counts[kind], counts)
		}
	}
}

func TestTimestampsFollowSuppliedTimes(t *testing.T) {
	db := openTestDB(t)
	// far from the wall clock so a time.Now() stamp would stand out
	start := time.Date(2001, 6, 1, 12, 0, 0, 0, time.UTC)

	timer, err := db.CreateTimer(NewTimer{Color: model.ColorPeach, DurationSeconds: 5, SnoozeMinutes: 1, StartedAt: start})
	if err != nil {
		t.Fatalf("CreateTimer failed: %v", err)
	}
	if !timer.CreatedAt.Equal(start) || !timer.UpdatedAt.Equal(start) {
		t.Errorf("expected created/updated %v, got %v/%v", start, timer.CreatedAt, timer.UpdatedAt)
	}

	doneAt := start.Add(5 * time.Second)
	if err := db.MarkComplete(timer.ID, doneAt); err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	got, _ := db.GetTimer(timer.ID)
	if !got.CreatedAt.Equal(start) || !got.UpdatedAt.Equal(doneAt) {
		t.Errorf("expected created %v updated %v, got %v/%v", start, doneAt, got.CreatedAt, got.UpdatedAt)
	}

	snoozeAt := start.Add(time.Minute)
	if err := db.SnoozeTimer(timer.ID, 60, snoozeAt); err != nil {
		t.Fatalf("SnoozeTimer failed: %v", err)
	}
	got, _ = db.GetTimer(timer.ID)
	if !got.UpdatedAt.Equal(snoozeAt) {
		t.Errorf("expected updated %v, got %v", snoozeAt, got.UpdatedAt)
	}

	deleteAt := start.Add(2 * time.Minute)
	if err := db.DeleteTimer(timer.ID, deleteAt); err != nil {
		t.Fatalf("DeleteTimer failed: %v", err)
	}

	events, err := db.GetEvents(timer.ID)
	if err != nil {
		t.Fatalf("GetEvents failed: %v", err)
	}
	want := []struct {
		kind model.EventKind
		at   time.Time
	}{
		{model.EventCreated, start},
		{model.EventCompleted, doneAt},
		{model.EventSnoozed, snoozeAt},
		{model.EventDeleted, deleteAt},
	}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, w := range want {
		if events[i].Kind != w.kind || !events[i].At.Equal(w.at) {
			t.Errorf("event %d: expected %s at %v, got %s at %v", i, w.kind, w.at, events[i].Kind, events[i].At)
		}
	}
}

func TestSnoozeMissingTimer(t *testing.T) {
	db := openTestDB(t)
	err := db.SnoozeTimer("missing", 60, time.Now())
	if !errors.Is(err, ErrTimerNotFound) {
		t.Errorf("expected ErrTimerNotFound, got %v", err)
	}

	if _, err := db.GetTimer("missing"); !errors.Is(err, ErrTimerNotFound) {
		t.Errorf("expected ErrTimerNotFound, got %v", err)
	}
}

func TestDeleteKeepsHistory(t *testing.T) {
	db := openTestDB(t)
	start := time.Now().Add(-time.Hour)

	timer, err := db.CreateTimer(NewTimer{Color: model.ColorPeach, DurationSeconds: 1, SnoozeMinutes: 1, StartedAt: start})
	if err != nil {
		t.Fatalf("CreateTimer failed: %v", err)
	}
	if err := db.MarkComplete(timer.ID, start.Add(time.Second)); err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}

	if err := db.DeleteTimer(timer.ID, start.Add(time.Minute)); err != nil {
		t.Fatalf("DeleteTimer failed: %v", err)
	}
	if err := db.DeleteTimer(timer.ID, start.Add(2*time.Minute)); err != nil {
		t.Fatalf("second DeleteTimer should be a no-op, got %v", err)
	}

	timers, _ := db.GetTimers()
	if len(timers) != 0 {
		t.Errorf("expected no timers, got %d", len(timers))
	}

	n, err := db.CountCompletedSince(start.Add(-time.Minute))
	if err != nil {
		t.Fatalf("CountCompletedSince failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 completion in history, got %d", n)
	}

	events, _ := db.GetEvents(timer.ID)
	deleted := 0
	for _, e := range events {
		if e.Kind == model.EventDeleted {
			deleted++
		}
	}
	if deleted != 1 {
		t.Errorf("expected exactly one deleted event, got %d", deleted)
	}
}

func TestReadOnlyOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ro.db")
	if _, err := OpenWith(path, Options{ReadOnly: true}); !errors.Is(err, ErrNoDatabase) {
		t.Fatalf("expected ErrNoDatabase before anything was saved, got %v", err)
	}

	rw, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := rw.CreateTimer(NewTimer{Color: model.ColorCyan, DurationSeconds: 30, SnoozeMinutes: 1, StartedAt: time.Now()}); err != nil {
		t.Fatalf("CreateTimer failed: %v", err)
	}
	rw.Close()

	ro, err := OpenWith(path, Options{ReadOnly: true})
	if err != nil {
		t.Fatalf("read-only open failed: %v", err)
	}
	defer ro.Close()
	if !ro.ReadOnly() {
		t.Error("expected a read-only handle")
	}

	timers, err := ro.GetTimers()
	if err != nil {
		t.Fatalf("GetTimers failed: %v", err)
	}
	if len(timers) != 1 {
		t.Errorf("expected 1 timer, got %d", len(timers))
	}
	if _, err := ro.CreateTimer(NewTimer{Color: model.ColorCyan, DurationSeconds: 30, SnoozeMinutes: 1, StartedAt: time.Now()}); err == nil {
		t.Error("expected writes to fail on a read-only handle")
	}
}

// TestNestedQueriesNoDeadlock guards against querying events while still
// iterating timer rows: with SetMaxOpenConns(1) that would hang forever.
// Collect first, close rows, then query.
func TestNestedQueriesNoDeadlock(t *testing.T) {
	db := openTestDB(t)
	for i := 0; i < 5; i++ {
		if _, err := db.CreateTimer(NewTimer{Color: model.ColorPeach, DurationSeconds: 60, SnoozeMinutes: 5, StartedAt: time.Now()}); err != nil {
			t.Fatalf("CreateTimer failed: %v", err)
		}
	}

	done := make(chan bool, 1)
	go func() {
		timers, err := db.GetTimers()
		if err != nil {
			t.Errorf("GetTimers failed: %v", err)
			done <- false
			return
		}
		for _, tm := range timers {
			if _, err := db.GetEvents(tm.ID); err != nil {
				t.Errorf("GetEvents failed: %v", err)
				done <- false
				return
			}
		}
		done <- true
	}()

	select {
	case success := <-done:
		if !success {
			t.Fatal("Test failed during execution")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Test timed out - possible deadlock detected")
	}
}
