// Package alarm rings completed timers and keeps track of which are ringing.
package alarm

import (
	"io"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Notifier is the desktop notification capability the alarm uses
type Notifier interface {
	SendTimerComplete(name string) error
}

// Sound plays a looping alarm per ringing timer
type Sound interface {
	Play(id string)
	Stop(id string)
}

// Alarm rings timers once per completion and remembers them until stopped
type Alarm struct {
	mu      sync.Mutex
	ringing map[string]string

	notifier Notifier
	bell     io.Writer
	sound    Sound
	log      *zap.SugaredLogger
}

// New creates an alarm. bell receives a BEL character per ring and may be
// nil; notifier may be nil as well.
func New(notifier Notifier, bell io.Writer, log *zap.SugaredLogger) *Alarm {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Alarm{
		ringing:  make(map[string]string),
		notifier: notifier,
		bell:     bell,
		log:      log,
	}
}

// SetSound attaches an audible alarm. Call before the first Ring.
func (a *Alarm) SetSound(s Sound) {
	a.sound = s
}

// Ring starts ringing timer id. Ringing an already ringing timer does nothing.
func (a *Alarm) Ring(id, name string) {
	a.mu.Lock()
	if _, ok := a.ringing[id]; ok {
		a.mu.Unlock()
		return
	}
	a.ringing[id] = name
	a.mu.Unlock()

	if a.bell != nil {
		if _, err := io.WriteString(a.bell, "\a"); err != nil {
			a.log.Warnw("bell failed", "timer_id", id, "error", err)
		}
	}
	if a.sound != nil {
		a.sound.Play(id)
	}
	if a.notifier != nil {
		if err := a.notifier.SendTimerComplete(name); err != nil {
			a.log.Warnw("notification failed", "timer_id", id, "error", err)
		}
	}
	a.log.Infow("alarm ringing", "timer_id", id, "name", name)
}

// Stop silences timer id. Stopping a silent timer does nothing.
func (a *Alarm) Stop(id string) {
	a.mu.Lock()
	_, ok := a.ringing[id]
	delete(a.ringing, id)
	a.mu.Unlock()
	if !ok {
		return
	}

	if a.sound != nil {
		a.sound.Stop(id)
	}
	a.log.Debugw("alarm stopped", "timer_id", id)
}

// Ringing reports whether timer id is ringing
func (a *Alarm) Ringing(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.ringing[id]
	return ok
}

// Active returns the ids of all ringing timers, sorted
func (a *Alarm) Active() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	ids := make([]string, 0, len(a.ringing))
	for id := range a.ringing {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
