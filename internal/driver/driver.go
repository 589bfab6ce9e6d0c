// Package driver runs the periodic evaluation pass over the timer registry.
package driver

import (
	"context"
	"time"

	"github.com/dori/desktimer/internal/registry"
	"go.uber.org/zap"
)

// DefaultInterval is how often a pass runs
const DefaultInterval = time.Second

// Tickable is the subset of the registry the driver needs
type Tickable interface {
	Tick(now time.Time) []registry.Completion
}

// Driver evaluates all timers roughly once per interval
type Driver struct {
	reg   Tickable
	clock Clock
	log   *zap.SugaredLogger

	// Interval between passes in Run
	Interval time.Duration
	// MinInterval drops Step calls arriving sooner than this after the last
	// pass. Zero disables throttling.
	MinInterval time.Duration

	last time.Time
}

// New creates a driver over reg. A nil clock uses SystemClock and a nil
// logger discards output.
func New(reg Tickable, clock Clock, log *zap.SugaredLogger) *Driver {
	if clock == nil {
		clock = SystemClock
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Driver{
		reg:         reg,
		clock:       clock,
		log:         log,
		Interval:    DefaultInterval,
		MinInterval: DefaultInterval,
	}
}

// Step runs one pass at now and returns its completions. ran is false when
// the pass was skipped by throttling.
func (d *Driver) Step(now time.Time) (completions []registry.Completion, ran bool) {
	if d.MinInterval > 0 && !d.last.IsZero() && now.Sub(d.last) < d.MinInterval {
		return nil, false
	}
	return d.pass(now), true
}

func (d *Driver) pass(now time.Time) []registry.Completion {
	d.last = now
	completions := d.reg.Tick(now)
	for _, c := range completions {
		d.log.Infow("timer completed", "timer_id", c.ID, "at", c.At)
	}
	return completions
}

// Run runs a pass on every tick of the clock until ctx is done. Ticker
// deliveries are not throttled. Completions reach the registry's handlers.
func (d *Driver) Run(ctx context.Context) error {
	t := d.clock.NewTicker(d.Interval)
	defer t.Stop()

	d.log.Debugw("driver started", "interval", d.Interval)
	d.pass(d.clock.Now())

	for {
		select {
		case <-ctx.Done():
			d.log.Debugw("driver stopped")
			return ctx.Err()
		case now := <-t.C():
			d.pass(now)
		}
	}
}
