package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dori/desktimer/internal/alarm"
	"github.com/dori/desktimer/internal/config"
	"github.com/dori/desktimer/internal/db"
	"github.com/dori/desktimer/internal/driver"
	"github.com/dori/desktimer/internal/logging"
	"github.com/dori/desktimer/internal/model"
	"github.com/dori/desktimer/internal/notify"
	"github.com/dori/desktimer/internal/registry"
	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

// ErrAlreadyRunning is returned when another instance holds the lock
var ErrAlreadyRunning = errors.New("another instance of desktimer is already running")

// App holds the application state and dependencies
type App struct {
	Config   *config.Config
	DB       *db.DB
	Registry *registry.Registry
	Alarm    *alarm.Alarm
	Notifier *notify.Notifier
	Driver   *driver.Driver
	Log      *zap.SugaredLogger

	clock    driver.Clock
	lockFile *flock.Flock

	// opMu serializes start, snooze, delete and completion handling so a
	// deleted timer can never start ringing
	opMu sync.Mutex

	mu     sync.RWMutex
	timers map[string]model.Timer
}

// Options tweak how New wires the application
type Options struct {
	// Lock takes the single-instance lock
	Lock bool
	// Bell receives the terminal bell; nil disables it
	Bell io.Writer
	// Clock defaults to driver.SystemClock
	Clock driver.Clock
	// Logger overrides the file logger built from the config
	Logger *zap.SugaredLogger
	// Notifier overrides the notify-send notifier
	Notifier *notify.Notifier
	// Sound overrides the speaker opened when the config enables sound
	Sound alarm.Sound
}

// TimerView is one timer as the UI renders it
type TimerView struct {
	Timer   model.Timer
	Display model.DisplayState
	Ringing bool
}

// New creates a new application instance and restores persisted timers
func New(cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	log := opts.Logger
	if log == nil {
		var err error
		log, err = logging.New(cfg.LogPath, cfg.LogLevel)
		if err != nil {
			return nil, err
		}
	}

	clock := opts.Clock
	if clock == nil {
		clock = driver.SystemClock
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewNotifier()
	}
	notifier.SetEnabled(cfg.Notifications)

	bell := opts.Bell
	if !cfg.Bell {
		bell = nil
	}

	a := &App{
		Config:   cfg,
		Registry: registry.New(),
		Notifier: notifier,
		Log:      log,
		clock:    clock,
		timers:   make(map[string]model.Timer),
	}
	a.Alarm = alarm.New(notifier, bell, log.Named("alarm"))
	if opts.Sound != nil {
		a.Alarm.SetSound(opts.Sound)
	} else if cfg.Sound {
		if spk, err := alarm.NewSpeaker(cfg.Volume); err != nil {
			log.Warnw("sound disabled", "error", err)
		} else {
			a.Alarm.SetSound(spk)
		}
	}
	a.Driver = driver.New(a.Registry, clock, log.Named("driver"))
	a.Driver.Interval = cfg.TickInterval
	a.Driver.MinInterval = cfg.TickInterval
	a.Registry.OnComplete(a.handleCompletion)

	if opts.Lock {
		if err := a.acquireLock(); err != nil {
			return nil, err
		}
	}

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		a.releaseLock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.DB = database

	if err := a.Restore(); err != nil {
		a.Close()
		return nil, err
	}

	log.Infow("started", "data_dir", cfg.DataDir, "timers", a.Registry.Len())
	return a, nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.Config.DataDir, "desktimer.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return ErrAlreadyRunning
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()
	_ = a.Log.Sync()

	return errors.Join(errs...)
}

// Now returns the application clock's current time
func (a *App) Now() time.Time {
	return a.clock.Now()
}
