package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DESKTIMER_DATA_DIR", dir)

	cfg, err := Load(filepath.Join(dir, "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "desktimer.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "desktimer.log"), cfg.LogPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Equal(t, 10*time.Minute, cfg.DefaultDuration)
	assert.Equal(t, 5, cfg.DefaultSnoozeMinutes)
	assert.True(t, cfg.Notifications)
	assert.True(t, cfg.Bell)
	assert.False(t, cfg.Sound)
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := `
data_dir: ` + dir + `
log_level: debug
theme: dracula
notifications: false
tick_interval: 500ms
default_duration: 25m
default_snooze_minutes: 3
sound: true
volume: -1.5
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "dracula", cfg.Theme)
	assert.False(t, cfg.Notifications)
	assert.True(t, cfg.Bell)
	assert.Equal(t, 500*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 25*time.Minute, cfg.DefaultDuration)
	assert.Equal(t, 3, cfg.DefaultSnoozeMinutes)
	assert.True(t, cfg.Sound)
	assert.Equal(t, -1.5, cfg.Volume)
	assert.Equal(t, filepath.Join(dir, "desktimer.db"), cfg.DBPath)
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"level":  "log_level: loud\n",
		"snooze": "default_snooze_minutes: 90\n",
		"volume": "volume: 5\n",
		"yaml":   "theme: [unterminated\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
