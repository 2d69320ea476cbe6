package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, time.Second, cfg.TickPeriod)
	assert.Equal(t, "Time's Up!", cfg.Labels.TimeUp)
	assert.Equal(t, "Stop", cfg.Labels.Dismiss)
	assert.Equal(t, "Delete", cfg.Labels.Delete)
	assert.False(t, cfg.Web.Auth.Enabled())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multitimer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
tick_period: 500ms
event_log: /tmp/events.tlog
labels:
  time_up: "Done!"
web:
  listen: "127.0.0.1:9000"
  max_connections: 8
history:
  driver: sqlite3
  dsn: ":memory:"
cue:
  command: ["paplay", "/usr/share/sounds/complete.oga"]
  workers: 4
discovery:
  enabled: true
  instance: kitchen
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 500*time.Millisecond, cfg.TickPeriod)
	assert.Equal(t, "/tmp/events.tlog", cfg.EventLog)
	assert.Equal(t, "Done!", cfg.Labels.TimeUp)
	assert.Equal(t, "Stop", cfg.Labels.Dismiss, "unset labels keep defaults")
	assert.Equal(t, "127.0.0.1:9000", cfg.Web.Listen)
	assert.Equal(t, 8, cfg.Web.MaxConnections)
	assert.Equal(t, DriverSQLite, cfg.History.Driver)
	assert.Equal(t, []string{"paplay", "/usr/share/sounds/complete.oga"}, cfg.Cue.Command)
	assert.True(t, cfg.Cue.Bell)
	assert.Equal(t, 4, cfg.Cue.Workers)
	assert.True(t, cfg.Discovery.Enabled)
	assert.Equal(t, "kitchen", cfg.Discovery.Instance)

	labels := cfg.RegistryLabels()
	assert.Equal(t, "Done!", labels.TimeUp)
	assert.Equal(t, "Stop", labels.Dismiss)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero tick", "tick_period: 0s"},
		{"bad level", "log_level: chatty"},
		{"bad driver", "history: {driver: mysql, dsn: x}"},
		{"driver without dsn", "history: {driver: postgres}"},
		{"negative connections", "web: {max_connections: -1}"},
		{"auth without hash", "web: {auth: {user: alice}}"},
		{"no workers", "cue: {workers: 0}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("web: [unterminated"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)

	cfg, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
