package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8192, cfg.Arena.Capacity)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "agent.yaml", `
log:
  level: debug
  format: json
scheduler:
  tick_rate: 20ms
  max_ticks: 50
metrics:
  enabled: true
  addr: 127.0.0.1:9100
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 20*time.Millisecond, cfg.Scheduler.TickRate)
	assert.Equal(t, uint64(50), cfg.Scheduler.MaxTicks)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "127.0.0.1:9100", cfg.Metrics.Addr)
	assert.Equal(t, 8192, cfg.Arena.Capacity, "unset values keep their default")
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "agent.toml", `
[log]
level = "warn"

[scheduler]
tick_rate = "250ms"

[arena]
capacity = 4096
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 250*time.Millisecond, cfg.Scheduler.TickRate)
	assert.Equal(t, uint64(1000), cfg.Scheduler.MaxTicks)
	assert.Equal(t, 4096, cfg.Arena.Capacity)
}

func TestLoadEmptyYAMLGivesDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown yaml key", "a.yaml", "scheduler:\n  tickrate: 1s\n"},
		{"unknown toml key", "a.toml", "[scheduler]\ntickrate = \"1s\"\n"},
		{"bad level", "a.yaml", "log:\n  level: loud\n"},
		{"bad format", "a.toml", "[log]\nformat = \"xml\"\n"},
		{"negative tick rate", "a.yaml", "scheduler:\n  tick_rate: -1s\n"},
		{"tiny arena", "a.toml", "[arena]\ncapacity = 1\n"},
		{"metrics without addr", "a.yaml", "metrics:\n  enabled: true\n  addr: \"\"\n"},
		{"malformed", "a.yaml", "log: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := Load(writeFile(t, "agent.json", "{}"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
