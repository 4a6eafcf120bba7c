package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestConfig_New(t *testing.T) {
	a := assert.New(t)

	path := writeConfig(t, `
[server]
address = "127.0.0.1:7700"
log_level = "DEBUG"

[engine]
reconcile_interval = "250ms"
max_pending_expiries = 1024
`)
	cfg, err := New(path)
	require.NoError(t, err)

	a.Equal("127.0.0.1:7700", cfg.Server.Address)
	a.Equal(slog.LevelDebug, cfg.Server.LogLevel)
	a.Equal(250*time.Millisecond, cfg.Engine.ReconcileInterval.Duration())
	a.Equal(1024, cfg.Engine.MaxPendingExpiries)
}

func TestConfig_DefaultsFillGaps(t *testing.T) {
	a := assert.New(t)

	path := writeConfig(t, `
[server]
address = ":6380"
`)
	cfg, err := New(path)
	require.NoError(t, err)

	a.Equal(":6380", cfg.Server.Address)
	a.Equal(100*time.Millisecond, cfg.Engine.ReconcileInterval.Duration())
	a.Zero(cfg.Engine.MaxPendingExpiries)
}

func TestConfig_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestConfig_BadDuration(t *testing.T) {
	path := writeConfig(t, `
[engine]
reconcile_interval = "soon"
`)
	_, err := New(path)
	assert.Error(t, err)
}
