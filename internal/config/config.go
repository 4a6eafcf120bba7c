package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/reefdb/reef/pkg/span"
)

type Config struct {
	Server Server `toml:"server"`
	Engine Engine `toml:"engine"`
}

type Server struct {
	Address  string     `toml:"address"`
	LogLevel slog.Level `toml:"log_level"`
}

type Engine struct {
	// ReconcileInterval is the cadence at which the expiry reconciler runs
	// when no commands are arriving.
	ReconcileInterval span.Duration `toml:"reconcile_interval"`
	// MaxPendingExpiries caps the expiry schedule. Writes past the cap still
	// succeed; their keys are only evicted passively. Zero means no cap.
	MaxPendingExpiries int `toml:"max_pending_expiries"`
}

// Default is the configuration used when no config file is given.
func Default() Config {
	return Config{
		Server: Server{
			Address:  "0.0.0.0:6379",
			LogLevel: slog.LevelInfo,
		},
		Engine: Engine{
			ReconcileInterval: span.New(100 * time.Millisecond),
		},
	}
}

func New(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading file: %w", err)
	}
	if err = toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal: %w", err)
	}
	if cfg.Engine.ReconcileInterval.Duration() <= 0 {
		cfg.Engine.ReconcileInterval = span.New(100 * time.Millisecond)
	}
	return cfg, nil
}
