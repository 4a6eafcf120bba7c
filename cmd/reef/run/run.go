package run

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hossein1376/grape/slogger"

	"github.com/reefdb/reef/internal/config"
	"github.com/reefdb/reef/internal/engine"
	"github.com/reefdb/reef/internal/server"
)

func Run() error {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "config path")
	flag.Parse()

	cfg := config.Default()
	if cfgPath != "" {
		var err error
		cfg, err = config.New(cfgPath)
		if err != nil {
			return fmt.Errorf("new config: %w", err)
		}
	}
	slogger.NewDefault(slogger.WithLevel(cfg.Server.LogLevel))

	db := engine.New(engine.Options{
		MaxPendingExpiries: cfg.Engine.MaxPendingExpiries,
	})
	srv := server.New(db, cfg)
	if err := srv.Listen(); err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	errCh := make(chan error, 1)
	exitCh := make(chan os.Signal, 1)
	signal.Notify(exitCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		slog.Info("starting server", slog.String("address", srv.Addr().String()))
		if err := srv.Serve(); err != nil && !errors.Is(err, server.ErrClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("starting server: %w", err)
	case <-exitCh:
		slog.Info("received exit signal")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	}
}
