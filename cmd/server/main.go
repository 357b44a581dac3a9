package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Simplici0/costquote/internal/config"
	"github.com/Simplici0/costquote/internal/db"
	"github.com/Simplici0/costquote/internal/logger"
	"github.com/Simplici0/costquote/internal/migrations"
	"github.com/Simplici0/costquote/internal/seed"
	"github.com/Simplici0/costquote/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		logger.Error(context.Background(), "server stopped", logger.ErrorF(err))
		_ = logger.Sync()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogJSON); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DBDriver, cfg.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if cfg.RunMigrations {
		if err := migrations.Up(ctx, database, cfg.DBDriver); err != nil {
			return fmt.Errorf("run database migrations: %w", err)
		}
	}

	stats, err := seed.Run(ctx, database, seed.Config{
		Driver:   cfg.DBDriver,
		Currency: cfg.DefaultCurrency,
		Tax:      cfg.DefaultTax(),
	})
	if err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}
	logger.Info(ctx, "seed complete",
		logger.Int("inserts", stats.Inserts),
		logger.Int("updates", stats.Updates))

	srv := newServer(store.New(database, cfg.DBDriver))
	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info(gctx, "listening",
			logger.String("addr", httpSrv.Addr),
			logger.String("env", cfg.AppEnv),
			logger.String("driver", cfg.DBDriver))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info(shutdownCtx, "shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
