package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/ewasl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/ewasl-backend/internal/adapter/redisstore"
	"github.com/heartmarshall/ewasl-backend/internal/config"
)

const rateLimiterCleanup = 5 * time.Minute

// Run is the server entry point. It loads configuration, connects to
// PostgreSQL and Redis, serves HTTP and runs the scheduler until ctx is
// cancelled, then shuts down within the configured timeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.Log.Level),
		slog.Any("platforms", cfg.Platforms.Enabled()),
	)

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	rdb, err := redisstore.NewClient(ctx, cfg.Redis.URL)
	if err != nil {
		return err
	}
	defer rdb.Close()

	svc, err := newServices(cfg, logger, pool, rdb)
	if err != nil {
		return err
	}

	storage := newMediaStorage(cfg.Supabase, logger)
	if storage == nil {
		logger.Warn("supabase is not configured, media uploads are disabled")
	}

	handler, stopLimiter := newHandler(cfg, logger, svc, pool, rdb, storage)
	defer stopLimiter()

	sched, err := newScheduler(cfg.Scheduler, logger, svc)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})
	if sched != nil {
		g.Go(func() error { return sched.Run(gctx) })
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("application stopped")
	return nil
}
