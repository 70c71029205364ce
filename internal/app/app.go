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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/heartmarshall/campus-jobs/internal/adapter/postgres"
	"github.com/heartmarshall/campus-jobs/internal/auth"
	"github.com/heartmarshall/campus-jobs/internal/config"
	"github.com/heartmarshall/campus-jobs/internal/observability"
	"github.com/heartmarshall/campus-jobs/migrations"
)

// Run is the server entry point. It loads configuration, migrates the
// schema when asked to, wires the propagation core and serves HTTP until ctx
// is cancelled, then shuts down in reverse order.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.AutoMigrate {
		results, err := postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied", slog.Int("count", len(results)))
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewMetrics(promReg)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	wired := buildCore(logger, pool, metrics, cfg)
	defer wired.registry.Close()

	if err := wired.aggregates.Start(ctx); err != nil {
		return err
	}
	defer wired.aggregates.Stop()

	limiter := newConnectLimiter()
	defer limiter.Stop()

	handler := newRouter(routerDeps{
		log:       logger,
		cfg:       cfg,
		pool:      pool,
		core:      wired,
		validator: auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer),
		limiter:   limiter,
		gatherer:  promReg,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown does not wait for hijacked websocket connections; closing the
	// registry ends them.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", slog.String("error", err.Error()))
	}
	wired.registry.Close()

	logger.Info("stopped", slog.Duration("uptime", time.Since(wired.startedAt)))
	return nil
}
