// Command refresh-aggregates rebuilds every aggregate projection once and
// exits. Useful after a bulk import or when the in-process scheduler is
// disabled.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/campus-jobs/internal/adapter/postgres"
	aggregaterepo "github.com/heartmarshall/campus-jobs/internal/adapter/postgres/aggregate"
	"github.com/heartmarshall/campus-jobs/internal/app"
	"github.com/heartmarshall/campus-jobs/internal/config"
	"github.com/heartmarshall/campus-jobs/internal/service/aggregate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := aggregate.NewService(logger, aggregaterepo.New(pool), postgres.NewTxManager(pool), nil, cfg.Aggregates)

	start := time.Now()
	if err := svc.RefreshAll(ctx); err != nil {
		logger.Error("aggregate refresh failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, st := range svc.Status() {
		logger.Info("scope refreshed",
			slog.String("scope", st.Scope.String()),
			slog.Duration("duration", st.LastDuration),
		)
	}
	logger.Info("aggregate refresh completed", slog.Duration("elapsed", time.Since(start)))
}
