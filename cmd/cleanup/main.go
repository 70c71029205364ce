// Command cleanup removes read notifications older than the configured
// retention period. It is intended to be invoked by an external cron job,
// not as an in-process goroutine.
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
	notificationrepo "github.com/heartmarshall/campus-jobs/internal/adapter/postgres/notification"
	"github.com/heartmarshall/campus-jobs/internal/app"
	"github.com/heartmarshall/campus-jobs/internal/config"
	"github.com/heartmarshall/campus-jobs/internal/service/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// No bus: cleanup only touches already-read rows and pushes nothing.
	svc := notification.NewService(logger, notificationrepo.New(pool), postgres.NewTxManager(pool), nil, nil, cfg.Notifications)

	retention := cfg.Notifications.Retention()
	deleted, err := svc.Cleanup(ctx, retention)
	if err != nil {
		logger.Error("notification cleanup failed",
			slog.String("error", err.Error()),
			slog.Duration("retention", retention),
		)
		os.Exit(1)
	}

	logger.Info("notification cleanup completed",
		slog.Int64("deleted", deleted),
		slog.Duration("retention", retention),
	)
}
