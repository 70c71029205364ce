package app

import (
	"log/slog"
	"time"

	"github.com/heartmarshall/campus-jobs/internal/adapter/postgres"
	aggregaterepo "github.com/heartmarshall/campus-jobs/internal/adapter/postgres/aggregate"
	auditrepo "github.com/heartmarshall/campus-jobs/internal/adapter/postgres/audit"
	counterrepo "github.com/heartmarshall/campus-jobs/internal/adapter/postgres/counter"
	notificationrepo "github.com/heartmarshall/campus-jobs/internal/adapter/postgres/notification"
	"github.com/heartmarshall/campus-jobs/internal/config"
	"github.com/heartmarshall/campus-jobs/internal/observability"
	"github.com/heartmarshall/campus-jobs/internal/realtime"
	"github.com/heartmarshall/campus-jobs/internal/service/aggregate"
	"github.com/heartmarshall/campus-jobs/internal/service/audit"
	"github.com/heartmarshall/campus-jobs/internal/service/counter"
	"github.com/heartmarshall/campus-jobs/internal/service/notification"
	"github.com/heartmarshall/campus-jobs/internal/service/observer"
	"github.com/heartmarshall/campus-jobs/internal/service/propagation"
)

// core is the wired propagation core.
type core struct {
	registry    *realtime.Registry
	bus         *realtime.Bus
	aggregates  *aggregate.Service
	propagation *propagation.Service
	startedAt   time.Time
}

// buildCore wires repositories, services and the realtime broker in
// dependency order.
func buildCore(logger *slog.Logger, db postgres.DB, metrics *observability.Metrics, cfg *config.Config) *core {
	txm := postgres.NewTxManager(db)

	// Repositories.
	auditRepo := auditrepo.New(db)
	counterRepo := counterrepo.New(db)
	notificationRepo := notificationrepo.New(db)
	aggregateRepo := aggregaterepo.New(db)

	// Realtime.
	registry := realtime.NewRegistry(logger, realtime.OptionsFromConfig(cfg.Realtime), metrics)
	bus := realtime.NewBus(logger, registry, metrics)

	// Services.
	auditService := audit.NewService(logger, auditRepo, txm, cfg.Audit.AuditPolicy(), metrics)
	counterService := counter.NewService(logger, counterRepo, metrics)
	observerService := observer.NewService(logger, counterService, auditService, txm)
	aggregateService := aggregate.NewService(logger, aggregateRepo, txm, metrics, cfg.Aggregates)
	notificationService := notification.NewService(logger, notificationRepo, txm, bus, metrics, cfg.Notifications)

	propagationService := propagation.NewService(logger, propagation.Deps{
		Observer:      observerService,
		Aggregates:    aggregateService,
		Bus:           bus,
		Sessions:      registry,
		Notifications: notificationService,
		Audit:         auditService,
	})

	return &core{
		registry:    registry,
		bus:         bus,
		aggregates:  aggregateService,
		propagation: propagationService,
		startedAt:   time.Now(),
	}
}
