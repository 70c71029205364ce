package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/campus-jobs/internal/config"
	"github.com/heartmarshall/campus-jobs/internal/domain"
	"github.com/heartmarshall/campus-jobs/internal/transport/middleware"
	"github.com/heartmarshall/campus-jobs/internal/transport/rest"
	"github.com/heartmarshall/campus-jobs/internal/transport/ws"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, domain.Role, error)
}

type routerDeps struct {
	log       *slog.Logger
	cfg       *config.Config
	pool      pinger
	core      *core
	validator tokenValidator
	limiter   *middleware.RateLimiter
	gatherer  prometheus.Gatherer
}

func newConnectLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(5 * time.Minute)
}

// newRouter mounts every endpoint and wraps the mux in the middleware chain.
func newRouter(d routerDeps) http.Handler {
	healthHandler := rest.NewHealthHandler(d.pool, d.core.registry, BuildVersion())
	reportHandler := rest.NewReportHandler(d.core.propagation, d.log)
	aggregateHandler := rest.NewAggregateHandler(d.core.propagation, d.log)
	wsHandler := ws.NewHandler(d.log, d.core.propagation, d.cfg.Realtime, d.cfg.CORS)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{}))

	mux.Handle("GET /report", middleware.AdminOnly(http.HandlerFunc(reportHandler.Report)))
	mux.Handle("GET /admin/aggregates/{scope}/{key}", middleware.AdminOnly(http.HandlerFunc(aggregateHandler.Get)))
	mux.Handle("POST /admin/aggregates/{scope}/refresh", middleware.AdminOnly(http.HandlerFunc(aggregateHandler.Refresh)))

	mux.Handle("GET /ws", middleware.Chain(
		d.limiter.Limit(d.cfg.Realtime.ConnectRatePerMinute),
		middleware.RequireAuth,
	)(wsHandler))

	return middleware.Chain(
		middleware.Recovery(d.log),
		middleware.RequestID(),
		middleware.CORS(d.cfg.CORS),
		middleware.Auth(d.validator),
		middleware.Logger(d.log),
	)(mux)
}
