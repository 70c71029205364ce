// Package aggregate materializes per-company and per-job rollups into
// projection tables and serves reads of the last materialized snapshot.
package aggregate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/campus-jobs/internal/config"
	"github.com/heartmarshall/campus-jobs/internal/domain"
	"github.com/heartmarshall/campus-jobs/internal/observability"
)

const defaultRefreshTimeout = 2 * time.Minute

type aggregateRepo interface {
	RebuildAll(ctx context.Context, scope domain.AggregateScope, at time.Time) (int64, error)
	RefreshOne(ctx context.Context, scope domain.AggregateScope, key uuid.UUID, at time.Time) (domain.AggregateSnapshot, bool, error)
	Get(ctx context.Context, scope domain.AggregateScope, key uuid.UUID) (domain.AggregateSnapshot, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service refreshes and reads aggregate projections.
type Service struct {
	repo    aggregateRepo
	tx      txManager
	metrics *observability.Metrics
	log     *slog.Logger
	cfg     config.AggregatesConfig
	now     func() time.Time

	flights singleflight.Group

	mu     sync.Mutex
	status map[domain.AggregateScope]*domain.RefreshStatus

	cronMu sync.Mutex
	cron   *cron.Cron
}

// NewService creates a new aggregate Service.
func NewService(
	log *slog.Logger,
	repo aggregateRepo,
	tx txManager,
	metrics *observability.Metrics,
	cfg config.AggregatesConfig,
) *Service {
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = defaultRefreshTimeout
	}
	status := make(map[domain.AggregateScope]*domain.RefreshStatus, len(domain.AggregateScopes))
	for _, scope := range domain.AggregateScopes {
		status[scope] = &domain.RefreshStatus{Scope: scope}
	}
	return &Service{
		repo:    repo,
		tx:      tx,
		metrics: metrics,
		log:     log.With("service", "aggregate"),
		cfg:     cfg,
		now:     func() time.Time { return time.Now().UTC() },
		status:  status,
	}
}

// Status returns a copy of the refresh status of every scope.
func (s *Service) Status() []domain.RefreshStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.RefreshStatus, 0, len(domain.AggregateScopes))
	for _, scope := range domain.AggregateScopes {
		out = append(out, *s.status[scope])
	}
	return out
}

func (s *Service) recordRun(scope domain.AggregateScope, at time.Time, d time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.status[scope]
	st.Runs++
	st.LastDuration = d
	if err != nil {
		st.Failures++
		st.LastError = err.Error()
		failedAt := at
		st.LastFailedAt = &failedAt
		return
	}
	refreshed := at
	st.LastRefreshed = &refreshed
	st.LastError = ""
}
