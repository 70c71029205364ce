package audit

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/campus-jobs/internal/domain"
	"github.com/heartmarshall/campus-jobs/internal/observability"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type auditRepo interface {
	Append(ctx context.Context, rec domain.AuditRecord) (domain.AuditRecord, error)
	ListByRecord(ctx context.Context, table domain.AuditedTable, recordID string) ([]domain.AuditRecord, error)
	ListRecent(ctx context.Context, f domain.AuditFilter) ([]domain.AuditRecord, error)
	Count(ctx context.Context, f domain.AuditFilter) (int64, error)
}

type txManager interface {
	RunInSavepoint(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service records audit trails of tracked entities.
type Service struct {
	audit   auditRepo
	tx      txManager
	policy  domain.AuditPolicy
	metrics *observability.Metrics
	log     *slog.Logger
}

// NewService creates a new audit Service. An invalid policy falls back to strict.
func NewService(
	log *slog.Logger,
	audit auditRepo,
	tx txManager,
	policy domain.AuditPolicy,
	metrics *observability.Metrics,
) *Service {
	if !policy.IsValid() {
		policy = domain.AuditPolicyStrict
	}
	return &Service{
		audit:   audit,
		tx:      tx,
		policy:  policy,
		metrics: metrics,
		log:     log.With("service", "audit"),
	}
}

// Policy returns the failure policy in effect.
func (s *Service) Policy() domain.AuditPolicy {
	return s.policy
}
