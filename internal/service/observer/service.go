// Package observer is the write-path entry point of the propagation core.
// The business layer calls it inside the transaction of every mutation of a
// counted or audited table; it fans the mutation out to the counter
// synchronizer and the audit recorder in that same transaction.
package observer

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
	"github.com/heartmarshall/campus-jobs/internal/service/audit"
)

type counterSync interface {
	Sync(ctx context.Context, child domain.ChildTable, parentID uuid.UUID) (map[string]int64, error)
}

type auditRecorder interface {
	Record(ctx context.Context, input audit.RecordInput) (*domain.AuditRecord, error)
}

type txManager interface {
	InTx(ctx context.Context) bool
}

// Service observes mutations.
type Service struct {
	counters counterSync
	audit    auditRecorder
	tx       txManager
	log      *slog.Logger
}

// NewService creates a new observer Service.
func NewService(
	log *slog.Logger,
	counters counterSync,
	audit auditRecorder,
	tx txManager,
) *Service {
	return &Service{
		counters: counters,
		audit:    audit,
		tx:       tx,
		log:      log.With("service", "observer"),
	}
}
