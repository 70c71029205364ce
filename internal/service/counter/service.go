// Package counter keeps denormalized parent counters equal to the number of
// child rows. Every sync is a full recount scoped to one parent key.
package counter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
	"github.com/heartmarshall/campus-jobs/internal/observability"
)

type counterRepo interface {
	Recount(ctx context.Context, b domain.CounterBinding, parentID uuid.UUID) ([]int64, bool, error)
}

// Service synchronizes parent counters.
type Service struct {
	counters counterRepo
	metrics  *observability.Metrics
	log      *slog.Logger
}

// NewService creates a new counter Service.
func NewService(log *slog.Logger, counters counterRepo, metrics *observability.Metrics) *Service {
	return &Service{
		counters: counters,
		metrics:  metrics,
		log:      log.With("service", "counter"),
	}
}

// Sync recomputes every counter bound to child on the parent row parentID and
// returns the new values keyed by column. A parent that no longer exists is a
// no-op and yields a nil map. Errors are returned unchanged in kind so the
// caller's transaction aborts.
func (s *Service) Sync(ctx context.Context, child domain.ChildTable, parentID uuid.UUID) (map[string]int64, error) {
	b, ok := domain.CounterBindingFor(child)
	if !ok {
		return nil, domain.NewValidationError("table", fmt.Sprintf("%q has no counters", child))
	}
	if parentID == uuid.Nil {
		return nil, domain.NewValidationError("parent_key", "required")
	}

	values, found, err := s.counters.Recount(ctx, b, parentID)
	if err != nil {
		return nil, fmt.Errorf("recount %s on %s %s: %w", child, b.Parent, parentID, err)
	}
	if !found {
		s.log.DebugContext(ctx, "recount skipped, parent gone",
			slog.String("table", child.String()),
			slog.String("parent_id", parentID.String()),
		)
		return nil, nil
	}

	s.metrics.CounterRecounted(child.String())

	cols := b.Columns()
	out := make(map[string]int64, len(cols))
	for i, col := range cols {
		if i < len(values) {
			out[col] = values[i]
		}
	}
	return out, nil
}
