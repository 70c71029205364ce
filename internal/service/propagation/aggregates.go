package propagation

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
)

// GetAggregate returns the last materialized snapshot of one entity.
func (s *Service) GetAggregate(ctx context.Context, scope domain.AggregateScope, key uuid.UUID) (domain.AggregateSnapshot, error) {
	return s.aggregates.Get(ctx, scope, key)
}

// RefreshAggregate recomputes one scope, or one entity of it when key is set.
// Concurrent identical requests share one run.
func (s *Service) RefreshAggregate(ctx context.Context, scope domain.AggregateScope, key *uuid.UUID) (domain.RefreshResult, error) {
	return s.aggregates.Refresh(ctx, scope, key)
}
