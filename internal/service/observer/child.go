package observer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
)

// OnChildMutated resynchronizes the counters of parentKey after a row of a
// counted child table was inserted, updated or deleted.
func (s *Service) OnChildMutated(ctx context.Context, table domain.ChildTable, parentKey uuid.UUID, op domain.Operation) error {
	if !s.tx.InTx(ctx) {
		return domain.ErrNoTransaction
	}
	if !op.IsValid() {
		return domain.NewValidationError("operation", "invalid")
	}

	values, err := s.counters.Sync(ctx, table, parentKey)
	if err != nil {
		return fmt.Errorf("sync counters after %s on %s: %w", op, table, err)
	}

	s.log.DebugContext(ctx, "counters synchronized",
		slog.String("table", table.String()),
		slog.String("operation", op.String()),
		slog.String("parent_id", parentKey.String()),
		slog.Any("values", values),
	)
	return nil
}
