package propagation

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
)

// OnChildMutated reports an insert or delete of a counted child row. It must
// be called inside the mutation's transaction; an error aborts it.
func (s *Service) OnChildMutated(ctx context.Context, table domain.ChildTable, parentKey uuid.UUID, op domain.Operation) error {
	return s.observer.OnChildMutated(ctx, table, parentKey, op)
}

// OnEntityMutated reports a mutation of an audited entity. It must be called
// inside the mutation's transaction.
func (s *Service) OnEntityMutated(ctx context.Context, table domain.AuditedTable, recordID string, op domain.Operation, oldValue, newValue any) error {
	return s.observer.OnEntityMutated(ctx, table, recordID, op, oldValue, newValue)
}
