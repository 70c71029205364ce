package observer

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
	"github.com/heartmarshall/campus-jobs/internal/service/audit"
)

// OnEntityMutated appends the audit record of a tracked entity. When the
// table also feeds parent counters (jobs, applications) the parents named in
// the snapshots are resynchronized too, so callers need not report the same
// mutation through OnChildMutated.
func (s *Service) OnEntityMutated(
	ctx context.Context,
	table domain.AuditedTable,
	recordID string,
	op domain.Operation,
	oldValue, newValue any,
) error {
	if !s.tx.InTx(ctx) {
		return domain.ErrNoTransaction
	}

	rec, err := s.audit.Record(ctx, audit.RecordInput{
		Table:     table,
		RecordID:  recordID,
		Operation: op,
		OldValue:  oldValue,
		NewValue:  newValue,
	})
	if err != nil {
		return fmt.Errorf("record audit for %s %s: %w", table, recordID, err)
	}

	b, counted := domain.CounterBindingFor(domain.ChildTable(table))
	if !counted {
		return nil
	}

	parents, err := affectedParents(b, op, oldValue, newValue, rec)
	if err != nil {
		return err
	}
	for _, parentID := range parents {
		if _, err := s.counters.Sync(ctx, b.Child, parentID); err != nil {
			return fmt.Errorf("sync counters after %s on %s: %w", op, table, err)
		}
	}
	return nil
}

// affectedParents returns the parent keys whose counters the mutation can
// change. Inserts and deletes touch the row's parent. Updates touch nothing
// unless the parent key or a column read by a counter filter changed; a
// moved row touches both parents.
func affectedParents(b domain.CounterBinding, op domain.Operation, oldValue, newValue any, rec *domain.AuditRecord) ([]uuid.UUID, error) {
	var oldValues, newValues map[string]any
	if rec != nil {
		oldValues, newValues = rec.OldValues, rec.NewValues
	} else {
		// best_effort audit skipped the record; recompute the snapshots.
		var err error
		if oldValues, err = audit.Snapshot(oldValue); err != nil {
			return nil, domain.NewValidationError("old_value", err.Error())
		}
		if newValues, err = audit.Snapshot(newValue); err != nil {
			return nil, domain.NewValidationError("new_value", err.Error())
		}
	}

	switch op {
	case domain.OperationInsert:
		id, err := parentKey(b, newValues)
		if err != nil {
			return nil, err
		}
		return []uuid.UUID{id}, nil

	case domain.OperationDelete:
		id, err := parentKey(b, oldValues)
		if err != nil {
			return nil, err
		}
		return []uuid.UUID{id}, nil

	case domain.OperationUpdate:
		oldID, err := parentKey(b, oldValues)
		if err != nil {
			return nil, err
		}
		newID, err := parentKey(b, newValues)
		if err != nil {
			return nil, err
		}
		if oldID != newID {
			return []uuid.UUID{oldID, newID}, nil
		}
		changed := audit.ChangedFields(oldValues, newValues)
		for _, col := range b.DependsOn {
			if slices.Contains(changed, col) {
				return []uuid.UUID{newID}, nil
			}
		}
		return nil, nil
	}
	return nil, nil
}

func parentKey(b domain.CounterBinding, values map[string]any) (uuid.UUID, error) {
	raw, ok := values[b.ParentKey]
	if !ok {
		return uuid.Nil, domain.NewValidationError(b.ParentKey, "missing from snapshot")
	}
	s, ok := raw.(string)
	if !ok {
		return uuid.Nil, domain.NewValidationError(b.ParentKey, "must be a UUID string")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(b.ParentKey, "must be a UUID string")
	}
	return id, nil
}
