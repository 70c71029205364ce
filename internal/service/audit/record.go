package audit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/campus-jobs/internal/domain"
	"github.com/heartmarshall/campus-jobs/pkg/ctxutil"
)

// RecordInput describes one mutation of a tracked entity.
// OldValue and NewValue are any JSON-encodable values (structs, maps, raw JSON).
type RecordInput struct {
	Table     domain.AuditedTable
	RecordID  string
	Operation domain.Operation
	OldValue  any
	NewValue  any
}

// Validate checks all fields and collects all errors.
func (i RecordInput) Validate() error {
	var errs []domain.FieldError

	if !i.Table.IsValid() {
		errs = append(errs, domain.FieldError{Field: "table", Message: fmt.Sprintf("%q is not audited", i.Table)})
	}
	if strings.TrimSpace(i.RecordID) == "" {
		errs = append(errs, domain.FieldError{Field: "record_id", Message: "required"})
	}
	if !i.Operation.IsValid() {
		errs = append(errs, domain.FieldError{Field: "operation", Message: "invalid"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Record appends one audit record for a mutation. It must run inside the
// mutation's transaction. With the strict policy a write failure is returned
// and aborts the mutation; with best_effort the write is isolated in a
// savepoint and a failure is logged and counted.
func (s *Service) Record(ctx context.Context, input RecordInput) (*domain.AuditRecord, error) {
	rec, err := buildRecord(ctx, input)
	if err != nil {
		return nil, err
	}

	if s.policy == domain.AuditPolicyBestEffort {
		var saved domain.AuditRecord
		err := s.tx.RunInSavepoint(ctx, func(ctx context.Context) error {
			var err error
			saved, err = s.audit.Append(ctx, rec)
			return err
		})
		if err != nil {
			s.metrics.AuditSkipped(rec.Table.String())
			s.log.WarnContext(ctx, "audit record skipped",
				slog.String("table", rec.Table.String()),
				slog.String("record_id", rec.RecordID),
				slog.String("operation", rec.Operation.String()),
				slog.String("error", err.Error()),
			)
			return nil, nil
		}
		s.metrics.AuditWritten(rec.Table.String(), rec.Operation.String())
		return &saved, nil
	}

	saved, err := s.audit.Append(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("append audit record %s/%s: %w", rec.Table, rec.RecordID, err)
	}
	s.metrics.AuditWritten(rec.Table.String(), rec.Operation.String())
	return &saved, nil
}

func buildRecord(ctx context.Context, input RecordInput) (domain.AuditRecord, error) {
	if err := input.Validate(); err != nil {
		return domain.AuditRecord{}, err
	}

	oldValues, err := Snapshot(input.OldValue)
	if err != nil {
		return domain.AuditRecord{}, domain.NewValidationError("old_value", err.Error())
	}
	newValues, err := Snapshot(input.NewValue)
	if err != nil {
		return domain.AuditRecord{}, domain.NewValidationError("new_value", err.Error())
	}

	rec := domain.AuditRecord{
		Table:         input.Table,
		RecordID:      strings.TrimSpace(input.RecordID),
		Operation:     input.Operation,
		ChangedFields: []string{},
	}

	switch input.Operation {
	case domain.OperationInsert:
		if newValues == nil {
			return domain.AuditRecord{}, domain.NewValidationError("new_value", "required for insert")
		}
		rec.NewValues = newValues
	case domain.OperationDelete:
		if oldValues == nil {
			return domain.AuditRecord{}, domain.NewValidationError("old_value", "required for delete")
		}
		rec.OldValues = oldValues
	case domain.OperationUpdate:
		if oldValues == nil || newValues == nil {
			return domain.AuditRecord{}, domain.NewValidationError("value", "old and new required for update")
		}
		rec.OldValues = oldValues
		rec.NewValues = newValues
		rec.ChangedFields = ChangedFields(oldValues, newValues)
	}

	if actor, ok := ctxutil.UserIDFromCtx(ctx); ok {
		rec.Actor = &actor
	}
	return rec, nil
}
