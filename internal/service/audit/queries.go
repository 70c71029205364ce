package audit

import (
	"context"
	"fmt"

	"github.com/heartmarshall/campus-jobs/internal/domain"
)

// History returns every record of one entity in mutation order.
func (s *Service) History(ctx context.Context, table domain.AuditedTable, recordID string) ([]domain.AuditRecord, error) {
	if !table.IsValid() {
		return nil, domain.NewValidationError("table", fmt.Sprintf("%q is not audited", table))
	}
	if recordID == "" {
		return nil, domain.NewValidationError("record_id", "required")
	}

	records, err := s.audit.ListByRecord(ctx, table, recordID)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	return records, nil
}

// Recent returns the newest records matching the filter.
func (s *Service) Recent(ctx context.Context, f domain.AuditFilter) ([]domain.AuditRecord, error) {
	if f.Limit < 0 || f.Offset < 0 {
		return nil, domain.NewValidationError("limit", "must be non-negative")
	}
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}

	records, err := s.audit.ListRecent(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list recent audit records: %w", err)
	}
	return records, nil
}

// Volume returns the total number of audit records.
func (s *Service) Volume(ctx context.Context) (int64, error) {
	n, err := s.audit.Count(ctx, domain.AuditFilter{})
	if err != nil {
		return 0, fmt.Errorf("count audit records: %w", err)
	}
	return n, nil
}
