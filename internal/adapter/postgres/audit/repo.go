// Package audit implements the append-only audit log repository using PostgreSQL.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/campus-jobs/internal/adapter/postgres"
	"github.com/heartmarshall/campus-jobs/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	defaultLimit = 50
	maxLimit     = 500
)

var columns = []string{
	"id", "table_name", "record_id", "operation", "old_values", "new_values",
	"changed_fields", "actor", "created_at",
}

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Append inserts one audit record and returns it with the assigned sequence
// and timestamp. Records are never updated or deleted.
func (r *Repo) Append(ctx context.Context, rec domain.AuditRecord) (domain.AuditRecord, error) {
	oldJSON, err := marshalSnapshot(rec.OldValues)
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_log marshal old_values: %w", err)
	}
	newJSON, err := marshalSnapshot(rec.NewValues)
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_log marshal new_values: %w", err)
	}

	changed := rec.ChangedFields
	if changed == nil {
		changed = []string{}
	}

	query, args, err := psql.Insert("audit_log").
		Columns("table_name", "record_id", "operation", "old_values", "new_values", "changed_fields", "actor").
		Values(string(rec.Table), rec.RecordID, string(rec.Operation), oldJSON, newJSON, changed, rec.Actor).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("build audit_log insert: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	if err := q.QueryRow(ctx, query, args...).Scan(&rec.Seq, &rec.CreatedAt); err != nil {
		return domain.AuditRecord{}, postgres.MapError(err, "audit_log", rec.RecordID)
	}

	rec.ChangedFields = changed
	return rec, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByRecord returns the history of one record in mutation order
// (created_at, then insertion sequence).
func (r *Repo) ListByRecord(ctx context.Context, table domain.AuditedTable, recordID string) ([]domain.AuditRecord, error) {
	query, args, err := psql.Select(columns...).
		From("audit_log").
		Where(sq.Eq{"table_name": string(table), "record_id": recordID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit_log select: %w", err)
	}

	return r.query(ctx, query, args...)
}

// ListRecent returns the newest records matching the filter.
func (r *Repo) ListRecent(ctx context.Context, f domain.AuditFilter) ([]domain.AuditRecord, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	b := applyFilter(psql.Select(columns...).From("audit_log"), f).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit_log select: %w", err)
	}

	return r.query(ctx, query, args...)
}

// Count returns the number of records matching the filter (paging ignored).
func (r *Repo) Count(ctx context.Context, f domain.AuditFilter) (int64, error) {
	query, args, err := applyFilter(psql.Select("COUNT(*)").From("audit_log"), f).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build audit_log count: %w", err)
	}

	var n int64
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count audit_log: %w", err)
	}
	return n, nil
}

func applyFilter(b sq.SelectBuilder, f domain.AuditFilter) sq.SelectBuilder {
	if f.Table != "" {
		b = b.Where(sq.Eq{"table_name": string(f.Table)})
	}
	if f.Operation != "" {
		b = b.Where(sq.Eq{"operation": string(f.Operation)})
	}
	if f.Actor != nil {
		b = b.Where(sq.Eq{"actor": *f.Actor})
	}
	return b
}

func (r *Repo) query(ctx context.Context, query string, args ...any) ([]domain.AuditRecord, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit_log: %w", err)
	}

	records, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("scan audit_log: %w", err)
	}
	return records, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanRecord(row pgx.CollectableRow) (domain.AuditRecord, error) {
	var (
		rec              domain.AuditRecord
		table, operation string
		oldJSON, newJSON []byte
		actor            *uuid.UUID
	)
	if err := row.Scan(&rec.Seq, &table, &rec.RecordID, &operation, &oldJSON, &newJSON,
		&rec.ChangedFields, &actor, &rec.CreatedAt); err != nil {
		return domain.AuditRecord{}, err
	}

	rec.Table = domain.AuditedTable(table)
	rec.Operation = domain.Operation(operation)
	rec.Actor = actor

	var err error
	if rec.OldValues, err = unmarshalSnapshot(oldJSON); err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_log %d old_values: %w", rec.Seq, err)
	}
	if rec.NewValues, err = unmarshalSnapshot(newJSON); err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_log %d new_values: %w", rec.Seq, err)
	}
	if rec.ChangedFields == nil {
		rec.ChangedFields = []string{}
	}

	return rec, nil
}

// marshalSnapshot encodes a snapshot as JSONB; nil stays SQL NULL.
func marshalSnapshot(v map[string]any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func unmarshalSnapshot(b []byte) (map[string]any, error) {
	if len(b) == 0 {
		return nil, nil
	}
	m := make(map[string]any)
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
