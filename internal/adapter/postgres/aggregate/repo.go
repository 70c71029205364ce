// Package aggregate owns the company_stats and job_stats projection tables.
// Rebuilds run inside the caller's transaction so readers keep seeing the old
// rows until commit.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/campus-jobs/internal/adapter/postgres"
	"github.com/heartmarshall/campus-jobs/internal/domain"
)

// Repo provides projection persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new aggregate repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// RebuildAll replaces every row of the scope's projection and returns the
// number of rows written. Must run inside a transaction.
func (r *Repo) RebuildAll(ctx context.Context, scope domain.AggregateScope, at time.Time) (int64, error) {
	var del, ins string
	switch scope {
	case domain.AggregateScopeJob:
		del, ins = deleteAllJobStats, insertAllJobStats
	case domain.AggregateScopeCompany:
		del, ins = deleteAllCompanyStats, insertAllCompanyStats
	default:
		return 0, domain.NewValidationError("scope", fmt.Sprintf("unknown scope %q", scope))
	}

	if !postgres.HasTx(ctx) {
		return 0, domain.ErrNoTransaction
	}
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, del); err != nil {
		return 0, fmt.Errorf("clear %s_stats: %w", scope, err)
	}
	tag, err := q.Exec(ctx, ins, at)
	if err != nil {
		return 0, fmt.Errorf("rebuild %s_stats: %w", scope, err)
	}
	return tag.RowsAffected(), nil
}

// RefreshOne recomputes one key. If the source entity no longer exists its
// projection row is removed and found is false.
func (r *Repo) RefreshOne(ctx context.Context, scope domain.AggregateScope, key uuid.UUID, at time.Time) (snap domain.AggregateSnapshot, found bool, err error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var upsert, del string
	switch scope {
	case domain.AggregateScopeJob:
		upsert, del = upsertJobStats, deleteJobStats
	case domain.AggregateScopeCompany:
		upsert, del = upsertCompanyStats, deleteCompanyStats
	default:
		return domain.AggregateSnapshot{}, false, domain.NewValidationError("scope", fmt.Sprintf("unknown scope %q", scope))
	}

	snap, err = scanSnapshot(scope, q.QueryRow(ctx, upsert, at, key))
	if errors.Is(err, pgx.ErrNoRows) {
		if _, err := q.Exec(ctx, del, key); err != nil {
			return domain.AggregateSnapshot{}, false, fmt.Errorf("delete %s_stats %s: %w", scope, key, err)
		}
		return domain.AggregateSnapshot{}, false, nil
	}
	if err != nil {
		return domain.AggregateSnapshot{}, false, postgres.MapError(err, string(scope)+"_stats", key)
	}
	return snap, true, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns the materialized row of one key, or ErrNotFound if none exists yet.
func (r *Repo) Get(ctx context.Context, scope domain.AggregateScope, key uuid.UUID) (domain.AggregateSnapshot, error) {
	var query string
	switch scope {
	case domain.AggregateScopeJob:
		query = selectJobStats
	case domain.AggregateScopeCompany:
		query = selectCompanyStats
	default:
		return domain.AggregateSnapshot{}, domain.NewValidationError("scope", fmt.Sprintf("unknown scope %q", scope))
	}

	snap, err := scanSnapshot(scope, postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, key))
	if err != nil {
		return domain.AggregateSnapshot{}, postgres.MapError(err, string(scope)+"_stats", key)
	}
	return snap, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanSnapshot(scope domain.AggregateScope, row pgx.Row) (domain.AggregateSnapshot, error) {
	switch scope {
	case domain.AggregateScopeJob:
		var s domain.JobStats
		if err := row.Scan(&s.JobID, &s.CompanyID, &s.TotalViews, &s.UniqueViewers, &s.TotalApplications,
			&s.PendingApplications, &s.AcceptedApplications, &s.LastViewAt, &s.LastApplicationAt, &s.LastUpdated); err != nil {
			return domain.AggregateSnapshot{}, err
		}
		return domain.AggregateSnapshot{Scope: scope, Key: s.JobID, Job: &s, LastRefreshed: s.LastUpdated}, nil
	default:
		var s domain.CompanyStats
		if err := row.Scan(&s.CompanyID, &s.JobsCount, &s.ActiveJobsCount, &s.TotalViews, &s.UniqueViewers,
			&s.TotalApplications, &s.FollowerCount, &s.LastViewAt, &s.LastApplicationAt, &s.LastUpdated); err != nil {
			return domain.AggregateSnapshot{}, err
		}
		return domain.AggregateSnapshot{Scope: scope, Key: s.CompanyID, Company: &s, LastRefreshed: s.LastUpdated}, nil
	}
}
