// Package counter recomputes denormalized parent counters from their child tables.
package counter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/campus-jobs/internal/adapter/postgres"
	"github.com/heartmarshall/campus-jobs/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo recounts parent counters inside the caller's transaction.
type Repo struct {
	db postgres.Querier
}

// New creates a new counter repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Recount locks the parent row and rewrites every counter of the binding as an
// exact aggregate over the current child rows. It returns the new values in
// binding order. found is false when the parent no longer exists.
//
// FOR NO KEY UPDATE serializes recounts of one parent without conflicting with
// the FOR KEY SHARE lock a child insert already holds on it through its
// foreign key; FOR UPDATE would deadlock two concurrent inserters.
//
// The lock and the recount are two statements: under READ COMMITTED the
// UPDATE's subqueries take a fresh snapshot after the lock is granted, so they
// see every child committed by the transaction that held the lock before.
func (r *Repo) Recount(ctx context.Context, b domain.CounterBinding, parentID uuid.UUID) (values []int64, found bool, err error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	lockQuery, lockArgs, err := lockStmt(b, parentID).ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build lock %s: %w", b.Parent, err)
	}

	var locked uuid.UUID
	err = q.QueryRow(ctx, lockQuery, lockArgs...).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, postgres.MapError(err, b.Parent, parentID)
	}

	query, args, err := recountStmt(b, parentID).ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build recount %s: %w", b.Parent, err)
	}

	values = make([]int64, len(b.Counters))
	dest := make([]any, len(values))
	for i := range values {
		dest[i] = &values[i]
	}

	err = q.QueryRow(ctx, query, args...).Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, postgres.MapError(err, b.Parent, parentID)
	}

	return values, true, nil
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

// Identifiers come from the closed binding table in domain, never from input.

func lockStmt(b domain.CounterBinding, parentID uuid.UUID) sq.SelectBuilder {
	return psql.Select("id").
		From(b.Parent).
		Where(sq.Eq{"id": parentID}).
		Suffix("FOR NO KEY UPDATE")
}

func recountStmt(b domain.CounterBinding, parentID uuid.UUID) sq.UpdateBuilder {
	upd := psql.Update(b.Parent)
	for _, c := range b.Counters {
		sub := fmt.Sprintf("(SELECT %s FROM %s WHERE %s = ?)", c.Expr, b.Child, b.ParentKey)
		upd = upd.Set(c.Column, sq.Expr(sub, parentID))
	}
	return upd.
		Where(sq.Eq{"id": parentID}).
		Suffix("RETURNING " + strings.Join(b.Columns(), ", "))
}
