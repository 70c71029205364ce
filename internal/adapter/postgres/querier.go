package postgres

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the common interface implemented by both *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// DB is a Querier that can open transactions. *pgxpool.Pool satisfies it.
type DB interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// unexported context key type for storing tx
type txCtxKey struct{}

// txState is the unit of work carried in the context: the open transaction
// (or savepoint) and the callbacks queued to run once it commits.
type txState struct {
	tx pgx.Tx

	mu          sync.Mutex
	afterCommit []func(ctx context.Context)
}

func (s *txState) addHook(fn func(ctx context.Context)) {
	s.mu.Lock()
	s.afterCommit = append(s.afterCommit, fn)
	s.mu.Unlock()
}

func (s *txState) hooks() []func(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.afterCommit
}

// withTx puts a transaction into the context.
func withTx(ctx context.Context, st *txState) context.Context {
	return context.WithValue(ctx, txCtxKey{}, st)
}

func txFromCtx(ctx context.Context) (*txState, bool) {
	st, ok := ctx.Value(txCtxKey{}).(*txState)
	return st, ok
}

// QuerierFromCtx returns the transaction from context if present,
// otherwise returns the pool.
func QuerierFromCtx(ctx context.Context, db Querier) Querier {
	if st, ok := txFromCtx(ctx); ok {
		return st.tx
	}
	return db
}

// HasTx reports whether ctx carries an open transaction.
func HasTx(ctx context.Context) bool {
	_, ok := txFromCtx(ctx)
	return ok
}

// AfterCommit schedules fn to run after the transaction in ctx commits.
// Callbacks of a rolled back transaction are discarded. Without a transaction
// fn runs immediately.
func AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	st, ok := txFromCtx(ctx)
	if !ok {
		fn(ctx)
		return
	}
	st.addHook(fn)
}
