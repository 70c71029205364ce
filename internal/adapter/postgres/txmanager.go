package postgres

import (
	"context"
	"fmt"

	"github.com/heartmarshall/campus-jobs/internal/domain"
)

// TxManager manages database transactions using the context pattern.
// RunInTx inside a RunInTx callback joins the outer transaction; use
// RunInSavepoint for a nested unit that may fail on its own.
type TxManager struct {
	db DB
}

// NewTxManager creates a new TxManager.
func NewTxManager(db DB) *TxManager {
	return &TxManager{db: db}
}

// RunInTx executes fn within a database transaction.
// Isolation level: Read Committed (PostgreSQL default).
// On success: commits, then runs the AfterCommit callbacks in registration order.
// On error from fn: rolls back and returns the error.
// On panic from fn: rolls back and re-panics.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if HasTx(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	st := &txState{tx: tx}

	if err := fn(withTx(ctx, st)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	for _, hook := range st.hooks() {
		hook(ctx)
	}

	return nil
}

// RunInSavepoint runs fn inside a savepoint of the transaction in ctx.
// An error from fn rolls back to the savepoint and is returned; the outer
// transaction stays usable. AfterCommit callbacks registered by fn survive
// only if the savepoint is released.
func (m *TxManager) RunInSavepoint(ctx context.Context, fn func(ctx context.Context) error) error {
	parent, ok := txFromCtx(ctx)
	if !ok {
		return domain.ErrNoTransaction
	}

	sp, err := parent.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin savepoint: %w", err)
	}

	st := &txState{tx: sp}

	if err := fn(withTx(ctx, st)); err != nil {
		if rbErr := sp.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback to savepoint failed: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}

	for _, hook := range st.hooks() {
		parent.addHook(hook)
	}

	return nil
}

// InTx reports whether ctx carries a transaction opened by a TxManager.
func (m *TxManager) InTx(ctx context.Context) bool {
	return HasTx(ctx)
}

// AfterCommit is the method form of the package-level AfterCommit.
func (m *TxManager) AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	AfterCommit(ctx, fn)
}
