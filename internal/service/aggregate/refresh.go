package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
	"github.com/heartmarshall/campus-jobs/pkg/ctxutil"
)

// Get returns the last materialized snapshot of one key.
// ErrNotFound means the key has never been materialized.
func (s *Service) Get(ctx context.Context, scope domain.AggregateScope, key uuid.UUID) (domain.AggregateSnapshot, error) {
	if err := validate(scope, &key); err != nil {
		return domain.AggregateSnapshot{}, err
	}
	snap, err := s.repo.Get(ctx, scope, key)
	if err != nil {
		return domain.AggregateSnapshot{}, fmt.Errorf("get %s aggregate: %w", scope, err)
	}
	return snap, nil
}

// Refresh recomputes the whole scope (key == nil) or one key. Concurrent
// calls for the same target share one in-flight recomputation and all receive
// its result. The recomputation is bounded by the configured timeout and is
// not cancelled when a waiting caller gives up.
func (s *Service) Refresh(ctx context.Context, scope domain.AggregateScope, key *uuid.UUID) (domain.RefreshResult, error) {
	if err := validate(scope, key); err != nil {
		return domain.RefreshResult{}, err
	}

	flight := scope.String()
	if key != nil {
		flight += ":" + key.String()
	}

	detached := flightContext(ctx)
	ch := s.flights.DoChan(flight, func() (any, error) {
		return s.run(detached, scope, key)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return domain.RefreshResult{}, res.Err
		}
		return res.Val.(domain.RefreshResult), nil
	case <-ctx.Done():
		return domain.RefreshResult{}, ctx.Err()
	}
}

// flightContext starts a shared recomputation from a fresh context so it
// never joins a transaction the caller may have open. Only the request
// identity is carried over for logging.
func flightContext(ctx context.Context) context.Context {
	out := context.Background()
	if id := ctxutil.RequestIDFromCtx(ctx); id != "" {
		out = ctxutil.WithRequestID(out, id)
	}
	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		out = ctxutil.WithUserID(out, userID)
	}
	if role, ok := ctxutil.UserRoleFromCtx(ctx); ok {
		out = ctxutil.WithUserRole(out, role)
	}
	return out
}

// RefreshAll refreshes every scope in turn and joins their errors.
func (s *Service) RefreshAll(ctx context.Context) error {
	var errs []error
	for _, scope := range domain.AggregateScopes {
		if _, err := s.Refresh(ctx, scope, nil); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Service) run(ctx context.Context, scope domain.AggregateScope, key *uuid.UUID) (domain.RefreshResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RefreshTimeout)
	defer cancel()

	start := s.now()
	result := domain.RefreshResult{Scope: scope, Key: key, RefreshedAt: start}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if key == nil {
			rows, err := s.repo.RebuildAll(ctx, scope, start)
			result.Rows = rows
			return err
		}
		snap, found, err := s.repo.RefreshOne(ctx, scope, *key, start)
		if err != nil {
			return err
		}
		if found {
			result.Rows = 1
			result.Snapshot = &snap
		}
		return nil
	})

	result.Duration = s.now().Sub(start)
	s.metrics.RefreshObserved(scope.String(), result.Duration, err)

	// Only full refreshes move the scope's status; a single key says nothing
	// about the freshness of the rest.
	if key == nil {
		s.recordRun(scope, start, result.Duration, err)
	}

	if err != nil {
		s.log.ErrorContext(ctx, "aggregate refresh failed",
			slog.String("scope", scope.String()),
			slog.Any("key", key),
			slog.Duration("duration", result.Duration),
			slog.String("error", err.Error()),
		)
		return domain.RefreshResult{}, fmt.Errorf("refresh %s aggregates: %w", scope, err)
	}

	s.log.InfoContext(ctx, "aggregate refreshed",
		slog.String("scope", scope.String()),
		slog.Any("key", key),
		slog.Int64("rows", result.Rows),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

func validate(scope domain.AggregateScope, key *uuid.UUID) error {
	if !scope.IsValid() {
		return domain.NewValidationError("scope", fmt.Sprintf("unknown scope %q", scope))
	}
	if key != nil && *key == uuid.Nil {
		return domain.NewValidationError("key", "must not be empty")
	}
	return nil
}
