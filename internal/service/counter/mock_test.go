package counter

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
)

var _ counterRepo = &counterRepoMock{}

type counterRepoMock struct {
	RecountFunc func(ctx context.Context, b domain.CounterBinding, parentID uuid.UUID) ([]int64, bool, error)

	calls struct {
		Recount []struct {
			Ctx      context.Context
			B        domain.CounterBinding
			ParentID uuid.UUID
		}
	}
	lockRecount sync.RWMutex
}

func (mock *counterRepoMock) Recount(ctx context.Context, b domain.CounterBinding, parentID uuid.UUID) ([]int64, bool, error) {
	if mock.RecountFunc == nil {
		panic("counterRepoMock.RecountFunc: method is nil but counterRepo.Recount was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		B        domain.CounterBinding
		ParentID uuid.UUID
	}{
		Ctx:      ctx,
		B:        b,
		ParentID: parentID,
	}
	mock.lockRecount.Lock()
	mock.calls.Recount = append(mock.calls.Recount, callInfo)
	mock.lockRecount.Unlock()
	return mock.RecountFunc(ctx, b, parentID)
}

func (mock *counterRepoMock) RecountCalls() []struct {
	Ctx      context.Context
	B        domain.CounterBinding
	ParentID uuid.UUID
} {
	var calls []struct {
		Ctx      context.Context
		B        domain.CounterBinding
		ParentID uuid.UUID
	}
	mock.lockRecount.RLock()
	calls = mock.calls.Recount
	mock.lockRecount.RUnlock()
	return calls
}

