package aggregate

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
)

var _ aggregateRepo = &aggregateRepoMock{}

type aggregateRepoMock struct {
	GetFunc        func(ctx context.Context, scope domain.AggregateScope, key uuid.UUID) (domain.AggregateSnapshot, error)
	RebuildAllFunc func(ctx context.Context, scope domain.AggregateScope, at time.Time) (int64, error)
	RefreshOneFunc func(ctx context.Context, scope domain.AggregateScope, key uuid.UUID, at time.Time) (domain.AggregateSnapshot, bool, error)

	calls struct {
		Get []struct {
			Ctx   context.Context
			Scope domain.AggregateScope
			Key   uuid.UUID
		}
		RebuildAll []struct {
			Ctx   context.Context
			Scope domain.AggregateScope
			At    time.Time
		}
		RefreshOne []struct {
			Ctx   context.Context
			Scope domain.AggregateScope
			Key   uuid.UUID
			At    time.Time
		}
	}
	lockGet        sync.RWMutex
	lockRebuildAll sync.RWMutex
	lockRefreshOne sync.RWMutex
}

func (mock *aggregateRepoMock) Get(ctx context.Context, scope domain.AggregateScope, key uuid.UUID) (domain.AggregateSnapshot, error) {
	if mock.GetFunc == nil {
		panic("aggregateRepoMock.GetFunc: method is nil but aggregateRepo.Get was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Scope domain.AggregateScope
		Key   uuid.UUID
	}{
		Ctx:   ctx,
		Scope: scope,
		Key:   key,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, scope, key)
}

func (mock *aggregateRepoMock) GetCalls() []struct {
	Ctx   context.Context
	Scope domain.AggregateScope
	Key   uuid.UUID
} {
	var calls []struct {
		Ctx   context.Context
		Scope domain.AggregateScope
		Key   uuid.UUID
	}
	mock.lockGet.RLock()
	calls = mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *aggregateRepoMock) RebuildAll(ctx context.Context, scope domain.AggregateScope, at time.Time) (int64, error) {
	if mock.RebuildAllFunc == nil {
		panic("aggregateRepoMock.RebuildAllFunc: method is nil but aggregateRepo.RebuildAll was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Scope domain.AggregateScope
		At    time.Time
	}{
		Ctx:   ctx,
		Scope: scope,
		At:    at,
	}
	mock.lockRebuildAll.Lock()
	mock.calls.RebuildAll = append(mock.calls.RebuildAll, callInfo)
	mock.lockRebuildAll.Unlock()
	return mock.RebuildAllFunc(ctx, scope, at)
}

func (mock *aggregateRepoMock) RebuildAllCalls() []struct {
	Ctx   context.Context
	Scope domain.AggregateScope
	At    time.Time
} {
	var calls []struct {
		Ctx   context.Context
		Scope domain.AggregateScope
		At    time.Time
	}
	mock.lockRebuildAll.RLock()
	calls = mock.calls.RebuildAll
	mock.lockRebuildAll.RUnlock()
	return calls
}

func (mock *aggregateRepoMock) RefreshOne(ctx context.Context, scope domain.AggregateScope, key uuid.UUID, at time.Time) (domain.AggregateSnapshot, bool, error) {
	if mock.RefreshOneFunc == nil {
		panic("aggregateRepoMock.RefreshOneFunc: method is nil but aggregateRepo.RefreshOne was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Scope domain.AggregateScope
		Key   uuid.UUID
		At    time.Time
	}{
		Ctx:   ctx,
		Scope: scope,
		Key:   key,
		At:    at,
	}
	mock.lockRefreshOne.Lock()
	mock.calls.RefreshOne = append(mock.calls.RefreshOne, callInfo)
	mock.lockRefreshOne.Unlock()
	return mock.RefreshOneFunc(ctx, scope, key, at)
}

func (mock *aggregateRepoMock) RefreshOneCalls() []struct {
	Ctx   context.Context
	Scope domain.AggregateScope
	Key   uuid.UUID
	At    time.Time
} {
	var calls []struct {
		Ctx   context.Context
		Scope domain.AggregateScope
		Key   uuid.UUID
		At    time.Time
	}
	mock.lockRefreshOne.RLock()
	calls = mock.calls.RefreshOne
	mock.lockRefreshOne.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}{
		Ctx: ctx,
		Fn:  fn,
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context) error
} {
	var calls []struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}
	mock.lockRunInTx.RLock()
	calls = mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}

