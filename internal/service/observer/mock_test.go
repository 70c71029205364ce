package observer

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
	"github.com/heartmarshall/campus-jobs/internal/service/audit"
)

var _ counterSync = &counterSyncMock{}

type counterSyncMock struct {
	SyncFunc func(ctx context.Context, child domain.ChildTable, parentID uuid.UUID) (map[string]int64, error)

	calls struct {
		Sync []struct {
			Ctx      context.Context
			Child    domain.ChildTable
			ParentID uuid.UUID
		}
	}
	lockSync sync.RWMutex
}

func (mock *counterSyncMock) Sync(ctx context.Context, child domain.ChildTable, parentID uuid.UUID) (map[string]int64, error) {
	if mock.SyncFunc == nil {
		panic("counterSyncMock.SyncFunc: method is nil but counterSync.Sync was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Child    domain.ChildTable
		ParentID uuid.UUID
	}{
		Ctx:      ctx,
		Child:    child,
		ParentID: parentID,
	}
	mock.lockSync.Lock()
	mock.calls.Sync = append(mock.calls.Sync, callInfo)
	mock.lockSync.Unlock()
	return mock.SyncFunc(ctx, child, parentID)
}

func (mock *counterSyncMock) SyncCalls() []struct {
	Ctx      context.Context
	Child    domain.ChildTable
	ParentID uuid.UUID
} {
	var calls []struct {
		Ctx      context.Context
		Child    domain.ChildTable
		ParentID uuid.UUID
	}
	mock.lockSync.RLock()
	calls = mock.calls.Sync
	mock.lockSync.RUnlock()
	return calls
}

var _ auditRecorder = &auditRecorderMock{}

type auditRecorderMock struct {
	RecordFunc func(ctx context.Context, input audit.RecordInput) (*domain.AuditRecord, error)

	calls struct {
		Record []struct {
			Ctx   context.Context
			Input audit.RecordInput
		}
	}
	lockRecord sync.RWMutex
}

func (mock *auditRecorderMock) Record(ctx context.Context, input audit.RecordInput) (*domain.AuditRecord, error) {
	if mock.RecordFunc == nil {
		panic("auditRecorderMock.RecordFunc: method is nil but auditRecorder.Record was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input audit.RecordInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockRecord.Lock()
	mock.calls.Record = append(mock.calls.Record, callInfo)
	mock.lockRecord.Unlock()
	return mock.RecordFunc(ctx, input)
}

func (mock *auditRecorderMock) RecordCalls() []struct {
	Ctx   context.Context
	Input audit.RecordInput
} {
	var calls []struct {
		Ctx   context.Context
		Input audit.RecordInput
	}
	mock.lockRecord.RLock()
	calls = mock.calls.Record
	mock.lockRecord.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	InTxFunc func(ctx context.Context) bool

	calls struct {
		InTx []struct {
			Ctx context.Context
		}
	}
	lockInTx sync.RWMutex
}

func (mock *txManagerMock) InTx(ctx context.Context) bool {
	if mock.InTxFunc == nil {
		panic("txManagerMock.InTxFunc: method is nil but txManager.InTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockInTx.Lock()
	mock.calls.InTx = append(mock.calls.InTx, callInfo)
	mock.lockInTx.Unlock()
	return mock.InTxFunc(ctx)
}

func (mock *txManagerMock) InTxCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockInTx.RLock()
	calls = mock.calls.InTx
	mock.lockInTx.RUnlock()
	return calls
}

