package notification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
	"github.com/heartmarshall/campus-jobs/internal/realtime"
)

var _ notificationRepo = &notificationRepoMock{}

type notificationRepoMock struct {
	CreateFunc           func(ctx context.Context, n domain.Notification) (domain.Notification, error)
	DeleteFunc           func(ctx context.Context, id uuid.UUID) error
	DeleteReadBeforeFunc func(ctx context.Context, cutoff time.Time) (int64, error)
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (domain.Notification, error)
	ListByUserFunc       func(ctx context.Context, userID uuid.UUID, f domain.NotificationFilter) ([]domain.Notification, int, error)
	MarkAllReadFunc      func(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkReadFunc         func(ctx context.Context, id uuid.UUID) (domain.Notification, error)
	UnreadCountFunc      func(ctx context.Context, userID uuid.UUID) (int, error)
	UnreadTotalFunc      func(ctx context.Context) (int64, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			N   domain.Notification
		}
		Delete []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		DeleteReadBefore []struct {
			Ctx    context.Context
			Cutoff time.Time
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
			F      domain.NotificationFilter
		}
		MarkAllRead []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		MarkRead []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		UnreadCount []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		UnreadTotal []struct {
			Ctx context.Context
		}
	}
	lockCreate           sync.RWMutex
	lockDelete           sync.RWMutex
	lockDeleteReadBefore sync.RWMutex
	lockGetByID          sync.RWMutex
	lockListByUser       sync.RWMutex
	lockMarkAllRead      sync.RWMutex
	lockMarkRead         sync.RWMutex
	lockUnreadCount      sync.RWMutex
	lockUnreadTotal      sync.RWMutex
}

func (mock *notificationRepoMock) Create(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	if mock.CreateFunc == nil {
		panic("notificationRepoMock.CreateFunc: method is nil but notificationRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		N   domain.Notification
	}{
		Ctx: ctx,
		N:   n,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, n)
}

func (mock *notificationRepoMock) CreateCalls() []struct {
	Ctx context.Context
	N   domain.Notification
} {
	var calls []struct {
		Ctx context.Context
		N   domain.Notification
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *notificationRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("notificationRepoMock.DeleteFunc: method is nil but notificationRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *notificationRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		Id  uuid.UUID
	}
	mock.lockDelete.RLock()
	calls = mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *notificationRepoMock) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if mock.DeleteReadBeforeFunc == nil {
		panic("notificationRepoMock.DeleteReadBeforeFunc: method is nil but notificationRepo.DeleteReadBefore was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Cutoff time.Time
	}{
		Ctx:    ctx,
		Cutoff: cutoff,
	}
	mock.lockDeleteReadBefore.Lock()
	mock.calls.DeleteReadBefore = append(mock.calls.DeleteReadBefore, callInfo)
	mock.lockDeleteReadBefore.Unlock()
	return mock.DeleteReadBeforeFunc(ctx, cutoff)
}

func (mock *notificationRepoMock) DeleteReadBeforeCalls() []struct {
	Ctx    context.Context
	Cutoff time.Time
} {
	var calls []struct {
		Ctx    context.Context
		Cutoff time.Time
	}
	mock.lockDeleteReadBefore.RLock()
	calls = mock.calls.DeleteReadBefore
	mock.lockDeleteReadBefore.RUnlock()
	return calls
}

func (mock *notificationRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Notification, error) {
	if mock.GetByIDFunc == nil {
		panic("notificationRepoMock.GetByIDFunc: method is nil but notificationRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *notificationRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		Id  uuid.UUID
	}
	mock.lockGetByID.RLock()
	calls = mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *notificationRepoMock) ListByUser(ctx context.Context, userID uuid.UUID, f domain.NotificationFilter) ([]domain.Notification, int, error) {
	if mock.ListByUserFunc == nil {
		panic("notificationRepoMock.ListByUserFunc: method is nil but notificationRepo.ListByUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		F      domain.NotificationFilter
	}{
		Ctx:    ctx,
		UserID: userID,
		F:      f,
	}
	mock.lockListByUser.Lock()
	mock.calls.ListByUser = append(mock.calls.ListByUser, callInfo)
	mock.lockListByUser.Unlock()
	return mock.ListByUserFunc(ctx, userID, f)
}

func (mock *notificationRepoMock) ListByUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	F      domain.NotificationFilter
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
		F      domain.NotificationFilter
	}
	mock.lockListByUser.RLock()
	calls = mock.calls.ListByUser
	mock.lockListByUser.RUnlock()
	return calls
}

func (mock *notificationRepoMock) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	if mock.MarkAllReadFunc == nil {
		panic("notificationRepoMock.MarkAllReadFunc: method is nil but notificationRepo.MarkAllRead was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockMarkAllRead.Lock()
	mock.calls.MarkAllRead = append(mock.calls.MarkAllRead, callInfo)
	mock.lockMarkAllRead.Unlock()
	return mock.MarkAllReadFunc(ctx, userID)
}

func (mock *notificationRepoMock) MarkAllReadCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
	}
	mock.lockMarkAllRead.RLock()
	calls = mock.calls.MarkAllRead
	mock.lockMarkAllRead.RUnlock()
	return calls
}

func (mock *notificationRepoMock) MarkRead(ctx context.Context, id uuid.UUID) (domain.Notification, error) {
	if mock.MarkReadFunc == nil {
		panic("notificationRepoMock.MarkReadFunc: method is nil but notificationRepo.MarkRead was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockMarkRead.Lock()
	mock.calls.MarkRead = append(mock.calls.MarkRead, callInfo)
	mock.lockMarkRead.Unlock()
	return mock.MarkReadFunc(ctx, id)
}

func (mock *notificationRepoMock) MarkReadCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		Id  uuid.UUID
	}
	mock.lockMarkRead.RLock()
	calls = mock.calls.MarkRead
	mock.lockMarkRead.RUnlock()
	return calls
}

func (mock *notificationRepoMock) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	if mock.UnreadCountFunc == nil {
		panic("notificationRepoMock.UnreadCountFunc: method is nil but notificationRepo.UnreadCount was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockUnreadCount.Lock()
	mock.calls.UnreadCount = append(mock.calls.UnreadCount, callInfo)
	mock.lockUnreadCount.Unlock()
	return mock.UnreadCountFunc(ctx, userID)
}

func (mock *notificationRepoMock) UnreadCountCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
	}
	mock.lockUnreadCount.RLock()
	calls = mock.calls.UnreadCount
	mock.lockUnreadCount.RUnlock()
	return calls
}

func (mock *notificationRepoMock) UnreadTotal(ctx context.Context) (int64, error) {
	if mock.UnreadTotalFunc == nil {
		panic("notificationRepoMock.UnreadTotalFunc: method is nil but notificationRepo.UnreadTotal was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockUnreadTotal.Lock()
	mock.calls.UnreadTotal = append(mock.calls.UnreadTotal, callInfo)
	mock.lockUnreadTotal.Unlock()
	return mock.UnreadTotalFunc(ctx)
}

func (mock *notificationRepoMock) UnreadTotalCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockUnreadTotal.RLock()
	calls = mock.calls.UnreadTotal
	mock.lockUnreadTotal.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	AfterCommitFunc func(ctx context.Context, fn func(ctx context.Context))
	RunInTxFunc     func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		AfterCommit []struct {
			Ctx context.Context
			Fn  func(ctx context.Context)
		}
		RunInTx []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
	}
	lockAfterCommit sync.RWMutex
	lockRunInTx     sync.RWMutex
}

func (mock *txManagerMock) AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	if mock.AfterCommitFunc == nil {
		panic("txManagerMock.AfterCommitFunc: method is nil but txManager.AfterCommit was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context)
	}{
		Ctx: ctx,
		Fn:  fn,
	}
	mock.lockAfterCommit.Lock()
	mock.calls.AfterCommit = append(mock.calls.AfterCommit, callInfo)
	mock.lockAfterCommit.Unlock()
	mock.AfterCommitFunc(ctx, fn)
}

func (mock *txManagerMock) AfterCommitCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context)
} {
	var calls []struct {
		Ctx context.Context
		Fn  func(ctx context.Context)
	}
	mock.lockAfterCommit.RLock()
	calls = mock.calls.AfterCommit
	mock.lockAfterCommit.RUnlock()
	return calls
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

var _ publisher = &publisherMock{}

type publisherMock struct {
	PublishFunc func(topic domain.Topic, ev realtime.Event, proj *realtime.RoleProjections) (int, error)

	calls struct {
		Publish []struct {
			Topic domain.Topic
			Ev    realtime.Event
			Proj  *realtime.RoleProjections
		}
	}
	lockPublish sync.RWMutex
}

func (mock *publisherMock) Publish(topic domain.Topic, ev realtime.Event, proj *realtime.RoleProjections) (int, error) {
	if mock.PublishFunc == nil {
		panic("publisherMock.PublishFunc: method is nil but publisher.Publish was just called")
	}
	callInfo := struct {
		Topic domain.Topic
		Ev    realtime.Event
		Proj  *realtime.RoleProjections
	}{
		Topic: topic,
		Ev:    ev,
		Proj:  proj,
	}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	return mock.PublishFunc(topic, ev, proj)
}

func (mock *publisherMock) PublishCalls() []struct {
	Topic domain.Topic
	Ev    realtime.Event
	Proj  *realtime.RoleProjections
} {
	var calls []struct {
		Topic domain.Topic
		Ev    realtime.Event
		Proj  *realtime.RoleProjections
	}
	mock.lockPublish.RLock()
	calls = mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}

