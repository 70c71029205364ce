package propagation

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
	"github.com/heartmarshall/campus-jobs/internal/realtime"
	"github.com/heartmarshall/campus-jobs/internal/service/notification"
)

var _ mutationObserver = &mutationObserverMock{}

type mutationObserverMock struct {
	OnChildMutatedFunc  func(ctx context.Context, table domain.ChildTable, parentKey uuid.UUID, op domain.Operation) error
	OnEntityMutatedFunc func(ctx context.Context, table domain.AuditedTable, recordID string, op domain.Operation, oldValue any, newValue any) error

	calls struct {
		OnChildMutated []struct {
			Ctx       context.Context
			Table     domain.ChildTable
			ParentKey uuid.UUID
			Op        domain.Operation
		}
		OnEntityMutated []struct {
			Ctx      context.Context
			Table    domain.AuditedTable
			RecordID string
			Op       domain.Operation
			OldValue any
			NewValue any
		}
	}
	lockOnChildMutated  sync.RWMutex
	lockOnEntityMutated sync.RWMutex
}

func (mock *mutationObserverMock) OnChildMutated(ctx context.Context, table domain.ChildTable, parentKey uuid.UUID, op domain.Operation) error {
	if mock.OnChildMutatedFunc == nil {
		panic("mutationObserverMock.OnChildMutatedFunc: method is nil but mutationObserver.OnChildMutated was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		Table     domain.ChildTable
		ParentKey uuid.UUID
		Op        domain.Operation
	}{
		Ctx:       ctx,
		Table:     table,
		ParentKey: parentKey,
		Op:        op,
	}
	mock.lockOnChildMutated.Lock()
	mock.calls.OnChildMutated = append(mock.calls.OnChildMutated, callInfo)
	mock.lockOnChildMutated.Unlock()
	return mock.OnChildMutatedFunc(ctx, table, parentKey, op)
}

func (mock *mutationObserverMock) OnChildMutatedCalls() []struct {
	Ctx       context.Context
	Table     domain.ChildTable
	ParentKey uuid.UUID
	Op        domain.Operation
} {
	var calls []struct {
		Ctx       context.Context
		Table     domain.ChildTable
		ParentKey uuid.UUID
		Op        domain.Operation
	}
	mock.lockOnChildMutated.RLock()
	calls = mock.calls.OnChildMutated
	mock.lockOnChildMutated.RUnlock()
	return calls
}

func (mock *mutationObserverMock) OnEntityMutated(ctx context.Context, table domain.AuditedTable, recordID string, op domain.Operation, oldValue any, newValue any) error {
	if mock.OnEntityMutatedFunc == nil {
		panic("mutationObserverMock.OnEntityMutatedFunc: method is nil but mutationObserver.OnEntityMutated was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Table    domain.AuditedTable
		RecordID string
		Op       domain.Operation
		OldValue any
		NewValue any
	}{
		Ctx:      ctx,
		Table:    table,
		RecordID: recordID,
		Op:       op,
		OldValue: oldValue,
		NewValue: newValue,
	}
	mock.lockOnEntityMutated.Lock()
	mock.calls.OnEntityMutated = append(mock.calls.OnEntityMutated, callInfo)
	mock.lockOnEntityMutated.Unlock()
	return mock.OnEntityMutatedFunc(ctx, table, recordID, op, oldValue, newValue)
}

func (mock *mutationObserverMock) OnEntityMutatedCalls() []struct {
	Ctx      context.Context
	Table    domain.AuditedTable
	RecordID string
	Op       domain.Operation
	OldValue any
	NewValue any
} {
	var calls []struct {
		Ctx      context.Context
		Table    domain.AuditedTable
		RecordID string
		Op       domain.Operation
		OldValue any
		NewValue any
	}
	mock.lockOnEntityMutated.RLock()
	calls = mock.calls.OnEntityMutated
	mock.lockOnEntityMutated.RUnlock()
	return calls
}

var _ aggregateService = &aggregateServiceMock{}

type aggregateServiceMock struct {
	GetFunc     func(ctx context.Context, scope domain.AggregateScope, key uuid.UUID) (domain.AggregateSnapshot, error)
	RefreshFunc func(ctx context.Context, scope domain.AggregateScope, key *uuid.UUID) (domain.RefreshResult, error)
	StatusFunc  func() []domain.RefreshStatus

	calls struct {
		Get []struct {
			Ctx   context.Context
			Scope domain.AggregateScope
			Key   uuid.UUID
		}
		Refresh []struct {
			Ctx   context.Context
			Scope domain.AggregateScope
			Key   *uuid.UUID
		}
		Status []struct {
		}
	}
	lockGet     sync.RWMutex
	lockRefresh sync.RWMutex
	lockStatus  sync.RWMutex
}

func (mock *aggregateServiceMock) Get(ctx context.Context, scope domain.AggregateScope, key uuid.UUID) (domain.AggregateSnapshot, error) {
	if mock.GetFunc == nil {
		panic("aggregateServiceMock.GetFunc: method is nil but aggregateService.Get was just called")
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

func (mock *aggregateServiceMock) GetCalls() []struct {
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

func (mock *aggregateServiceMock) Refresh(ctx context.Context, scope domain.AggregateScope, key *uuid.UUID) (domain.RefreshResult, error) {
	if mock.RefreshFunc == nil {
		panic("aggregateServiceMock.RefreshFunc: method is nil but aggregateService.Refresh was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Scope domain.AggregateScope
		Key   *uuid.UUID
	}{
		Ctx:   ctx,
		Scope: scope,
		Key:   key,
	}
	mock.lockRefresh.Lock()
	mock.calls.Refresh = append(mock.calls.Refresh, callInfo)
	mock.lockRefresh.Unlock()
	return mock.RefreshFunc(ctx, scope, key)
}

func (mock *aggregateServiceMock) RefreshCalls() []struct {
	Ctx   context.Context
	Scope domain.AggregateScope
	Key   *uuid.UUID
} {
	var calls []struct {
		Ctx   context.Context
		Scope domain.AggregateScope
		Key   *uuid.UUID
	}
	mock.lockRefresh.RLock()
	calls = mock.calls.Refresh
	mock.lockRefresh.RUnlock()
	return calls
}

func (mock *aggregateServiceMock) Status() []domain.RefreshStatus {
	if mock.StatusFunc == nil {
		panic("aggregateServiceMock.StatusFunc: method is nil but aggregateService.Status was just called")
	}
	callInfo := struct {
	}{}
	mock.lockStatus.Lock()
	mock.calls.Status = append(mock.calls.Status, callInfo)
	mock.lockStatus.Unlock()
	return mock.StatusFunc()
}

func (mock *aggregateServiceMock) StatusCalls() []struct {
} {
	var calls []struct {
	}
	mock.lockStatus.RLock()
	calls = mock.calls.Status
	mock.lockStatus.RUnlock()
	return calls
}

var _ eventBus = &eventBusMock{}

type eventBusMock struct {
	FanoutFunc  func(f realtime.Fanout, ev realtime.Event, proj *realtime.RoleProjections) (int, error)
	PublishFunc func(topic domain.Topic, ev realtime.Event, proj *realtime.RoleProjections) (int, error)
	SeqFunc     func() int64

	calls struct {
		Fanout []struct {
			F    realtime.Fanout
			Ev   realtime.Event
			Proj *realtime.RoleProjections
		}
		Publish []struct {
			Topic domain.Topic
			Ev    realtime.Event
			Proj  *realtime.RoleProjections
		}
		Seq []struct {
		}
	}
	lockFanout  sync.RWMutex
	lockPublish sync.RWMutex
	lockSeq     sync.RWMutex
}

func (mock *eventBusMock) Fanout(f realtime.Fanout, ev realtime.Event, proj *realtime.RoleProjections) (int, error) {
	if mock.FanoutFunc == nil {
		panic("eventBusMock.FanoutFunc: method is nil but eventBus.Fanout was just called")
	}
	callInfo := struct {
		F    realtime.Fanout
		Ev   realtime.Event
		Proj *realtime.RoleProjections
	}{
		F:    f,
		Ev:   ev,
		Proj: proj,
	}
	mock.lockFanout.Lock()
	mock.calls.Fanout = append(mock.calls.Fanout, callInfo)
	mock.lockFanout.Unlock()
	return mock.FanoutFunc(f, ev, proj)
}

func (mock *eventBusMock) FanoutCalls() []struct {
	F    realtime.Fanout
	Ev   realtime.Event
	Proj *realtime.RoleProjections
} {
	var calls []struct {
		F    realtime.Fanout
		Ev   realtime.Event
		Proj *realtime.RoleProjections
	}
	mock.lockFanout.RLock()
	calls = mock.calls.Fanout
	mock.lockFanout.RUnlock()
	return calls
}

func (mock *eventBusMock) Publish(topic domain.Topic, ev realtime.Event, proj *realtime.RoleProjections) (int, error) {
	if mock.PublishFunc == nil {
		panic("eventBusMock.PublishFunc: method is nil but eventBus.Publish was just called")
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

func (mock *eventBusMock) PublishCalls() []struct {
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

func (mock *eventBusMock) Seq() int64 {
	if mock.SeqFunc == nil {
		panic("eventBusMock.SeqFunc: method is nil but eventBus.Seq was just called")
	}
	callInfo := struct {
	}{}
	mock.lockSeq.Lock()
	mock.calls.Seq = append(mock.calls.Seq, callInfo)
	mock.lockSeq.Unlock()
	return mock.SeqFunc()
}

func (mock *eventBusMock) SeqCalls() []struct {
} {
	var calls []struct {
	}
	mock.lockSeq.RLock()
	calls = mock.calls.Seq
	mock.lockSeq.RUnlock()
	return calls
}

var _ sessionRegistry = &sessionRegistryMock{}

type sessionRegistryMock struct {
	CountsFunc      func() (map[domain.Role]int, int)
	DeregisterFunc  func(sessionID uuid.UUID) bool
	RegisterFunc    func(sessionID uuid.UUID, userID uuid.UUID, role domain.Role, sink realtime.Sink) (*realtime.Session, error)
	SubscribeFunc   func(sessionID uuid.UUID, topic string) (domain.Topic, error)
	TopicCountFunc  func() int
	UnsubscribeFunc func(sessionID uuid.UUID, topic string) error

	calls struct {
		Counts []struct {
		}
		Deregister []struct {
			SessionID uuid.UUID
		}
		Register []struct {
			SessionID uuid.UUID
			UserID    uuid.UUID
			Role      domain.Role
			Sink      realtime.Sink
		}
		Subscribe []struct {
			SessionID uuid.UUID
			Topic     string
		}
		TopicCount []struct {
		}
		Unsubscribe []struct {
			SessionID uuid.UUID
			Topic     string
		}
	}
	lockCounts      sync.RWMutex
	lockDeregister  sync.RWMutex
	lockRegister    sync.RWMutex
	lockSubscribe   sync.RWMutex
	lockTopicCount  sync.RWMutex
	lockUnsubscribe sync.RWMutex
}

func (mock *sessionRegistryMock) Counts() (map[domain.Role]int, int) {
	if mock.CountsFunc == nil {
		panic("sessionRegistryMock.CountsFunc: method is nil but sessionRegistry.Counts was just called")
	}
	callInfo := struct {
	}{}
	mock.lockCounts.Lock()
	mock.calls.Counts = append(mock.calls.Counts, callInfo)
	mock.lockCounts.Unlock()
	return mock.CountsFunc()
}

func (mock *sessionRegistryMock) CountsCalls() []struct {
} {
	var calls []struct {
	}
	mock.lockCounts.RLock()
	calls = mock.calls.Counts
	mock.lockCounts.RUnlock()
	return calls
}

func (mock *sessionRegistryMock) Deregister(sessionID uuid.UUID) bool {
	if mock.DeregisterFunc == nil {
		panic("sessionRegistryMock.DeregisterFunc: method is nil but sessionRegistry.Deregister was just called")
	}
	callInfo := struct {
		SessionID uuid.UUID
	}{
		SessionID: sessionID,
	}
	mock.lockDeregister.Lock()
	mock.calls.Deregister = append(mock.calls.Deregister, callInfo)
	mock.lockDeregister.Unlock()
	return mock.DeregisterFunc(sessionID)
}

func (mock *sessionRegistryMock) DeregisterCalls() []struct {
	SessionID uuid.UUID
} {
	var calls []struct {
		SessionID uuid.UUID
	}
	mock.lockDeregister.RLock()
	calls = mock.calls.Deregister
	mock.lockDeregister.RUnlock()
	return calls
}

func (mock *sessionRegistryMock) Register(sessionID uuid.UUID, userID uuid.UUID, role domain.Role, sink realtime.Sink) (*realtime.Session, error) {
	if mock.RegisterFunc == nil {
		panic("sessionRegistryMock.RegisterFunc: method is nil but sessionRegistry.Register was just called")
	}
	callInfo := struct {
		SessionID uuid.UUID
		UserID    uuid.UUID
		Role      domain.Role
		Sink      realtime.Sink
	}{
		SessionID: sessionID,
		UserID:    userID,
		Role:      role,
		Sink:      sink,
	}
	mock.lockRegister.Lock()
	mock.calls.Register = append(mock.calls.Register, callInfo)
	mock.lockRegister.Unlock()
	return mock.RegisterFunc(sessionID, userID, role, sink)
}

func (mock *sessionRegistryMock) RegisterCalls() []struct {
	SessionID uuid.UUID
	UserID    uuid.UUID
	Role      domain.Role
	Sink      realtime.Sink
} {
	var calls []struct {
		SessionID uuid.UUID
		UserID    uuid.UUID
		Role      domain.Role
		Sink      realtime.Sink
	}
	mock.lockRegister.RLock()
	calls = mock.calls.Register
	mock.lockRegister.RUnlock()
	return calls
}

func (mock *sessionRegistryMock) Subscribe(sessionID uuid.UUID, topic string) (domain.Topic, error) {
	if mock.SubscribeFunc == nil {
		panic("sessionRegistryMock.SubscribeFunc: method is nil but sessionRegistry.Subscribe was just called")
	}
	callInfo := struct {
		SessionID uuid.UUID
		Topic     string
	}{
		SessionID: sessionID,
		Topic:     topic,
	}
	mock.lockSubscribe.Lock()
	mock.calls.Subscribe = append(mock.calls.Subscribe, callInfo)
	mock.lockSubscribe.Unlock()
	return mock.SubscribeFunc(sessionID, topic)
}

func (mock *sessionRegistryMock) SubscribeCalls() []struct {
	SessionID uuid.UUID
	Topic     string
} {
	var calls []struct {
		SessionID uuid.UUID
		Topic     string
	}
	mock.lockSubscribe.RLock()
	calls = mock.calls.Subscribe
	mock.lockSubscribe.RUnlock()
	return calls
}

func (mock *sessionRegistryMock) TopicCount() int {
	if mock.TopicCountFunc == nil {
		panic("sessionRegistryMock.TopicCountFunc: method is nil but sessionRegistry.TopicCount was just called")
	}
	callInfo := struct {
	}{}
	mock.lockTopicCount.Lock()
	mock.calls.TopicCount = append(mock.calls.TopicCount, callInfo)
	mock.lockTopicCount.Unlock()
	return mock.TopicCountFunc()
}

func (mock *sessionRegistryMock) TopicCountCalls() []struct {
} {
	var calls []struct {
	}
	mock.lockTopicCount.RLock()
	calls = mock.calls.TopicCount
	mock.lockTopicCount.RUnlock()
	return calls
}

func (mock *sessionRegistryMock) Unsubscribe(sessionID uuid.UUID, topic string) error {
	if mock.UnsubscribeFunc == nil {
		panic("sessionRegistryMock.UnsubscribeFunc: method is nil but sessionRegistry.Unsubscribe was just called")
	}
	callInfo := struct {
		SessionID uuid.UUID
		Topic     string
	}{
		SessionID: sessionID,
		Topic:     topic,
	}
	mock.lockUnsubscribe.Lock()
	mock.calls.Unsubscribe = append(mock.calls.Unsubscribe, callInfo)
	mock.lockUnsubscribe.Unlock()
	return mock.UnsubscribeFunc(sessionID, topic)
}

func (mock *sessionRegistryMock) UnsubscribeCalls() []struct {
	SessionID uuid.UUID
	Topic     string
} {
	var calls []struct {
		SessionID uuid.UUID
		Topic     string
	}
	mock.lockUnsubscribe.RLock()
	calls = mock.calls.Unsubscribe
	mock.lockUnsubscribe.RUnlock()
	return calls
}

var _ notifier = &notifierMock{}

type notifierMock struct {
	NotifyFunc      func(ctx context.Context, input notification.NotifyInput) (domain.Notification, error)
	UnreadTotalFunc func(ctx context.Context) (int64, error)

	calls struct {
		Notify []struct {
			Ctx   context.Context
			Input notification.NotifyInput
		}
		UnreadTotal []struct {
			Ctx context.Context
		}
	}
	lockNotify      sync.RWMutex
	lockUnreadTotal sync.RWMutex
}

func (mock *notifierMock) Notify(ctx context.Context, input notification.NotifyInput) (domain.Notification, error) {
	if mock.NotifyFunc == nil {
		panic("notifierMock.NotifyFunc: method is nil but notifier.Notify was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input notification.NotifyInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockNotify.Lock()
	mock.calls.Notify = append(mock.calls.Notify, callInfo)
	mock.lockNotify.Unlock()
	return mock.NotifyFunc(ctx, input)
}

func (mock *notifierMock) NotifyCalls() []struct {
	Ctx   context.Context
	Input notification.NotifyInput
} {
	var calls []struct {
		Ctx   context.Context
		Input notification.NotifyInput
	}
	mock.lockNotify.RLock()
	calls = mock.calls.Notify
	mock.lockNotify.RUnlock()
	return calls
}

func (mock *notifierMock) UnreadTotal(ctx context.Context) (int64, error) {
	if mock.UnreadTotalFunc == nil {
		panic("notifierMock.UnreadTotalFunc: method is nil but notifier.UnreadTotal was just called")
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

func (mock *notifierMock) UnreadTotalCalls() []struct {
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

var _ auditVolume = &auditVolumeMock{}

type auditVolumeMock struct {
	VolumeFunc func(ctx context.Context) (int64, error)

	calls struct {
		Volume []struct {
			Ctx context.Context
		}
	}
	lockVolume sync.RWMutex
}

func (mock *auditVolumeMock) Volume(ctx context.Context) (int64, error) {
	if mock.VolumeFunc == nil {
		panic("auditVolumeMock.VolumeFunc: method is nil but auditVolume.Volume was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockVolume.Lock()
	mock.calls.Volume = append(mock.calls.Volume, callInfo)
	mock.lockVolume.Unlock()
	return mock.VolumeFunc(ctx)
}

func (mock *auditVolumeMock) VolumeCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockVolume.RLock()
	calls = mock.calls.Volume
	mock.lockVolume.RUnlock()
	return calls
}

