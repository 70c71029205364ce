// Package propagation is the single entry point the business layer and the
// transports use to reach the consistency core: mutation observation,
// aggregates, live events, notifications and sessions.
package propagation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
	"github.com/heartmarshall/campus-jobs/internal/realtime"
	"github.com/heartmarshall/campus-jobs/internal/service/notification"
)

type mutationObserver interface {
	OnChildMutated(ctx context.Context, table domain.ChildTable, parentKey uuid.UUID, op domain.Operation) error
	OnEntityMutated(ctx context.Context, table domain.AuditedTable, recordID string, op domain.Operation, oldValue, newValue any) error
}

type aggregateService interface {
	Get(ctx context.Context, scope domain.AggregateScope, key uuid.UUID) (domain.AggregateSnapshot, error)
	Refresh(ctx context.Context, scope domain.AggregateScope, key *uuid.UUID) (domain.RefreshResult, error)
	Status() []domain.RefreshStatus
}

type eventBus interface {
	Publish(topic domain.Topic, ev realtime.Event, proj *realtime.RoleProjections) (int, error)
	Fanout(f realtime.Fanout, ev realtime.Event, proj *realtime.RoleProjections) (int, error)
	Seq() int64
}

type sessionRegistry interface {
	Register(sessionID, userID uuid.UUID, role domain.Role, sink realtime.Sink) (*realtime.Session, error)
	Deregister(sessionID uuid.UUID) bool
	Subscribe(sessionID uuid.UUID, topic string) (domain.Topic, error)
	Unsubscribe(sessionID uuid.UUID, topic string) error
	Counts() (map[domain.Role]int, int)
	TopicCount() int
}

type notifier interface {
	Notify(ctx context.Context, input notification.NotifyInput) (domain.Notification, error)
	UnreadTotal(ctx context.Context) (int64, error)
}

type auditVolume interface {
	Volume(ctx context.Context) (int64, error)
}

// Deps groups the collaborators of a Service.
type Deps struct {
	Observer      mutationObserver
	Aggregates    aggregateService
	Bus           eventBus
	Sessions      sessionRegistry
	Notifications notifier
	Audit         auditVolume
}

// Service is the propagation facade.
type Service struct {
	observer      mutationObserver
	aggregates    aggregateService
	bus           eventBus
	sessions      sessionRegistry
	notifications notifier
	audit         auditVolume
	log           *slog.Logger
	now           func() time.Time
}

// NewService creates a new propagation Service.
func NewService(log *slog.Logger, deps Deps) *Service {
	return &Service{
		observer:      deps.Observer,
		aggregates:    deps.Aggregates,
		bus:           deps.Bus,
		sessions:      deps.Sessions,
		notifications: deps.Notifications,
		audit:         deps.Audit,
		log:           log.With("service", "propagation"),
		now:           func() time.Time { return time.Now().UTC() },
	}
}
