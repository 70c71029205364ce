// Package notification is the durable, user-addressed notification store.
// Every change is persisted first and then mirrored to the owner's live
// sessions on user:<id> once the surrounding transaction commits.
package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/config"
	"github.com/heartmarshall/campus-jobs/internal/domain"
	"github.com/heartmarshall/campus-jobs/internal/observability"
	"github.com/heartmarshall/campus-jobs/internal/realtime"
)

const (
	DefaultLimit     = 20
	MaxTitleLength   = 200
	MaxMessageLength = 2000
)

// Live event types pushed to user:<id>.
const (
	EventCreated = "notification.created"
	EventRead    = "notification.read"
	EventReadAll = "notification.read_all"
	EventDeleted = "notification.deleted"
)

type notificationRepo interface {
	Create(ctx context.Context, n domain.Notification) (domain.Notification, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, f domain.NotificationFilter) ([]domain.Notification, int, error)
	MarkRead(ctx context.Context, id uuid.UUID) (domain.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	UnreadTotal(ctx context.Context) (int64, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	AfterCommit(ctx context.Context, fn func(ctx context.Context))
}

type publisher interface {
	Publish(topic domain.Topic, ev realtime.Event, proj *realtime.RoleProjections) (int, error)
}

// Service manages notifications.
type Service struct {
	notifications notificationRepo
	tx            txManager
	bus           publisher
	metrics       *observability.Metrics
	cfg           config.NotificationsConfig
	log           *slog.Logger
	now           func() time.Time
}

// NewService creates a new notification Service. bus may be nil, in which
// case notifications are only persisted.
func NewService(
	log *slog.Logger,
	notifications notificationRepo,
	tx txManager,
	bus publisher,
	metrics *observability.Metrics,
	cfg config.NotificationsConfig,
) *Service {
	return &Service{
		notifications: notifications,
		tx:            tx,
		bus:           bus,
		metrics:       metrics,
		cfg:           cfg,
		log:           log.With("service", "notification"),
		now:           func() time.Time { return time.Now().UTC() },
	}
}
