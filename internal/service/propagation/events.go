package propagation

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
	"github.com/heartmarshall/campus-jobs/internal/realtime"
	"github.com/heartmarshall/campus-jobs/internal/service/notification"
)

// PublishEvent delivers ev to the subscribers of topic and returns how many
// sessions it was queued for. proj may be nil.
func (s *Service) PublishEvent(ctx context.Context, topic domain.Topic, ev realtime.Event, proj *realtime.RoleProjections) (int, error) {
	n, err := s.bus.Publish(topic, ev, proj)
	if err != nil {
		return 0, err
	}
	s.log.DebugContext(ctx, "event published",
		slog.String("topic", topic.String()),
		slog.String("type", ev.Type),
		slog.Int("delivered", n),
	)
	return n, nil
}

// Fanout delivers ev across roles and topics in one operation.
func (s *Service) Fanout(ctx context.Context, f realtime.Fanout, ev realtime.Event, proj *realtime.RoleProjections) (int, error) {
	n, err := s.bus.Fanout(f, ev, proj)
	if err != nil {
		return 0, err
	}
	s.log.DebugContext(ctx, "event fanned out",
		slog.String("type", ev.Type),
		slog.Int("roles", len(f.Roles)),
		slog.Bool("monitor", f.Monitor),
		slog.Int("delivered", n),
	)
	return n, nil
}

// Notify persists a notification for input.UserID and returns its id. Live
// delivery follows the commit of the surrounding transaction.
func (s *Service) Notify(ctx context.Context, input notification.NotifyInput) (uuid.UUID, error) {
	n, err := s.notifications.Notify(ctx, input)
	if err != nil {
		return uuid.Nil, err
	}
	return n.ID, nil
}
