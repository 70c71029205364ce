package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
	"github.com/heartmarshall/campus-jobs/internal/realtime"
)

// Notify persists a notification and, after the surrounding transaction
// commits, pushes it to the owner's live sessions. Persistence does not
// depend on anyone being connected; push failures are logged only.
func (s *Service) Notify(ctx context.Context, input NotifyInput) (domain.Notification, error) {
	if err := input.Validate(); err != nil {
		return domain.Notification{}, err
	}

	data, err := encodeData(input.Data)
	if err != nil {
		return domain.Notification{}, domain.NewValidationError("data", err.Error())
	}

	n, err := s.notifications.Create(ctx, domain.Notification{
		ID:        uuid.New(),
		UserID:    input.UserID,
		Type:      input.Type,
		Title:     strings.TrimSpace(input.Title),
		Message:   strings.TrimSpace(input.Message),
		Data:      data,
		CreatedAt: s.now(),
	})
	if err != nil {
		return domain.Notification{}, fmt.Errorf("create notification: %w", err)
	}

	s.metrics.NotificationCreated(n.Type.String())

	s.log.InfoContext(ctx, "notification created",
		slog.String("notification_id", n.ID.String()),
		slog.String("user_id", n.UserID.String()),
		slog.String("type", n.Type.String()),
	)

	actionURL := input.ActionURL
	s.tx.AfterCommit(ctx, func(ctx context.Context) {
		payload := createdPayload{Notification: ToView(n), UnreadCount: s.unreadCount(ctx, n.UserID)}
		s.push(ctx, n.UserID, realtime.Event{
			Type:      EventCreated,
			Data:      payload,
			Message:   n.Title,
			ActionURL: actionURL,
		})
	})

	return n, nil
}

// push publishes ev to user:<userID>. Delivery is best effort.
func (s *Service) push(ctx context.Context, userID uuid.UUID, ev realtime.Event) {
	if s.bus == nil {
		return
	}
	delivered, err := s.bus.Publish(domain.UserTopic(userID), ev, nil)
	if err != nil {
		s.log.WarnContext(ctx, "notification push failed",
			slog.String("user_id", userID.String()),
			slog.String("event", ev.Type),
			slog.String("error", err.Error()),
		)
		return
	}
	s.log.DebugContext(ctx, "notification pushed",
		slog.String("user_id", userID.String()),
		slog.String("event", ev.Type),
		slog.Int("sessions", delivered),
	)
}

// unreadCount returns the unread count for a live event, or nil if it could
// not be read.
func (s *Service) unreadCount(ctx context.Context, userID uuid.UUID) *int {
	n, err := s.notifications.UnreadCount(ctx, userID)
	if err != nil {
		s.log.WarnContext(ctx, "unread count for push failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return &n
}

func encodeData(v any) (json.RawMessage, error) {
	switch d := v.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		if len(d) == 0 {
			return nil, nil
		}
		if !json.Valid(d) {
			return nil, fmt.Errorf("invalid JSON")
		}
		return d, nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return nil, nil
	}
	return b, nil
}
