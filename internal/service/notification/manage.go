package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
	"github.com/heartmarshall/campus-jobs/internal/realtime"
)

// MarkRead marks one of userID's notifications as read.
func (s *Service) MarkRead(ctx context.Context, id, userID uuid.UUID) (domain.Notification, error) {
	var n domain.Notification
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.owned(ctx, id, userID); err != nil {
			return err
		}

		var err error
		n, err = s.notifications.MarkRead(ctx, id)
		if err != nil {
			return fmt.Errorf("mark notification read: %w", err)
		}

		s.tx.AfterCommit(ctx, func(ctx context.Context) {
			s.push(ctx, userID, realtime.Event{
				Type: EventRead,
				Data: readStatePayload{ID: &id, UnreadCount: s.unreadCount(ctx, userID)},
			})
		})
		return nil
	})
	if err != nil {
		return domain.Notification{}, err
	}
	return n, nil
}

// MarkAllRead marks every unread notification of userID as read and returns
// how many changed.
func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, domain.NewValidationError("user_id", "required")
	}

	changed, err := s.notifications.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}

	if changed > 0 {
		s.tx.AfterCommit(ctx, func(ctx context.Context) {
			s.push(ctx, userID, realtime.Event{
				Type: EventReadAll,
				Data: readStatePayload{Changed: &changed, UnreadCount: s.unreadCount(ctx, userID)},
			})
		})
	}

	s.log.InfoContext(ctx, "notifications marked read",
		slog.String("user_id", userID.String()),
		slog.Int64("changed", changed),
	)
	return changed, nil
}

// Delete removes one of userID's notifications.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.owned(ctx, id, userID); err != nil {
			return err
		}
		if err := s.notifications.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete notification: %w", err)
		}

		s.tx.AfterCommit(ctx, func(ctx context.Context) {
			s.push(ctx, userID, realtime.Event{
				Type: EventDeleted,
				Data: readStatePayload{ID: &id, UnreadCount: s.unreadCount(ctx, userID)},
			})
		})

		s.log.InfoContext(ctx, "notification deleted",
			slog.String("notification_id", id.String()),
			slog.String("user_id", userID.String()),
		)
		return nil
	})
}

// Cleanup deletes read notifications created more than olderThan ago.
func (s *Service) Cleanup(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, domain.NewValidationError("older_than", "must be positive")
	}

	cutoff := s.now().Add(-olderThan)
	deleted, err := s.notifications.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup notifications: %w", err)
	}

	s.log.InfoContext(ctx, "notifications cleaned up",
		slog.Time("cutoff", cutoff),
		slog.Int64("deleted", deleted),
	)
	return deleted, nil
}

// owned loads a notification and checks that userID owns it.
func (s *Service) owned(ctx context.Context, id, userID uuid.UUID) (domain.Notification, error) {
	if id == uuid.Nil {
		return domain.Notification{}, domain.NewValidationError("id", "required")
	}
	if userID == uuid.Nil {
		return domain.Notification{}, domain.NewValidationError("user_id", "required")
	}

	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("get notification: %w", err)
	}
	if n.UserID != userID {
		return domain.Notification{}, fmt.Errorf("notification %s: %w", id, domain.ErrForbidden)
	}
	return n, nil
}
