package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
)

// Get returns one of userID's notifications.
func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (domain.Notification, error) {
	return s.owned(ctx, id, userID)
}

// List returns a page of a user's notifications, newest first, and the total
// matching the filter. The limit is clamped to the configured page size.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Notification, int, error) {
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if maxSize := s.cfg.MaxPageSize; maxSize > 0 && limit > maxSize {
		limit = maxSize
	}

	list, total, err := s.notifications.ListByUser(ctx, input.UserID, domain.NotificationFilter{
		UnreadOnly: input.UnreadOnly,
		Limit:      limit,
		Offset:     input.Offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	return list, total, nil
}

// UnreadCount returns the number of unread notifications of userID.
func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, domain.NewValidationError("user_id", "required")
	}
	n, err := s.notifications.UnreadCount(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("unread count: %w", err)
	}
	return n, nil
}

// UnreadTotal returns the number of unread notifications across all users.
func (s *Service) UnreadTotal(ctx context.Context) (int64, error) {
	n, err := s.notifications.UnreadTotal(ctx)
	if err != nil {
		return 0, fmt.Errorf("unread total: %w", err)
	}
	return n, nil
}
