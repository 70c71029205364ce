package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Notification is a durable, user-addressed message.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      NotificationType
	Title     string
	Message   string
	Data      json.RawMessage
	IsRead    bool
	ReadAt    *time.Time
	CreatedAt time.Time
}

// NotificationFilter narrows notification listings.
type NotificationFilter struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}
