package notification

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
)

// View is the JSON shape of a notification in live events.
type View struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data,omitempty"`
	IsRead    bool            `json:"is_read"`
	ReadAt    *time.Time      `json:"read_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToView maps a notification to its JSON shape.
func ToView(n domain.Notification) View {
	return View{
		ID:        n.ID,
		Type:      n.Type.String(),
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

type createdPayload struct {
	Notification View `json:"notification"`
	UnreadCount  *int `json:"unread_count,omitempty"`
}

type readStatePayload struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	Changed     *int64     `json:"changed,omitempty"`
	UnreadCount *int       `json:"unread_count,omitempty"`
}
