package notification

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
)

// NotifyInput holds the parameters for creating a notification.
// Data is any JSON-encodable value; it is stored as-is in the data column.
type NotifyInput struct {
	UserID    uuid.UUID
	Type      domain.NotificationType
	Title     string
	Message   string
	Data      any
	ActionURL string
}

// Validate checks all fields and collects all errors.
func (i NotifyInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: fmt.Sprintf("unknown type %q", i.Type)})
	}

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(title) > MaxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: fmt.Sprintf("max %d characters", MaxTitleLength)})
	}

	message := strings.TrimSpace(i.Message)
	if message == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	}
	if len(message) > MaxMessageLength {
		errs = append(errs, domain.FieldError{Field: "message", Message: fmt.Sprintf("max %d characters", MaxMessageLength)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds the parameters for listing a user's notifications.
type ListInput struct {
	UserID     uuid.UUID
	UnreadOnly bool
	Limit      int
	Offset     int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
