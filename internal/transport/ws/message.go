package ws

import (
	"errors"

	"github.com/heartmarshall/campus-jobs/internal/domain"
)

// Client → server message types.
const (
	TypeSubscribe   = "subscribe"
	TypeUnsubscribe = "unsubscribe"
	TypePing        = "ping"
)

// Server → client reply types. Events pushed by the bus use realtime.Envelope.
const (
	TypeWelcome      = "welcome"
	TypeSubscribed   = "subscribed"
	TypeUnsubscribed = "unsubscribed"
	TypePong         = "pong"
	TypeError        = "error"
)

// Error codes carried by TypeError replies.
const (
	CodeBadRequest = "bad_request"
	CodeForbidden  = "forbidden"
	CodeNotFound   = "not_found"
	CodeInternal   = "internal"
)

type clientMessage struct {
	Type  string `json:"type"`
	Topic string `json:"topic,omitempty"`
	// ID is echoed back so clients can match replies to requests.
	ID string `json:"id,omitempty"`
}

type reply struct {
	Type      string `json:"type"`
	ID        string `json:"id,omitempty"`
	Topic     string `json:"topic,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Code      string `json:"code,omitempty"`
	Error     string `json:"error,omitempty"`
}

func errorReply(id string, err error) reply {
	code := CodeInternal
	msg := "internal error"
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		code, msg = CodeBadRequest, verr.Error()
	case errors.Is(err, domain.ErrForbidden):
		code, msg = CodeForbidden, "topic not allowed"
	case errors.Is(err, domain.ErrNotFound):
		code, msg = CodeNotFound, "session not found"
	}
	return reply{Type: TypeError, ID: id, Code: code, Error: msg}
}
