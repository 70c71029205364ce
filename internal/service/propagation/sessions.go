package propagation

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
	"github.com/heartmarshall/campus-jobs/internal/realtime"
)

// OnConnect registers a transport session for an authenticated user.
func (s *Service) OnConnect(ctx context.Context, sessionID, userID uuid.UUID, role domain.Role, sink realtime.Sink) (*realtime.Session, error) {
	sess, err := s.sessions.Register(sessionID, userID, role, sink)
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "session connected",
		slog.String("session_id", sessionID.String()),
		slog.String("user_id", userID.String()),
		slog.String("role", role.String()),
	)
	return sess, nil
}

// OnDisconnect deregisters a session. Unknown or already removed sessions are
// ignored.
func (s *Service) OnDisconnect(ctx context.Context, sessionID uuid.UUID) {
	if s.sessions.Deregister(sessionID) {
		s.log.InfoContext(ctx, "session disconnected", slog.String("session_id", sessionID.String()))
	}
}

// OnSubscribeRequest subscribes a session to a topic it is allowed to read.
func (s *Service) OnSubscribeRequest(ctx context.Context, sessionID uuid.UUID, topic string) (domain.Topic, error) {
	t, err := s.sessions.Subscribe(sessionID, topic)
	if err != nil {
		s.log.DebugContext(ctx, "subscribe rejected",
			slog.String("session_id", sessionID.String()),
			slog.String("topic", topic),
			slog.String("error", err.Error()),
		)
		return "", err
	}
	return t, nil
}

// OnUnsubscribe removes a session from a topic.
func (s *Service) OnUnsubscribe(ctx context.Context, sessionID uuid.UUID, topic string) error {
	return s.sessions.Unsubscribe(sessionID, topic)
}
