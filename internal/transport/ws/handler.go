// Package ws serves the realtime websocket endpoint. Each connection becomes
// one realtime session; the session's writer pushes envelopes through the
// connection while the read loop here handles subscribe, unsubscribe and
// ping requests from the client.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/heartmarshall/campus-jobs/internal/config"
	"github.com/heartmarshall/campus-jobs/internal/domain"
	"github.com/heartmarshall/campus-jobs/internal/realtime"
	"github.com/heartmarshall/campus-jobs/pkg/ctxutil"
)

const writeWait = 10 * time.Second

type sessionHost interface {
	OnConnect(ctx context.Context, sessionID, userID uuid.UUID, role domain.Role, sink realtime.Sink) (*realtime.Session, error)
	OnDisconnect(ctx context.Context, sessionID uuid.UUID)
	OnSubscribeRequest(ctx context.Context, sessionID uuid.UUID, topic string) (domain.Topic, error)
	OnUnsubscribe(ctx context.Context, sessionID uuid.UUID, topic string) error
}

// Handler upgrades authenticated requests to websocket sessions.
type Handler struct {
	sessions sessionHost
	cfg      config.RealtimeConfig
	upgrader websocket.Upgrader
	log      *slog.Logger
}

// NewHandler creates the websocket handler. Origins follow the CORS
// allow-list; "*" accepts any origin.
func NewHandler(log *slog.Logger, sessions sessionHost, cfg config.RealtimeConfig, cors config.CORSConfig) *Handler {
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = 54 * time.Second
	}
	if cfg.PongTimeout <= cfg.PingInterval {
		cfg.PongTimeout = cfg.PingInterval * 5 / 3
	}
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = 4096
	}
	return &Handler{
		sessions: sessions,
		cfg:      cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cors.AllowedOrigins),
		},
		log: log.With("handler", "ws"),
	}
}

// ServeHTTP authenticates the caller from the request context (see
// middleware.Auth), upgrades, registers the session and runs the read loop
// until the client leaves or the session is evicted.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	role, ok := ctxutil.UserRoleFromCtx(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.log.DebugContext(r.Context(), "upgrade failed", slog.String("error", err.Error()))
		return
	}

	ctx := context.WithoutCancel(r.Context())
	c := newConn(wsConn, writeWait)
	sessionID := uuid.New()

	// The welcome frame must precede any envelope the session writer picks up
	// from the auto-subscribed topics.
	release := c.hold()
	sess, err := h.sessions.OnConnect(ctx, sessionID, userID, role, c)
	if err != nil {
		release()
		h.log.WarnContext(ctx, "session rejected",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		code := websocket.CloseInternalServerErr
		if errors.Is(err, domain.ErrClosed) {
			code = websocket.CloseGoingAway
		}
		_ = wsConn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(code, "session rejected"), time.Now().Add(time.Second))
		_ = c.Close()
		return
	}
	h.writeReply(ctx, c.writeLocked, reply{Type: TypeWelcome, SessionID: sessionID.String()})
	release()
	defer h.sessions.OnDisconnect(ctx, sessionID)

	go h.keepAlive(c, sess.Done())
	h.readLoop(ctx, c, sessionID)
}

// keepAlive pings the client until the session ends.
func (h *Handler) keepAlive(c *conn, done <-chan struct{}) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := c.ping(); err != nil {
				_ = c.Close()
				return
			}
		}
	}
}

func (h *Handler) readLoop(ctx context.Context, c *conn, sessionID uuid.UUID) {
	ws := c.ws
	ws.SetReadLimit(h.cfg.MaxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(h.cfg.PongTimeout))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(h.cfg.PongTimeout))
	})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.DebugContext(ctx, "read failed",
					slog.String("session_id", sessionID.String()),
					slog.String("error", err.Error()),
				)
			}
			return
		}
		_ = ws.SetReadDeadline(time.Now().Add(h.cfg.PongTimeout))

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.send(ctx, c, reply{Type: TypeError, Code: CodeBadRequest, Error: "malformed message"})
			continue
		}
		h.send(ctx, c, h.handle(ctx, sessionID, msg))
	}
}

func (h *Handler) handle(ctx context.Context, sessionID uuid.UUID, msg clientMessage) reply {
	switch msg.Type {
	case TypeSubscribe:
		topic, err := h.sessions.OnSubscribeRequest(ctx, sessionID, msg.Topic)
		if err != nil {
			return errorReply(msg.ID, err)
		}
		return reply{Type: TypeSubscribed, ID: msg.ID, Topic: topic.String()}
	case TypeUnsubscribe:
		if err := h.sessions.OnUnsubscribe(ctx, sessionID, msg.Topic); err != nil {
			return errorReply(msg.ID, err)
		}
		return reply{Type: TypeUnsubscribed, ID: msg.ID, Topic: msg.Topic}
	case TypePing:
		return reply{Type: TypePong, ID: msg.ID}
	}
	return reply{Type: TypeError, ID: msg.ID, Code: CodeBadRequest, Error: "unknown message type"}
}

func (h *Handler) send(ctx context.Context, c *conn, r reply) {
	h.writeReply(ctx, c.Write, r)
}

func (h *Handler) writeReply(ctx context.Context, write func(context.Context, []byte) error, r reply) {
	data, err := json.Marshal(r)
	if err != nil {
		h.log.ErrorContext(ctx, "marshal reply", slog.String("error", err.Error()))
		return
	}
	wctx, cancel := context.WithTimeout(ctx, writeWait)
	defer cancel()
	if err := write(wctx, data); err != nil {
		h.log.DebugContext(ctx, "reply failed", slog.String("error", err.Error()))
	}
}

func originChecker(allowed string) func(r *http.Request) bool {
	origins := make(map[string]struct{})
	anyOrigin := false
	for _, o := range strings.Split(allowed, ",") {
		o = strings.TrimSpace(o)
		if o == "*" {
			anyOrigin = true
		}
		if o != "" {
			origins[o] = struct{}{}
		}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || anyOrigin {
			return true
		}
		_, ok := origins[origin]
		return ok
	}
}
