package realtime

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
	"github.com/heartmarshall/campus-jobs/internal/observability"
)

// Eviction reasons reported to metrics and logs.
const (
	ReasonStalled    = "stalled"
	ReasonWriteError = "write_error"
)

// Registry tracks registered sessions, their users and topic memberships.
// All state is in memory and safe for concurrent use.
type Registry struct {
	opts    Options
	metrics *observability.Metrics
	log     *slog.Logger

	mu       sync.RWMutex
	closed   bool
	sessions map[uuid.UUID]*Session
	byUser   map[uuid.UUID]map[uuid.UUID]*Session
	byTopic  map[domain.Topic]map[uuid.UUID]*Session
	byRole   map[domain.Role]int

	writers sync.WaitGroup
}

// NewRegistry creates an empty Registry.
func NewRegistry(log *slog.Logger, opts Options, metrics *observability.Metrics) *Registry {
	return &Registry{
		opts:     opts.withDefaults(),
		metrics:  metrics,
		log:      log.With("component", "realtime.registry"),
		sessions: make(map[uuid.UUID]*Session),
		byUser:   make(map[uuid.UUID]map[uuid.UUID]*Session),
		byTopic:  make(map[domain.Topic]map[uuid.UUID]*Session),
		byRole:   make(map[domain.Role]int, len(domain.Roles)),
	}
}

// Register adds a session and subscribes it to its own user topic, its role
// topic and, for admins, the admin room. It starts the session's writer.
func (r *Registry) Register(sessionID, userID uuid.UUID, role domain.Role, sink Sink) (*Session, error) {
	if sessionID == uuid.Nil {
		return nil, domain.NewValidationError("session_id", "required")
	}
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "required")
	}
	if !role.IsValid() {
		return nil, domain.NewValidationError("role", fmt.Sprintf("unknown role %q", role))
	}
	if sink == nil {
		return nil, domain.NewValidationError("sink", "required")
	}

	s := newSession(sessionID, userID, role, sink, r.opts)

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, domain.ErrClosed
	}
	if _, exists := r.sessions[sessionID]; exists {
		r.mu.Unlock()
		return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrAlreadyExists)
	}

	r.sessions[sessionID] = s
	if r.byUser[userID] == nil {
		r.byUser[userID] = make(map[uuid.UUID]*Session)
	}
	r.byUser[userID][sessionID] = s
	r.byRole[role]++

	r.subscribeLocked(s, domain.UserTopic(userID))
	r.subscribeLocked(s, domain.RoleTopic(role))
	if role.IsAdmin() {
		r.subscribeLocked(s, domain.TopicAdminRoom)
	}

	s.markRegistered()
	r.writers.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.writers.Done()
		s.writeLoop(func(s *Session, err error) {
			r.evict(s, ReasonWriteError, err)
		})
	}()

	r.metrics.SessionRegistered(role.String())
	r.log.Debug("session registered",
		slog.String("session_id", sessionID.String()),
		slog.String("user_id", userID.String()),
		slog.String("role", role.String()),
	)
	return s, nil
}

// Deregister removes a session and all its memberships and closes its sink.
// It reports false when the session is unknown or already gone.
func (r *Registry) Deregister(sessionID uuid.UUID) bool {
	r.mu.Lock()
	s, ok := r.sessions[sessionID]
	if ok {
		r.removeLocked(s)
	}
	r.mu.Unlock()

	if !ok || !s.terminate() {
		return false
	}

	r.metrics.SessionDeregistered(s.Role.String())
	r.log.Debug("session deregistered",
		slog.String("session_id", sessionID.String()),
		slog.String("user_id", s.UserID.String()),
	)
	return true
}

func (r *Registry) evict(s *Session, reason string, cause error) {
	if !r.Deregister(s.ID) {
		return
	}
	r.metrics.SessionEvicted(reason)

	attrs := []any{
		slog.String("session_id", s.ID.String()),
		slog.String("user_id", s.UserID.String()),
		slog.String("reason", reason),
	}
	if cause != nil {
		attrs = append(attrs, slog.String("error", cause.Error()))
	}
	r.log.Warn("session evicted", attrs...)
}

// Session returns a registered session.
func (r *Registry) Session(sessionID uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sessionID]
	return s, ok
}

// SessionsFor returns the registered sessions of a user, oldest first.
func (r *Registry) SessionsFor(userID uuid.UUID) []*Session {
	r.mu.RLock()
	out := make([]*Session, 0, len(r.byUser[userID]))
	for _, s := range r.byUser[userID] {
		out = append(out, s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].ConnectedAt.Before(out[j].ConnectedAt)
	})
	return out
}

// CountByRole returns the number of registered sessions with role,
// regardless of which topics they currently listen on.
func (r *Registry) CountByRole(role domain.Role) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byRole[role]
}

// Counts returns the number of sessions per role plus the total.
func (r *Registry) Counts() (byRole map[domain.Role]int, total int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byRole = make(map[domain.Role]int, len(domain.Roles))
	for _, role := range domain.Roles {
		byRole[role] = r.byRole[role]
	}
	return byRole, len(r.sessions)
}

// TopicCount returns the number of topics with at least one member.
func (r *Registry) TopicCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byTopic)
}

// ---------------------------------------------------------------------------
// Subscriptions
// ---------------------------------------------------------------------------

// Subscribe adds a session to a topic after checking that its owner may
// listen there: own user and role topics, admin topics for admins, any job.
func (r *Registry) Subscribe(sessionID uuid.UUID, topic string) (domain.Topic, error) {
	ref, err := domain.ParseTopic(topic)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return "", fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	if !mayListen(s, ref) {
		return "", fmt.Errorf("subscribe %s to %s: %w", sessionID, topic, domain.ErrForbidden)
	}

	t := ref.Topic()
	r.subscribeLocked(s, t)
	return t, nil
}

// Unsubscribe removes a session from a topic. Unknown memberships are a no-op.
func (r *Registry) Unsubscribe(sessionID uuid.UUID, topic string) error {
	ref, err := domain.ParseTopic(topic)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	r.unsubscribeLocked(s, ref.Topic())
	return nil
}

// Topics returns the sorted topics of a session.
func (r *Registry) Topics(sessionID uuid.UUID) []domain.Topic {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil
	}
	out := make([]domain.Topic, 0, len(s.topics))
	for t := range s.topics {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func mayListen(s *Session, ref domain.TopicRef) bool {
	switch ref.Kind {
	case domain.TopicKindRole:
		return ref.Role == s.Role
	case domain.TopicKindUser:
		return ref.ID == s.UserID
	case domain.TopicKindAdminRoom, domain.TopicKindAdminAnalytics:
		return s.Role.IsAdmin()
	case domain.TopicKindJob:
		return true
	}
	return false
}

func (r *Registry) subscribeLocked(s *Session, t domain.Topic) {
	if r.byTopic[t] == nil {
		r.byTopic[t] = make(map[uuid.UUID]*Session)
	}
	r.byTopic[t][s.ID] = s
	s.topics[t] = struct{}{}
}

func (r *Registry) unsubscribeLocked(s *Session, t domain.Topic) {
	delete(s.topics, t)
	if members, ok := r.byTopic[t]; ok {
		delete(members, s.ID)
		if len(members) == 0 {
			delete(r.byTopic, t)
		}
	}
}

func (r *Registry) removeLocked(s *Session) {
	for t := range s.topics {
		r.unsubscribeLocked(s, t)
	}
	delete(r.sessions, s.ID)
	r.byRole[s.Role]--
	if r.byRole[s.Role] <= 0 {
		delete(r.byRole, s.Role)
	}
	if users, ok := r.byUser[s.UserID]; ok {
		delete(users, s.ID)
		if len(users) == 0 {
			delete(r.byUser, s.UserID)
		}
	}
}

// ---------------------------------------------------------------------------
// Delivery
// ---------------------------------------------------------------------------

// target is one session picked by a publish together with the topic it was
// reached through.
type target struct {
	session *Session
	topic   domain.Topic
}

// members returns the sessions of the given topics, each once, attributed to
// the first topic it was found in.
func (r *Registry) members(topics ...domain.Topic) []target {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[uuid.UUID]struct{})
	var out []target
	for _, t := range topics {
		for id, s := range r.byTopic[t] {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, target{session: s, topic: t})
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Shutdown
// ---------------------------------------------------------------------------

// Close deregisters every session, waits for their writers to exit and
// rejects further registrations with ErrClosed. Safe to call more than once.
func (r *Registry) Close() {
	r.mu.Lock()
	r.closed = true
	all := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
		r.removeLocked(s)
	}
	r.mu.Unlock()

	for _, s := range all {
		if s.terminate() {
			r.metrics.SessionDeregistered(s.Role.String())
		}
	}
	r.writers.Wait()

	if len(all) > 0 {
		r.log.Info("realtime registry closed", slog.Int("sessions", len(all)))
	}
}

// Closed reports whether Close has been called.
func (r *Registry) Closed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}
