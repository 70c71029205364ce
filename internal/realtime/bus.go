package realtime

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/heartmarshall/campus-jobs/internal/domain"
	"github.com/heartmarshall/campus-jobs/internal/observability"
)

// Fanout is a cross-role broadcast: every session of the listed roles, every
// member of the extra topics and, with Monitor, an admin-shaped copy to
// admin-analytics. A session gets at most one copy per Fanout.
type Fanout struct {
	Roles   []domain.Role
	Topics  []domain.Topic
	Monitor bool
}

// Bus publishes events to the sessions of a Registry.
type Bus struct {
	reg     *Registry
	metrics *observability.Metrics
	log     *slog.Logger
	now     func() time.Time

	seq atomic.Int64
}

// NewBus creates a Bus over reg.
func NewBus(log *slog.Logger, reg *Registry, metrics *observability.Metrics) *Bus {
	return &Bus{
		reg:     reg,
		metrics: metrics,
		log:     log.With("component", "realtime.bus"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Publish delivers ev to every session subscribed to topic, shaped for each
// session's role by proj (nil means canonical for everyone). It returns the
// number of sessions the envelope was queued for. It never blocks on a
// session; sessions found stalled are evicted in the background.
func (b *Bus) Publish(topic domain.Topic, ev Event, proj *RoleProjections) (int, error) {
	ref, err := domain.ParseTopic(topic.String())
	if err != nil {
		return 0, err
	}
	if ev.Type == "" {
		return 0, domain.NewValidationError("type", "required")
	}
	if b.reg.Closed() {
		return 0, domain.ErrClosed
	}

	targets := b.reg.members(ref.Topic())
	delivered, err := b.deliver(targets, ev, proj, nil)
	if err != nil {
		return 0, err
	}
	b.metrics.EventPublished(string(ref.Kind), delivered)
	return delivered, nil
}

// Fanout delivers ev to the union of f's audiences with one envelope per session.
func (b *Bus) Fanout(f Fanout, ev Event, proj *RoleProjections) (int, error) {
	if ev.Type == "" {
		return 0, domain.NewValidationError("type", "required")
	}
	if len(f.Roles) == 0 && len(f.Topics) == 0 && !f.Monitor {
		return 0, domain.NewValidationError("fanout", "no audience")
	}
	if b.reg.Closed() {
		return 0, domain.ErrClosed
	}

	topics := make([]domain.Topic, 0, len(f.Roles)+len(f.Topics)+1)
	for _, role := range f.Roles {
		if !role.IsValid() {
			return 0, domain.NewValidationError("roles", fmt.Sprintf("unknown role %q", role))
		}
		topics = append(topics, domain.RoleTopic(role))
	}
	for _, t := range f.Topics {
		ref, err := domain.ParseTopic(t.String())
		if err != nil {
			return 0, err
		}
		topics = append(topics, ref.Topic())
	}

	// Monitor copies are shaped for admins whatever the reader's role.
	var monitor map[domain.Topic]domain.Role
	if f.Monitor {
		topics = append(topics, domain.TopicAdminAnalytics)
		monitor = map[domain.Topic]domain.Role{domain.TopicAdminAnalytics: domain.RoleAdmin}
	}

	delivered, err := b.deliver(b.reg.members(topics...), ev, proj, monitor)
	if err != nil {
		return 0, err
	}
	b.metrics.EventPublished("fanout", delivered)
	return delivered, nil
}

// deliver encodes one envelope per (topic, role) pair and queues it on every
// target. roleFor overrides the shaping role for specific topics.
func (b *Bus) deliver(targets []target, ev Event, proj *RoleProjections, roleFor map[domain.Topic]domain.Role) (int, error) {
	if len(targets) == 0 {
		return 0, nil
	}

	seq := b.seq.Add(1)
	ts := b.now()

	type shapeKey struct {
		topic domain.Topic
		role  domain.Role
	}
	encoded := make(map[shapeKey][]byte)

	var (
		delivered int
		evicted   []*Session
	)
	for _, tg := range targets {
		role := tg.session.Role
		if r, ok := roleFor[tg.topic]; ok {
			role = r
		}

		key := shapeKey{topic: tg.topic, role: role}
		msg, ok := encoded[key]
		if !ok {
			shaped := proj.shape(ev, role)
			var err error
			msg, err = json.Marshal(Envelope{
				Seq:       seq,
				Topic:     tg.topic.String(),
				Type:      shaped.Type,
				Data:      shaped.Data,
				Message:   shaped.Message,
				ActionURL: shaped.ActionURL,
				TS:        ts,
			})
			if err != nil {
				return 0, fmt.Errorf("encode %s envelope: %w", ev.Type, err)
			}
			encoded[key] = msg
		}

		switch tg.session.enqueue(msg, ts) {
		case enqueued:
			delivered++
		case droppedOldest:
			delivered++
			b.metrics.EnvelopeDropped(string(domain.OverflowDropOldest))
		case droppedNewest:
			b.metrics.EnvelopeDropped(string(domain.OverflowDropNewest))
		case stalled:
			evicted = append(evicted, tg.session)
		case rejected:
		}
	}

	if len(evicted) > 0 {
		go func() {
			for _, s := range evicted {
				b.reg.evict(s, ReasonStalled, nil)
			}
		}()
	}
	return delivered, nil
}

// Seq returns the last sequence number handed out.
func (b *Bus) Seq() int64 {
	return b.seq.Load()
}
