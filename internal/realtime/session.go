package realtime

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
)

// Sink is the transport side of a session. Write must honor ctx; Close must
// unblock a pending Write.
type Sink interface {
	Write(ctx context.Context, msg []byte) error
	Close() error
}

// SessionState is the lifecycle of a session. Deregistered is terminal.
type SessionState int32

const (
	StateConnecting SessionState = iota
	StateRegistered
	StateDeregistered
)

func (s SessionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateRegistered:
		return "registered"
	case StateDeregistered:
		return "deregistered"
	}
	return "unknown"
}

type enqueueResult int

const (
	enqueued enqueueResult = iota
	droppedOldest
	droppedNewest
	stalled
	rejected
)

// Session is one transport connection of a user.
type Session struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Role        domain.Role
	ConnectedAt time.Time

	sink  Sink
	opts  Options
	state atomic.Int32

	mu        sync.Mutex
	queue     [][]byte
	fullSince time.Time

	wake chan struct{}
	done chan struct{}
	once sync.Once

	// topics is guarded by the registry lock.
	topics map[domain.Topic]struct{}
}

func newSession(id, userID uuid.UUID, role domain.Role, sink Sink, opts Options) *Session {
	return &Session{
		ID:          id,
		UserID:      userID,
		Role:        role,
		ConnectedAt: time.Now().UTC(),
		sink:        sink,
		opts:        opts,
		queue:       make([][]byte, 0, opts.QueueSize),
		wake:        make(chan struct{}, 1),
		done:        make(chan struct{}),
		topics:      make(map[domain.Topic]struct{}),
	}
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	return SessionState(s.state.Load())
}

// Pending returns the number of queued envelopes.
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Done is closed when the session is deregistered.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// enqueue appends msg without blocking. A full queue applies the overflow
// policy; a queue that has stayed full past the stall timeout reports stalled.
func (s *Session) enqueue(msg []byte, now time.Time) enqueueResult {
	if s.State() != StateRegistered {
		return rejected
	}

	s.mu.Lock()
	var res enqueueResult
	switch {
	case len(s.queue) < s.opts.QueueSize:
		s.queue = append(s.queue, msg)
		res = enqueued
	case s.fullSince.IsZero():
		s.fullSince = now
		res = s.overflow(msg)
	case now.Sub(s.fullSince) >= s.opts.StallTimeout:
		res = stalled
	default:
		res = s.overflow(msg)
	}
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return res
}

// overflow applies the policy to a full queue. Caller holds s.mu.
func (s *Session) overflow(msg []byte) enqueueResult {
	if s.opts.Overflow == domain.OverflowDropNewest {
		return droppedNewest
	}
	copy(s.queue, s.queue[1:])
	s.queue[len(s.queue)-1] = msg
	return droppedOldest
}

// next pops the oldest envelope.
func (s *Session) next() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return nil, false
	}
	msg := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]
	if len(s.queue) < s.opts.QueueSize {
		s.fullSince = time.Time{}
	}
	return msg, true
}

// writeLoop drains the queue to the sink until the session ends or a write
// fails; onFail is called with the failure.
func (s *Session) writeLoop(onFail func(s *Session, err error)) {
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}

		for {
			msg, ok := s.next()
			if !ok {
				break
			}
			ctx, cancel := context.WithTimeout(context.Background(), s.opts.DeliveryTimeout)
			err := s.sink.Write(ctx, msg)
			cancel()
			if err != nil {
				if s.State() == StateRegistered {
					onFail(s, err)
				}
				return
			}
			if s.State() != StateRegistered {
				return
			}
		}
	}
}

// markRegistered moves Connecting to Registered.
func (s *Session) markRegistered() bool {
	return s.state.CompareAndSwap(int32(StateConnecting), int32(StateRegistered))
}

// terminate moves the session to Deregistered and closes its sink once.
func (s *Session) terminate() bool {
	first := false
	s.once.Do(func() {
		first = true
		s.state.Store(int32(StateDeregistered))
		close(s.done)
		s.mu.Lock()
		s.queue = nil
		s.mu.Unlock()
		_ = s.sink.Close()
	})
	return first
}
