// Package realtime is the in-process broker that pushes events to connected
// clients. A Registry tracks sessions and their topic memberships; a Bus
// shapes events per role and enqueues them on each session's bounded queue.
// Each session drains its queue to its Sink on its own writer goroutine, so
// publishing never waits on a slow client.
package realtime

import (
	"time"

	"github.com/heartmarshall/campus-jobs/internal/config"
	"github.com/heartmarshall/campus-jobs/internal/domain"
)

// Options controls per-session delivery.
type Options struct {
	// QueueSize is the capacity of each session's outbound queue.
	QueueSize int
	// Overflow picks the envelope discarded when a queue is full.
	Overflow domain.OverflowPolicy
	// DeliveryTimeout bounds one Sink.Write.
	DeliveryTimeout time.Duration
	// StallTimeout is how long a queue may stay full before the session is evicted.
	StallTimeout time.Duration
}

// DefaultOptions returns the defaults used when a field is left zero.
func DefaultOptions() Options {
	return Options{
		QueueSize:       256,
		Overflow:        domain.OverflowDropOldest,
		DeliveryTimeout: 10 * time.Second,
		StallTimeout:    30 * time.Second,
	}
}

// OptionsFromConfig maps the realtime config section onto Options.
func OptionsFromConfig(cfg config.RealtimeConfig) Options {
	return Options{
		QueueSize:       cfg.QueueSize,
		Overflow:        cfg.Overflow(),
		DeliveryTimeout: cfg.DeliveryTimeout,
		StallTimeout:    cfg.StallTimeout,
	}.withDefaults()
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.QueueSize <= 0 {
		o.QueueSize = d.QueueSize
	}
	if !o.Overflow.IsValid() {
		o.Overflow = d.Overflow
	}
	if o.DeliveryTimeout <= 0 {
		o.DeliveryTimeout = d.DeliveryTimeout
	}
	if o.StallTimeout <= 0 {
		o.StallTimeout = d.StallTimeout
	}
	return o
}
