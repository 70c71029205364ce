package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if !c.Audit.AuditPolicy().IsValid() {
		return fmt.Errorf("audit.policy must be strict or best_effort (got %q)", c.Audit.Policy)
	}

	if err := c.Realtime.validate(); err != nil {
		return fmt.Errorf("realtime: %w", err)
	}

	if err := c.Aggregates.validate(); err != nil {
		return fmt.Errorf("aggregates: %w", err)
	}

	if c.Notifications.RetentionDays <= 0 {
		return fmt.Errorf("notifications.retention_days must be > 0 (got %d)", c.Notifications.RetentionDays)
	}
	if c.Notifications.MaxPageSize <= 0 {
		return fmt.Errorf("notifications.max_page_size must be > 0 (got %d)", c.Notifications.MaxPageSize)
	}

	return nil
}

func (r *RealtimeConfig) validate() error {
	if r.QueueSize <= 0 {
		return fmt.Errorf("queue_size must be > 0 (got %d)", r.QueueSize)
	}
	if !r.Overflow().IsValid() {
		return fmt.Errorf("overflow_policy must be drop_oldest or drop_newest (got %q)", r.OverflowPolicy)
	}
	if r.DeliveryTimeout <= 0 {
		return fmt.Errorf("delivery_timeout must be > 0 (got %v)", r.DeliveryTimeout)
	}
	if r.StallTimeout <= 0 {
		return fmt.Errorf("stall_timeout must be > 0 (got %v)", r.StallTimeout)
	}
	if r.PingInterval <= 0 || r.PingInterval >= r.PongTimeout {
		return fmt.Errorf("ping_interval must be > 0 and shorter than pong_timeout (got %v / %v)", r.PingInterval, r.PongTimeout)
	}
	if r.MaxMessageSize <= 0 {
		return fmt.Errorf("max_message_size must be > 0 (got %d)", r.MaxMessageSize)
	}
	return nil
}

func (a *AggregatesConfig) validate() error {
	if a.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(a.RefreshSchedule); err != nil {
			return fmt.Errorf("refresh_schedule %q: %w", a.RefreshSchedule, err)
		}
	}
	if a.RefreshTimeout <= 0 {
		return fmt.Errorf("refresh_timeout must be > 0 (got %v)", a.RefreshTimeout)
	}
	return nil
}
