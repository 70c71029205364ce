package aggregate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Start schedules full refreshes of every scope on the configured cron spec.
// Overlapping ticks are skipped while a run is still going. An empty schedule
// disables periodic refreshes. Start returns immediately; ctx bounds the
// lifetime of the scheduler.
func (s *Service) Start(ctx context.Context) error {
	if s.cfg.RefreshOnStart {
		go func() {
			if err := s.RefreshAll(ctx); err != nil {
				s.log.WarnContext(ctx, "initial aggregate refresh failed", slog.String("error", err.Error()))
			}
		}()
	}

	if s.cfg.RefreshSchedule == "" {
		s.log.InfoContext(ctx, "aggregate scheduler disabled")
		return nil
	}

	logger := cronLogger{log: s.log}
	c := cron.New(cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)))
	if _, err := c.AddFunc(s.cfg.RefreshSchedule, func() {
		if err := s.RefreshAll(ctx); err != nil {
			s.log.WarnContext(ctx, "scheduled aggregate refresh failed", slog.String("error", err.Error()))
		}
	}); err != nil {
		return fmt.Errorf("schedule aggregate refresh %q: %w", s.cfg.RefreshSchedule, err)
	}

	s.cronMu.Lock()
	s.cron = c
	s.cronMu.Unlock()

	c.Start()
	s.log.InfoContext(ctx, "aggregate scheduler started", slog.String("schedule", s.cfg.RefreshSchedule))

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish.
// Safe to call multiple times.
func (s *Service) Stop() {
	s.cronMu.Lock()
	c := s.cron
	s.cron = nil
	s.cronMu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	s.log.Info("aggregate scheduler stopped")
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
