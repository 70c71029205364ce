package propagation

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/campus-jobs/internal/domain"
)

// Report is the read-only operational snapshot of the propagation core.
type Report struct {
	GeneratedAt         time.Time              `json:"generated_at"`
	Sessions            SessionReport          `json:"sessions"`
	Aggregates          []domain.RefreshStatus `json:"aggregates"`
	AuditRecords        int64                  `json:"audit_records"`
	UnreadNotifications int64                  `json:"unread_notifications"`
	LastEventSeq        int64                  `json:"last_event_seq"`
}

// SessionReport counts live sessions.
type SessionReport struct {
	Total  int                 `json:"total"`
	ByRole map[domain.Role]int `json:"by_role"`
	Topics int                 `json:"topics"`
}

// Report assembles the operational snapshot. Every role appears in ByRole,
// with zero when nobody of that role is connected.
func (s *Service) Report(ctx context.Context) (Report, error) {
	byRole, total := s.sessions.Counts()
	sessions := SessionReport{
		Total:  total,
		ByRole: make(map[domain.Role]int, len(domain.Roles)),
		Topics: s.sessions.TopicCount(),
	}
	for _, r := range domain.Roles {
		sessions.ByRole[r] = byRole[r]
	}

	rep := Report{
		GeneratedAt:  s.now(),
		Sessions:     sessions,
		Aggregates:   s.aggregates.Status(),
		LastEventSeq: s.bus.Seq(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.audit.Volume(gctx)
		if err != nil {
			return fmt.Errorf("audit volume: %w", err)
		}
		rep.AuditRecords = n
		return nil
	})

	g.Go(func() error {
		n, err := s.notifications.UnreadTotal(gctx)
		if err != nil {
			return fmt.Errorf("unread notifications: %w", err)
		}
		rep.UnreadNotifications = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	return rep, nil
}
