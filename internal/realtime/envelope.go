package realtime

import (
	"time"

	"github.com/heartmarshall/campus-jobs/internal/domain"
)

// Event is the canonical, role-neutral form of something worth pushing.
type Event struct {
	Type      string
	Data      any
	Message   string
	ActionURL string
}

// RoleView overrides parts of an Event for one role. Empty fields keep the
// canonical value.
type RoleView struct {
	Message   string
	ActionURL string
	Data      any
}

// RoleProjections is the closed per-role shaping table of one event.
type RoleProjections struct {
	Student *RoleView
	Company *RoleView
	Admin   *RoleView
}

// For returns the view of role, or nil when the role sees the canonical event.
func (p *RoleProjections) For(role domain.Role) *RoleView {
	if p == nil {
		return nil
	}
	switch role {
	case domain.RoleStudent:
		return p.Student
	case domain.RoleCompany:
		return p.Company
	case domain.RoleAdmin:
		return p.Admin
	}
	return nil
}

// shape applies the role's view to ev.
func (p *RoleProjections) shape(ev Event, role domain.Role) Event {
	v := p.For(role)
	if v == nil {
		return ev
	}
	if v.Message != "" {
		ev.Message = v.Message
	}
	if v.ActionURL != "" {
		ev.ActionURL = v.ActionURL
	}
	if v.Data != nil {
		ev.Data = v.Data
	}
	return ev
}

// Envelope is the wire format of one pushed event.
type Envelope struct {
	Seq       int64     `json:"seq"`
	Topic     string    `json:"topic"`
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
	Message   string    `json:"message,omitempty"`
	ActionURL string    `json:"action_url,omitempty"`
	TS        time.Time `json:"ts"`
}
