package domain

import (
	"time"

	"github.com/google/uuid"
)

// CompanyStats is the materialized rollup of one company.
type CompanyStats struct {
	CompanyID         uuid.UUID  `json:"company_id"`
	JobsCount         int64      `json:"jobs_count"`
	ActiveJobsCount   int64      `json:"active_jobs_count"`
	TotalViews        int64      `json:"total_views"`
	UniqueViewers     int64      `json:"unique_viewers"`
	TotalApplications int64      `json:"total_applications"`
	FollowerCount     int64      `json:"follower_count"`
	LastViewAt        *time.Time `json:"last_view_at,omitempty"`
	LastApplicationAt *time.Time `json:"last_application_at,omitempty"`
	LastUpdated       time.Time  `json:"last_updated"`
}

// JobStats is the materialized rollup of one job posting.
type JobStats struct {
	JobID                uuid.UUID  `json:"job_id"`
	CompanyID            uuid.UUID  `json:"company_id"`
	TotalViews           int64      `json:"total_views"`
	UniqueViewers        int64      `json:"unique_viewers"`
	TotalApplications    int64      `json:"total_applications"`
	PendingApplications  int64      `json:"pending_applications"`
	AcceptedApplications int64      `json:"accepted_applications"`
	LastViewAt           *time.Time `json:"last_view_at,omitempty"`
	LastApplicationAt    *time.Time `json:"last_application_at,omitempty"`
	LastUpdated          time.Time  `json:"last_updated"`
}

// AggregateSnapshot is a read of one projection row. Exactly one of Company
// and Job is set, matching Scope.
type AggregateSnapshot struct {
	Scope         AggregateScope `json:"scope"`
	Key           uuid.UUID      `json:"key"`
	Company       *CompanyStats  `json:"company,omitempty"`
	Job           *JobStats      `json:"job,omitempty"`
	LastRefreshed time.Time      `json:"last_refreshed"`
}

// RefreshResult describes one completed refresh.
// Snapshot is set for single-entity refreshes whose entity still exists.
type RefreshResult struct {
	Scope       AggregateScope     `json:"scope"`
	Key         *uuid.UUID         `json:"key,omitempty"`
	Rows        int64              `json:"rows"`
	RefreshedAt time.Time          `json:"refreshed_at"`
	Duration    time.Duration      `json:"duration"`
	Snapshot    *AggregateSnapshot `json:"snapshot,omitempty"`
}

// RefreshStatus is the in-memory health of one scope's refreshes.
type RefreshStatus struct {
	Scope         AggregateScope `json:"scope"`
	LastRefreshed *time.Time     `json:"last_refreshed,omitempty"`
	LastDuration  time.Duration  `json:"last_duration"`
	LastError     string         `json:"last_error,omitempty"`
	LastFailedAt  *time.Time     `json:"last_failed_at,omitempty"`
	Runs          int64          `json:"runs"`
	Failures      int64          `json:"failures"`
}
