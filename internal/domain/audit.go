package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord is one immutable entry of the audit log.
// Seq is the insertion sequence and breaks ties between equal timestamps.
type AuditRecord struct {
	Seq           int64
	Table         AuditedTable
	RecordID      string
	Operation     Operation
	OldValues     map[string]any
	NewValues     map[string]any
	ChangedFields []string
	Actor         *uuid.UUID
	CreatedAt     time.Time
}

// AuditFilter narrows ListRecent queries. Zero values mean "any".
type AuditFilter struct {
	Table     AuditedTable
	Operation Operation
	Actor     *uuid.UUID
	Limit     int
	Offset    int
}
