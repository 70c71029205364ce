package domain

// Role is the role class of an authenticated identity.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleCompany Role = "COMPANY"
	RoleAdmin   Role = "ADMIN"
)

// Roles lists every role in a stable order.
var Roles = []Role{RoleStudent, RoleCompany, RoleAdmin}

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleCompany, RoleAdmin:
		return true
	}
	return false
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Operation is the kind of row mutation reported to the observer.
type Operation string

const (
	OperationInsert Operation = "insert"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

func (o Operation) String() string { return string(o) }

func (o Operation) IsValid() bool {
	switch o {
	case OperationInsert, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// AuditedTable identifies a table whose mutations are written to the audit log.
type AuditedTable string

const (
	AuditedTableUsers        AuditedTable = "users"
	AuditedTableStudents     AuditedTable = "students"
	AuditedTableCompanies    AuditedTable = "companies"
	AuditedTableJobs         AuditedTable = "jobs"
	AuditedTableApplications AuditedTable = "applications"
)

func (t AuditedTable) String() string { return string(t) }

func (t AuditedTable) IsValid() bool {
	switch t {
	case AuditedTableUsers, AuditedTableStudents, AuditedTableCompanies,
		AuditedTableJobs, AuditedTableApplications:
		return true
	}
	return false
}

// AuditPolicy decides what happens to a mutation when its audit write fails.
type AuditPolicy string

const (
	// AuditPolicyStrict aborts the mutation.
	AuditPolicyStrict AuditPolicy = "strict"
	// AuditPolicyBestEffort logs the failure and lets the mutation commit.
	AuditPolicyBestEffort AuditPolicy = "best_effort"
)

func (p AuditPolicy) String() string { return string(p) }

func (p AuditPolicy) IsValid() bool {
	switch p {
	case AuditPolicyStrict, AuditPolicyBestEffort:
		return true
	}
	return false
}

// NotificationType is the closed set of notification kinds.
type NotificationType string

const (
	NotificationApplicationReceived      NotificationType = "APPLICATION_RECEIVED"
	NotificationApplicationStatusChanged NotificationType = "APPLICATION_STATUS_CHANGED"
	NotificationJobPosted                NotificationType = "JOB_POSTED"
	NotificationJobUpdated               NotificationType = "JOB_UPDATED"
	NotificationJobClosed                NotificationType = "JOB_CLOSED"
	NotificationCompanyFollowed          NotificationType = "COMPANY_FOLLOWED"
	NotificationCompanyVerified          NotificationType = "COMPANY_VERIFIED"
	NotificationMessage                  NotificationType = "MESSAGE"
	NotificationSystem                   NotificationType = "SYSTEM"
)

func (t NotificationType) String() string { return string(t) }

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationApplicationReceived, NotificationApplicationStatusChanged,
		NotificationJobPosted, NotificationJobUpdated, NotificationJobClosed,
		NotificationCompanyFollowed, NotificationCompanyVerified,
		NotificationMessage, NotificationSystem:
		return true
	}
	return false
}

// AggregateScope selects a materialized projection.
type AggregateScope string

const (
	AggregateScopeCompany AggregateScope = "company"
	AggregateScopeJob     AggregateScope = "job"
)

// AggregateScopes lists every scope in refresh order.
var AggregateScopes = []AggregateScope{AggregateScopeJob, AggregateScopeCompany}

func (s AggregateScope) String() string { return string(s) }

func (s AggregateScope) IsValid() bool {
	switch s {
	case AggregateScopeCompany, AggregateScopeJob:
		return true
	}
	return false
}

// OverflowPolicy decides which message is discarded when a session queue is full.
type OverflowPolicy string

const (
	OverflowDropOldest OverflowPolicy = "drop_oldest"
	OverflowDropNewest OverflowPolicy = "drop_newest"
)

func (p OverflowPolicy) String() string { return string(p) }

func (p OverflowPolicy) IsValid() bool {
	switch p {
	case OverflowDropOldest, OverflowDropNewest:
		return true
	}
	return false
}
