package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TopicKind is the partition a topic belongs to.
type TopicKind string

const (
	TopicKindRole           TopicKind = "role"
	TopicKindUser           TopicKind = "user"
	TopicKindJob            TopicKind = "job"
	TopicKindAdminRoom      TopicKind = "admin-room"
	TopicKindAdminAnalytics TopicKind = "admin-analytics"
)

// Topic is a subscription channel name such as "user:<id>" or "admin-room".
type Topic string

const (
	TopicAdminRoom      Topic = "admin-room"
	TopicAdminAnalytics Topic = "admin-analytics"
)

func RoleTopic(r Role) Topic { return Topic("role:" + string(r)) }

func UserTopic(id uuid.UUID) Topic { return Topic("user:" + id.String()) }

func JobTopic(id uuid.UUID) Topic { return Topic("job:" + id.String()) }

func (t Topic) String() string { return string(t) }

// TopicRef is a parsed topic.
type TopicRef struct {
	Kind TopicKind
	Role Role
	ID   uuid.UUID
}

// ParseTopic validates a topic name and splits it into its parts.
func ParseTopic(s string) (TopicRef, error) {
	switch Topic(s) {
	case TopicAdminRoom:
		return TopicRef{Kind: TopicKindAdminRoom}, nil
	case TopicAdminAnalytics:
		return TopicRef{Kind: TopicKindAdminAnalytics}, nil
	}

	prefix, rest, ok := strings.Cut(s, ":")
	if !ok || rest == "" {
		return TopicRef{}, NewValidationError("topic", fmt.Sprintf("malformed topic %q", s))
	}

	switch TopicKind(prefix) {
	case TopicKindRole:
		r := Role(rest)
		if !r.IsValid() {
			return TopicRef{}, NewValidationError("topic", fmt.Sprintf("unknown role %q", rest))
		}
		return TopicRef{Kind: TopicKindRole, Role: r}, nil
	case TopicKindUser, TopicKindJob:
		id, err := uuid.Parse(rest)
		if err != nil {
			return TopicRef{}, NewValidationError("topic", fmt.Sprintf("invalid id in %q", s))
		}
		return TopicRef{Kind: TopicKind(prefix), ID: id}, nil
	}
	return TopicRef{}, NewValidationError("topic", fmt.Sprintf("unknown topic kind %q", prefix))
}

// Topic returns the canonical topic name.
func (r TopicRef) Topic() Topic {
	switch r.Kind {
	case TopicKindRole:
		return RoleTopic(r.Role)
	case TopicKindUser:
		return UserTopic(r.ID)
	case TopicKindJob:
		return JobTopic(r.ID)
	default:
		return Topic(r.Kind)
	}
}
