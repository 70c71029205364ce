// Package notification implements the notification store using PostgreSQL.
package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/campus-jobs/internal/adapter/postgres"
	"github.com/heartmarshall/campus-jobs/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var columns = []string{
	"id", "user_id", "type", "title", "message", "data", "is_read", "read_at", "created_at",
}

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new notification repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a notification. ID and CreatedAt are assigned when zero.
func (r *Repo) Create(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	var data []byte
	if len(n.Data) > 0 {
		data = n.Data
	}

	query, args, err := psql.Insert("notifications").
		Columns("id", "user_id", "type", "title", "message", "data", "created_at").
		Values(n.ID, n.UserID, string(n.Type), n.Title, n.Message, data, n.CreatedAt).
		ToSql()
	if err != nil {
		return domain.Notification{}, fmt.Errorf("build notifications insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return domain.Notification{}, postgres.MapError(err, "notification", n.ID)
	}

	n.IsRead = false
	n.ReadAt = nil
	return n, nil
}

// MarkRead flips one notification to read. Already-read notifications keep
// their original read_at. Returns ErrNotFound if the row does not exist.
func (r *Repo) MarkRead(ctx context.Context, id uuid.UUID) (domain.Notification, error) {
	query, args, err := psql.Update("notifications").
		Set("is_read", true).
		Set("read_at", sq.Expr("COALESCE(read_at, now())")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Notification{}, fmt.Errorf("build notifications update: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...)
	n, err := scanNotification(row)
	if err != nil {
		return domain.Notification{}, postgres.MapError(err, "notification", id)
	}
	return n, nil
}

// MarkAllRead marks every unread notification of a user as read and returns
// how many changed.
func (r *Repo) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	query, args, err := psql.Update("notifications").
		Set("is_read", true).
		Set("read_at", sq.Expr("now()")).
		Where(sq.Eq{"user_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build notifications update: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("mark all read for user %s: %w", userID, err)
	}
	return tag.RowsAffected(), nil
}

// Delete removes one notification. Returns ErrNotFound if nothing was deleted.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete("notifications").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build notifications delete: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "notification", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteReadBefore removes read notifications created before the cutoff.
func (r *Repo) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := psql.Delete("notifications").
		Where(sq.Eq{"is_read": true}).
		Where(sq.Lt{"created_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build notifications cleanup: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete read notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns one notification regardless of owner.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Notification, error) {
	query, args, err := psql.Select(columns...).From("notifications").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return domain.Notification{}, fmt.Errorf("build notifications select: %w", err)
	}

	n, err := scanNotification(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return domain.Notification{}, postgres.MapError(err, "notification", id)
	}
	return n, nil
}

// ListByUser returns a page of a user's notifications, newest first, and the
// total number matching the filter.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, f domain.NotificationFilter) ([]domain.Notification, int, error) {
	where := sq.Eq{"user_id": userID}
	if f.UnreadOnly {
		where["is_read"] = false
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	countQuery, countArgs, err := psql.Select("COUNT(*)").From("notifications").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build notifications count: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	b := psql.Select(columns...).From("notifications").Where(where).
		OrderBy("created_at DESC", "id DESC")
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build notifications select: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Notification, error) {
		return scanNotification(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan notifications: %w", err)
	}

	return list, total, nil
}

// UnreadCount returns the number of unread notifications of a user.
func (r *Repo) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From("notifications").
		Where(sq.Eq{"user_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build unread count: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("unread count for user %s: %w", userID, err)
	}
	return n, nil
}

// UnreadTotal returns the number of unread notifications across all users.
func (r *Repo) UnreadTotal(ctx context.Context) (int64, error) {
	var n int64
	err := postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE NOT is_read`).
		Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("unread total: %w", err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanNotification(row pgx.Row) (domain.Notification, error) {
	var (
		n    domain.Notification
		typ  string
		data []byte
	)
	if err := row.Scan(&n.ID, &n.UserID, &typ, &n.Title, &n.Message, &data, &n.IsRead, &n.ReadAt, &n.CreatedAt); err != nil {
		return domain.Notification{}, err
	}
	n.Type = domain.NotificationType(typ)
	if len(data) > 0 {
		n.Data = data
	}
	return n, nil
}
