// Package notification implements the in-app notification inbox using PostgreSQL.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/stockroom/replenish-backend/internal/adapter/postgres"
	"github.com/stockroom/replenish-backend/internal/domain"
)

var notificationColumns = []string{"id", "recipient_id", "kind", "payload", "read_at", "created_at"}

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new notification repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns a recipient's notifications ordered by created_at DESC with
// pagination, and the total count. Returns an empty slice and 0 for an
// empty inbox.
func (r *Repo) List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]domain.Notification, int, error) {
	where := squirrel.And{squirrel.Eq{"recipient_id": recipientID}}
	if unreadOnly {
		where = append(where, squirrel.Eq{"read_at": nil})
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	countQuery, countArgs, err := postgres.Builder().
		Select("count(*)").
		From("notifications").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count notifications: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	query, args, err := postgres.Builder().
		Select(notificationColumns...).
		From("notifications").
		Where(where).
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list notifications: %w", err)
	}

	var rows []notificationRow
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}

	items := make([]domain.Notification, len(rows))
	for i, row := range rows {
		n, err := row.toDomain()
		if err != nil {
			return nil, 0, err
		}
		items[i] = n
	}

	return items, total, nil
}

// countUnreadSQL bypasses the builder; the partial index covers it.
const countUnreadSQL = `SELECT count(*) FROM notifications WHERE recipient_id = $1 AND read_at IS NULL`

// CountUnread returns the number of unread notifications for a recipient.
func (r *Repo) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, countUnreadSQL, recipientID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new notification.
func (r *Repo) Create(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(n.Payload)
	if err != nil {
		return fmt.Errorf("notification marshal payload: %w", err)
	}
	if n.Payload == nil {
		payload = []byte("{}")
	}

	query, args, err := postgres.Builder().
		Insert("notifications").
		Columns("id", "recipient_id", "kind", "payload", "created_at").
		Values(n.ID, n.RecipientID, n.Kind.String(), payload, n.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert notification: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "notification", n.ID)
	}
	return nil
}

// MarkRead marks one notification as read. Returns domain.ErrNotFound if the
// notification does not exist or belongs to another recipient. Marking an
// already-read notification keeps the original read time.
func (r *Repo) MarkRead(ctx context.Context, recipientID, id uuid.UUID, at time.Time) error {
	query, args, err := postgres.Builder().
		Update("notifications").
		Set("read_at", squirrel.Expr("COALESCE(read_at, ?)", at)).
		Where(squirrel.Eq{"id": id, "recipient_id": recipientID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark read: %w", err)
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

// markAllReadSQL is used instead of the builder to get rows affected count
// of a single statement.
const markAllReadSQL = `UPDATE notifications SET read_at = $2 WHERE recipient_id = $1 AND read_at IS NULL`

// MarkAllRead marks every unread notification of a recipient as read.
// Idempotent. Returns the number of notifications updated.
func (r *Repo) MarkAllRead(ctx context.Context, recipientID uuid.UUID, at time.Time) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, markAllReadSQL, recipientID, at)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// PurgeRead deletes notifications read before the cutoff and returns how
// many were removed. Unread notifications are never purged.
func (r *Repo) PurgeRead(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := postgres.Builder().
		Delete("notifications").
		Where(squirrel.And{
			squirrel.NotEq{"read_at": nil},
			squirrel.Lt{"read_at": before},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build purge notifications: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

type notificationRow struct {
	ID          uuid.UUID  `db:"id"`
	RecipientID uuid.UUID  `db:"recipient_id"`
	Kind        string     `db:"kind"`
	Payload     []byte     `db:"payload"`
	ReadAt      *time.Time `db:"read_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

func (row notificationRow) toDomain() (domain.Notification, error) {
	n := domain.Notification{
		ID:          row.ID,
		RecipientID: row.RecipientID,
		Kind:        domain.NotificationKind(row.Kind),
		ReadAt:      row.ReadAt,
		CreatedAt:   row.CreatedAt,
	}

	// payload: JSONB -> map[string]any
	payload := make(map[string]any)
	if len(row.Payload) > 0 {
		if err := json.Unmarshal(row.Payload, &payload); err != nil {
			return domain.Notification{}, fmt.Errorf("notification %s unmarshal payload: %w", row.ID, err)
		}
	}
	n.Payload = payload

	return n, nil
}
