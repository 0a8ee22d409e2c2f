package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/shenikar/pilgrim_path/internal/service"
	"github.com/shenikar/pilgrim_path/pkg/e"
)

const notificationColumns = `id, title, message, type, priority, COALESCE(sector, ''), created_at, is_read, read_at`

type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) service.NotificationRepository {
	return &NotificationRepository{db: db}
}

// List возвращает страницу уведомлений, новые первыми
func (r *NotificationRepository) List(ctx context.Context, filter models.NotificationFilter) (*models.NotificationPage, error) {
	const op = "repository.notification.List"

	countQuery, countArgs := buildNotificationCountQuery(filter)
	page := &models.NotificationPage{}
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&page.Total, &page.UnreadCount); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	query, args := buildNotificationListQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	page.Notifications = make([]*models.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, e.WrapError(ctx, op, fmt.Errorf("scan: %w", err))
		}
		page.Notifications = append(page.Notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return page, nil
}

// MarkRead помечает уведомление прочитанным; повторный вызов не сдвигает read_at
func (r *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID, at time.Time) (*models.Notification, error) {
	const op = "repository.notification.MarkRead"
	query := `
		UPDATE notifications SET is_read = true, read_at = COALESCE(read_at, $2)
		WHERE id = $1
		RETURNING ` + notificationColumns + `;`

	n, err := scanNotification(r.db.QueryRow(ctx, query, id, at))
	if err != nil {
		return nil, e.WrapError(ctx, op, fmt.Errorf("notification %s: %w", id, err))
	}
	return n, nil
}

// MarkAllRead отмечает все уведомления прочитанными и возвращает число оставшихся непрочитанными
func (r *NotificationRepository) MarkAllRead(ctx context.Context, at time.Time) (*models.ReadAllResult, error) {
	const op = "repository.notification.MarkAllRead"

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `UPDATE notifications SET is_read = true, read_at = $1 WHERE NOT is_read;`, at)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	result := &models.ReadAllResult{Updated: tag.RowsAffected()}
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE NOT is_read;`).Scan(&result.UnreadCount); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return result, nil
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	const op = "repository.notification.Create"
	query := `
		INSERT INTO notifications (title, message, type, priority, sector, created_at, is_read)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		n.Title, n.Message, n.Type, n.Priority, nullIfEmpty(n.Sector), n.Timestamp, n.IsRead,
	).Scan(&n.ID)
	if err != nil {
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (r *NotificationRepository) Stats(ctx context.Context) (*models.NotificationStats, error) {
	const op = "repository.notification.Stats"
	stats := &models.NotificationStats{
		ByType:     make(map[models.NotificationType]int),
		ByPriority: make(map[models.Priority]int),
	}

	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT is_read) FROM notifications;`,
	).Scan(&stats.Total, &stats.Unread); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT 'type', type, COUNT(*) FROM notifications GROUP BY type
		UNION ALL
		SELECT 'priority', priority, COUNT(*) FROM notifications GROUP BY priority;`)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var dimension, key string
		var count int
		if err := rows.Scan(&dimension, &key, &count); err != nil {
			return nil, e.WrapError(ctx, op, fmt.Errorf("scan: %w", err))
		}
		if dimension == "type" {
			stats.ByType[models.NotificationType(key)] = count
		} else {
			stats.ByPriority[models.Priority(key)] = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return stats, nil
}

func scanNotification(row rowScanner) (*models.Notification, error) {
	n := &models.Notification{}
	err := row.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.Priority, &n.Sector, &n.Timestamp, &n.IsRead, &n.ReadAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func notificationFilterConditions(filter models.NotificationFilter) *conditions {
	c := &conditions{}
	if filter.Type != "" {
		c.where("type = " + c.arg(filter.Type))
	}
	if filter.Priority != "" {
		c.where("priority = " + c.arg(filter.Priority))
	}
	return c
}

func buildNotificationCountQuery(filter models.NotificationFilter) (string, []any) {
	c := notificationFilterConditions(filter)
	return "SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT is_read) FROM notifications" + c.sql(), c.args
}

func buildNotificationListQuery(filter models.NotificationFilter) (string, []any) {
	c := notificationFilterConditions(filter)
	query := "SELECT " + notificationColumns + " FROM notifications" + c.sql() +
		" ORDER BY created_at DESC, id" + c.paginate(filter.Page, filter.Limit)
	return query, c.args
}
