package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/logger"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification domain.Notification) (domain.Notification, error) {
	const query = `
INSERT INTO notifications (username, message, created_at)
VALUES ($1, $2, $3)
RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, notification.Username, notification.Message, notification.CreatedAt).Scan(&notification.ID); err != nil {
		logger.Error("notification repository create failed", err, logger.Fields{
			"username": notification.Username,
		})
		return domain.Notification{}, fmt.Errorf("create notification: %w", err)
	}

	return notification, nil
}

func (r *NotificationRepository) ListByUsername(ctx context.Context, username string, limit int) ([]domain.Notification, error) {
	const query = `
SELECT id, username, message, created_at
FROM notifications
WHERE username = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`

	return r.list(ctx, query, username, limit)
}

func (r *NotificationRepository) ListRecent(ctx context.Context, limit int) ([]domain.Notification, error) {
	const query = `
SELECT id, username, message, created_at
FROM notifications
ORDER BY created_at DESC, id DESC
LIMIT $1`

	return r.list(ctx, query, limit)
}

func (r *NotificationRepository) list(ctx context.Context, query string, args ...any) ([]domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("notification repository list failed", err, nil)
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Username, &n.Message, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.CreatedAt = n.CreatedAt.UTC()
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}

	return notifications, nil
}
