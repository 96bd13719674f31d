package repository

import (
	"context"
	"database/sql"

	"github.com/fedorhub/ms-go-notifications/app/entity"
)

type NotificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository constructs a repository over the notifications table.
func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create records one dispatched notification for a user.
func (r *NotificationRepository) Create(ctx context.Context, userID int64, message string, service string) error {
	const query = `
		INSERT INTO notifications (user_id, message, service, created_at)
		VALUES (?, ?, ?, NOW())
	`
	_, err := r.db.ExecContext(ctx, query, userID, message, service)
	return err
}

// ListByUser returns the user's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64) ([]entity.Notification, error) {
	const query = `
		SELECT id, user_id, message, service, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]entity.Notification, 0)
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Service, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
