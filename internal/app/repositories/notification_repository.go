package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new notification and returns its id
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) (int64, error) {
	query := `
		INSERT INTO notifications (user_id, type, title, content, is_read, action_url)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		n.UserID, n.Type, n.Title, n.Content, n.ActionURL,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating notification: %w", err)
	}
	return n.ID, nil
}

// GetByID retrieves a notification by id
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	sql, args, err := r.sb.Select("id", "user_id", "type", "title", "content", "is_read", "action_url", "created_at").
		From("notifications").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get notification query: %w", err)
	}

	var n models.Notification
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&n.ID, &n.UserID, &n.Type, &n.Title, &n.Content, &n.IsRead, &n.ActionURL, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("error retrieving notification: %w", err)
	}
	return &n, nil
}

// ListForUser retrieves a user's notifications, newest first
func (r *NotificationRepository) ListForUser(ctx context.Context, userID int64) ([]*models.Notification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, type, title, content, is_read, action_url, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Content, &n.IsRead, &n.ActionURL, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}
	return notifications, nil
}

// UnreadCount returns how many of a user's notifications are unread
func (r *NotificationRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications
		WHERE user_id = $1 AND is_read = FALSE`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead flags a notification as read
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking notification as read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead flags every unread notification of a user as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return fmt.Errorf("error marking notifications as read: %w", err)
	}
	return nil
}
