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

// MessageRepository handles chat message database operations
type MessageRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var messageColumns = []string{
	"id", "chat_id", "sender_id", "receiver_id", "sender_name", "content",
	"type", "file_url", "file_name", "is_read", "is_edited", "reply_to",
	"created_at",
}

func scanMessage(row pgx.Row) (*models.Message, error) {
	var msg models.Message
	err := row.Scan(
		&msg.ID,
		&msg.ChatID,
		&msg.SenderID,
		&msg.ReceiverID,
		&msg.SenderName,
		&msg.Content,
		&msg.Type,
		&msg.FileURL,
		&msg.FileName,
		&msg.IsRead,
		&msg.IsEdited,
		&msg.ReplyTo,
		&msg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Create inserts the message, refreshes the chat's last-message cache and
// bumps the receiver's unread counter, all in one transaction.
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin message transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	err = tx.QueryRow(ctx, `
		INSERT INTO messages (
			chat_id, sender_id, receiver_id, sender_name, content, type,
			file_url, file_name, is_read, is_edited, reply_to
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, FALSE, $9)
		RETURNING id, created_at`,
		message.ChatID,
		message.SenderID,
		message.ReceiverID,
		message.SenderName,
		message.Content,
		message.Type,
		message.FileURL,
		message.FileName,
		message.ReplyTo,
	).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating message: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE chats SET last_message = $2, last_message_time = $3
		WHERE id = $1`,
		message.ChatID, message.Content, message.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error updating chat last message: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE chat_participants SET unread_count = unread_count + 1
		WHERE chat_id = $1 AND user_id = $2`,
		message.ChatID, message.ReceiverID)
	if err != nil {
		return 0, fmt.Errorf("error incrementing unread count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit message transaction: %w", err)
	}
	return message.ID, nil
}

// GetByID retrieves a message by id
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	sql, args, err := r.sb.Select(messageColumns...).
		From("messages").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get message query: %w", err)
	}

	msg, err := scanMessage(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, fmt.Errorf("error retrieving message: %w", err)
	}
	return msg, nil
}

// ListByChat retrieves a page of chat history in chronological order.
// The page is anchored at the newest message (or at the before id when
// paginating backwards), so the latest messages are always reachable on
// the first call.
func (r *MessageRepository) ListByChat(ctx context.Context, chatID int64, before *int64, limit int) ([]*models.Message, error) {
	builder := r.sb.Select(messageColumns...).
		From("messages").
		Where(squirrel.Eq{"chat_id": chatID}).
		OrderBy("id DESC")

	if before != nil {
		builder = builder.Where(squirrel.Lt{"id": *before})
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build message list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	// Rows arrive newest first; flip to chronological for the client.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// MarkRead flags a message as read
func (r *MessageRepository) MarkRead(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE messages SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking message as read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMessageNotFound
	}
	return nil
}
