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
	"github.com/campusconnect/backend/internal/pkg/dberrors"
)

// ChatRepository handles chat and chat participant database operations.
// Chat scope uniqueness (participant pair plus optional book or event) is
// enforced by partial unique indexes on the chats table; the participant
// pair is stored normalized as (user_low, user_high).
type ChatRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var chatColumns = []string{
	"id", "type", "book_id", "event_id", "book_title", "event_title",
	"last_message", "last_message_time", "is_active", "created_at",
}

func scanChat(row pgx.Row) (*models.Chat, error) {
	var chat models.Chat
	err := row.Scan(
		&chat.ID,
		&chat.Type,
		&chat.BookID,
		&chat.EventID,
		&chat.BookTitle,
		&chat.EventTitle,
		&chat.LastMessage,
		&chat.LastMessageTime,
		&chat.IsActive,
		&chat.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func normalizePair(a, b int64) (low, high int64) {
	if a <= b {
		return a, b
	}
	return b, a
}

// CreateWithParticipants inserts the chat row and all its participant rows
// in a single transaction. A concurrent create of the same scope loses on
// the unique index and surfaces as ErrChatConflict; callers re-resolve.
func (r *ChatRepository) CreateWithParticipants(ctx context.Context, chat *models.Chat, participants []models.ChatParticipant) (int64, error) {
	if len(participants) < 2 {
		return 0, apperrors.NewValidationError("a chat requires at least two participants")
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin chat transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	low, high := normalizePair(participants[0].UserID, participants[1].UserID)

	err = tx.QueryRow(ctx, `
		INSERT INTO chats (
			type, book_id, event_id, book_title, event_title, is_active,
			user_low, user_high
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		chat.Type,
		chat.BookID,
		chat.EventID,
		chat.BookTitle,
		chat.EventTitle,
		chat.IsActive,
		low,
		high,
	).Scan(&chat.ID, &chat.CreatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrChatConflict
		}
		return 0, fmt.Errorf("error creating chat: %w", err)
	}

	for i := range participants {
		p := &participants[i]
		p.ChatID = chat.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO chat_participants (chat_id, user_id, user_name, unread_count)
			VALUES ($1, $2, $3, 0)
			RETURNING id, joined_at`,
			p.ChatID, p.UserID, p.UserName,
		).Scan(&p.ID, &p.JoinedAt)
		if err != nil {
			return 0, fmt.Errorf("error creating chat participant: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit chat transaction: %w", err)
	}

	chat.Participants = make([]int64, 0, len(participants))
	chat.ParticipantNames = make([]string, 0, len(participants))
	for _, p := range participants {
		chat.Participants = append(chat.Participants, p.UserID)
		chat.ParticipantNames = append(chat.ParticipantNames, p.UserName)
	}
	return chat.ID, nil
}

// GetByID retrieves a chat with its participants
func (r *ChatRepository) GetByID(ctx context.Context, id int64) (*models.Chat, error) {
	sql, args, err := r.sb.Select(chatColumns...).
		From("chats").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get chat query: %w", err)
	}

	chat, err := scanChat(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChatNotFound
		}
		return nil, fmt.Errorf("error retrieving chat: %w", err)
	}

	if err := r.loadParticipants(ctx, []*models.Chat{chat}); err != nil {
		return nil, err
	}
	return chat, nil
}

// FindByScope resolves a chat by its scope key. Book scope requires the
// normalized participant pair; event scope requires only membership of the
// requesting user; the direct fallback matches an unscoped pair.
func (r *ChatRepository) FindByScope(ctx context.Context, userID int64, otherUserID, bookID, eventID *int64) (*models.Chat, error) {
	builder := r.sb.Select(chatColumns...).From("chats")

	switch {
	case bookID != nil:
		if otherUserID == nil {
			return nil, apperrors.NewValidationError("book chat resolution requires the other participant")
		}
		low, high := normalizePair(userID, *otherUserID)
		builder = builder.Where(squirrel.Eq{"book_id": *bookID, "user_low": low, "user_high": high})
	case eventID != nil:
		builder = builder.Where(squirrel.Eq{"event_id": *eventID}).
			Where(squirrel.Or{squirrel.Eq{"user_low": userID}, squirrel.Eq{"user_high": userID}})
	case otherUserID != nil:
		low, high := normalizePair(userID, *otherUserID)
		builder = builder.Where(squirrel.Eq{"book_id": nil, "event_id": nil, "user_low": low, "user_high": high})
	default:
		return nil, apperrors.NewValidationError("chat resolution requires a book, event or other participant")
	}

	sql, args, err := builder.Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build chat scope query: %w", err)
	}

	chat, err := scanChat(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChatNotFound
		}
		return nil, fmt.Errorf("error resolving chat: %w", err)
	}

	if err := r.loadParticipants(ctx, []*models.Chat{chat}); err != nil {
		return nil, err
	}
	return chat, nil
}

// ListForUser retrieves all chats the user participates in, most recently
// active first.
func (r *ChatRepository) ListForUser(ctx context.Context, userID int64) ([]*models.Chat, error) {
	query := `
		SELECT c.id, c.type, c.book_id, c.event_id, c.book_title, c.event_title,
			c.last_message, c.last_message_time, c.is_active, c.created_at
		FROM chats c
		JOIN chat_participants cp ON cp.chat_id = c.id
		WHERE cp.user_id = $1
		ORDER BY c.last_message_time DESC NULLS LAST, c.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing chats: %w", err)
	}
	defer rows.Close()

	var chats []*models.Chat
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning chat row: %w", err)
		}
		chats = append(chats, chat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat rows: %w", err)
	}

	if err := r.loadParticipants(ctx, chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// loadParticipants fills participant ids, names and unread counts for the
// given chats with a single query.
func (r *ChatRepository) loadParticipants(ctx context.Context, chats []*models.Chat) error {
	if len(chats) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(chats))
	byID := make(map[int64]*models.Chat, len(chats))
	for _, c := range chats {
		ids = append(ids, c.ID)
		byID[c.ID] = c
		c.Participants = []int64{}
		c.ParticipantNames = []string{}
		c.UnreadCounts = map[int64]int{}
	}

	rows, err := r.db.Query(ctx, `
		SELECT chat_id, user_id, user_name, unread_count
		FROM chat_participants
		WHERE chat_id = ANY($1)
		ORDER BY joined_at ASC`, ids)
	if err != nil {
		return fmt.Errorf("error loading chat participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var chatID, userID int64
		var userName string
		var unread int
		if err := rows.Scan(&chatID, &userID, &userName, &unread); err != nil {
			return fmt.Errorf("error scanning chat participant row: %w", err)
		}
		chat := byID[chatID]
		chat.Participants = append(chat.Participants, userID)
		chat.ParticipantNames = append(chat.ParticipantNames, userName)
		chat.UnreadCounts[userID] = unread
	}
	return rows.Err()
}

// ResetUnread clears the unread counter for a user in a chat
func (r *ChatRepository) ResetUnread(ctx context.Context, chatID, userID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE chat_participants SET unread_count = 0
		WHERE chat_id = $1 AND user_id = $2`,
		chatID, userID)
	if err != nil {
		return fmt.Errorf("error resetting unread count: %w", err)
	}
	return nil
}
