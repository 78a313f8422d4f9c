package services

import (
	"context"
	"time"

	"github.com/campusconnect/backend/internal/app/models"
)

// The store interfaces below are the backend boundary of the services
// layer. The pgx repositories implement them; tests substitute in-memory
// fakes so every operation can run against an isolated instance.
//
// Search-style methods may return a superset of the requested rows: the
// service owns the exact predicate and re-applies it, so an implementation
// is free to push filters down to SQL or skip them entirely.

// UserStore is the backend boundary for user rows
type UserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id int64) error
	SetActivation(ctx context.Context, id int64, active, verified bool, reason *string) error
	List(ctx context.Context) ([]*models.User, error)
	ListPending(ctx context.Context) ([]*models.User, error)
	RecordCompletedTransaction(ctx context.Context, id int64, rating *int) error
}

// TokenStore is the backend boundary for refresh tokens. The remember-me
// flag is persisted with the token so rotation can reissue with the same
// lifetime class.
type TokenStore interface {
	Create(ctx context.Context, token string, userID int64, expiresAt time.Time, rememberMe bool) error
	Get(ctx context.Context, token string) (userID int64, expiresAt time.Time, revoked, rememberMe bool, err error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
}

// BookStore is the backend boundary for book listings
type BookStore interface {
	Create(ctx context.Context, book *models.Book) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string, filters models.BookFilters) ([]*models.Book, error)
	IncrementViews(ctx context.Context, id int64) error
}

// EventStore is the backend boundary for campus events
type EventStore interface {
	Create(ctx context.Context, event *models.Event) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, search string) ([]*models.Event, error)
	UpdateAttendance(ctx context.Context, id int64, attendees []int64, count int) error
	SetApproved(ctx context.Context, id int64, approved bool) error
}

// ChatStore is the backend boundary for chats and their participants
type ChatStore interface {
	CreateWithParticipants(ctx context.Context, chat *models.Chat, participants []models.ChatParticipant) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Chat, error)
	FindByScope(ctx context.Context, userID int64, otherUserID, bookID, eventID *int64) (*models.Chat, error)
	ListForUser(ctx context.Context, userID int64) ([]*models.Chat, error)
	ResetUnread(ctx context.Context, chatID, userID int64) error
}

// MessageStore is the backend boundary for chat messages
type MessageStore interface {
	Create(ctx context.Context, message *models.Message) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Message, error)
	ListByChat(ctx context.Context, chatID int64, before *int64, limit int) ([]*models.Message, error)
	MarkRead(ctx context.Context, id int64) error
}

// TransactionStore is the backend boundary for marketplace transactions
type TransactionStore interface {
	Create(ctx context.Context, t *models.Transaction) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Transaction, error)
	Update(ctx context.Context, t *models.Transaction) error
	ListForUser(ctx context.Context, userID int64) ([]*models.Transaction, error)
}

// NotificationStore is the backend boundary for notifications
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	ListForUser(ctx context.Context, userID int64) ([]*models.Notification, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

// ReportStore is the backend boundary for moderation reports
type ReportStore interface {
	Create(ctx context.Context, rep *models.Report) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Report, error)
	List(ctx context.Context, status *models.ReportStatus) ([]*models.Report, error)
	Resolve(ctx context.Context, id int64, status models.ReportStatus, resolvedBy int64) error
}

// StatsStore is the backend boundary for admin dashboard aggregates
type StatsStore interface {
	Collect(ctx context.Context) (*models.AdminStats, error)
}

// ChatBroadcaster pushes newly persisted messages to connected clients.
// Delivery is best effort; persistence has already happened.
type ChatBroadcaster interface {
	BroadcastMessage(message *models.Message, recipients []int64)
}
