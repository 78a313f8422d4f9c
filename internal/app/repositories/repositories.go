package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	BookRepository         *BookRepository
	EventRepository        *EventRepository
	ChatRepository         *ChatRepository
	MessageRepository      *MessageRepository
	TransactionRepository  *TransactionRepository
	NotificationRepository *NotificationRepository
	ReportRepository       *ReportRepository
	StatsRepository        *StatsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		TokenRepository:        NewTokenRepository(db),
		BookRepository:         NewBookRepository(db),
		EventRepository:        NewEventRepository(db),
		ChatRepository:         NewChatRepository(db),
		MessageRepository:      NewMessageRepository(db),
		TransactionRepository:  NewTransactionRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		ReportRepository:       NewReportRepository(db),
		StatsRepository:        NewStatsRepository(db),
	}
}
