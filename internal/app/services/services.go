package services

import (
	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/repositories"
	"github.com/campusconnect/backend/internal/pkg/auth"
)

// Services holds all the service instances
type Services struct {
	Auth         *AuthService
	User         *UserService
	Book         *BookService
	Event        *EventService
	Chat         *ChatService
	Transaction  *TransactionService
	Notification *NotificationService
	Admin        *AdminService
}

// NewServices wires every service to the pgx-backed repositories
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	broadcaster ChatBroadcaster,
	allowedEmailDomain string,
	logger zerolog.Logger,
) *Services {
	return &Services{
		Auth: NewAuthService(
			repos.UserRepository,
			repos.TokenRepository,
			repos.NotificationRepository,
			jwtService,
			allowedEmailDomain,
			logger.With().Str("service", "auth").Logger(),
		),
		User: NewUserService(
			repos.UserRepository,
			logger.With().Str("service", "user").Logger(),
		),
		Book: NewBookService(
			repos.BookRepository,
			repos.UserRepository,
			logger.With().Str("service", "book").Logger(),
		),
		Event: NewEventService(
			repos.EventRepository,
			repos.UserRepository,
			repos.NotificationRepository,
			logger.With().Str("service", "event").Logger(),
		),
		Chat: NewChatService(
			repos.ChatRepository,
			repos.MessageRepository,
			repos.UserRepository,
			repos.BookRepository,
			repos.EventRepository,
			repos.NotificationRepository,
			broadcaster,
			logger.With().Str("service", "chat").Logger(),
		),
		Transaction: NewTransactionService(
			repos.TransactionRepository,
			repos.BookRepository,
			repos.UserRepository,
			repos.NotificationRepository,
			logger.With().Str("service", "transaction").Logger(),
		),
		Notification: NewNotificationService(
			repos.NotificationRepository,
			logger.With().Str("service", "notification").Logger(),
		),
		Admin: NewAdminService(
			repos.UserRepository,
			repos.TokenRepository,
			repos.ReportRepository,
			repos.StatsRepository,
			repos.NotificationRepository,
			logger.With().Str("service", "admin").Logger(),
		),
	}
}
