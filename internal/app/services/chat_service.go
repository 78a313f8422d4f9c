package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

// ChatService handles conversations and messages
type ChatService struct {
	chatRepo         ChatStore
	messageRepo      MessageStore
	userRepo         UserStore
	bookRepo         BookStore
	eventRepo        EventStore
	notificationRepo NotificationStore
	broadcaster      ChatBroadcaster
	logger           zerolog.Logger
}

// NewChatService creates a new ChatService. The broadcaster may be nil
// when no realtime transport is wired (tests, one-off tools).
func NewChatService(
	chatRepo ChatStore,
	messageRepo MessageStore,
	userRepo UserStore,
	bookRepo BookStore,
	eventRepo EventStore,
	notificationRepo NotificationStore,
	broadcaster ChatBroadcaster,
	logger zerolog.Logger,
) *ChatService {
	return &ChatService{
		chatRepo:         chatRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		bookRepo:         bookRepo,
		eventRepo:        eventRepo,
		notificationRepo: notificationRepo,
		broadcaster:      broadcaster,
		logger:           logger,
	}
}

// chatScope is a fully resolved conversation scope: the counterpart plus
// at most one of book/event, with the denormalized titles along for the ride.
type chatScope struct {
	otherUserID int64
	bookID      *int64
	eventID     *int64
	bookTitle   *string
	eventTitle  *string
}

// resolveScope turns client parameters into a concrete scope. For book
// and event scopes the counterpart is derived server-side (listing owner,
// event organizer) so the client cannot pair arbitrary users with a
// resource they point at.
func (s *ChatService) resolveScope(ctx context.Context, userID int64, otherUserID, bookID, eventID *int64) (*chatScope, error) {
	if bookID != nil && eventID != nil {
		return nil, apperrors.NewValidationError("a chat is scoped to a book or an event, not both")
	}

	scope := &chatScope{bookID: bookID, eventID: eventID}
	switch {
	case bookID != nil:
		book, err := s.bookRepo.GetByID(ctx, *bookID)
		if err != nil {
			return nil, err
		}
		scope.otherUserID = book.PostedBy
		scope.bookTitle = &book.Title
	case eventID != nil:
		event, err := s.eventRepo.GetByID(ctx, *eventID)
		if err != nil {
			return nil, err
		}
		scope.otherUserID = event.OrganizerID
		scope.eventTitle = &event.Name
	case otherUserID != nil:
		scope.otherUserID = *otherUserID
	default:
		return nil, apperrors.NewValidationError("chat scope requires otherUserId, bookId or eventId")
	}

	if otherUserID != nil {
		scope.otherUserID = *otherUserID
	}
	if scope.otherUserID == userID {
		return nil, apperrors.NewValidationError("cannot open a chat with yourself")
	}
	return scope, nil
}

// Resolve looks up the existing conversation for a scope without
// creating one. It is a keyed read against the unique scope index, not a
// scan. Returns ErrChatNotFound when no conversation exists yet.
func (s *ChatService) Resolve(ctx context.Context, userID int64, q *dto.ResolveChatQuery) (*models.Chat, error) {
	scope, err := s.resolveScope(ctx, userID, q.OtherUserID, q.BookID, q.EventID)
	if err != nil {
		return nil, err
	}
	return s.chatRepo.FindByScope(ctx, userID, &scope.otherUserID, scope.bookID, scope.eventID)
}

// Create opens a conversation for a scope, or returns the existing one.
// The chat row and both participant rows are written in one transaction;
// when two clients race, the loser hits the unique scope index and is
// handed the winner's chat, so both ends always converge on the same id.
func (s *ChatService) Create(ctx context.Context, userID int64, req *dto.CreateChatRequest) (*models.Chat, error) {
	scope, err := s.resolveScope(ctx, userID, &req.OtherUserID, req.BookID, req.EventID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.chatRepo.FindByScope(ctx, userID, &scope.otherUserID, scope.bookID, scope.eventID); err == nil {
		return existing, nil
	} else if !errors.Is(err, apperrors.ErrChatNotFound) {
		return nil, err
	}

	me, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	other, err := s.userRepo.GetByID(ctx, scope.otherUserID)
	if err != nil {
		return nil, err
	}
	if !other.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	chat := &models.Chat{
		Type:       models.ChatTypeDirect,
		BookID:     scope.bookID,
		EventID:    scope.eventID,
		BookTitle:  scope.bookTitle,
		EventTitle: scope.eventTitle,
		IsActive:   true,
	}
	participants := []models.ChatParticipant{
		{UserID: me.ID, UserName: me.Name},
		{UserID: other.ID, UserName: other.Name},
	}

	id, err := s.chatRepo.CreateWithParticipants(ctx, chat, participants)
	if err != nil {
		if errors.Is(err, apperrors.ErrChatConflict) {
			// Lost the race; the other side just created it.
			return s.chatRepo.FindByScope(ctx, userID, &scope.otherUserID, scope.bookID, scope.eventID)
		}
		return nil, fmt.Errorf("creating chat: %w", err)
	}

	return s.chatRepo.GetByID(ctx, id)
}

// List returns the session user's conversations, most recent activity first
func (s *ChatService) List(ctx context.Context, userID int64) ([]*models.Chat, error) {
	return s.chatRepo.ListForUser(ctx, userID)
}

// Get returns a conversation the session user participates in. Membership
// is decided by the participant rows of the chat id alone.
func (s *ChatService) Get(ctx context.Context, userID, chatID int64) (*models.Chat, error) {
	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(userID) {
		return nil, apperrors.ErrNotChatParticipant
	}
	return chat, nil
}

// Open marks a conversation as read for the session user
func (s *ChatService) Open(ctx context.Context, userID, chatID int64) (*models.Chat, error) {
	chat, err := s.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	if err := s.chatRepo.ResetUnread(ctx, chatID, userID); err != nil {
		return nil, fmt.Errorf("resetting unread count: %w", err)
	}
	if chat.UnreadCounts != nil {
		chat.UnreadCounts[userID] = 0
	}
	return chat, nil
}

// SendMessage appends a message to a conversation. The sender must be a
// participant of the chat; the receiver is the other participant. The
// message insert, the chat's last-message cache and the receiver's unread
// counter move in one transaction, then the message is fanned out to
// connected clients and a notification is dropped if the receiver wants
// one.
func (s *ChatService) SendMessage(ctx context.Context, userID, chatID int64, req *dto.SendMessageRequest) (*models.Message, error) {
	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(userID) {
		return nil, apperrors.ErrNotChatParticipant
	}

	var receiverID int64
	for _, id := range chat.Participants {
		if id != userID {
			receiverID = id
			break
		}
	}

	sender, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	msgType := models.MessageTypeText
	if req.Type != "" {
		msgType = models.MessageType(req.Type)
	}

	message := &models.Message{
		ChatID:     chatID,
		SenderID:   userID,
		ReceiverID: receiverID,
		SenderName: sender.Name,
		Content:    req.Content,
		Type:       msgType,
		FileURL:    req.FileURL,
		FileName:   req.FileName,
		ReplyTo:    req.ReplyTo,
	}

	id, err := s.messageRepo.Create(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}
	message.ID = id

	if s.broadcaster != nil {
		s.broadcaster.BroadcastMessage(message, chat.Participants)
	}
	s.notifyReceiver(ctx, receiverID, sender.Name, req.Content)

	return message, nil
}

// ListMessages returns a page of message history, oldest first
func (s *ChatService) ListMessages(ctx context.Context, userID, chatID int64, q *dto.ListMessagesQuery) ([]*models.Message, error) {
	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(userID) {
		return nil, apperrors.ErrNotChatParticipant
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	return s.messageRepo.ListByChat(ctx, chatID, q.Before, limit)
}

// MarkMessageRead flags a single message as read. Only the receiver may do so.
func (s *ChatService) MarkMessageRead(ctx context.Context, userID, messageID int64) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.ReceiverID != userID {
		return apperrors.ErrPermissionDenied
	}
	return s.messageRepo.MarkRead(ctx, messageID)
}

func (s *ChatService) notifyReceiver(ctx context.Context, receiverID int64, senderName, content string) {
	receiver, err := s.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", receiverID).Msg("Failed to load receiver for notification")
		return
	}
	if !receiver.Preferences.Notifications.Messages {
		return
	}

	// Truncate on rune boundaries so multibyte content stays valid UTF-8.
	preview := content
	if runes := []rune(preview); len(runes) > 80 {
		preview = string(runes[:80]) + "…"
	}
	n := &models.Notification{
		UserID:  receiverID,
		Type:    models.NotificationMessage,
		Title:   fmt.Sprintf("New message from %s", senderName),
		Content: preview,
	}
	if _, err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Warn().Err(err).Int64("userID", receiverID).Msg("Failed to create message notification")
	}
}
