package services

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

type chatFixture struct {
	service       *ChatService
	chats         *fakeChatStore
	messages      *fakeMessageStore
	users         *fakeUserStore
	books         *fakeBookStore
	events        *fakeEventStore
	notifications *fakeNotificationStore
	broadcaster   *recordingBroadcaster

	alice *models.User
	bob   *models.User
}

func newChatFixture() *chatFixture {
	fx := &chatFixture{
		chats:         newFakeChatStore(),
		messages:      newFakeMessageStore(),
		users:         newFakeUserStore(),
		books:         newFakeBookStore(),
		events:        newFakeEventStore(),
		notifications: newFakeNotificationStore(),
		broadcaster:   &recordingBroadcaster{},
	}
	fx.service = NewChatService(
		fx.chats, fx.messages, fx.users, fx.books, fx.events,
		fx.notifications, fx.broadcaster, zerolog.Nop(),
	)
	fx.alice = fx.users.add(&models.User{Name: "Alice", Email: "alice@university.edu", IsActive: true, Preferences: models.DefaultPreferences()})
	fx.bob = fx.users.add(&models.User{Name: "Bob", Email: "bob@university.edu", IsActive: true, Preferences: models.DefaultPreferences()})
	return fx
}

func TestCreateChatThenResolveSameID(t *testing.T) {
	fx := newChatFixture()
	ctx := context.Background()

	created, err := fx.service.Create(ctx, fx.alice.ID, &dto.CreateChatRequest{OtherUserID: fx.bob.ID})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	resolved, err := fx.service.Resolve(ctx, fx.alice.ID, &dto.ResolveChatQuery{OtherUserID: &fx.bob.ID})
	require.NoError(t, err)
	assert.Equal(t, created.ID, resolved.ID)

	// The other side resolves the same conversation.
	resolved, err = fx.service.Resolve(ctx, fx.bob.ID, &dto.ResolveChatQuery{OtherUserID: &fx.alice.ID})
	require.NoError(t, err)
	assert.Equal(t, created.ID, resolved.ID)
}

func TestCreateChatIsIdempotentPerScope(t *testing.T) {
	fx := newChatFixture()
	ctx := context.Background()

	first, err := fx.service.Create(ctx, fx.alice.ID, &dto.CreateChatRequest{OtherUserID: fx.bob.ID})
	require.NoError(t, err)

	second, err := fx.service.Create(ctx, fx.bob.ID, &dto.CreateChatRequest{OtherUserID: fx.alice.ID})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "either side creating again lands on the same chat")
}

func TestCreateChatLostRaceResolvesWinner(t *testing.T) {
	fx := newChatFixture()
	ctx := context.Background()
	fx.chats.conflictNext = 1

	chat, err := fx.service.Create(ctx, fx.alice.ID, &dto.CreateChatRequest{OtherUserID: fx.bob.ID})
	require.NoError(t, err, "a scope conflict is resolved by re-reading, not surfaced")
	require.NotNil(t, chat)
	assert.True(t, chat.HasParticipant(fx.alice.ID))
	assert.True(t, chat.HasParticipant(fx.bob.ID))
}

func TestCreateChatRejectsSelf(t *testing.T) {
	fx := newChatFixture()

	_, err := fx.service.Create(context.Background(), fx.alice.ID, &dto.CreateChatRequest{OtherUserID: fx.alice.ID})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateChatBookScopeDerivesOwner(t *testing.T) {
	fx := newChatFixture()
	ctx := context.Background()

	bookID, err := fx.books.Create(ctx, &models.Book{
		Title: "Calculus", Author: "Stewart", PostedBy: fx.bob.ID,
		PosterName: "Bob", Condition: models.ConditionGood,
		Type: models.BookTypeSell, IsAvailable: true,
	})
	require.NoError(t, err)

	chat, err := fx.service.Create(ctx, fx.alice.ID, &dto.CreateChatRequest{OtherUserID: fx.bob.ID, BookID: &bookID})
	require.NoError(t, err)
	require.NotNil(t, chat.BookID)
	assert.Equal(t, bookID, *chat.BookID)
	require.NotNil(t, chat.BookTitle)
	assert.Equal(t, "Calculus", *chat.BookTitle)
	assert.True(t, chat.HasParticipant(fx.bob.ID), "the listing owner is the counterpart")
}

func TestCreateChatRejectsBothScopes(t *testing.T) {
	fx := newChatFixture()
	one := int64(1)

	_, err := fx.service.Create(context.Background(), fx.alice.ID, &dto.CreateChatRequest{
		OtherUserID: fx.bob.ID, BookID: &one, EventID: &one,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestResolveUnknownScope(t *testing.T) {
	fx := newChatFixture()

	_, err := fx.service.Resolve(context.Background(), fx.alice.ID, &dto.ResolveChatQuery{OtherUserID: &fx.bob.ID})
	assert.ErrorIs(t, err, apperrors.ErrChatNotFound)
}

func TestSendMessageFansOutAndNotifies(t *testing.T) {
	fx := newChatFixture()
	ctx := context.Background()

	chat, err := fx.service.Create(ctx, fx.alice.ID, &dto.CreateChatRequest{OtherUserID: fx.bob.ID})
	require.NoError(t, err)

	msg, err := fx.service.SendMessage(ctx, fx.alice.ID, chat.ID, &dto.SendMessageRequest{Content: "hey, still available?"})
	require.NoError(t, err)
	assert.Equal(t, fx.alice.ID, msg.SenderID)
	assert.Equal(t, fx.bob.ID, msg.ReceiverID)
	assert.Equal(t, models.MessageTypeText, msg.Type)

	require.Len(t, fx.broadcaster.messages, 1)
	assert.ElementsMatch(t, []int64{fx.alice.ID, fx.bob.ID}, fx.broadcaster.recipients[0])

	notes, err := fx.notifications.ListForUser(ctx, fx.bob.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationMessage, notes[0].Type)
}

func TestSendMessageNotificationPreviewKeepsValidUTF8(t *testing.T) {
	fx := newChatFixture()
	ctx := context.Background()

	chat, err := fx.service.Create(ctx, fx.alice.ID, &dto.CreateChatRequest{OtherUserID: fx.bob.ID})
	require.NoError(t, err)

	content := strings.Repeat("ü", 100)
	_, err = fx.service.SendMessage(ctx, fx.alice.ID, chat.ID, &dto.SendMessageRequest{Content: content})
	require.NoError(t, err)

	notes, err := fx.notifications.ListForUser(ctx, fx.bob.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.True(t, utf8.ValidString(notes[0].Content), "preview never splits a multibyte rune")
	assert.Equal(t, strings.Repeat("ü", 80)+"…", notes[0].Content)
}

func TestSendMessageRespectsMutedPreference(t *testing.T) {
	fx := newChatFixture()
	ctx := context.Background()
	fx.bob.Preferences.Notifications.Messages = false

	chat, err := fx.service.Create(ctx, fx.alice.ID, &dto.CreateChatRequest{OtherUserID: fx.bob.ID})
	require.NoError(t, err)

	_, err = fx.service.SendMessage(ctx, fx.alice.ID, chat.ID, &dto.SendMessageRequest{Content: "ping"})
	require.NoError(t, err)

	notes, err := fx.notifications.ListForUser(ctx, fx.bob.ID)
	require.NoError(t, err)
	assert.Empty(t, notes, "muted receivers get the message but no notification")
	assert.Len(t, fx.broadcaster.messages, 1, "realtime delivery is unaffected")
}

func TestSendMessageRequiresMembership(t *testing.T) {
	fx := newChatFixture()
	ctx := context.Background()
	mallory := fx.users.add(&models.User{Name: "Mallory", Email: "m@university.edu", IsActive: true})

	chat, err := fx.service.Create(ctx, fx.alice.ID, &dto.CreateChatRequest{OtherUserID: fx.bob.ID})
	require.NoError(t, err)

	_, err = fx.service.SendMessage(ctx, mallory.ID, chat.ID, &dto.SendMessageRequest{Content: "let me in"})
	assert.ErrorIs(t, err, apperrors.ErrNotChatParticipant)

	_, err = fx.service.Get(ctx, mallory.ID, chat.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotChatParticipant)
}

func TestMarkMessageReadReceiverOnly(t *testing.T) {
	fx := newChatFixture()
	ctx := context.Background()

	chat, err := fx.service.Create(ctx, fx.alice.ID, &dto.CreateChatRequest{OtherUserID: fx.bob.ID})
	require.NoError(t, err)
	msg, err := fx.service.SendMessage(ctx, fx.alice.ID, chat.ID, &dto.SendMessageRequest{Content: "hi"})
	require.NoError(t, err)

	err = fx.service.MarkMessageRead(ctx, fx.alice.ID, msg.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, "the sender cannot mark their own message read")

	require.NoError(t, fx.service.MarkMessageRead(ctx, fx.bob.ID, msg.ID))
	stored, err := fx.messages.GetByID(ctx, msg.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsRead)
}

func TestListMessagesDefaultsLimit(t *testing.T) {
	fx := newChatFixture()
	ctx := context.Background()

	chat, err := fx.service.Create(ctx, fx.alice.ID, &dto.CreateChatRequest{OtherUserID: fx.bob.ID})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := fx.service.SendMessage(ctx, fx.alice.ID, chat.ID, &dto.SendMessageRequest{Content: "msg"})
		require.NoError(t, err)
	}

	msgs, err := fx.service.ListMessages(ctx, fx.bob.ID, chat.ID, &dto.ListMessagesQuery{})
	require.NoError(t, err)
	assert.Len(t, msgs, 3)
}

func TestListMessagesPagesBackwardsFromNewest(t *testing.T) {
	fx := newChatFixture()
	ctx := context.Background()

	chat, err := fx.service.Create(ctx, fx.alice.ID, &dto.CreateChatRequest{OtherUserID: fx.bob.ID})
	require.NoError(t, err)
	var ids []int64
	for i := 0; i < 5; i++ {
		msg, err := fx.service.SendMessage(ctx, fx.alice.ID, chat.ID, &dto.SendMessageRequest{Content: "msg"})
		require.NoError(t, err)
		ids = append(ids, msg.ID)
	}

	// The first page holds the newest messages, oldest first within the page.
	page, err := fx.service.ListMessages(ctx, fx.bob.ID, chat.ID, &dto.ListMessagesQuery{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[3], page[0].ID)
	assert.Equal(t, ids[4], page[1].ID)

	// Paging backwards from the oldest message of that page walks history.
	page, err = fx.service.ListMessages(ctx, fx.bob.ID, chat.ID, &dto.ListMessagesQuery{Limit: 2, Before: &ids[3]})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[1], page[0].ID)
	assert.Equal(t, ids[2], page[1].ID)
}
