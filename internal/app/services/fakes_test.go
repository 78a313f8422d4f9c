package services

import (
	"context"
	"time"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

// In-memory store fakes. They hold everything in maps and make no attempt
// at prefiltering: search methods return everything, which exercises the
// service-side predicates.

type fakeUserStore struct {
	users       map[int64]*models.User
	nextID      int64
	createCalls int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUserStore) add(user *models.User) *models.User {
	if user.ID == 0 {
		user.ID = f.nextID
		f.nextID++
	} else if user.ID >= f.nextID {
		f.nextID = user.ID + 1
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) (int64, error) {
	f.createCalls++
	for _, u := range f.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	f.add(user)
	return user.ID, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) Update(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) UpdateLastLogin(ctx context.Context, id int64) error {
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	now := time.Now()
	u.LastLoginAt = &now
	return nil
}

func (f *fakeUserStore) SetActivation(ctx context.Context, id int64, active, verified bool, reason *string) error {
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.IsActive = active
	u.IsVerified = verified
	u.SuspensionReason = reason
	return nil
}

func (f *fakeUserStore) List(ctx context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserStore) ListPending(ctx context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		if !u.IsActive && u.SuspensionReason == nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) RecordCompletedTransaction(ctx context.Context, id int64, rating *int) error {
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.TotalTransactions++
	return nil
}

type tokenRecord struct {
	userID     int64
	expiresAt  time.Time
	revoked    bool
	rememberMe bool
}

type fakeTokenStore struct {
	tokens map[string]*tokenRecord
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]*tokenRecord{}}
}

func (f *fakeTokenStore) Create(ctx context.Context, token string, userID int64, expiresAt time.Time, rememberMe bool) error {
	f.tokens[token] = &tokenRecord{userID: userID, expiresAt: expiresAt, rememberMe: rememberMe}
	return nil
}

func (f *fakeTokenStore) Get(ctx context.Context, token string) (int64, time.Time, bool, bool, error) {
	rec, ok := f.tokens[token]
	if !ok {
		return 0, time.Time{}, false, false, apperrors.ErrTokenNotFound
	}
	return rec.userID, rec.expiresAt, rec.revoked, rec.rememberMe, nil
}

func (f *fakeTokenStore) Revoke(ctx context.Context, token string) error {
	rec, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	rec.revoked = true
	return nil
}

func (f *fakeTokenStore) RevokeAllForUser(ctx context.Context, userID int64) error {
	for _, rec := range f.tokens {
		if rec.userID == userID {
			rec.revoked = true
		}
	}
	return nil
}

type fakeNotificationStore struct {
	notifications []*models.Notification
	nextID        int64
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{nextID: 1}
}

func (f *fakeNotificationStore) Create(ctx context.Context, n *models.Notification) (int64, error) {
	n.ID = f.nextID
	f.nextID++
	n.CreatedAt = time.Now()
	f.notifications = append(f.notifications, n)
	return n.ID, nil
}

func (f *fakeNotificationStore) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	for _, n := range f.notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, apperrors.ErrNotificationNotFound
}

func (f *fakeNotificationStore) ListForUser(ctx context.Context, userID int64) ([]*models.Notification, error) {
	var out []*models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) UnreadCount(ctx context.Context, userID int64) (int, error) {
	count := 0
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationStore) MarkRead(ctx context.Context, id int64) error {
	n, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	n.IsRead = true
	return nil
}

func (f *fakeNotificationStore) MarkAllRead(ctx context.Context, userID int64) error {
	for _, n := range f.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

type fakeBookStore struct {
	books  map[int64]*models.Book
	nextID int64
}

func newFakeBookStore() *fakeBookStore {
	return &fakeBookStore{books: map[int64]*models.Book{}, nextID: 1}
}

func (f *fakeBookStore) Create(ctx context.Context, book *models.Book) (int64, error) {
	book.ID = f.nextID
	f.nextID++
	book.CreatedAt = time.Now()
	f.books[book.ID] = book
	return book.ID, nil
}

func (f *fakeBookStore) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, apperrors.ErrBookNotFound
	}
	return b, nil
}

func (f *fakeBookStore) Update(ctx context.Context, book *models.Book) error {
	if _, ok := f.books[book.ID]; !ok {
		return apperrors.ErrBookNotFound
	}
	f.books[book.ID] = book
	return nil
}

func (f *fakeBookStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.books[id]; !ok {
		return apperrors.ErrBookNotFound
	}
	delete(f.books, id)
	return nil
}

// Search intentionally ignores the query and filters: the service re-applies
// the exact predicate and must not rely on store-side filtering.
func (f *fakeBookStore) Search(ctx context.Context, query string, filters models.BookFilters) ([]*models.Book, error) {
	out := make([]*models.Book, 0, len(f.books))
	for _, b := range f.books {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookStore) IncrementViews(ctx context.Context, id int64) error {
	b, ok := f.books[id]
	if !ok {
		return apperrors.ErrBookNotFound
	}
	b.Views++
	return nil
}

type fakeEventStore struct {
	events map[int64]*models.Event
	nextID int64
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: map[int64]*models.Event{}, nextID: 1}
}

func (f *fakeEventStore) Create(ctx context.Context, event *models.Event) (int64, error) {
	event.ID = f.nextID
	f.nextID++
	event.CreatedAt = time.Now()
	f.events[event.ID] = event
	return event.ID, nil
}

func (f *fakeEventStore) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	return e, nil
}

func (f *fakeEventStore) Update(ctx context.Context, event *models.Event) error {
	if _, ok := f.events[event.ID]; !ok {
		return apperrors.ErrEventNotFound
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.events[id]; !ok {
		return apperrors.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventStore) List(ctx context.Context, search string) ([]*models.Event, error) {
	out := make([]*models.Event, 0, len(f.events))
	for _, e := range f.events {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventStore) UpdateAttendance(ctx context.Context, id int64, attendees []int64, count int) error {
	e, ok := f.events[id]
	if !ok {
		return apperrors.ErrEventNotFound
	}
	e.Attendees = attendees
	e.CurrentAttendees = count
	return nil
}

func (f *fakeEventStore) SetApproved(ctx context.Context, id int64, approved bool) error {
	e, ok := f.events[id]
	if !ok {
		return apperrors.ErrEventNotFound
	}
	e.IsApproved = approved
	return nil
}

type fakeChatStore struct {
	chats  map[int64]*models.Chat
	nextID int64

	// When > 0, the next N CreateWithParticipants calls fail with
	// ErrChatConflict after registering the chat, simulating a lost race.
	conflictNext int
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{chats: map[int64]*models.Chat{}, nextID: 1}
}

func (f *fakeChatStore) CreateWithParticipants(ctx context.Context, chat *models.Chat, participants []models.ChatParticipant) (int64, error) {
	stored := *chat
	stored.ID = f.nextID
	f.nextID++
	stored.CreatedAt = time.Now()
	for _, p := range participants {
		stored.Participants = append(stored.Participants, p.UserID)
		stored.ParticipantNames = append(stored.ParticipantNames, p.UserName)
	}
	f.chats[stored.ID] = &stored

	if f.conflictNext > 0 {
		f.conflictNext--
		return 0, apperrors.ErrChatConflict
	}
	chat.ID = stored.ID
	return stored.ID, nil
}

func (f *fakeChatStore) GetByID(ctx context.Context, id int64) (*models.Chat, error) {
	c, ok := f.chats[id]
	if !ok {
		return nil, apperrors.ErrChatNotFound
	}
	return c, nil
}

func (f *fakeChatStore) FindByScope(ctx context.Context, userID int64, otherUserID, bookID, eventID *int64) (*models.Chat, error) {
	matches := func(c *models.Chat) bool {
		switch {
		case bookID != nil:
			if c.BookID == nil || *c.BookID != *bookID {
				return false
			}
			return c.HasParticipant(userID) && otherUserID != nil && c.HasParticipant(*otherUserID)
		case eventID != nil:
			return c.EventID != nil && *c.EventID == *eventID && c.HasParticipant(userID)
		case otherUserID != nil:
			return c.BookID == nil && c.EventID == nil &&
				c.HasParticipant(userID) && c.HasParticipant(*otherUserID)
		default:
			return false
		}
	}
	for _, c := range f.chats {
		if matches(c) {
			return c, nil
		}
	}
	return nil, apperrors.ErrChatNotFound
}

func (f *fakeChatStore) ListForUser(ctx context.Context, userID int64) ([]*models.Chat, error) {
	var out []*models.Chat
	for _, c := range f.chats {
		if c.HasParticipant(userID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeChatStore) ResetUnread(ctx context.Context, chatID, userID int64) error {
	if _, ok := f.chats[chatID]; !ok {
		return apperrors.ErrChatNotFound
	}
	return nil
}

type fakeMessageStore struct {
	messages map[int64]*models.Message
	nextID   int64
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{messages: map[int64]*models.Message{}, nextID: 1}
}

func (f *fakeMessageStore) Create(ctx context.Context, message *models.Message) (int64, error) {
	stored := *message
	stored.ID = f.nextID
	f.nextID++
	stored.CreatedAt = time.Now()
	f.messages[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeMessageStore) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	m, ok := f.messages[id]
	if !ok {
		return nil, apperrors.ErrMessageNotFound
	}
	return m, nil
}

func (f *fakeMessageStore) ListByChat(ctx context.Context, chatID int64, before *int64, limit int) ([]*models.Message, error) {
	var out []*models.Message
	for id := int64(1); id < f.nextID; id++ {
		m, ok := f.messages[id]
		if !ok || m.ChatID != chatID {
			continue
		}
		if before != nil && m.ID >= *before {
			continue
		}
		out = append(out, m)
	}
	// Like the real store: the page holds the newest matching messages,
	// returned in chronological order.
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (f *fakeMessageStore) MarkRead(ctx context.Context, id int64) error {
	m, ok := f.messages[id]
	if !ok {
		return apperrors.ErrMessageNotFound
	}
	m.IsRead = true
	return nil
}

type fakeTransactionStore struct {
	transactions map[int64]*models.Transaction
	nextID       int64
}

func newFakeTransactionStore() *fakeTransactionStore {
	return &fakeTransactionStore{transactions: map[int64]*models.Transaction{}, nextID: 1}
}

func (f *fakeTransactionStore) Create(ctx context.Context, t *models.Transaction) (int64, error) {
	stored := *t
	stored.ID = f.nextID
	f.nextID++
	stored.CreatedAt = time.Now()
	f.transactions[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeTransactionStore) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	t, ok := f.transactions[id]
	if !ok {
		return nil, apperrors.ErrTransactionNotFound
	}
	return t, nil
}

func (f *fakeTransactionStore) Update(ctx context.Context, t *models.Transaction) error {
	if _, ok := f.transactions[t.ID]; !ok {
		return apperrors.ErrTransactionNotFound
	}
	f.transactions[t.ID] = t
	return nil
}

func (f *fakeTransactionStore) ListForUser(ctx context.Context, userID int64) ([]*models.Transaction, error) {
	var out []*models.Transaction
	for _, t := range f.transactions {
		if t.BuyerID == userID || t.SellerID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

// recordingBroadcaster captures fan-out calls for assertions
type recordingBroadcaster struct {
	messages   []*models.Message
	recipients [][]int64
}

func (b *recordingBroadcaster) BroadcastMessage(message *models.Message, recipients []int64) {
	b.messages = append(b.messages, message)
	b.recipients = append(b.recipients, recipients)
}
