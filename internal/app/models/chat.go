package models

import "time"

// Chat defines a conversation based on the 'chats' table.
// A chat is scoped to exactly one of a book, an event, or a direct pairing;
// the scope plus participant pair is unique (enforced by the schema).
type Chat struct {
	ID               int64      `json:"id" db:"id"`
	Type             ChatType   `json:"type" db:"type"`
	BookID           *int64     `json:"bookId,omitempty" db:"book_id"`
	EventID          *int64     `json:"eventId,omitempty" db:"event_id"`
	BookTitle        *string    `json:"bookTitle,omitempty" db:"book_title"`   // Denormalized listing title
	EventTitle       *string    `json:"eventTitle,omitempty" db:"event_title"` // Denormalized event name
	LastMessage      *string    `json:"lastMessage,omitempty" db:"last_message"`
	LastMessageTime  *time.Time `json:"lastMessageTime,omitempty" db:"last_message_time"`
	IsActive         bool       `json:"isActive" db:"is_active"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`

	// From chat_participants
	Participants     []int64        `json:"participants"`
	ParticipantNames []string       `json:"participantNames"`
	UnreadCounts     map[int64]int  `json:"unreadCounts,omitempty"`
}

// ChatParticipant defines a membership row in the 'chat_participants' table
type ChatParticipant struct {
	ID          int64     `json:"id" db:"id"`
	ChatID      int64     `json:"chatId" db:"chat_id"`
	UserID      int64     `json:"userId" db:"user_id"`
	UserName    string    `json:"userName" db:"user_name"`
	UnreadCount int       `json:"unreadCount" db:"unread_count"`
	JoinedAt    time.Time `json:"joinedAt" db:"joined_at"`
}

// HasParticipant reports whether the user is a member of the chat
func (c *Chat) HasParticipant(userID int64) bool {
	for _, id := range c.Participants {
		if id == userID {
			return true
		}
	}
	return false
}
