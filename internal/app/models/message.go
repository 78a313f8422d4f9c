package models

import "time"

// Message defines a chat message based on the 'messages' table.
// A message belongs to a chat via ChatID alone; thread membership is not
// re-derived from the sender/receiver pair.
type Message struct {
	ID         int64       `json:"id" db:"id"`
	ChatID     int64       `json:"chatId" db:"chat_id"`
	SenderID   int64       `json:"senderId" db:"sender_id"`
	ReceiverID int64       `json:"receiverId" db:"receiver_id"`
	SenderName string      `json:"senderName" db:"sender_name"`
	Content    string      `json:"content" db:"content"`
	Type       MessageType `json:"type" db:"type"`
	FileURL    *string     `json:"fileUrl,omitempty" db:"file_url"`
	FileName   *string     `json:"fileName,omitempty" db:"file_name"`
	IsRead     bool        `json:"isRead" db:"is_read"`
	IsEdited   bool        `json:"isEdited" db:"is_edited"`
	ReplyTo    *int64      `json:"replyTo,omitempty" db:"reply_to"`
	CreatedAt  time.Time   `json:"timestamp" db:"created_at"`
}
