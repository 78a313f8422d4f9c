package dto

// CreateChatRequest is the payload for opening a conversation.
// The scope is the other participant plus at most one of bookId/eventId.
type CreateChatRequest struct {
	OtherUserID int64  `json:"otherUserId" binding:"required,gt=0"`
	BookID      *int64 `json:"bookId,omitempty" binding:"omitempty,gt=0"`
	EventID     *int64 `json:"eventId,omitempty" binding:"omitempty,gt=0"`
}

// ResolveChatQuery holds the query parameters for chat scope resolution
type ResolveChatQuery struct {
	BookID      *int64 `form:"bookId" binding:"omitempty,gt=0"`
	EventID     *int64 `form:"eventId" binding:"omitempty,gt=0"`
	OtherUserID *int64 `form:"otherUserId" binding:"omitempty,gt=0"`
}

// SendMessageRequest is the payload for posting a message into a chat
type SendMessageRequest struct {
	Content  string  `json:"content" binding:"required,min=1,max=4000"`
	Type     string  `json:"type,omitempty" binding:"omitempty,oneof=text image file"`
	FileURL  *string `json:"fileUrl,omitempty"`
	FileName *string `json:"fileName,omitempty"`
	ReplyTo  *int64  `json:"replyTo,omitempty" binding:"omitempty,gt=0"`
}

// ListMessagesQuery holds pagination parameters for message history
type ListMessagesQuery struct {
	Before *int64 `form:"before" binding:"omitempty,gt=0"`
	Limit  int    `form:"limit" binding:"omitempty,gte=1,lte=200"`
}
