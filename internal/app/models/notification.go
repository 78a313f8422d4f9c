package models

import "time"

// Notification defines a user notification based on the 'notifications' table
type Notification struct {
	ID        int64            `json:"id" db:"id"`
	UserID    int64            `json:"userId" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Content   string           `json:"content" db:"content"`
	IsRead    bool             `json:"isRead" db:"is_read"`
	ActionURL *string          `json:"actionUrl,omitempty" db:"action_url"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}
